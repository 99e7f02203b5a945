package x2ap

import (
	"github.com/thebagchi/asn1enum-go/lib/constraint"
	"github.com/thebagchi/asn1enum-go/lib/enumerated"
)

// TypeOfError ::= ENUMERATED { not-understood, missing, ... }
type TypeOfError int64

const (
	TypeOfErrorNotUnderstood TypeOfError = 0
	TypeOfErrorMissing       TypeOfError = 1
)

var SPCTypeOfError = constraint.MustNew("TypeOfError", []constraint.Enumerator{
	{Name: "not-understood", Value: 0},
	{Name: "missing", Value: 1},
}, true)

var DEFTypeOfError = enumerated.MustNew(SPCTypeOfError)
