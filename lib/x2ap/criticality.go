package x2ap

import (
	"github.com/thebagchi/asn1enum-go/lib/constraint"
	"github.com/thebagchi/asn1enum-go/lib/enumerated"
)

// Criticality ::= ENUMERATED { reject, ignore, notify }
type Criticality int64

const (
	CriticalityReject Criticality = 0
	CriticalityIgnore Criticality = 1
	CriticalityNotify Criticality = 2
)

var SPCCriticality = constraint.MustNew("Criticality", []constraint.Enumerator{
	{Name: "reject", Value: 0},
	{Name: "ignore", Value: 1},
	{Name: "notify", Value: 2},
}, false)

var DEFCriticality = enumerated.MustNew(SPCCriticality)
