package x2ap

import (
	"github.com/thebagchi/asn1enum-go/lib/constraint"
	"github.com/thebagchi/asn1enum-go/lib/enumerated"
)

// Registration-Request ::= ENUMERATED { start, stop, ..., partial-stop, add }
type RegistrationRequest int64

const (
	RegistrationRequestStart       RegistrationRequest = 0
	RegistrationRequestStop        RegistrationRequest = 1
	RegistrationRequestPartialStop RegistrationRequest = 2
	RegistrationRequestAdd         RegistrationRequest = 3
)

var SPCRegistrationRequest = constraint.MustNew("Registration-Request", []constraint.Enumerator{
	{Name: "start", Value: 0},
	{Name: "stop", Value: 1},
}, true,
	constraint.Enumerator{Name: "partial-stop", Value: 2},
	constraint.Enumerator{Name: "add", Value: 3},
)

var DEFRegistrationRequest = enumerated.MustNew(SPCRegistrationRequest)
