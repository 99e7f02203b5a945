// Package x2ap holds ENUMERATED bindings from the X2AP-IEs module.
//
// Each binding declares the ordinal constants of its type, the constraint
// model and a shared descriptor. Descriptors are built once at package
// initialization and are read-only afterwards.
package x2ap

import (
	"sort"

	"github.com/thebagchi/asn1enum-go/lib/enumerated"
)

var registry = map[string]enumerated.Descriptor{
	DEFLinksToLog.Name():          DEFLinksToLog,
	DEFCriticality.Name():         DEFCriticality,
	DEFRegistrationRequest.Name(): DEFRegistrationRequest,
	DEFTypeOfError.Name():         DEFTypeOfError,
}

// Descriptors returns every binding, ordered by type name.
func Descriptors() []enumerated.Descriptor {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]enumerated.Descriptor, len(names))
	for i, name := range names {
		list[i] = registry[name]
	}
	return list
}

// Lookup finds a binding by its ASN.1 type reference.
func Lookup(name string) (enumerated.Descriptor, bool) {
	d, ok := registry[name]
	return d, ok
}
