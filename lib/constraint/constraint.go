// Package constraint describes the value set of one ASN.1 ENUMERATED type.
//
// A Spec is built once, when a type is registered, and never changes afterwards.
// It answers the two questions every encoding rule asks: how many bits index a
// root enumerator, and whether a given ordinal is a root value or an extension
// value.
package constraint

import (
	"errors"
	"fmt"
	"math/bits"

	"go.uber.org/multierr"

	"github.com/thebagchi/asn1enum-go/lib/asnerr"
)

// Enumerator is one named value of an ENUMERATED type.
type Enumerator struct {
	Name  string
	Value int64
}

func (e Enumerator) String() string {
	return fmt.Sprintf("%s(%d)", e.Name, e.Value)
}

// Spec is the immutable value set of an ENUMERATED type.
//
// The position of an enumerator in the root list is its PER index. Additions
// are the extension values known when the binding was generated; they only
// provide names, any other ordinal is still a valid extension value.
type Spec struct {
	name       string
	root       []Enumerator
	additions  []Enumerator
	extensible bool
	index      map[int64]int
	byValue    map[int64]Enumerator
	byName     map[string]Enumerator
}

// New validates and builds a Spec. All problems are reported together.
func New(name string, root []Enumerator, extensible bool, additions ...Enumerator) (*Spec, error) {
	s := &Spec{
		name:       name,
		root:       append([]Enumerator(nil), root...),
		additions:  append([]Enumerator(nil), additions...),
		extensible: extensible,
		index:      make(map[int64]int, len(root)),
		byValue:    make(map[int64]Enumerator, len(root)+len(additions)),
		byName:     make(map[string]Enumerator, len(root)+len(additions)),
	}

	var errs []error
	if len(root) == 0 {
		errs = append(errs, errors.New("empty root enumeration"))
	}
	if !extensible && len(additions) > 0 {
		errs = append(errs, fmt.Errorf("%d additions on a non-extensible type", len(additions)))
	}
	add := func(e Enumerator) {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("enumerator with value %d has no name", e.Value))
		}
		if prev, ok := s.byValue[e.Value]; ok {
			errs = append(errs, fmt.Errorf("value %d used by both %s and %s", e.Value, prev.Name, e.Name))
		} else {
			s.byValue[e.Value] = e
		}
		if _, ok := s.byName[e.Name]; ok && e.Name != "" {
			errs = append(errs, fmt.Errorf("duplicate enumerator name %s", e.Name))
		} else {
			s.byName[e.Name] = e
		}
	}
	for i, e := range s.root {
		add(e)
		if _, ok := s.index[e.Value]; !ok {
			s.index[e.Value] = i
		}
	}
	for _, e := range s.additions {
		add(e)
	}

	if err := multierr.Combine(errs...); err != nil {
		return nil, fmt.Errorf("ENUMERATED %s: %w", name, err)
	}
	return s, nil
}

// MustNew is like New but panics on error. Generated bindings use it.
func MustNew(name string, root []Enumerator, extensible bool, additions ...Enumerator) *Spec {
	s, err := New(name, root, extensible, additions...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the ASN.1 type name.
func (s *Spec) Name() string {
	return s.name
}

// Extensible reports whether the type carries an extension marker.
func (s *Spec) Extensible() bool {
	return s.extensible
}

// RootCount returns the number of root enumerators.
func (s *Spec) RootCount() int {
	return len(s.root)
}

// Root returns the root enumerator at index i.
func (s *Spec) Root(i int) Enumerator {
	return s.root[i]
}

// Roots returns a copy of the root enumerators in index order.
func (s *Spec) Roots() []Enumerator {
	return append([]Enumerator(nil), s.root...)
}

// Additions returns a copy of the known extension enumerators.
func (s *Spec) Additions() []Enumerator {
	return append([]Enumerator(nil), s.additions...)
}

// BitWidth returns ⌈log2(RootCount)⌉, the width of the PER root index.
// A single root enumerator needs no bits.
func (s *Spec) BitWidth() int {
	if len(s.root) <= 1 {
		return 0
	}
	return bits.Len(uint(len(s.root) - 1))
}

// Classify maps an ordinal to its root index, or marks it as an extension value.
func (s *Spec) Classify(ordinal int64) Value {
	if i, ok := s.index[ordinal]; ok {
		return Root(i, ordinal)
	}
	return Extension(ordinal)
}

// Lookup finds the named enumerator for an ordinal, root or known addition.
func (s *Spec) Lookup(ordinal int64) (Enumerator, bool) {
	e, ok := s.byValue[ordinal]
	return e, ok
}

// LookupName finds an enumerator by its exact identifier.
func (s *Spec) LookupName(name string) (Enumerator, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// Check reports whether ordinal is a permitted value of the type.
// Any ordinal is permitted on an extensible type.
func (s *Spec) Check(ordinal int64) error {
	if s.extensible {
		return nil
	}
	if _, ok := s.index[ordinal]; !ok {
		return asnerr.Errorf(asnerr.ErrUnknownEnumerator, "%d is not a value of %s", ordinal, s.name)
	}
	return nil
}
