// Package asnerr defines the error kinds reported by the ENUMERATED codecs.
//
// Every failure returned by bitbuffer, per, ber, xer and enumerated wraps one
// of the sentinel errors below, so callers can branch with errors.Is or
// KindOf regardless of which encoding rule produced it.
package asnerr

import (
	"errors"
	"fmt"
)

// Kind classifies a codec failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	TruncatedInput
	OutOfRangeIndex
	MalformedExtension
	UnknownEnumerator
	NonCanonicalEncoding
	CapacityExceeded
	MalformedLength
	UnexpectedTag
	Overflow
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	TruncatedInput:       "truncated input",
	OutOfRangeIndex:      "root index out of range",
	MalformedExtension:   "malformed extension",
	UnknownEnumerator:    "unknown enumerator",
	NonCanonicalEncoding: "non-canonical encoding",
	CapacityExceeded:     "capacity exceeded",
	MalformedLength:      "malformed length",
	UnexpectedTag:        "unexpected tag",
	Overflow:             "value overflows int64",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error conditions.
var (
	ErrTruncatedInput       = &sentinel{TruncatedInput}
	ErrOutOfRangeIndex      = &sentinel{OutOfRangeIndex}
	ErrMalformedExtension   = &sentinel{MalformedExtension}
	ErrUnknownEnumerator    = &sentinel{UnknownEnumerator}
	ErrNonCanonicalEncoding = &sentinel{NonCanonicalEncoding}
	ErrCapacityExceeded     = &sentinel{CapacityExceeded}
	ErrMalformedLength      = &sentinel{MalformedLength}
	ErrUnexpectedTag        = &sentinel{UnexpectedTag}
	ErrOverflow             = &sentinel{Overflow}
)

type sentinel struct {
	kind Kind
}

func (s *sentinel) Error() string {
	return s.kind.String()
}

// Error is a failure annotated with the operation and type that produced it.
type Error struct {
	Op   string // e.g. "decode_uper"
	Type string // ASN.1 type name, may be empty
	Err  error
}

func (e *Error) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf wraps a sentinel with a formatted detail message.
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// KindOf returns the Kind of the first sentinel found in err's chain.
func KindOf(err error) Kind {
	var s *sentinel
	if errors.As(err, &s) {
		return s.kind
	}
	return KindUnknown
}
