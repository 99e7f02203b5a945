package per

import (
	"errors"

	"github.com/thebagchi/asn1enum-go/lib/asnerr"
	"github.com/thebagchi/asn1enum-go/lib/constraint"
)

// 14 Encoding the enumerated type
// |- 14.1 An enumerated type without an extension marker is encoded as a constrained whole
// |  |  number with "lb" set to 0 and "ub" set to one less than the number of root
// |  |  enumerators; the whole number is the index of the enumerator in the root.
// |- 14.2 An enumerated type with an extension marker is preceded by a single bit, set to 0
// |  |  for a root value and 1 for a value that is not in the root.
// |  |  A root value then follows as in 14.1.
// |  |  A value outside the root is carried as its own ordinal, an unconstrained whole
// |  |  number, so decoders built before the extension still recover it.

// EncodeEnumerated encodes ordinal as a value of the ENUMERATED type described by spec.
func (e *Encoder) EncodeEnumerated(spec *constraint.Spec, ordinal int64) error {
	value := spec.Classify(ordinal)

	if spec.Extensible() {
		if value.IsExtension() {
			if err := e.codec.Write(1, 1); err != nil {
				return err
			}
			return e.EncodeUnconstrainedWholeNumber(ordinal)
		}
		if err := e.codec.Write(1, 0); err != nil {
			return err
		}
	} else if value.IsExtension() {
		return asnerr.Errorf(asnerr.ErrUnknownEnumerator, "%d is not a root value of %s", ordinal, spec.Name())
	}

	ub := int64(spec.RootCount() - 1)
	return e.EncodeConstrainedWholeNumber(0, ub, int64(value.Index()))
}

// DecodeEnumerated decodes a value of the ENUMERATED type described by spec.
// An extension value that the binding has never seen is returned as is.
func (d *Decoder) DecodeEnumerated(spec *constraint.Spec) (constraint.Value, error) {
	if spec.Extensible() {
		extended, err := d.codec.Read(1)
		if err != nil {
			return constraint.Value{}, err
		}
		if extended != 0 {
			return d.decodeExtension(spec)
		}
	}

	count := spec.RootCount()
	index, err := d.DecodeConstrainedWholeNumber(0, int64(count-1))
	if err != nil {
		return constraint.Value{}, err
	}
	if index < 0 || index >= int64(count) {
		return constraint.Value{}, asnerr.Errorf(asnerr.ErrOutOfRangeIndex, "index %d of %s, root count %d", index, spec.Name(), count)
	}
	root := spec.Root(int(index))
	return constraint.Root(int(index), root.Value), nil
}

func (d *Decoder) decodeExtension(spec *constraint.Spec) (constraint.Value, error) {
	ordinal, err := d.DecodeUnconstrainedWholeNumber()
	switch {
	case errors.Is(err, asnerr.ErrMalformedLength), errors.Is(err, asnerr.ErrOverflow):
		return constraint.Value{}, asnerr.Errorf(asnerr.ErrMalformedExtension, "%s: %v", spec.Name(), err)
	case err != nil:
		return constraint.Value{}, err
	}

	value := spec.Classify(ordinal)
	if value.IsRoot() {
		return constraint.Value{}, asnerr.Errorf(asnerr.ErrMalformedExtension, "%s: root value %d marked as extension", spec.Name(), ordinal)
	}
	return value, nil
}
