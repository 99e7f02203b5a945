// Package enumerated binds an ENUMERATED type definition to every encoding rule.
//
// A Descriptor is the single handle that message framing code holds for a
// field of an ENUMERATED type. It closes over one immutable constraint.Spec,
// so one Descriptor may be shared by any number of goroutines; each call owns
// its buffers and cursors.
package enumerated

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/thebagchi/asn1enum-go/internal/options"
	"github.com/thebagchi/asn1enum-go/lib/asnerr"
	"github.com/thebagchi/asn1enum-go/lib/ber"
	"github.com/thebagchi/asn1enum-go/lib/constraint"
	"github.com/thebagchi/asn1enum-go/lib/logging"
	"github.com/thebagchi/asn1enum-go/lib/per"
	"github.com/thebagchi/asn1enum-go/lib/xer"
)

var logger = logging.New("enumerated")

// Encoding is the outcome of an encode call.
type Encoding struct {
	Bytes []byte
	Bits  uint64 // significant bits; trailing octet padding excluded
}

// Result is the outcome of a decode call.
type Result struct {
	Value constraint.Value
	Bytes int    // octets consumed from the offset
	Bits  uint64 // bits consumed; 8*Bytes except for PER
}

// Descriptor is the capability set of one ENUMERATED type.
type Descriptor interface {
	Name() string
	Spec() *constraint.Spec

	// Print writes the value the way asn1c's printer does: the number followed
	// by the identifier in parentheses, or only the number when it has none.
	Print(w io.Writer, ordinal int64) error
	// Free resets a value to its zero state.
	Free(ordinal *int64)
	CheckConstraints(ordinal int64) error

	DecodeBER(data []byte) (Result, error)
	EncodeDER(ordinal int64) (Encoding, error)
	DecodeDER(data []byte) (Result, error)
	EncodeBER(ordinal int64) (Encoding, error)
	DecodeXER(data []byte) (Result, error)
	EncodeXER(ordinal int64) (Encoding, error)
	DecodeUPER(data []byte) (Result, error)
	EncodeUPER(ordinal int64) (Encoding, error)
	DecodeAPER(data []byte) (Result, error)
	EncodeAPER(ordinal int64) (Encoding, error)

	Encode(rule Rule, ordinal int64) (Encoding, error)
	Decode(rule Rule, data []byte, offset int) (Result, error)

	// MarshalPER appends the value to a bit stream shared with other fields.
	MarshalPER(e *per.Encoder, ordinal int64) error
	// UnmarshalPER reads the value from a bit stream shared with other fields.
	UnmarshalPER(d *per.Decoder) (constraint.Value, error)
}

// Type implements Descriptor.
type Type struct {
	spec *constraint.Spec
	cfg  config
}

var _ Descriptor = (*Type)(nil)

// New creates a descriptor for spec.
func New(spec *constraint.Spec, opts ...Option) (*Type, error) {
	if spec == nil {
		return nil, fmt.Errorf("enumerated: nil spec")
	}
	t := &Type{
		spec: spec,
		cfg: config{
			logger: logger,
			xmlTag: spec.Name(),
		},
	}
	if err := options.Apply(&t.cfg, opts...); err != nil {
		return nil, fmt.Errorf("enumerated %s: %w", spec.Name(), err)
	}
	t.cfg.logger = t.cfg.logger.With(zap.String("type", spec.Name()))
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(spec *constraint.Spec, opts ...Option) *Type {
	t, e := New(spec, opts...)
	if e != nil {
		panic(e)
	}
	return t
}

// Name returns the ASN.1 type reference.
func (t *Type) Name() string {
	return t.spec.Name()
}

// Spec returns the constraint model.
func (t *Type) Spec() *constraint.Spec {
	return t.spec
}

func (t *Type) fail(op string, err error) error {
	t.cfg.logger.Debug("codec failure",
		zap.String("op", op),
		zap.Stringer("kind", asnerr.KindOf(err)),
		zap.Error(err),
	)
	return &asnerr.Error{Op: op, Type: t.spec.Name(), Err: err}
}

// Print implements Descriptor.
func (t *Type) Print(w io.Writer, ordinal int64) error {
	s := strconv.FormatInt(ordinal, 10)
	if e, ok := t.spec.Lookup(ordinal); ok {
		s += " (" + e.Name + ")"
	}
	if _, err := io.WriteString(w, s); err != nil {
		return t.fail("print", err)
	}
	return nil
}

// Free implements Descriptor.
func (t *Type) Free(ordinal *int64) {
	if ordinal != nil {
		*ordinal = 0
	}
}

// CheckConstraints implements Descriptor.
func (t *Type) CheckConstraints(ordinal int64) error {
	if err := t.spec.Check(ordinal); err != nil {
		return t.fail("constraint", err)
	}
	return nil
}

// Encode dispatches to the encoder of rule.
func (t *Type) Encode(rule Rule, ordinal int64) (Encoding, error) {
	switch rule {
	case BER:
		return t.EncodeBER(ordinal)
	case DER:
		return t.EncodeDER(ordinal)
	case XER:
		return t.EncodeXER(ordinal)
	case UPER:
		return t.EncodeUPER(ordinal)
	case APER:
		return t.EncodeAPER(ordinal)
	}
	return Encoding{}, fmt.Errorf("enumerated %s: unsupported rule %v", t.spec.Name(), rule)
}

// Decode dispatches to the decoder of rule, starting at offset.
// Result.Bytes counts from offset.
func (t *Type) Decode(rule Rule, data []byte, offset int) (Result, error) {
	if offset < 0 || offset > len(data) {
		return Result{}, t.fail("decode", asnerr.Errorf(asnerr.ErrTruncatedInput, "offset %d outside %d octets", offset, len(data)))
	}
	data = data[offset:]
	switch rule {
	case BER:
		return t.DecodeBER(data)
	case DER:
		return t.DecodeDER(data)
	case XER:
		return t.DecodeXER(data)
	case UPER:
		return t.DecodeUPER(data)
	case APER:
		return t.DecodeAPER(data)
	}
	return Result{}, fmt.Errorf("enumerated %s: unsupported rule %v", t.spec.Name(), rule)
}

func (t *Type) encodeBER(op string, ordinal int64) (Encoding, error) {
	if err := t.spec.Check(ordinal); err != nil {
		return Encoding{}, t.fail(op, err)
	}
	var encoder *ber.Encoder
	if t.cfg.capacity > 0 {
		encoder = ber.NewFixedEncoder(t.cfg.capacity)
	} else {
		encoder = ber.NewEncoder()
	}
	if err := encoder.EncodeEnumerated(ordinal); err != nil {
		return Encoding{}, t.fail(op, err)
	}
	data := encoder.Bytes()
	return Encoding{Bytes: data, Bits: uint64(len(data)) * 8}, nil
}

func (t *Type) decodeBER(op string, data []byte, strict bool) (Result, error) {
	decoder := ber.NewDecoder(data, strict)
	ordinal, err := decoder.DecodeEnumerated()
	if err == nil {
		err = t.spec.Check(ordinal)
	}
	if err != nil {
		return Result{}, t.fail(op, err)
	}
	n := decoder.Consumed()
	return Result{Value: t.spec.Classify(ordinal), Bytes: n, Bits: uint64(n) * 8}, nil
}

// EncodeDER implements Descriptor.
func (t *Type) EncodeDER(ordinal int64) (Encoding, error) {
	return t.encodeBER("encode_der", ordinal)
}

// EncodeBER implements Descriptor. The output is also valid DER.
func (t *Type) EncodeBER(ordinal int64) (Encoding, error) {
	return t.encodeBER("encode_ber", ordinal)
}

// DecodeBER implements Descriptor.
func (t *Type) DecodeBER(data []byte) (Result, error) {
	return t.decodeBER("decode_ber", data, false)
}

// DecodeDER implements Descriptor. Encodings that BER tolerates but DER
// forbids fail with asnerr.ErrNonCanonicalEncoding.
func (t *Type) DecodeDER(data []byte) (Result, error) {
	return t.decodeBER("decode_der", data, true)
}

// EncodeXER implements Descriptor.
func (t *Type) EncodeXER(ordinal int64) (Encoding, error) {
	var encoder *xer.Encoder
	if t.cfg.capacity > 0 {
		encoder = xer.NewFixedEncoder(t.cfg.xmlTag, t.cfg.capacity)
	} else {
		encoder = xer.NewEncoder(t.cfg.xmlTag)
	}
	if err := encoder.EncodeEnumerated(t.spec, ordinal); err != nil {
		return Encoding{}, t.fail("encode_xer", err)
	}
	data := encoder.Bytes()
	return Encoding{Bytes: data, Bits: uint64(len(data)) * 8}, nil
}

// DecodeXER implements Descriptor.
func (t *Type) DecodeXER(data []byte) (Result, error) {
	decoder := xer.NewDecoder(data, t.cfg.xmlTag)
	ordinal, err := decoder.DecodeEnumerated(t.spec)
	if err != nil {
		return Result{}, t.fail("decode_xer", err)
	}
	n := decoder.Consumed()
	return Result{Value: t.spec.Classify(ordinal), Bytes: n, Bits: uint64(n) * 8}, nil
}

// encodePER produces a complete PER encoding: the field padded to whole octets,
// or a single zero octet when the field is empty (X.691 10.1.3).
func (t *Type) encodePER(op string, aligned bool, ordinal int64) (Encoding, error) {
	var encoder *per.Encoder
	if t.cfg.capacity > 0 {
		encoder = per.NewFixedEncoder(aligned, t.cfg.capacity)
	} else {
		encoder = per.NewEncoder(aligned)
	}
	if err := encoder.EncodeEnumerated(t.spec, ordinal); err != nil {
		return Encoding{}, t.fail(op, err)
	}
	data := encoder.Bytes()
	if len(data) == 0 {
		data = []byte{0x00}
	}
	return Encoding{Bytes: data, Bits: encoder.NumWritten()}, nil
}

func (t *Type) decodePER(op string, aligned bool, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, t.fail(op, asnerr.Errorf(asnerr.ErrTruncatedInput, "empty PER encoding"))
	}
	decoder := per.NewDecoder(data, aligned)
	value, err := decoder.DecodeEnumerated(t.spec)
	if err != nil {
		return Result{}, t.fail(op, err)
	}
	bits := decoder.NumRead()
	n := int((bits + 7) / 8)
	if n == 0 {
		n = 1
	}
	return Result{Value: value, Bytes: n, Bits: bits}, nil
}

// EncodeUPER implements Descriptor.
func (t *Type) EncodeUPER(ordinal int64) (Encoding, error) {
	return t.encodePER("encode_uper", false, ordinal)
}

// DecodeUPER implements Descriptor.
func (t *Type) DecodeUPER(data []byte) (Result, error) {
	return t.decodePER("decode_uper", false, data)
}

// EncodeAPER implements Descriptor.
func (t *Type) EncodeAPER(ordinal int64) (Encoding, error) {
	return t.encodePER("encode_aper", true, ordinal)
}

// DecodeAPER implements Descriptor.
func (t *Type) DecodeAPER(data []byte) (Result, error) {
	return t.decodePER("decode_aper", true, data)
}

// MarshalPER implements Descriptor.
func (t *Type) MarshalPER(e *per.Encoder, ordinal int64) error {
	if err := e.EncodeEnumerated(t.spec, ordinal); err != nil {
		return t.fail("marshal_per", err)
	}
	return nil
}

// UnmarshalPER implements Descriptor.
func (t *Type) UnmarshalPER(d *per.Decoder) (constraint.Value, error) {
	v, err := d.DecodeEnumerated(t.spec)
	if err != nil {
		return constraint.Value{}, t.fail("unmarshal_per", err)
	}
	return v, nil
}
