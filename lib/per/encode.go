package per

import (
	"github.com/thebagchi/asn1enum-go/lib/bitbuffer"
	"github.com/thebagchi/asn1enum-go/lib/constraint"
)

// Encoder represents a PER encoder for bit-level encoding
type Encoder struct {
	codec   *bitbuffer.Codec
	aligned bool
}

// NewEncoder creates a new PER encoder with a growable buffer
// aligned: true for APER (Aligned PER), false for UPER (Unaligned PER)
func NewEncoder(aligned bool) *Encoder {
	return &Encoder{
		codec:   bitbuffer.CreateWriter(),
		aligned: aligned,
	}
}

// NewFixedEncoder creates a PER encoder that fails with
// asnerr.ErrCapacityExceeded rather than grow beyond capacity bytes.
func NewFixedEncoder(aligned bool, capacity int) *Encoder {
	return &Encoder{
		codec:   bitbuffer.CreateFixedWriter(capacity),
		aligned: aligned,
	}
}

// Aligned reports whether this is an APER encoder.
func (e *Encoder) Aligned() bool {
	return e.aligned
}

// Bytes returns the encoded bytes; the last octet is zero-padded.
func (e *Encoder) Bytes() []byte {
	return e.codec.Bytes()
}

// NumWritten returns the number of bits written so far.
func (e *Encoder) NumWritten() uint64 {
	return e.codec.NumWritten()
}

// Align pads the output to an octet boundary.
func (e *Encoder) Align() error {
	return e.codec.Align()
}

// 11.5 Encoding of a constrained whole number
// |- 11.5.3 Let "range" be defined as the integer value ("ub" - "lb" + 1), and let the value
// |  |  to be encoded be "n".
// |- 11.5.4 If "range" has the value 1, then the result of the encoding shall be an empty
// |  |  bit-field (no bits).
// |- 11.5.6 In the case of the UNALIGNED variant the value ("n" - "lb") shall be encoded as a
// |  |  non-negative-binary-integer in a bit-field with the minimum number of bits necessary
// |  |  to represent the range.
// |- 11.5.7 In the case of the ALIGNED variant the encoding depends on whether:
// |  |  a) "range" is less than or equal to 255 (the bit-field case);
// |  |  b) "range" is exactly 256 (the one-octet case);
// |  |  c) "range" is greater than 256 and less than or equal to 64K (the two-octet case);
// |  |  d) "range" is greater than 64K (the indefinite length case).

func (e *Encoder) EncodeConstrainedWholeNumber(lb, ub, n int64) error {
	vr := ub - lb + 1
	if vr == 1 {
		return nil
	}

	value := uint64(n - lb)
	if !e.aligned || vr <= 0xFF {
		// 11.5.6 / 11.5.7.1: minimum bit-field, no alignment
		bits := constraint.BitsNonNegativeBinaryInteger(uint64(vr - 1))
		return e.codec.Write(uint8(bits), value)
	}
	// 11.5.7.2: One-octet case (range = 256) - octet-aligned
	if vr == 0x100 {
		if err := e.codec.Align(); nil != err {
			return err
		}
		return e.codec.Write(8, value)
	}
	// 11.5.7.3: Two-octet case (range 257-64K) - octet-aligned
	if vr <= 0x10000 {
		if err := e.codec.Align(); nil != err {
			return err
		}
		return e.codec.Write(16, value)
	}
	// 11.5.7.4: Indefinite length case (range > 64K), constrained length
	// determinant with lb=1 and ub=octets needed to hold the range
	var (
		octets  = constraint.OctetsNonNegativeBinaryIntegerLength(value)
		lbRange = uint64(1)
		ubRange = uint64(constraint.OctetsNonNegativeBinaryIntegerLength(uint64(ub - lb)))
	)
	if _, err := e.EncodeLengthDeterminant(uint64(octets), &lbRange, &ubRange); err != nil {
		return err
	}
	if err := e.codec.Align(); nil != err {
		return err
	}
	return e.codec.Write(uint8(octets*8), value)
}

// 11.8 Encoding of an unconstrained whole number
// |- 11.8.1 This subclause is used when the whole number has no lower bound and no upper
// |  |  bound.
// |- 11.8.3 The value shall be encoded as a 2's-complement-binary-integer into the minimum
// |  |  number of octets, octet-aligned in the ALIGNED variant, and preceded by an
// |  |  unconstrained length determinant giving the number of octets.

func (e *Encoder) EncodeUnconstrainedWholeNumber(n int64) error {
	octets := constraint.OctetsTwosComplementBinaryInteger(n)
	// 11.8.3: octet-aligned in the ALIGNED variant only
	if e.aligned {
		if err := e.codec.Align(); nil != err {
			return err
		}
	}
	if _, err := e.EncodeLengthDeterminant(uint64(octets), nil, nil); err != nil {
		return err
	}
	return e.codec.WriteBytes(constraint.AppendTwosComplement(nil, n))
}

// 11.9 General rules for encoding a length determinant
// |- 11.9.3.3 / 11.9.4.1: Where "ub" is less than 64K, the length is encoded as a
// |  |  constrained whole number in the range "lb" to "ub".
// |- 11.9.4.2: Otherwise, the length is encoded in one octet (0..127), two octets with the
// |  |  leading bits "10" (128..16K-1), or as a fragment count with leading bits "11".

func (e *Encoder) EncodeLengthDeterminant(n uint64, lb *uint64, ub *uint64) (uint64, error) {
	if ub != nil && lb != nil && *ub < MAX_CONSTRAINED_LENGTH {
		if err := e.EncodeConstrainedWholeNumber(int64(*lb), int64(*ub), int64(n)); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return e.EncodeUnconstrainedLength(n)
}

// EncodeUnconstrainedLength writes an unconstrained length determinant and
// returns the number of octets still to be covered by later fragments.
func (e *Encoder) EncodeUnconstrainedLength(n uint64) (uint64, error) {
	if e.aligned {
		if err := e.codec.Align(); err != nil {
			return 0, err
		}
	}

	if n <= 127 {
		return 0, e.codec.Write(8, n)
	}

	if n < FRAGMENT_SIZE {
		return 0, e.codec.Write(16, (1<<15)|n)
	}

	m := CalculateFragmentSize(n)
	k := m / FRAGMENT_SIZE
	if err := e.codec.Write(8, (3<<6)|k); err != nil {
		return 0, err
	}
	return n - m, nil
}

// CalculateFragmentSize returns the largest fragment (16K multiple, at most 64K)
// that fits in n.
func CalculateFragmentSize(n uint64) uint64 {
	switch {
	case n >= 4*FRAGMENT_SIZE:
		return 4 * FRAGMENT_SIZE
	case n >= 3*FRAGMENT_SIZE:
		return 3 * FRAGMENT_SIZE
	case n >= 2*FRAGMENT_SIZE:
		return 2 * FRAGMENT_SIZE
	default:
		return FRAGMENT_SIZE
	}
}
