package per

import (
	"github.com/thebagchi/asn1enum-go/lib/asnerr"
	"github.com/thebagchi/asn1enum-go/lib/bitbuffer"
	"github.com/thebagchi/asn1enum-go/lib/constraint"
)

// Decoder represents a PER decoder
type Decoder struct {
	codec   *bitbuffer.Codec
	aligned bool
}

// NewDecoder creates a new PER decoder from encoded data
// aligned: true for APER, false for UPER
func NewDecoder(data []byte, aligned bool) *Decoder {
	return &Decoder{
		codec:   bitbuffer.CreateReader(data),
		aligned: aligned,
	}
}

// Aligned reports whether this is an APER decoder.
func (d *Decoder) Aligned() bool {
	return d.aligned
}

// NumRead returns the number of bits consumed so far.
func (d *Decoder) NumRead() uint64 {
	return d.codec.NumRead()
}

// Advance skips to the next octet boundary.
func (d *Decoder) Advance() error {
	return d.codec.Advance()
}

// DecodeConstrainedWholeNumber decodes a constrained whole number
// with lower bound lb and upper bound ub.
func (d *Decoder) DecodeConstrainedWholeNumber(lb, ub int64) (int64, error) {
	vr := ub - lb + 1

	// 11.5.4: range of 1 is an empty bit-field
	if vr == 1 {
		return lb, nil
	}

	if !d.aligned || vr <= 0xFF {
		bits := constraint.BitsNonNegativeBinaryInteger(uint64(vr - 1))
		value, err := d.codec.Read(uint8(bits))
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}

	// 11.5.7.2: One-octet case (range == 256) - octet-aligned
	if vr == 0x100 {
		if err := d.codec.Advance(); err != nil {
			return 0, err
		}
		value, err := d.codec.Read(8)
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}

	// 11.5.7.3: Two-octet case (range 257-64K) - octet-aligned
	if vr <= 0x10000 {
		if err := d.codec.Advance(); err != nil {
			return 0, err
		}
		value, err := d.codec.Read(16)
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}

	// 11.5.7.4: Indefinite length case (range > 64K)
	var (
		lbRange = uint64(1)
		ubRange = uint64(constraint.OctetsNonNegativeBinaryIntegerLength(uint64(ub - lb)))
	)
	octets, _, err := d.DecodeLengthDeterminant(&lbRange, &ubRange)
	if err != nil {
		return 0, err
	}
	if err := d.codec.Advance(); err != nil {
		return 0, err
	}
	value, err := d.codec.Read(uint8(octets * 8))
	if err != nil {
		return 0, err
	}
	return lb + int64(value), nil
}

// DecodeUnconstrainedWholeNumber decodes an unconstrained whole number,
// a 2's-complement-binary-integer preceded by its length in octets.
// A length of zero, a fragmented length, or more than eight octets is
// reported as asnerr.ErrMalformedLength or asnerr.ErrOverflow.
func (d *Decoder) DecodeUnconstrainedWholeNumber() (int64, error) {
	// 11.8.3: octet-aligned in the ALIGNED variant only
	if d.aligned {
		if err := d.codec.Advance(); err != nil {
			return 0, err
		}
	}

	octets, more, err := d.DecodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	switch {
	case more || octets == 0:
		return 0, asnerr.Errorf(asnerr.ErrMalformedLength, "integer length %d", octets)
	case octets > 8:
		return 0, asnerr.Errorf(asnerr.ErrOverflow, "integer of %d octets", octets)
	}

	content, err := d.codec.ReadBytes(int(octets))
	if err != nil {
		return 0, err
	}
	return constraint.ParseTwosComplement(content), nil
}

// DecodeLengthDeterminant decodes a length determinant.
// If both lb and ub are provided and ub < MAX_CONSTRAINED_LENGTH, the length is decoded as a constrained whole number.
// Otherwise, it is decoded as an unconstrained length.
// Returns (length, hasMoreFragments, error).
func (d *Decoder) DecodeLengthDeterminant(lb, ub *uint64) (uint64, bool, error) {
	if ub != nil && lb != nil && *ub < MAX_CONSTRAINED_LENGTH {
		value, err := d.DecodeConstrainedWholeNumber(int64(*lb), int64(*ub))
		if err != nil {
			return 0, false, err
		}
		return uint64(value), false, nil
	}
	return d.DecodeUnconstrainedLength()
}

// DecodeUnconstrainedLength decodes an unconstrained length determinant.
// Returns (length, hasMoreFragments, error):
// - hasMoreFragments is true for the fragment form, more octets follow
// - hasMoreFragments is false if this is the final length determinant
func (d *Decoder) DecodeUnconstrainedLength() (uint64, bool, error) {
	// 11.9.4.2: octet-aligned in the ALIGNED variant only
	if d.aligned {
		if err := d.codec.Advance(); err != nil {
			return 0, false, err
		}
	}

	first, err := d.codec.Read(8)
	if err != nil {
		return 0, false, err
	}

	// 0xxxxxxx: length in range 0-127
	if first&0x80 == 0 {
		return first, false, nil
	}

	// 10xxxxxx xxxxxxxx: length in range 128-16383
	if first&0xC0 == 0x80 {
		second, err := d.codec.Read(8)
		if err != nil {
			return 0, false, err
		}
		return ((first & 0x3F) << 8) | second, false, nil
	}

	// 11xxxxxx: fragment count, each FRAGMENT_SIZE octets
	fragments := first & 0x3F
	return fragments * FRAGMENT_SIZE, true, nil
}
