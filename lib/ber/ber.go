// Package ber implements the Basic and Distinguished Encoding Rules (ITU-T X.690)
// for ENUMERATED values.
//
// BER and DER treat ENUMERATED as an INTEGER with universal tag 10. The
// encoding of a primitive integer with a definite length is the same under both
// rules, so a single Encoder serves both. The Decoder differs: in strict (DER)
// mode it rejects long-form lengths that fit the short form, leading zero length
// octets and redundant leading content octets; in BER mode it accepts them.
package ber

import (
	"encoding/asn1"
	"fmt"

	"github.com/thebagchi/asn1enum-go/lib/asnerr"
	"github.com/thebagchi/asn1enum-go/lib/bitbuffer"
	"github.com/thebagchi/asn1enum-go/lib/constraint"
)

const (
	// TagEnumerated is the identifier octet of a universal, primitive ENUMERATED.
	TagEnumerated = 0x0A

	// constructedBit marks a constructed encoding in the identifier octet.
	constructedBit = 0x20

	// maxLengthOctets bounds the long-form length; longer lengths cannot
	// describe an ENUMERATED content anyway.
	maxLengthOctets = 4
)

// Encoder writes ENUMERATED values as BER/DER TLVs.
type Encoder struct {
	codec *bitbuffer.Codec
}

// NewEncoder creates an encoder with a growable buffer.
func NewEncoder() *Encoder {
	return &Encoder{codec: bitbuffer.CreateWriter()}
}

// NewFixedEncoder creates an encoder that fails with
// asnerr.ErrCapacityExceeded rather than grow beyond capacity bytes.
func NewFixedEncoder(capacity int) *Encoder {
	return &Encoder{codec: bitbuffer.CreateFixedWriter(capacity)}
}

// EncodeEnumerated writes one TLV. On failure nothing is written.
func (e *Encoder) EncodeEnumerated(ordinal int64) error {
	data, err := asn1.Marshal(asn1.Enumerated(ordinal))
	if err != nil {
		return err
	}
	return e.codec.WriteBytes(data)
}

// Bytes returns the encoded TLVs.
func (e *Encoder) Bytes() []byte {
	return e.codec.Bytes()
}

// Len returns the number of bytes written.
func (e *Encoder) Len() int {
	return e.codec.Len()
}

// Decoder reads ENUMERATED TLVs from a buffer.
type Decoder struct {
	data   []byte
	pos    int
	strict bool
}

// NewDecoder creates a decoder; strict selects DER.
func NewDecoder(data []byte, strict bool) *Decoder {
	return &Decoder{data: data, strict: strict}
}

// Consumed returns the number of bytes consumed by successful decodes.
func (d *Decoder) Consumed() int {
	return d.pos
}

// Rest returns unconsumed input.
func (d *Decoder) Rest() []byte {
	return d.data[d.pos:]
}

func (d *Decoder) rule() string {
	if d.strict {
		return "DER"
	}
	return "BER"
}

// DecodeEnumerated reads one TLV and returns its integer value.
// The cursor only moves when decoding succeeds.
// Headers are walked here since encoding/asn1 parses DER headers only.
func (d *Decoder) DecodeEnumerated() (int64, error) {
	wire := d.data[d.pos:]
	if len(wire) == 0 {
		return 0, asnerr.Errorf(asnerr.ErrTruncatedInput, "missing identifier octet")
	}
	if tag := wire[0]; tag != TagEnumerated {
		if tag == TagEnumerated|constructedBit {
			return 0, asnerr.Errorf(asnerr.ErrUnexpectedTag, "constructed ENUMERATED")
		}
		return 0, asnerr.Errorf(asnerr.ErrUnexpectedTag, "identifier 0x%02X, want 0x%02X", tag, TagEnumerated)
	}

	length, header, err := d.decodeLength(wire[1:])
	if err != nil {
		return 0, err
	}
	header++
	if len(wire)-header < length {
		return 0, asnerr.Errorf(asnerr.ErrTruncatedInput, "need %d content octets, have %d", length, len(wire)-header)
	}
	if length == 0 {
		return 0, asnerr.Errorf(asnerr.ErrMalformedLength, "empty ENUMERATED content")
	}

	content := wire[header : header+length]
	if redundant(content) {
		if d.strict {
			return 0, asnerr.Errorf(asnerr.ErrNonCanonicalEncoding, "%s: integer not minimally-encoded", d.rule())
		}
		for len(content) > 1 && redundant(content) {
			content = content[1:]
		}
	}
	if len(content) > 8 {
		return 0, asnerr.Errorf(asnerr.ErrOverflow, "%d content octets", len(content))
	}

	d.pos += header + length
	return constraint.ParseTwosComplement(content), nil
}

// decodeLength parses the length octets, returning the length and the number
// of octets used.
func (d *Decoder) decodeLength(wire []byte) (length int, n int, err error) {
	if len(wire) == 0 {
		return 0, 0, asnerr.Errorf(asnerr.ErrTruncatedInput, "missing length octet")
	}
	first := wire[0]
	switch {
	case first < 0x80:
		return int(first), 1, nil
	case first == 0x80:
		return 0, 0, asnerr.Errorf(asnerr.ErrMalformedLength, "indefinite length on primitive encoding")
	case first == 0xFF:
		return 0, 0, asnerr.Errorf(asnerr.ErrMalformedLength, "reserved length octet 0xFF")
	}

	count := int(first & 0x7F)
	if len(wire)-1 < count {
		return 0, 0, asnerr.Errorf(asnerr.ErrTruncatedInput, "need %d length octets, have %d", count, len(wire)-1)
	}
	octets := wire[1 : 1+count]
	if d.strict && octets[0] == 0x00 {
		return 0, 0, asnerr.Errorf(asnerr.ErrNonCanonicalEncoding, "%s: leading zero length octet", d.rule())
	}
	for len(octets) > 0 && octets[0] == 0x00 {
		octets = octets[1:]
	}
	if len(octets) > maxLengthOctets {
		return 0, 0, asnerr.Errorf(asnerr.ErrMalformedLength, "length of %d octets", len(octets))
	}
	for _, b := range octets {
		length = (length << 8) | int(b)
	}
	if d.strict && length < 0x80 {
		return 0, 0, asnerr.Errorf(asnerr.ErrNonCanonicalEncoding, "%s: long form for length %d", d.rule(), length)
	}
	return length, 1 + count, nil
}

// redundant reports whether the first content octet only repeats the sign of
// the second (X.690 8.3.2).
func redundant(content []byte) bool {
	return len(content) > 1 &&
		((content[0] == 0x00 && content[1]&0x80 == 0x00) || (content[0] == 0xFF && content[1]&0x80 == 0x80))
}

// String describes the decoder position for diagnostics.
func (d *Decoder) String() string {
	return fmt.Sprintf("%s Decoder{pos: %d, len: %d}", d.rule(), d.pos, len(d.data))
}
