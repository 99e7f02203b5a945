// Package xer implements the XML Encoding Rules (ITU-T X.693) for ENUMERATED
// values.
//
// An enumerator is carried by its identifier, either as an empty element
// (<Links-to-log><uplink/></Links-to-log>) or as text content
// (<Links-to-log>uplink</Links-to-log>). Encoders always emit the empty element
// form. There is no numeric fallback: an ordinal without a known identifier
// cannot be written, and an identifier outside the symbolic table cannot be read.
package xer

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/thebagchi/asn1enum-go/lib/asnerr"
	"github.com/thebagchi/asn1enum-go/lib/bitbuffer"
	"github.com/thebagchi/asn1enum-go/lib/constraint"
)

// Append appends the XER encoding of ordinal. With an empty tag only the
// enumerator element is written.
func Append(dst []byte, spec *constraint.Spec, ordinal int64, tag string) ([]byte, error) {
	e, ok := spec.Lookup(ordinal)
	if !ok {
		return dst, asnerr.Errorf(asnerr.ErrUnknownEnumerator, "%d has no identifier in %s", ordinal, spec.Name())
	}
	if tag != "" {
		dst = append(dst, '<')
		dst = append(dst, tag...)
		dst = append(dst, '>')
	}
	dst = append(dst, '<')
	dst = append(dst, e.Name...)
	dst = append(dst, '/', '>')
	if tag != "" {
		dst = append(dst, '<', '/')
		dst = append(dst, tag...)
		dst = append(dst, '>')
	}
	return dst, nil
}

// Encoder writes ENUMERATED values as XML elements.
type Encoder struct {
	codec *bitbuffer.Codec
	tag   string
}

// NewEncoder creates an encoder with a growable buffer. tag names the
// enclosing element, usually the ASN.1 type reference.
func NewEncoder(tag string) *Encoder {
	return &Encoder{codec: bitbuffer.CreateWriter(), tag: tag}
}

// NewFixedEncoder creates an encoder limited to capacity bytes.
func NewFixedEncoder(tag string, capacity int) *Encoder {
	return &Encoder{codec: bitbuffer.CreateFixedWriter(capacity), tag: tag}
}

// EncodeEnumerated writes one value. On failure nothing is written.
func (e *Encoder) EncodeEnumerated(spec *constraint.Spec, ordinal int64) error {
	data, err := Append(nil, spec, ordinal, e.tag)
	if err != nil {
		return err
	}
	return e.codec.WriteBytes(data)
}

// Bytes returns the encoded document.
func (e *Encoder) Bytes() []byte {
	return e.codec.Bytes()
}

// Len returns the number of bytes written.
func (e *Encoder) Len() int {
	return e.codec.Len()
}

// Decoder reads ENUMERATED values from XML text.
type Decoder struct {
	data []byte
	pos  int
	tag  string
}

// NewDecoder creates a decoder expecting values wrapped in tag, or bare
// enumerator elements when tag is empty.
func NewDecoder(data []byte, tag string) *Decoder {
	return &Decoder{data: data, tag: tag}
}

// Consumed returns the number of bytes consumed by successful decodes.
func (d *Decoder) Consumed() int {
	return d.pos
}

// Rest returns unconsumed input.
func (d *Decoder) Rest() []byte {
	return d.data[d.pos:]
}

// DecodeEnumerated reads one value and returns its ordinal.
// The cursor only moves when decoding succeeds.
func (d *Decoder) DecodeEnumerated(spec *constraint.Spec) (int64, error) {
	wire := d.data[d.pos:]
	if len(bytes.TrimSpace(wire)) == 0 {
		return 0, asnerr.Errorf(asnerr.ErrTruncatedInput, "no element")
	}

	dec := xml.NewDecoder(bytes.NewReader(wire))
	tok, err := next(dec)
	if err != nil {
		return 0, err
	}
	start, ok := tok.(xml.StartElement)
	if !ok {
		return 0, asnerr.Errorf(asnerr.ErrUnexpectedTag, "expected element, found %T", tok)
	}

	var name string
	if d.tag == "" {
		name = start.Name.Local
		if err := expectEnd(dec, name); err != nil {
			return 0, err
		}
	} else {
		if start.Name.Local != d.tag {
			return 0, asnerr.Errorf(asnerr.ErrUnexpectedTag, "<%s>, want <%s>", start.Name.Local, d.tag)
		}
		if name, err = content(dec, d.tag); err != nil {
			return 0, err
		}
	}

	e, ok := spec.LookupName(name)
	if !ok {
		return 0, asnerr.Errorf(asnerr.ErrUnknownEnumerator, "%q is not an identifier of %s", name, spec.Name())
	}
	d.pos += int(dec.InputOffset())
	return e.Value, nil
}

// content reads the enumerator inside the wrapper element, up to and
// including the wrapper's end tag.
func content(dec *xml.Decoder, tag string) (string, error) {
	tok, err := next(dec)
	if err != nil {
		return "", err
	}
	var name string
	switch t := tok.(type) {
	case xml.StartElement:
		name = t.Name.Local
		if err := expectEnd(dec, name); err != nil {
			return "", err
		}
	case xml.CharData:
		name = string(bytes.TrimSpace(t))
	case xml.EndElement:
		// <Type></Type>
		return "", nil
	}
	if err := expectEnd(dec, tag); err != nil {
		return "", err
	}
	return name, nil
}

func expectEnd(dec *xml.Decoder, name string) error {
	tok, err := next(dec)
	if err != nil {
		return err
	}
	if end, ok := tok.(xml.EndElement); !ok || end.Name.Local != name {
		return asnerr.Errorf(asnerr.ErrUnexpectedTag, "expected </%s>", name)
	}
	return nil
}

// next returns the next significant token, skipping whitespace, comments
// and processing instructions.
func next(dec *xml.Decoder) (xml.Token, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, tokenError(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		}
		return xml.CopyToken(tok), nil
	}
}

func tokenError(err error) error {
	var syntax *xml.SyntaxError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return asnerr.Errorf(asnerr.ErrTruncatedInput, "%v", err)
	case errors.As(err, &syntax) && syntax.Msg == "unexpected EOF":
		return asnerr.Errorf(asnerr.ErrTruncatedInput, "line %d: %s", syntax.Line, syntax.Msg)
	default:
		return asnerr.Errorf(asnerr.ErrUnexpectedTag, "%v", err)
	}
}
