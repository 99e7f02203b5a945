package constraint

import "math/bits"

// 11.3 Encoding as a non-negative-binary-integer
// |- 11.3.6 A minimum octet non-negative-binary-integer encoding of the whole number has a
// |  |  field which is a multiple of eight bits and also satisfies the condition that the
// |  |  leading eight bits of the field shall not all be zero unless the field is precisely
// |  |  eight bits long.

func BitsNonNegativeBinaryInteger(value uint64) int {
	if value == 0 {
		return 1
	}
	return bits.Len64(value)
}

func OctetsNonNegativeBinaryIntegerLength(value uint64) int {
	bits := BitsNonNegativeBinaryInteger(value)
	return (bits + 7) >> 3
}

// 11.4 Encoding as a 2's-complement-binary-integer
// |- 11.4.6 A minimum octet 2's-complement-binary-integer encoding of the whole number has a
// |  |  field-width that is a multiple of eight bits and also satisfies the condition that the
// |  |  leading nine bits of the field shall not all be zero and shall not all be ones.
// |- X.690 8.3.2 applies the same rule to the contents octets of a BER INTEGER or
// |  |  ENUMERATED, so the BER/DER codec shares these helpers.

func BitsTwosComplementBinaryInteger(value int64) int {
	if value == 0 {
		return 1
	}
	if value > 0 {
		return bits.Len64(uint64(value)) + 1
	}
	// For negative values the leading nine bits shall not all be ones
	return bits.Len64(uint64(^value)) + 1
}

func OctetsTwosComplementBinaryInteger(value int64) int {
	bits := BitsTwosComplementBinaryInteger(value)
	return (bits + 7) >> 3
}

// AppendTwosComplement appends the minimum octet 2's-complement encoding of value.
func AppendTwosComplement(dst []byte, value int64) []byte {
	for i := OctetsTwosComplementBinaryInteger(value) - 1; i >= 0; i-- {
		dst = append(dst, byte(value>>(uint(i)*8)))
	}
	return dst
}

// ParseTwosComplement interprets up to eight big-endian octets as a signed integer.
func ParseTwosComplement(octets []byte) int64 {
	if len(octets) == 0 {
		return 0
	}
	var value uint64
	for _, b := range octets {
		value = (value << 8) | uint64(b)
	}
	// Shift up and down in order to sign extend the result.
	shift := 64 - uint(len(octets))*8
	return int64(value<<shift) >> shift
}
