// Package bitbuffer provides bit-level I/O for the ENUMERATED codecs.
//
// # Overview
//
// The Codec type manages streaming bit-level encoding and decoding with MSB-first
// bit ordering. It supports writing and reading arbitrary bit lengths (0-64 bits),
// byte-aligned bulk operations, and byte boundary alignment. The PER codec drives
// it bit by bit; the BER and XER codecs use it as a byte sink so that every rule
// shares the same capacity accounting.
//
// # Sinks
//
//   - CreateWriter: growable sink, exponential allocation strategy
//   - CreateFixedWriter: fixed-capacity sink, overflow fails with asnerr.ErrCapacityExceeded
//   - CreateReader: read cursor over a caller-owned buffer, never mutated
//
// # Errors
//
// Reading past the end of input fails with asnerr.ErrTruncatedInput. A failed
// Read or ReadBytes leaves the cursor where it was.
//
// # Thread Safety
//
// Codec is NOT thread-safe. Each encode or decode call owns its Codec for the
// duration of the call.
package bitbuffer

import (
	"encoding/binary"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/thebagchi/asn1enum-go/lib/asnerr"
	"github.com/thebagchi/asn1enum-go/lib/logging"
)

const (
	// ENABLE_TRACE controls whether trace output is logged
	ENABLE_TRACE = false

	// BITS_PER_BYTE is the number of bits in a byte
	BITS_PER_BYTE = 8

	// TMP_ARRAY_SIZE is the size of temporary arrays used for binary operations
	TMP_ARRAY_SIZE = 8
)

var logger = logging.New("bitbuffer")

// InitialBufferSize is the initial capacity for the buffer in CreateWriter.
var InitialBufferSize = 64

var errBitCount = errors.New("bit count must be between 0 and 64")

// Codec manages a bit stream for encoding and decoding.
// Fields:
//
//	Buff: byte slice holding the encoded bit stream
//	offset: bit position in current byte (0-8)
//	  - offset=0: start of byte (no bits consumed from this byte)
//	  - offset=1-7: partial byte (1-7 bits consumed from this byte)
//	  - offset=8: end of byte (all 8 bits consumed, ready for next byte)
//	limit: maximum buffer length for fixed sinks, 0 when growable
//	written: total number of bits written
//	read: total number of bits read
type Codec struct {
	Buff    []byte
	offset  uint8
	limit   int
	written uint64
	read    uint64
}

// Trace logs the codec state.
// Only logs if ENABLE_TRACE is true (compile-time constant).
func (c *Codec) Trace(event, function string, fields ...zap.Field) {
	if !ENABLE_TRACE {
		return
	}
	logger.Debug(function,
		append(fields,
			zap.String("event", event),
			zap.Int("len", len(c.Buff)),
			zap.Uint8("offset", c.offset),
			zap.Uint64("written", c.written),
			zap.Uint64("read", c.read),
		)...,
	)
}

// CreateWriter creates a new growable Codec for writing.
func CreateWriter() *Codec {
	return &Codec{
		Buff: make([]byte, 0, InitialBufferSize),
	}
}

// CreateFixedWriter creates a Codec for writing that never holds more than
// capacity bytes. A write that would overflow fails with
// asnerr.ErrCapacityExceeded and leaves the buffer unchanged.
func CreateFixedWriter(capacity int) *Codec {
	return &Codec{
		Buff:  make([]byte, 0, capacity),
		limit: capacity,
	}
}

// CreateReader creates a new Codec for reading from existing data.
// The data is treated as read-only.
func CreateReader(data []byte) *Codec {
	return &Codec{
		Buff:   data,
		offset: 0,
	}
}

// Len returns the number of bytes currently in the buffer.
func (c *Codec) Len() int {
	return len(c.Buff)
}

// Cap returns the capacity of the underlying buffer.
func (c *Codec) Cap() int {
	return cap(c.Buff)
}

// NumWritten returns the total number of bits written, including padding.
func (c *Codec) NumWritten() uint64 {
	return c.written
}

// NumRead returns the total number of bits read, including skipped padding.
func (c *Codec) NumRead() uint64 {
	return c.read
}

// Bytes returns the encoded data.
// The final byte is zero-padded if written is not a multiple of 8.
func (c *Codec) Bytes() []byte {
	if c.written == 0 {
		return nil
	}
	return c.Buff
}

// available returns the number of unread bits.
func (c *Codec) available() uint64 {
	return uint64(len(c.Buff))*BITS_PER_BYTE - uint64(c.offset)
}

// reserve checks that n more bytes fit into a fixed sink.
func (c *Codec) reserve(n int) error {
	if c.limit > 0 && len(c.Buff)+n > c.limit {
		return asnerr.Errorf(asnerr.ErrCapacityExceeded, "need %d bytes, capacity %d", len(c.Buff)+n, c.limit)
	}
	return nil
}

// grow ensures space for at least n more bytes and extends the buffer.
// Uses exponential growth strategy: capacity = max(current_capacity * 2, needed_size).
func (c *Codec) grow(n int) {
	if cap(c.Buff) < len(c.Buff)+n {
		capacity := max(cap(c.Buff)*2, len(c.Buff)+n)
		if c.limit > 0 {
			capacity = min(capacity, c.limit)
		}
		c.Buff = slices.Grow(c.Buff, capacity-len(c.Buff))
	}
	c.Buff = c.Buff[:len(c.Buff)+n]
}

// Write writes the least significant 'num' bits of value (0 ≤ num ≤ 64).
// num=0 writes nothing. MSB-first bit ordering: most significant bits written first.
//
// Fast path: O(1) amortized when byte-aligned (offset==0 or offset==8).
// Slow path: O(num) bit packing when mid-byte (offset 1-7).
func (c *Codec) Write(num uint8, value uint64) error {
	if ENABLE_TRACE {
		c.Trace("ENTER", "Write", zap.Uint8("bits", num), zap.Uint64("value", value))
		defer c.Trace("EXIT", "Write")
	}
	if num == 0 {
		return nil
	}
	if num > 64 {
		return errBitCount
	}

	// Keep only the least significant 'num' bits
	value = value & ((1 << num) - 1)

	// Fast path: writing at byte boundary.
	if len(c.Buff) == 0 || c.offset == 8 {
		nbytes := (int(num) + 7) >> 3 // = ceil(num/8)
		if err := c.reserve(nbytes); err != nil {
			return err
		}
		remainder := num & 7

		tmp := [TMP_ARRAY_SIZE]byte{}
		binary.BigEndian.PutUint64(tmp[:], value<<(64-uint(num)))
		c.Buff = append(c.Buff, tmp[:nbytes]...)

		c.offset = remainder
		if c.offset == 0 {
			c.offset = 8 // Full byte consumed; mark as ready for next byte
		}
		c.written = c.written + uint64(num)
		return nil
	}

	// Slow path: the current byte has 8-offset free bits.
	if spill := int(num) - int(8-c.offset); spill > 0 {
		if err := c.reserve((spill + 7) >> 3); err != nil {
			return err
		}
	}

	pending := num
	for pending > 0 {
		if c.offset == 8 {
			c.grow(1)
			c.offset = 0
		}

		var (
			available = 8 - c.offset
			nbits     = min(pending, available)
			remaining = pending - nbits
			chunk     = uint8(value>>remaining) & ((1 << nbits) - 1)
			shift     = available - nbits
			pos       = len(c.Buff) - 1
		)

		c.Buff[pos] = c.Buff[pos] | (chunk << shift)
		c.offset = c.offset + nbits
		pending = pending - nbits
	}

	c.written = c.written + uint64(num)
	return nil
}

// Read reads the next num bits from the bit stream, returning them as a uint64.
// num=0 returns 0 without error. MSB-first bit ordering.
// Returns asnerr.ErrTruncatedInput if fewer than num bits remain; the cursor
// does not move in that case.
//
// offset==8 signals "advance to next byte on next Read()", deferring the
// buffer slice until the next byte is actually needed.
func (c *Codec) Read(num uint8) (uint64, error) {
	if ENABLE_TRACE {
		c.Trace("ENTER", "Read", zap.Uint8("bits", num))
		defer c.Trace("EXIT", "Read")
	}
	if num == 0 {
		return 0, nil
	}
	if num > 64 {
		return 0, errBitCount
	}
	if avail := c.available(); uint64(num) > avail {
		return 0, asnerr.Errorf(asnerr.ErrTruncatedInput, "need %d bits, have %d", num, avail)
	}

	// Fast path: reading at byte boundary.
	if c.offset == 8 {
		c.Buff = c.Buff[1:]
		c.offset = 0
	}
	if c.offset == 0 {
		nbytes := (int(num) + 7) >> 3 // = ceil(num/8)
		tmp := [TMP_ARRAY_SIZE]byte{}
		copy(tmp[0:nbytes], c.Buff[:nbytes])
		var (
			result    = binary.BigEndian.Uint64(tmp[:]) >> (64 - uint(num))
			remainder = num % 8
		)
		// Keep the last touched byte and mark how much of it was consumed.
		c.Buff = c.Buff[nbytes-1:]
		if remainder == 0 {
			c.offset = 8
		} else {
			c.offset = remainder
		}
		c.read = c.read + uint64(num)
		return result, nil
	}

	var (
		result  uint64
		pending = num
	)
	for pending > 0 {
		if c.offset == 8 {
			c.Buff = c.Buff[1:]
			c.offset = 0
		}

		var (
			remaining = 8 - c.offset
			reading   = min(pending, remaining)
			mask      = uint8((1 << reading) - 1)
			shift     = remaining - reading
			bits      = uint64((c.Buff[0] >> shift) & mask)
		)

		result = (result << reading) | bits
		c.offset = c.offset + reading
		pending = pending - reading
	}

	c.read = c.read + uint64(num)
	return result, nil
}

// WriteBytes writes full octets continuing from the current bit offset.
// Does NOT force alignment; caller must Align() if required.
func (c *Codec) WriteBytes(data []byte) error {
	if ENABLE_TRACE {
		c.Trace("ENTER", "WriteBytes", zap.Int("n", len(data)))
		defer c.Trace("EXIT", "WriteBytes")
	}
	if len(data) == 0 {
		return nil
	}

	// Fast path: byte-aligned
	if len(c.Buff) == 0 || c.offset == 8 {
		if err := c.reserve(len(data)); err != nil {
			return err
		}
		c.Buff = append(c.Buff, data...)
		c.written = c.written + uint64(len(data)*8)
		c.offset = 8
		return nil
	}

	// Slow path: each octet straddles two bytes
	if err := c.reserve(len(data)); err != nil {
		return err
	}
	for _, b := range data {
		if err := c.Write(8, uint64(b)); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes reads exactly n full octets from the bit stream.
// Returns asnerr.ErrTruncatedInput if insufficient data is available.
func (c *Codec) ReadBytes(n int) ([]byte, error) {
	if ENABLE_TRACE {
		c.Trace("ENTER", "ReadBytes", zap.Int("n", n))
		defer c.Trace("EXIT", "ReadBytes")
	}
	if n < 0 {
		return nil, errors.New("negative byte count")
	}
	if n == 0 {
		return []byte{}, nil
	}
	if avail := c.available(); uint64(n)*8 > avail {
		return nil, asnerr.Errorf(asnerr.ErrTruncatedInput, "need %d octets, have %d bits", n, avail)
	}

	// Fast path: byte-aligned
	if c.offset == 0 || c.offset == 8 {
		if c.offset == 8 {
			c.Buff = c.Buff[1:]
			c.offset = 0
		}
		result := make([]byte, n)
		copy(result, c.Buff[:n])
		c.Buff = c.Buff[n:]
		c.read = c.read + uint64(n*8)
		return result, nil
	}

	result := make([]byte, n)
	for i := range result {
		val, err := c.Read(8)
		if err != nil {
			return nil, err
		}
		result[i] = uint8(val)
	}
	return result, nil
}

// Align pads the writer to the next byte boundary.
// Unused bits in the current byte remain zero. Idempotent when aligned.
func (c *Codec) Align() error {
	if ENABLE_TRACE {
		c.Trace("ENTER", "Align")
		defer c.Trace("EXIT", "Align")
	}
	if c.offset > 0 && c.offset < 8 {
		c.written = c.written + uint64(8-c.offset)
		c.offset = 8
	}
	return nil
}

// Advance skips the reader to the next byte boundary.
// This is the read counterpart to Align().
func (c *Codec) Advance() error {
	if ENABLE_TRACE {
		c.Trace("ENTER", "Advance")
		defer c.Trace("EXIT", "Advance")
	}
	if c.offset > 0 && c.offset < 8 {
		c.read = c.read + uint64(8-c.offset)
		c.offset = 8
	}
	return nil
}
