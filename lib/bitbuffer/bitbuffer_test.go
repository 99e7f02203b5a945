package bitbuffer

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/thebagchi/asn1enum-go/lib/asnerr"
)

func TestBitBuffer(t *testing.T) {
	w := CreateWriter()

	// Initial state
	if w.NumWritten() != 0 {
		t.Errorf("initial written should be 0, got %d", w.NumWritten())
	}
	if w.offset != 0 {
		t.Errorf("initial offset should be 0, got %d", w.offset)
	}

	// Write 16 bits of 0
	for i := 0; i < 16; i++ {
		if err := w.Write(1, 0); err != nil {
			t.Fatalf("Write %d failed: %v", i+1, err)
		}
	}
	if w.NumWritten() != 16 {
		t.Errorf("after 16 writes, written should be 16, got %d", w.NumWritten())
	}
	if w.offset != 8 {
		t.Errorf("after 16 writes, offset should be 8, got %d", w.offset)
	}

	if err := w.WriteBytes([]byte{0x00}); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	if w.NumWritten() != 24 {
		t.Errorf("after WriteBytes, written should be 24, got %d", w.NumWritten())
	}

	// Align() when offset == 8 does nothing
	if err := w.Align(); err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if w.NumWritten() != 24 {
		t.Errorf("after Align, written should still be 24, got %d", w.NumWritten())
	}

	if err := w.Write(1, 1); err != nil {
		t.Fatalf("Write after Align failed: %v", err)
	}
	if w.offset != 1 {
		t.Errorf("after writing bit, offset should be 1, got %d", w.offset)
	}

	expected := []byte{0x00, 0x00, 0x00, 0x80}
	if !bytes.Equal(w.Bytes(), expected) {
		t.Errorf("bytes should be %x, got %x", expected, w.Bytes())
	}

	// Align pads the partial byte
	if err := w.Align(); err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if w.NumWritten() != 32 {
		t.Errorf("after Align, written should be 32, got %d", w.NumWritten())
	}
}

func TestWriteReadBits(t *testing.T) {
	bits := make([]uint8, 64)
	for i := range bits {
		bits[i] = uint8(i + 1)
	}

	test := func(name string, valueOf func(bit uint8) uint64, interleave bool, total uint64) {
		t.Run(name, func(t *testing.T) {
			w := CreateWriter()
			for _, bit := range bits {
				value := valueOf(bit)
				if err := w.Write(bit, value); err != nil {
					t.Fatalf("Write %d bits with value %d failed: %v", bit, value, err)
				}
				if interleave {
					data := fmt.Appendf(nil, "%0*x", (bit+3)/4, value)
					if err := w.WriteBytes(data); err != nil {
						t.Fatalf("WriteBytes failed: %v", err)
					}
				}
			}

			r := CreateReader(w.Bytes())
			for _, bit := range bits {
				expected := valueOf(bit)
				actual, err := r.Read(bit)
				if err != nil {
					t.Fatalf("Read %d bits failed: %v", bit, err)
				}
				if actual != expected {
					t.Errorf("Read %d bits: expected %d, got %d", bit, expected, actual)
				}
				if interleave {
					length := (bit + 3) / 4
					data := fmt.Appendf(nil, "%0*x", length, expected)
					content, err := r.ReadBytes(int(length))
					if err != nil {
						t.Fatalf("ReadBytes failed: %v", err)
					}
					if !bytes.Equal(content, data) {
						t.Errorf("ReadBytes: expected %v, got %v", data, content)
					}
				}
			}
			if w.NumWritten() != total {
				t.Errorf("Total written bits: expected %d, got %d", total, w.NumWritten())
			}
			if r.NumRead() != total {
				t.Errorf("Total read bits: expected %d, got %d", total, r.NumRead())
			}
		})
	}

	count := func(bit uint8) uint64 { return uint64(bit) }
	zero := func(bit uint8) uint64 { return 0 }
	ones := func(bit uint8) uint64 { return uint64(1<<bit) - 1 }

	test("count", count, false, 2080)
	test("zero", zero, false, 2080)
	test("ones", ones, false, 2080)
	test("count+bytes", count, true, 6432)
	test("zero+bytes", zero, true, 6432)
	test("ones+bytes", ones, true, 6432)
}

func TestZeroBits(t *testing.T) {
	w := CreateWriter()
	if err := w.Write(0, 0xFF); err != nil {
		t.Fatalf("Write(0) failed: %v", err)
	}
	if w.NumWritten() != 0 || w.Bytes() != nil {
		t.Errorf("Write(0) should not produce output, got %x", w.Bytes())
	}

	r := CreateReader(nil)
	value, err := r.Read(0)
	if err != nil || value != 0 {
		t.Errorf("Read(0) = %d, %v; want 0, nil", value, err)
	}
}

func TestReadTruncated(t *testing.T) {
	test := func(name string, data []byte, skip uint8, num uint8) {
		t.Run(name, func(t *testing.T) {
			r := CreateReader(data)
			if _, err := r.Read(skip); err != nil {
				t.Fatalf("Read(%d) failed: %v", skip, err)
			}
			before, offset := r.Len(), r.offset
			_, err := r.Read(num)
			if !errors.Is(err, asnerr.ErrTruncatedInput) {
				t.Fatalf("Read(%d) error = %v, want truncated input", num, err)
			}
			if r.Len() != before || r.offset != offset || r.NumRead() != uint64(skip) {
				t.Errorf("cursor moved on failed read")
			}
		})
	}
	test("empty", nil, 0, 1)
	test("one byte", []byte{0xFF}, 0, 9)
	test("mid byte", []byte{0xFF, 0xFF}, 3, 14)
	test("byte boundary", []byte{0xFF}, 8, 1)

	r := CreateReader([]byte{0x01})
	if _, err := r.ReadBytes(2); !errors.Is(err, asnerr.ErrTruncatedInput) {
		t.Errorf("ReadBytes error = %v, want truncated input", err)
	}
}

func TestFixedWriter(t *testing.T) {
	w := CreateFixedWriter(2)
	if err := w.Write(12, 0xABC); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write(4, 0xD); err != nil {
		t.Fatalf("Write filling capacity failed: %v", err)
	}
	if err := w.Write(1, 1); !errors.Is(err, asnerr.ErrCapacityExceeded) {
		t.Fatalf("Write beyond capacity error = %v, want capacity exceeded", err)
	}
	if err := w.WriteBytes([]byte{0x00}); !errors.Is(err, asnerr.ErrCapacityExceeded) {
		t.Fatalf("WriteBytes beyond capacity error = %v, want capacity exceeded", err)
	}
	if !bytes.Equal(w.Bytes(), []byte{0xAB, 0xCD}) {
		t.Errorf("bytes = %x, want abcd", w.Bytes())
	}

	// A straddling write must fail before touching the buffer
	w = CreateFixedWriter(1)
	if err := w.Write(3, 0x7); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write(8, 0xFF); !errors.Is(err, asnerr.ErrCapacityExceeded) {
		t.Fatalf("straddling Write error = %v, want capacity exceeded", err)
	}
	if w.NumWritten() != 3 || !bytes.Equal(w.Bytes(), []byte{0xE0}) {
		t.Errorf("buffer changed after failed write: %x", w.Bytes())
	}
}

func TestAdvance(t *testing.T) {
	r := CreateReader([]byte{0xA0, 0x5A})
	if v, _ := r.Read(3); v != 0x5 {
		t.Errorf("Read(3) = %x, want 5", v)
	}
	if err := r.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if r.NumRead() != 8 {
		t.Errorf("NumRead after Advance = %d, want 8", r.NumRead())
	}
	if v, _ := r.Read(8); v != 0x5A {
		t.Errorf("Read(8) = %x, want 5a", v)
	}
	if err := r.Advance(); err != nil || r.NumRead() != 16 {
		t.Errorf("Advance when aligned should be a no-op")
	}
}
