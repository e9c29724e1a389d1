package xdr

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderBasic(t *testing.T) {
	data := []byte{0x01, 0x78, 0x56, 0x34, 0x12, 0xFF}
	r := NewReader(data)

	if r.Len() != 6 {
		t.Errorf("Len() = %d, want 6", r.Len())
	}

	b, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8() error = %v", err)
	}
	if b != 0x01 {
		t.Errorf("ReadUint8() = %d, want 1", b)
	}

	u32, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32() error = %v", err)
	}
	if u32 != 0x12345678 {
		t.Errorf("ReadUint32() = 0x%08X, want 0x12345678", u32)
	}

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	rest, err := r.Next(r.Len())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !bytes.Equal(rest, []byte{0xFF}) {
		t.Errorf("Next() = %v, want [255]", rest)
	}
	if r.Len() != 0 {
		t.Errorf("Len() at end = %d, want 0", r.Len())
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	if _, err := r.ReadUint32(); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("ReadUint32() error = %v, want ErrShortBuffer", err)
	}
	if _, err := r.Next(3); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("Next(3) error = %v, want ErrShortBuffer", err)
	}
	if _, err := r.Next(-1); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("Next(-1) error = %v, want ErrNegativeSize", err)
	}

	b, err := r.Next(2)
	if err != nil {
		t.Fatalf("Next(2) error = %v", err)
	}
	if !bytes.Equal(b, []byte{0x01, 0x02}) {
		t.Errorf("Next(2) = %v, want [1 2]", b)
	}
	if _, err := r.ReadUint8(); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("ReadUint8() at end error = %v, want ErrShortBuffer", err)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	buf := make([]byte, 5)
	w := NewWriter(buf)

	if err := w.WriteUint8(0xAB); err != nil {
		t.Fatalf("WriteUint8() error = %v", err)
	}
	if err := w.WriteUint32(0xDEADBEEF); err != nil {
		t.Fatalf("WriteUint32() error = %v", err)
	}
	if err := w.WriteUint8(0); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("WriteUint8() past end error = %v, want ErrShortBuffer", err)
	}

	want := []byte{0xAB, 0xEF, 0xBE, 0xAD, 0xDE}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = %v, want %v", w.Bytes(), want)
	}

	r := NewReader(w.Bytes())
	b, _ := r.ReadUint8()
	u, _ := r.ReadUint32()
	if b != 0xAB || u != 0xDEADBEEF {
		t.Errorf("read back (%#x, %#x), want (0xab, 0xdeadbeef)", b, u)
	}
}

func TestWriterShortUint32(t *testing.T) {
	w := NewWriter(make([]byte, 3))
	if err := w.WriteUint32(1); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("WriteUint32() error = %v, want ErrShortBuffer", err)
	}
	if n := len(w.Bytes()); n != 0 {
		t.Errorf("len(Bytes()) after failed write = %d, want 0", n)
	}
}

func TestUvarint(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 + 5}

	var buf []byte
	for _, v := range values {
		buf = AppendUvarint(buf, v)
	}

	r := NewReader(buf)
	for _, want := range values {
		got, err := r.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadUvarint() = %d, want %d", got, want)
		}
	}

	if _, err := r.ReadUvarint(); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("ReadUvarint() at end error = %v, want ErrShortBuffer", err)
	}
}

func TestUvarintOverflow(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 11)
	r := NewReader(data)
	if _, err := r.ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("ReadUvarint() error = %v, want ErrVarintOverflow", err)
	}
}
