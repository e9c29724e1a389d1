// Package xdr provides little-endian binary encoding and decoding utilities
// for the fixed-layout fields of LHE files.
//
// The .lhe header stores its multi-byte fields (image width, height and the
// compressed luminance length) as little-endian 32-bit integers. Entropy
// block framing uses unsigned varints. This package provides bounds-checked
// readers and writers for exactly those primitives.
package xdr

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrShortBuffer is returned when a read or write operation cannot complete
	// because there isn't enough space in the buffer.
	ErrShortBuffer = errors.New("xdr: buffer too short")

	// ErrNegativeSize is returned when a size parameter is negative.
	ErrNegativeSize = errors.New("xdr: negative size")

	// ErrVarintOverflow is returned when a varint does not fit in 64 bits.
	ErrVarintOverflow = errors.New("xdr: varint overflows 64 bits")
)

// ByteOrder is the byte order used by LHE headers.
var ByteOrder = binary.LittleEndian

// Reader reads little-endian values from a byte slice.
// It maintains a read position and checks bounds on all operations.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.pos >= len(r.data) {
		return 0, ErrShortBuffer
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint32 reads an unsigned 32-bit integer in little-endian order.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := ByteOrder.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadUvarint reads an unsigned varint as written by AppendUvarint.
func (r *Reader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.pos:])
	switch {
	case n == 0:
		return 0, ErrShortBuffer
	case n < 0:
		return 0, ErrVarintOverflow
	}
	r.pos += n
	return v, nil
}

// Next returns the next n bytes without copying and advances past them.
// The returned slice aliases the reader's data.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if r.pos+n > len(r.data) {
		return nil, ErrShortBuffer
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Writer writes little-endian values into a fixed-size byte slice.
type Writer struct {
	data []byte
	pos  int
}

// NewWriter creates a Writer over a byte slice.
func NewWriter(data []byte) *Writer {
	return &Writer{data: data}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.data[:w.pos]
}

// WriteUint8 writes a single byte.
func (w *Writer) WriteUint8(v uint8) error {
	if w.pos >= len(w.data) {
		return ErrShortBuffer
	}
	w.data[w.pos] = v
	w.pos++
	return nil
}

// WriteUint32 writes an unsigned 32-bit integer in little-endian order.
func (w *Writer) WriteUint32(v uint32) error {
	if w.pos+4 > len(w.data) {
		return ErrShortBuffer
	}
	ByteOrder.PutUint32(w.data[w.pos:], v)
	w.pos += 4
	return nil
}

// AppendUvarint appends v to dst as an unsigned varint.
func AppendUvarint(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}
