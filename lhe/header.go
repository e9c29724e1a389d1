package lhe

import (
	"fmt"
	"io"

	"github.com/mrjoshuak/go-lhe/compression"
	"github.com/mrjoshuak/go-lhe/internal/xdr"
)

// HeaderSize is the size of the fixed .lhe header in bytes.
const HeaderSize = 19

// Size limits enforced when reading and writing files.
const (
	MaxDimension = 1 << 20
	MaxPixels    = 1 << 28
)

// Variant describes how a file's payloads were produced.
// Bit 0 is the run mode, bits 4..7 the entropy method. Bits 1..3 are
// reserved and must be zero. Variant 0 selects dynamic runs and huff0
// coding of the payloads. Runs never cross a row, so streams differ from
// encoders that carry run counts between rows.
type Variant uint8

// NewVariant packs a run mode and entropy method.
func NewVariant(mode RunMode, method compression.Method) Variant {
	return Variant(uint8(mode)&0x01 | uint8(method)<<4)
}

// RunMode returns the run-length mode.
func (v Variant) RunMode() RunMode { return RunMode(v & 0x01) }

// Method returns the entropy coder.
func (v Variant) Method() compression.Method { return compression.Method(v >> 4) }

// Valid reports whether v uses no reserved bits and a known method.
func (v Variant) Valid() bool {
	return v&0x0e == 0 && v.Method().Valid()
}

func (v Variant) String() string {
	return fmt.Sprintf("%s/%s", v.RunMode(), v.Method())
}

// Header is the fixed header at the start of every .lhe file.
//
// Layout (little-endian):
//
//	offset  size  field
//	0       1     variant
//	1       1     subsampling (0=4:2:0, 1=4:2:2, 2=4:4:4)
//	2       4     width
//	6       4     height
//	10      1     blocks high (1)
//	11      1     blocks wide (1)
//	12      3     seed Y, Cb, Cr
//	15      4     compressed luminance length
type Header struct {
	Variant     Variant
	Subsampling Subsampling
	Width       int
	Height      int
	BlocksHigh  uint8
	BlocksWide  uint8
	SeedY       uint8
	SeedCb      uint8
	SeedCr      uint8
	LumaLen     int
}

// Validate checks the header fields.
func (h *Header) Validate() error {
	if !h.Variant.Valid() {
		return fmt.Errorf("%w: %#02x", ErrInvalidVariant, uint8(h.Variant))
	}
	if !h.Subsampling.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSubsampling, uint8(h.Subsampling))
	}
	if h.Width <= 0 || h.Height <= 0 || h.Width > MaxDimension || h.Height > MaxDimension ||
		int64(h.Width)*int64(h.Height) > MaxPixels {
		return &GeometryError{Plane: "image", Width: h.Width, Height: h.Height, Len: -1}
	}
	if h.BlocksHigh != 1 || h.BlocksWide != 1 {
		return fmt.Errorf("%w: %dx%d blocks", ErrInvalidVariant, h.BlocksHigh, h.BlocksWide)
	}
	if h.LumaLen < 0 || int64(h.LumaLen) > 0xffffffff {
		return fmt.Errorf("%w: luminance length %d", ErrCorruptStream, h.LumaLen)
	}
	return nil
}

// MarshalBinary encodes the header.
func (h *Header) MarshalBinary() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, HeaderSize)
	w := xdr.NewWriter(buf)
	for _, err := range []error{
		w.WriteUint8(uint8(h.Variant)),
		w.WriteUint8(uint8(h.Subsampling)),
		w.WriteUint32(uint32(h.Width)),
		w.WriteUint32(uint32(h.Height)),
		w.WriteUint8(h.BlocksHigh),
		w.WriteUint8(h.BlocksWide),
		w.WriteUint8(h.SeedY),
		w.WriteUint8(h.SeedCb),
		w.WriteUint8(h.SeedCr),
		w.WriteUint32(uint32(h.LumaLen)),
	} {
		if err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// UnmarshalBinary decodes and validates a header from the first
// HeaderSize bytes of data.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return ErrShortHeader
	}
	r := xdr.NewReader(data[:HeaderSize])
	// Lengths were checked above, so the reads cannot fail.
	variant, _ := r.ReadUint8()
	sub, _ := r.ReadUint8()
	width, _ := r.ReadUint32()
	height, _ := r.ReadUint32()
	bh, _ := r.ReadUint8()
	bw, _ := r.ReadUint8()
	sy, _ := r.ReadUint8()
	scb, _ := r.ReadUint8()
	scr, _ := r.ReadUint8()
	lumaLen, _ := r.ReadUint32()

	*h = Header{
		Variant:     Variant(variant),
		Subsampling: Subsampling(sub),
		Width:       int(width),
		Height:      int(height),
		BlocksHigh:  bh,
		BlocksWide:  bw,
		SeedY:       sy,
		SeedCb:      scb,
		SeedCr:      scr,
		LumaLen:     int(lumaLen),
	}
	return h.Validate()
}

// WriteTo writes the encoded header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	b, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ReadHeader reads and validates a header from r.
func ReadHeader(r io.Reader) (*Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrShortHeader
		}
		return nil, err
	}
	h := new(Header)
	if err := h.UnmarshalBinary(buf[:]); err != nil {
		return nil, err
	}
	return h, nil
}
