package lhe

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/mrjoshuak/go-lhe/compression"
)

// defaultChromaSeed seeds chroma planes that have no samples.
const defaultChromaSeed = 128

// Plane indices.
const (
	planeY = iota
	planeCb
	planeCr
	numPlanes
)

var planeNames = [numPlanes]string{"Y", "Cb", "Cr"}

// Options controls encoding.
type Options struct {
	// Subsampling is the chroma subsampling mode applied by EncodeImage
	// and expected of the chroma planes passed to Encode.
	Subsampling Subsampling

	// RunMode selects static or dynamic null-hop runs.
	RunMode RunMode

	// Method is the entropy coder for the symbol payloads.
	Method compression.Method
}

// DefaultOptions returns basic LHE settings: 4:2:0, dynamic runs, Huffman.
func DefaultOptions() *Options {
	return &Options{
		Subsampling: Subsample420,
		RunMode:     RunDynamic,
		Method:      compression.MethodHuffman,
	}
}

func (o *Options) validate() error {
	if !o.Subsampling.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSubsampling, uint8(o.Subsampling))
	}
	if o.RunMode > RunStatic {
		return fmt.Errorf("%w: run mode %d", ErrInvalidVariant, uint8(o.RunMode))
	}
	if !o.Method.Valid() {
		return fmt.Errorf("%w: %s", compression.ErrUnknownMethod, o.Method)
	}
	return nil
}

// YUVImage holds the three component planes of an LHE image. Y is full
// resolution; Cb and Cr have the size given by ChromaSize and may be
// empty for images one pixel wide or high.
type YUVImage struct {
	Y, Cb, Cr   *Plane
	Subsampling Subsampling
}

// Width returns the luminance width.
func (m *YUVImage) Width() int { return m.Y.Width }

// Height returns the luminance height.
func (m *YUVImage) Height() int { return m.Y.Height }

func (m *YUVImage) planes() [numPlanes]*Plane {
	return [numPlanes]*Plane{m.Y, m.Cb, m.Cr}
}

// Validate checks that the planes agree with each other and with the
// subsampling mode.
func (m *YUVImage) Validate() error {
	if !m.Subsampling.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSubsampling, uint8(m.Subsampling))
	}
	if err := m.Y.check(planeNames[planeY]); err != nil {
		return err
	}
	cw, ch := ChromaSize(m.Y.Width, m.Y.Height, m.Subsampling)
	for i, p := range []*Plane{m.Cb, m.Cr} {
		name := planeNames[planeCb+i]
		if cw == 0 || ch == 0 {
			if !p.Empty() {
				return &GeometryError{Plane: name, Width: p.Width, Height: p.Height, Len: len(p.Pix)}
			}
			continue
		}
		if p == nil || p.Width != cw || p.Height != ch {
			return &GeometryError{Plane: name, Width: cw, Height: ch, Len: -1}
		}
		if err := p.check(name); err != nil {
			return err
		}
	}
	return nil
}

// Stats describes one encode.
type Stats struct {
	Header    Header
	ChromaLen int            // compressed chroma stream size
	Symbols   [numPlanes]int // symbol count per plane
	Recon     *YUVImage      // planes as the decoder will reconstruct them
}

// Encode writes m to w as an .lhe file. The image's Subsampling must
// match o.Subsampling. A nil o uses DefaultOptions.
func Encode(w io.Writer, m *YUVImage, o *Options) error {
	_, err := EncodeWithStats(w, m, o)
	return err
}

// EncodeWithStats is Encode that also reports sizes and the reconstructed
// planes.
func EncodeWithStats(w io.Writer, m *YUVImage, o *Options) (*Stats, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if m == nil || m.Y == nil {
		return nil, &GeometryError{Plane: planeNames[planeY], Len: -1}
	}
	if m.Subsampling != o.Subsampling {
		return nil, fmt.Errorf("%w: image is %s, options request %s", ErrInvalidSubsampling, m.Subsampling, o.Subsampling)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	h := Header{
		Variant:     NewVariant(o.RunMode, o.Method),
		Subsampling: o.Subsampling,
		Width:       m.Y.Width,
		Height:      m.Y.Height,
		BlocksHigh:  1,
		BlocksWide:  1,
		SeedY:       m.Y.Pix[0],
		SeedCb:      defaultChromaSeed,
		SeedCr:      defaultChromaSeed,
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if !m.Cb.Empty() {
		h.SeedCb, h.SeedCr = m.Cb.Pix[0], m.Cr.Pix[0]
	}

	cache := DefaultHopCache()
	planes := m.planes()
	var texts [numPlanes][]byte
	var recon [numPlanes]*Plane
	stats := &Stats{}

	err := ParallelForWithError(numPlanes, func(i int) error {
		p := planes[i]
		if p.Empty() {
			recon[i] = &Plane{}
			return nil
		}
		hops, pix, err := QuantizePlane(cache, p)
		if err != nil {
			return err
		}
		syms, err := HopsToSymbols(hops, p.Width, o.RunMode)
		if err != nil {
			return fmt.Errorf("lhe: %s plane: %w", planeNames[i], err)
		}
		texts[i] = MarshalSymbols(make([]byte, 0, len(syms)), syms)
		recon[i] = &Plane{Width: p.Width, Height: p.Height, Pix: pix}
		stats.Symbols[i] = len(syms)
		return nil
	})
	if err != nil {
		return nil, err
	}

	payloads := [2][]byte{texts[planeY], JoinChroma(texts[planeCb], texts[planeCr])}
	var streams [2][]byte
	err = ParallelForWithError(len(payloads), func(i int) error {
		var err error
		streams[i], err = compression.Compress(o.Method, payloads[i])
		return err
	})
	if err != nil {
		return nil, err
	}

	h.LumaLen = len(streams[0])
	if _, err := h.WriteTo(w); err != nil {
		return nil, err
	}
	for _, s := range streams {
		if _, err := w.Write(s); err != nil {
			return nil, err
		}
	}

	stats.Header = h
	stats.ChromaLen = len(streams[1])
	stats.Recon = &YUVImage{Y: recon[planeY], Cb: recon[planeCb], Cr: recon[planeCr], Subsampling: o.Subsampling}
	return stats, nil
}

// Decode reads an .lhe file from r.
func Decode(r io.Reader) (*YUVImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory .lhe file.
func DecodeBytes(data []byte) (*YUVImage, error) {
	var h Header
	if err := h.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	body := data[HeaderSize:]
	if h.LumaLen > len(body) {
		return nil, fmt.Errorf("%w: luminance length %d exceeds %d remaining bytes", ErrCorruptStream, h.LumaLen, len(body))
	}

	method := h.Variant.Method()
	npix := h.Width * h.Height
	cw, ch := ChromaSize(h.Width, h.Height, h.Subsampling)
	cpix := cw * ch

	lumaText, err := compression.Decompress(method, body[:h.LumaLen], npix)
	if err != nil {
		return nil, fmt.Errorf("lhe: luminance stream: %w", err)
	}
	chromaText, err := compression.Decompress(method, body[h.LumaLen:], 2*cpix+1)
	if err != nil {
		return nil, fmt.Errorf("lhe: chrominance stream: %w", err)
	}
	cbText, crText, err := SplitChroma(chromaText)
	if err != nil {
		return nil, err
	}

	texts := [numPlanes][]byte{lumaText, cbText, crText}
	sizes := [numPlanes][2]int{{h.Width, h.Height}, {cw, ch}, {cw, ch}}
	seeds := [numPlanes]uint8{h.SeedY, h.SeedCb, h.SeedCr}
	var out [numPlanes]*Plane
	cache := DefaultHopCache()
	mode := h.Variant.RunMode()

	err = ParallelForWithError(numPlanes, func(i int) error {
		w, ht := sizes[i][0], sizes[i][1]
		if w == 0 || ht == 0 {
			if len(texts[i]) != 0 {
				return fmt.Errorf("%w: %s payload for empty plane", ErrCorruptStream, planeNames[i])
			}
			out[i] = &Plane{}
			return nil
		}
		p, err := decodePlane(cache, texts[i], w, ht, seeds[i], mode)
		if err != nil {
			return fmt.Errorf("lhe: %s plane: %w", planeNames[i], err)
		}
		out[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &YUVImage{Y: out[planeY], Cb: out[planeCb], Cr: out[planeCr], Subsampling: h.Subsampling}, nil
}

func decodePlane(cache *HopCache, text []byte, width, height int, seed uint8, mode RunMode) (*Plane, error) {
	syms, err := UnmarshalSymbols(text)
	if err != nil {
		return nil, err
	}
	hops, n, err := SymbolsToHops(syms, width, height, mode)
	if err != nil {
		return nil, err
	}
	if n != len(syms) {
		return nil, fmt.Errorf("%w: %d trailing symbols", ErrCorruptStream, len(syms)-n)
	}
	return ReconstructPlane(cache, hops, width, height, seed)
}

// DecodeConfig returns the dimensions of an .lhe file without decoding
// the payloads.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.Width, Height: h.Height}, nil
}
