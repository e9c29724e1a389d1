package lhe

import (
	"image"
	"image/color"
	"io"
)

// FromImage converts m to YUV and subsamples its chroma. Alpha is
// ignored.
func FromImage(m image.Image, s Subsampling) *YUVImage {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	y := NewPlane(w, h)
	cb := NewPlane(w, h)
	cr := NewPlane(w, h)

	ParallelFor(h, func(row int) {
		off := row * w
		for x := 0; x < w; x++ {
			r, g, bl := rgbAt(m, b.Min.X+x, b.Min.Y+row)
			y.Pix[off+x], cb.Pix[off+x], cr.Pix[off+x] = RGBToYUV(r, g, bl)
		}
	})

	if s == Subsample444 {
		return &YUVImage{Y: y, Cb: cb, Cr: cr, Subsampling: s}
	}
	return &YUVImage{Y: y, Cb: Subsample(cb, s), Cr: Subsample(cr, s), Subsampling: s}
}

// rgbAt returns the non-premultiplied colour at (x, y).
func rgbAt(m image.Image, x, y int) (r, g, b uint8) {
	switch src := m.(type) {
	case *image.RGBA:
		i := src.PixOffset(x, y)
		if a := src.Pix[i+3]; a == 0xff {
			return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
		}
	case *image.NRGBA:
		i := src.PixOffset(x, y)
		return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
	case *image.Gray:
		v := src.Pix[src.PixOffset(x, y)]
		return v, v, v
	}
	c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
	return c.R, c.G, c.B
}

// RGBA upsamples the chroma planes and converts the image to RGB.
func (m *YUVImage) RGBA() *image.RGBA {
	w, h := m.Width(), m.Height()
	cb := Upsample(m.Cb, w, h, m.Subsampling, defaultChromaSeed)
	cr := Upsample(m.Cr, w, h, m.Subsampling, defaultChromaSeed)
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	ParallelFor(h, func(row int) {
		line := out.Pix[row*out.Stride:]
		off := row * w
		for x := 0; x < w; x++ {
			r, g, b := YUVToRGB(m.Y.Pix[off+x], cb.Pix[off+x], cr.Pix[off+x])
			line[4*x], line[4*x+1], line[4*x+2], line[4*x+3] = r, g, b, 0xff
		}
	})
	return out
}

// EncodeImage converts m with FromImage and writes it to w.
// A nil o uses DefaultOptions.
func EncodeImage(w io.Writer, m image.Image, o *Options) error {
	if o == nil {
		o = DefaultOptions()
	}
	return Encode(w, FromImage(m, o.Subsampling), o)
}

// DecodeImage reads an .lhe file and returns it as an *image.RGBA.
func DecodeImage(r io.Reader) (image.Image, error) {
	m, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return m.RGBA(), nil
}
