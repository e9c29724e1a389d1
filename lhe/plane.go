package lhe

import (
	"fmt"
	"strings"
)

// Subsampling is the chroma subsampling mode. The numeric values are
// stored in the file header.
type Subsampling uint8

const (
	// Subsample420 halves chroma horizontally and vertically.
	Subsample420 Subsampling = 0
	// Subsample422 halves chroma horizontally.
	Subsample422 Subsampling = 1
	// Subsample444 keeps chroma at full resolution.
	Subsample444 Subsampling = 2
)

// String returns the conventional J:a:b name.
func (s Subsampling) String() string {
	switch s {
	case Subsample420:
		return "4:2:0"
	case Subsample422:
		return "4:2:2"
	case Subsample444:
		return "4:4:4"
	default:
		return fmt.Sprintf("Subsampling(%d)", uint8(s))
	}
}

// Valid reports whether s is a known mode.
func (s Subsampling) Valid() bool {
	return s <= Subsample444
}

// ParseSubsampling accepts "420", "4:2:0", "422", "4:2:2", "444" or "4:4:4".
func ParseSubsampling(v string) (Subsampling, error) {
	switch strings.ReplaceAll(v, ":", "") {
	case "420":
		return Subsample420, nil
	case "422":
		return Subsample422, nil
	case "444":
		return Subsample444, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSubsampling, v)
}

// factors returns the horizontal and vertical chroma decimation.
func (s Subsampling) factors() (xs, ys int) {
	switch s {
	case Subsample420:
		return 2, 2
	case Subsample422:
		return 2, 1
	default:
		return 1, 1
	}
}

// ChromaSize returns the chroma plane size for a width x height image.
// Odd dimensions are truncated. The result may be empty (0 in either
// dimension) for 1-pixel-wide or 1-pixel-high images.
func ChromaSize(width, height int, s Subsampling) (cw, ch int) {
	xs, ys := s.factors()
	return width / xs, height / ys
}

// Plane is a raster component plane.
type Plane struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// Empty reports whether the plane has no samples.
func (p *Plane) Empty() bool {
	return p == nil || p.Width <= 0 || p.Height <= 0
}

// check validates the plane geometry.
func (p *Plane) check(name string) error {
	if p == nil {
		return &GeometryError{Plane: name, Len: -1}
	}
	if p.Width <= 0 || p.Height <= 0 || p.Width > MaxDimension || p.Height > MaxDimension {
		return &GeometryError{Plane: name, Width: p.Width, Height: p.Height, Len: -1}
	}
	if len(p.Pix) != p.Width*p.Height {
		return &GeometryError{Plane: name, Width: p.Width, Height: p.Height, Len: len(p.Pix)}
	}
	return nil
}

// Subsample reduces a full-resolution chroma plane to the size given by
// ChromaSize, taking the top-left sample of each cell.
func Subsample(p *Plane, s Subsampling) *Plane {
	xs, ys := s.factors()
	cw, ch := ChromaSize(p.Width, p.Height, s)
	out := NewPlane(cw, ch)
	for y := 0; y < ch; y++ {
		src := p.Pix[y*ys*p.Width:]
		dst := out.Pix[y*cw : (y+1)*cw]
		for x := range dst {
			dst[x] = src[x*xs]
		}
	}
	return out
}

// Upsample expands a subsampled chroma plane to width x height by sample
// duplication. Columns and rows past the subsampled grid repeat the last
// sample. An empty plane is filled with fill.
func Upsample(p *Plane, width, height int, s Subsampling, fill uint8) *Plane {
	out := NewPlane(width, height)
	if p.Empty() {
		for i := range out.Pix {
			out.Pix[i] = fill
		}
		return out
	}
	xs, ys := s.factors()
	for y := 0; y < height; y++ {
		sy := min(y/ys, p.Height-1)
		src := p.Pix[sy*p.Width : (sy+1)*p.Width]
		dst := out.Pix[y*width : (y+1)*width]
		for x := range dst {
			dst[x] = src[min(x/xs, p.Width-1)]
		}
	}
	return out
}
