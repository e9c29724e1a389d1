// Package imageio loads and saves the raster formats the lhe command
// converts from and to. The format is chosen by file extension.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-jpeg2000"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

// Format is a raster file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatBMP
	FormatJP2
	FormatJ2K
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatJP2:
		return "jp2"
	case FormatJ2K:
		return "j2k"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".bmp":
		return FormatBMP
	case ".jp2":
		return FormatJP2
	case ".j2k", ".j2c":
		return FormatJ2K
	default:
		return FormatUnknown
	}
}

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 95

// Decode reads an image in format f.
func Decode(r io.Reader, f Format) (image.Image, error) {
	switch f {
	case FormatPNG:
		return png.Decode(r)
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatBMP:
		return bmp.Decode(r)
	case FormatJP2, FormatJ2K:
		return jpeg2000.Decode(r)
	}
	return nil, ErrUnsupportedFormat
}

// Encode writes m in format f. JPEG 2000 output is lossless.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, m)
	case FormatJPEG:
		return jpeg.Encode(w, m, &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		return bmp.Encode(w, m)
	case FormatJP2, FormatJ2K:
		o := jpeg2000.DefaultOptions()
		o.Lossless = true
		o.Format = jpeg2000.FormatJP2
		if f == FormatJ2K {
			o.Format = jpeg2000.FormatJ2K
		}
		return jpeg2000.Encode(w, m, o)
	}
	return ErrUnsupportedFormat
}

// Load reads the image at path.
func Load(path string) (image.Image, error) {
	f := FormatOf(path)
	if f == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := Decode(bufio.NewReader(file), f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return m, nil
}

// Save writes m to path in the format implied by its extension.
func Save(path string, m image.Image) (err error) {
	f := FormatOf(path)
	if f == FormatUnknown {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	if err := Encode(w, m, f); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return w.Flush()
}
