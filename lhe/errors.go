package lhe

import (
	"errors"
	"fmt"
)

// Codec errors
var (
	ErrInvalidDimensions  = errors.New("lhe: invalid image dimensions")
	ErrInvalidSubsampling = errors.New("lhe: invalid chroma subsampling mode")
	ErrInvalidVariant     = errors.New("lhe: unsupported codec variant")
	ErrShortHeader        = errors.New("lhe: header too short")
	ErrCorruptStream      = errors.New("lhe: corrupt symbol stream")
	ErrSymbolsExhausted   = errors.New("lhe: symbol stream ended before plane was complete")
	ErrInvalidHop         = errors.New("lhe: hop index out of range")
)

// GeometryError reports plane dimensions that the codec cannot scan.
// Odd sizes under chroma subsampling are not errors: the dangling
// column or row is truncated.
type GeometryError struct {
	Plane  string
	Width  int
	Height int
	Len    int // number of samples supplied, -1 if not applicable
}

func (e *GeometryError) Error() string {
	if e.Len >= 0 {
		return fmt.Sprintf("lhe: %s plane %dx%d has %d samples", e.Plane, e.Width, e.Height, e.Len)
	}
	return fmt.Sprintf("lhe: invalid %s plane geometry %dx%d", e.Plane, e.Width, e.Height)
}

func (e *GeometryError) Unwrap() error { return ErrInvalidDimensions }

// CacheBoundsError is the panic value raised when a hop cache lookup falls
// outside the precomputed table. It can only happen through a programming
// error, never through input data.
type CacheBoundsError struct {
	Step int
	Base int
	Hop  int
}

func (e *CacheBoundsError) Error() string {
	return fmt.Sprintf("lhe: hop cache lookup out of range (step=%d base=%d hop=%d)", e.Step, e.Base, e.Hop)
}

// RunDecodeError is returned when a symbol stream cannot be expanded into
// hops, typically because it was written with a different run mode.
type RunDecodeError struct {
	Pos    int // scan position of the offending symbol
	Symbol Symbol
	Reason string
}

func (e *RunDecodeError) Error() string {
	return fmt.Sprintf("lhe: run decode error at position %d (symbol %s): %s", e.Pos, e.Symbol, e.Reason)
}

func (e *RunDecodeError) Unwrap() error { return ErrCorruptStream }
