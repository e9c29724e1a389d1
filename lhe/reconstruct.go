package lhe

import (
	"github.com/mrjoshuak/go-lhe/internal/predictor"
)

// Reconstruct returns the sample value of hop at (base, step).
func Reconstruct(cache *HopCache, hop HopIndex, base uint8, step int) uint8 {
	return cache.Value(step, base, hop)
}

// ReconstructPlane replays the predictor over a width x height plane using
// the supplied hops. The first sample is always seed.
func ReconstructPlane(cache *HopCache, hops []HopIndex, width, height int, seed uint8) (*Plane, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, &GeometryError{Plane: "reconstructed", Width: width, Height: height, Len: -1}
	}
	if len(hops) != width*height {
		return nil, &GeometryError{Plane: "reconstructed", Width: width, Height: height, Len: len(hops)}
	}

	pred := predictor.New(width, height, seed)
	for i, hop := range hops {
		if hop >= NumHops {
			return nil, ErrInvalidHop
		}
		base, step := pred.Predict()
		v := seed
		if i > 0 {
			v = Reconstruct(cache, hop, base, step)
		}
		pred.Advance(hop, v)
	}
	return &Plane{Width: width, Height: height, Pix: pred.History()}, nil
}
