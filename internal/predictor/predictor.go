// Package predictor implements the adaptive spatial predictor that drives
// LHE quantization and reconstruction.
//
// The predictor walks a component plane in raster order. For every sample it
// produces a base value from already reconstructed neighbours (left, above,
// above-right) together with the current step size ("hop1"). After the hop
// for that sample is chosen, Advance records the reconstructed value and
// adapts the step size. Encoder and decoder run the same state machine, so
// feeding the same hops yields the same history on both sides.
package predictor

// Step size limits. The step starts every row at MaxStep and shrinks by one
// for each small hop that follows another small hop, never below MinStep.
const (
	MinStep = 4
	MaxStep = 10
)

// Predictor holds the per-plane scan state. It is not safe for concurrent
// use; each plane owns its own Predictor.
type Predictor struct {
	width  int
	height int
	seed   uint8

	step      int
	lastSmall bool

	// history holds reconstructed samples in scan order.
	history []uint8
}

// New creates a predictor for a width x height plane. The seed is the value
// transmitted out of band for the first sample.
// It panics if either dimension is not positive.
func New(width, height int, seed uint8) *Predictor {
	if width <= 0 || height <= 0 {
		panic("predictor: non-positive plane dimensions")
	}
	return &Predictor{
		width:   width,
		height:  height,
		seed:    seed,
		step:    MaxStep,
		history: make([]uint8, 0, width*height),
	}
}

// Done reports whether every sample of the plane has been advanced.
func (p *Predictor) Done() bool { return len(p.history) == p.width*p.height }

// History returns the reconstructed samples so far. The slice aliases the
// predictor's storage.
func (p *Predictor) History() []uint8 { return p.history }

// Predict returns the base value and step size for the next sample.
//
// At the start of every row after the first, the step size and the small-hop
// flag are reset before the step is returned.
func (p *Predictor) Predict() (base uint8, step int) {
	pos := len(p.history)
	x := pos % p.width
	y := pos / p.width

	switch {
	case pos == 0:
		base = p.seed
	case y == 0:
		base = p.history[pos-1]
	case x == 0:
		base = p.history[pos-p.width]
		p.step = MaxStep
		p.lastSmall = false
	case x == p.width-1:
		left := int(p.history[pos-1])
		above := int(p.history[pos-p.width])
		base = uint8(roundDiv(4*left+2*above, 6))
	default:
		left := int(p.history[pos-1])
		aboveRight := int(p.history[pos-p.width+1])
		base = uint8(roundDiv(4*left+3*aboveRight, 7))
	}
	return base, p.step
}

// Advance records the hop chosen for the current sample and its
// reconstructed value, then adapts the step size for the next sample.
// It must be called exactly once per sample, after Predict.
func (p *Predictor) Advance(hop uint8, reconstructed uint8) {
	if p.Done() {
		panic("predictor: advance past end of plane")
	}

	small := IsSmall(hop)
	if small && p.lastSmall {
		if p.step > MinStep {
			p.step--
		}
	} else {
		p.step = MaxStep
	}
	p.lastSmall = small
	p.history = append(p.history, reconstructed)
}

// IsSmall reports whether a hop index is one of the three central hops
// (3, 4 or 5).
func IsSmall(hop uint8) bool {
	return hop >= 3 && hop <= 5
}

// roundDiv divides a non-negative numerator, rounding half up.
func roundDiv(n, d int) int {
	return (n + d/2) / d
}
