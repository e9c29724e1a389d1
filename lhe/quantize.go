package lhe

import (
	"github.com/mrjoshuak/go-lhe/internal/predictor"
)

// Quantize picks the hop whose reconstruction best fits original, given
// the predicted base and the current step.
//
// The search walks outward from the null hop in the direction of the
// error and stops at the first candidate that does not improve on the
// best so far. A candidate that overshoots original is taken only if it
// improves, and ends the search. Ties keep the hop nearer the centre.
func Quantize(cache *HopCache, original, base uint8, step int) HopIndex {
	row := cache.Row(step, base)
	o := int(original)
	emin := 256
	hop := NullHop

	if o >= int(base) {
		for j := NullHop; j < NumHops; j++ {
			e := o - int(row[j])
			over := e < 0
			if over {
				e = -e
			}
			if e >= emin {
				break
			}
			hop, emin = j, e
			if over {
				break
			}
		}
		return hop
	}

	for j := int(NullHop); j >= 0; j-- {
		e := int(row[j]) - o
		over := e < 0
		if over {
			e = -e
		}
		if e >= emin {
			break
		}
		hop, emin = HopIndex(j), e
		if over {
			break
		}
	}
	return hop
}

// QuantizePlane quantizes every sample of p in raster order. It returns
// the hop sequence and the reconstructed samples the decoder will
// produce from it. The plane's first sample is the seed and is
// reconstructed exactly.
func QuantizePlane(cache *HopCache, p *Plane) (hops []HopIndex, recon []uint8, err error) {
	if err := p.check("input"); err != nil {
		return nil, nil, err
	}
	seed := p.Pix[0]
	pred := predictor.New(p.Width, p.Height, seed)
	hops = make([]HopIndex, len(p.Pix))

	for i, orig := range p.Pix {
		base, step := pred.Predict()
		hop := Quantize(cache, orig, base, step)
		v := seed
		if i > 0 {
			v = cache.Value(step, base, hop)
		}
		pred.Advance(hop, v)
		hops[i] = hop
	}
	return hops, pred.History(), nil
}
