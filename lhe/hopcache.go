package lhe

import (
	"fmt"
	"math"
	"sync"
)

// HopIndex selects one of the nine quantization levels. NullHop means the
// sample equals its prediction; lower indices move down, higher move up.
type HopIndex = uint8

const (
	// NullHop is the "no change" hop.
	NullHop HopIndex = 4
	// NumHops is the number of hop levels.
	NumHops = 9
)

// Ratio limits. rmax/10 is the largest ratio between consecutive hops.
const (
	DefaultRmax = 25
	MinRmax     = 20
	MaxRmax     = 40
)

// Range of step sizes materialized in a HopCache.
const (
	cacheMinStep = 1
	cacheMaxStep = 19
)

// HopCache maps (step, base) to the nine reconstruction values of each hop.
// Rows are non-decreasing and every entry lies in [1,255].
// A HopCache is immutable and safe for concurrent use.
type HopCache struct {
	rmax int
	rows [cacheMaxStep + 1][256][NumHops]uint8
}

var (
	defaultCache     *HopCache
	defaultCacheOnce sync.Once
)

// DefaultHopCache returns the shared cache for DefaultRmax.
func DefaultHopCache() *HopCache {
	defaultCacheOnce.Do(func() {
		c, err := NewHopCache(DefaultRmax)
		if err != nil {
			panic(err)
		}
		defaultCache = c
	})
	return defaultCache
}

// NewHopCache builds the table for the given ratio limit.
func NewHopCache(rmax int) (*HopCache, error) {
	if rmax < MinRmax || rmax > MaxRmax {
		return nil, fmt.Errorf("lhe: rmax %d outside [%d,%d]", rmax, MinRmax, MaxRmax)
	}
	c := &HopCache{rmax: rmax}
	maxRatio := float64(rmax) / 10
	for s := cacheMinStep; s <= cacheMaxStep; s++ {
		for b := 0; b < 256; b++ {
			c.rows[s][b] = buildRow(s, b, maxRatio)
		}
	}
	return c, nil
}

func hopRatio(dist, step int, maxRatio float64) float64 {
	r := math.Cbrt(0.8 * float64(dist) / float64(step))
	// Below 1 the outer hops would fall inside the inner ones.
	if r < 1 {
		r = 1
	}
	if r > maxRatio {
		r = maxRatio
	}
	return r
}

func buildRow(s, b int, maxRatio float64) [NumHops]uint8 {
	rpos := hopRatio(255-b, s, maxRatio)
	rneg := hopRatio(b, s, maxRatio)

	o6 := float64(s) * rpos
	o7 := o6 * rpos
	o8 := o7 * rpos
	o2 := float64(s) * rneg
	o1 := o2 * rneg
	o0 := o1 * rneg

	v := [NumHops]int{
		b - int(o0),
		b - int(o1),
		b - int(o2),
		b - s,
		b,
		b + s,
		b + int(o6),
		b + int(o7),
		b + int(o8),
	}
	var row [NumHops]uint8
	for i, x := range v {
		row[i] = clampSample(x, 1)
	}
	return row
}

// clampSample clamps v into [lo,255].
func clampSample(v, lo int) uint8 {
	if v < lo {
		return uint8(lo)
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Rmax returns the ratio limit the cache was built with.
func (c *HopCache) Rmax() int { return c.rmax }

// Row returns the nine hop values for (step, base).
// It panics with *CacheBoundsError if step is outside the table.
func (c *HopCache) Row(step int, base uint8) *[NumHops]uint8 {
	if step < cacheMinStep || step > cacheMaxStep {
		panic(&CacheBoundsError{Step: step, Base: int(base), Hop: -1})
	}
	return &c.rows[step][base]
}

// Value returns the reconstruction value of hop at (step, base).
// It panics with *CacheBoundsError on an out-of-range step or hop.
func (c *HopCache) Value(step int, base uint8, hop HopIndex) uint8 {
	if hop >= NumHops {
		panic(&CacheBoundsError{Step: step, Base: int(base), Hop: int(hop)})
	}
	return c.Row(step, base)[hop]
}
