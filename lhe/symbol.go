package lhe

import (
	"fmt"
)

// Symbol is an element of the symbol alphabet handed to the entropy coder.
// Values 1..9 encode a hop relative to the hop above; SymbolRun stands for
// a run of null hops and SymbolSeparator joins the two chroma streams.
type Symbol uint8

const (
	SymbolSeparator Symbol = 0
	SymbolNull      Symbol = 1 // always the null hop
	SymbolRepeat    Symbol = 2 // usually the same hop as above
	SymbolMax       Symbol = 9
	SymbolRun       Symbol = 10
)

// String returns the payload character for s.
func (s Symbol) String() string {
	switch {
	case s == SymbolRun:
		return "X"
	case s <= SymbolMax:
		return string(rune('0' + s))
	default:
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
}

// RunMode selects how runs of null hops are collapsed into SymbolRun.
// The numeric values are stored in the variant byte.
type RunMode uint8

const (
	// RunDynamic starts at a run length of 8, grows it by 2 after each
	// completed run and halves it when a short run is interrupted.
	RunDynamic RunMode = 0
	// RunStatic always uses runs of 8.
	RunStatic RunMode = 1
)

// String returns "dynamic" or "static".
func (m RunMode) String() string {
	switch m {
	case RunDynamic:
		return "dynamic"
	case RunStatic:
		return "static"
	default:
		return fmt.Sprintf("RunMode(%d)", uint8(m))
	}
}

// initialRunLength is the run length at the start of a plane.
const initialRunLength = 8

// contextTable[above][hop] is the symbol for hop given the hop above it.
// Row NullHop doubles as the default table for the first row. In every row
// the null hop maps to 1 and the hop equal to above maps to 2.
var contextTable = [NumHops][NumHops]Symbol{
	{2, 8, 6, 4, 1, 3, 5, 7, 9},
	{9, 2, 6, 4, 1, 3, 5, 7, 8},
	{9, 7, 2, 4, 1, 3, 5, 6, 8},
	{9, 7, 5, 2, 1, 3, 4, 6, 8},
	{9, 7, 5, 3, 1, 2, 4, 6, 8},
	{9, 7, 5, 3, 1, 2, 4, 6, 8},
	{9, 7, 5, 4, 1, 3, 2, 6, 8},
	{9, 7, 6, 4, 1, 3, 5, 2, 8},
	{9, 8, 6, 4, 1, 3, 5, 7, 2},
}

// hopTable is the inverse of contextTable: hopTable[above][symbol].
var hopTable [NumHops][SymbolMax + 1]HopIndex

func init() {
	for a := range contextTable {
		var seen [SymbolMax + 1]bool
		for h, s := range contextTable[a] {
			if s == 0 || s > SymbolMax || seen[s] {
				panic(fmt.Sprintf("lhe: context table row %d is not a permutation", a))
			}
			seen[s] = true
			hopTable[a][s] = HopIndex(h)
		}
	}
}

// runState is the run-length bookkeeping shared by encoder and decoder.
type runState struct {
	dynamic   bool
	threshold int
	count     int
	inChain   bool // the current null streak began with a completed run
}

func newRunState(mode RunMode) runState {
	return runState{dynamic: mode == RunDynamic, threshold: initialRunLength}
}

// rowStart drops any partial count; runs never span rows.
func (r *runState) rowStart() {
	r.count = 0
}

// null records one null hop and reports whether a run is now complete.
func (r *runState) null() bool {
	r.count++
	return r.count >= r.threshold
}

// complete closes a run and returns its length.
func (r *runState) complete() int {
	n := r.threshold
	r.count = 0
	r.inChain = true
	if r.dynamic {
		r.threshold += 2
	}
	return n
}

// interrupt records a non-null hop.
func (r *runState) interrupt() {
	if r.count != 0 {
		r.count = 0
		if r.dynamic && !r.inChain {
			r.threshold = (r.threshold + 1) / 2
		}
	}
	r.inChain = false
}

// HopsToSymbols maps a plane's hop sequence (raster order, rows of width
// samples) to symbols, collapsing runs of null hops into SymbolRun.
func HopsToSymbols(hops []HopIndex, width int, mode RunMode) ([]Symbol, error) {
	if width <= 0 || len(hops)%width != 0 {
		return nil, &GeometryError{Plane: "hop", Width: width, Height: -1, Len: len(hops)}
	}
	out := make([]Symbol, 0, len(hops))
	rs := newRunState(mode)

	for pos, hop := range hops {
		if pos%width == 0 {
			rs.rowStart()
		}
		if hop >= NumHops {
			return nil, ErrInvalidHop
		}
		if hop == NullHop {
			out = append(out, SymbolNull)
			if rs.null() {
				n := rs.complete()
				out = append(out[:len(out)-n], SymbolRun)
			}
			continue
		}
		rs.interrupt()
		above := NullHop
		if pos >= width {
			above = hops[pos-width]
		}
		out = append(out, contextTable[above][hop])
	}
	return out, nil
}

// SymbolsToHops decodes a width x height plane from the front of symbols.
// It returns the hops and the number of symbols consumed.
func SymbolsToHops(symbols []Symbol, width, height int, mode RunMode) ([]HopIndex, int, error) {
	if width <= 0 || height <= 0 {
		return nil, 0, &GeometryError{Plane: "hop", Width: width, Height: height, Len: -1}
	}
	total := width * height
	hops := make([]HopIndex, 0, min(total, len(symbols)))
	rs := newRunState(mode)
	i := 0

	for len(hops) < total {
		pos := len(hops)
		x := pos % width
		if x == 0 {
			rs.rowStart()
		}
		if i >= len(symbols) {
			return nil, i, ErrSymbolsExhausted
		}
		s := symbols[i]
		i++

		switch {
		case s == SymbolRun:
			n := rs.threshold
			if rs.count != 0 {
				return nil, i, &RunDecodeError{Pos: pos, Symbol: s, Reason: "run marker follows literal null hops"}
			}
			if x+n > width {
				return nil, i, &RunDecodeError{Pos: pos, Symbol: s, Reason: fmt.Sprintf("run of %d overruns row", n)}
			}
			for k := 0; k < n; k++ {
				hops = append(hops, NullHop)
			}
			rs.complete()
		case s == SymbolNull:
			hops = append(hops, NullHop)
			if rs.null() {
				return nil, i, &RunDecodeError{Pos: pos, Symbol: s, Reason: "literal null hop completes a run"}
			}
		case s >= SymbolRepeat && s <= SymbolMax:
			rs.interrupt()
			above := NullHop
			if pos >= width {
				above = hops[pos-width]
			}
			hops = append(hops, hopTable[above][s])
		default:
			return nil, i, &RunDecodeError{Pos: pos, Symbol: s, Reason: "symbol outside alphabet"}
		}
	}
	return hops, i, nil
}
