package lhe

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

// TestEncodeDeterminism verifies that encoding the same image repeatedly
// produces byte-identical files for every variant.
func TestEncodeDeterminism(t *testing.T) {
	src := testImage(57, 41)

	for _, s := range allSubsampling {
		for _, mode := range []RunMode{RunDynamic, RunStatic} {
			for _, method := range allMethods {
				o := &Options{Subsampling: s, RunMode: mode, Method: method}
				var hashes [][32]byte
				for i := 0; i < 3; i++ {
					var buf bytes.Buffer
					if err := EncodeImage(&buf, src, o); err != nil {
						t.Fatalf("%s %s %s: EncodeImage error: %v", s, mode, method, err)
					}
					hashes = append(hashes, sha256.Sum256(buf.Bytes()))
				}
				for i := 1; i < len(hashes); i++ {
					if hashes[i] != hashes[0] {
						t.Errorf("Non-deterministic %s %s %s encode: hash[0] != hash[%d]", s, mode, method, i)
					}
				}
			}
		}
	}
}

// TestSymbolDeterminism checks that the hop and symbol sequences of a plane
// depend only on its samples.
func TestSymbolDeterminism(t *testing.T) {
	c := DefaultHopCache()
	p := gradientPlane(70, 20)

	var first [32]byte
	for i := 0; i < 3; i++ {
		hops, _, err := QuantizePlane(c, p)
		if err != nil {
			t.Fatal(err)
		}
		syms, err := HopsToSymbols(hops, p.Width, RunDynamic)
		if err != nil {
			t.Fatal(err)
		}
		sum := sha256.Sum256(append(append([]byte{}, hops...), MarshalSymbols(nil, syms)...))
		if i == 0 {
			first = sum
		} else if sum != first {
			t.Errorf("run %d: hop/symbol hash differs", i)
		}
	}
}
