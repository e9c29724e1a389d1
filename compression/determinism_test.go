package compression

import (
	"crypto/sha256"
	"testing"
)

// TestCompressionDeterminism verifies that compressing the same payload
// always produces identical output, which the .lhe format relies on for
// reproducible files.
func TestCompressionDeterminism(t *testing.T) {
	data := symbolPayload(50000)

	for _, m := range allMethods {
		var hashes [][32]byte
		for i := 0; i < 5; i++ {
			compressed, err := Compress(m, data)
			if err != nil {
				t.Fatalf("%s: Compress error: %v", m, err)
			}
			hashes = append(hashes, sha256.Sum256(compressed))
		}

		for i := 1; i < len(hashes); i++ {
			if hashes[i] != hashes[0] {
				t.Errorf("Non-deterministic %s compression: hash[0] != hash[%d]", m, i)
			}
		}
		t.Logf("%s compression is deterministic (5 runs, hash=%x)", m, hashes[0][:8])
	}
}
