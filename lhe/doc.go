// Package lhe implements LHE (Logarithmical Hopping Encoding), a lossy
// perceptual image codec built on per-pixel adaptive prediction instead of
// a block transform.
//
// Each component plane (Y, Cb, Cr) is scanned in raster order. A spatial
// predictor derives a base value from already reconstructed neighbours and
// the quantizer picks one of nine "hops" around it from a precomputed
// HopCache. Hops are logarithmically spaced: small near the prediction and
// growing towards the extremes, with a step size that shrinks while the
// image is smooth and snaps back after an edge. Because prediction always
// uses reconstructed values, the decoder replays the identical state
// machine from the hops alone.
//
// Hops are then mapped to symbols using the hop directly above as context,
// runs of null hops are collapsed into run markers, and the resulting text
// payloads are entropy coded (see package compression).
//
// # Basic Usage
//
// Encoding an image:
//
//	f, _ := os.Create("out.lhe")
//	defer f.Close()
//	err := lhe.EncodeImage(f, img, lhe.DefaultOptions())
//
// Decoding:
//
//	img, err := lhe.DecodeImage(f)
//
// # File Layout
//
// An .lhe file is a 19-byte Header followed by the compressed luminance
// payload and the compressed chrominance payload (Cb, a '0' separator,
// then Cr). The header records the chroma subsampling mode, the seed value
// of each plane and the Variant, which selects the run-length mode and the
// entropy coder.
//
// # Concurrency
//
// The three planes are independent and are processed concurrently (see
// SetParallelConfig). Within a plane the scan is strictly sequential.
package lhe
