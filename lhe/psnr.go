package lhe

import "math"

// PSNR returns the peak signal-to-noise ratio in dB between two sample
// sequences of equal length. Identical inputs yield +Inf.
// It panics if the lengths differ.
func PSNR(orig, recon []uint8) float64 {
	if len(orig) != len(recon) {
		panic("lhe: PSNR of sequences with different lengths")
	}
	if len(orig) == 0 {
		return math.Inf(1)
	}
	var sum uint64
	for i, v := range orig {
		d := int64(v) - int64(recon[i])
		sum += uint64(d * d)
	}
	if sum == 0 {
		return math.Inf(1)
	}
	mse := float64(sum) / float64(len(orig))
	return 10 * math.Log10(255*255/mse)
}
