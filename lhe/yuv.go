package lhe

// Full-range YCbCr coefficients used by LHE. Conversions truncate toward
// zero and clamp to [0,255].
const (
	kr = 0.299
	kg = 0.587
	kb = 0.114

	cbR = 0.168736
	cbG = 0.331364
	crG = 0.418688
	crB = 0.081312

	rCr = 1.4075
	gCb = 0.3455
	gCr = 0.7169
	bCb = 1.779
)

// RGBToYUV converts an 8-bit RGB triple to Y, Cb, Cr.
func RGBToYUV(r, g, b uint8) (y, cb, cr uint8) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	y = clampSample(int(kr*fr+kg*fg+kb*fb), 0)
	cb = clampSample(int(128-cbR*fr-cbG*fg+0.5*fb), 0)
	cr = clampSample(int(128+0.5*fr-crG*fg-crB*fb), 0)
	return y, cb, cr
}

// YUVToRGB converts Y, Cb, Cr back to RGB.
func YUVToRGB(y, cb, cr uint8) (r, g, b uint8) {
	fy := float64(y)
	fcb := float64(cb) - 128
	fcr := float64(cr) - 128
	r = clampSample(int(fy+rCr*fcr), 0)
	g = clampSample(int(fy-gCb*fcb-gCr*fcr), 0)
	b = clampSample(int(fy+bCb*fcb), 0)
	return r, g, b
}
