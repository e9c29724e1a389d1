package lhe

import "testing"

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestRGBToYUV(t *testing.T) {
	tests := []struct {
		r, g, b   uint8
		y, cb, cr uint8
	}{
		{0, 0, 0, 0, 128, 128},
		{255, 0, 0, 76, 84, 255},
		{0, 255, 0, 149, 43, 21},
		{0, 0, 255, 29, 255, 107},
	}
	for _, tt := range tests {
		y, cb, cr := RGBToYUV(tt.r, tt.g, tt.b)
		if y != tt.y || cb != tt.cb || cr != tt.cr {
			t.Errorf("RGBToYUV(%d, %d, %d) = %d, %d, %d, want %d, %d, %d", tt.r, tt.g, tt.b, y, cb, cr, tt.y, tt.cb, tt.cr)
		}
	}
}

func TestYUVGray(t *testing.T) {
	for v := 0; v < 256; v++ {
		y, cb, cr := RGBToYUV(uint8(v), uint8(v), uint8(v))
		if absDiff(y, uint8(v)) > 1 || absDiff(cb, 128) > 1 || absDiff(cr, 128) > 1 {
			t.Errorf("RGBToYUV(gray %d) = %d, %d, %d", v, y, cb, cr)
		}
	}
}

func TestYUVToRGBClamps(t *testing.T) {
	r, g, b := YUVToRGB(255, 255, 255)
	if r != 255 || b != 255 {
		t.Errorf("YUVToRGB(255, 255, 255) = %d, %d, %d, want clamped 255 red and blue", r, g, b)
	}
	r, g, b = YUVToRGB(0, 0, 0)
	if r != 0 || b != 0 {
		t.Errorf("YUVToRGB(0, 0, 0) = %d, %d, %d, want clamped 0 red and blue", r, g, b)
	}
	if g != 135 {
		t.Errorf("YUVToRGB(0, 0, 0) green = %d", g)
	}
}

func TestYUVRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				y, cb, cr := RGBToYUV(uint8(r), uint8(g), uint8(b))
				r2, g2, b2 := YUVToRGB(y, cb, cr)
				if absDiff(r2, uint8(r)) > 4 || absDiff(g2, uint8(g)) > 4 || absDiff(b2, uint8(b)) > 4 {
					t.Errorf("RGB(%d,%d,%d) -> YUV -> RGB(%d,%d,%d)", r, g, b, r2, g2, b2)
				}
			}
		}
	}
}
