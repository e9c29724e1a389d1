package lhe

import (
	"errors"
	"slices"
	"testing"
)

func TestChromaSize(t *testing.T) {
	tests := []struct {
		w, h   int
		s      Subsampling
		cw, ch int
	}{
		{4, 4, Subsample420, 2, 2},
		{5, 3, Subsample420, 2, 1},
		{1, 1, Subsample420, 0, 0},
		{5, 3, Subsample422, 2, 3},
		{1, 7, Subsample422, 0, 7},
		{5, 3, Subsample444, 5, 3},
	}
	for _, tt := range tests {
		cw, ch := ChromaSize(tt.w, tt.h, tt.s)
		if cw != tt.cw || ch != tt.ch {
			t.Errorf("ChromaSize(%d, %d, %s) = %d, %d, want %d, %d", tt.w, tt.h, tt.s, cw, ch, tt.cw, tt.ch)
		}
	}
}

func TestParseSubsampling(t *testing.T) {
	tests := []struct {
		in   string
		want Subsampling
	}{
		{"420", Subsample420},
		{"4:2:0", Subsample420},
		{"422", Subsample422},
		{"4:4:4", Subsample444},
	}
	for _, tt := range tests {
		got, err := ParseSubsampling(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseSubsampling(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseSubsampling("411"); !errors.Is(err, ErrInvalidSubsampling) {
		t.Errorf("ParseSubsampling(411) error = %v, want %v", err, ErrInvalidSubsampling)
	}
	if got := Subsampling(9).String(); got != "Subsampling(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestSubsample(t *testing.T) {
	// 5x3 plane, values y*10+x.
	p := NewPlane(5, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			p.Pix[y*5+x] = uint8(y*10 + x)
		}
	}

	tests := []struct {
		s    Subsampling
		w, h int
		want []uint8
	}{
		{Subsample420, 2, 1, []uint8{0, 2}},
		{Subsample422, 2, 3, []uint8{0, 2, 10, 12, 20, 22}},
		{Subsample444, 5, 3, p.Pix},
	}
	for _, tt := range tests {
		got := Subsample(p, tt.s)
		if got.Width != tt.w || got.Height != tt.h || !slices.Equal(got.Pix, tt.want) {
			t.Errorf("Subsample(%s) = %dx%d %v, want %dx%d %v", tt.s, got.Width, got.Height, got.Pix, tt.w, tt.h, tt.want)
		}
	}
}

func TestUpsample(t *testing.T) {
	tests := []struct {
		name string
		p    *Plane
		w, h int
		s    Subsampling
		want []uint8
	}{
		{
			name: "420 single sample fills block",
			p:    &Plane{Width: 1, Height: 1, Pix: []uint8{42}},
			w:    2,
			h:    2,
			s:    Subsample420,
			want: []uint8{42, 42, 42, 42},
		},
		{
			name: "420 odd size repeats edge",
			p:    &Plane{Width: 2, Height: 1, Pix: []uint8{1, 2}},
			w:    5,
			h:    3,
			s:    Subsample420,
			want: []uint8{
				1, 1, 2, 2, 2,
				1, 1, 2, 2, 2,
				1, 1, 2, 2, 2,
			},
		},
		{
			name: "422 duplicates columns only",
			p:    &Plane{Width: 2, Height: 2, Pix: []uint8{1, 2, 3, 4}},
			w:    4,
			h:    2,
			s:    Subsample422,
			want: []uint8{1, 1, 2, 2, 3, 3, 4, 4},
		},
		{
			name: "empty plane uses fill",
			p:    &Plane{},
			w:    1,
			h:    2,
			s:    Subsample420,
			want: []uint8{128, 128},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Upsample(tt.p, tt.w, tt.h, tt.s, 128)
			if !slices.Equal(got.Pix, tt.want) {
				t.Errorf("Upsample() = %v, want %v", got.Pix, tt.want)
			}
		})
	}
}

func TestSubsampleUpsampleKeepsCells(t *testing.T) {
	p := gradientPlane(8, 6)
	for _, s := range allSubsampling {
		up := Upsample(Subsample(p, s), p.Width, p.Height, s, 0)
		down := Subsample(up, s)
		if !slices.Equal(down.Pix, Subsample(p, s).Pix) {
			t.Errorf("%s: Subsample(Upsample()) changed samples", s)
		}
	}
}
