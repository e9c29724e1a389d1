package lhe

import (
	"bytes"
	"errors"
	"slices"
	"testing"
)

func TestMarshalSymbols(t *testing.T) {
	s := syms(1, 2, 3, 4, 5, 6, 7, 8, 9, 'X')
	got := MarshalSymbols(nil, s)
	if want := "123456789X"; string(got) != want {
		t.Errorf("MarshalSymbols() = %q, want %q", got, want)
	}

	back, err := UnmarshalSymbols(got)
	if err != nil {
		t.Fatalf("UnmarshalSymbols() error: %v", err)
	}
	if !slices.Equal(back, s) {
		t.Errorf("UnmarshalSymbols() = %v, want %v", back, s)
	}
}

func TestUnmarshalSymbolsInvalid(t *testing.T) {
	for _, in := range []string{"12a", "x", " ", "1\x00"} {
		if _, err := UnmarshalSymbols([]byte(in)); !errors.Is(err, ErrCorruptStream) {
			t.Errorf("UnmarshalSymbols(%q) error = %v, want %v", in, err, ErrCorruptStream)
		}
	}
}

func TestChromaJoinSplit(t *testing.T) {
	tests := []struct {
		cb, cr string
	}{
		{"1X23", "9981"},
		{"", ""},
		{"X", ""},
		{"", "11"},
	}
	for _, tt := range tests {
		joined := JoinChroma([]byte(tt.cb), []byte(tt.cr))
		if want := tt.cb + "0" + tt.cr; string(joined) != want {
			t.Errorf("JoinChroma(%q, %q) = %q, want %q", tt.cb, tt.cr, joined, want)
		}
		cb, cr, err := SplitChroma(joined)
		if err != nil {
			t.Fatalf("SplitChroma(%q) error: %v", joined, err)
		}
		if !bytes.Equal(cb, []byte(tt.cb)) || !bytes.Equal(cr, []byte(tt.cr)) {
			t.Errorf("SplitChroma(%q) = %q, %q, want %q, %q", joined, cb, cr, tt.cb, tt.cr)
		}
	}

	if _, _, err := SplitChroma([]byte("1234")); !errors.Is(err, ErrCorruptStream) {
		t.Errorf("SplitChroma() without separator error = %v, want %v", err, ErrCorruptStream)
	}
}
