package lhe

import (
	"bytes"
	"fmt"
)

// Payload characters. A plane's symbols are stored as text before entropy
// coding: '1'..'9' for symbols, 'X' for runs and '0' between the Cb and
// Cr streams.
const (
	runChar       = 'X'
	separatorChar = '0'
)

// MarshalSymbols appends the text form of symbols to dst.
func MarshalSymbols(dst []byte, symbols []Symbol) []byte {
	for _, s := range symbols {
		if s == SymbolRun {
			dst = append(dst, runChar)
		} else {
			dst = append(dst, '0'+byte(s))
		}
	}
	return dst
}

// UnmarshalSymbols parses a payload produced by MarshalSymbols. The
// separator character decodes to SymbolSeparator.
func UnmarshalSymbols(text []byte) ([]Symbol, error) {
	out := make([]Symbol, len(text))
	for i, c := range text {
		switch {
		case c == runChar:
			out[i] = SymbolRun
		case c >= '0' && c <= '9':
			out[i] = Symbol(c - '0')
		default:
			return nil, fmt.Errorf("%w: unexpected byte %#x at offset %d", ErrCorruptStream, c, i)
		}
	}
	return out, nil
}

// JoinChroma concatenates the Cb and Cr payloads around a separator.
func JoinChroma(cb, cr []byte) []byte {
	out := make([]byte, 0, len(cb)+1+len(cr))
	out = append(out, cb...)
	out = append(out, separatorChar)
	return append(out, cr...)
}

// SplitChroma undoes JoinChroma. Symbol payloads never contain the
// separator, so the first one splits the streams.
func SplitChroma(payload []byte) (cb, cr []byte, err error) {
	i := bytes.IndexByte(payload, separatorChar)
	if i < 0 {
		return nil, nil, fmt.Errorf("%w: missing chroma separator", ErrCorruptStream)
	}
	return payload[:i], payload[i+1:], nil
}
