// Package compression provides the entropy coders that pack LHE symbol
// payloads into the byte streams stored in .lhe files.
//
// The LHE core hands this package a flat text of symbols ('1'..'9', 'X'
// for null-hop runs and '0' as the chrominance separator). Any lossless
// byte-stream coder works; the file header records which one was used.
package compression

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrUnknownMethod = errors.New("compression: unknown method")
	ErrCorrupted     = errors.New("compression: corrupted data")
	ErrOverflow      = errors.New("compression: decompressed size exceeds limit")
)

// Method identifies an entropy coder. The numeric values are stored in the
// upper nibble of the .lhe variant byte and must not change.
type Method uint8

const (
	// MethodHuffman is static Huffman coding per block (huff0). It is the
	// default and the coder used by basic LHE files.
	MethodHuffman Method = 0
	// MethodZlib is zlib (deflate) compression.
	MethodZlib Method = 1
	// MethodZstd is Zstandard compression.
	MethodZstd Method = 2
	// MethodNone stores the payload unchanged.
	MethodNone Method = 3
)

// String returns the lower-case method name.
func (m Method) String() string {
	switch m {
	case MethodHuffman:
		return "huffman"
	case MethodZlib:
		return "zlib"
	case MethodZstd:
		return "zstd"
	case MethodNone:
		return "none"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	return m <= MethodNone
}

// ParseMethod parses a method name as returned by String.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "huffman", "huff0", "huff":
		return MethodHuffman, nil
	case "zlib", "zip", "deflate":
		return MethodZlib, nil
	case "zstd", "zstandard":
		return MethodZstd, nil
	case "none", "raw":
		return MethodNone, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Compress encodes src with the given method.
// An empty src always compresses to an empty result.
func Compress(m Method, src []byte) ([]byte, error) {
	if len(src) == 0 {
		if !m.Valid() {
			return nil, ErrUnknownMethod
		}
		return nil, nil
	}

	switch m {
	case MethodHuffman:
		return HuffmanCompress(src)
	case MethodZlib:
		return ZlibCompress(src)
	case MethodZstd:
		return ZstdCompress(src)
	case MethodNone:
		dst := make([]byte, len(src))
		copy(dst, src)
		return dst, nil
	}
	return nil, ErrUnknownMethod
}

// Decompress decodes src with the given method. limit bounds the size of
// the decompressed output; larger results fail with ErrOverflow.
func Decompress(m Method, src []byte, limit int) ([]byte, error) {
	if len(src) == 0 {
		if !m.Valid() {
			return nil, ErrUnknownMethod
		}
		return nil, nil
	}

	switch m {
	case MethodHuffman:
		return HuffmanDecompress(src, limit)
	case MethodZlib:
		return ZlibDecompress(src, limit)
	case MethodZstd:
		return ZstdDecompress(src, limit)
	case MethodNone:
		if len(src) > limit {
			return nil, ErrOverflow
		}
		dst := make([]byte, len(src))
		copy(dst, src)
		return dst, nil
	}
	return nil, ErrUnknownMethod
}
