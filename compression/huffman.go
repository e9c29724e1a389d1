package compression

import (
	"errors"
	"sync"

	"github.com/klauspost/compress/huff0"

	"github.com/mrjoshuak/go-lhe/internal/xdr"
)

// Huffman streams are a sequence of blocks of at most huff0.BlockSizeMax
// input bytes. Each block is
//
//	kind (1 byte) | raw length (uvarint) | body
//
// where body is the raw bytes (blockRaw), the single repeated byte
// (blockRLE), or a coded length (uvarint) followed by a huff0 1X stream
// carrying its own table (blockHuffman).
const (
	blockRaw     byte = 0
	blockRLE     byte = 1
	blockHuffman byte = 2
)

var huffScratchPool = sync.Pool{
	New: func() any {
		return &huff0.Scratch{}
	},
}

// HuffmanCompress compresses src with static Huffman coding. Inputs that
// huff0 cannot shrink are stored raw, single-symbol blocks run-length coded.
func HuffmanCompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	s := huffScratchPool.Get().(*huff0.Scratch)
	defer huffScratchPool.Put(s)
	s.Reuse = huff0.ReusePolicyNone

	dst := make([]byte, 0, len(src)/2+16)
	for len(src) > 0 {
		n := len(src)
		if n > huff0.BlockSizeMax {
			n = huff0.BlockSizeMax
		}
		block := src[:n]
		src = src[n:]

		out, _, err := huff0.Compress1X(block, s)
		switch {
		case err == nil:
			dst = append(dst, blockHuffman)
			dst = xdr.AppendUvarint(dst, uint64(n))
			dst = xdr.AppendUvarint(dst, uint64(len(out)))
			dst = append(dst, out...)
		case errors.Is(err, huff0.ErrUseRLE):
			dst = append(dst, blockRLE)
			dst = xdr.AppendUvarint(dst, uint64(n))
			dst = append(dst, block[0])
		case errors.Is(err, huff0.ErrIncompressible):
			dst = append(dst, blockRaw)
			dst = xdr.AppendUvarint(dst, uint64(n))
			dst = append(dst, block...)
		default:
			return nil, err
		}
	}
	return dst, nil
}

// HuffmanDecompress reverses HuffmanCompress, failing with ErrOverflow when
// the output would exceed limit bytes.
func HuffmanDecompress(src []byte, limit int) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	s := huffScratchPool.Get().(*huff0.Scratch)
	defer huffScratchPool.Put(s)

	var dst []byte
	r := xdr.NewReader(src)
	for r.Len() > 0 {
		kind, _ := r.ReadUint8()
		rawLen, err := r.ReadUvarint()
		if err != nil {
			return nil, ErrCorrupted
		}
		if rawLen == 0 || rawLen > huff0.BlockSizeMax {
			return nil, ErrCorrupted
		}
		if uint64(len(dst))+rawLen > uint64(limit) {
			return nil, ErrOverflow
		}
		n := int(rawLen)

		switch kind {
		case blockRaw:
			body, err := r.Next(n)
			if err != nil {
				return nil, ErrCorrupted
			}
			dst = append(dst, body...)

		case blockRLE:
			v, err := r.ReadUint8()
			if err != nil {
				return nil, ErrCorrupted
			}
			for i := 0; i < n; i++ {
				dst = append(dst, v)
			}

		case blockHuffman:
			codedLen, err := r.ReadUvarint()
			if err != nil || codedLen > uint64(r.Len()) {
				return nil, ErrCorrupted
			}
			coded, _ := r.Next(int(codedLen))

			s.MaxDecodedSize = n
			s2, remain, err := huff0.ReadTable(coded, s)
			if err != nil {
				return nil, ErrCorrupted
			}
			s = s2
			out, err := s.Decompress1X(remain)
			if err != nil || len(out) != n {
				return nil, ErrCorrupted
			}
			dst = append(dst, out...)

		default:
			return nil, ErrCorrupted
		}
	}
	return dst, nil
}
