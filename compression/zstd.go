package compression

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdMaxWindow caps decoder memory for hostile input.
const zstdMaxWindow = 64 << 20

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithEncoderConcurrency(1))
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxWindow(zstdMaxWindow))
		return dec
	},
}

// ZstdCompress compresses src into a single Zstandard frame.
func ZstdCompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	enc := zstdEncPool.Get().(*zstd.Encoder)
	defer zstdEncPool.Put(enc)
	return enc.EncodeAll(src, make([]byte, 0, len(src)/2)), nil
}

// ZstdDecompress decompresses a Zstandard frame, failing with ErrOverflow
// when the output exceeds limit bytes. Frames that declare a larger content
// size are rejected before any output is produced.
func ZstdDecompress(src []byte, limit int) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	var fh zstd.Header
	if err := fh.Decode(src); err != nil {
		return nil, ErrCorrupted
	}
	if fh.HasFCS && fh.FrameContentSize > uint64(limit) {
		return nil, ErrOverflow
	}

	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)
	if err := dec.Reset(bytes.NewReader(src)); err != nil {
		return nil, ErrCorrupted
	}

	var out bytes.Buffer
	n, err := out.ReadFrom(io.LimitReader(dec, int64(limit)+1))
	if err != nil {
		return nil, ErrCorrupted
	}
	if n > int64(limit) {
		return nil, ErrOverflow
	}
	return out.Bytes(), nil
}
