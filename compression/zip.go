package compression

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// FLevel is the 2-bit compression level category from the zlib header.
type FLevel int

const (
	FLevelFastest FLevel = 0 // levels -2, 0, 1
	FLevelFast    FLevel = 1 // levels 2 to 5
	FLevelDefault FLevel = 2 // levels 6, -1
	FLevelBest    FLevel = 3 // levels 7 to 9
)

// DetectZlibFLevel extracts the FLEVEL from zlib compressed data.
// Returns the FLevel and true if successful, or 0 and false if the
// data is too short or has an invalid header.
func DetectZlibFLevel(data []byte) (FLevel, bool) {
	if len(data) < 2 {
		return 0, false
	}

	cmf := data[0]
	flg := data[1]

	// Compression method must be 8 (deflate)
	if cmf&0x0f != 8 {
		return 0, false
	}

	// Header checksum
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return 0, false
	}

	return FLevel((flg >> 6) & 0x03), true
}

// Pool for zlib writers to reduce allocations.
// Each pooled item contains both the writer and its destination buffer.
type zlibWriterPoolItem struct {
	writer *zlib.Writer
	buf    *bytes.Buffer
}

var zlibWriterPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		w, _ := zlib.NewWriterLevel(buf, zlib.BestCompression)
		return &zlibWriterPoolItem{writer: w, buf: buf}
	},
}

// ZlibCompress compresses a symbol payload with zlib at best compression.
// Symbol payloads are small relative to the images they describe, so the
// slowest level is affordable.
func ZlibCompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	item := zlibWriterPool.Get().(*zlibWriterPoolItem)
	defer zlibWriterPool.Put(item)
	item.buf.Reset()
	item.writer.Reset(item.buf)

	if _, err := item.writer.Write(src); err != nil {
		item.writer.Close()
		return nil, err
	}
	if err := item.writer.Close(); err != nil {
		return nil, err
	}

	result := make([]byte, item.buf.Len())
	copy(result, item.buf.Bytes())
	return result, nil
}

// zlibReaderPoolItem wraps a zlib reader for pooling
type zlibReaderPoolItem struct {
	reader io.ReadCloser
	srcBuf *bytes.Reader
}

var zlibReaderPool = sync.Pool{
	New: func() any {
		return &zlibReaderPoolItem{
			srcBuf: bytes.NewReader(nil),
		}
	},
}

// ZlibDecompress decompresses zlib data, failing with ErrOverflow when the
// output would exceed limit bytes.
func ZlibDecompress(src []byte, limit int) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	if _, ok := DetectZlibFLevel(src); !ok {
		return nil, ErrCorrupted
	}

	item := zlibReaderPool.Get().(*zlibReaderPoolItem)
	defer zlibReaderPool.Put(item)
	item.srcBuf.Reset(src)

	var err error
	if item.reader == nil {
		item.reader, err = zlib.NewReader(item.srcBuf)
	} else if resetter, ok := item.reader.(zlib.Resetter); ok {
		err = resetter.Reset(item.srcBuf, nil)
	} else {
		item.reader.Close()
		item.reader, err = zlib.NewReader(item.srcBuf)
	}
	if err != nil {
		item.reader = nil
		return nil, ErrCorrupted
	}

	var out bytes.Buffer
	n, err := out.ReadFrom(io.LimitReader(item.reader, int64(limit)+1))
	if err != nil {
		return nil, ErrCorrupted
	}
	if n > int64(limit) {
		return nil, ErrOverflow
	}
	return out.Bytes(), nil
}
