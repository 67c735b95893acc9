package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/lossless/errs"
)

// lz4CompressorPool keeps lz4.Compressor hash tables warm between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	// maxLZ4Output bounds the decode buffer growth for a single block.
	maxLZ4Output = 128 * 1024 * 1024
	// maxLZ4Expansion is the largest output-to-input ratio an LZ4 block can reach.
	maxLZ4Expansion = 255
)

// LZ4Codec wraps LZ4 block compression.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses data as a single LZ4 block.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("lz4 produced an empty block for %d input bytes", len(data))
	}

	return dst[:n], nil
}

// Decompress decodes a single LZ4 block.
//
// The block does not record its decoded size, so the output buffer starts at
// four times the input and doubles on a short-buffer error until it reaches
// the largest size the block could expand to, capped at 128MiB.
//
// Returns errs.ErrFormat for a corrupt or oversized block.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	limit := min(len(data)*maxLZ4Expansion+16, maxLZ4Output)
	for size := len(data) * 4; ; size *= 2 {
		size = min(size, limit)
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || size == limit {
			return nil, fmt.Errorf("%w: lz4: %w", errs.ErrFormat, err)
		}
	}
}
