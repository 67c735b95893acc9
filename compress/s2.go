package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/lossless/errs"
)

// S2Codec wraps S2 block compression.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates an S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress compresses data as a single S2 block.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes a single S2 block.
//
// Returns errs.ErrFormat for a corrupt block.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %w", errs.ErrFormat, err)
	}

	return out, nil
}
