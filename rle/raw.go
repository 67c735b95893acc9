package rle

import (
	"fmt"

	"github.com/arloliu/lossless/errs"
	"github.com/arloliu/lossless/internal/pool"
)

// MaxRawRun is the longest run a raw record can describe.
const MaxRawRun = 255

// rawRecordSize is the size of one [count][byte] record.
const rawRecordSize = 2

// RawCodec run-length encodes opaque bytes as [count][byte] records.
//
// RawCodec is stateless and safe for concurrent use.
type RawCodec struct{}

// NewRawCodec creates a raw-byte RLE codec.
func NewRawCodec() RawCodec {
	return RawCodec{}
}

// Compress encodes data as a flat sequence of 2-byte run records.
//
// Parameters:
//   - data: Bytes to encode
//
// Returns:
//   - []byte: Encoded records (empty for empty input)
//   - error: Always nil
func (c RawCodec) Compress(data []byte) ([]byte, error) {
	runs := Runs(data, MaxRawRun)
	out := make([]byte, 0, len(runs)*rawRecordSize)
	for _, r := range runs {
		out = append(out, byte(r.Count), r.Symbol)
	}

	return out, nil
}

// Decompress expands 2-byte run records back to the original bytes.
//
// Returns errs.ErrFormat if the input has an odd length (a truncated record)
// or if a record carries a zero count.
func (c RawCodec) Decompress(data []byte) ([]byte, error) {
	if len(data)%rawRecordSize != 0 {
		return nil, fmt.Errorf("%w: rle raw artifact length %d is not a multiple of %d",
			errs.ErrFormat, len(data), rawRecordSize)
	}

	buf := pool.GetArtifactBuffer()
	defer pool.PutArtifactBuffer(buf)

	for pos := 0; pos < len(data); pos += rawRecordSize {
		count, value := int(data[pos]), data[pos+1]
		if count == 0 {
			return nil, fmt.Errorf("%w: rle raw record at offset %d has zero count", errs.ErrFormat, pos)
		}

		buf.Grow(count)
		for range count {
			buf.B = append(buf.B, value)
		}
	}

	return buf.Clone(), nil
}
