package lz77

import (
	"fmt"

	"github.com/arloliu/lossless/endian"
	"github.com/arloliu/lossless/errs"
)

const (
	// RawRecordSize is the size of one packed raw triple.
	RawRecordSize = 5
	// MaxRawField is the largest offset or length a raw record can hold.
	MaxRawField = 0xFFFF
)

// RawCodec applies LZ77 to opaque bytes.
//
// RawCodec is immutable and safe for concurrent use.
type RawCodec struct {
	cfg Config
}

// NewRawCodec creates a raw LZ77 codec.
//
// Parameters:
//   - opts: Optional settings, see WithWindowSize and WithLookaheadSize
//
// Returns:
//   - RawCodec: The configured codec
//   - error: errs.ErrInvalidOption for a non-positive size, errs.ErrRange when
//     a size does not fit the 16-bit record fields
func NewRawCodec(opts ...Option) (RawCodec, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return RawCodec{}, err
	}
	if cfg.WindowSize > MaxRawField {
		return RawCodec{}, fmt.Errorf("%w: window size %d exceeds %d", errs.ErrRange, cfg.WindowSize, MaxRawField)
	}
	if cfg.LookaheadSize > MaxRawField {
		return RawCodec{}, fmt.Errorf("%w: lookahead size %d exceeds %d", errs.ErrRange, cfg.LookaheadSize, MaxRawField)
	}

	return RawCodec{cfg: cfg}, nil
}

// Config returns the codec settings.
func (c RawCodec) Config() Config {
	return c.cfg
}

// Compress factorizes data and packs the triples as 5-byte records.
func (c RawCodec) Compress(data []byte) ([]byte, error) {
	triples := FindTriples(data, c.cfg.WindowSize, c.cfg.LookaheadSize, true)

	return EncodeRawTriples(triples)
}

// Decompress unpacks 5-byte records and expands them.
//
// Returns errs.ErrFormat if the length is not a multiple of RawRecordSize or
// a record references data that has not been produced.
func (c RawCodec) Decompress(data []byte) ([]byte, error) {
	triples, err := DecodeRawTriples(data)
	if err != nil {
		return nil, err
	}

	return Expand(triples, len(data))
}

// EncodeRawTriples packs triples as [offset][length][literal] records.
//
// Returns errs.ErrRange if an offset or length does not fit 16 bits, and
// errs.ErrFormat if a triple carries no literal.
func EncodeRawTriples(triples []Triple[byte]) ([]byte, error) {
	engine := endian.GetArtifactEngine()
	out := make([]byte, 0, len(triples)*RawRecordSize)

	var err error
	for idx, t := range triples {
		if !t.HasLiteral {
			return nil, fmt.Errorf("%w: raw triple %d has no literal", errs.ErrFormat, idx)
		}
		if out, err = endian.AppendUint16(engine, out, t.Offset); err != nil {
			return nil, fmt.Errorf("raw triple %d offset: %w", idx, err)
		}
		if out, err = endian.AppendUint16(engine, out, t.Length); err != nil {
			return nil, fmt.Errorf("raw triple %d length: %w", idx, err)
		}
		out = append(out, t.Literal)
	}

	return out, nil
}

// DecodeRawTriples splits data into 5-byte records.
//
// Returns errs.ErrFormat if len(data) is not a multiple of RawRecordSize.
func DecodeRawTriples(data []byte) ([]Triple[byte], error) {
	if len(data)%RawRecordSize != 0 {
		return nil, fmt.Errorf("%w: raw lz77 length %d is not a multiple of %d", errs.ErrFormat, len(data), RawRecordSize)
	}

	engine := endian.GetArtifactEngine()
	triples := make([]Triple[byte], 0, len(data)/RawRecordSize)
	for pos := 0; pos < len(data); pos += RawRecordSize {
		triples = append(triples, Triple[byte]{
			Offset:     int(engine.Uint16(data[pos:])),
			Length:     int(engine.Uint16(data[pos+2:])),
			Literal:    data[pos+4],
			HasLiteral: true,
		})
	}

	return triples, nil
}
