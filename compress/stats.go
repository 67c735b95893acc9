package compress

import (
	"fmt"
	"time"

	"github.com/arloliu/lossless/format"
)

// Stats describes one compression or decompression run.
type Stats struct {
	// Codec identifies the codec used.
	Codec format.CodecType
	// Variant is the variant the codec ran in.
	Variant format.Variant
	// OriginalSize is the size of the uncompressed payload.
	OriginalSize int
	// CompressedSize is the size of the artifact.
	CompressedSize int
	// DecompressedSize is the size produced by a decompression run, zero
	// after compression.
	DecompressedSize int
	// Duration is the wall time spent inside the codec.
	Duration time.Duration
}

// Ratio returns CompressedSize / OriginalSize. Values below 1.0 mean the
// artifact is smaller than the payload.
//
// Returns:
//   - float64: Ratio (0.0 if OriginalSize is zero)
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage of OriginalSize.
// Negative values mean the artifact grew.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

// CompressWithStats compresses data with the default codec for the selector
// and measures the run.
func CompressWithStats(codecType format.CodecType, variant format.Variant, data []byte, settings ...Setting) ([]byte, Stats, error) {
	codec, err := resolve(codecType, variant, settings)
	if err != nil {
		return nil, Stats{}, err
	}

	start := time.Now()
	out, err := codec.Compress(data)
	elapsed := time.Since(start)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s %s compression failed: %w", codecType, variant, err)
	}

	return out, Stats{
		Codec:          codecType,
		Variant:        variant,
		OriginalSize:   len(data),
		CompressedSize: len(out),
		Duration:       elapsed,
	}, nil
}

// DecompressWithStats decompresses data with the codec for the selector and
// measures the run. OriginalSize and DecompressedSize both hold the output size.
func DecompressWithStats(codecType format.CodecType, variant format.Variant, data []byte, settings ...Setting) ([]byte, Stats, error) {
	codec, err := resolve(codecType, variant, settings)
	if err != nil {
		return nil, Stats{}, err
	}

	start := time.Now()
	out, err := codec.Decompress(data)
	elapsed := time.Since(start)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s %s decompression failed: %w", codecType, variant, err)
	}

	return out, Stats{
		Codec:            codecType,
		Variant:          variant,
		OriginalSize:     len(out),
		CompressedSize:   len(data),
		DecompressedSize: len(out),
		Duration:         elapsed,
	}, nil
}

func resolve(codecType format.CodecType, variant format.Variant, settings []Setting) (Codec, error) {
	if len(settings) == 0 {
		return GetCodec(codecType, variant)
	}

	return CreateCodec(codecType, variant, settings...)
}
