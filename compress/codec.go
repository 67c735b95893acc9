package compress

import (
	"fmt"

	"github.com/arloliu/lossless/errs"
	"github.com/arloliu/lossless/format"
	"github.com/arloliu/lossless/huffman"
	"github.com/arloliu/lossless/internal/options"
	"github.com/arloliu/lossless/lz77"
	"github.com/arloliu/lossless/rle"
)

// Compressor turns a payload into an artifact.
type Compressor interface {
	// Compress returns the artifact for data.
	//
	// The returned slice is owned by the caller and data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor turns an artifact back into its payload.
type Decompressor interface {
	// Decompress returns the payload encoded in data.
	//
	// Returns an error wrapping errs.ErrFormat if data is not a valid artifact
	// for this codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var (
	_ Codec = rle.RawCodec{}
	_ Codec = rle.TextCodec{}
	_ Codec = huffman.RawCodec{}
	_ Codec = huffman.TextCodec{}
	_ Codec = lz77.RawCodec{}
	_ Codec = lz77.TextCodec{}
)

// Settings carries per-codec options for CreateCodec.
type Settings struct {
	Huffman []huffman.Option
	LZ77    []lz77.Option
}

// Setting configures CreateCodec.
type Setting = options.Option[*Settings]

// WithHuffmanOptions passes opts to the Huffman codec.
func WithHuffmanOptions(opts ...huffman.Option) Setting {
	return options.NoError(func(s *Settings) {
		s.Huffman = append(s.Huffman, opts...)
	})
}

// WithLZ77Options passes opts to the LZ77 codec.
func WithLZ77Options(opts ...lz77.Option) Setting {
	return options.NoError(func(s *Settings) {
		s.LZ77 = append(s.LZ77, opts...)
	})
}

// CreateCodec is a factory function that creates a Codec for a codec type and
// variant.
//
// Parameters:
//   - codecType: Codec to build
//   - variant: Text or raw; ignored by the external codecs
//   - settings: Options forwarded to the Huffman and LZ77 codecs
//
// Returns:
//   - Codec: The configured codec
//   - error: errs.ErrUnsupportedCodec or errs.ErrUnsupportedFileType for an
//     unknown selector, or the codec's own option error
func CreateCodec(codecType format.CodecType, variant format.Variant, settings ...Setting) (Codec, error) {
	var s Settings
	if err := options.Apply(&s, settings...); err != nil {
		return nil, err
	}

	if codecType.IsBuiltin() && variant != format.VariantText && variant != format.VariantRaw {
		return nil, fmt.Errorf("%w: variant %s", errs.ErrUnsupportedFileType, variant)
	}
	text := variant == format.VariantText

	switch codecType {
	case format.CodecNone:
		return NewNoOpCodec(), nil
	case format.CodecRLE:
		if text {
			return rle.NewTextCodec(), nil
		}
		return rle.NewRawCodec(), nil
	case format.CodecHuffman:
		if text {
			return huffman.NewTextCodec(s.Huffman...)
		}
		return huffman.NewRawCodec(s.Huffman...)
	case format.CodecLZ77:
		if text {
			return lz77.NewTextCodec(s.LZ77...)
		}
		return lz77.NewRawCodec(s.LZ77...)
	case format.CodecZstd:
		return NewZstdCodec(), nil
	case format.CodecS2:
		return NewS2Codec(), nil
	case format.CodecLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, codecType)
	}
}

type codecKey struct {
	codec   format.CodecType
	variant format.Variant
}

var builtinCodecs = func() map[codecKey]Codec {
	m := make(map[codecKey]Codec)
	for _, ct := range format.AllCodecs() {
		for _, v := range []format.Variant{format.VariantText, format.VariantRaw} {
			codec, err := CreateCodec(ct, v)
			if err != nil {
				panic(fmt.Sprintf("failed to create default %s/%s codec: %v", ct, v, err))
			}
			m[codecKey{ct, v}] = codec
		}
	}

	return m
}()

// GetCodec retrieves a shared default Codec for a codec type and variant.
// External codecs accept any variant.
func GetCodec(codecType format.CodecType, variant format.Variant) (Codec, error) {
	if !codecType.IsBuiltin() {
		variant = format.VariantRaw
	}
	if codec, ok := builtinCodecs[codecKey{codecType, variant}]; ok {
		return codec, nil
	}

	return CreateCodec(codecType, variant)
}
