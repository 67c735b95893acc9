// Package compress exposes every lossless codec behind one interface.
//
// The built-in codecs (RLE, Huffman and LZ77) each come in a text and a raw
// variant. The external codecs (Zstd, S2 and LZ4) are byte-oriented and ignore
// the variant. All of them implement:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// # Selecting a Codec
//
// CreateCodec builds a codec for a (format.CodecType, format.Variant) pair and
// accepts settings for the parametrised codecs:
//
//	codec, err := compress.CreateCodec(format.CodecLZ77, format.VariantRaw,
//	    compress.WithLZ77Options(lz77.WithWindowSize(4096)),
//	)
//
// GetCodec returns a shared codec with default settings.
//
// # Measuring
//
// CompressWithStats and DecompressWithStats run a codec and report sizes,
// ratio and elapsed time in a Stats value. CompressStream and
// DecompressStream move a whole payload from an io.Reader to an io.Writer.
//
// # Zstd Backends
//
// Zstd uses github.com/klauspost/compress/zstd by default. Building with the
// gozstd tag and cgo enabled switches to github.com/valyala/gozstd.
//
// # Thread Safety
//
// Every codec returned by this package is immutable and safe for concurrent use.
package compress
