// Package lossless compresses and decompresses payloads with run-length,
// Huffman and LZ77 coding, plus pass-through and external Zstd, S2 and LZ4
// codecs for comparison.
//
// Every codec has a text variant, which treats the payload as UTF-8 and codes
// one rune per symbol, and a raw variant, which codes opaque bytes.
//
// # Basic Usage
//
// Compressing a payload with an explicit codec and variant:
//
//	import "github.com/arloliu/lossless"
//
//	artifact, err := lossless.Compress(format.CodecHuffman, format.VariantText, []byte("hello"))
//	if err != nil {
//	    return err
//	}
//	original, err := lossless.Decompress(format.CodecHuffman, format.VariantText, artifact)
//
// Compressing a file, with the variant chosen from its extension:
//
//	result, err := lossless.CompressFile("report.csv", data, "lz77")
//	fmt.Println(result.OutputName, result.Stats.Ratio(), result.Checksum)
//
// # Package Structure
//
// This package wraps the compress package for the common cases. The codecs
// themselves live in the rle, huffman and lz77 packages; the file store, the
// HTTP service and the benchmark report live in store, server and report.
package lossless

import (
	"fmt"
	"path/filepath"

	"github.com/arloliu/lossless/compress"
	"github.com/arloliu/lossless/format"
	"github.com/arloliu/lossless/internal/hash"
)

const (
	// CompressedPrefix is prepended to the name of a compressed file.
	CompressedPrefix = "compressed-"
	// DecompressedPrefix is prepended to the name of a decompressed file.
	DecompressedPrefix = "decompressed-"
)

// FileResult is the outcome of CompressFile or DecompressFile.
type FileResult struct {
	// Data is the produced artifact or payload.
	Data []byte
	// Variant is the variant picked from the file name.
	Variant format.Variant
	// Stats holds sizes and timing of the codec run.
	Stats compress.Stats
	// Checksum is the xxHash64 of Data as 16 hex digits.
	Checksum string
	// OutputName is the suggested file name for Data.
	OutputName string
}

// Compress compresses data with the selected codec.
//
// Parameters:
//   - codec: Codec type
//   - variant: Text or raw
//   - data: Payload
//   - settings: Optional codec settings (see compress.WithHuffmanOptions, compress.WithLZ77Options)
//
// Returns:
//   - []byte: The artifact
//   - error: Selector, option or codec error
func Compress(codec format.CodecType, variant format.Variant, data []byte, settings ...compress.Setting) ([]byte, error) {
	out, _, err := compress.CompressWithStats(codec, variant, data, settings...)
	return out, err
}

// Decompress reverses Compress. The codec, variant and settings must match
// the ones used to compress.
func Decompress(codec format.CodecType, variant format.Variant, data []byte, settings ...compress.Setting) ([]byte, error) {
	out, _, err := compress.DecompressWithStats(codec, variant, data, settings...)
	return out, err
}

// CompressFile compresses the contents of a file named filename with the codec
// called codecName (for example "rle", "huffman" or "lz77").
//
// The variant comes from the file extension, see format.ClassifyFile.
// The output name is CompressedPrefix followed by the base name of filename.
func CompressFile(filename string, data []byte, codecName string, settings ...compress.Setting) (*FileResult, error) {
	codec, variant, err := selectFileCodec(filename, codecName)
	if err != nil {
		return nil, err
	}

	out, stats, err := compress.CompressWithStats(codec, variant, data, settings...)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		Data:       out,
		Variant:    variant,
		Stats:      stats,
		Checksum:   hash.ChecksumHex(out),
		OutputName: CompressedPrefix + filepath.Base(filename),
	}, nil
}

// DecompressFile decompresses the artifact stored in a file named filename.
//
// The output name is DecompressedPrefix followed by the base name of filename.
func DecompressFile(filename string, data []byte, codecName string, settings ...compress.Setting) (*FileResult, error) {
	codec, variant, err := selectFileCodec(filename, codecName)
	if err != nil {
		return nil, err
	}

	out, stats, err := compress.DecompressWithStats(codec, variant, data, settings...)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		Data:       out,
		Variant:    variant,
		Stats:      stats,
		Checksum:   hash.ChecksumHex(out),
		OutputName: DecompressedPrefix + filepath.Base(filename),
	}, nil
}

// Checksum returns the xxHash64 of data as 16 hex digits.
func Checksum(data []byte) string {
	return hash.ChecksumHex(data)
}

func selectFileCodec(filename, codecName string) (format.CodecType, format.Variant, error) {
	codec, err := format.ParseCodecType(codecName)
	if err != nil {
		return 0, 0, err
	}

	variant, err := format.ClassifyFile(filename)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}

	return codec, variant, nil
}
