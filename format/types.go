package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/lossless/errs"
)

type (
	CodecType uint8
	Variant   uint8
)

const (
	CodecNone    CodecType = 0x1 // CodecNone passes data through unchanged.
	CodecRLE     CodecType = 0x2 // CodecRLE represents run-length encoding.
	CodecHuffman CodecType = 0x3 // CodecHuffman represents Huffman coding.
	CodecLZ77    CodecType = 0x4 // CodecLZ77 represents sliding-window LZ77.
	CodecZstd    CodecType = 0x5 // CodecZstd represents Zstandard compression.
	CodecS2      CodecType = 0x6 // CodecS2 represents S2 compression.
	CodecLZ4     CodecType = 0x7 // CodecLZ4 represents LZ4 block compression.

	VariantText Variant = 0x1 // VariantText operates on UTF-8 decoded text.
	VariantRaw  Variant = 0x2 // VariantRaw operates on opaque bytes.
)

var codecNames = map[string]CodecType{
	"none":    CodecNone,
	"rle":     CodecRLE,
	"huffman": CodecHuffman,
	"lz77":    CodecLZ77,
	"zstd":    CodecZstd,
	"s2":      CodecS2,
	"lz4":     CodecLZ4,
}

var (
	textExtensions = []string{".txt", ".json", ".csv", ".xml"}
	rawExtensions  = []string{".bin", ".png", ".jpg", ".jpeg", ".bmp", ".gif"}
)

func (c CodecType) String() string {
	switch c {
	case CodecNone:
		return "None"
	case CodecRLE:
		return "RLE"
	case CodecHuffman:
		return "Huffman"
	case CodecLZ77:
		return "LZ77"
	case CodecZstd:
		return "Zstd"
	case CodecS2:
		return "S2"
	case CodecLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Name returns the lower-case selector name accepted by ParseCodecType.
func (c CodecType) Name() string {
	return strings.ToLower(c.String())
}

// IsBuiltin reports whether the codec is implemented by this module rather
// than delegated to an external compression library.
func (c CodecType) IsBuiltin() bool {
	return c == CodecRLE || c == CodecHuffman || c == CodecLZ77
}

func (v Variant) String() string {
	switch v {
	case VariantText:
		return "text"
	case VariantRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseCodecType resolves a case-insensitive codec name such as "huffman" or "LZ77".
func ParseCodecType(name string) (CodecType, error) {
	if c, ok := codecNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCodec, name)
}

// ParseVariant resolves "text" or "raw".
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return VariantText, nil
	case "raw":
		return VariantRaw, nil
	default:
		return 0, fmt.Errorf("%w: variant %q", errs.ErrUnsupportedFileType, name)
	}
}

// AllCodecs lists every codec type in declaration order.
func AllCodecs() []CodecType {
	return []CodecType{CodecNone, CodecRLE, CodecHuffman, CodecLZ77, CodecZstd, CodecS2, CodecLZ4}
}

// ClassifyFile picks the variant for a file from its extension.
//
// Text-like files (.txt, .json, .csv, .xml) use the text variant; images and
// .bin files use the raw variant. Any other extension is rejected with
// errs.ErrUnsupportedFileType.
func ClassifyFile(filename string) (Variant, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range textExtensions {
		if ext == e {
			return VariantText, nil
		}
	}
	for _, e := range rawExtensions {
		if ext == e {
			return VariantRaw, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedFileType, filename)
}
