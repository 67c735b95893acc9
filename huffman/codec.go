package huffman

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/lossless/errs"
	"github.com/arloliu/lossless/internal/options"
)

// Config holds Huffman codec settings.
type Config struct {
	// StrictAlphabet rejects input with exactly one distinct symbol instead of
	// coding it with SingleSymbolCode.
	StrictAlphabet bool
}

// Option configures a Huffman codec.
type Option = options.Option[*Config]

// WithStrictAlphabet makes Compress fail with errs.ErrDegenerateInput when
// the input holds exactly one distinct symbol. Default is false.
func WithStrictAlphabet(strict bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.StrictAlphabet = strict
	})
}

func newConfig(opts []Option) (Config, error) {
	var cfg Config
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// RawCodec Huffman-codes opaque bytes.
//
// RawCodec is immutable and safe for concurrent use.
type RawCodec struct {
	cfg Config
}

// NewRawCodec creates a raw-byte Huffman codec.
//
// Parameters:
//   - opts: Optional settings, see WithStrictAlphabet
//
// Returns:
//   - RawCodec: The configured codec
//   - error: Option validation error
func NewRawCodec(opts ...Option) (RawCodec, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return RawCodec{}, err
	}

	return RawCodec{cfg: cfg}, nil
}

// Compress Huffman-codes data.
//
// Returns errs.ErrDegenerateInput in strict mode for one-symbol input.
func (c RawCodec) Compress(data []byte) ([]byte, error) {
	return encodeSymbols(data, CountByteFrequencies(data), &c.cfg)
}

// Decompress decodes a raw Huffman artifact.
//
// Returns errs.ErrFormat for a malformed artifact.
func (c RawCodec) Decompress(data []byte) ([]byte, error) {
	out, err := decodeSymbols(data, func(byte) bool { return true })
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}

	return out, nil
}

// TextCodec Huffman-codes UTF-8 text, one symbol per rune.
//
// TextCodec is immutable and safe for concurrent use.
type TextCodec struct {
	cfg Config
}

// NewTextCodec creates a text Huffman codec.
func NewTextCodec(opts ...Option) (TextCodec, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return TextCodec{}, err
	}

	return TextCodec{cfg: cfg}, nil
}

// Compress Huffman-codes UTF-8 text.
//
// Returns errs.ErrFormat if data is not valid UTF-8, and
// errs.ErrDegenerateInput in strict mode for one-symbol input.
func (c TextCodec) Compress(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: huffman text input is not valid UTF-8", errs.ErrFormat)
	}

	runes := []rune(string(data))

	return encodeSymbols(runes, CountFrequencies(runes), &c.cfg)
}

// Decompress decodes a text Huffman artifact back to UTF-8.
func (c TextCodec) Decompress(data []byte) ([]byte, error) {
	runes, err := decodeSymbols(data, utf8.ValidRune)
	if err != nil {
		return nil, err
	}

	return []byte(string(runes)), nil
}
