package lz77

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/lossless/errs"
)

// TextCodec applies LZ77 to UTF-8 text, one symbol per rune.
//
// TextCodec is immutable and safe for concurrent use.
type TextCodec struct {
	cfg Config
}

// NewTextCodec creates a text LZ77 codec.
//
// Returns errs.ErrInvalidOption for a non-positive window or lookahead size.
func NewTextCodec(opts ...Option) (TextCodec, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return TextCodec{}, err
	}

	return TextCodec{cfg: cfg}, nil
}

// Config returns the codec settings.
func (c TextCodec) Config() Config {
	return c.cfg
}

// Compress factorizes UTF-8 text and writes the triples as JSON.
//
// Returns errs.ErrFormat if data is not valid UTF-8.
func (c TextCodec) Compress(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: lz77 text input is not valid UTF-8", errs.ErrFormat)
	}

	triples := FindTriples([]rune(string(data)), c.cfg.WindowSize, c.cfg.LookaheadSize, false)

	return EncodeTextTriples(triples)
}

// Decompress parses JSON triples and expands them back to UTF-8 text.
func (c TextCodec) Decompress(data []byte) ([]byte, error) {
	triples, err := DecodeTextTriples(data)
	if err != nil {
		return nil, err
	}

	runes, err := Expand(triples, len(triples))
	if err != nil {
		return nil, err
	}

	return []byte(string(runes)), nil
}

// EncodeTextTriples writes triples as [[offset,length,"literal"],...]. A
// triple without a literal is written with the empty string.
func EncodeTextTriples(triples []Triple[rune]) ([]byte, error) {
	records := make([][3]any, 0, len(triples))
	for _, t := range triples {
		literal := ""
		if t.HasLiteral {
			literal = string(t.Literal)
		}
		records = append(records, [3]any{t.Offset, t.Length, literal})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode lz77 triples: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// DecodeTextTriples parses the JSON triple list.
//
// Returns errs.ErrFormat for malformed JSON, a record that is not
// [int, int, string], a literal longer than one rune, or an empty literal
// anywhere but the last record.
func DecodeTextTriples(data []byte) ([]Triple[rune], error) {
	var records [][]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: lz77 text: %w", errs.ErrFormat, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: lz77 text is not a triple list", errs.ErrFormat)
	}

	triples := make([]Triple[rune], 0, len(records))
	for idx, rec := range records {
		t, err := decodeTextRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: lz77 text record %d: %w", errs.ErrFormat, idx, err)
		}
		if !t.HasLiteral && idx != len(records)-1 {
			return nil, fmt.Errorf("%w: lz77 text record %d has an empty literal before the end",
				errs.ErrFormat, idx)
		}
		triples = append(triples, t)
	}

	return triples, nil
}

func decodeTextRecord(rec []json.RawMessage) (Triple[rune], error) {
	var t Triple[rune]
	if len(rec) != 3 {
		return t, fmt.Errorf("expected 3 fields, got %d", len(rec))
	}

	var literal string
	if err := json.Unmarshal(rec[0], &t.Offset); err != nil {
		return t, fmt.Errorf("offset: %w", err)
	}
	if err := json.Unmarshal(rec[1], &t.Length); err != nil {
		return t, fmt.Errorf("length: %w", err)
	}
	if err := json.Unmarshal(rec[2], &literal); err != nil {
		return t, fmt.Errorf("literal: %w", err)
	}

	if literal == "" {
		return t, nil
	}
	r, size := utf8.DecodeRuneInString(literal)
	if size != len(literal) {
		return t, fmt.Errorf("literal %q is not a single rune", literal)
	}
	t.Literal = r
	t.HasLiteral = true

	return t, nil
}
