package rle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/lossless/errs"
)

// RunTerminator ends every text run record.
const RunTerminator = ';'

// TextCodec run-length encodes UTF-8 text as <symbol><count>; records.
//
// TextCodec is stateless and safe for concurrent use.
type TextCodec struct{}

// NewTextCodec creates a text RLE codec.
func NewTextCodec() TextCodec {
	return TextCodec{}
}

// Compress encodes UTF-8 text.
//
// Returns errs.ErrFormat if data is not valid UTF-8.
func (c TextCodec) Compress(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: rle text input is not valid UTF-8", errs.ErrFormat)
	}

	var sb strings.Builder
	sb.Grow(len(data))
	for _, r := range Runs([]rune(string(data)), 0) {
		sb.WriteRune(r.Symbol)
		sb.WriteString(strconv.Itoa(r.Count))
		sb.WriteByte(RunTerminator)
	}

	return []byte(sb.String()), nil
}

// Decompress expands <symbol><count>; records back to text.
//
// Returns errs.ErrFormat for invalid UTF-8, a missing terminator, an empty,
// non-decimal, zero or zero-prefixed count, or a count that overflows int.
func (c TextCodec) Decompress(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: rle text artifact is not valid UTF-8", errs.ErrFormat)
	}

	var sb strings.Builder
	pos := 0
	for pos < len(data) {
		symbol, size := utf8.DecodeRune(data[pos:])
		pos += size

		end := pos
		for end < len(data) && data[end] != RunTerminator {
			end++
		}
		if end == len(data) {
			return nil, fmt.Errorf("%w: rle text record at offset %d has no terminator", errs.ErrFormat, pos-size)
		}

		count, err := parseCount(data[pos:end])
		if err != nil {
			return nil, fmt.Errorf("%w: rle text record at offset %d: %w", errs.ErrFormat, pos-size, err)
		}

		for range count {
			sb.WriteRune(symbol)
		}
		pos = end + 1
	}

	return []byte(sb.String()), nil
}

func parseCount(digits []byte) (int, error) {
	if len(digits) == 0 {
		return 0, errors.New("missing count")
	}
	if digits[0] == '0' {
		return 0, fmt.Errorf("count %q must be positive without leading zeros", digits)
	}
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("count %q is not decimal", digits)
		}
	}

	count, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", digits, err)
	}

	return count, nil
}
