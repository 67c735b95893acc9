package lz77

import (
	"fmt"

	"github.com/arloliu/lossless/errs"
)

// Triple is one LZ77 step: copy Length symbols starting Offset symbols back,
// then append Literal.
//
// HasLiteral is false only for the final triple of a text stream whose match
// reaches the end of the input.
type Triple[S comparable] struct {
	Offset     int
	Length     int
	Literal    S
	HasLiteral bool
}

// FindTriples factorizes data into triples.
//
// With reserveLiteral set the match length is clipped so that a literal
// always follows it, and every returned triple has HasLiteral set.
func FindTriples[S comparable](data []S, window, lookahead int, reserveLiteral bool) []Triple[S] {
	n := len(data)
	triples := make([]Triple[S], 0, n/4+1)

	for i := 0; i < n; {
		maxLen := min(lookahead, n-i)
		if reserveLiteral {
			maxLen = min(maxLen, n-i-1)
		}

		offset, length := longestMatch(data, i, max(0, i-window), maxLen)

		t := Triple[S]{Offset: offset, Length: length}
		if i+length < n {
			t.Literal = data[i+length]
			t.HasLiteral = true
		}
		triples = append(triples, t)

		i += length + 1
	}

	return triples
}

// longestMatch scans candidate starts in [start, i) from left to right and
// returns the offset and length of the first longest match of data[i:]. The
// match is limited to maxLen symbols and never extends to or past i.
func longestMatch[S comparable](data []S, i, start, maxLen int) (int, int) {
	bestOff, bestLen := 0, 0

	for j := start; j < i; j++ {
		limit := min(maxLen, i-j)
		if limit <= bestLen {
			// Later candidates are closer to i and can only be shorter.
			break
		}

		k := 0
		for k < limit && data[j+k] == data[i+k] {
			k++
		}
		if k > bestLen {
			bestOff, bestLen = i-j, k
		}
	}

	return bestOff, bestLen
}

// Expand rebuilds the symbol sequence described by triples.
//
// Returns errs.ErrFormat for a triple with a negative field, a zero offset
// with a non-zero length, or an offset beyond the symbols produced so far.
func Expand[S comparable](triples []Triple[S], sizeHint int) ([]S, error) {
	out := make([]S, 0, sizeHint)

	for idx, t := range triples {
		if t.Offset < 0 || t.Length < 0 {
			return nil, fmt.Errorf("%w: triple %d has negative offset or length", errs.ErrFormat, idx)
		}
		if t.Length > 0 {
			if t.Offset == 0 {
				return nil, fmt.Errorf("%w: triple %d copies %d symbols from offset 0", errs.ErrFormat, idx, t.Length)
			}
			if t.Offset > len(out) {
				return nil, fmt.Errorf("%w: triple %d offset %d exceeds %d decoded symbols",
					errs.ErrFormat, idx, t.Offset, len(out))
			}

			src := len(out) - t.Offset
			for k := range t.Length {
				out = append(out, out[src+k])
			}
		}

		if t.HasLiteral {
			out = append(out, t.Literal)
		}
	}

	return out, nil
}
