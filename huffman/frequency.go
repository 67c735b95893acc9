package huffman

import (
	bitmap "github.com/boljen/go-bitmap"
)

// Symbol is the unit being coded: a byte for the raw variant, a rune for text.
type Symbol interface {
	~uint8 | ~int32
}

// FrequencyTable maps each distinct symbol of one input to its occurrence
// count and remembers the order in which symbols first appeared.
type FrequencyTable[S Symbol] struct {
	symbols []S
	counts  map[S]int
	total   int
}

// CountFrequencies builds a FrequencyTable with a single scan of input.
func CountFrequencies[S Symbol](input []S) *FrequencyTable[S] {
	ft := &FrequencyTable[S]{counts: make(map[S]int)}
	for _, s := range input {
		if _, ok := ft.counts[s]; !ok {
			ft.symbols = append(ft.symbols, s)
		}
		ft.counts[s]++
	}
	ft.total = len(input)

	return ft
}

// CountByteFrequencies is CountFrequencies specialised for raw bytes. It
// tracks seen values in a 256-bit bitmap instead of probing a map per byte.
func CountByteFrequencies(input []byte) *FrequencyTable[byte] {
	seen := bitmap.New(256)
	var counts [256]int
	order := make([]byte, 0, 16)

	for _, b := range input {
		if !seen.Get(int(b)) {
			seen.Set(int(b), true)
			order = append(order, b)
		}
		counts[b]++
	}

	ft := &FrequencyTable[byte]{
		symbols: order,
		counts:  make(map[byte]int, len(order)),
		total:   len(input),
	}
	for _, b := range order {
		ft.counts[b] = counts[b]
	}

	return ft
}

// Symbols returns the distinct symbols in first-appearance order.
func (ft *FrequencyTable[S]) Symbols() []S {
	return ft.symbols
}

// Count returns the number of occurrences of s.
func (ft *FrequencyTable[S]) Count(s S) int {
	return ft.counts[s]
}

// Len returns the number of distinct symbols.
func (ft *FrequencyTable[S]) Len() int {
	return len(ft.symbols)
}

// Total returns the number of symbols scanned.
func (ft *FrequencyTable[S]) Total() int {
	return ft.total
}
