// Package rle implements run-length encoding over raw bytes and over text.
//
// A run is a maximal sequence of identical consecutive symbols. Both variants
// group the input into runs with Runs and differ only in how a run is framed.
//
// # Raw Variant
//
// Every run becomes a 2-byte record [count][byte]. Counts are capped at 255, so
// a run of 300 identical bytes is written as two records (255 and 45):
//
//	input:  41 41 41 42
//	output: 03 41 01 42
//
// The decoder reads records until the input is exhausted.
//
// # Text Variant
//
// Every run becomes the symbol (one UTF-8 encoded rune), its decimal count and
// the terminator ';'. Counts are unbounded and carry no leading zeros:
//
//	input:  "aaab"         output: "a3;b1;"
//	input:  "1111"         output: "14;"
//	input:  ";;"           output: ";2;"
//
// The symbol is always read as exactly one rune before the count, so digits
// and ';' remain valid symbols.
package rle
