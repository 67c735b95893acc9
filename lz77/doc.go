// Package lz77 implements sliding-window LZ77 compression over raw bytes and
// over text.
//
// The encoder walks the input with a cursor i. At each step it searches the
// window [max(0, i-WindowSize), i) for the longest prefix of the lookahead
// [i, i+LookaheadSize) and emits a Triple (offset, length, literal), where
// offset is the distance back from i to the match start and literal is the
// symbol right after the match. The cursor then advances length+1 symbols.
//
// Candidates are scanned from the oldest position to the newest and only a
// strictly longer match replaces the current best, so among equally long
// matches the one furthest back wins. A match never reads past i.
//
// The decoder copies length symbols from offset positions back, one symbol at
// a time, then appends the literal. Copying one symbol at a time makes
// overlapping runs (offset < length) expand correctly.
//
// # Text Variant
//
// Symbols are runes. The triples are written as a JSON array of
// [offset, length, "literal"] arrays. When a match reaches the end of the
// input the final literal is the empty string.
//
// # Raw Variant
//
// Symbols are bytes. Each triple is a 5-byte record:
//
//	+-----------------+-----------------+---------+
//	| offset (2, BE)  | length (2, BE)  | literal |
//	+-----------------+-----------------+---------+
//
// The lookahead is clipped so a real literal byte always follows the match,
// hence the raw format needs no end sentinel. WindowSize and LookaheadSize
// must fit the 16-bit fields.
package lz77
