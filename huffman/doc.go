// Package huffman implements Huffman coding over raw bytes and over text.
//
// Compression counts symbol frequencies, builds a Huffman tree by repeatedly
// merging the two lightest nodes, derives a prefix-free code table from the
// tree and packs the concatenated codewords MSB-first into bytes.
//
// # Determinism
//
// Ties between equal weights are broken by a stable key: leaves are ordered by
// the first appearance of their symbol in the input, merged nodes by creation
// order after every leaf. The first node taken becomes the left child ('0'),
// the second the right child ('1'). The same input therefore always produces
// byte-identical artifacts.
//
// # Artifact Layout
//
//	+----------------------+---------------------------+-------------------+
//	| header length (4, BE)| header (JSON)             | packed code bits  |
//	+----------------------+---------------------------+-------------------+
//
// The header is {"padding":N,"codes":{"<symbol>":"<code>",...}} where symbol
// keys are decimal byte values (raw) or Unicode code points (text) and N is
// the number of zero bits padding the final data byte.
//
// # Single-Symbol Input
//
// A tree with one leaf has no edges. The lone symbol is given the reserved
// 1-bit code "0", so the data section holds exactly one bit per occurrence.
// WithStrictAlphabet(true) rejects such input with errs.ErrDegenerateInput.
package huffman
