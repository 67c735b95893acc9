package huffman

import (
	"fmt"
	"strings"

	"github.com/arloliu/lossless/errs"
)

// SingleSymbolCode is the codeword reserved for the lone symbol of a
// one-symbol alphabet.
const SingleSymbolCode = "0"

// CodeTable maps each symbol to its codeword, a non-empty string of '0' and '1'.
type CodeTable[S Symbol] map[S]string

// BuildCodeTable derives the code table of a tree by walking from the root,
// appending '0' on each left descent and '1' on each right descent.
//
// A single-leaf tree yields SingleSymbolCode for its symbol; a nil tree yields
// an empty table.
func BuildCodeTable[S Symbol](root *Node[S]) CodeTable[S] {
	codes := make(CodeTable[S])
	if root == nil {
		return codes
	}
	if root.IsLeaf() {
		codes[root.Symbol] = SingleSymbolCode
		return codes
	}

	var walk func(n *Node[S], prefix []byte)
	walk = func(n *Node[S], prefix []byte) {
		if n.IsLeaf() {
			codes[n.Symbol] = string(prefix)
			return
		}
		walk(n.Left, append(prefix, '0'))
		walk(n.Right, append(prefix, '1'))
	}
	walk(root, make([]byte, 0, 32))

	return codes
}

// BitLength returns the number of data bits needed to code every symbol of ft.
func (ct CodeTable[S]) BitLength(ft *FrequencyTable[S]) int {
	total := 0
	for _, s := range ft.Symbols() {
		total += len(ct[s]) * ft.Count(s)
	}

	return total
}

// Validate checks that every code is non-empty, binary and that no code is a
// prefix of another.
//
// Returns errs.ErrFormat describing the first violation found.
func (ct CodeTable[S]) Validate() error {
	_, err := newDecodeTrie(ct, func(S) bool { return true })
	return err
}

// decodeTrie is the reverse lookup from codeword to symbol.
type decodeTrie[S Symbol] struct {
	root *trieNode[S]
}

type trieNode[S Symbol] struct {
	children [2]*trieNode[S]
	leaf     bool
	symbol   S
}

func newDecodeTrie[S Symbol](ct CodeTable[S], validSymbol func(S) bool) (*decodeTrie[S], error) {
	t := &decodeTrie[S]{root: &trieNode[S]{}}

	for s, code := range ct {
		if !validSymbol(s) {
			return nil, fmt.Errorf("%w: symbol %d is not valid", errs.ErrFormat, s)
		}
		if code == "" {
			return nil, fmt.Errorf("%w: symbol %d has an empty codeword", errs.ErrFormat, s)
		}
		if strings.Trim(code, "01") != "" {
			return nil, fmt.Errorf("%w: codeword %q of symbol %d is not binary", errs.ErrFormat, code, s)
		}

		node := t.root
		for i := 0; i < len(code); i++ {
			if node.leaf {
				return nil, fmt.Errorf("%w: code table is not prefix-free at %q", errs.ErrFormat, code)
			}
			bit := code[i] - '0'
			if node.children[bit] == nil {
				node.children[bit] = &trieNode[S]{}
			}
			node = node.children[bit]
		}
		if node.leaf || node.children[0] != nil || node.children[1] != nil {
			return nil, fmt.Errorf("%w: code table is not prefix-free at %q", errs.ErrFormat, code)
		}
		node.leaf = true
		node.symbol = s
	}

	return t, nil
}

// decode greedily consumes bits, emitting a symbol each time the running
// prefix matches a codeword.
func (t *decodeTrie[S]) decode(bits string, sizeHint int) ([]S, error) {
	out := make([]S, 0, sizeHint)
	node := t.root
	for i := 0; i < len(bits); i++ {
		node = node.children[bits[i]-'0']
		if node == nil {
			return nil, fmt.Errorf("%w: bit %d does not continue any codeword", errs.ErrFormat, i)
		}
		if node.leaf {
			out = append(out, node.symbol)
			node = t.root
		}
	}

	if node != t.root {
		return nil, fmt.Errorf("%w: bitstream ends inside a codeword", errs.ErrFormat)
	}

	return out, nil
}
