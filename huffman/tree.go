package huffman

import "container/heap"

// Node is a Huffman tree node. Leaves carry a symbol; internal nodes carry
// only the summed weight of their subtree and always have two children.
type Node[S Symbol] struct {
	Symbol S
	Weight int
	Left   *Node[S]
	Right  *Node[S]

	order int // tie-break key: first appearance for leaves, creation order for merges
}

// IsLeaf reports whether n carries a symbol.
func (n *Node[S]) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

type nodeQueue[S Symbol] []*Node[S]

func (q nodeQueue[S]) Len() int { return len(q) }

func (q nodeQueue[S]) Less(i, j int) bool {
	if q[i].Weight != q[j].Weight {
		return q[i].Weight < q[j].Weight
	}

	return q[i].order < q[j].order
}

func (q nodeQueue[S]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue[S]) Push(x any) { *q = append(*q, x.(*Node[S])) }

func (q *nodeQueue[S]) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return node
}

// BuildTree builds the Huffman tree for ft.
//
// The two lightest nodes are merged until one remains; the first one taken
// becomes the left child. Equal weights keep their relative order (leaves by
// first appearance, merged nodes after all leaves in creation order).
//
// Returns nil for an empty table and a single leaf for a one-symbol table.
func BuildTree[S Symbol](ft *FrequencyTable[S]) *Node[S] {
	if ft.Len() == 0 {
		return nil
	}

	q := make(nodeQueue[S], 0, ft.Len())
	for i, s := range ft.Symbols() {
		q = append(q, &Node[S]{Symbol: s, Weight: ft.Count(s), order: i})
	}
	heap.Init(&q)

	next := ft.Len()
	for q.Len() > 1 {
		left, _ := heap.Pop(&q).(*Node[S])
		right, _ := heap.Pop(&q).(*Node[S])
		heap.Push(&q, &Node[S]{
			Weight: left.Weight + right.Weight,
			Left:   left,
			Right:  right,
			order:  next,
		})
		next++
	}

	return q[0]
}
