package tokenizer

import (
	"cmp"
	"errors"
	"fmt"

	heap "github.com/emirpasic/gods/v2/trees/binaryheap"
)

// ErrUnencodableByte is returned when a piece contains a byte with no
// single-byte vocabulary entry. A byte-complete vocabulary never triggers
// this; it indicates a broken token table, not bad input.
var ErrUnencodableByte = errors.New("byte has no vocabulary entry")

// bpeNode is one active symbol in the merge arena. Nodes are addressed by
// index into the arena; prev/next form a doubly-linked chain over the
// symbols still alive. A dead node has id -1.
type bpeNode struct {
	prev, next int
	id         int32
	start, end int
}

// bpePair is a candidate merge of two adjacent symbols. The ids are
// captured at push time so a popped pair can be recognized as stale after
// either side has since merged.
type bpePair struct {
	left, right     int
	leftID, rightID int32
	rank            int32
	merged          int32
}

// encodePiece runs the merge loop for a single piece. Symbols live in an
// index-addressed arena and candidate pairs in a priority heap keyed by
// (rank, position), so each merge splices in O(1) and re-ranks at most the
// two pairs touching the splice. Equal-rank pairs merge leftmost-first.
func (t *Tokenizer) encodePiece(piece string) ([]int32, error) {
	if piece == "" {
		return nil, nil
	}

	if len(piece) == 1 {
		id := t.vocab.byteToken(piece[0])
		if id < 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnencodableByte, piece[0])
		}

		return []int32{id}, nil
	}

	// short circuit if the whole piece is in the vocabulary
	if id := t.vocab.Encode(piece); id >= 0 {
		return []int32{id}, nil
	}

	nodes := make([]bpeNode, len(piece))
	for i := range len(piece) {
		id := t.vocab.byteToken(piece[i])
		if id < 0 {
			return nil, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnencodableByte, piece[i], i)
		}

		nodes[i] = bpeNode{prev: i - 1, next: i + 1, id: id, start: i, end: i + 1}
	}

	pairwise := func(left, right int) *bpePair {
		if left < 0 || right >= len(nodes) {
			return nil
		}

		rule, ok := t.vocab.merge(nodes[left].id, nodes[right].id)
		if !ok {
			return nil
		}

		return &bpePair{
			left:    left,
			right:   right,
			leftID:  nodes[left].id,
			rightID: nodes[right].id,
			rank:    rule.rank,
			merged:  rule.merged,
		}
	}

	pairs := heap.NewWith(func(a, b *bpePair) int {
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}

		return cmp.Compare(a.left, b.left)
	})

	for i := range len(nodes) - 1 {
		if pair := pairwise(i, i+1); pair != nil {
			pairs.Push(pair)
		}
	}

	for !pairs.Empty() {
		pair, _ := pairs.Pop()

		left, right := nodes[pair.left], nodes[pair.right]
		if left.id != pair.leftID || right.id != pair.rightID {
			continue
		}

		if left.next != pair.right || right.prev != pair.left {
			continue
		}

		nodes[pair.left].id = pair.merged
		nodes[pair.left].end = right.end
		nodes[pair.right].id = -1

		nodes[pair.left].next = right.next
		if right.next < len(nodes) {
			nodes[right.next].prev = pair.left
		}

		if pair := pairwise(nodes[pair.left].prev, pair.left); pair != nil {
			pairs.Push(pair)
		}

		if pair := pairwise(pair.left, nodes[pair.left].next); pair != nil {
			pairs.Push(pair)
		}
	}

	// node 0 is always the head; merges only ever splice out the right side
	ids := make([]int32, 0, len(nodes))
	for i := 0; i < len(nodes); i = nodes[i].next {
		ids = append(ids, nodes[i].id)
	}

	return ids, nil
}
