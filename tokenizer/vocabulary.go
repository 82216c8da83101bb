package tokenizer

import (
	"errors"
	"fmt"
)

// ErrMalformedVocabulary is returned by NewVocabulary when the token table
// or merge table violates a construction invariant.
var ErrMalformedVocabulary = errors.New("malformed vocabulary")

// Merge is a single rewrite rule: the adjacent token pair (Left, Right)
// becomes Merged. Rules are ranked by their position in the table; earlier
// rules merge first.
type Merge struct {
	Left   int32
	Right  int32
	Merged int32
}

type mergeKey struct {
	left, right int32
}

type mergeRule struct {
	merged int32
	rank   int32
}

// Vocabulary is an immutable mapping between token ids and their byte
// strings, plus the ranked merge table. It is read-only after construction
// and safe for unsynchronized concurrent use.
type Vocabulary struct {
	values []string
	ids    map[string]int32
	merges map[mergeKey]mergeRule

	// single-byte token ids, -1 where the byte has no entry
	byteTokens [256]int32
}

// NewVocabulary builds a vocabulary from a dense token table, where values[i]
// is the byte string of token id i, and an ordered merge table. It fails with
// ErrMalformedVocabulary if a byte string is empty or duplicated, a merge
// references an out-of-range id, a merged value is not the concatenation of
// its pair, or a pair is ruled twice.
func NewVocabulary(values []string, merges []Merge) (*Vocabulary, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty token table", ErrMalformedVocabulary)
	}

	v := &Vocabulary{
		values: values,
		ids:    make(map[string]int32, len(values)),
		merges: make(map[mergeKey]mergeRule, len(merges)),
	}

	for i := range v.byteTokens {
		v.byteTokens[i] = -1
	}

	for i, value := range values {
		if value == "" {
			return nil, fmt.Errorf("%w: empty byte string for id %d", ErrMalformedVocabulary, i)
		}

		if dup, ok := v.ids[value]; ok {
			return nil, fmt.Errorf("%w: ids %d and %d share byte string %q", ErrMalformedVocabulary, dup, i, value)
		}

		v.ids[value] = int32(i)
		if len(value) == 1 {
			v.byteTokens[value[0]] = int32(i)
		}
	}

	for rank, m := range merges {
		for _, id := range []int32{m.Left, m.Right, m.Merged} {
			if id < 0 || int(id) >= len(values) {
				return nil, fmt.Errorf("%w: merge %d references unknown id %d", ErrMalformedVocabulary, rank, id)
			}
		}

		if merged := values[m.Left] + values[m.Right]; merged != values[m.Merged] {
			return nil, fmt.Errorf("%w: merge %d produces %q but id %d is %q", ErrMalformedVocabulary, rank, merged, m.Merged, values[m.Merged])
		}

		key := mergeKey{m.Left, m.Right}
		if _, ok := v.merges[key]; ok {
			return nil, fmt.Errorf("%w: duplicate merge rule for pair (%d, %d)", ErrMalformedVocabulary, m.Left, m.Right)
		}

		v.merges[key] = mergeRule{merged: m.Merged, rank: int32(rank)}
	}

	return v, nil
}

func (v *Vocabulary) Len() int {
	return len(v.values)
}

// Encode returns the id of the exact byte string s, or -1 if s is not a
// token.
func (v *Vocabulary) Encode(s string) int32 {
	if id, ok := v.ids[s]; ok {
		return id
	}

	return -1
}

// Decode returns the byte string of id. The id must be in range.
func (v *Vocabulary) Decode(id int32) string {
	return v.values[id]
}

func (v *Vocabulary) byteToken(b byte) int32 {
	return v.byteTokens[b]
}

func (v *Vocabulary) merge(left, right int32) (mergeRule, bool) {
	rule, ok := v.merges[mergeKey{left, right}]
	return rule, ok
}
