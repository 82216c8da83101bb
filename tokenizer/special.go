package tokenizer

import (
	"errors"
	"fmt"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// ErrAmbiguousSpecial is returned by NewSpecialTokens when two entries
// would admit more than one valid match at the same position.
var ErrAmbiguousSpecial = errors.New("ambiguous special token")

// SpecialToken binds a literal marker string to its reserved id. Reserved
// ids live above the base vocabulary range.
type SpecialToken struct {
	Value string
	ID    int32
}

// SpecialTokens recognizes marker strings with a single left-to-right
// automaton scan, independent of how many markers are registered. Overlaps
// resolve leftmost-first, then longest-first at equal offsets.
type SpecialTokens struct {
	tokens []SpecialToken
	ids    map[string]int32
	values map[int32]string
	ac     ahocorasick.AhoCorasick
}

// NewSpecialTokens builds the matcher from the given table. Duplicate
// marker strings or duplicate ids fail with ErrAmbiguousSpecial.
func NewSpecialTokens(tokens []SpecialToken) (*SpecialTokens, error) {
	st := &SpecialTokens{
		tokens: tokens,
		ids:    make(map[string]int32, len(tokens)),
		values: make(map[int32]string, len(tokens)),
	}

	patterns := make([]string, len(tokens))
	for i, token := range tokens {
		if token.Value == "" {
			return nil, fmt.Errorf("%w: empty marker for id %d", ErrAmbiguousSpecial, token.ID)
		}

		if _, ok := st.ids[token.Value]; ok {
			return nil, fmt.Errorf("%w: %q registered twice", ErrAmbiguousSpecial, token.Value)
		}

		if dup, ok := st.values[token.ID]; ok {
			return nil, fmt.Errorf("%w: id %d bound to both %q and %q", ErrAmbiguousSpecial, token.ID, dup, token.Value)
		}

		st.ids[token.Value] = token.ID
		st.values[token.ID] = token.Value
		patterns[i] = token.Value
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		MatchKind: ahocorasick.LeftMostLongestMatch,
		DFA:       true,
	})
	st.ac = builder.Build(patterns)

	return st, nil
}

func (st *SpecialTokens) Len() int {
	return len(st.tokens)
}

// ID returns the reserved id of the exact marker string.
func (st *SpecialTokens) ID(value string) (int32, bool) {
	id, ok := st.ids[value]
	return id, ok
}

// Value returns the marker string of a reserved id.
func (st *SpecialTokens) Value(id int32) (string, bool) {
	value, ok := st.values[id]
	return value, ok
}

// fragment is a string fragment and its corresponding token ids. Ordinary
// fragments have no ids and are handed to the pre-tokenizer.
type fragment struct {
	value string
	ids   []int32
}

// split separates s into special-token and ordinary-text fragments in a
// single automaton pass.
func (st *SpecialTokens) split(s string) []fragment {
	matches := st.ac.FindAll(s)
	if len(matches) == 0 {
		return []fragment{{value: s}}
	}

	fragments := make([]fragment, 0, 2*len(matches)+1)
	var offset int
	for _, m := range matches {
		if m.Start() > offset {
			fragments = append(fragments, fragment{value: s[offset:m.Start()]})
		}

		fragments = append(fragments, fragment{
			value: s[m.Start():m.End()],
			ids:   []int32{st.tokens[m.Pattern()].ID},
		})
		offset = m.End()
	}

	if offset < len(s) {
		fragments = append(fragments, fragment{value: s[offset:]})
	}

	return fragments
}
