package tokenizer

import (
	"errors"
	"fmt"
	"iter"

	"github.com/dlclark/regexp2"
)

// ErrPatternCompile is returned by New when the pre-tokenization pattern
// does not compile.
var ErrPatternCompile = errors.New("pre-tokenization pattern")

// pretokenizer splits text into the pieces the merge engine encodes
// independently. The pattern is compiled once at construction; the stock
// patterns need regexp2 for the trailing-whitespace lookahead.
type pretokenizer struct {
	re *regexp2.Regexp
}

func newPretokenizer(pattern string) (*pretokenizer, error) {
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternCompile, err)
	}

	return &pretokenizer{re: re}, nil
}

// split yields the non-overlapping pieces of s in order. Bytes between
// pattern matches are yielded as their own pieces so the concatenation of
// all pieces is exactly s.
func (p *pretokenizer) split(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		runes := []rune(s)
		var offset int
		for m, _ := p.re.FindRunesMatch(runes); m != nil; m, _ = p.re.FindNextMatch(m) {
			if m.Index > offset {
				if !yield(string(runes[offset:m.Index])) {
					return
				}
			}

			if !yield(m.String()) {
				return
			}

			offset = m.Index + m.Length
		}

		if offset < len(runes) {
			yield(string(runes[offset:]))
		}
	}
}
