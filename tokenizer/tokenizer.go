// Package tokenizer implements a byte-level BPE tokenizer engine for LLM
// text: regexp pre-tokenization, ranked pair merging, exact special-token
// matching, an LRU encode cache, order-preserving parallel batch encoding
// and incremental UTF-8 streaming decode.
//
// The engine is handed a ready vocabulary, merge table, pre-tokenization
// pattern and optional special-token table; loading those from disk is the
// caller's concern.
package tokenizer

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/splintr/splintr-go/logutil"
)

// ErrUnknownToken is returned by Decode when an id is outside both the
// vocabulary and the registered special-token range.
var ErrUnknownToken = errors.New("unknown token id")

const defaultCacheSize = 8192

type Tokenizer struct {
	vocab   *Vocabulary
	pretok  *pretokenizer
	special *SpecialTokens
	cache   *lru.Cache[string, []int32]
	workers int
}

type Option func(*options)

type options struct {
	special   *SpecialTokens
	cacheSize int
	workers   int
}

// WithSpecialTokens registers a marker table. Markers are only recognized
// by EncodeWithSpecial; Encode always treats them as ordinary text.
func WithSpecialTokens(st *SpecialTokens) Option {
	return func(o *options) {
		o.special = st
	}
}

// WithCacheSize bounds the piece cache. Zero or negative disables caching.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithWorkers sets the batch encode pool width. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// New builds a tokenizer from a vocabulary and a pre-tokenization pattern.
// Construction errors (bad pattern, later a bad table via NewVocabulary)
// never produce a partially usable instance.
func New(vocab *Vocabulary, pattern string, opts ...Option) (*Tokenizer, error) {
	o := options{cacheSize: defaultCacheSize, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	pretok, err := newPretokenizer(pattern)
	if err != nil {
		return nil, err
	}

	t := &Tokenizer{
		vocab:   vocab,
		pretok:  pretok,
		special: o.special,
		workers: max(o.workers, 1),
	}

	if o.cacheSize > 0 {
		// lru.New only fails on a non-positive size
		t.cache, _ = lru.New[string, []int32](o.cacheSize)
	}

	return t, nil
}

func (t *Tokenizer) Vocabulary() *Vocabulary {
	return t.vocab
}

func (t *Tokenizer) SpecialTokens() *SpecialTokens {
	return t.special
}

// Encode converts text to token ids, treating any special-token marker in
// the text as ordinary text. This is the strict mode for untrusted input.
func (t *Tokenizer) Encode(s string) ([]int32, error) {
	return t.encode(s, false)
}

// EncodeWithSpecial converts text to token ids, recognizing registered
// markers anywhere in the text. This is the permissive mode for trusted,
// agent-formatted input.
func (t *Tokenizer) EncodeWithSpecial(s string) ([]int32, error) {
	return t.encode(s, true)
}

func (t *Tokenizer) encode(s string, allowSpecial bool) ([]int32, error) {
	fragments := []fragment{{value: s}}
	if allowSpecial && t.special != nil {
		fragments = t.special.split(s)
	}

	ids := make([]int32, 0, len(s)/3+1)
	for _, frag := range fragments {
		if len(frag.ids) > 0 {
			ids = append(ids, frag.ids...)
			continue
		}

		for piece := range t.pretok.split(frag.value) {
			seq, err := t.encodeCached(piece)
			if err != nil {
				return nil, fmt.Errorf("encode %q: %w", piece, err)
			}

			ids = append(ids, seq...)
		}
	}

	logutil.Trace("encoded", "string", s, "ids", lazyIDs{ids: ids})
	return ids, nil
}

// Decode maps token ids back to text. It fails with ErrUnknownToken on the
// first out-of-range id and returns no partial result.
func (t *Tokenizer) Decode(ids []int32) (string, error) {
	var sb strings.Builder
	for i, id := range ids {
		value, err := t.decodeToken(id)
		if err != nil {
			return "", fmt.Errorf("decode index %d: %w", i, err)
		}

		sb.WriteString(value)
	}

	logutil.Trace("decoded", "string", sb.String(), "from", lazyIDs{ids: ids})
	return sb.String(), nil
}

func (t *Tokenizer) decodeToken(id int32) (string, error) {
	if id >= 0 && int(id) < t.vocab.Len() {
		return t.vocab.Decode(id), nil
	}

	if t.special != nil {
		if value, ok := t.special.Value(id); ok {
			return value, nil
		}
	}

	return "", fmt.Errorf("%w: %d", ErrUnknownToken, id)
}

type lazyIDs struct {
	ids []int32
}

func (l lazyIDs) LogValue() slog.Value {
	return slog.AnyValue(fmt.Sprint(l.ids))
}
