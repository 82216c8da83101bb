package tokenizer

import "sync"

// Stock pre-tokenization patterns. Both need regexp2: the trailing
// whitespace alternative uses a negative lookahead.
const (
	CL100KBasePattern = `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`
	O200KBasePattern  = `[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]*[\p{Ll}\p{Lm}\p{Lo}\p{M}]+(?i:'s|'t|'re|'ve|'m|'ll|'d)?|[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]+[\p{Ll}\p{Lm}\p{Lo}\p{M}]*(?i:'s|'t|'re|'ve|'m|'ll|'d)?|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n/]*|\s*[\r\n]+|\s+(?!\S)|\s+`
)

// Agent marker ids start directly above each configuration's standard
// special tokens (cl100k ends at <|endofprompt|>=100276, o200k at
// <|endofprompt|>=200018).
const (
	cl100kAgentBase = 100277
	o200kAgentBase  = 200019
)

var (
	cl100kAgent, cl100kAgentTable = newAgentTokens(cl100kAgentBase)
	o200kAgent, o200kAgentTable   = newAgentTokens(o200kAgentBase)
)

// CL100KAgentTokens and O200KAgentTokens resolve category-qualified agent
// marker names to their fixed ids.
var (
	CL100KAgentTokens = cl100kAgent
	O200KAgentTokens  = o200kAgent
)

var cl100kStandard = []SpecialToken{
	{Value: "<|endoftext|>", ID: 100257},
	{Value: "<|fim_prefix|>", ID: 100258},
	{Value: "<|fim_middle|>", ID: 100259},
	{Value: "<|fim_suffix|>", ID: 100260},
	{Value: "<|endofprompt|>", ID: 100276},
}

var o200kStandard = []SpecialToken{
	{Value: "<|endoftext|>", ID: 199999},
	{Value: "<|endofprompt|>", ID: 200018},
}

// CL100KSpecialTokens returns the cl100k-style marker table: the standard
// tiktoken special tokens plus the agent categories. The table is static
// and known-good, so the automaton is built once.
var CL100KSpecialTokens = sync.OnceValue(func() *SpecialTokens {
	st, err := NewSpecialTokens(append(cl100kStandard, cl100kAgentTable...))
	if err != nil {
		panic(err)
	}

	return st
})

// O200KSpecialTokens returns the o200k-style marker table.
var O200KSpecialTokens = sync.OnceValue(func() *SpecialTokens {
	st, err := NewSpecialTokens(append(o200kStandard, o200kAgentTable...))
	if err != nil {
		panic(err)
	}

	return st
})

// NewCL100KBase builds a tokenizer over vocab with the cl100k-style
// pattern and marker table. The vocabulary itself comes from the caller's
// model loader.
func NewCL100KBase(vocab *Vocabulary, opts ...Option) (*Tokenizer, error) {
	return New(vocab, CL100KBasePattern, append([]Option{WithSpecialTokens(CL100KSpecialTokens())}, opts...)...)
}

// NewO200KBase builds a tokenizer over vocab with the o200k-style pattern
// and marker table.
func NewO200KBase(vocab *Vocabulary, opts ...Option) (*Tokenizer, error) {
	return New(vocab, O200KBasePattern, append([]Option{WithSpecialTokens(O200KSpecialTokens())}, opts...)...)
}
