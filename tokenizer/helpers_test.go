package tokenizer

import (
	"testing"
)

// byteValues returns the 256 single-byte token values, so tests can build
// byte-complete vocabularies with ids 0..255 mapping directly to bytes.
func byteValues() []string {
	values := make([]string, 256)
	for i := range values {
		values[i] = string([]byte{byte(i)})
	}

	return values
}

// testVocabulary builds a byte-complete vocabulary with extra merged
// values appended from id 256 upward.
func testVocabulary(tb testing.TB, extra []string, merges []Merge) *Vocabulary {
	tb.Helper()

	vocab, err := NewVocabulary(append(byteValues(), extra...), merges)
	if err != nil {
		tb.Fatalf("NewVocabulary: %v", err)
	}

	return vocab
}

func testTokenizer(tb testing.TB, vocab *Vocabulary, opts ...Option) *Tokenizer {
	tb.Helper()

	t, err := New(vocab, CL100KBasePattern, opts...)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}

	return t
}
