package tokenizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodePiece(t *testing.T) {
	// ids 0..255 are bytes, 256 is "aa", 257 is "aaaa"
	vocab := testVocabulary(t, []string{"aa", "aaaa"}, []Merge{
		{Left: 'a', Right: 'a', Merged: 256},
		{Left: 256, Right: 256, Merged: 257},
	})
	tok := testTokenizer(t, vocab)

	cases := []struct {
		name  string
		piece string
		want  []int32
	}{
		{
			name:  "empty",
			piece: "",
			want:  nil,
		},
		{
			name:  "single byte",
			piece: "a",
			want:  []int32{'a'},
		},
		{
			name:  "whole piece in vocabulary",
			piece: "aaaa",
			want:  []int32{257},
		},
		{
			name:  "no applicable merge",
			piece: "ac",
			want:  []int32{'a', 'c'},
		},
		{
			name:  "ranked merge chain",
			piece: "aaaaaa",
			want:  []int32{257, 256},
		},
		{
			name:  "leftmost wins equal ranks",
			piece: "aaa",
			want:  []int32{256, 'a'},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.encodePiece(tt.piece)
			if err != nil {
				t.Fatalf("encodePiece(%q): %v", tt.piece, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("encodePiece(%q) mismatch (-want +got):\n%s", tt.piece, diff)
			}
		})
	}
}

func TestEncodePieceMergeOrder(t *testing.T) {
	// "bc" outranks "ab", so "abcabc" must resolve b+c before a+b ever
	// applies, then a+bc
	vocab := testVocabulary(t, []string{"ab", "bc", "abc"}, []Merge{
		{Left: 'b', Right: 'c', Merged: 257},
		{Left: 'a', Right: 'b', Merged: 256},
		{Left: 'a', Right: 257, Merged: 258},
	})
	tok := testTokenizer(t, vocab)

	got, err := tok.encodePiece("abcabc")
	if err != nil {
		t.Fatalf("encodePiece: %v", err)
	}

	if diff := cmp.Diff([]int32{258, 258}, got); diff != "" {
		t.Errorf("encodePiece mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodePieceUnencodableByte(t *testing.T) {
	// deliberately not byte-complete
	vocab, err := NewVocabulary([]string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}
	tok := testTokenizer(t, vocab)

	for _, piece := range []string{"c", "ca", "ac"} {
		if _, err := tok.encodePiece(piece); !errors.Is(err, ErrUnencodableByte) {
			t.Errorf("encodePiece(%q): have %v, want ErrUnencodableByte", piece, err)
		}
	}

	if got, err := tok.encodePiece("ab"); err != nil || len(got) != 1 {
		t.Errorf("encodePiece(\"ab\") = %v, %v; want single merged-free token", got, err)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	vocab := testVocabulary(t, []string{"he", "ll", "hell", "hello"}, []Merge{
		{Left: 'h', Right: 'e', Merged: 256},
		{Left: 'l', Right: 'l', Merged: 257},
		{Left: 256, Right: 257, Merged: 258},
		{Left: 258, Right: 'o', Merged: 259},
	})
	tok := testTokenizer(t, vocab)

	cold, err := tok.Encode("hello hello hello")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	warm, err := tok.Encode("hello hello hello")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if diff := cmp.Diff(cold, warm); diff != "" {
		t.Errorf("cold vs warm mismatch (-cold +warm):\n%s", diff)
	}
}

// BenchmarkEncodePathological exercises a long unbroken repeat with a deep
// merge chain, the shape that makes flat-array rescan implementations
// quadratic.
func BenchmarkEncodePathological(b *testing.B) {
	// id 255+k holds 2^k repeated a's
	extra := []string{strings.Repeat("a", 2)}
	merges := []Merge{{Left: 'a', Right: 'a', Merged: 256}}
	for k := 2; k <= 12; k++ {
		extra = append(extra, strings.Repeat("a", 1<<k))
		merges = append(merges, Merge{
			Left:   int32(255 + k - 1),
			Right:  int32(255 + k - 1),
			Merged: int32(255 + k),
		})
	}

	vocab := testVocabulary(b, extra, merges)
	tok := testTokenizer(b, vocab, WithCacheSize(0))
	piece := strings.Repeat("a", 1<<13)

	b.ResetTimer()
	for range b.N {
		if _, err := tok.encodePiece(piece); err != nil {
			b.Fatal(err)
		}
	}
}
