package tokenizer

import (
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one input of a batch encode. Exactly one
// of IDs and Err is meaningful.
type BatchResult struct {
	IDs []int32
	Err error
}

// EncodeBatch encodes texts across the worker pool in strict mode.
// results[i] always corresponds to texts[i], whatever order workers finish
// in, and one failed item never aborts its siblings.
func (t *Tokenizer) EncodeBatch(texts []string) []BatchResult {
	return t.encodeBatch(texts, false)
}

// EncodeBatchWithSpecial is EncodeBatch in permissive mode.
func (t *Tokenizer) EncodeBatchWithSpecial(texts []string) []BatchResult {
	return t.encodeBatch(texts, true)
}

func (t *Tokenizer) encodeBatch(texts []string, allowSpecial bool) []BatchResult {
	results := make([]BatchResult, len(texts))

	var g errgroup.Group
	g.SetLimit(t.workers)
	for i, s := range texts {
		g.Go(func() error {
			ids, err := t.encode(s, allowSpecial)
			results[i] = BatchResult{IDs: ids, Err: err}
			return nil
		})
	}

	g.Wait()
	return results
}
