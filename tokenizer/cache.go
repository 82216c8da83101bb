package tokenizer

// encodeCached memoizes encodePiece results, keyed by the exact piece
// bytes. The underlying LRU is safe for concurrent batch workers;
// concurrent misses on one key both compute and race to insert, which is
// fine because identical pieces always encode identically. The returned
// slice is shared with the cache and must not be mutated; callers append
// it into their own output.
func (t *Tokenizer) encodeCached(piece string) ([]int32, error) {
	if t.cache == nil {
		return t.encodePiece(piece)
	}

	if ids, ok := t.cache.Get(piece); ok {
		return ids, nil
	}

	ids, err := t.encodePiece(piece)
	if err != nil {
		return nil, err
	}

	t.cache.Add(piece, ids)
	return ids, nil
}
