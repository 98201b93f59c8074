package keyspace

// liveSequence returns the live (non-expired) sequence and expiry stored
// at key, or a fresh empty sequence with no expiry if key is absent,
// expired, or currently holds a scalar. List commands on a scalar key
// replace it with a fresh list rather than erroring (see package doc).
func (s *Store) liveSequence(key string) ([]string, *int64) {
	entry, ok := s.getLive(key)
	if !ok || entry.Value.Kind != KindSequence {
		return nil, nil
	}
	return entry.Value.Sequence, entry.Expiry
}

// LPush pushes values onto the head of the list at key, creating it (or
// replacing a non-list value) if necessary. Values are pushed one at a
// time in the given order, so the first argument ends up closest to the
// head: LPush(k, []string{"a","b","c"}) yields ["c","b","a", ...old...].
// It returns the resulting length.
func (s *Store) LPush(key string, values []string) int {
	seq, expiry := s.liveSequence(key)
	for _, v := range values {
		seq = append([]string{v}, seq...)
	}
	s.cache.Put(key, Entry{Value: NewSequence(seq), Expiry: expiry})
	return len(seq)
}

// RPush pushes values onto the tail of the list at key, creating it (or
// replacing a non-list value) if necessary, in the given order. It returns
// the resulting length.
func (s *Store) RPush(key string, values []string) int {
	seq, expiry := s.liveSequence(key)
	seq = append(seq, values...)
	s.cache.Put(key, Entry{Value: NewSequence(seq), Expiry: expiry})
	return len(seq)
}

// LPop removes and returns the head element of the list at key. It
// returns ("", false) if key is absent, expired, non-list, or empty.
func (s *Store) LPop(key string) (string, bool) {
	entry, ok := s.getLive(key)
	if !ok || entry.Value.Kind != KindSequence || len(entry.Value.Sequence) == 0 {
		return "", false
	}
	seq := entry.Value.Sequence
	head := seq[0]
	s.cache.Put(key, Entry{Value: NewSequence(seq[1:]), Expiry: entry.Expiry})
	return head, true
}

// RPop removes and returns the tail element of the list at key. It
// returns ("", false) if key is absent, expired, non-list, or empty.
func (s *Store) RPop(key string) (string, bool) {
	entry, ok := s.getLive(key)
	if !ok || entry.Value.Kind != KindSequence || len(entry.Value.Sequence) == 0 {
		return "", false
	}
	seq := entry.Value.Sequence
	last := len(seq) - 1
	tail := seq[last]
	s.cache.Put(key, Entry{Value: NewSequence(seq[:last]), Expiry: entry.Expiry})
	return tail, true
}

// LRange returns the inclusive slice [start, stop] of the list at key,
// after normalizing negative indices relative to the list length and
// clamping to [0, len-1]. It returns (nil, false) if key is absent,
// expired, or non-list; it returns (empty, true) for an empty list or for
// a normalized range where start > stop or start >= len.
func (s *Store) LRange(key string, start, stop int) ([]string, bool) {
	entry, ok := s.getLive(key)
	if !ok || entry.Value.Kind != KindSequence {
		return nil, false
	}

	seq := entry.Value.Sequence
	n := len(seq)
	if n == 0 {
		return []string{}, true
	}
	// A non-negative start at or past the end selects nothing; normalizeIndex
	// would otherwise cap it to the last element.
	if start >= n {
		return []string{}, true
	}

	startIdx := normalizeIndex(start, n)
	stopIdx := normalizeIndex(stop, n)

	if startIdx > stopIdx || startIdx >= n {
		return []string{}, true
	}

	result := make([]string, stopIdx-startIdx+1)
	copy(result, seq[startIdx:stopIdx+1])
	return result, true
}

// normalizeIndex converts a possibly-negative LRANGE bound into an
// in-range index: negative indices count back from the end and are
// floored at 0; non-negative indices are capped at len-1.
func normalizeIndex(idx, n int) int {
	if idx < 0 {
		idx += n
		if idx < 0 {
			idx = 0
		}
		return idx
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// LLen returns the length of the list at key, or 0 if key is absent,
// expired, or non-list.
func (s *Store) LLen(key string) int {
	entry, ok := s.getLive(key)
	if !ok || entry.Value.Kind != KindSequence {
		return 0
	}
	return len(entry.Value.Sequence)
}
