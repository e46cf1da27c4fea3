package bitfield

// UnsafeStore is the no-synchronization strategy: plain word loads and
// plain read-modify-write stores with no lock, no atomic, no barrier.
//
// Concurrent use is a genuine data race. Two goroutines marking flags
// in the same word can each load the word, OR in their own bit, and
// store back, with one store overwriting the other; the losing flag is
// silently dropped and the sieve reports that composite as prime. This
// is the deliberate experimental condition the strategy exists to
// measure, not a bug. Single-goroutine use is fully correct, which also
// makes UnsafeStore the natural store for the sequential reference run.
type UnsafeStore struct {
	bits
}

// NewUnsafe allocates an UnsafeStore covering indices [0, limit).
func NewUnsafe(limit int64) (*UnsafeStore, error) {
	b, err := newBits(limit)
	if err != nil {
		return nil, err
	}
	return &UnsafeStore{bits: b}, nil
}

// Read reports whether index is marked via a plain word load.
//
//go:nosplit
func (s *UnsafeStore) Read(index int64) bool {
	return s.words[index>>wordShift]&(1<<(uint64(index)&wordMask)) != 0
}

// Mark records index as composite via a plain read-modify-write.
//
//go:nosplit
func (s *UnsafeStore) Mark(index int64) {
	s.words[index>>wordShift] |= 1 << (uint64(index) & wordMask)
}
