package bitfield

import "sync/atomic"

// AtomicStore is the lock-free strategy: every access is a single
// atomic word operation, with no lock and no waiting.
//
// Read is one atomic load of the covering word; Mark is one atomic OR
// of the flag's mask into it. Each access is individually atomic (no
// torn reads or writes) but a worker's Read-then-Mark sequence is not
// atomic as a whole: two goroutines can both observe false and both
// Mark. The race is benign because the OR is idempotent, so the store
// itself is never lost. Go has no sub-word atomic store, which is why
// the mark is an OR of the bit rather than a store of a byte; the flag
// it sets is bit-identical either way.
type AtomicStore struct {
	bits
}

// NewAtomic allocates an AtomicStore covering indices [0, limit).
func NewAtomic(limit int64) (*AtomicStore, error) {
	b, err := newBits(limit)
	if err != nil {
		return nil, err
	}
	return &AtomicStore{bits: b}, nil
}

// Read reports whether index is marked via a single atomic word load.
//
//go:nosplit
func (s *AtomicStore) Read(index int64) bool {
	return atomic.LoadUint64(&s.words[index>>wordShift])&(1<<(uint64(index)&wordMask)) != 0
}

// Mark records index as composite via a single atomic OR.
//
//go:nosplit
func (s *AtomicStore) Mark(index int64) {
	atomic.OrUint64(&s.words[index>>wordShift], 1<<(uint64(index)&wordMask))
}
