package bitfield

import "github.com/kolkov/syncbench/internal/sieve/spinlock"

// SpinStore is MutexStore with the lock bank swapped for busy-wait
// spin locks.
//
// The critical sections and the mutual-exclusion guarantee are
// identical to MutexStore; only the waiting discipline differs. A
// waiter burns its core polling the lock word instead of parking in
// the scheduler, which pays off exactly when the hold times are as
// short as they are here (a single word load or store).
type SpinStore struct {
	bits
	locks       []spinlock.SpinLock
	granularity int64
}

// NewSpin allocates a SpinStore covering indices [0, limit) with one
// spin lock per granularity consecutive indices. The granularity must
// be a positive multiple of 64 so no lock's span splits a flag word.
func NewSpin(limit, granularity int64) (*SpinStore, error) {
	if err := checkGranularity(granularity); err != nil {
		return nil, err
	}
	b, err := newBits(limit)
	if err != nil {
		return nil, err
	}
	return &SpinStore{
		bits:        b,
		locks:       make([]spinlock.SpinLock, bankSize(limit, granularity)),
		granularity: granularity,
	}, nil
}

// Read reports whether index is marked, spinning for the covering lock.
func (s *SpinStore) Read(index int64) bool {
	l := &s.locks[index/s.granularity]
	l.Lock()
	v := s.words[index>>wordShift]&(1<<(uint64(index)&wordMask)) != 0
	l.Unlock()
	return v
}

// Mark records index as composite, spinning for the covering lock.
func (s *SpinStore) Mark(index int64) {
	l := &s.locks[index/s.granularity]
	l.Lock()
	s.words[index>>wordShift] |= 1 << (uint64(index) & wordMask)
	l.Unlock()
}
