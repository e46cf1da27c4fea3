package bitfield

import "sync"

// MutexStore guards the flag words with a bank of sync.Mutex.
//
// Lock k covers flag indices [k*granularity, (k+1)*granularity), so any
// two operations on the same flag are mutually exclusive while
// operations on flags under different locks proceed in parallel. A
// waiter blocks in the scheduler until the holder releases.
//
// Note the exclusion is per operation, not per read-then-mark sequence:
// two goroutines can both Read false for an index before either Marks
// it. Both then Mark, which is harmless because Mark is idempotent.
type MutexStore struct {
	bits
	locks       []sync.Mutex
	granularity int64
}

// NewMutex allocates a MutexStore covering indices [0, limit) with one
// lock per granularity consecutive indices. The granularity must be a
// positive multiple of 64 so no lock's span splits a flag word.
func NewMutex(limit, granularity int64) (*MutexStore, error) {
	if err := checkGranularity(granularity); err != nil {
		return nil, err
	}
	b, err := newBits(limit)
	if err != nil {
		return nil, err
	}
	return &MutexStore{
		bits:        b,
		locks:       make([]sync.Mutex, bankSize(limit, granularity)),
		granularity: granularity,
	}, nil
}

// Read reports whether index is marked, holding the covering lock for
// the duration of the load.
func (s *MutexStore) Read(index int64) bool {
	l := &s.locks[index/s.granularity]
	l.Lock()
	v := s.words[index>>wordShift]&(1<<(uint64(index)&wordMask)) != 0
	l.Unlock()
	return v
}

// Mark records index as composite, holding the covering lock for the
// duration of the store.
func (s *MutexStore) Mark(index int64) {
	l := &s.locks[index/s.granularity]
	l.Lock()
	s.words[index>>wordShift] |= 1 << (uint64(index) & wordMask)
	l.Unlock()
}
