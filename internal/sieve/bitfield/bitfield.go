// Package bitfield implements the shared composite-flag store of the
// sieve experiment in four synchronization flavors.
//
// Every store packs one boolean per integer index into a []uint64 word
// array: bit i&63 of word i>>6 is true once index i is known composite.
// The packed layout is identical across all four implementations so the
// only independent variable between experiment runs is the
// synchronization discipline, which is the thing being measured:
//
//   - MutexStore: a bank of sync.Mutex, one per Granularity indices.
//   - SpinStore: the same bank shape built on spinlock.SpinLock.
//   - AtomicStore: lock-free word loads and idempotent atomic OR.
//   - UnsafeStore: plain loads and stores, deliberately unsynchronized.
//
// All four satisfy Store. None of them allocates or fails after
// construction; Read and Mark are safe for any index in [0, limit).
package bitfield

import "errors"

// Word packing layout: bit index&wordMask of words[index>>wordShift].
const (
	wordShift = 6
	wordBits  = 1 << wordShift
	wordMask  = wordBits - 1
)

// Construction errors, testable with errors.Is.
var (
	// ErrLimit reports a non-positive flag domain.
	ErrLimit = errors.New("bitfield: limit must be positive")

	// ErrGranularity reports a lock granularity that is not a positive
	// multiple of the 64-bit word size. A lock whose span split a word
	// would let two locks guard the same word, which breaks the
	// one-lock-per-flag exclusion contract.
	ErrGranularity = errors.New("bitfield: lock granularity must be a positive multiple of 64")
)

// Store is the per-index contract a sieve worker drives.
//
// Read reports whether index is already marked composite; Mark records
// index as composite. What either guarantees under concurrency depends
// entirely on the implementing strategy.
type Store interface {
	Read(index int64) bool
	Mark(index int64)
}

// bits is the packed flag array every strategy embeds.
type bits struct {
	words []uint64
	limit int64
}

func newBits(limit int64) (bits, error) {
	if limit <= 0 {
		return bits{}, ErrLimit
	}
	return bits{
		words: make([]uint64, (limit+wordMask)>>wordShift),
		limit: limit,
	}, nil
}

// Words exposes the raw flag words for counting and verification.
//
// The slice aliases live store memory; callers must not read it while
// workers are still marking.
func (b *bits) Words() []uint64 {
	return b.words
}

// Limit returns the exclusive upper bound of the index domain.
func (b *bits) Limit() int64 {
	return b.limit
}

func checkGranularity(granularity int64) error {
	if granularity <= 0 || granularity%wordBits != 0 {
		return ErrGranularity
	}
	return nil
}

// bankSize returns the number of locks needed so every index in
// [0, limit) is covered: ceil(limit / granularity).
func bankSize(limit, granularity int64) int64 {
	return (limit + granularity - 1) / granularity
}
