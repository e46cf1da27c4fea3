package experiment

import (
	"errors"
	"math/bits"

	"github.com/kolkov/syncbench/internal/sieve/bitfield"
	"github.com/kolkov/syncbench/internal/sieve/partition"
)

// ErrFlagLength reports a verification attempt over flag arrays of
// different sizes, which means the runs used different sieve limits.
var ErrFlagLength = errors.New("experiment: flag arrays differ in length")

// Reference computes the composite flags sequentially and returns the
// packed words.
//
// It runs the identical worker loop over the whole candidate range in
// one goroutine on an unsynchronized store, which is fully correct
// single-threaded. The result is the ground truth a concurrent run's
// flags are compared against.
func Reference(p Params) ([]uint64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	store, err := bitfield.NewUnsafe(p.SieveLimit)
	if err != nil {
		return nil, err
	}
	sieveRange(store, partition.Range{Start: firstCandidate, End: p.ScanLimit}, p.SieveLimit)
	return store.Words(), nil
}

// Verification quantifies how a run's final flags diverge from the
// sequential reference.
type Verification struct {
	// Lost counts flags set in the reference but missing from the run:
	// composites the run failed to mark. Nonzero only when marks were
	// dropped by unsynchronized interleaving.
	Lost int64

	// Extra counts flags set in the run but not in the reference. The
	// worker only ever marks true composites, so this is zero for every
	// strategy; a nonzero value means the store itself corrupted a word.
	Extra int64
}

// Clean reports whether the run's flags match the reference exactly.
func (v Verification) Clean() bool {
	return v.Lost == 0 && v.Extra == 0
}

// Verify compares a run's flag words against the reference words.
func Verify(flags, reference []uint64) (Verification, error) {
	if len(flags) != len(reference) {
		return Verification{}, ErrFlagLength
	}
	var v Verification
	for i, w := range flags {
		ref := reference[i]
		v.Lost += int64(bits.OnesCount64(ref &^ w))
		v.Extra += int64(bits.OnesCount64(w &^ ref))
	}
	return v, nil
}

// CountPrimes reports how many indices in [2, limit) are unmarked in
// the packed flag words, i.e. how many the sieve left presumed prime.
func CountPrimes(words []uint64, limit int64) int64 {
	if limit <= firstCandidate {
		return 0
	}
	var marked int64
	full := limit >> 6
	for _, w := range words[:full] {
		marked += int64(bits.OnesCount64(w))
	}
	if rem := uint(limit & 63); rem != 0 {
		marked += int64(bits.OnesCount64(words[full] & (1<<rem - 1)))
	}
	// Indices 0 and 1 are never marked but are not primes either.
	return limit - marked - firstCandidate
}
