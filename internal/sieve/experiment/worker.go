package experiment

import (
	"github.com/kolkov/syncbench/internal/sieve/bitfield"
	"github.com/kolkov/syncbench/internal/sieve/partition"
)

// sieveRange runs one worker's share of the sieve: for every candidate
// p in r not already marked composite, mark every multiple of p below
// sieveLimit.
//
// The function is generic over the store so each strategy gets its own
// instantiation; the strategy choice is resolved once, outside this
// loop, never per index. The Read before Mark skips redundant writes;
// it is an optimization, not a correctness requirement, since marking
// an already-marked flag is harmless in every strategy.
//
// A worker has no private state and no result. Its only observable
// effect is mutation of the shared store.
func sieveRange[S bitfield.Store](store S, r partition.Range, sieveLimit int64) {
	for p := r.Start; p < r.End; p++ {
		if store.Read(p) {
			continue
		}
		for i := p * p; i < sieveLimit; i += p {
			if !store.Read(i) {
				store.Mark(i)
			}
		}
	}
}
