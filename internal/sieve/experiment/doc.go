// Package experiment assembles store, partitioner and workers into one
// timed sieve run.
//
// A run is a controlled measurement: sieve every composite below
// Params.SieveLimit using a fixed pool of workers, with all shared-flag
// access going through one synchronization Strategy. The strategy is
// the only variable between runs; the partitioning, the worker loop and
// the timing are identical for all four.
//
// A Runner moves through three states:
//
//	Configured -> Running -> Completed
//
// Run spawns one goroutine per worker, each bound to a disjoint
// candidate range, starts the clock immediately before the spawn and
// stops it when the last worker finishes. There is no cancellation and
// no timeout: once started, a run always proceeds to completion, and a
// worker cannot fail because it performs no fallible operation.
//
// Reference and Verify provide the sequential baseline and the
// flag-by-flag comparison used to quantify what the unsynchronized
// strategy loses.
package experiment
