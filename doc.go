// Package syncbench measures how inter-thread synchronization
// strategies affect the correctness and throughput of a parallel Sieve
// of Eratosthenes.
//
// The experiment holds everything constant except one variable: the
// discipline used to read and write a shared composite-flag array from
// many workers at once. Four strategies implement the identical logical
// operation (test-and-set of a boolean indexed by integer):
//
//	mutex     blocking locks, one per block of 256 indices
//	spinlock  busy-wait locks with the same critical sections
//	atomic    lock-free atomic loads and idempotent atomic OR
//	unsafe    plain unsynchronized access, lost updates accepted
//
// The first three always produce correct primes; "unsafe" may silently
// drop flag updates under concurrency and report composites as prime.
// Measuring that trade-off is what this module is for.
//
// # Quick Start
//
// One timed run from the command line:
//
//	$ syncbench 8 atomic
//	Running with 8 threads...
//	Selected version: atomic
//	Execution time: 0.312416 seconds
//
// A full experiment matrix, collected to CSV and summarized:
//
//	$ syncbench-suite init
//	$ syncbench-suite run
//	$ syncbench-suite report
//
// From Go:
//
//	res, err := syncbench.Run("spinlock", 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d workers: %.3fs, %d primes\n",
//		res.Workers, res.Elapsed.Seconds(), res.Primes)
//
// # How It Works
//
// A run sieves every composite below the sieve limit (default 100
// million). The candidate range [2, 10000) is split into one contiguous
// sub-range per worker; each worker tests each of its candidates
// against the shared flag array and, when a candidate is still
// unmarked, marks all its multiples. All workers start together, the
// clock covers spawn to last join, and nothing else runs inside the
// timed span.
//
// Because workers race to mark overlapping multiple chains, every flag
// access goes through the selected strategy. The mutex and spinlock
// strategies are fully exclusive per flag block. The atomic strategy
// allows the read-then-mark sequence to interleave, which is benign
// because marking is idempotent. The unsafe strategy allows plain
// word-level read-modify-write collisions, which genuinely lose data.
//
// # Performance Characteristics
//
// The flag array is bit-packed: 12.5 MB covers the default range, so a
// large share of it stays cache-resident. Locks cover 256 indices each,
// which keeps the lock arrays small relative to the flags. The worker
// loop is generic over the store type, so the per-index Read and Mark
// calls bind to the selected strategy outside the hot loop.
//
// Typical shape of results: "unsafe" and "atomic" lead, "spinlock"
// trails them by the cost of its lock words, "mutex" pays the most per
// operation. The ordering and the gaps vary by machine and scheduler;
// producing those numbers for a given host is the point of the suite.
//
// # Packages
//
//   - syncbench (this package): one-call library surface.
//   - cmd/syncbench: single-run binary with a fixed three-line report.
//   - cmd/syncbench-suite: matrix runner, CSV collection, Markdown
//     summary.
//
// # Links
//
// Project repository:
// https://github.com/kolkov/syncbench
//
// Documentation:
// https://pkg.go.dev/github.com/kolkov/syncbench
package syncbench
