package experiment

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kolkov/syncbench/internal/sieve/bitfield"
	"github.com/kolkov/syncbench/internal/sieve/partition"
)

// State is the lifecycle position of a Runner.
type State int32

const (
	// StateConfigured means the runner is validated and ready to run.
	StateConfigured State = iota

	// StateRunning means workers are sieving.
	StateRunning

	// StateCompleted means every worker has finished and the result
	// is final.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Result is the outcome of one timed run.
type Result struct {
	// Strategy and Workers identify the experiment cell.
	Strategy Strategy
	Workers  int

	// Elapsed is the wall-clock time from just before the first worker
	// spawned to just after the last worker finished.
	Elapsed time.Duration

	// Primes is the count of indices in [2, SieveLimit) left unmarked.
	Primes int64

	// Flags is the final packed flag array, kept for verification.
	// Callers that only need the timing should drop the Result promptly;
	// at the default limit this slice holds 12.5 MB.
	Flags []uint64

	// Params echoes the configuration the run used.
	Params Params
}

// Runner executes one experiment run for a fixed strategy, worker count
// and parameter set.
//
// A Runner is single-use: Configure it with NewRunner, call Run once,
// read the Result. State is updated atomically so another goroutine may
// poll a runner's progress without synchronizing with it.
type Runner struct {
	params   Params
	strategy Strategy
	workers  int
	state    atomic.Int32
}

// NewRunner validates the configuration and returns a Runner in
// StateConfigured. All validation happens here, before any allocation:
// a bad worker count, unknown strategy or out-of-range parameter is
// caught while the process has done no work.
func NewRunner(p Params, strategy Strategy, workers int) (*Runner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrWorkers, workers)
	}
	return &Runner{params: p, strategy: strategy, workers: workers}, nil
}

// State returns the runner's current lifecycle position.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run executes the sieve once and returns the timed result.
//
// It partitions [2, ScanLimit) across the configured workers, allocates
// a fresh store for the configured strategy, spawns all workers, and
// joins them unconditionally; there is no timeout and no cancellation.
// The clock starts immediately before the spawn loop and stops
// immediately after the join, so the measured span covers worker
// execution and nothing else.
//
// The returned error can only arise from partitioning or store
// construction, both of which NewRunner's validation rules out; once
// workers are running, nothing can fail.
func (r *Runner) Run() (Result, error) {
	ranges, err := partition.Split(r.workers, firstCandidate, r.params.ScanLimit)
	if err != nil {
		return Result{}, fmt.Errorf("partitioning candidates: %w", err)
	}

	switch r.strategy {
	case Mutex:
		store, err := bitfield.NewMutex(r.params.SieveLimit, r.params.Granularity)
		if err != nil {
			return Result{}, fmt.Errorf("allocating mutex store: %w", err)
		}
		return timeRun(r, store, ranges), nil
	case Spinlock:
		store, err := bitfield.NewSpin(r.params.SieveLimit, r.params.Granularity)
		if err != nil {
			return Result{}, fmt.Errorf("allocating spinlock store: %w", err)
		}
		return timeRun(r, store, ranges), nil
	case Atomic:
		store, err := bitfield.NewAtomic(r.params.SieveLimit)
		if err != nil {
			return Result{}, fmt.Errorf("allocating atomic store: %w", err)
		}
		return timeRun(r, store, ranges), nil
	case Unsafe:
		store, err := bitfield.NewUnsafe(r.params.SieveLimit)
		if err != nil {
			return Result{}, fmt.Errorf("allocating unsafe store: %w", err)
		}
		return timeRun(r, store, ranges), nil
	}
	// NewRunner accepted the strategy, so this is unreachable.
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, r.strategy)
}

// flagStore is what the harness needs from a concrete store: the worker
// contract plus access to the final words.
type flagStore interface {
	bitfield.Store
	Words() []uint64
}

// timeRun spawns one goroutine per range, times the spawn-to-join span,
// and assembles the Result. Generic so the worker loop binds to the
// concrete store type rather than dispatching through an interface per
// index.
func timeRun[S flagStore](r *Runner, store S, ranges []partition.Range) Result {
	limit := r.params.SieveLimit
	r.state.Store(int32(StateRunning))

	var wg sync.WaitGroup
	start := time.Now()
	for _, rg := range ranges {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sieveRange(store, rg, limit)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	r.state.Store(int32(StateCompleted))

	words := store.Words()
	return Result{
		Strategy: r.strategy,
		Workers:  r.workers,
		Elapsed:  elapsed,
		Primes:   CountPrimes(words, limit),
		Flags:    words,
		Params:   r.params,
	}
}
