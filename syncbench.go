// Package syncbench exposes the sieve synchronization experiment as a
// library.
//
// See doc.go for detailed documentation and examples.
package syncbench

import (
	"time"

	"github.com/kolkov/syncbench/internal/sieve/experiment"
)

// Params carries the numeric bounds of one experiment configuration:
// the sieve limit, the candidate scan limit, and the lock granularity.
type Params = experiment.Params

// ErrUnknownStrategy reports a strategy name outside the supported set.
var ErrUnknownStrategy = experiment.ErrUnknownStrategy

// Result summarizes one timed run.
type Result struct {
	// Strategy is the synchronization strategy the run used.
	Strategy string

	// Workers is the number of concurrent workers the candidate range
	// was split across.
	Workers int

	// Elapsed is the wall-clock time from worker spawn to last join.
	Elapsed time.Duration

	// Primes is the count of indices the sieve left presumed prime.
	// Under the "unsafe" strategy with multiple workers this may exceed
	// the true count, because lost flag updates leave composites
	// looking prime; that is the experiment's point, not a defect.
	Primes int64
}

// DefaultParams returns the canonical experiment configuration: sieve
// to 100 million, scan candidates to 10 thousand, 256 indices per lock.
func DefaultParams() Params {
	return experiment.DefaultParams()
}

// Strategies returns the supported strategy names in canonical order:
// "mutex", "spinlock", "atomic", "unsafe".
func Strategies() []string {
	all := experiment.Strategies()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return names
}

// Run executes the sieve once under the named strategy with the
// canonical parameters.
//
// The strategy name must be one of Strategies(), matched exactly.
// Worker count must be positive. All validation happens before any
// worker spawns; a returned error means no work was performed.
//
// Example:
//
//	res, err := syncbench.Run("atomic", 8)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%.3fs, %d primes\n", res.Elapsed.Seconds(), res.Primes)
func Run(strategy string, workers int) (Result, error) {
	return RunParams(DefaultParams(), strategy, workers)
}

// RunParams is Run with explicit parameters, for reduced ranges or a
// different lock granularity.
func RunParams(p Params, strategy string, workers int) (Result, error) {
	s, err := experiment.ParseStrategy(strategy)
	if err != nil {
		return Result{}, err
	}
	r, err := experiment.NewRunner(p, s, workers)
	if err != nil {
		return Result{}, err
	}
	res, err := r.Run()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Strategy: string(res.Strategy),
		Workers:  res.Workers,
		Elapsed:  res.Elapsed,
		Primes:   res.Primes,
	}, nil
}
