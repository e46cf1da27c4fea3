package experiment

import (
	"errors"
	"fmt"
)

// Canonical experiment constants. ScanLimit squared reaches SieveLimit,
// so scanning candidates below ScanLimit marks every composite below
// SieveLimit.
const (
	DefaultSieveLimit  = 100_000_000
	DefaultScanLimit   = 10_000
	DefaultGranularity = 256
)

// firstCandidate is the smallest value the sieve examines; 0 and 1 are
// neither prime nor composite and are never marked.
const firstCandidate = 2

// Validation errors, testable with errors.Is.
var (
	ErrSieveLimit  = errors.New("experiment: sieve limit must be at least 2")
	ErrScanLimit   = errors.New("experiment: scan limit must be at least 2 and not exceed the sieve limit")
	ErrGranularity = errors.New("experiment: lock granularity must be a positive multiple of 64")
	ErrWorkers     = errors.New("experiment: worker count must be positive")
)

// Params carries the numeric bounds of one experiment configuration.
//
// A Params value is constructed once at startup and passed by value
// into everything that needs it; nothing in this module keeps mutable
// package-level configuration.
type Params struct {
	// SieveLimit is the exclusive upper bound of composite marking.
	SieveLimit int64

	// ScanLimit is the exclusive upper bound of the candidate scan.
	// Full sieve correctness needs ScanLimit*ScanLimit >= SieveLimit;
	// that is a property of the chosen parameters, not enforced here.
	ScanLimit int64

	// Granularity is the number of consecutive indices one lock covers
	// in the mutex and spinlock strategies. Must be a positive multiple
	// of 64. The atomic and unsafe strategies ignore it.
	Granularity int64
}

// DefaultParams returns the canonical experiment configuration:
// sieve to 100 million, scan candidates to 10 thousand, 256 indices
// per lock.
func DefaultParams() Params {
	return Params{
		SieveLimit:  DefaultSieveLimit,
		ScanLimit:   DefaultScanLimit,
		Granularity: DefaultGranularity,
	}
}

// Validate checks the bounds and their relationships.
func (p Params) Validate() error {
	if p.SieveLimit < firstCandidate {
		return fmt.Errorf("%w: got %d", ErrSieveLimit, p.SieveLimit)
	}
	if p.ScanLimit < firstCandidate || p.ScanLimit > p.SieveLimit {
		return fmt.Errorf("%w: got %d with sieve limit %d", ErrScanLimit, p.ScanLimit, p.SieveLimit)
	}
	if p.Granularity <= 0 || p.Granularity%64 != 0 {
		// Same constraint the lock-bank stores enforce, surfaced here
		// before any allocation happens.
		return fmt.Errorf("%w: got %d", ErrGranularity, p.Granularity)
	}
	return nil
}
