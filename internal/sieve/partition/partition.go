// Package partition splits the candidate range across workers.
package partition

import (
	"errors"
	"fmt"
)

// ErrWorkers reports a non-positive worker count, which would make the
// chunk division meaningless.
var ErrWorkers = errors.New("partition: worker count must be positive")

// ErrInterval reports an interval whose upper bound precedes its lower.
var ErrInterval = errors.New("partition: interval upper bound below lower bound")

// Range is a half-open interval [Start, End) of candidate values
// assigned to exactly one worker.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of values in the range.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// String formats the range as "[start,end)".
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Split divides [lo, hi) into exactly workers contiguous ranges with no
// overlap and no gap.
//
// Every range spans (hi-lo)/workers values except the last, which
// absorbs the whole division remainder: its End is pinned to hi, so the
// union always covers the full interval even when the sizes come out
// unequal. When the interval is smaller than the worker count the
// leading ranges are empty and the last range carries everything.
func Split(workers int, lo, hi int64) ([]Range, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrWorkers, workers)
	}
	if hi < lo {
		return nil, fmt.Errorf("%w: [%d,%d)", ErrInterval, lo, hi)
	}

	chunk := (hi - lo) / int64(workers)
	ranges := make([]Range, workers)
	for w := range ranges {
		start := lo + int64(w)*chunk
		end := start + chunk
		if w == workers-1 {
			end = hi
		}
		ranges[w] = Range{Start: start, End: end}
	}
	return ranges, nil
}
