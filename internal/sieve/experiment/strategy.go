package experiment

import (
	"errors"
	"fmt"
)

// Strategy selects the synchronization discipline for a run. The set is
// closed: exactly these four values exist, chosen once at startup.
type Strategy string

const (
	// Mutex guards each flag block with a blocking lock.
	Mutex Strategy = "mutex"

	// Spinlock guards each flag block with a busy-wait lock.
	Spinlock Strategy = "spinlock"

	// Atomic uses lock-free atomic word access with an idempotent mark.
	Atomic Strategy = "atomic"

	// Unsafe uses plain unsynchronized access and accepts lost marks.
	Unsafe Strategy = "unsafe"
)

// ErrUnknownStrategy reports a strategy name outside the closed set.
var ErrUnknownStrategy = errors.New("experiment: unknown strategy")

// Strategies returns the four strategies in canonical order.
func Strategies() []Strategy {
	return []Strategy{Mutex, Spinlock, Atomic, Unsafe}
}

// ParseStrategy maps a name to its Strategy. The match is exact and
// case-sensitive: "mutex", "spinlock", "atomic" or "unsafe".
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case Mutex, Spinlock, Atomic, Unsafe:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) String() string {
	return string(s)
}
