// Package spinlock implements a test-and-set busy-wait lock.
//
// A SpinLock provides the same mutual-exclusion and acquire/release
// ordering guarantees as sync.Mutex but waits differently: a contended
// sync.Mutex parks the goroutine in the scheduler, while a contended
// SpinLock keeps the core hot re-reading the lock word until it frees.
// That is a performance trade-off, not a correctness one. Under short
// critical sections and low contention the spin wins; under long holds
// or heavy oversubscription the park wins.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

const (
	unlocked = 0
	locked   = 1

	// spinsPerYield bounds how long a waiter stays on the CPU before
	// letting the scheduler run someone else. Without the yield an
	// oversubscribed run (more waiters than GOMAXPROCS) can leave
	// every core spinning against a holder that is not scheduled.
	spinsPerYield = 128
)

// SpinLock is a mutual-exclusion lock whose waiters busy-poll.
//
// The zero value is an unlocked SpinLock. A SpinLock must not be copied
// after first use. It implements sync.Locker.
type SpinLock struct {
	state uint32
}

// Lock acquires the lock, busy-polling until it is available.
//
// Waiters spin on plain loads of the lock word and only attempt the
// test-and-set once the word reads unlocked, so a contended lock does
// not generate write traffic on the cache line while it is held.
func (l *SpinLock) Lock() {
	if l.TryLock() {
		return
	}
	spins := 0
	for {
		if atomic.LoadUint32(&l.state) == unlocked && l.TryLock() {
			return
		}
		spins++
		if spins%spinsPerYield == 0 {
			runtime.Gosched()
		}
	}
}

// TryLock attempts to acquire the lock without waiting.
//
// Returns true if the lock was acquired.
//
//go:nosplit
func (l *SpinLock) TryLock() bool {
	return atomic.CompareAndSwapUint32(&l.state, unlocked, locked)
}

// Unlock releases the lock.
//
// The store has release semantics: every write made inside the critical
// section is visible to the goroutine that acquires the lock next.
// Unlocking an unlocked SpinLock is not detected; callers own the
// pairing discipline.
//
//go:nosplit
func (l *SpinLock) Unlock() {
	atomic.StoreUint32(&l.state, unlocked)
}
