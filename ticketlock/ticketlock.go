// Package ticketlock provides a fair spinlock that owns the data it
// protects.
//
// A ticket lock serves acquirers in the order they first requested the
// lock: Lock atomically takes the next ticket and busy-waits until the
// serving counter reaches it, and Unlock advances the serving counter by
// one, waking exactly the next ticket holder. Fairness is strong in the
// FIFO sense and rules out starvation under contention.
//
// The algorithm follows Mellor-Crummey and Scott, "Algorithms for Scalable
// Synchronization on Shared-Memory Multiprocessors" (1991).
//
// The lock is not reentrant. A holder that calls Lock again on the same
// mutex deadlocks against itself. There is no timeout and no cancellation;
// a waiter spins until served. The ticket counters are 64-bit and have no
// explicit wraparound handling.
package ticketlock

import (
	"runtime"
	"sync/atomic"
)

// Mutex is a ticket-lock mutex protecting a value of type T. The value is
// reachable only through the Guard returned by Lock, which keeps direct
// unsynchronized access out of reach of callers.
//
// The zero value is an unlocked mutex protecting the zero value of T.
type Mutex[T any] struct {
	// nextTicket counts lock requests; each acquirer takes one ticket.
	nextTicket atomic.Uint64

	// nowServing counts releases; the holder of ticket n runs when
	// nowServing reaches n.
	nowServing atomic.Uint64

	data T
}

// New returns a Mutex protecting data.
func New[T any](data T) *Mutex[T] {
	return &Mutex[T]{data: data}
}

// Lock acquires the mutex, spinning until this caller's ticket is served,
// and returns a Guard granting exclusive access to the protected value.
// The caller must release it with Guard.Unlock, typically deferred.
func (m *Mutex[T]) Lock() *Guard[T] {
	ticket := m.nextTicket.Add(1) - 1
	for m.nowServing.Load() != ticket {
		// There is no one to sleep on; yield the thread as the spin hint.
		runtime.Gosched()
	}
	return &Guard[T]{mutex: m}
}

// Guard is a handle to the protected value of a locked Mutex. Dropping a
// Guard without calling Unlock leaves the mutex locked forever.
type Guard[T any] struct {
	mutex *Mutex[T]
}

// Value returns a pointer to the protected value. The pointer must not be
// retained past Unlock.
func (g *Guard[T]) Value() *T {
	return &g.mutex.data
}

// Unlock releases the mutex, serving the next ticket in FIFO order. It
// must be called exactly once per Guard.
func (g *Guard[T]) Unlock() {
	g.mutex.nowServing.Add(1)
}
