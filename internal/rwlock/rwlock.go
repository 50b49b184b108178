// Package rwlock guards a shared value with a reader-writer lock. The value is only reachable inside the callbacks
// passed to Read and Write, which hold the lock for exactly their duration.
package rwlock

import "sync"

type shared[T any] struct {
	mu    sync.RWMutex
	value T
}

// Lockable owns a value and hands out read and write access to it.
type Lockable[T any] struct {
	shared *shared[T]
}

// ReadLockable is a read-only handle on the value of a Lockable. Handles can be copied freely; all of them refer to
// the same value and lock.
type ReadLockable[T any] struct {
	shared *shared[T]
}

func New[T any](value T) *Lockable[T] {
	return &Lockable[T]{&shared[T]{value: value}}
}

// ReadOnly returns a read-only handle on the value.
func (l *Lockable[T]) ReadOnly() ReadLockable[T] {
	return ReadLockable[T]{l.shared}
}

// Write calls fn with exclusive access to the value. Blocks while there are other readers or writers.
func (l *Lockable[T]) Write(fn func(value *T)) {
	l.shared.mu.Lock()
	defer l.shared.mu.Unlock()
	fn(&l.shared.value)
}

// Read calls fn with shared access to the value. Blocks while there is a writer. fn must not modify the value or
// anything it references.
func (l *Lockable[T]) Read(fn func(value T)) {
	l.ReadOnly().Read(fn)
}

func (r ReadLockable[T]) Read(fn func(value T)) {
	r.shared.mu.RLock()
	defer r.shared.mu.RUnlock()
	fn(r.shared.value)
}

// Reader is implemented by both Lockable and ReadLockable.
type Reader[T any] interface {
	Read(fn func(value T))
}

// Get evaluates fn under a read lock and returns its result.
func Get[T, R any](r Reader[T], fn func(value T) R) R {
	var result R
	r.Read(func(value T) {
		result = fn(value)
	})
	return result
}

// Update evaluates fn under the write lock and returns its result.
func Update[T, R any](l *Lockable[T], fn func(value *T) R) R {
	var result R
	l.Write(func(value *T) {
		result = fn(value)
	})
	return result
}
