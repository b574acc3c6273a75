package locking

import "context"

// Locker serializes state transitions that share a key. Enrollment uses one
// key per (student, course) pair so a racing confirm and abandon for the same
// checkout never interleave their read-decide-write sections.
type Locker interface {
	// Acquire blocks until the key is held or ctx is done. The returned
	// release function must be called exactly once.
	Acquire(ctx context.Context, key string) (func(), error)
}
