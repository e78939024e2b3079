package store

import "sync"

// lockRegistry hands out one RWMutex per speaker or meeting identifier, so
// all mutating operations on the same identifier are serialized while reads
// can proceed concurrently.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[string]*sync.RWMutex)}
}

func (r *lockRegistry) get(id string) *sync.RWMutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.RWMutex{}
		r.locks[id] = lock
	}
	return lock
}

// pair returns the locks for two identifiers in a stable order, so callers
// that need both (rename, correction) cannot deadlock each other.
func (r *lockRegistry) pair(a, b string) (first, second *sync.RWMutex) {
	if a > b {
		a, b = b, a
	}
	return r.get(a), r.get(b)
}
