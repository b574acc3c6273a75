package locking

import (
	"context"
	"sync"
)

// KeyedMutex is the in-process Locker used when no redis address is
// configured. Suitable for single-replica deployments.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

func (m *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		m.entries[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-entry.sem
				m.drop(key, entry)
			})
		}, nil
	case <-ctx.Done():
		m.drop(key, entry)
		return nil, ctx.Err()
	}
}

func (m *KeyedMutex) drop(key string, entry *keyedEntry) {
	m.mu.Lock()
	entry.refs--
	if entry.refs <= 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}
