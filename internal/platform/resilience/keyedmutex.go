package resilience

import "sync"

// KeyedMutex serializes work per string key while leaving distinct keys
// fully independent. Entries are reference-counted and dropped once the
// last holder unlocks, so the map does not grow with key cardinality.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (m *KeyedMutex) Lock(key string) {
	m.mu.Lock()
	if m.locks == nil {
		m.locks = make(map[string]*keyedLock)
	}
	entry, ok := m.locks[key]
	if !ok {
		entry = &keyedLock{}
		m.locks[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	entry.mu.Lock()
}

func (m *KeyedMutex) Unlock(key string) {
	m.mu.Lock()
	entry, ok := m.locks[key]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(m.locks, key)
		}
	}
	m.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
