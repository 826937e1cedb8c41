package lock

import (
	"sync"
)

// KeyedMutex serializes operations per key. Two callers locking the same key
// run one after the other; different keys proceed in parallel.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: map[string]*entry{},
	}
}

func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()

	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}

	e.refs++

	k.mu.Unlock()

	e.mu.Lock()
}

func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()

	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()

		panic("lock: unlock of unheld key " + key)
	}

	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}

	k.mu.Unlock()

	e.mu.Unlock()
}
