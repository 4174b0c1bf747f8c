// Package keylock provides a mutex-per-key map used to serialize actions
// against a single room while letting different rooms proceed in parallel.
package keylock

import "sync"

// KeyLock hands out one mutex per string key. Mutexes are created lazily
// and never discarded; the key space (room names) is small and bounded by
// room lifetime.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty KeyLock
func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, creating it on first use
func (k *KeyLock) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key
func (k *KeyLock) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyLock) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
