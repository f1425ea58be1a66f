package sync

import "sync"

/*
 * KeyedMutex hands out one mutex per key. The coordination service locks
 * the event id around its read-allocate-write window, so two concurrent
 * game creations against the same event serialize instead of both reading
 * the same stale slot map and overdrawing capacity.
 */
type KeyedMutex struct {
	locks sync.Map
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for key, creating it on first use. Locks are
// never evicted; the key space (event ids) is small and bounded.
func (k *KeyedMutex) Lock(key string) {
	mu, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for key.
func (k *KeyedMutex) Unlock(key string) {
	mu, ok := k.locks.Load(key)
	if !ok {
		return
	}
	mu.(*sync.Mutex).Unlock()
}
