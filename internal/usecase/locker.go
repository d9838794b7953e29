package usecase

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// keyLocker - one mutex per game id. Entries live only while someone holds or waits for them.
type keyLocker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newKeyLocker() *keyLocker {
	return &keyLocker{
		locks: make(map[string]*lockEntry),
	}
}

// Lock - blocks until the key is free and returns the unlock func.
func (that *keyLocker) Lock(key string) func() {
	that.mu.Lock()
	entry, ok := that.locks[key]
	if !ok {
		entry = &lockEntry{}
		that.locks[key] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, key)
		}
		that.mu.Unlock()
	}
}

func (that *keyLocker) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
