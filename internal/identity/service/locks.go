package service

import "sync"

// accountLocks serializes logins per account key. Locks are created on demand
// and removed once the last holder releases them, so the map stays bounded by
// the number of in-flight logins.
type accountLocks struct {
	mu sync.Mutex
	m  map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

// lock acquires the lock for key and returns the matching release func.
func (l *accountLocks) lock(key string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*accountLock)
	}
	al, ok := l.m[key]
	if !ok {
		al = &accountLock{}
		l.m[key] = al
	}
	al.refs++
	l.mu.Unlock()

	al.mu.Lock()
	return func() {
		al.mu.Unlock()
		l.mu.Lock()
		al.refs--
		if al.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}
