package http

import "sync"

// userLocks serializes writes per username. Without it, two concurrent
// log-expense calls for the same user can read the same row count and
// assign duplicate IDs; with it, each user's read-modify-write cycles
// run one at a time. Locks are never evicted; the universe of usernames
// for one deployment is small.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for the user and returns the unlock func.
func (l *userLocks) acquire(username string) func() {
	l.mu.Lock()
	m, ok := l.locks[username]
	if !ok {
		m = &sync.Mutex{}
		l.locks[username] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
