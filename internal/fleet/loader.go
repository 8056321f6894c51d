package fleet

import "sync"

// ListState is the {data, loading, error} state of one entity list. It is
// safe for concurrent use: loads run in their own goroutines while the UI
// reads snapshots.
type ListState[T any] struct {
	mu      sync.Mutex
	gen     uint64
	data    []T
	loading bool
	err     error
}

// Begin marks a load as started and returns its token. Starting a newer
// load invalidates every earlier token.
func (s *ListState[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.loading = true
	return s.gen
}

// Apply records a load result. Results from superseded loads are dropped:
// only the most recently initiated load is authoritative. Reports whether
// the result was applied.
func (s *ListState[T]) Apply(token uint64, data []T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return false
	}
	s.loading = false
	if err != nil {
		s.err = err
		return true
	}
	s.data = data
	s.err = nil
	return true
}

// Snapshot returns the current view of the list.
func (s *ListState[T]) Snapshot() (data []T, loading bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.loading, s.err
}

// SessionGuard makes the session-expired prompt idempotent per screen
// lifetime: concurrent auth failures must produce exactly one prompt.
type SessionGuard struct {
	mu       sync.Mutex
	prompted bool
}

// ShouldPrompt returns true exactly once until Reset is called.
func (g *SessionGuard) ShouldPrompt() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.prompted {
		return false
	}
	g.prompted = true
	return true
}

// Reset re-arms the guard, used when a screen is entered again after a fresh
// login.
func (g *SessionGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompted = false
}
