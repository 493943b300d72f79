package app

import "sync"

// Store holds the authoritative application state on the UI thread. The
// middleware chain runs on the background worker; the store only applies the
// reducer.
type Store struct {
	state AppState
}

// NewStore wraps an initial state.
func NewStore(initial AppState) *Store {
	return &Store{state: initial}
}

// State borrows the current state.
func (s *Store) State() *AppState {
	return &s.state
}

// Apply replaces the state with reduce(state, action).
func (s *Store) Apply(action Action) {
	s.state = Reduce(s.state.Clone(), action)
}

// SharedState is the read-guarded snapshot handle the background worker
// reads: the UI thread publishes a clone after every reducer application,
// middleware reads (clones) it per action and never writes.
type SharedState struct {
	mu    sync.RWMutex
	state AppState
}

// NewSharedState seeds the handle.
func NewSharedState(initial AppState) *SharedState {
	return &SharedState{state: initial}
}

// Publish replaces the snapshot (UI thread only).
func (h *SharedState) Publish(state AppState) {
	clone := state.Clone()
	h.mu.Lock()
	h.state = clone
	h.mu.Unlock()
}

// Snapshot returns a clone for middleware use; the read lock is held only
// momentarily.
func (h *SharedState) Snapshot() AppState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state.Clone()
}
