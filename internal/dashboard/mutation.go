package dashboard

import (
	"errors"
	"sync"
)

var (
	// ErrRolledBack reports that a local change was reverted because the
	// server rejected it.
	ErrRolledBack = errors.New("change rolled back")
	// ErrMutationPending rejects a second change while one is in flight.
	ErrMutationPending = errors.New("another change is still pending")
)

type MutationState int

const (
	MutationIdle MutationState = iota
	MutationPending
	MutationCommitted
	MutationRolledBack
)

func (s MutationState) String() string {
	switch s {
	case MutationIdle:
		return "idle"
	case MutationPending:
		return "pending"
	case MutationCommitted:
		return "committed"
	case MutationRolledBack:
		return "rolled-back"
	}
	return "unknown"
}

// Mutation tracks one optimistic change. Begin records the view as it was
// before the change; Rollback hands that snapshot back.
type Mutation[T any] struct {
	mu       sync.Mutex
	state    MutationState
	snapshot T
}

func (m *Mutation[T]) Begin(snapshot T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == MutationPending {
		return ErrMutationPending
	}
	m.state = MutationPending
	m.snapshot = snapshot
	return nil
}

func (m *Mutation[T]) Commit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != MutationPending {
		return
	}
	var zero T
	m.state = MutationCommitted
	m.snapshot = zero
}

// Rollback ends a pending change and returns the snapshot taken by Begin.
// ok is false when nothing was pending.
func (m *Mutation[T]) Rollback() (snapshot T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != MutationPending {
		return snapshot, false
	}
	snapshot = m.snapshot
	var zero T
	m.state = MutationRolledBack
	m.snapshot = zero
	return snapshot, true
}

func (m *Mutation[T]) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
