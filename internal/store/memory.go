// internal/store/memory.go
//
// In-memory implementation of the game.Store interface.
// This is a lightweight persistence layer used when durability is not
// required, primarily in development and tests.
//
// Characteristics:
//   - Stores session snapshots keyed by ID in a map.
//   - Concurrency-safe via a mutex; the mutex is held across Complete's
//     check-and-write, which is what serializes concurrent submissions.
//   - Get returns a copy, so callers never share mutable state.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"ghostcode/internal/game"
)

// Memory is an in-memory map-based game.Store implementation.
type Memory struct {
	mu       sync.Mutex // guards sessions, including Complete's read-modify-write
	sessions map[string]*game.Session
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*game.Session)}
}

// Create stores a copy of the new session.
func (m *Memory) Create(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

// Get returns a snapshot of the session by ID.
func (m *Memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

// Complete records the submission iff the session is still in StateCreated.
// The check and the write happen under the same lock, so of N concurrent
// calls exactly one succeeds.
func (m *Memory) Complete(ctx context.Context, id string, sub game.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return game.ErrSessionNotFound
	}
	if s.State == game.StateScored {
		return game.ErrAlreadySubmitted
	}
	s.State = game.StateScored
	s.SubmittedCode = sub.SubmittedCode
	s.Accuracy = sub.Accuracy
	s.Score = sub.Score
	s.TimeTaken = sub.TimeTaken
	return nil
}
