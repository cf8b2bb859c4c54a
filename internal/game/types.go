// internal/game/types.go
//
// Core type definitions for the recall game engine.
// Defines:
//   - Difficulty: tier controlling code length, base score, and time budget.
//   - State: explicit session lifecycle tag (created/scored).
//   - Session: state for a single play-through, from code issuance to scoring.
//   - The sentinel errors shared by the service and the stores.

package game

import (
	"errors"
	"time"
)

// Difficulty selects the code length, scoring base, and time budget of a session.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty validates a client-supplied difficulty tag.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", ErrInvalidDifficulty
}

// CodeLength is the number of characters in a generated code.
func (d Difficulty) CodeLength() int {
	switch d {
	case Easy:
		return 6
	case Medium:
		return 9
	default:
		return 12
	}
}

// BaseScore is the score awarded at 100% accuracy before any time bonus.
func (d Difficulty) BaseScore() int {
	switch d {
	case Easy:
		return 100
	case Medium:
		return 200
	default:
		return 300
	}
}

// MaxTime is the time budget in seconds; past it no time bonus accrues.
func (d Difficulty) MaxTime() int {
	switch d {
	case Easy:
		return 60
	case Medium:
		return 90
	default:
		return 120
	}
}

// State tags where a session is in its lifecycle. There are exactly two
// states: rejected submissions leave the session in StateCreated.
type State string

const (
	StateCreated State = "created"
	StateScored  State = "scored"
)

// Session holds the state of a single recall game session.
// GeneratedCode is fixed at creation; the submission fields are written
// exactly once when the session transitions to StateScored.
type Session struct {
	ID            string // uuid, assigned at creation
	OwnerID       string // player who started the session
	Difficulty    Difficulty
	GeneratedCode string // challenge string, upper-case A–Z0–9
	State         State
	SubmittedCode string  // empty until scored
	Accuracy      float64 // percent, 0–100
	Score         int
	TimeTaken     int // seconds, as reported by the client
	CreatedAt     time.Time
}

var (
	// ErrInvalidDifficulty is returned for a difficulty tag outside easy/medium/hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrSessionNotFound is returned when a session id does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotOwner is returned when a caller submits against someone else's session.
	ErrNotOwner = errors.New("not session owner")

	// ErrAlreadySubmitted is returned for any submit after the first accepted
	// one. The stored result is not re-returned; retries are a hard rejection.
	ErrAlreadySubmitted = errors.New("session already submitted")
)
