// internal/game/service.go
//
// Game session service: orchestrates the code generator, the session state
// machine, and the score calculator against a durable session store.
// The Store interface is defined here, on the consumer side; implementations
// live in internal/store (memory for tests/dev, sqlite for production).

package game

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Submission carries the write-once result fields recorded at scoring time.
type Submission struct {
	SubmittedCode string
	Accuracy      float64
	Score         int
	TimeTaken     int
}

// Store is the narrow persistence interface the service depends on.
type Store interface {
	// Create persists a fresh session in StateCreated.
	Create(ctx context.Context, s *Session) error

	// Get returns a snapshot of the session, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Complete records the submission iff the session is still unsubmitted.
	// The check-and-write must be atomic per session: a losing concurrent
	// caller gets ErrAlreadySubmitted, never a silent overwrite.
	Complete(ctx context.Context, id string, sub Submission) error
}

// Service exposes the two lifecycle operations, start and submit.
type Service struct {
	store Store
	gen   *Generator
}

func NewService(store Store, gen *Generator) *Service {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	return &Service{store: store, gen: gen}
}

// StartResult is the single disclosure of the generated code. At scoring
// time the code is re-read from the stored record, never from the client.
type StartResult struct {
	SessionID  string
	Difficulty Difficulty
	Code       string
}

// Start validates the difficulty, generates a code, and persists a new
// session owned by ownerID.
func (s *Service) Start(ctx context.Context, ownerID, difficulty string) (*StartResult, error) {
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	code, err := s.gen.Generate(d)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Difficulty:    d,
		GeneratedCode: code,
		State:         StateCreated,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &StartResult{SessionID: sess.ID, Difficulty: d, Code: code}, nil
}

// SubmitResult is the feedback returned for an accepted submission.
type SubmitResult struct {
	Accuracy    float64
	Score       int
	CorrectCode string
}

// Submit runs the state machine for one submission. Checks apply in order:
// unknown id, then ownership, then prior submission; only then is accuracy
// computed, the score calculated, and the result written through the
// store's conditional update. A concurrent submit that loses the
// conditional write also surfaces ErrAlreadySubmitted. No error path
// mutates the session.
func (s *Service) Submit(ctx context.Context, ownerID, sessionID, submittedCode string, timeTaken int) (*SubmitResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if sess.State == StateScored {
		return nil, ErrAlreadySubmitted
	}

	acc := accuracyFor(sess.GeneratedCode, submittedCode)
	score := Score(sess.Difficulty, acc, timeTaken, sess.Difficulty.MaxTime())

	sub := Submission{
		SubmittedCode: submittedCode,
		Accuracy:      acc,
		Score:         score,
		TimeTaken:     timeTaken,
	}
	if err := s.store.Complete(ctx, sessionID, sub); err != nil {
		return nil, err
	}
	return &SubmitResult{Accuracy: acc, Score: score, CorrectCode: sess.GeneratedCode}, nil
}
