// internal/store/sqlite.go
//
// SQLite-backed implementation of the game.Store interface.
// The single-submission guarantee is delegated to the database: Complete
// issues a conditional UPDATE gated on submitted_code IS NULL, so of N
// concurrent submissions exactly one row update commits and the rest
// observe zero affected rows.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ghostcode/internal/game"
)

// SQLite persists sessions in the game_sessions table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an opened database handle. Schema is managed by the
// sql/ migration runner, not here.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Create inserts a fresh session row.
func (s *SQLite) Create(ctx context.Context, sess *game.Session) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO game_sessions (id, owner_id, difficulty, generated_code, state, created_at)
        VALUES (?,?,?,?,?,?)`,
		sess.ID, sess.OwnerID, string(sess.Difficulty), sess.GeneratedCode,
		string(sess.State), sess.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get loads a session row by ID.
func (s *SQLite) Get(ctx context.Context, id string) (*game.Session, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, owner_id, difficulty, generated_code, state,
               COALESCE(submitted_code,''), COALESCE(accuracy,0),
               COALESCE(score,0), COALESCE(time_taken,0), created_at
        FROM game_sessions WHERE id=?`, id)

	var sess game.Session
	var difficulty, state, created string
	err := row.Scan(&sess.ID, &sess.OwnerID, &difficulty, &sess.GeneratedCode,
		&state, &sess.SubmittedCode, &sess.Accuracy, &sess.Score,
		&sess.TimeTaken, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	sess.Difficulty = game.Difficulty(difficulty)
	sess.State = game.State(state)
	sess.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &sess, nil
}

// Complete records the submission with a conditional update. Zero affected
// rows means either the session does not exist or it is already scored;
// a follow-up existence check disambiguates.
func (s *SQLite) Complete(ctx context.Context, id string, sub game.Submission) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE game_sessions
        SET submitted_code=?, accuracy=?, score=?, time_taken=?, state=?
        WHERE id=? AND submitted_code IS NULL`,
		sub.SubmittedCode, sub.Accuracy, sub.Score, sub.TimeTaken,
		string(game.StateScored), id,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if n > 0 {
		return nil
	}
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM game_sessions WHERE id=?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.ErrSessionNotFound
		}
		return fmt.Errorf("check session: %w", err)
	}
	return game.ErrAlreadySubmitted
}
