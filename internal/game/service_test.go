package game_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostcode/internal/game"
	"ghostcode/internal/store"
)

// zeroSource always draws index 0, producing all-"A" codes.
type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func newService() *game.Service {
	return game.NewService(store.NewMemory(), game.NewGenerator(zeroSource{}))
}

func TestStartDisclosesCodeOnce(t *testing.T) {
	t.Parallel()
	svc := newService()

	res, err := svc.Start(context.Background(), "user-1", "easy")
	require.NoError(t, err)
	assert.Equal(t, game.Easy, res.Difficulty)
	assert.Equal(t, "AAAAAA", res.Code)
	assert.NotEmpty(t, res.SessionID)
}

func TestStartInvalidDifficulty(t *testing.T) {
	t.Parallel()
	svc := newService()

	_, err := svc.Start(context.Background(), "user-1", "extreme")
	assert.ErrorIs(t, err, game.ErrInvalidDifficulty)
}

func TestSubmitScoresCaseInsensitively(t *testing.T) {
	t.Parallel()
	svc := newService()

	started, err := svc.Start(context.Background(), "user-1", "easy")
	require.NoError(t, err)

	res, err := svc.Submit(context.Background(), "user-1", started.SessionID, "aaaaaa", 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Accuracy)
	assert.Equal(t, 200, res.Score) // (100 base + 50s left * 2) * 1.0
	assert.Equal(t, started.Code, res.CorrectCode)
}

func TestSubmitPartialAndShortCodes(t *testing.T) {
	t.Parallel()
	svc := newService()

	// Short submission: 3 of 6 positions compared, all matching → 50%.
	started, err := svc.Start(context.Background(), "user-1", "easy")
	require.NoError(t, err)
	res, err := svc.Submit(context.Background(), "user-1", started.SessionID, "AAA", 10)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.Accuracy, 1e-9)

	// Over-long submission: extras neither match nor dilute.
	started2, err := svc.Start(context.Background(), "user-1", "easy")
	require.NoError(t, err)
	res2, err := svc.Submit(context.Background(), "user-1", started2.SessionID, "AAAAAAZZ", 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res2.Accuracy)
}

func TestSubmitUnknownSession(t *testing.T) {
	t.Parallel()
	svc := newService()

	_, err := svc.Submit(context.Background(), "user-1", "no-such-id", "AAAAAA", 10)
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestSubmitNotOwner(t *testing.T) {
	t.Parallel()
	st := store.NewMemory()
	svc := game.NewService(st, game.NewGenerator(zeroSource{}))

	started, err := svc.Start(context.Background(), "owner", "easy")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "intruder", started.SessionID, "AAAAAA", 10)
	assert.ErrorIs(t, err, game.ErrNotOwner)

	// Rejection left no trace on the session.
	sess, err := st.Get(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, game.StateCreated, sess.State)
	assert.Empty(t, sess.SubmittedCode)
}

func TestSubmitExactlyOnce(t *testing.T) {
	t.Parallel()
	st := store.NewMemory()
	svc := game.NewService(st, game.NewGenerator(zeroSource{}))

	started, err := svc.Start(context.Background(), "user-1", "medium")
	require.NoError(t, err)

	first, err := svc.Submit(context.Background(), "user-1", started.SessionID, "AAAAAAAAA", 20)
	require.NoError(t, err)

	// Second submit with a different payload is rejected, not recomputed.
	_, err = svc.Submit(context.Background(), "user-1", started.SessionID, "ZZZZZZZZZ", 5)
	assert.ErrorIs(t, err, game.ErrAlreadySubmitted)

	sess, err := st.Get(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAA", sess.SubmittedCode)
	assert.Equal(t, first.Score, sess.Score)
	assert.Equal(t, first.Accuracy, sess.Accuracy)
	assert.Equal(t, 20, sess.TimeTaken)
}

func TestConcurrentSubmitsOneWinner(t *testing.T) {
	t.Parallel()
	st := store.NewMemory()
	svc := game.NewService(st, game.NewGenerator(zeroSource{}))

	started, err := svc.Start(context.Background(), "user-1", "hard")
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), "user-1", started.SessionID, "AAAAAAAAAAAA", i)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, game.ErrAlreadySubmitted) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent submit must win")

	// Persisted result matches whichever call committed.
	sess, err := st.Get(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, game.StateScored, sess.State)
	assert.Equal(t, "AAAAAAAAAAAA", sess.SubmittedCode)
}
