package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostcode/internal/game"
	"ghostcode/internal/store"
)

func newSession(id string) *game.Session {
	return &game.Session{
		ID:            id,
		OwnerID:       "user-1",
		Difficulty:    game.Easy,
		GeneratedCode: "AB12CD",
		State:         game.StateCreated,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	t.Parallel()
	m := store.NewMemory()
	require.NoError(t, m.Create(context.Background(), newSession("s1")))

	got, err := m.Get(context.Background(), "s1")
	require.NoError(t, err)
	got.GeneratedCode = "TAMPERED"

	again, err := m.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", again.GeneratedCode)
}

func TestMemoryGetMissing(t *testing.T) {
	t.Parallel()
	m := store.NewMemory()
	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestMemoryCompleteOnce(t *testing.T) {
	t.Parallel()
	m := store.NewMemory()
	require.NoError(t, m.Create(context.Background(), newSession("s1")))

	sub := game.Submission{SubmittedCode: "AB12CD", Accuracy: 100, Score: 200, TimeTaken: 10}
	require.NoError(t, m.Complete(context.Background(), "s1", sub))

	err := m.Complete(context.Background(), "s1", game.Submission{SubmittedCode: "XXXXXX"})
	assert.ErrorIs(t, err, game.ErrAlreadySubmitted)

	got, err := m.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, game.StateScored, got.State)
	assert.Equal(t, "AB12CD", got.SubmittedCode)
	assert.Equal(t, 200, got.Score)
}

func TestMemoryCompleteMissing(t *testing.T) {
	t.Parallel()
	m := store.NewMemory()
	err := m.Complete(context.Background(), "nope", game.Submission{})
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestMemoryCompleteConcurrent(t *testing.T) {
	t.Parallel()
	m := store.NewMemory()
	require.NoError(t, m.Create(context.Background(), newSession("s1")))

	const n = 100
	var wg sync.WaitGroup
	wins := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if m.Complete(context.Background(), "s1", game.Submission{Score: i}) == nil {
				wins <- i
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []int
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1)

	got, err := m.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, winners[0], got.Score)
}
