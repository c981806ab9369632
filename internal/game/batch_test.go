package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatchAggregates(t *testing.T) {
	stats, err := RunBatch(context.Background(), BatchOptions{
		Games:     16,
		Seed:      42,
		Workers:   4,
		MaxRounds: 2000,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 16, stats.Games)
	assert.Equal(t, 16, stats.DeckOneWins+stats.DeckTwoWins+stats.Draws)
	assert.GreaterOrEqual(t, stats.TotalRounds, 16)
	assert.LessOrEqual(t, stats.LongestGame, 2000)
	assert.InDelta(t, float64(stats.TotalRounds)/16, stats.AvgRounds, 1e-9)
}

func TestRunBatchIsReproducible(t *testing.T) {
	opts := BatchOptions{Games: 8, Seed: 7, MaxRounds: 1500, Logger: quietLogger()}

	opts.Workers = 1
	serial, err := RunBatch(context.Background(), opts)
	require.NoError(t, err)

	opts.Workers = 8
	parallel, err := RunBatch(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunBatchEmpty(t *testing.T) {
	stats, err := RunBatch(context.Background(), BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, BatchStats{}, stats)
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunBatch(ctx, BatchOptions{Games: 4, Seed: 1, Logger: quietLogger()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregateResults(t *testing.T) {
	stats := aggregateResults([]Result{
		{Winner: VerdictDeckOne, Rounds: 10, Wars: 1, DeepestWar: 1},
		{Winner: VerdictDeckTwo, Rounds: 30, Wars: 3, DeepestWar: 2, Capped: true},
		{Winner: VerdictDraw, Rounds: 20, Stalemate: true},
	})
	assert.Equal(t, BatchStats{
		Games:       3,
		DeckOneWins: 1,
		DeckTwoWins: 1,
		Draws:       1,
		Stalemates:  1,
		Capped:      1,
		TotalRounds: 60,
		TotalWars:   4,
		LongestGame: 30,
		DeepestWar:  2,
		AvgRounds:   20,
	}, stats)
}

func TestGameStore(t *testing.T) {
	store := NewGameStore()
	g, _ := setupTestGame(nil, nil)

	store.AddGame(g)
	got, ok := store.GetGame(g.ID)
	require.True(t, ok)
	assert.Same(t, g, got)
	assert.Equal(t, []uuid.UUID{g.ID}, store.IDs())

	store.DeleteGame(g.ID)
	_, ok = store.GetGame(g.ID)
	assert.False(t, ok)
	assert.Empty(t, store.IDs())
}
