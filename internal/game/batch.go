// internal/game/batch.go
package game

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Games int
	// Seed derives every game's seed; 0 seeds from the clock.
	Seed int64
	// Workers bounds concurrent games; <= 0 uses runtime.NumCPU().
	Workers int
	// MaxRounds caps each game; <= 0 uses DefaultBatchMaxRounds.
	MaxRounds int
	Logger    logrus.FieldLogger
}

// DefaultBatchMaxRounds is the per-game round cap when BatchOptions leaves it unset.
const DefaultBatchMaxRounds = 10000

// BatchStats aggregates many independent games.
type BatchStats struct {
	Games       int     `json:"games"`
	DeckOneWins int     `json:"deckOneWins"`
	DeckTwoWins int     `json:"deckTwoWins"`
	Draws       int     `json:"draws"`
	Stalemates  int     `json:"stalemates"`
	Capped      int     `json:"capped"`
	TotalRounds int     `json:"totalRounds"`
	TotalWars   int     `json:"totalWars"`
	LongestGame int     `json:"longestGame"`
	DeepestWar  int     `json:"deepestWar"`
	AvgRounds   float64 `json:"avgRounds"`
}

// RunBatch plays opts.Games games concurrently. Game seeds are drawn up front
// from opts.Seed, so a batch is reproducible regardless of worker count.
func RunBatch(ctx context.Context, opts BatchOptions) (BatchStats, error) {
	if opts.Games <= 0 {
		return BatchStats{}, nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultBatchMaxRounds
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, opts.Games)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	results := make([]Result, opts.Games)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range seeds {
		eg.Go(func() error {
			g := NewWarGame(rand.New(rand.NewSource(seeds[i])))
			g.MaxRounds = maxRounds
			g.Logger = logger.WithField("batch_index", i)
			res, err := g.Play(egCtx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return BatchStats{}, err
	}

	stats := aggregateResults(results)
	logger.WithFields(logrus.Fields{
		"games":   stats.Games,
		"deck1":   stats.DeckOneWins,
		"deck2":   stats.DeckTwoWins,
		"draws":   stats.Draws,
		"workers": workers,
	}).Info("Batch complete")
	return stats, nil
}

func aggregateResults(results []Result) BatchStats {
	var stats BatchStats
	for _, r := range results {
		stats.Games++
		switch r.Winner {
		case VerdictDeckOne:
			stats.DeckOneWins++
		case VerdictDeckTwo:
			stats.DeckTwoWins++
		default:
			stats.Draws++
		}
		if r.Stalemate {
			stats.Stalemates++
		}
		if r.Capped {
			stats.Capped++
		}
		stats.TotalRounds += r.Rounds
		stats.TotalWars += r.Wars
		if r.Rounds > stats.LongestGame {
			stats.LongestGame = r.Rounds
		}
		if r.DeepestWar > stats.DeepestWar {
			stats.DeepestWar = r.DeepestWar
		}
	}
	if stats.Games > 0 {
		stats.AvgRounds = float64(stats.TotalRounds) / float64(stats.Games)
	}
	return stats
}
