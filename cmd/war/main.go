// cmd/war/main.go runs War simulations on the console.
package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/jason-s-yu/war/internal/cache"
	"github.com/jason-s-yu/war/internal/config"
	"github.com/jason-s-yu/war/internal/console"
	"github.com/jason-s-yu/war/internal/game"
	"github.com/sirupsen/logrus"
)

var flags Flags

type Flags struct {
	verbose bool
	quiet   bool
}

func main() {
	// Parse command line flags
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-v":
			flags.verbose = true
		case "-q":
			flags.quiet = true
		}
	}

	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	if flags.verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.Debug("Verbose mode enabled")
	}

	if cfg.RedisAddr != "" {
		cache.QueueName = cfg.EventQueue
		if err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
			logger.WithError(err).Warn("Redis unavailable, game events will not be published")
		} else {
			defer cache.Close()
			logger.WithField("queue", cfg.EventQueue).Info("Publishing game events to Redis")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := console.NewPrinter(os.Stdout)
	printer.Quiet = cfg.Quiet || flags.quiet

	if cfg.Games > 1 {
		stats, err := game.RunBatch(ctx, game.BatchOptions{
			Games:     cfg.Games,
			Seed:      cfg.Seed,
			Workers:   cfg.Workers,
			MaxRounds: cfg.MaxRounds,
			Logger:    logger,
		})
		if errors.Is(err, context.Canceled) {
			logger.Info("Batch interrupted")
			return
		}
		if err != nil {
			logger.Fatalf("batch failed: %v", err)
		}
		printer.PrintBatch(stats)
		return
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := game.NewWarGame(rand.New(rand.NewSource(seed)))
	g.RoundDelay = cfg.RoundDelay
	g.MaxRounds = cfg.MaxRounds
	g.Logger = logger.WithField("seed", seed)
	g.BroadcastFn = printer.BroadcastFn

	if _, err := g.Play(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.WithField("round", g.Rounds).Info("Interrupted")
			return
		}
		logger.Fatalf("game %s failed: %v", g.ID, err)
	}
}
