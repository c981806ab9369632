// cmd/tail/main.go follows the Redis event queue and prints each game as it is played.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/jason-s-yu/war/internal/cache"
	"github.com/jason-s-yu/war/internal/config"
	"github.com/jason-s-yu/war/internal/console"
	"github.com/jason-s-yu/war/internal/game"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}
	cache.QueueName = cfg.EventQueue
	if err := cache.ConnectRedis(addr, cfg.RedisDB); err != nil {
		logger.Fatalf("tail needs redis: %v", err)
	}
	defer cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := console.NewPrinter(os.Stdout)
	printer.Quiet = cfg.Quiet

	logger.WithField("queue", cfg.EventQueue).Info("Following game events")
	err := cache.ConsumeGameEvents(ctx, func(rec cache.GameEventRecord) {
		var ev game.GameEvent
		if err := json.Unmarshal(rec.Event, &ev); err != nil {
			logger.WithError(err).WithField("game_id", rec.GameID).Warn("Undecodable event")
			return
		}
		if ev.Type == game.EventGameStart {
			logger.WithField("game_id", rec.GameID).Info("Game started")
		}
		printer.BroadcastFn(ev)
	}, func(err error) {
		logger.WithError(err).Warn("Skipping queue entry")
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("tail stopped: %v", err)
	}
	logger.Info("Tail shutdown complete.")
}
