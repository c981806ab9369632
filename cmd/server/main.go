// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/jason-s-yu/war/internal/cache"
	"github.com/jason-s-yu/war/internal/config"
	"github.com/jason-s-yu/war/internal/handlers"
	"github.com/jason-s-yu/war/internal/middleware"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	if cfg.RedisAddr != "" {
		cache.QueueName = cfg.EventQueue
		if err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
			logger.WithError(err).Warn("Redis unavailable, game events will not be published")
		} else {
			defer cache.Close()
		}
	}

	srv := handlers.NewGameServer(logger)
	srv.RoundDelay = cfg.RoundDelay
	srv.MaxRounds = cfg.MaxRounds
	srv.Workers = cfg.Workers

	mux := http.NewServeMux()
	mux.HandleFunc("/", handlers.PingHandler)

	// spectator stream: each connection plays a fresh game
	mux.Handle("/game/ws/", middleware.LogMiddleware(logger)(
		handlers.GameWSHandler(logger, srv),
	))
	mux.Handle("/game/list", middleware.LogMiddleware(logger)(
		handlers.ListGamesHandler(srv),
	))
	mux.Handle("/game/batch", middleware.LogMiddleware(logger)(
		handlers.BatchHandler(srv),
	))

	addr := ":" + cfg.Port
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
