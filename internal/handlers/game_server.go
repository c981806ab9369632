// internal/handlers/game_server.go
package handlers

import (
	"math/rand"
	"time"

	"github.com/jason-s-yu/war/internal/game"
	"github.com/sirupsen/logrus"
)

// GameServer holds the live games and the settings new games are created with.
type GameServer struct {
	GameStore *game.GameStore
	Logger    logrus.FieldLogger

	RoundDelay time.Duration
	MaxRounds  int
	Workers    int
}

func NewGameServer(logger logrus.FieldLogger) *GameServer {
	return &GameServer{
		GameStore: game.NewGameStore(),
		Logger:    logger,
	}
}

// NewWarGame creates a game seeded with seed (0 = time seeded), registers
// it in the store and applies the server's pacing settings.
func (gs *GameServer) NewWarGame(seed int64) *game.WarGame {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := game.NewWarGame(rand.New(rand.NewSource(seed)))
	g.RoundDelay = gs.RoundDelay
	g.MaxRounds = gs.MaxRounds
	g.Logger = gs.Logger.WithField("seed", seed)
	gs.GameStore.AddGame(g)
	return g
}
