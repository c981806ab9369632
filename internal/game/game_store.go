package game

import (
	"sync"

	"github.com/google/uuid"
)

// GameStore tracks games that are currently being played.
type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*WarGame
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*WarGame),
	}
}

func (s *GameStore) AddGame(game *WarGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
}

func (s *GameStore) GetGame(id uuid.UUID) (*WarGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.games[id]
	return g, exists
}

func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// IDs returns the IDs of every stored game, in no particular order.
func (s *GameStore) IDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids
}
