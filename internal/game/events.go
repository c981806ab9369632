// internal/game/events.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/war/internal/models"
)

// GameEventType names an event broadcast to observers.
type GameEventType string

const (
	EventGameStart   GameEventType = "game_start"   // decks dealt
	EventClash       GameEventType = "game_clash"   // one pair of cards compared
	EventWar         GameEventType = "game_war"     // tie, each side commits a face-down card
	EventRoundResult GameEventType = "game_round"   // decisive round result
	EventStalemate   GameEventType = "game_stalemate"
	EventGameEnd     GameEventType = "game_end"
)

// EventCard describes a card inside an event payload.
type EventCard struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
	Code string `json:"code"`
}

func buildEventCard(c models.Card) *EventCard {
	return &EventCard{
		Rank: c.Rank.String(),
		Suit: c.Suit.String(),
		Code: c.Code(),
	}
}

// GameEvent is delivered to BroadcastFn. Fields not relevant to Type are omitted.
type GameEvent struct {
	Type   GameEventType `json:"type"`
	GameID uuid.UUID     `json:"gameId"`
	Round  int           `json:"round,omitempty"`
	Card1  *EventCard    `json:"card1,omitempty"`
	Card2  *EventCard    `json:"card2,omitempty"`

	// Depth is the war level of a clash or war event; 0 is the opening clash.
	Depth int `json:"depth,omitempty"`

	Outcome Outcome `json:"outcome,omitempty"`
	Result  *Result `json:"result,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`
}
