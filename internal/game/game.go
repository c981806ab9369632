// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/war/internal/cache"
	"github.com/jason-s-yu/war/internal/deck"
	"github.com/sirupsen/logrus"
)

// Verdict is the final result of a whole game.
type Verdict string

const (
	VerdictDeckOne Verdict = "deck_one"
	VerdictDeckTwo Verdict = "deck_two"
	VerdictDraw    Verdict = "draw"
)

// Result summarises a finished (or capped) game.
type Result struct {
	GameID       uuid.UUID `json:"gameId"`
	Winner       Verdict   `json:"winner"`
	DeckOneCards int       `json:"deckOneCards"`
	DeckTwoCards int       `json:"deckTwoCards"`
	Rounds       int       `json:"rounds"`
	Wars         int       `json:"wars"`
	DeepestWar   int       `json:"deepestWar"`
	Forfeited    int       `json:"forfeited"`
	Stalemate    bool      `json:"stalemate"`
	Capped       bool      `json:"capped"`
}

// WarGame holds the state of one simulation. It is not safe for concurrent use;
// the two decks belong to the game alone.
type WarGame struct {
	ID uuid.UUID

	DeckOne *deck.Deck
	DeckTwo *deck.Deck

	Rounds     int
	Wars       int
	DeepestWar int
	Forfeited  int

	// RoundDelay pauses between rounds. Zero disables pacing.
	RoundDelay time.Duration

	// MaxRounds stops a game that has not finished after this many rounds. Zero means no limit.
	MaxRounds int

	GameOver   bool
	Stalemated bool
	Capped     bool

	// BroadcastFn receives every game event. If nil, no broadcast is done.
	BroadcastFn func(ev GameEvent)

	Logger logrus.FieldLogger

	actionIndex int
}

// NewWarGame shuffles a full deck with rng and deals it into two halves.
func NewWarGame(rng *rand.Rand) *WarGame {
	full := deck.NewFull()
	full.Shuffle(rng)
	one, two := full.Split()
	return NewWarGameFromDecks(one, two)
}

// NewWarGameFromDecks starts a game from prepared decks, useful for fixed scenarios.
func NewWarGameFromDecks(one, two *deck.Deck) *WarGame {
	id, _ := uuid.NewRandom()
	return &WarGame{
		ID:      id,
		DeckOne: one,
		DeckTwo: two,
		Logger:  logrus.StandardLogger(),
	}
}

func (g *WarGame) log() logrus.FieldLogger {
	if g.Logger == nil {
		g.Logger = logrus.StandardLogger()
	}
	return g.Logger.WithField("game_id", g.ID)
}

// PlayRound runs one battle and broadcasts what happened. It must not be
// called once the game is over.
func (g *WarGame) PlayRound() (Outcome, error) {
	if g.GameOver {
		return Stalemate, fmt.Errorf("game %s is already over", g.ID)
	}
	g.Rounds++

	report, err := ResolveBattle(g.DeckOne, g.DeckTwo)
	if err != nil {
		return Stalemate, fmt.Errorf("round %d: %w", g.Rounds, err)
	}

	g.Wars += report.Wars
	if report.Wars > g.DeepestWar {
		g.DeepestWar = report.Wars
	}
	g.Forfeited += len(report.Forfeited)

	for depth, clash := range report.Clashes {
		g.broadcast(GameEvent{
			Type:  EventClash,
			Round: g.Rounds,
			Depth: depth,
			Card1: buildEventCard(clash.One),
			Card2: buildEventCard(clash.Two),
		})
		if depth < report.Wars {
			g.broadcast(GameEvent{Type: EventWar, Round: g.Rounds, Depth: depth + 1})
		}
	}

	fields := logrus.Fields{
		"round":   g.Rounds,
		"outcome": report.Outcome.String(),
		"wars":    report.Wars,
		"deck1":   g.DeckOne.Len(),
		"deck2":   g.DeckTwo.Len(),
	}
	if report.Outcome == Stalemate {
		g.Stalemated = true
		g.log().WithFields(fields).WithField("forfeited", len(report.Forfeited)).Info("War cannot continue, stalemate")
		g.broadcast(GameEvent{
			Type:  EventStalemate,
			Round: g.Rounds,
			Payload: map[string]interface{}{
				"forfeited": len(report.Forfeited),
			},
		})
		return report.Outcome, nil
	}

	g.log().WithFields(fields).Debug("Round resolved")
	g.broadcast(GameEvent{
		Type:    EventRoundResult,
		Round:   g.Rounds,
		Outcome: report.Outcome,
		Payload: map[string]interface{}{
			"awarded": report.Awarded,
			"deck1":   g.DeckOne.Len(),
			"deck2":   g.DeckTwo.Len(),
		},
	})
	return report.Outcome, nil
}

// Play runs rounds until a deck is empty, a war stalemates, MaxRounds is
// reached or ctx is done. A cancelled context returns ctx.Err().
func (g *WarGame) Play(ctx context.Context) (Result, error) {
	g.log().WithFields(logrus.Fields{
		"deck1": g.DeckOne.Len(),
		"deck2": g.DeckTwo.Len(),
	}).Debug("Game started")
	g.broadcast(GameEvent{
		Type: EventGameStart,
		Payload: map[string]interface{}{
			"deck1": g.DeckOne.Len(),
			"deck2": g.DeckTwo.Len(),
		},
	})

	for !g.DeckOne.IsEmpty() && !g.DeckTwo.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		if g.MaxRounds > 0 && g.Rounds >= g.MaxRounds {
			g.Capped = true
			g.log().WithField("max_rounds", g.MaxRounds).Warn("Round limit reached, ending game")
			break
		}

		outcome, err := g.PlayRound()
		if err != nil {
			return g.Result(), err
		}
		if outcome == Stalemate {
			break
		}

		if g.RoundDelay > 0 {
			timer := time.NewTimer(g.RoundDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return g.Result(), ctx.Err()
			case <-timer.C:
			}
		}
	}

	return g.finish(), nil
}

func (g *WarGame) finish() Result {
	g.GameOver = true
	res := g.Result()
	g.log().WithFields(logrus.Fields{
		"winner": res.Winner,
		"rounds": res.Rounds,
		"deck1":  res.DeckOneCards,
		"deck2":  res.DeckTwoCards,
	}).Info("Game over")
	g.broadcast(GameEvent{Type: EventGameEnd, Round: g.Rounds, Result: &res})
	return res
}

// Result reports the current tally. The deck holding strictly more cards
// wins; equal counts are a draw.
func (g *WarGame) Result() Result {
	one, two := g.DeckOne.Len(), g.DeckTwo.Len()
	winner := VerdictDraw
	switch {
	case one > two:
		winner = VerdictDeckOne
	case two > one:
		winner = VerdictDeckTwo
	}
	return Result{
		GameID:       g.ID,
		Winner:       winner,
		DeckOneCards: one,
		DeckTwoCards: two,
		Rounds:       g.Rounds,
		Wars:         g.Wars,
		DeepestWar:   g.DeepestWar,
		Forfeited:    g.Forfeited,
		Stalemate:    g.Stalemated,
		Capped:       g.Capped,
	}
}

func (g *WarGame) broadcast(ev GameEvent) {
	ev.GameID = g.ID
	g.logAction(ev)
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// logAction pushes the event to the Redis history list when Redis is
// connected. Pushes are synchronous so the list keeps event order.
func (g *WarGame) logAction(ev GameEvent) {
	g.actionIndex++
	if cache.Rdb == nil {
		return
	}
	record := cache.GameEventRecord{
		GameID:     g.ID,
		EventIndex: g.actionIndex,
		EventType:  string(ev.Type),
		Event:      convertEventToBytes(ev),
		Timestamp:  time.Now().UnixMilli(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.PublishGameEvent(ctx, record); err != nil {
		g.log().WithError(err).Warnf("Failed to publish event %d", record.EventIndex)
	}
}
