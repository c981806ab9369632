// internal/game/battle.go
package game

import (
	"encoding/json"
	"fmt"

	"github.com/jason-s-yu/war/internal/deck"
	"github.com/jason-s-yu/war/internal/models"
)

// Outcome is the result of one battle.
type Outcome int

const (
	Stalemate Outcome = iota
	DeckOneWins
	DeckTwoWins
)

func (o Outcome) String() string {
	switch o {
	case Stalemate:
		return "stalemate"
	case DeckOneWins:
		return "deck_one_wins"
	case DeckTwoWins:
		return "deck_two_wins"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "stalemate":
		*o = Stalemate
	case "deck_one_wins":
		*o = DeckOneWins
	case "deck_two_wins":
		*o = DeckTwoWins
	default:
		return fmt.Errorf("unknown outcome %q", s)
	}
	return nil
}

// warCommitment is how many cards each deck must still hold for a war to
// proceed: one face down, one to compare.
const warCommitment = 2

// Clash is a single comparison of two face-up cards.
type Clash struct {
	One    models.Card
	Two    models.Card
	Result int
}

// BattleReport describes everything a battle did to the decks.
type BattleReport struct {
	Outcome Outcome
	// Clashes are in draw order; every clash but the last was a tie that went to war.
	Clashes []Clash
	Wars    int
	// Awarded counts cards appended to the winner's deck.
	Awarded int
	// Forfeited holds cards removed from play by a stalemate.
	Forfeited []models.Card
}

// Battle resolves one round between two non-empty decks, mutating both.
func Battle(one, two *deck.Deck) (Outcome, error) {
	report, err := ResolveBattle(one, two)
	return report.Outcome, err
}

// ResolveBattle is Battle with a full account of the round.
//
// A tie opens a war: both sides add one more card to a pending pool and the
// next pair is compared. When a pair finally differs the winner takes that
// pair, then every pending pool from the innermost war outwards. If a war
// cannot be fought because a deck holds fewer than two cards the battle is
// a Stalemate and all cards drawn in it are forfeited.
func ResolveBattle(one, two *deck.Deck) (BattleReport, error) {
	var report BattleReport
	var pools [][]models.Card

	for {
		if one.IsEmpty() || two.IsEmpty() {
			return report, fmt.Errorf("battle at war depth %d: %w", len(pools), deck.ErrEmptyDeck)
		}
		cardOne, err := one.Draw()
		if err != nil {
			return report, fmt.Errorf("deck one: %w", err)
		}
		cardTwo, err := two.Draw()
		if err != nil {
			return report, fmt.Errorf("deck two: %w", err)
		}

		result := models.Compare(cardOne, cardTwo)
		report.Clashes = append(report.Clashes, Clash{One: cardOne, Two: cardTwo, Result: result})

		switch result {
		case 1:
			report.Outcome = DeckOneWins
			report.Awarded = award(one, cardOne, cardTwo, pools)
			return report, nil
		case -1:
			report.Outcome = DeckTwoWins
			report.Awarded = award(two, cardOne, cardTwo, pools)
			return report, nil
		case 0:
			if one.Len() < warCommitment || two.Len() < warCommitment {
				report.Outcome = Stalemate
				for _, pool := range pools {
					report.Forfeited = append(report.Forfeited, pool...)
				}
				report.Forfeited = append(report.Forfeited, cardOne, cardTwo)
				return report, nil
			}
			extraOne, err := one.Draw()
			if err != nil {
				return report, fmt.Errorf("deck one face-down card: %w", err)
			}
			extraTwo, err := two.Draw()
			if err != nil {
				return report, fmt.Errorf("deck two face-down card: %w", err)
			}
			pools = append(pools, []models.Card{cardOne, cardTwo, extraOne, extraTwo})
			report.Wars++
		default:
			panic(fmt.Sprintf("unreachable: card comparison returned %d", result))
		}
	}
}

// award gives the deciding pair and then each pending pool, innermost first,
// to the winning deck. It returns the number of cards handed over.
func award(winner *deck.Deck, cardOne, cardTwo models.Card, pools [][]models.Card) int {
	winner.Insert(cardOne, cardTwo)
	n := 2
	for i := len(pools) - 1; i >= 0; i-- {
		winner.Insert(pools[i]...)
		n += len(pools[i])
	}
	return n
}
