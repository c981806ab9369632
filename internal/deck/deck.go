// internal/deck/deck.go
package deck

import (
	"errors"
	"math/rand"
	"time"

	"github.com/jason-s-yu/war/internal/models"
)

// ErrEmptyDeck is returned by Draw on a deck with no cards. Callers check
// IsEmpty first during play, so seeing it means an invariant broke.
var ErrEmptyDeck = errors.New("draw from empty deck")

// Deck is an ordered pile; index 0 is the top.
type Deck struct {
	cards []models.Card
}

// New builds a deck holding the given cards top-first.
func New(cards ...models.Card) *Deck {
	d := &Deck{cards: make([]models.Card, 0, len(cards))}
	d.cards = append(d.cards, cards...)
	return d
}

// NewFull returns the 52-card set, one card per suit/rank pair.
func NewFull() *Deck {
	d := &Deck{cards: make([]models.Card, 0, len(models.Suits)*len(models.Ranks))}
	for _, suit := range models.Suits {
		for _, rank := range models.Ranks {
			d.cards = append(d.cards, models.NewCard(suit, rank))
		}
	}
	return d
}

// Shuffle permutes the deck in place. A nil rng falls back to a time-seeded source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (models.Card, error) {
	if len(d.cards) == 0 {
		return models.Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Insert appends cards to the bottom in the order given.
func (d *Deck) Insert(cards ...models.Card) {
	d.cards = append(d.cards, cards...)
}

func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck contents, top first.
func (d *Deck) Cards() []models.Card {
	out := make([]models.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Split divides the deck into two new decks. The first gets len/2 cards
// from the top, the second the remainder, so an odd card goes to the second.
func (d *Deck) Split() (*Deck, *Deck) {
	half := len(d.cards) / 2
	return New(d.cards[:half]...), New(d.cards[half:]...)
}
