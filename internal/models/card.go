// internal/models/card.go
package models

import "fmt"

// Suit is carried for display only; it never affects comparison.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in construction order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// Symbol returns the single-rune suit glyph used in compact output.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// Rank orders Two lowest through Ace highest.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from lowest to highest.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankNames = map[Rank]string{
	Two: "Two", Three: "Three", Four: "Four", Five: "Five", Six: "Six",
	Seven: "Seven", Eight: "Eight", Nine: "Nine", Ten: "Ten",
	Jack: "Jack", Queen: "Queen", King: "King", Ace: "Ace",
}

var rankShort = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Short returns the one-character rank code ("T" for Ten).
func (r Rank) Short() string {
	if s, ok := rankShort[r]; ok {
		return s
	}
	return "?"
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. Compare cards with Compare, not ==,
// when deciding a battle: suits are ignored there.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Code returns the compact form, e.g. "A♠".
func (c Card) Code() string {
	return c.Rank.Short() + c.Suit.Symbol()
}

// Compare returns -1, 0 or +1 as a ranks below, equal to or above b.
func Compare(a, b Card) int {
	switch {
	case a.Rank < b.Rank:
		return -1
	case a.Rank > b.Rank:
		return 1
	default:
		return 0
	}
}

// Ties reports whether two cards share a rank.
func (c Card) Ties(other Card) bool {
	return Compare(c, other) == 0
}
