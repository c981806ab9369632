package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrderIsTotal(t *testing.T) {
	require.Len(t, Ranks, 13)
	for i, a := range Ranks {
		for j, b := range Ranks {
			got := Compare(Card{Suit: Hearts, Rank: a}, Card{Suit: Spades, Rank: b})
			switch {
			case i < j:
				assert.Equal(t, -1, got, "%s vs %s", a, b)
			case i > j:
				assert.Equal(t, 1, got, "%s vs %s", a, b)
			default:
				assert.Equal(t, 0, got, "%s vs %s", a, b)
			}
		}
	}
}

func TestCompareIgnoresSuit(t *testing.T) {
	fiveClubs := NewCard(Clubs, Five)
	fiveHearts := NewCard(Hearts, Five)

	assert.True(t, fiveClubs.Ties(fiveHearts))
	assert.NotEqual(t, fiveClubs, fiveHearts, "tied cards are not identical")
	assert.Equal(t, 1, Compare(NewCard(Hearts, Ace), NewCard(Spades, King)))
	assert.Equal(t, -1, Compare(NewCard(Spades, Two), NewCard(Hearts, Three)))
}

func TestCompareIsTransitive(t *testing.T) {
	for _, a := range Ranks {
		for _, b := range Ranks {
			for _, c := range Ranks {
				ca, cb, cc := Card{Rank: a}, Card{Rank: b}, Card{Rank: c}
				if Compare(ca, cb) < 0 && Compare(cb, cc) < 0 {
					assert.Equal(t, -1, Compare(ca, cc))
				}
			}
		}
	}
}

func TestCardStrings(t *testing.T) {
	assert.Equal(t, "Ace of Spades", NewCard(Spades, Ace).String())
	assert.Equal(t, "A♠", NewCard(Spades, Ace).Code())
	assert.Equal(t, "T♦", NewCard(Diamonds, Ten).Code())
	assert.Equal(t, "Rank(1)", Rank(1).String())
	assert.False(t, Rank(1).Valid())
	assert.True(t, Ace.Valid())
}
