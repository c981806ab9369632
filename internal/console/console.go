// Package console prints a running commentary of a game for a human reader.
package console

import (
	"fmt"
	"io"

	"github.com/jason-s-yu/war/internal/game"
)

// Printer writes game events as plain text lines.
type Printer struct {
	w io.Writer
	// Quiet drops per-round lines and keeps only the final verdict.
	Quiet bool
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// BroadcastFn adapts the printer to WarGame.BroadcastFn.
func (p *Printer) BroadcastFn(ev game.GameEvent) {
	switch ev.Type {
	case game.EventClash:
		if !p.Quiet && ev.Card1 != nil && ev.Card2 != nil {
			fmt.Fprintf(p.w, "%s of %s vs %s of %s\n", ev.Card1.Rank, ev.Card1.Suit, ev.Card2.Rank, ev.Card2.Suit)
		}
	case game.EventWar:
		if !p.Quiet {
			fmt.Fprintln(p.w, "War..")
		}
	case game.EventRoundResult:
		if p.Quiet {
			return
		}
		switch ev.Outcome {
		case game.DeckOneWins:
			fmt.Fprintln(p.w, "Deck one wins")
		case game.DeckTwoWins:
			fmt.Fprintln(p.w, "Deck two wins")
		}
	case game.EventStalemate:
		if !p.Quiet {
			fmt.Fprintln(p.w, "Not enough cards to continue the war")
		}
	case game.EventGameEnd:
		if ev.Result != nil {
			p.PrintResult(*ev.Result)
		}
	}
}

// PrintResult writes the final verdict and remaining card counts.
func (p *Printer) PrintResult(res game.Result) {
	switch res.Winner {
	case game.VerdictDeckOne:
		fmt.Fprintln(p.w, "Deck one wins.")
	case game.VerdictDeckTwo:
		fmt.Fprintln(p.w, "Deck two wins.")
	default:
		fmt.Fprintln(p.w, "Draw.")
	}
	fmt.Fprintf(p.w, "Deck one has %d cards remaining\n", res.DeckOneCards)
	fmt.Fprintf(p.w, "Deck two has %d cards remaining\n", res.DeckTwoCards)
}

// PrintBatch writes a summary of many games.
func (p *Printer) PrintBatch(stats game.BatchStats) {
	fmt.Fprintf(p.w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(p.w, "Deck one wins: %d\n", stats.DeckOneWins)
	fmt.Fprintf(p.w, "Deck two wins: %d\n", stats.DeckTwoWins)
	fmt.Fprintf(p.w, "Draws: %d\n", stats.Draws)
	fmt.Fprintf(p.w, "Stalemates: %d, capped: %d\n", stats.Stalemates, stats.Capped)
	fmt.Fprintf(p.w, "Average rounds: %.1f (longest %d), deepest war: %d\n", stats.AvgRounds, stats.LongestGame, stats.DeepestWar)
}
