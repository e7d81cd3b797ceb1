// Package testhelpers builds small boards for tests.
package testhelpers

import (
	"strings"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/card"
)

const (
	numTableaus    = 8
	numFreeCells   = 4
	numFoundations = 4
)

// Cards parses a space-separated list of cards in either text form.
// It panics on bad input.
func Cards(s string) []card.Card {
	var out []card.Card
	for _, f := range strings.Fields(s) {
		c, err := card.FromString(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// Layout describes the contents of a standard 16-pile board by pile kind.
// Missing entries are empty piles.
type Layout struct {
	Tableaus    []string
	FreeCells   []string
	Foundations []string
}

// Build makes a board with the standard pile sequence: 8 tableaus, 4 free
// cells, 4 foundations.
func (l Layout) Build() *board.Board {
	piles := make([]*board.Pile, 0, numTableaus+numFreeCells+numFoundations)
	add := func(kind board.PileKind, n int, contents []string) {
		for i := 0; i < n; i++ {
			var cs []card.Card
			if i < len(contents) {
				cs = Cards(contents[i])
			}
			piles = append(piles, board.NewPile(kind, cs...))
		}
	}
	add(board.Tableau, numTableaus, l.Tableaus)
	add(board.FreeCell, numFreeCells, l.FreeCells)
	add(board.Foundation, numFoundations, l.Foundations)
	return board.New(piles...)
}

// SuitRun returns the cards of suit s from ace up to and including top, as
// a space-separated string.
func SuitRun(s card.Suit, top card.Rank) string {
	var out []string
	for r := card.Ace; r <= top; r++ {
		out = append(out, card.New(r, s).Short())
	}
	return strings.Join(out, " ")
}

// OneMoveBoard is a single ace of spades in a free cell, everything else
// empty. Moving it to a foundation wins.
func OneMoveBoard() *board.Board {
	return Layout{FreeCells: []string{"AS"}}.Build()
}

// EndgameBoard holds a full deck with three cards left to play. It is won in
// exactly three moves at best: KH, then QC, then KC.
func EndgameBoard() *board.Board {
	return Layout{
		Tableaus: []string{"QC KH", "KC"},
		Foundations: []string{
			SuitRun(card.Clubs, card.Jack),
			SuitRun(card.Diamonds, card.King),
			SuitRun(card.Hearts, card.Queen),
			SuitRun(card.Spades, card.King),
		},
	}.Build()
}

// StuckBoard has a small, finite state space that contains cycles and no
// win: nothing can ever play the three or the five.
func StuckBoard() *board.Board {
	return board.New(
		board.NewPile(board.Tableau, Cards("AS 3H")...),
		board.NewPile(board.Tableau, Cards("5D")...),
		board.NewPile(board.FreeCell),
		board.NewPile(board.Foundation),
	)
}

// Reachable counts the distinct boards reachable from b through LegalMoves,
// b included.
func Reachable(b *board.Board) int {
	seen := []*board.Board{b}
	queue := []*board.Board{b}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, m := range cur.LegalMoves() {
			nb, ok := cur.ApplyMove(m)
			if !ok {
				continue
			}
			dup := false
			for _, s := range seen {
				if s.Equal(nb) {
					dup = true
					break
				}
			}
			if !dup {
				seen = append(seen, nb)
				queue = append(queue, nb)
			}
		}
	}
	return len(seen)
}
