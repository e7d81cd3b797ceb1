package move

import (
	"fmt"
	"strings"

	"github.com/domino14/freecell/card"
)

// Move transfers the top-most run of cards of one pile onto another pile.
// Source and Target are pile indexes into a board. Cards is the run being
// moved, in pile order (the first card is the deepest one in the run).
type Move struct {
	Source int
	Target int
	Cards  []card.Card
}

// New creates a move. It keeps its own copy of cards, so the caller is free
// to reuse the slice.
func New(source, target int, cards []card.Card) Move {
	cp := make([]card.Card, len(cards))
	copy(cp, cards)
	return Move{Source: source, Target: target, Cards: cp}
}

func (m Move) NumCards() int {
	return len(m.Cards)
}

// Inverse returns the move that would put the same run back where it came
// from. It is not necessarily legal.
func (m Move) Inverse() Move {
	return Move{Source: m.Target, Target: m.Source, Cards: m.Cards}
}

func (m Move) Equal(o Move) bool {
	if m.Source != o.Source || m.Target != o.Target || len(m.Cards) != len(o.Cards) {
		return false
	}
	for i := range m.Cards {
		if m.Cards[i] != o.Cards[i] {
			return false
		}
	}
	return true
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m Move) ShortDescription() string {
	shorts := make([]string, len(m.Cards))
	for i, c := range m.Cards {
		shorts[i] = c.Short()
	}
	return fmt.Sprintf("%d->%d %s", m.Source, m.Target, strings.Join(shorts, " "))
}

func (m Move) String() string {
	return fmt.Sprintf("<move from: %d to: %d cards: %v>", m.Source, m.Target, m.Cards)
}
