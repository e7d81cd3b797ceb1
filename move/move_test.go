package move

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/card"
)

func TestNewCopiesCards(t *testing.T) {
	is := is.New(t)
	cards := []card.Card{card.New(card.King, card.Spades), card.New(card.Queen, card.Hearts)}
	m := New(0, 3, cards)
	cards[0] = card.New(card.Ace, card.Clubs)
	is.Equal(m.Cards[0], card.New(card.King, card.Spades))
	is.Equal(m.NumCards(), 2)
}

func TestInverse(t *testing.T) {
	is := is.New(t)
	m := New(2, 9, []card.Card{card.New(card.Five, card.Diamonds)})
	inv := m.Inverse()
	is.Equal(inv.Source, 9)
	is.Equal(inv.Target, 2)
	is.True(inv.Inverse().Equal(m))
	is.True(!inv.Equal(m))
}

func TestShortDescription(t *testing.T) {
	is := is.New(t)
	m := New(1, 4, []card.Card{card.New(card.Ten, card.Clubs), card.New(card.Nine, card.Hearts)})
	is.Equal(m.ShortDescription(), "1->4 TC 9H")
}
