package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/move"
)

func cards(t *testing.T, s string) []card.Card {
	t.Helper()
	var out []card.Card
	for _, f := range strings.Fields(s) {
		c, err := card.FromString(f)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, c)
	}
	return out
}

func TestIsValidRun(t *testing.T) {
	is := is.New(t)
	is.True(IsValidRun(nil))
	is.True(IsValidRun(cards(t, "7D")))
	is.True(IsValidRun(cards(t, "KS QH JS")))
	is.True(!IsValidRun(cards(t, "KS QS")))
	is.True(!IsValidRun(cards(t, "KS TH")))
	is.True(!IsValidRun(cards(t, "QH KS")))
}

func TestMovableRunLength(t *testing.T) {
	is := is.New(t)
	is.Equal(NewPile(Tableau).MovableRunLength(), 0)
	is.Equal(NewPile(Tableau, cards(t, "2C 9S 8H 7S")...).MovableRunLength(), 3)
	is.Equal(NewPile(Tableau, cards(t, "9S 8S")...).MovableRunLength(), 1)
}

func TestCanAcceptFoundation(t *testing.T) {
	is := is.New(t)
	src := NewPile(Tableau, cards(t, "3H 2S AS")...)
	empty := NewPile(Foundation)

	is.True(src.CanAccept(empty, cards(t, "AS")))
	is.True(!NewPile(Tableau, cards(t, "2S")...).CanAccept(empty, cards(t, "2S")))

	withAce := NewPile(Foundation, cards(t, "AS")...)
	is.True(NewPile(Tableau, cards(t, "2S")...).CanAccept(withAce, cards(t, "2S")))
	is.True(!NewPile(Tableau, cards(t, "2H")...).CanAccept(withAce, cards(t, "2H")))
	is.True(!NewPile(Tableau, cards(t, "3S")...).CanAccept(withAce, cards(t, "3S")))
	// Runs never go to a foundation.
	twoRun := NewPile(Tableau, cards(t, "3H 2S")...)
	is.True(!twoRun.CanAccept(withAce, cards(t, "3H 2S")))
}

func TestCanAcceptFreeCell(t *testing.T) {
	is := is.New(t)
	src := NewPile(Tableau, cards(t, "KS QH")...)
	cell := NewPile(FreeCell)
	is.True(src.CanAccept(cell, cards(t, "QH")))
	is.True(!src.CanAccept(cell, cards(t, "KS QH")))

	full := NewPile(FreeCell, cards(t, "2C")...)
	is.True(!src.CanAccept(full, cards(t, "QH")))
}

func TestCanAcceptTableau(t *testing.T) {
	is := is.New(t)
	src := NewPile(Tableau, cards(t, "KS QH JS")...)
	empty := NewPile(Tableau)
	is.True(src.CanAccept(empty, cards(t, "JS")))
	is.True(src.CanAccept(empty, cards(t, "KS QH JS")))
	// Not the top of the source pile.
	is.True(!src.CanAccept(empty, cards(t, "KS QH")))

	target := NewPile(Tableau, cards(t, "8S")...)
	for _, tc := range []struct {
		c      string
		accept bool
	}{
		{"7H", true},
		{"7D", true},
		{"7C", false},
		{"7S", false},
		{"6H", false},
		{"9H", false},
	} {
		p := NewPile(Tableau, cards(t, tc.c)...)
		is.Equal(p.CanAccept(target, cards(t, tc.c)), tc.accept)
	}
}

func TestTransfer(t *testing.T) {
	is := is.New(t)
	src := NewPile(Tableau, cards(t, "KS 9H 8C")...)
	dst := NewPile(Tableau, cards(t, "TS")...)

	is.True(!src.Transfer(cards(t, "8C"), dst))
	is.Equal(src.Len(), 3)
	is.Equal(dst.Len(), 1)

	is.True(src.Transfer(cards(t, "9H 8C"), dst))
	is.Equal(src.Cards(), cards(t, "KS"))
	is.Equal(dst.Cards(), cards(t, "TS 9H 8C"))
}

func TestIsFoundationComplete(t *testing.T) {
	is := is.New(t)
	var clubs []card.Card
	for r := card.Ace; r <= card.King; r++ {
		clubs = append(clubs, card.New(r, card.Clubs))
	}
	is.True(NewPile(Foundation, clubs...).IsFoundationComplete())
	is.True(!NewPile(Foundation, clubs[:12]...).IsFoundationComplete())
	is.True(!NewPile(Tableau, clubs...).IsFoundationComplete())
}

func solvedBoard() *Board {
	piles := []*Pile{NewPile(Tableau), NewPile(Tableau), NewPile(FreeCell)}
	for s := card.Clubs; s <= card.Spades; s++ {
		var cs []card.Card
		for r := card.Ace; r <= card.King; r++ {
			cs = append(cs, card.New(r, s))
		}
		piles = append(piles, NewPile(Foundation, cs...))
	}
	return New(piles...)
}

func TestIsWin(t *testing.T) {
	is := is.New(t)
	b := solvedBoard()
	is.True(b.IsWin())
	is.NoErr(b.ValidateDeck())

	// Take the king of spades back down to a tableau.
	piles := b.Piles()
	ks := piles[6].Cards[12]
	piles[6].Cards = piles[6].Cards[:12]
	piles[0].Cards = []card.Card{ks}
	nb := FromPiles(piles)
	is.True(!nb.IsWin())
	is.NoErr(nb.ValidateDeck())
}

func TestValidateDeck(t *testing.T) {
	is := is.New(t)
	deck := card.FullDeck()
	b := New(NewPile(Tableau, deck...))
	is.NoErr(b.ValidateDeck())

	short := New(NewPile(Tableau, deck[1:]...))
	is.True(errors.Is(short.ValidateDeck(), ErrMissingCards))

	dup := append([]card.Card{deck[5]}, deck...)
	is.True(errors.Is(New(NewPile(Tableau, dup...)).ValidateDeck(), ErrDuplicateCard))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	b := New(
		NewPile(Tableau, cards(t, "KS 9D")...),
		NewPile(Tableau, cards(t, "TS")...),
		NewPile(FreeCell),
	)
	cp := b.Copy()
	is.True(cp.Equal(b))

	is.True(cp.Pile(0).Transfer(cards(t, "9D"), cp.Pile(1)))
	is.Equal(b.Pile(0).Cards(), cards(t, "KS 9D"))
	is.Equal(b.Pile(1).Cards(), cards(t, "TS"))
	// Appending onto pile 1 of the copy must not spill into pile 2.
	is.Equal(cp.Pile(1).Cards(), cards(t, "TS 9D"))
	is.True(cp.Pile(2).Empty())
	is.True(!cp.Equal(b))
}

func TestApplyMoveAndInverse(t *testing.T) {
	is := is.New(t)
	b := New(
		NewPile(Tableau, cards(t, "KS")...),
		NewPile(Tableau, cards(t, "8D")...),
		NewPile(Tableau, cards(t, "7S")...),
	)
	m := move.New(2, 1, cards(t, "7S"))
	nb, ok := b.ApplyMove(m)
	is.True(ok)
	is.Equal(b.Pile(2).Cards(), cards(t, "7S"))
	is.True(nb.Pile(2).Empty())

	back, ok := nb.ApplyMove(m.Inverse())
	is.True(ok)
	is.True(back.Equal(b))
	is.Equal(back.Fingerprint(), b.Fingerprint())
	is.True(nb.Fingerprint() != b.Fingerprint())

	_, ok = b.ApplyMove(move.New(0, 1, cards(t, "KS")))
	is.True(!ok)
	_, ok = b.ApplyMove(move.New(0, 0, cards(t, "KS")))
	is.True(!ok)
	_, ok = b.ApplyMove(move.New(0, 9, cards(t, "KS")))
	is.True(!ok)
}

func TestCanMoveToFoundation(t *testing.T) {
	is := is.New(t)
	b := New(
		NewPile(Foundation, cards(t, "AH 2H")...),
		NewPile(Foundation),
	)
	is.True(b.CanMoveToFoundation(card.New(card.Three, card.Hearts)))
	is.True(b.CanMoveToFoundation(card.New(card.Ace, card.Clubs)))
	is.True(!b.CanMoveToFoundation(card.New(card.Two, card.Clubs)))
	is.True(!b.CanMoveToFoundation(card.New(card.Four, card.Hearts)))
}

func supermoveBoard(t *testing.T, emptyCells int) *Board {
	piles := []*Pile{
		NewPile(Tableau, cards(t, "9S 8H 7S 6H 5S")...),
		NewPile(Tableau, cards(t, "TH")...),
		NewPile(Tableau),
		NewPile(FreeCell, cards(t, "KC")...),
	}
	for i := 0; i < emptyCells; i++ {
		piles = append(piles, NewPile(FreeCell))
	}
	piles = append(piles, NewPile(Foundation))
	return New(piles...)
}

func descriptions(ms []move.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ShortDescription()
	}
	return out
}

func TestLegalMovesSupermoveBound(t *testing.T) {
	is := is.New(t)
	// One empty column, one empty cell: (1+1)*(1+1) = 4 onto a non-empty
	// column, (0+1)*(1+1) = 2 into the empty column.
	b := supermoveBoard(t, 1)
	is.Equal(b.MaxRunLength(1), 4)
	is.Equal(b.MaxRunLength(2), 2)
	is.Equal(descriptions(b.LegalMoves()), []string{
		"0->2 5S",
		"0->2 6H 5S",
		"0->4 5S",
		"1->4 TH",
		"3->2 KC",
	})

	// A second empty cell lifts the bound to 6, so the whole run fits on TH.
	b = supermoveBoard(t, 2)
	is.Equal(b.MaxRunLength(1), 6)
	is.True(containsString(descriptions(b.LegalMoves()), "0->1 9S 8H 7S 6H 5S"))
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func TestLegalMovesInterchangeableTargets(t *testing.T) {
	is := is.New(t)
	b := New(
		NewPile(Tableau, cards(t, "KH 5S")...),
		NewPile(Tableau),
		NewPile(Tableau),
		NewPile(FreeCell),
		NewPile(FreeCell),
		NewPile(Foundation, cards(t, "AD")...),
	)
	is.Equal(descriptions(b.LegalMoves()), []string{"0->1 5S", "0->3 5S"})
	is.Equal(len(b.FoundationMoves()), 0)
}

func TestLegalMovesAreApplicable(t *testing.T) {
	is := is.New(t)
	b := supermoveBoard(t, 2)
	for _, m := range b.LegalMoves() {
		nb, ok := b.ApplyMove(m)
		is.True(ok)
		is.Equal(nb.CardCount(), b.CardCount())
	}
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	txt := supermoveBoard(t, 1).ToDisplayText()
	is.True(strings.Contains(txt, "cells: [KC] [  ]"))
	is.True(strings.Contains(txt, "found: [  ]"))
	is.True(strings.Contains(txt, "  9S  TH"))
}

func TestMoveBetween(t *testing.T) {
	is := is.New(t)
	b := supermoveBoard(t, 2)
	for _, m := range b.LegalMoves() {
		nb, _ := b.ApplyMove(m)
		found, ok := b.MoveBetween(nb)
		is.True(ok)
		is.True(found.Equal(m))
	}
	_, ok := b.MoveBetween(b)
	is.True(!ok)

	// Two moves apart.
	m1 := move.New(0, 4, cards(t, "5S"))
	m2 := move.New(1, 5, cards(t, "TH"))
	b1, ok := b.ApplyMove(m1)
	is.True(ok)
	b2, ok := b1.ApplyMove(m2)
	is.True(ok)
	_, ok = b.MoveBetween(b2)
	is.True(!ok)
}
