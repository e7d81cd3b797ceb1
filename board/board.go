// Package board holds a complete FreeCell position: a fixed sequence of
// piles. Boards are treated as values by everything that records them
// (history, search), so every move produces a new Board via ApplyMove.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/move"
)

var (
	ErrDuplicateCard = errors.New("duplicate card")
	ErrMissingCards  = errors.New("missing cards")
	ErrInvalidCard   = errors.New("invalid card")
)

// Board is one configuration of the game. The number of piles and the kind
// of each pile are fixed for its whole lifetime; only the cards move.
type Board struct {
	piles []*Pile
}

// PileData is the flat projection of a pile: its kind and its cards,
// bottom first. It is what savers and the undo history store.
type PileData struct {
	Kind  PileKind
	Cards []card.Card
}

// New creates a board from the given piles. The piles are copied.
func New(piles ...*Pile) *Board {
	b := &Board{piles: make([]*Pile, len(piles))}
	for i, p := range piles {
		b.piles[i] = NewPile(p.kind, p.cards...)
	}
	return b
}

// FromPiles is the inverse of Piles.
func FromPiles(data []PileData) *Board {
	b := &Board{piles: make([]*Pile, len(data))}
	for i, d := range data {
		b.piles[i] = NewPile(d.Kind, d.Cards...)
	}
	return b
}

// Piles returns a copy of the board's contents as a flat list, in pile
// order.
func (b *Board) Piles() []PileData {
	out := make([]PileData, len(b.piles))
	for i, p := range b.piles {
		cp := make([]card.Card, len(p.cards))
		copy(cp, p.cards)
		out[i] = PileData{Kind: p.kind, Cards: cp}
	}
	return out
}

func (b *Board) NumPiles() int { return len(b.piles) }

// Pile returns the pile at index i. The pile must not be modified; use
// ApplyMove.
func (b *Board) Pile(i int) *Pile { return b.piles[i] }

// Copy makes a deep copy of the board. All the piles of the copy share one
// freshly allocated backing array, but each pile's capacity is capped at its
// own region, so an append on one pile can never write into another.
func (b *Board) Copy() *Board {
	total := 0
	for _, p := range b.piles {
		total += len(p.cards)
	}
	backing := make([]card.Card, total)
	cp := &Board{piles: make([]*Pile, len(b.piles))}
	pilesArr := make([]Pile, len(b.piles))
	off := 0
	for i, p := range b.piles {
		n := copy(backing[off:], p.cards)
		pilesArr[i] = Pile{kind: p.kind, cards: backing[off : off+n : off+n]}
		cp.piles[i] = &pilesArr[i]
		off += n
	}
	return cp
}

// Equal is true iff both boards have the same pile kinds and the same cards
// in the same order, pile by pile.
func (b *Board) Equal(o *Board) bool {
	if len(b.piles) != len(o.piles) {
		return false
	}
	for i := range b.piles {
		if !b.piles[i].equal(o.piles[i]) {
			return false
		}
	}
	return true
}

// IsWin is true when every tableau and free cell is empty.
func (b *Board) IsWin() bool {
	for _, p := range b.piles {
		if p.kind != Foundation && len(p.cards) > 0 {
			return false
		}
	}
	return true
}

// ApplyMove returns a new board with m applied. The receiver is never
// modified. The second return value is false if the move is illegal.
func (b *Board) ApplyMove(m move.Move) (*Board, bool) {
	if m.Source < 0 || m.Source >= len(b.piles) || m.Target < 0 ||
		m.Target >= len(b.piles) || m.Source == m.Target {
		return nil, false
	}
	if !b.piles[m.Source].CanAccept(b.piles[m.Target], m.Cards) {
		return nil, false
	}
	nb := b.Copy()
	if !nb.piles[m.Source].Transfer(m.Cards, nb.piles[m.Target]) {
		return nil, false
	}
	return nb, true
}

// CanMoveToFoundation tells whether some foundation could take c right now.
func (b *Board) CanMoveToFoundation(c card.Card) bool {
	for _, p := range b.piles {
		if p.kind != Foundation {
			continue
		}
		top, ok := p.Top()
		if !ok {
			if c.Rank() == card.Ace {
				return true
			}
			continue
		}
		if top.Suit() == c.Suit() && c.Rank() == top.Rank()+1 {
			return true
		}
	}
	return false
}

// CountKind returns the number of piles of kind k.
func (b *Board) CountKind(k PileKind) int {
	return lo.CountBy(b.piles, func(p *Pile) bool { return p.kind == k })
}

// EmptyCount returns the number of empty piles of kind k.
func (b *Board) EmptyCount(k PileKind) int {
	return lo.CountBy(b.piles, func(p *Pile) bool {
		return p.kind == k && len(p.cards) == 0
	})
}

// CardCount returns the total number of cards on the board.
func (b *Board) CardCount() int {
	return lo.SumBy(b.piles, func(p *Pile) int { return len(p.cards) })
}

// FoundationCount returns the number of cards resting on foundations.
func (b *Board) FoundationCount() int {
	return lo.SumBy(b.piles, func(p *Pile) int {
		if p.kind == Foundation {
			return len(p.cards)
		}
		return 0
	})
}

// ValidateDeck checks that the board holds exactly one of each of the 52
// cards.
func (b *Board) ValidateDeck() error {
	var seen [card.DeckSize]bool
	count := 0
	for i, p := range b.piles {
		for _, c := range p.cards {
			if !c.Valid() {
				return fmt.Errorf("%w in pile %d", ErrInvalidCard, i)
			}
			if seen[c.Index()] {
				return fmt.Errorf("%w: %v", ErrDuplicateCard, c)
			}
			seen[c.Index()] = true
			count++
		}
	}
	if count != card.DeckSize {
		return fmt.Errorf("%w: have %d of %d", ErrMissingCards, count, card.DeckSize)
	}
	return nil
}

// Fingerprint is a hash of the board contents that is stable across
// processes. It is meant for naming deals and results, not for search.
func (b *Board) Fingerprint() uint64 {
	buf := make([]byte, 0, card.DeckSize+2*len(b.piles))
	for _, p := range b.piles {
		buf = append(buf, byte(p.kind), byte(len(p.cards)))
		for _, c := range p.cards {
			buf = append(buf, byte(c))
		}
	}
	return xxhash.Sum64(buf)
}

func (b *Board) String() string {
	var sb strings.Builder
	for i, p := range b.piles {
		fmt.Fprintf(&sb, "Pile %d: %v\n", i, p)
	}
	return sb.String()
}
