package board

import (
	"fmt"
	"strings"

	"github.com/domino14/freecell/card"
)

// PileKind is the kind of a pile. It never changes once a pile is created.
type PileKind uint8

const (
	Tableau PileKind = iota
	FreeCell
	Foundation
)

var kindNames = [...]string{"tableau", "free-cell", "foundation"}

func (k PileKind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("pilekind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind parses the kind names used in saved states.
func ParseKind(s string) (PileKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if s == n {
			return PileKind(i), nil
		}
	}
	if s == "freecell" {
		return FreeCell, nil
	}
	return 0, fmt.Errorf("unknown pile kind %q", s)
}

// Pile is an ordered stack of cards. The last card is the top (accessible)
// card.
type Pile struct {
	kind  PileKind
	cards []card.Card
}

// NewPile creates a pile holding a copy of the given cards.
func NewPile(kind PileKind, cards ...card.Card) *Pile {
	cp := make([]card.Card, len(cards))
	copy(cp, cards)
	return &Pile{kind: kind, cards: cp}
}

func (p *Pile) Kind() PileKind { return p.kind }

// Cards returns the pile contents, bottom first. The returned slice must not
// be modified.
func (p *Pile) Cards() []card.Card { return p.cards }

func (p *Pile) Len() int { return len(p.cards) }

func (p *Pile) Empty() bool { return len(p.cards) == 0 }

// Top returns the accessible card of the pile.
func (p *Pile) Top() (card.Card, bool) {
	if len(p.cards) == 0 {
		return card.NoCard, false
	}
	return p.cards[len(p.cards)-1], true
}

// TopRun returns the top n cards of the pile, or nil if the pile has fewer
// than n cards.
func (p *Pile) TopRun(n int) []card.Card {
	if n <= 0 || n > len(p.cards) {
		return nil
	}
	return p.cards[len(p.cards)-n:]
}

// IsValidRun tells whether run can be moved as a unit: every card is one
// rank below the card under it, with alternating colors. A run of zero or
// one card is always valid.
func IsValidRun(run []card.Card) bool {
	for i := 0; i+1 < len(run); i++ {
		a, b := run[i], run[i+1]
		if a.Rank() != b.Rank()+1 {
			return false
		}
		if a.Color() == b.Color() {
			return false
		}
	}
	return true
}

// MovableRunLength returns the length of the longest valid run at the top of
// the pile.
func (p *Pile) MovableRunLength() int {
	n := len(p.cards)
	if n == 0 {
		return 0
	}
	l := 1
	for i := n - 1; i > 0; i-- {
		if !IsValidRun(p.cards[i-1 : i+1]) {
			break
		}
		l++
	}
	return l
}

// isTopRun tells whether run is exactly the top len(run) cards of p.
func (p *Pile) isTopRun(run []card.Card) bool {
	if len(run) == 0 || len(run) > len(p.cards) {
		return false
	}
	top := p.cards[len(p.cards)-len(run):]
	for i := range run {
		if top[i] != run[i] {
			return false
		}
	}
	return true
}

// CanAccept tells whether run, taken from the top of p, may be placed on
// target. It never modifies either pile.
func (p *Pile) CanAccept(target *Pile, run []card.Card) bool {
	if !p.isTopRun(run) || !IsValidRun(run) {
		return false
	}
	first := run[0]
	top, hasTop := target.Top()

	switch target.kind {
	case FreeCell:
		return !hasTop && len(run) == 1

	case Foundation:
		if len(run) != 1 {
			return false
		}
		if !hasTop {
			return first.Rank() == card.Ace
		}
		return first.Suit() == top.Suit() && first.Rank() == top.Rank()+1

	case Tableau:
		if !hasTop {
			return true
		}
		return first.Color() != top.Color() && first.Rank()+1 == top.Rank()
	}
	return false
}

// Transfer moves run from the top of p onto target if CanAccept allows it.
// It returns false, and changes nothing, otherwise. This is the only way
// cards change piles.
func (p *Pile) Transfer(run []card.Card, target *Pile) bool {
	if !p.CanAccept(target, run) {
		return false
	}
	n := len(run)
	// run may alias p.cards; append before truncating.
	target.cards = append(target.cards, run...)
	p.cards = p.cards[:len(p.cards)-n]
	return true
}

// IsFoundationComplete is true for a foundation holding a full suit.
func (p *Pile) IsFoundationComplete() bool {
	if p.kind != Foundation || len(p.cards) != card.NumRanks {
		return false
	}
	top, _ := p.Top()
	return top.Rank() == card.King
}

func (p *Pile) equal(o *Pile) bool {
	if p.kind != o.kind || len(p.cards) != len(o.cards) {
		return false
	}
	for i := range p.cards {
		if p.cards[i] != o.cards[i] {
			return false
		}
	}
	return true
}

func (p *Pile) String() string {
	shorts := make([]string, len(p.cards))
	for i, c := range p.cards {
		shorts[i] = c.Short()
	}
	return fmt.Sprintf("Pile(type=%v, cards=[%s])", p.kind, strings.Join(shorts, ", "))
}
