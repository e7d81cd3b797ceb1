// Package deal creates starting boards in the standard FreeCell layout.
package deal

import (
	"encoding/binary"
	"errors"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/card"
)

const (
	NumTableaus    = 8
	NumFreeCells   = 4
	NumFoundations = 4
	NumPiles       = NumTableaus + NumFreeCells + NumFoundations

	FirstFreeCell   = NumTableaus
	FirstFoundation = NumTableaus + NumFreeCells
)

// ColumnSizes is how many cards each tableau gets in a fresh deal.
var ColumnSizes = [NumTableaus]int{7, 7, 7, 7, 6, 6, 6, 6}

var ErrDeckSize = errors.New("a deal needs exactly 52 cards")

// Kinds returns the pile kind sequence of the standard layout.
func Kinds() []board.PileKind {
	kinds := make([]board.PileKind, NumPiles)
	for i := range kinds {
		switch {
		case i >= FirstFoundation:
			kinds[i] = board.Foundation
		case i >= FirstFreeCell:
			kinds[i] = board.FreeCell
		default:
			kinds[i] = board.Tableau
		}
	}
	return kinds
}

func layout(columns [NumTableaus][]card.Card) *board.Board {
	piles := make([]*board.Pile, 0, NumPiles)
	for i, k := range Kinds() {
		if k == board.Tableau {
			piles = append(piles, board.NewPile(k, columns[i]...))
		} else {
			piles = append(piles, board.NewPile(k))
		}
	}
	return board.New(piles...)
}

// FromCards deals cards into the tableaus in contiguous blocks: the first
// seven cards make the first column, and so on, following ColumnSizes.
func FromCards(cards []card.Card) (*board.Board, error) {
	if len(cards) != card.DeckSize {
		return nil, fmt.Errorf("%w: got %d", ErrDeckSize, len(cards))
	}
	var columns [NumTableaus][]card.Card
	off := 0
	for i, n := range ColumnSizes {
		columns[i] = cards[off : off+n]
		off += n
	}
	b := layout(columns)
	if err := b.ValidateDeck(); err != nil {
		return nil, err
	}
	return b, nil
}

// Shuffled deals a freshly shuffled deck. A nil rng uses frand's global,
// unseeded generator.
func Shuffled(rng *frand.RNG) *board.Board {
	cards := card.FullDeck()
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if rng == nil {
		frand.Shuffle(len(cards), swap)
	} else {
		rng.Shuffle(len(cards), swap)
	}
	b, err := FromCards(cards)
	if err != nil {
		// A shuffled full deck is always a valid deal.
		panic(err)
	}
	return b
}

// SeededRNG returns a deterministic generator for Shuffled.
func SeededRNG(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

// Numbered reproduces the classic numbered FreeCell deals. The deck is
// drawn with a linear congruential generator and dealt one card per column,
// left to right, row after row.
func Numbered(n uint32) *board.Board {
	deck := card.FullDeck()
	state := n
	var columns [NumTableaus][]card.Card
	for i := 0; i < card.DeckSize; i++ {
		left := card.DeckSize - i
		state = (state*214013 + 2531011) & 0x7fffffff
		j := int(state>>16) % left
		columns[i%NumTableaus] = append(columns[i%NumTableaus], deck[j])
		deck[j] = deck[left-1]
	}
	return layout(columns)
}
