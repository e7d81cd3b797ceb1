package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/move"
)

const bignum = 1<<63 - 2

// MaxPileDepth is the deepest slot any pile can have: a single pile holding
// the whole deck.
const MaxPileDepth = card.DeckSize

// Zobrist generates a zobrist hash for a FreeCell position. Every
// (pile, depth, card) triple gets its own random key, so the hash depends on
// which pile holds a card and where in that pile it sits.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	posTable  [][][card.DeckSize]uint64
	kindTable [][3]uint64

	numPiles int
}

func (z *Zobrist) Initialize(numPiles int) {
	z.numPiles = numPiles
	z.posTable = make([][][card.DeckSize]uint64, numPiles)
	z.kindTable = make([][3]uint64, numPiles)
	for i := 0; i < numPiles; i++ {
		z.posTable[i] = make([][card.DeckSize]uint64, MaxPileDepth)
		for d := 0; d < MaxPileDepth; d++ {
			for c := 0; c < card.DeckSize; c++ {
				z.posTable[i][d][c] = frand.Uint64n(bignum) + 1
			}
		}
		for k := 0; k < 3; k++ {
			z.kindTable[i][k] = frand.Uint64n(bignum) + 1
		}
	}
}

// NumPiles is the number of piles the tables were built for.
func (z *Zobrist) NumPiles() int {
	return z.numPiles
}

// Hash computes the key of b from scratch.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for i := 0; i < b.NumPiles(); i++ {
		p := b.Pile(i)
		key ^= z.kindTable[i][p.Kind()]
		for d, c := range p.Cards() {
			key ^= z.posTable[i][d][c.Index()]
		}
	}
	return key
}

// AddMove returns the key of the board obtained by applying m to before,
// given that key is the hash of before. Only the moved cards are touched.
// The move is assumed to be legal on before.
func (z *Zobrist) AddMove(key uint64, before *board.Board, m move.Move) uint64 {
	src := before.Pile(m.Source).Len()
	tgt := before.Pile(m.Target).Len()
	n := len(m.Cards)
	for i, c := range m.Cards {
		idx := c.Index()
		key ^= z.posTable[m.Source][src-n+i][idx]
		key ^= z.posTable[m.Target][tgt+i][idx]
	}
	return key
}
