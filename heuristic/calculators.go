package heuristic

import (
	"github.com/domino14/freecell/board"
)

// FoundationProgress rewards every card already resting on a foundation.
type FoundationProgress struct {
	Weight float64
}

func (c FoundationProgress) Score(b *board.Board) float64 {
	return -c.Weight * float64(b.FoundationCount())
}

func (c FoundationProgress) Type() string { return "FoundationProgress" }

// BuriedReadyCards looks for tableau cards that could go to a foundation
// right now. Each one earns a small reward, and each card stacked above it
// costs a penalty, since it has to be moved out of the way first.
type BuriedReadyCards struct {
	ReadyWeight    float64
	BlockingWeight float64
}

func (c BuriedReadyCards) Score(b *board.Board) float64 {
	score := 0.0
	for i := 0; i < b.NumPiles(); i++ {
		p := b.Pile(i)
		if p.Kind() != board.Tableau {
			continue
		}
		cards := p.Cards()
		for d, cd := range cards {
			if !b.CanMoveToFoundation(cd) {
				continue
			}
			score -= c.ReadyWeight
			score += c.BlockingWeight * float64(len(cards)-d-1)
		}
	}
	return score
}

func (c BuriedReadyCards) Type() string { return "BuriedReadyCards" }

// EmptyColumns rewards empty tableau columns.
type EmptyColumns struct {
	Weight float64
}

func (c EmptyColumns) Score(b *board.Board) float64 {
	return -c.Weight * float64(b.EmptyCount(board.Tableau))
}

func (c EmptyColumns) Type() string { return "EmptyColumns" }

// OccupiedFreeCells penalizes every free cell in use.
type OccupiedFreeCells struct {
	Weight float64
}

func (c OccupiedFreeCells) Score(b *board.Board) float64 {
	used := b.CountKind(board.FreeCell) - b.EmptyCount(board.FreeCell)
	return c.Weight * float64(used)
}

func (c OccupiedFreeCells) Type() string { return "OccupiedFreeCells" }
