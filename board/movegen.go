package board

import (
	"github.com/domino14/freecell/move"
)

// MaxRunLength is the largest run that may be moved in one supermove onto
// target, given the current number of empty tableau columns and free cells.
// An empty target column cannot also serve as a holding slot.
func (b *Board) MaxRunLength(target int) int {
	k := b.EmptyCount(Tableau)
	f := b.EmptyCount(FreeCell)
	t := b.piles[target]
	if t.kind == Tableau && t.Empty() {
		k--
	}
	return (k + 1) * (f + 1)
}

// LegalMoves enumerates every legal move from this board. Runs of every
// movable length are tried, up to the supermove bound. Empty free cells are
// interchangeable, as are empty tableau columns, so for each source pile
// only the first empty free cell and the first empty column are offered.
// Foundations are never a source.
func (b *Board) LegalMoves() []move.Move {
	var moves []move.Move
	for si, src := range b.piles {
		if src.Empty() || src.kind == Foundation {
			continue
		}
		movable := src.MovableRunLength()
		usedEmptyCell := false
		usedEmptyColumn := false

		for ti, tgt := range b.piles {
			if ti == si {
				continue
			}
			if src.kind == FreeCell && tgt.kind == FreeCell {
				// Shuffling a card between cells is never useful.
				continue
			}
			emptyCell := tgt.kind == FreeCell && tgt.Empty()
			emptyColumn := tgt.kind == Tableau && tgt.Empty()
			if (emptyCell && usedEmptyCell) || (emptyColumn && usedEmptyColumn) {
				continue
			}
			limit := min(movable, b.MaxRunLength(ti))
			if emptyColumn && src.kind == Tableau && limit == src.Len() {
				// Moving a whole column into an empty one only renumbers it.
				limit--
			}
			added := false
			for n := 1; n <= limit; n++ {
				run := src.TopRun(n)
				if !src.CanAccept(tgt, run) {
					continue
				}
				moves = append(moves, move.New(si, ti, run))
				added = true
			}
			if added {
				usedEmptyCell = usedEmptyCell || emptyCell
				usedEmptyColumn = usedEmptyColumn || emptyColumn
			}
		}
	}
	return moves
}

// FoundationMoves returns the subset of LegalMoves that go to a foundation.
func (b *Board) FoundationMoves() []move.Move {
	var moves []move.Move
	for _, m := range b.LegalMoves() {
		if b.piles[m.Target].kind == Foundation {
			moves = append(moves, m)
		}
	}
	return moves
}

// MoveBetween finds the single move that turns b into next. It returns false
// if the two boards differ by anything other than one run changing piles, or
// if that transfer is not allowed.
func (b *Board) MoveBetween(next *Board) (move.Move, bool) {
	if len(b.piles) != len(next.piles) {
		return move.Move{}, false
	}
	src, tgt := -1, -1
	for i := range b.piles {
		if b.piles[i].kind != next.piles[i].kind {
			return move.Move{}, false
		}
		before, after := b.piles[i].Len(), next.piles[i].Len()
		switch {
		case after < before && src == -1:
			src = i
		case after > before && tgt == -1:
			tgt = i
		case after != before:
			return move.Move{}, false
		case !b.piles[i].equal(next.piles[i]):
			return move.Move{}, false
		}
	}
	if src == -1 || tgt == -1 {
		return move.Move{}, false
	}
	n := b.piles[src].Len() - next.piles[src].Len()
	m := move.New(src, tgt, b.piles[src].TopRun(n))
	applied, ok := b.ApplyMove(m)
	if !ok || !applied.Equal(next) {
		return move.Move{}, false
	}
	return m, true
}
