// Package heuristic contains board evaluators for the solver. Every
// calculator returns a score where lower is better. None of them are
// admissible: they trade optimality for fast convergence on typical deals.
package heuristic

import (
	"github.com/domino14/freecell/board"
)

// Calculator scores a board. Lower is closer to a win.
type Calculator interface {
	Score(b *board.Board) float64
	Type() string
}
