package search

import (
	"errors"
	"fmt"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/move"
)

var ErrInvalidPath = errors.New("invalid solution path")

// ValidatePath checks that every consecutive pair of boards in path is one
// legal move apart, respecting the supermove bound, and returns those moves.
// It does not require the last board to be a win.
func ValidatePath(path []*board.Board) ([]move.Move, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	moves := make([]move.Move, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		m, ok := path[i-1].MoveBetween(path[i])
		if !ok {
			return nil, fmt.Errorf("%w: step %d is not a single legal move", ErrInvalidPath, i)
		}
		if m.NumCards() > path[i-1].MaxRunLength(m.Target) {
			return nil, fmt.Errorf("%w: step %d moves %d cards, at most %d allowed",
				ErrInvalidPath, i, m.NumCards(), path[i-1].MaxRunLength(m.Target))
		}
		moves = append(moves, m)
	}
	return moves, nil
}
