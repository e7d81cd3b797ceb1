// Package game is a FreeCell session: the current board, the moves played
// so far with undo and redo, and optionally a solver path to step through.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/history"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/search"
)

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrNoSolution       = errors.New("no solution loaded")
	ErrEndOfSolution    = errors.New("already at the end of the solution")
	ErrStartOfSolution  = errors.New("already at the start of the solution")
	ErrSolutionMismatch = errors.New("solution does not start from the current board")
)

// Game controls one hand of FreeCell. It never mutates a board in place;
// every move produces a new board.
type Game struct {
	board   *board.Board
	history *history.Manager

	// solution is a path of boards from some earlier position to a win (or
	// to the best board found). solutionIdx is where the current board sits
	// on it.
	solution      []*board.Board
	solutionMoves []move.Move
	solutionIdx   int
}

func New(b *board.Board) *Game {
	b = b.Copy()
	return &Game{board: b, history: history.NewManager(b)}
}

// Board returns the current board. It must not be modified.
func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) IsWin() bool {
	return g.board.IsWin()
}

// History exposes the undo log, mostly for display.
func (g *Game) History() *history.Manager {
	return g.history
}

// LoadBoard replaces the current hand, clearing the undo log and any
// solution.
func (g *Game) LoadBoard(b *board.Board) {
	g.board = b.Copy()
	g.history.Reset(g.board)
	g.ClearSolution()
}

// PlayMove validates m against the current board, applies it and records
// the result for undo.
func (g *Game) PlayMove(m move.Move) error {
	nb, ok := g.board.ApplyMove(m)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	log.Debug().Str("move", m.ShortDescription()).Msg("play-move")
	g.board = nb
	g.history.Record(nb)
	g.syncSolution()
	return nil
}

// Undo goes back one move. At the start of the game it does nothing and
// returns false.
func (g *Game) Undo() bool {
	if !g.history.CanUndo() {
		return false
	}
	g.board = g.history.Undo()
	g.syncSolution()
	return true
}

// Redo replays a move taken back with Undo.
func (g *Game) Redo() bool {
	b, ok := g.history.Redo()
	if !ok {
		return false
	}
	g.board = b
	g.syncSolution()
	return true
}

// SetSolution loads a path of boards to step through with Next and Prev.
// The path must start at the current board and consist of legal moves.
func (g *Game) SetSolution(path []*board.Board) error {
	if len(path) == 0 || !path[0].Equal(g.board) {
		return ErrSolutionMismatch
	}
	moves, err := search.ValidatePath(path)
	if err != nil {
		return err
	}
	g.solution = path
	g.solutionMoves = moves
	g.solutionIdx = 0
	return nil
}

func (g *Game) ClearSolution() {
	g.solution = nil
	g.solutionMoves = nil
	g.solutionIdx = 0
}

func (g *Game) HasSolution() bool {
	return g.solution != nil
}

// SolutionRemaining is the number of solution moves left to play.
func (g *Game) SolutionRemaining() int {
	if g.solution == nil {
		return 0
	}
	return len(g.solutionMoves) - g.solutionIdx
}

// Hint returns the next move of the loaded solution.
func (g *Game) Hint() (move.Move, error) {
	if g.solution == nil {
		return move.Move{}, ErrNoSolution
	}
	if g.solutionIdx >= len(g.solutionMoves) {
		return move.Move{}, ErrEndOfSolution
	}
	return g.solutionMoves[g.solutionIdx], nil
}

// Next plays the next move of the loaded solution.
func (g *Game) Next() (*board.Board, error) {
	m, err := g.Hint()
	if err != nil {
		return nil, err
	}
	if err := g.PlayMove(m); err != nil {
		return nil, err
	}
	return g.board, nil
}

// Prev takes back the last solution move.
func (g *Game) Prev() (*board.Board, error) {
	if g.solution == nil {
		return nil, ErrNoSolution
	}
	if g.solutionIdx == 0 || !g.history.CanUndo() {
		return nil, ErrStartOfSolution
	}
	g.Undo()
	return g.board, nil
}

// Solve runs s from the current board. If it finds a path, solved or
// partial, that path becomes the loaded solution.
func (g *Game) Solve(ctx context.Context, s *search.Solver) (*search.Result, error) {
	res, err := s.Solve(ctx, g.board)
	if err != nil {
		return nil, err
	}
	if len(res.Path) > 1 {
		g.solution = res.Path
		g.solutionMoves = res.Moves
		g.solutionIdx = 0
	}
	return res, nil
}

// syncSolution keeps the solution cursor on the current board. If the
// player has left the path, the solution is dropped.
func (g *Game) syncSolution() {
	if g.solution == nil {
		return
	}
	for _, i := range []int{g.solutionIdx + 1, g.solutionIdx - 1, g.solutionIdx} {
		if i >= 0 && i < len(g.solution) && g.solution[i].Equal(g.board) {
			g.solutionIdx = i
			return
		}
	}
	log.Debug().Int("step", g.solutionIdx).Msg("left-solution-path")
	g.ClearSolution()
}
