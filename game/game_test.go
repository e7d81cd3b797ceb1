package game

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/search"
	"github.com/domino14/freecell/testhelpers"
)

func mv(src, tgt int, cs string) move.Move {
	return move.New(src, tgt, testhelpers.Cards(cs))
}

func TestPlayMoveAndUndo(t *testing.T) {
	is := is.New(t)
	start := testhelpers.EndgameBoard()
	g := New(start)

	err := g.PlayMove(mv(1, 0, "KC"))
	is.True(errors.Is(err, ErrIllegalMove))
	is.True(g.Board().Equal(start))
	is.Equal(g.History().Len(), 1)

	is.NoErr(g.PlayMove(mv(0, 14, "KH")))
	is.NoErr(g.PlayMove(mv(0, 12, "QC")))
	is.NoErr(g.PlayMove(mv(1, 12, "KC")))
	is.True(g.IsWin())

	is.True(g.Undo())
	is.True(!g.IsWin())
	is.True(g.Undo())
	is.True(g.Undo())
	is.True(g.Board().Equal(start))
	is.True(!g.Undo())

	is.True(g.Redo())
	is.Equal(g.Board().Pile(0).Cards(), testhelpers.Cards("QC"))
}

func TestNewCopiesBoard(t *testing.T) {
	is := is.New(t)
	start := testhelpers.EndgameBoard()
	g := New(start)
	is.NoErr(g.PlayMove(mv(0, 14, "KH")))
	is.Equal(start.Pile(0).Cards(), testhelpers.Cards("QC KH"))
}

func TestSolveAndStep(t *testing.T) {
	is := is.New(t)
	start := testhelpers.EndgameBoard()
	g := New(start)

	_, err := g.Next()
	is.True(errors.Is(err, ErrNoSolution))

	s := search.NewSolver()
	s.SetStrategy(search.BFS)
	res, err := g.Solve(context.Background(), s)
	is.NoErr(err)
	is.True(res.Solved())
	is.True(g.HasSolution())
	is.Equal(g.SolutionRemaining(), 3)

	_, err = g.Prev()
	is.True(errors.Is(err, ErrStartOfSolution))

	for i := 0; i < 3; i++ {
		b, err := g.Next()
		is.NoErr(err)
		is.True(b.Equal(res.Path[i+1]))
	}
	is.True(g.IsWin())
	_, err = g.Next()
	is.True(errors.Is(err, ErrEndOfSolution))

	b, err := g.Prev()
	is.NoErr(err)
	is.True(b.Equal(res.Path[2]))
	is.Equal(g.SolutionRemaining(), 1)
	hint, err := g.Hint()
	is.NoErr(err)
	is.True(hint.Equal(res.Moves[2]))
}

func TestLeavingSolutionDropsIt(t *testing.T) {
	is := is.New(t)
	g := New(testhelpers.EndgameBoard())
	s := search.NewSolver()
	s.SetStrategy(search.BFS)
	_, err := g.Solve(context.Background(), s)
	is.NoErr(err)

	// Park the king of clubs in a free cell; no shortest solution does that.
	is.NoErr(g.PlayMove(mv(1, 8, "KC")))
	is.True(!g.HasSolution())
	_, err = g.Hint()
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSetSolution(t *testing.T) {
	is := is.New(t)
	start := testhelpers.EndgameBoard()
	g := New(start)

	other := testhelpers.OneMoveBoard()
	is.Equal(g.SetSolution([]*board.Board{other}), ErrSolutionMismatch)

	b1, ok := start.ApplyMove(mv(0, 14, "KH"))
	is.True(ok)
	b2, ok := b1.ApplyMove(mv(0, 12, "QC"))
	is.True(ok)
	is.NoErr(g.SetSolution([]*board.Board{start, b1, b2}))
	is.Equal(g.SolutionRemaining(), 2)

	// Playing the solution's move by hand keeps us on the path.
	is.NoErr(g.PlayMove(mv(0, 14, "KH")))
	is.True(g.HasSolution())
	is.Equal(g.SolutionRemaining(), 1)

	// Skipping a step is not a valid path.
	g2 := New(start)
	err := g2.SetSolution([]*board.Board{start, b2})
	is.True(errors.Is(err, search.ErrInvalidPath))
}

func TestLoadBoardResets(t *testing.T) {
	is := is.New(t)
	g := New(testhelpers.EndgameBoard())
	is.NoErr(g.PlayMove(mv(0, 14, "KH")))
	g.LoadBoard(testhelpers.OneMoveBoard())
	is.Equal(g.History().Len(), 1)
	is.True(!g.HasSolution())
	is.True(!g.Undo())
}
