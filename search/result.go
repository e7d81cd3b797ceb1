package search

import (
	"fmt"
	"time"

	"github.com/samber/lo/mutable"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/move"
)

// Outcome is how a search ended. Only Solved carries a complete path.
type Outcome int

const (
	Solved Outcome = iota
	// NoSolution means the frontier ran dry. Under BFS with no depth bound
	// this is conclusive.
	NoSolution
	// TimedOut means the time or node budget ran out.
	TimedOut
	// Cancelled means the caller's context was cancelled.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case NoSolution:
		return "no-solution"
	case TimedOut:
		return "timed-out"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result of a search. Path runs from the initial board to the last board
// reached; Moves[i] turns Path[i] into Path[i+1]. When Partial is set the
// path leads to the most promising board found before the search stopped,
// not to a win.
type Result struct {
	Outcome  Outcome
	Strategy Strategy
	Path     []*board.Board
	Moves    []move.Move
	Partial  bool
	Elapsed  time.Duration

	// Expanded is the number of nodes popped from the frontier, Generated
	// the number of successor boards produced (duplicates included), and
	// Visited the size of the visited set.
	Expanded  uint64
	Generated uint64
	Visited   int
}

func (r *Result) Solved() bool {
	return r.Outcome == Solved
}

// MoveCount is the number of moves along Path.
func (r *Result) MoveCount() int {
	return len(r.Moves)
}

// node is one entry in the search tree. Children point to parents, never
// the other way, so the tree is freed as soon as the frontier drops it.
type node struct {
	state  *board.Board
	parent *node
	move   move.Move
	depth  int
	hash   uint64
	score  float64
}

func reconstructPath(n *node) ([]*board.Board, []move.Move) {
	path := make([]*board.Board, 0, n.depth+1)
	moves := make([]move.Move, 0, n.depth)
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur.state)
		if cur.parent != nil {
			moves = append(moves, cur.move)
		}
	}
	mutable.Reverse(path)
	mutable.Reverse(moves)
	return path, moves
}
