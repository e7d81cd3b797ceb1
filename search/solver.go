// Package search finds a sequence of moves from a FreeCell board to a win.
// A* (inadmissible heuristic, so best-effort), greedy best-first,
// breadth-first and depth-first search all share one loop; they only
// differ in how the frontier orders its nodes.
package search

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/heuristic"
	"github.com/domino14/freecell/zobrist"
)

var (
	ErrNilBoard        = errors.New("no board to solve")
	ErrUnknownStrategy = errors.New("unknown search strategy")
	ErrAlreadySolving  = errors.New("solver is already running")
)

// Solver runs searches. A Solver may be reused, but runs only one search at
// a time; each search owns its own frontier and visited set.
type Solver struct {
	zobrist   *zobrist.Zobrist
	strategy  Strategy
	heuristic heuristic.Calculator
	ordering  heuristic.Calculator
	budget    Budget

	nodes   atomic.Uint64
	solving atomic.Bool
}

// NewSolver returns an A* solver with the default heuristic and no budget.
func NewSolver() *Solver {
	return &Solver{
		zobrist:   &zobrist.Zobrist{},
		strategy:  AStar,
		heuristic: heuristic.Default(),
		ordering:  heuristic.DFSOrdering(),
	}
}

func (s *Solver) SetStrategy(st Strategy) { s.strategy = st }

func (s *Solver) SetHeuristic(h heuristic.Calculator) { s.heuristic = h }

// SetOrdering sets the cheap score used to order DFS successors. A nil
// calculator keeps move generation order.
func (s *Solver) SetOrdering(h heuristic.Calculator) { s.ordering = h }

func (s *Solver) SetBudget(b Budget) { s.budget = b }

func (s *Solver) Strategy() Strategy { return s.strategy }

func (s *Solver) IsSolving() bool { return s.solving.Load() }

// Nodes returns the number of nodes expanded so far by the current or last
// search.
func (s *Solver) Nodes() uint64 { return s.nodes.Load() }

// Run is a one-shot convenience around Solver.
func Run(ctx context.Context, b *board.Board, strategy Strategy, budget Budget) (*Result, error) {
	s := NewSolver()
	s.SetStrategy(strategy)
	s.SetBudget(budget)
	return s.Solve(ctx, b)
}

// Solve searches from b. Running out of frontier, time or nodes is reported
// through Result.Outcome; the error is only for bad input.
func (s *Solver) Solve(ctx context.Context, b *board.Board) (*Result, error) {
	if b == nil {
		return nil, ErrNilBoard
	}
	if _, ok := strategyNames[s.strategy]; !ok {
		return nil, ErrUnknownStrategy
	}
	if !s.solving.CompareAndSwap(false, true) {
		return nil, ErrAlreadySolving
	}
	defer s.solving.Store(false)

	budget := s.budget.resolve(s.strategy)
	log.Debug().
		Str("strategy", s.strategy.String()).
		Dur("max-time", budget.MaxTime).
		Uint64("max-nodes", budget.MaxNodes).
		Int("max-depth", budget.MaxDepth).
		Msg("solve-config")

	if budget.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget.MaxTime)
		defer cancel()
	}
	if s.zobrist.NumPiles() != b.NumPiles() {
		s.zobrist.Initialize(b.NumPiles())
	}
	s.nodes.Store(0)
	tstart := time.Now()

	g := &errgroup.Group{}
	done := make(chan bool)
	var res *Result

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		res = s.search(ctx, b.Copy(), budget)
		done <- true
		return nil
	})

	err := g.Wait()
	res.Strategy = s.strategy
	res.Elapsed = time.Since(tstart)

	log.Info().
		Str("strategy", s.strategy.String()).
		Str("outcome", res.Outcome.String()).
		Bool("partial", res.Partial).
		Int("moves", res.MoveCount()).
		Uint64("expanded", res.Expanded).
		Uint64("generated", res.Generated).
		Int("visited", res.Visited).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")

	return res, err
}

// score is the node's frontier key input: the heuristic for A* and greedy,
// the ordering score for DFS, nothing for BFS.
func (s *Solver) score(b *board.Board) float64 {
	switch s.strategy {
	case AStar, Greedy:
		return s.heuristic.Score(b)
	case DFS:
		if s.ordering != nil {
			return s.ordering.Score(b)
		}
	}
	return 0
}

func (s *Solver) priority(n *node) float64 {
	if s.strategy == AStar {
		return n.score + float64(n.depth)
	}
	return n.score
}

// morePromising picks the node a partial result should lead to: the lowest
// heuristic score for informed strategies, the deepest node otherwise.
func (s *Solver) morePromising(a, b *node) bool {
	switch s.strategy {
	case AStar, Greedy:
		return a.score < b.score
	}
	return a.depth > b.depth
}

func (s *Solver) search(ctx context.Context, root *board.Board, budget Budget) *Result {
	frontier := newFrontier(s.strategy)
	rootHash := s.zobrist.Hash(root)
	visited := map[uint64]struct{}{rootHash: {}}

	rootNode := &node{state: root, hash: rootHash, score: s.score(root)}
	frontier.Push(rootNode, s.priority(rootNode))
	best := rootNode

	res := &Result{Generated: 1}
	stop := func(o Outcome) *Result {
		res.Outcome = o
		res.Visited = len(visited)
		res.Path, res.Moves = reconstructPath(best)
		res.Partial = true
		return res
	}

	var children []*node
	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return stop(TimedOut)
			}
			return stop(Cancelled)
		}
		if budget.MaxNodes > 0 && res.Expanded >= budget.MaxNodes {
			log.Debug().Uint64("expanded", res.Expanded).Msg("node-budget-exhausted")
			return stop(TimedOut)
		}

		n := frontier.Pop()
		if n.state.IsWin() {
			res.Outcome = Solved
			res.Visited = len(visited)
			res.Path, res.Moves = reconstructPath(n)
			return res
		}
		res.Expanded++
		s.nodes.Add(1)

		if budget.MaxDepth > 0 && n.depth >= budget.MaxDepth {
			continue
		}

		children = children[:0]
		for _, m := range n.state.LegalMoves() {
			res.Generated++
			h := s.zobrist.AddMove(n.hash, n.state, m)
			if _, seen := visited[h]; seen {
				continue
			}
			childState, ok := n.state.ApplyMove(m)
			if !ok {
				continue
			}
			visited[h] = struct{}{}
			child := &node{
				state:  childState,
				parent: n,
				move:   m,
				depth:  n.depth + 1,
				hash:   h,
				score:  s.score(childState),
			}
			if s.morePromising(child, best) {
				best = child
			}
			children = append(children, child)
		}

		if s.strategy == DFS && s.ordering != nil {
			// The stack pops the last push first, so push the best last.
			sort.SliceStable(children, func(i, j int) bool {
				return children[i].score > children[j].score
			})
		}
		for _, c := range children {
			frontier.Push(c, s.priority(c))
		}
	}

	res.Outcome = NoSolution
	res.Visited = len(visited)
	return res
}
