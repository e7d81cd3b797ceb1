// Package automatic solves batches of deals without supervision, for
// benchmarking strategies and heuristics against each other.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/freecell/heuristic"
	"github.com/domino14/freecell/search"
	"github.com/domino14/freecell/stats"
)

var (
	SolveCounter *expvar.Int
	IsSolving    *expvar.Int
)

func init() {
	SolveCounter = expvar.NewInt("solveCounter")
	IsSolving = expvar.NewInt("isSolving")
}

// batchRunning allows one Run per process; IsSolving only reports it.
var batchRunning atomic.Bool

var ErrAlreadyRunning = errors.New("a batch is already running, please wait till complete")

// Record is the result of solving one deal with one strategy.
type Record struct {
	Deal        string  `yaml:"deal"`
	Fingerprint string  `yaml:"fingerprint"`
	Strategy    string  `yaml:"strategy"`
	Outcome     string  `yaml:"outcome"`
	Moves       int     `yaml:"moves"`
	Expanded    uint64  `yaml:"expanded"`
	Generated   uint64  `yaml:"generated"`
	Visited     int     `yaml:"visited"`
	ElapsedSec  float64 `yaml:"elapsed_sec"`
}

func (r Record) Solved() bool {
	return r.Outcome == search.Solved.String()
}

// Runner solves deals in parallel. Every job gets its own Solver, so jobs
// share nothing but the output slice.
type Runner struct {
	Threads   int
	Budget    search.Budget
	Heuristic heuristic.Weights

	done atomic.Int64

	statsMu sync.Mutex
	elapsed map[search.Strategy]*stats.Statistic
	moves   map[search.Strategy]*stats.Statistic
}

func NewRunner(threads int, budget search.Budget, weights heuristic.Weights) *Runner {
	if threads < 1 {
		threads = 1
	}
	return &Runner{Threads: threads, Budget: budget, Heuristic: weights}
}

// LiveStats returns running statistics of solve time in seconds and of
// solution length for st, over the jobs finished so far.
func (r *Runner) LiveStats(st search.Strategy) (elapsed, moves stats.Statistic) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	if e, ok := r.elapsed[st]; ok {
		elapsed = *e
	}
	if m, ok := r.moves[st]; ok {
		moves = *m
	}
	return elapsed, moves
}

func (r *Runner) pushStats(st search.Strategy, rec Record) (mean, ci float64) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	e, ok := r.elapsed[st]
	if !ok {
		e = &stats.Statistic{}
		r.elapsed[st] = e
		r.moves[st] = &stats.Statistic{}
	}
	e.Push(rec.ElapsedSec)
	if rec.Solved() {
		r.moves[st].Push(float64(rec.Moves))
	}
	return e.Mean(), e.ConfidenceInterval(95)
}

// Done is the number of jobs finished by the current or last Run.
func (r *Runner) Done() int64 {
	return r.done.Load()
}

// Run solves every deal with every strategy. Records come back in deal
// order, then strategy order. If ctx is cancelled, unfinished jobs are
// reported as cancelled rather than dropped.
func (r *Runner) Run(ctx context.Context, deals []Deal, strategies []search.Strategy) ([]Record, error) {
	if !batchRunning.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer batchRunning.Store(false)
	IsSolving.Add(1)
	defer IsSolving.Add(-1)

	log.Debug().Int("deals", len(deals)).Int("strategies", len(strategies)).
		Int("threads", r.Threads).Msg("starting-batch")
	r.done.Store(0)
	r.statsMu.Lock()
	r.elapsed = map[search.Strategy]*stats.Statistic{}
	r.moves = map[search.Strategy]*stats.Statistic{}
	r.statsMu.Unlock()
	records := make([]Record, len(deals)*len(strategies))
	tstart := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Threads)
	for i, d := range deals {
		for j, st := range strategies {
			idx := i*len(strategies) + j
			g.Go(func() error {
				rec, err := r.solveOne(gctx, d, st)
				if err != nil {
					return fmt.Errorf("deal %s: %w", d.Name, err)
				}
				records[idx] = rec
				SolveCounter.Add(1)
				mean, ci := r.pushStats(st, rec)
				if n := r.done.Add(1); n%100 == 0 {
					log.Info().Int64("done", n).Int("total", len(records)).
						Str("strategy", st.String()).Float64("mean-sec", mean).
						Float64("ci95-sec", ci).Msg("batch-progress")
				}
				return nil
			})
		}
	}
	err := g.Wait()
	log.Info().Int64("done", r.done.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).Msg("batch-finished")
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Runner) solveOne(ctx context.Context, d Deal, st search.Strategy) (Record, error) {
	s := search.NewSolver()
	s.SetStrategy(st)
	s.SetBudget(r.Budget)
	s.SetHeuristic(heuristic.New(r.Heuristic))
	res, err := s.Solve(ctx, d.Board)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Deal:        d.Name,
		Fingerprint: fmt.Sprintf("%016x", d.Board.Fingerprint()),
		Strategy:    st.String(),
		Outcome:     res.Outcome.String(),
		Expanded:    res.Expanded,
		Generated:   res.Generated,
		Visited:     res.Visited,
		ElapsedSec:  res.Elapsed.Seconds(),
	}
	if res.Solved() {
		rec.Moves = res.MoveCount()
	}
	return rec, nil
}
