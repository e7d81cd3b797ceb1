package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/automatic"
	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/search"
)

type solveParams struct {
	solver *search.Solver
	board  *board.Board
	export string
}

func (sc *ShellController) solvePrepare(cmd *shellcmd) (*solveParams, error) {
	solver, err := sc.cfg.NewSolver()
	if err != nil {
		return nil, err
	}
	if s := cmd.options.String("strategy"); s != "" {
		st, err := search.ParseStrategy(s)
		if err != nil {
			return nil, err
		}
		solver.SetStrategy(st)
	}
	budget := sc.cfg.Budget()
	if budget.MaxTime, err = cmd.options.Duration("maxtime", budget.MaxTime); err != nil {
		return nil, err
	}
	if budget.MaxDepth, err = cmd.options.IntDefault("maxdepth", budget.MaxDepth); err != nil {
		return nil, err
	}
	if s := cmd.options.String("maxnodes"); s != "" {
		if budget.MaxNodes, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, err
		}
	}
	solver.SetBudget(budget)

	sc.gameMu.Lock()
	defer sc.gameMu.Unlock()
	return &solveParams{
		solver: solver,
		board:  sc.game.Board(),
		export: cmd.options.String("export"),
	}, nil
}

func (sc *ShellController) solveRunSync(ctx context.Context, params *solveParams) (string, error) {
	res, err := params.solver.Solve(ctx, params.board)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s in %v, %d expanded, %d visited\n",
		res.Strategy, res.Outcome, res.Elapsed.Round(time.Millisecond), res.Expanded, res.Visited)

	sc.gameMu.Lock()
	defer sc.gameMu.Unlock()
	sc.lastResult = res
	if len(res.Path) > 1 {
		if err := sc.game.SetSolution(res.Path); err != nil {
			// The board was changed while the solver ran.
			log.Debug().Err(err).Msg("solution-not-loaded")
			sb.WriteString("board changed during solve; solution not loaded\n")
		} else {
			label := "solution"
			if res.Partial {
				label = "partial path"
			}
			fmt.Fprintf(&sb, "%s loaded (%d moves); use `next`, `prev` and `hint`\n", label, res.MoveCount())
			for i, m := range res.Moves {
				sb.WriteString(moveTableRow(i, m))
				sb.WriteString("\n")
			}
		}
	}
	if params.export != "" {
		if err := exportResult(params.export, res); err != nil {
			return sb.String(), err
		}
		fmt.Fprintf(&sb, "exported to %s\n", params.export)
	}
	return sb.String(), nil
}

func (sc *ShellController) solveSync(cmd *shellcmd) (*Response, error) {
	params, err := sc.solvePrepare(cmd)
	if err != nil {
		return nil, err
	}
	out, err := sc.solveRunSync(context.Background(), params)
	if err != nil {
		return nil, err
	}
	return msg(out), nil
}

// solve starts a background solve; its report is printed when it ends.
func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	params, err := sc.solvePrepare(cmd)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.solveMu.Lock()
	sc.solveCancel = cancel
	sc.solveDone = done
	sc.solveMu.Unlock()

	go func() {
		defer func() {
			sc.solveMu.Lock()
			sc.solveCancel = nil
			sc.solveMu.Unlock()
			cancel()
			close(done)
		}()
		out, err := sc.solveRunSync(ctx, params)
		if err != nil {
			sc.showError(err)
		}
		if out != "" {
			sc.showMessage(out)
		}
	}()
	return msg(fmt.Sprintf("solving with %s; `solve stop` to interrupt", params.solver.Strategy())), nil
}

func (sc *ShellController) solveStop() (*Response, error) {
	sc.solveMu.Lock()
	cancel := sc.solveCancel
	sc.solveMu.Unlock()
	if cancel == nil {
		return nil, errors.New("no solve is running")
	}
	cancel()
	return msg("stopping solver"), nil
}

// bench solves a range of numbered deals and prints summaries.
func (sc *ShellController) bench(cmd *shellcmd) (*Response, error) {
	if file := cmd.options.String("analyze"); file != "" {
		out, err := automatic.AnalyzeRecordFile(file)
		if err != nil {
			return nil, err
		}
		return msg(out), nil
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: bench <deal|from-to> [-strategies astar,bfs] [-threads n] [-maxtime d] [-out file.yaml]")
	}
	deals, err := automatic.ParseDealRange(cmd.args[0])
	if err != nil {
		return nil, err
	}
	strategies := []search.Strategy{}
	stratList := cmd.options.String("strategies")
	if stratList == "" {
		stratList = sc.cfg.GetString(config.ConfigStrategy)
	}
	for _, s := range strings.Split(stratList, ",") {
		st, err := search.ParseStrategy(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, st)
	}
	threads, err := cmd.options.IntDefault("threads", sc.cfg.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	budget := sc.cfg.Budget()
	if budget.MaxTime, err = cmd.options.Duration("maxtime", budget.MaxTime); err != nil {
		return nil, err
	}

	runner := automatic.NewRunner(threads, budget, sc.cfg.HeuristicWeights())
	records, err := runner.Run(context.Background(), deals, strategies)
	if err != nil {
		return nil, err
	}
	out := automatic.FormatSummaries(records)
	if path := cmd.options.String("out"); path != "" {
		if err := automatic.WriteRecordFile(path, records); err != nil {
			return nil, err
		}
		out += "wrote records to " + path + "\n"
	}
	return msg(out), nil
}
