// autosolve solves a batch of deals and reports how each strategy did.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/freecell/automatic"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/search"
)

const (
	flagDeals      = "deals"
	flagStrategies = "strategies"
	flagOut        = "out"
	flagSeeds      = "seeds"
	flagGenSeeds   = "gen-seeds"
	flagAnalyze    = "analyze"
)

func toolFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("autosolve", pflag.ContinueOnError)
	fs.String(flagDeals, "1-100", "numbered deals to solve: n or from-to")
	fs.String(flagStrategies, "astar", "comma-separated strategies to compare")
	fs.String(flagOut, "", "write per-solve records to this YAML file")
	fs.String(flagSeeds, "", "solve deals shuffled from the seeds in this file instead of numbered deals")
	fs.Int(flagGenSeeds, 0, "write this many random seeds to the seeds file and exit")
	fs.String(flagAnalyze, "", "summarize a records file written with --out and exit")
	return fs
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:], toolFlags()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("autosolve-failed")
	}
}

func run(cfg *config.Config) error {
	if path := cfg.GetString(flagAnalyze); path != "" {
		out, err := automatic.AnalyzeRecordFile(path)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	if n := cfg.GetInt(flagGenSeeds); n > 0 {
		path := cfg.GetString(flagSeeds)
		if path == "" {
			return fmt.Errorf("--%s needs --%s", flagGenSeeds, flagSeeds)
		}
		if err := automatic.SaveSeeds(path, automatic.GenerateSeeds(n)); err != nil {
			return err
		}
		log.Info().Int("n", n).Str("path", path).Msg("wrote-seeds")
		return nil
	}

	var deals []automatic.Deal
	if path := cfg.GetString(flagSeeds); path != "" {
		seeds, err := automatic.LoadSeeds(path)
		if err != nil {
			return err
		}
		deals = automatic.SeededDeals(seeds)
	} else {
		var err error
		deals, err = automatic.ParseDealRange(cfg.GetString(flagDeals))
		if err != nil {
			return err
		}
	}

	var strategies []search.Strategy
	for _, s := range strings.Split(cfg.GetString(flagStrategies), ",") {
		st, err := search.ParseStrategy(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		strategies = append(strategies, st)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Int("deals", len(deals)).Int("strategies", len(strategies)).
		Int("threads", cfg.GetInt(config.ConfigThreads)).Msg("starting-batch")
	runner := automatic.NewRunner(cfg.GetInt(config.ConfigThreads), cfg.Budget(), cfg.HeuristicWeights())
	records, err := runner.Run(ctx, deals, strategies)
	if err != nil {
		return err
	}
	if path := cfg.GetString(flagOut); path != "" {
		if err := automatic.WriteRecordFile(path, records); err != nil {
			return err
		}
		log.Info().Str("path", path).Int("records", len(records)).Msg("wrote-records")
	}
	fmt.Print(automatic.FormatSummaries(records))
	return nil
}
