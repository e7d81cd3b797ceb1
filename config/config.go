// Package config holds the settings shared by the command-line tools. Values
// come from, in increasing priority: defaults, an optional freecell.yaml,
// FREECELL_* environment variables and command-line flags.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/freecell/heuristic"
	"github.com/domino14/freecell/search"
)

const (
	ConfigDebug              = "debug"
	ConfigStrategy           = "strategy"
	ConfigMaxTime            = "max-time"
	ConfigMaxNodes           = "max-nodes"
	ConfigMaxDepth           = "max-depth"
	ConfigMemoryFraction     = "memory-fraction"
	ConfigStatesPath         = "states-path"
	ConfigWeightFoundation   = "weight-foundation"
	ConfigWeightReadyCard    = "weight-ready-card"
	ConfigWeightBlockingCard = "weight-blocking-card"
	ConfigWeightEmptyColumn  = "weight-empty-column"
	ConfigWeightFreeCell     = "weight-free-cell"
	ConfigCPUProfile         = "cpu-profile"
	ConfigThreads            = "threads"
)

type Config struct {
	*viper.Viper

	args []string
}

func setDefaults(v *viper.Viper) {
	w := heuristic.DefaultWeights()
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigStrategy, search.AStar.String())
	v.SetDefault(ConfigMaxTime, 60*time.Second)
	v.SetDefault(ConfigMaxNodes, 0)
	v.SetDefault(ConfigMaxDepth, 0)
	v.SetDefault(ConfigMemoryFraction, 0.25)
	v.SetDefault(ConfigStatesPath, "./states")
	v.SetDefault(ConfigWeightFoundation, w.Foundation)
	v.SetDefault(ConfigWeightReadyCard, w.ReadyCard)
	v.SetDefault(ConfigWeightBlockingCard, w.BlockingCard)
	v.SetDefault(ConfigWeightEmptyColumn, w.EmptyColumn)
	v.SetDefault(ConfigWeightFreeCell, w.FreeCell)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigThreads, 1)
}

// DefaultConfig has the defaults only; it reads no file, environment or
// flags. Tests use it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Flags returns the flag set understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("freecell", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigStrategy, search.AStar.String(), "search strategy: astar, greedy, bfs or dfs")
	fs.Duration(ConfigMaxTime, 60*time.Second, "wall-clock budget per solve; 0 for none")
	fs.Uint64(ConfigMaxNodes, 0, "node budget per solve; 0 derives it from system memory")
	fs.Int(ConfigMaxDepth, 0, "depth bound for dfs; 0 uses the dfs default")
	fs.Float64(ConfigMemoryFraction, 0.25, "fraction of memory the visited set may use when max-nodes is 0")
	fs.String(ConfigStatesPath, "./states", "directory for saved boards")
	fs.Float64(ConfigWeightFoundation, 15, "heuristic reward per card on a foundation")
	fs.Float64(ConfigWeightReadyCard, 10, "heuristic reward per buried card that could go to a foundation")
	fs.Float64(ConfigWeightBlockingCard, 5, "heuristic penalty per card covering such a card")
	fs.Float64(ConfigWeightEmptyColumn, 3, "heuristic reward per empty tableau column")
	fs.Float64(ConfigWeightFreeCell, 4, "heuristic penalty per occupied free cell")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.Int(ConfigThreads, 1, "parallel solves in batch mode")
	return fs
}

// Load reads the configuration. args are command-line arguments without the
// program name. Flags in extra are parsed and bound as well, so tools can
// add their own settings.
func (c *Config) Load(args []string, extra ...*pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("freecell")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".freecell"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	v.SetEnvPrefix("FREECELL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := Flags()
	for _, e := range extra {
		fs.AddFlagSet(e)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	c.Viper = v
	c.args = fs.Args()
	return nil
}

// Args are the positional arguments left over after Load parsed the flags.
func (c *Config) Args() []string {
	return c.args
}

// Strategy is the configured search strategy.
func (c *Config) Strategy() (search.Strategy, error) {
	return search.ParseStrategy(c.GetString(ConfigStrategy))
}

// Budget is the configured search budget. A zero max-nodes setting is
// replaced with a bound derived from system memory.
func (c *Config) Budget() search.Budget {
	maxNodes := c.GetUint64(ConfigMaxNodes)
	if maxNodes == 0 {
		maxNodes = search.DefaultMaxNodes(c.GetFloat64(ConfigMemoryFraction))
	}
	return search.Budget{
		MaxTime:  c.GetDuration(ConfigMaxTime),
		MaxNodes: maxNodes,
		MaxDepth: c.GetInt(ConfigMaxDepth),
	}
}

// HeuristicWeights are the configured weights of the default evaluator.
func (c *Config) HeuristicWeights() heuristic.Weights {
	return heuristic.Weights{
		Foundation:   c.GetFloat64(ConfigWeightFoundation),
		ReadyCard:    c.GetFloat64(ConfigWeightReadyCard),
		BlockingCard: c.GetFloat64(ConfigWeightBlockingCard),
		EmptyColumn:  c.GetFloat64(ConfigWeightEmptyColumn),
		FreeCell:     c.GetFloat64(ConfigWeightFreeCell),
	}
}

// NewSolver builds a solver with the configured strategy, budget and
// heuristic.
func (c *Config) NewSolver() (*search.Solver, error) {
	st, err := c.Strategy()
	if err != nil {
		return nil, err
	}
	s := search.NewSolver()
	s.SetStrategy(st)
	s.SetBudget(c.Budget())
	s.SetHeuristic(heuristic.New(c.HeuristicWeights()))
	return s, nil
}

// SanitizedSettings returns all settings, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
