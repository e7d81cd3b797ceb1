package heuristic

import (
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/freecell/board"
)

// Weights holds the tunable weights of the default evaluator. All weights
// are expected to be non-negative; the direction of each term is fixed by
// its calculator.
type Weights struct {
	Foundation   float64
	ReadyCard    float64
	BlockingCard float64
	EmptyColumn  float64
	FreeCell     float64
}

func DefaultWeights() Weights {
	return Weights{
		Foundation:   15,
		ReadyCard:    10,
		BlockingCard: 5,
		EmptyColumn:  3,
		FreeCell:     4,
	}
}

// Combined sums the scores of several calculators.
type Combined struct {
	calculators []Calculator
}

func NewCombined(calcs ...Calculator) *Combined {
	return &Combined{calculators: calcs}
}

func (c *Combined) Score(b *board.Board) float64 {
	return lo.SumBy(c.calculators, func(calc Calculator) float64 {
		return calc.Score(b)
	})
}

func (c *Combined) Type() string {
	names := lo.Map(c.calculators, func(calc Calculator, _ int) string {
		return calc.Type()
	})
	return "Combined(" + strings.Join(names, "+") + ")"
}

// New builds the standard four-term evaluator from w.
func New(w Weights) *Combined {
	return NewCombined(
		FoundationProgress{Weight: w.Foundation},
		BuriedReadyCards{ReadyWeight: w.ReadyCard, BlockingWeight: w.BlockingCard},
		EmptyColumns{Weight: w.EmptyColumn},
		OccupiedFreeCells{Weight: w.FreeCell},
	)
}

// Default is New(DefaultWeights()).
func Default() *Combined {
	return New(DefaultWeights())
}

// DFSOrdering is the cheap score used to order depth-first successors:
// foundation progress and free cell usage only.
func DFSOrdering() *Combined {
	w := DefaultWeights()
	return NewCombined(
		FoundationProgress{Weight: w.Foundation},
		OccupiedFreeCells{Weight: w.FreeCell},
	)
}
