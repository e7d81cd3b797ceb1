package automatic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/freecell/search"
	"github.com/domino14/freecell/stats"
)

// StrategySummary aggregates the records of one strategy.
type StrategySummary struct {
	Strategy string        `yaml:"strategy"`
	Runs     int           `yaml:"runs"`
	Solved   int           `yaml:"solved"`
	TimedOut int           `yaml:"timed_out"`
	Unsolved int           `yaml:"no_solution"`
	Moves    stats.Summary `yaml:"moves"`
	Elapsed  stats.Summary `yaml:"elapsed_sec"`
	Expanded stats.Summary `yaml:"expanded"`
}

// WriteRecords writes records as a YAML list.
func WriteRecords(w io.Writer, records []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

// WriteRecordFile writes records to a new file at path.
func WriteRecordFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRecords(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
		return nil, err
	}
	return records, nil
}

// Summarize groups records by strategy. Move counts only include solved
// runs; times and node counts include every run. Strategies come back in
// the order of search.AllStrategies.
func Summarize(records []Record) []StrategySummary {
	byStrategy := lo.GroupBy(records, func(r Record) string { return r.Strategy })
	var out []StrategySummary
	for _, st := range search.AllStrategies() {
		recs, ok := byStrategy[st.String()]
		if !ok {
			continue
		}
		solved := lo.Filter(recs, func(r Record, _ int) bool { return r.Solved() })
		out = append(out, StrategySummary{
			Strategy: st.String(),
			Runs:     len(recs),
			Solved:   len(solved),
			TimedOut: lo.CountBy(recs, func(r Record) bool { return r.Outcome == search.TimedOut.String() }),
			Unsolved: lo.CountBy(recs, func(r Record) bool { return r.Outcome == search.NoSolution.String() }),
			Moves: stats.Summarize(lo.Map(solved, func(r Record, _ int) float64 {
				return float64(r.Moves)
			})),
			Elapsed: stats.Summarize(lo.Map(recs, func(r Record, _ int) float64 {
				return r.ElapsedSec
			})),
			Expanded: stats.Summarize(lo.Map(recs, func(r Record, _ int) float64 {
				return float64(r.Expanded)
			})),
		})
	}
	return out
}

// SolutionLengths returns the move counts of solved records for st.
func SolutionLengths(records []Record, st search.Strategy) []float64 {
	return lo.FilterMap(records, func(r Record, _ int) (float64, bool) {
		return float64(r.Moves), r.Solved() && r.Strategy == st.String()
	})
}

// FormatSummaries renders summaries as text, with a histogram of solution
// lengths per strategy.
func FormatSummaries(records []Record) string {
	var sb strings.Builder
	for _, s := range Summarize(records) {
		fmt.Fprintf(&sb, "%s: %d runs, %d solved (%.1f%%), %d timed out, %d no solution\n",
			s.Strategy, s.Runs, s.Solved, 100*float64(s.Solved)/float64(s.Runs), s.TimedOut, s.Unsolved)
		fmt.Fprintf(&sb, "  moves:    %v\n", s.Moves)
		fmt.Fprintf(&sb, "  seconds:  %v\n", s.Elapsed)
		fmt.Fprintf(&sb, "  expanded: %v\n", s.Expanded)
		st, err := search.ParseStrategy(s.Strategy)
		if err != nil {
			continue
		}
		if lengths := SolutionLengths(records, st); len(lengths) > 1 {
			sb.WriteString("  solution lengths:\n")
			stats.PrintHistogram(&sb, 10, 40, lengths)
		}
	}
	return sb.String()
}

// AnalyzeRecordFile reads a YAML file written by WriteRecords and returns
// the formatted summaries.
func AnalyzeRecordFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	records, err := ReadRecords(f)
	if err != nil {
		return "", err
	}
	return FormatSummaries(records), nil
}
