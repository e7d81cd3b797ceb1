package stats

import (
	"fmt"
	"io"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one sample, such as solution lengths or solve times.
type Summary struct {
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	Stdev  float64 `yaml:"stdev"`
	Median float64 `yaml:"median"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// Summarize computes the summary of vals. An empty sample gives a zero
// Summary.
func Summarize(vals []float64) Summary {
	if len(vals) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return Summary{
		Count:  len(sorted),
		Mean:   mean,
		Stdev:  std,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.2f sd=%.2f median=%.2f min=%.2f max=%.2f",
		s.Count, s.Mean, s.Stdev, s.Median, s.Min, s.Max)
}

// Histogram buckets vals into bins. It returns false for an empty sample.
func Histogram(bins int, vals []float64) (histogram.Histogram, bool) {
	if len(vals) == 0 {
		return histogram.Histogram{}, false
	}
	return histogram.Hist(bins, vals), true
}

// PrintHistogram writes a text histogram of vals to w, width characters
// wide.
func PrintHistogram(w io.Writer, bins, width int, vals []float64) error {
	h, ok := Histogram(bins, vals)
	if !ok {
		_, err := fmt.Fprintln(w, "(no data)")
		return err
	}
	return histogram.Fprint(w, h, histogram.Linear(width))
}
