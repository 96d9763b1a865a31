package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// ColumnStats is the descriptive summary of one numeric column.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	// Std is the sample standard deviation (n-1 denominator); NaN for a single row.
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// numericColumns returns the numeric column names with their values,
// refusing columns that still hold missing cells.
func numericColumns(op string, t *dataset.Table) ([]string, [][]float64, error) {
	if t == nil || t.Len() == 0 {
		return nil, nil, errorf(op, "table has no rows")
	}
	names := t.Schema().NumericColumns()
	cols := make([][]float64, len(names))
	for i, name := range names {
		xs, err := t.Floats(name)
		if err != nil {
			return nil, nil, errorf(op, "%v", err)
		}
		missing := 0
		for _, x := range xs {
			if math.IsNaN(x) {
				missing++
			}
		}
		if missing > 0 {
			return nil, nil, errorf(op, "column %q has %d missing values", name, missing)
		}
		cols[i] = xs
	}
	return names, cols, nil
}

// Describe computes count, mean, std, min, quartiles and max per numeric column.
func Describe(t *dataset.Table) ([]ColumnStats, error) {
	names, cols, err := numericColumns("describe", t)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errorf("describe", "table has no numeric columns")
	}
	out := make([]ColumnStats, len(names))
	for i, xs := range cols {
		s, err := summarize(xs)
		if err != nil {
			return nil, errorf("describe", "column %q: %v", names[i], err)
		}
		s.Column = names[i]
		out[i] = s
	}
	return out, nil
}

func summarize(xs []float64) (ColumnStats, error) {
	s := ColumnStats{Count: len(xs), Std: math.NaN()}
	var err error
	if s.Mean, err = stats.Mean(xs); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(xs); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(xs); err != nil {
		return s, err
	}
	if len(xs) > 1 {
		if s.Std, err = stats.StandardDeviationSample(xs); err != nil {
			return s, err
		}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s, nil
}

// quantile interpolates linearly between the closest ranks of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
