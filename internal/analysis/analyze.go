// Package analysis derives descriptive statistics, per-label means and a
// correlation matrix from a cleaned dataset.Table.
package analysis

import (
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
)

// Result bundles the three derived views of a table.
type Result struct {
	Stats  []ColumnStats
	Groups *GroupAggregate
	Corr   *CorrMatrix
}

// Analyze computes every view. It fails with *AnalysisError when the table
// has no rows, fewer than two numeric columns, missing numeric cells, or no
// label column.
func Analyze(t *dataset.Table) (*Result, error) {
	if t == nil || t.Len() == 0 {
		return nil, errorf("analyze", "table has no rows")
	}
	if n := len(t.Schema().NumericColumns()); n < 2 {
		return nil, errorf("analyze", "need at least two numeric columns, have %d", n)
	}
	st, err := Describe(t)
	if err != nil {
		return nil, err
	}
	g, err := GroupMeans(t)
	if err != nil {
		return nil, err
	}
	c, err := Correlate(t)
	if err != nil {
		return nil, err
	}
	return &Result{Stats: st, Groups: g, Corr: c}, nil
}
