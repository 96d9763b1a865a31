// Package clean repairs missing cells of a dataset.Table.
//
// Numeric columns are filled with the column mean and categorical columns
// with the column mode. Fill values are computed from the input table only,
// so a repaired cell never influences another one, and the input table is
// left untouched.
package clean

import (
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// Fill records how one column was repaired.
type Fill struct {
	Column string
	Kind   dataset.Kind
	Cells  int
	// Value is the replacement written into every missing cell of the column.
	Value dataset.Value
}

// Report describes a cleaning pass.
type Report struct {
	// Missing holds per-column missing counts of the input, in schema order.
	Missing []dataset.ColumnCount
	Fills   []Fill
	// Unrepaired lists columns with no observed values to derive a fill from.
	Unrepaired []string
}

// TotalMissing returns the number of missing cells seen in the input.
func (r *Report) TotalMissing() int {
	n := 0
	for _, m := range r.Missing {
		n += m.Count
	}
	return n
}

// Repaired reports whether any cell was replaced.
func (r *Report) Repaired() bool { return len(r.Fills) > 0 }

// Clean returns a copy of t with every repairable missing cell filled.
func Clean(t *dataset.Table) (*dataset.Table, *Report) {
	rep := &Report{Missing: t.MissingCounts()}
	if rep.TotalMissing() == 0 {
		return t.Clone(), rep
	}

	schema := t.Schema()
	cells := map[[2]int]dataset.Value{}
	for c, mc := range rep.Missing {
		if mc.Count == 0 {
			continue
		}
		col := schema.Columns[c]
		var (
			fill dataset.Value
			ok   bool
		)
		switch col.Kind {
		case dataset.Numeric:
			fill, ok = meanFill(t, c)
		case dataset.Categorical:
			fill, ok = modeFill(t, c)
		}
		if !ok {
			rep.Unrepaired = append(rep.Unrepaired, col.Name)
			continue
		}
		for r := 0; r < t.Len(); r++ {
			if t.At(r, c).IsMissing() {
				cells[[2]int{r, c}] = fill
			}
		}
		rep.Fills = append(rep.Fills, Fill{Column: col.Name, Kind: col.Kind, Cells: mc.Count, Value: fill})
	}
	if len(cells) == 0 {
		return t.Clone(), rep
	}
	out, err := t.WithCells(cells)
	if err != nil {
		// Fills come from the column's own observed values, so they always validate.
		panic("clean: " + err.Error())
	}
	return out, rep
}

func meanFill(t *dataset.Table, c int) (dataset.Value, bool) {
	var observed []float64
	for r := 0; r < t.Len(); r++ {
		if v := t.At(r, c); !v.IsMissing() {
			observed = append(observed, v.Float())
		}
	}
	m, err := stats.Mean(observed)
	if err != nil {
		return dataset.Value{}, false
	}
	return dataset.Num(m), true
}

// modeFill picks the most frequent observed value. Ties go to the value
// encountered first in row order.
func modeFill(t *dataset.Table, c int) (dataset.Value, bool) {
	counts := map[string]int{}
	var order []string
	for r := 0; r < t.Len(); r++ {
		v := t.At(r, c)
		if v.IsMissing() {
			continue
		}
		s := v.Text()
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	if len(order) == 0 {
		return dataset.Value{}, false
	}
	best := order[0]
	for _, s := range order[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return dataset.Cat(best), true
}
