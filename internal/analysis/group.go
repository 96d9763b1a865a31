package analysis

import (
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
)

// GroupRow holds the per-column means of the rows sharing one label value.
type GroupRow struct {
	Label string
	Size  int
	Means []float64 // aligned with GroupAggregate.Columns
}

// GroupAggregate is the mean of every numeric column per label value.
// Groups appear in first-seen label order.
type GroupAggregate struct {
	LabelColumn string
	Columns     []string
	Groups      []GroupRow
}

// Labels returns the group labels in order.
func (g *GroupAggregate) Labels() []string {
	out := make([]string, len(g.Groups))
	for i, gr := range g.Groups {
		out[i] = gr.Label
	}
	return out
}

// Mean returns the mean of column for label.
func (g *GroupAggregate) Mean(label, column string) (float64, bool) {
	ci := indexOf(g.Columns, column)
	if ci < 0 {
		return 0, false
	}
	for _, gr := range g.Groups {
		if gr.Label == label {
			return gr.Means[ci], true
		}
	}
	return 0, false
}

// Column returns the per-group means of one column in group order.
func (g *GroupAggregate) Column(column string) ([]float64, bool) {
	ci := indexOf(g.Columns, column)
	if ci < 0 {
		return nil, false
	}
	out := make([]float64, len(g.Groups))
	for i, gr := range g.Groups {
		out[i] = gr.Means[ci]
	}
	return out, true
}

// GroupMeans averages every numeric column per label value. Rows without a label are skipped.
func GroupMeans(t *dataset.Table) (*GroupAggregate, error) {
	names, cols, err := numericColumns("group means", t)
	if err != nil {
		return nil, err
	}
	label := t.Schema().Label
	if label == "" {
		return nil, errorf("group means", "table has no label column")
	}
	if len(names) == 0 {
		return nil, errorf("group means", "table has no numeric columns")
	}

	type acc struct {
		size int
		sum  []float64
	}
	var order []string
	groups := map[string]*acc{}
	for r, l := range t.Labels() {
		if l == "" {
			continue
		}
		a := groups[l]
		if a == nil {
			a = &acc{sum: make([]float64, len(names))}
			groups[l] = a
			order = append(order, l)
		}
		a.size++
		for c := range names {
			a.sum[c] += cols[c][r]
		}
	}
	if len(order) == 0 {
		return nil, errorf("group means", "label column %q has no values", label)
	}

	out := &GroupAggregate{LabelColumn: label, Columns: names, Groups: make([]GroupRow, 0, len(order))}
	for _, l := range order {
		a := groups[l]
		means := make([]float64, len(names))
		for c := range names {
			means[c] = a.sum[c] / float64(a.size)
		}
		out.Groups = append(out.Groups, GroupRow{Label: l, Size: a.size, Means: means})
	}
	return out, nil
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
