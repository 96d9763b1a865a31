// Package report prints the console narrative of a pipeline run and
// serializes its RunSummary.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/iriscope-cli/internal/analysis"
	"github.com/KaramelBytes/iriscope-cli/internal/charts"
	"github.com/KaramelBytes/iriscope-cli/internal/clean"
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// FormatError records a section the reporter could not render in full.
type FormatError struct {
	Section string
	Err     error
}

func (e *FormatError) Error() string {
	if e == nil {
		return "format error"
	}
	return fmt.Sprintf("report section %q: %v", e.Section, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	heading  = color.New(color.Bold).SprintFunc()
)

// Reporter writes run progress to an io.Writer. Its methods never fail:
// a section that panics or cannot be written is recorded in Faults and
// whatever was formatted before the fault is still emitted.
type Reporter struct {
	out    io.Writer
	faults []*FormatError
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// Faults returns every formatting fault seen so far.
func (r *Reporter) Faults() []*FormatError {
	return append([]*FormatError(nil), r.faults...)
}

func (r *Reporter) section(name string, fn func(b *bytes.Buffer)) {
	var b bytes.Buffer
	defer func() {
		if p := recover(); p != nil {
			fe := &FormatError{Section: name, Err: fmt.Errorf("panic: %v", p)}
			r.faults = append(r.faults, fe)
			fmt.Fprintf(&b, "%s could not format %s\n", warnMark("⚠"), name)
		}
		if _, err := r.out.Write(b.Bytes()); err != nil {
			r.faults = append(r.faults, &FormatError{Section: name, Err: err})
		}
	}()
	fn(&b)
}

func header(b *bytes.Buffer, title string) {
	fmt.Fprintf(b, "\n%s\n", heading("--- "+title+" ---"))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func newTable(w io.Writer, head []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(head)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	return tw
}

// Start prints the opening line.
func (r *Reporter) Start() {
	r.section("start", func(b *bytes.Buffer) {
		b.WriteString("Starting data analysis and visualization project...\n")
	})
}

// Loading announces the load stage.
func (r *Reporter) Loading(name string) {
	r.section("loading", func(b *bytes.Buffer) {
		fmt.Fprintf(b, "Loading the %s dataset...\n", name)
	})
}

// Loaded confirms the load stage.
func (r *Reporter) Loaded() {
	r.section("loaded", func(b *bytes.Buffer) {
		fmt.Fprintf(b, "%s Dataset loaded successfully!\n", okMark("✓"))
	})
}

// Head prints the first n rows.
func (r *Reporter) Head(t *dataset.Table, n int) {
	r.section("head", func(b *bytes.Buffer) {
		rows := t.Head(n)
		header(b, fmt.Sprintf("First %d rows of the dataset", len(rows)))
		head := []string{""}
		for _, c := range t.Schema().Columns {
			head = append(head, c.Name)
		}
		tw := newTable(b, head)
		for i, row := range rows {
			line := []string{strconv.Itoa(i)}
			for _, v := range row {
				line = append(line, v.String())
			}
			tw.Append(line)
		}
		tw.Render()
	})
}

// Info prints shape, sample count and feature count.
func (r *Reporter) Info(t *dataset.Table) {
	r.section("info", func(b *bytes.Buffer) {
		rows, cols := t.Shape()
		features := cols
		if t.Schema().Label != "" {
			features--
		}
		header(b, "Dataset Information")
		fmt.Fprintf(b, "Dataset shape: (%d, %d)\n", rows, cols)
		fmt.Fprintf(b, "Number of samples: %d\n", rows)
		fmt.Fprintf(b, "Number of features: %d\n", features)
	})
}

// Missing prints per-column missing counts and what cleaning did about them.
func (r *Reporter) Missing(rep *clean.Report) {
	r.section("missing", func(b *bytes.Buffer) {
		header(b, "Missing Values Check")
		for _, m := range rep.Missing {
			fmt.Fprintf(b, "%-20s %d\n", m.Column, m.Count)
		}
		if rep.TotalMissing() == 0 {
			fmt.Fprintf(b, "%s No missing values found. The dataset is clean!\n", okMark("✓"))
			return
		}
		b.WriteString("Cleaning the dataset by filling missing values...\n")
		for _, f := range rep.Fills {
			how := "mean"
			if f.Kind == dataset.Categorical {
				how = "mode"
			}
			fmt.Fprintf(b, "  %s: %d cell(s) filled with %s %s\n", f.Column, f.Cells, how, f.Value)
		}
		for _, c := range rep.Unrepaired {
			fmt.Fprintf(b, "%s Column %s has no observed values and was left missing\n", warnMark("⚠"), c)
		}
		if rep.Repaired() {
			fmt.Fprintf(b, "%s Missing values handled successfully!\n", okMark("✓"))
		}
	})
}

// DataTypes prints the element type of every column.
func (r *Reporter) DataTypes(t *dataset.Table) {
	r.section("dtypes", func(b *bytes.Buffer) {
		header(b, "Data Types")
		for _, c := range t.Schema().Columns {
			fmt.Fprintf(b, "%-20s %s\n", c.Name, c.Kind)
		}
	})
}

// Stats prints the descriptive statistics with one column per feature.
func (r *Reporter) Stats(stats []analysis.ColumnStats) {
	r.section("stats", func(b *bytes.Buffer) {
		header(b, "Basic Statistics")
		head := []string{""}
		for _, s := range stats {
			head = append(head, s.Column)
		}
		tw := newTable(b, head)
		rows := []struct {
			name string
			get  func(analysis.ColumnStats) float64
		}{
			{"count", func(s analysis.ColumnStats) float64 { return float64(s.Count) }},
			{"mean", func(s analysis.ColumnStats) float64 { return s.Mean }},
			{"std", func(s analysis.ColumnStats) float64 { return s.Std }},
			{"min", func(s analysis.ColumnStats) float64 { return s.Min }},
			{"25%", func(s analysis.ColumnStats) float64 { return s.Q1 }},
			{"50%", func(s analysis.ColumnStats) float64 { return s.Median }},
			{"75%", func(s analysis.ColumnStats) float64 { return s.Q3 }},
			{"max", func(s analysis.ColumnStats) float64 { return s.Max }},
		}
		for _, row := range rows {
			line := []string{row.name}
			for _, s := range stats {
				line = append(line, num(row.get(s)))
			}
			tw.Append(line)
		}
		tw.Render()
	})
}

// GroupMeans prints one row per label.
func (r *Reporter) GroupMeans(agg *analysis.GroupAggregate) {
	r.section("group means", func(b *bytes.Buffer) {
		header(b, "Mean Values Grouped by "+agg.LabelColumn)
		tw := newTable(b, append([]string{agg.LabelColumn}, agg.Columns...))
		for _, g := range agg.Groups {
			line := []string{g.Label}
			for _, m := range g.Means {
				line = append(line, num(m))
			}
			tw.Append(line)
		}
		tw.Render()
	})
}

// Correlation prints the correlation matrix.
func (r *Reporter) Correlation(m *analysis.CorrMatrix) {
	r.section("correlation", func(b *bytes.Buffer) {
		header(b, "Correlation Matrix")
		tw := newTable(b, append([]string{""}, m.Columns...))
		for i, c := range m.Columns {
			line := []string{c}
			for _, v := range m.Values[i] {
				line = append(line, num(v))
			}
			tw.Append(line)
		}
		tw.Render()
	})
}

// Visualizations opens the chart section.
func (r *Reporter) Visualizations() {
	r.section("visualizations", func(b *bytes.Buffer) {
		header(b, "Creating Visualizations")
	})
}

// Chart prints the notice for one rendered (or failed) artifact.
func (r *Reporter) Chart(res charts.Result) {
	r.section("chart", func(b *bytes.Buffer) {
		a := res.Artifact
		if res.Err != nil {
			fmt.Fprintf(b, "%s %s could not be saved as '%s': %v\n", failMark("✗"), a.Kind, a.Name, res.Err.Err)
			return
		}
		fmt.Fprintf(b, "%s %s created and saved as '%s'\n", okMark("✓"), a.Kind, a.Name)
	})
}

// ChartSummary lists the failed artifacts; it prints nothing when all succeeded.
func (r *Reporter) ChartSummary(out *charts.Outcome) {
	r.section("chart summary", func(b *bytes.Buffer) {
		failures := out.Failures()
		if len(failures) == 0 {
			return
		}
		fmt.Fprintf(b, "%s %d of %d charts failed:\n", warnMark("⚠"), len(failures), len(out.Results))
		for _, f := range failures {
			fmt.Fprintf(b, "  - %s\n", f.Error())
		}
	})
}

// Findings prints the fixed list of observations.
func (r *Reporter) Findings() {
	r.section("findings", func(b *bytes.Buffer) {
		header(b, "Key Findings and Observations")
		for i, f := range Findings {
			fmt.Fprintf(b, "%d. %s\n", i+1, f)
		}
	})
}

// Complete prints the closing line.
func (r *Reporter) Complete() {
	r.section("complete", func(b *bytes.Buffer) {
		fmt.Fprintf(b, "\n%s Data analysis and visualization completed successfully!\n", okMark("✓"))
	})
}
