package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/iriscope-cli/internal/analysis"
	"github.com/KaramelBytes/iriscope-cli/internal/charts"
	"github.com/KaramelBytes/iriscope-cli/internal/clean"
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func init() { color.NoColor = true }

var tenRows = [][]float64{
	{1.0, 2.0, 0.5}, {1.2, 2.1, 0.4}, {0.9, 1.8, 0.6}, {1.1, 2.2, 0.5},
	{3.0, 1.0, 2.5}, {3.2, 1.1, 2.4}, {2.9, 0.9, 2.6},
	{5.0, 0.2, 4.5}, {5.3, 0.3, 4.4}, {4.8, 0.1, 4.7},
}

var tenLabels = []string{"a", "a", "a", "a", "b", "b", "b", "c", "c", "c"}

func tenRowTable(t *testing.T, holes ...[2]int) *dataset.Table {
	t.Helper()
	schema := dataset.Schema{
		Columns: []dataset.Column{
			{Name: "f1", Kind: dataset.Numeric},
			{Name: "f2", Kind: dataset.Numeric},
			{Name: "f3", Kind: dataset.Numeric},
			{Name: "label", Kind: dataset.Categorical, Levels: []string{"a", "b", "c"}},
		},
		Label: "label",
	}
	rows := make([]dataset.Row, len(tenRows))
	for i, r := range tenRows {
		rows[i] = dataset.Row{dataset.Num(r[0]), dataset.Num(r[1]), dataset.Num(r[2]), dataset.Cat(tenLabels[i])}
	}
	for _, h := range holes {
		rows[h[0]][h[1]] = dataset.Missing()
	}
	tbl, err := dataset.New(schema, rows)
	require.NoError(t, err)
	return tbl
}

func testOptions(dir string, tbl *dataset.Table) Options {
	return Options{
		Source: "test",
		Load:   func() (*dataset.Table, error) { return tbl, nil },
		Charts: charts.Options{
			OutDir:          dir,
			Width:           3 * vg.Inch,
			Height:          2 * vg.Inch,
			PanelSize:       vg.Inch,
			BarColumn:       "f1",
			HistogramColumn: "f3",
			ScatterX:        "f1",
			ScatterY:        "f3",
		},
	}
}

func countFindingLines(out string) int {
	i := strings.Index(out, "Key Findings")
	if i < 0 {
		return 0
	}
	n := 0
	for _, line := range strings.Split(out[i:], "\n") {
		if len(line) > 2 && line[0] >= '1' && line[0] <= '9' && line[1] == '.' {
			n++
		}
	}
	return n
}

func TestRunTenRowScenario(t *testing.T) {
	dir := t.TempDir()
	tbl := tenRowTable(t)
	var buf bytes.Buffer

	sum, err := New(&buf, testOptions(dir, tbl)).Run()
	require.NoError(t, err)

	assert.False(t, sum.Clean.Repaired())
	assert.Equal(t, 0, sum.Clean.TotalMissing())

	require.NotNil(t, sum.Groups)
	assert.Equal(t, []string{"a", "b", "c"}, sum.Groups.Labels())
	m, ok := sum.Groups.Mean("b", "f1")
	require.True(t, ok)
	assert.InDelta(t, (3.0+3.2+2.9)/3, m, 1e-12)

	require.Len(t, sum.Corr.Values, 3)
	for i := range sum.Corr.Values {
		require.Len(t, sum.Corr.Values[i], 3)
		assert.Equal(t, 1.0, sum.Corr.Values[i][i])
		for j := range sum.Corr.Values[i] {
			assert.Equal(t, sum.Corr.Values[i][j], sum.Corr.Values[j][i])
		}
	}

	assert.Len(t, sum.Artifacts, 5)
	assert.Empty(t, sum.Failures)
	for _, a := range sum.Artifacts {
		_, err := os.Stat(filepath.Join(dir, a.Name))
		assert.NoError(t, err, a.Name)
	}

	out := buf.String()
	assert.Equal(t, 6, countFindingLines(out))
	assert.Contains(t, out, "Pair plot created and saved as 'pair_plot.png'")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "completed successfully!"))
}

func TestRunFillsMissingCellWithColumnMean(t *testing.T) {
	dir := t.TempDir()
	tbl := tenRowTable(t, [2]int{4, 1})
	var buf bytes.Buffer

	sum, err := New(&buf, testOptions(dir, tbl)).Run()
	require.NoError(t, err)

	var want float64
	for i, r := range tenRows {
		if i != 4 {
			want += r[1]
		}
	}
	want /= 9

	require.Len(t, sum.Clean.Fills, 1)
	f := sum.Clean.Fills[0]
	assert.Equal(t, "f2", f.Column)
	assert.Equal(t, 1, f.Cells)
	assert.InDelta(t, want, f.Value.Float(), 1e-12)
	assert.Contains(t, buf.String(), "Missing values handled successfully!")

	cleaned, _ := clean.Clean(tbl)
	again, rep := clean.Clean(cleaned)
	assert.False(t, rep.Repaired())
	assert.True(t, again.Equal(cleaned))
	assert.Len(t, sum.Artifacts, 5)
}

func TestRunLoadFailureStopsOutput(t *testing.T) {
	var buf bytes.Buffer
	cause := &dataset.LoadError{Source: "broken.csv", Err: errors.New("unexpected EOF")}
	opt := Options{Load: func() (*dataset.Table, error) { return nil, cause }}

	sum, err := New(&buf, opt).Run()
	require.Error(t, err)
	assert.Nil(t, sum)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageLoad, se.Stage)
	var le *dataset.LoadError
	assert.True(t, errors.As(err, &le))
	assert.Contains(t, err.Error(), "load stage failed")

	out := buf.String()
	assert.Contains(t, out, "Loading the Iris dataset...")
	assert.NotContains(t, out, "loaded successfully")
}

func TestRunAnalysisFailureSkipsRendering(t *testing.T) {
	dir := t.TempDir()
	schema := dataset.Schema{
		Columns: []dataset.Column{
			{Name: "only", Kind: dataset.Numeric},
			{Name: "label", Kind: dataset.Categorical, Levels: []string{"a"}},
		},
		Label: "label",
	}
	tbl, err := dataset.New(schema, []dataset.Row{{dataset.Num(1), dataset.Cat("a")}, {dataset.Num(2), dataset.Cat("a")}})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = New(&buf, testOptions(dir, tbl)).Run()
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageAnalyze, se.Stage)
	var ae *analysis.AnalysisError
	assert.True(t, errors.As(err, &ae))
	assert.NotContains(t, buf.String(), "Creating Visualizations")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunUnwritableArtifactDoesNotFail(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, charts.HistogramFile), 0o755))
	var buf bytes.Buffer

	sum, err := New(&buf, testOptions(dir, tenRowTable(t))).Run()
	require.NoError(t, err)
	assert.Len(t, sum.Artifacts, 4)
	require.Len(t, sum.Failures, 1)
	assert.Equal(t, charts.HistogramFile, sum.Failures[0].Name)
	assert.Contains(t, buf.String(), "1 of 5 charts failed")
	assert.Equal(t, 6, countFindingLines(buf.String()))
}
