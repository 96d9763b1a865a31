package clean_test

import (
	"testing"

	"github.com/KaramelBytes/iriscope-cli/internal/clean"
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallSchema() dataset.Schema {
	return dataset.Schema{
		Columns: []dataset.Column{
			{Name: "a", Kind: dataset.Numeric},
			{Name: "b", Kind: dataset.Numeric},
			{Name: "kind", Kind: dataset.Categorical, Levels: []string{"x", "y", "z"}},
		},
		Label: "kind",
	}
}

func TestCleanNoMissingIsNoop(t *testing.T) {
	tbl, err := dataset.LoadIris()
	require.NoError(t, err)

	out, rep := clean.Clean(tbl)
	assert.True(t, out.Equal(tbl))
	assert.False(t, rep.Repaired())
	assert.Zero(t, rep.TotalMissing())
	assert.Empty(t, rep.Unrepaired)
}

func TestCleanNumericUsesOriginalMean(t *testing.T) {
	rows := []dataset.Row{
		{dataset.Num(1), dataset.Missing(), dataset.Cat("x")},
		{dataset.Missing(), dataset.Num(10), dataset.Cat("y")},
		{dataset.Num(3), dataset.Num(20), dataset.Cat("x")},
		{dataset.Missing(), dataset.Missing(), dataset.Cat("z")},
		{dataset.Num(8), dataset.Num(30), dataset.Cat("y")},
	}
	tbl, err := dataset.New(smallSchema(), rows)
	require.NoError(t, err)

	out, rep := clean.Clean(tbl)
	require.True(t, rep.Repaired())
	assert.Equal(t, 4, rep.TotalMissing())
	assert.Zero(t, out.TotalMissing())

	// Both repaired cells of a column get the mean of the observed values only.
	assert.InDelta(t, 4.0, out.At(1, 0).Float(), 1e-12)
	assert.InDelta(t, 4.0, out.At(3, 0).Float(), 1e-12)
	assert.InDelta(t, 20.0, out.At(0, 1).Float(), 1e-12)
	assert.InDelta(t, 20.0, out.At(3, 1).Float(), 1e-12)

	// Input untouched.
	assert.True(t, tbl.At(1, 0).IsMissing())
	assert.Equal(t, 4, tbl.TotalMissing())
}

func TestCleanCategoricalModeTieBreak(t *testing.T) {
	rows := []dataset.Row{
		{dataset.Num(1), dataset.Num(1), dataset.Cat("y")},
		{dataset.Num(2), dataset.Num(2), dataset.Cat("x")},
		{dataset.Num(3), dataset.Num(3), dataset.Missing()},
		{dataset.Num(4), dataset.Num(4), dataset.Cat("x")},
		{dataset.Num(5), dataset.Num(5), dataset.Cat("y")},
	}
	tbl, err := dataset.New(smallSchema(), rows)
	require.NoError(t, err)

	out, rep := clean.Clean(tbl)
	// x and y both occur twice; y was seen first.
	assert.Equal(t, "y", out.At(2, 2).Text())
	require.Len(t, rep.Fills, 1)
	assert.Equal(t, "kind", rep.Fills[0].Column)
	assert.Equal(t, 1, rep.Fills[0].Cells)
}

func TestCleanIsIdempotent(t *testing.T) {
	tbl, err := dataset.LoadIris()
	require.NoError(t, err)
	dirty, err := tbl.WithCells(map[[2]int]dataset.Value{
		{0, 0}:  dataset.Missing(),
		{7, 2}:  dataset.Missing(),
		{60, 4}: dataset.Missing(),
	})
	require.NoError(t, err)

	once, _ := clean.Clean(dirty)
	twice, rep := clean.Clean(once)
	assert.True(t, once.Equal(twice))
	assert.False(t, rep.Repaired())
}

func TestCleanAllMissingColumnIsUnrepaired(t *testing.T) {
	rows := []dataset.Row{
		{dataset.Missing(), dataset.Num(1), dataset.Cat("x")},
		{dataset.Missing(), dataset.Missing(), dataset.Cat("y")},
	}
	tbl, err := dataset.New(smallSchema(), rows)
	require.NoError(t, err)

	out, rep := clean.Clean(tbl)
	assert.Equal(t, []string{"a"}, rep.Unrepaired)
	assert.Equal(t, 2, out.MissingCounts()[0].Count)
	assert.Equal(t, 0, out.MissingCounts()[1].Count)
}
