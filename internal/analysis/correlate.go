package analysis

import (
	"math"

	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// At returns the coefficient for a column pair.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	i, j := indexOf(m.Columns, a), indexOf(m.Columns, b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// Correlate computes pairwise Pearson coefficients over every numeric column.
// The diagonal is 1 by construction; a pair involving a constant column is 0.
func Correlate(t *dataset.Table) (*CorrMatrix, error) {
	names, cols, err := numericColumns("correlation", t)
	if err != nil {
		return nil, err
	}
	if len(names) < 2 {
		return nil, errorf("correlation", "need at least two numeric columns, have %d", len(names))
	}
	n := len(names)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		mat[a][a] = 1
		for b := a + 1; b < n; b++ {
			r := stat.Correlation(cols[a], cols[b], nil)
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	return &CorrMatrix{Columns: names, Values: mat}, nil
}
