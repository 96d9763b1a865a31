package charts

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
)

// binEdges returns n+1 evenly spaced edges covering [lo, hi]. A degenerate
// range is widened by half a unit on both sides.
func binEdges(lo, hi float64, n int) []float64 {
	if hi <= lo {
		lo, hi = lo-0.5, hi+0.5
	}
	return floats.Span(make([]float64, n+1), lo, hi)
}

// binCounts counts xs per bin; the last bin is closed on the right.
func binCounts(xs, edges []float64) []plotter.HistogramBin {
	n := len(edges) - 1
	bins := make([]plotter.HistogramBin, n)
	for i := range bins {
		bins[i].Min, bins[i].Max = edges[i], edges[i+1]
	}
	width := edges[1] - edges[0]
	for _, x := range xs {
		i := int((x - edges[0]) / width)
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Weight++
	}
	return bins
}

// scottBandwidth is the Gaussian kernel width sigma * n^(-1/5).
func scottBandwidth(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sd := stat.StdDev(xs, nil)
	return sd * math.Pow(float64(len(xs)), -0.2)
}

// kde evaluates a Gaussian kernel density estimate of xs at each grid point,
// multiplied by scale. It returns nil when the bandwidth is degenerate.
func kde(xs, grid []float64, scale float64) plotter.XYs {
	h := scottBandwidth(xs)
	if h == 0 || math.IsNaN(h) {
		return nil
	}
	kernels := make([]distuv.Normal, len(xs))
	for i, x := range xs {
		kernels[i] = distuv.Normal{Mu: x, Sigma: h}
	}
	pts := make(plotter.XYs, len(grid))
	for i, g := range grid {
		var d float64
		for _, k := range kernels {
			d += k.Prob(g)
		}
		pts[i].X = g
		pts[i].Y = d / float64(len(xs)) * scale
	}
	return pts
}

func densityGrid(xs []float64, points int) []float64 {
	lo, hi := floats.Min(xs), floats.Max(xs)
	pad := 3 * scottBandwidth(xs)
	if math.IsNaN(pad) {
		pad = 0
	}
	if hi <= lo && pad == 0 {
		pad = 0.5
	}
	return floats.Span(make([]float64, points), lo-pad, hi+pad)
}
