package charts

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func (r *Renderer) save(p *plot.Plot) (io.WriterTo, error) {
	return p.WriterTo(r.opt.Width, r.opt.Height, "png")
}

// lineChart plots one line per label through that label's mean of every feature.
func (r *Renderer) lineChart(in *input) (io.WriterTo, error) {
	if in.agg == nil {
		return nil, fmt.Errorf("no group aggregate")
	}
	p := plot.New()
	p.Title.Text = "Average Measurements per " + in.agg.LabelColumn
	p.X.Label.Text = "Features"
	p.Y.Label.Text = "Measurement"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for _, g := range in.agg.Groups {
		pts := make(plotter.XYs, len(in.agg.Columns))
		for i, m := range g.Means {
			pts[i].X = float64(i)
			pts[i].Y = m
		}
		l, s, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		c := in.colors[g.Label]
		l.Color = c
		l.Width = vg.Points(1.5)
		s.Color = c
		s.Shape = draw.CircleGlyph{}
		p.Add(l, s)
		p.Legend.Add(g.Label, l, s)
	}
	p.NominalX(in.agg.Columns...)
	return r.save(p)
}

// barChart draws the mean of the bar column, one bar per label.
func (r *Renderer) barChart(in *input) (io.WriterTo, error) {
	if in.agg == nil {
		return nil, fmt.Errorf("no group aggregate")
	}
	col := r.opt.BarColumn
	means, ok := in.agg.Column(col)
	if !ok {
		return nil, fmt.Errorf("column %q not in group aggregate", col)
	}
	p := plot.New()
	p.Title.Text = "Average " + col + " by " + in.agg.LabelColumn
	p.X.Label.Text = in.agg.LabelColumn
	p.Y.Label.Text = "Average " + col
	p.Add(plotter.NewGrid())

	for i, g := range in.agg.Groups {
		b, err := plotter.NewBarChart(plotter.Values{means[i]}, vg.Points(60))
		if err != nil {
			return nil, err
		}
		b.XMin = float64(i)
		b.Color = in.colors[g.Label]
		b.LineStyle.Width = 0
		p.Add(b)
	}
	p.NominalX(in.agg.Labels()...)
	p.Y.Min = 0
	return r.save(p)
}

// histogram overlays per-label histograms of one column on shared bins,
// each with its kernel density curve scaled to counts.
func (r *Renderer) histogram(in *input) (io.WriterTo, error) {
	col := r.opt.HistogramColumn
	all, err := in.table.Floats(col)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("column %q is empty", col)
	}
	lo, hi := all[0], all[0]
	for _, x := range all {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	edges := binEdges(lo, hi, r.opt.Bins)
	width := edges[1] - edges[0]
	grid := binEdges(edges[0], edges[len(edges)-1], 199)

	p := plot.New()
	p.Title.Text = "Distribution of " + col
	p.X.Label.Text = col
	p.Y.Label.Text = "Frequency"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for _, label := range in.labels {
		xs, err := in.column(col, label)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			continue
		}
		c := in.colors[label]
		h := &plotter.Histogram{
			Bins:      binCounts(xs, edges),
			Width:     width,
			FillColor: translucent(c, 0x66),
			LineStyle: plotter.DefaultLineStyle,
		}
		h.LineStyle.Color = c
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(label, h)

		if pts := kde(xs, grid, float64(len(xs))*width); pts != nil {
			l, err := plotter.NewLine(pts)
			if err != nil {
				return nil, err
			}
			l.Color = c
			l.Width = vg.Points(2)
			p.Add(l)
		}
	}
	return r.save(p)
}

// scatterPlot plots ScatterX against ScatterY, coloured by label.
func (r *Renderer) scatterPlot(in *input) (io.WriterTo, error) {
	p := plot.New()
	p.Title.Text = "Relationship between " + r.opt.ScatterX + " and " + r.opt.ScatterY
	p.X.Label.Text = r.opt.ScatterX
	p.Y.Label.Text = r.opt.ScatterY
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for _, label := range in.labels {
		s, err := in.scatter(r.opt.ScatterX, r.opt.ScatterY, label, vg.Points(4))
		if err != nil {
			return nil, err
		}
		p.Add(s)
		p.Legend.Add(label, s)
	}
	return r.save(p)
}

func (in *input) scatter(xcol, ycol, label string, radius vg.Length) (*plotter.Scatter, error) {
	xs, err := in.column(xcol, label)
	if err != nil {
		return nil, err
	}
	ys, err := in.column(ycol, label)
	if err != nil {
		return nil, err
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.Color = in.colors[label]
	s.Shape = draw.CircleGlyph{}
	s.Radius = radius
	return s, nil
}
