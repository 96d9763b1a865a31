package charts

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const pairTitleHeight = 0.5 * vg.Inch

// pairPlot renders an n×n grid over the numeric columns: label-coloured
// scatters off the diagonal, per-label density curves on it.
func (r *Renderer) pairPlot(in *input) (io.WriterTo, error) {
	cols := in.table.Schema().NumericColumns()
	n := len(cols)
	if n == 0 {
		return nil, fmt.Errorf("no numeric columns")
	}

	plots := make([][]*plot.Plot, n)
	for i := range plots {
		plots[i] = make([]*plot.Plot, n)
		for j := range plots[i] {
			p, err := in.pairPanel(cols[j], cols[i], i == j)
			if err != nil {
				return nil, err
			}
			if i == n-1 {
				p.X.Label.Text = cols[j]
			}
			if j == 0 {
				p.Y.Label.Text = cols[i]
			}
			plots[i][j] = p
		}
	}
	legend := plots[0][n-1]
	legend.Legend.Top = true
	for _, label := range in.labels {
		thumb, err := plotter.NewScatter(plotter.XYs{})
		if err != nil {
			return nil, err
		}
		thumb.Color = in.colors[label]
		thumb.Shape = draw.CircleGlyph{}
		legend.Legend.Add(label, thumb)
	}

	side := vg.Length(n) * r.opt.PanelSize
	img := vgimg.New(side, side+pairTitleHeight)
	dc := draw.New(img)

	title := "Pair Plot of Features"
	if lc := in.table.Schema().Label; lc != "" {
		title += " by " + lc
	}
	ts := plot.New().Title.TextStyle
	ts.Font.Size = vg.Points(16)
	ts.XAlign = draw.XCenter
	ts.YAlign = draw.YCenter
	dc.FillText(ts, vg.Point{X: dc.Center().X, Y: dc.Max.Y - pairTitleHeight/2}, title)

	grid := draw.Crop(dc, 0, 0, 0, -pairTitleHeight)
	tiles := draw.Tiles{
		Rows:      n,
		Cols:      n,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(plots, tiles, grid)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}
	return vgimg.PngCanvas{Canvas: img}, nil
}

func (in *input) pairPanel(xcol, ycol string, diagonal bool) (*plot.Plot, error) {
	p := plot.New()
	p.Add(plotter.NewGrid())
	for _, label := range in.labels {
		if !diagonal {
			s, err := in.scatter(xcol, ycol, label, vg.Points(1.5))
			if err != nil {
				return nil, err
			}
			p.Add(s)
			continue
		}
		xs, err := in.column(xcol, label)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			continue
		}
		pts := kde(xs, densityGrid(xs, 100), 1)
		if pts == nil {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		l.Color = in.colors[label]
		l.Width = vg.Points(1.5)
		p.Add(l)
	}
	return p, nil
}
