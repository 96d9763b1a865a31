// Package charts renders the fixed set of PNG artifacts of a pipeline run.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"runtime"

	"github.com/KaramelBytes/iriscope-cli/internal/analysis"
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/KaramelBytes/iriscope-cli/internal/utils"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"
)

// Artifact file names.
const (
	LineChartFile   = "line_chart.png"
	BarChartFile    = "bar_chart.png"
	HistogramFile   = "histogram.png"
	ScatterPlotFile = "scatter_plot.png"
	PairPlotFile    = "pair_plot.png"
)

// Artifact identifies one rendered chart.
type Artifact struct {
	Name string // file name, e.g. line_chart.png
	Kind string // human label, e.g. "Line chart"
	Path string
}

// ArtifactWriteError reports that one chart could not be produced.
type ArtifactWriteError struct {
	Name string
	Path string
	Err  error
}

func (e *ArtifactWriteError) Error() string {
	if e == nil {
		return "artifact write error"
	}
	return fmt.Sprintf("chart %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *ArtifactWriteError) Unwrap() error { return e.Err }

// Result is the outcome of one artifact.
type Result struct {
	Artifact Artifact
	Err      *ArtifactWriteError
}

// Outcome lists every attempted artifact in the fixed render order.
type Outcome struct {
	Results []Result
}

// Produced returns the artifacts written successfully.
func (o *Outcome) Produced() []Artifact {
	var out []Artifact
	for _, r := range o.Results {
		if r.Err == nil {
			out = append(out, r.Artifact)
		}
	}
	return out
}

// Failures returns the artifacts that could not be written.
func (o *Outcome) Failures() []*ArtifactWriteError {
	var out []*ArtifactWriteError
	for _, r := range o.Results {
		if r.Err != nil {
			out = append(out, r.Err)
		}
	}
	return out
}

// Err joins every failure, or returns nil.
func (o *Outcome) Err() error {
	var errs []error
	for _, f := range o.Failures() {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Options controls chart layout and output.
type Options struct {
	OutDir string
	// Width and Height size every single-panel chart.
	Width, Height vg.Length
	// PanelSize is the side of one pair-grid panel.
	PanelSize vg.Length
	// Bins is the histogram bin count.
	Bins int
	// Parallel renders the charts concurrently.
	Parallel bool

	BarColumn       string
	HistogramColumn string
	ScatterX        string
	ScatterY        string
}

// DefaultOptions returns the layout used for the built-in dataset.
func DefaultOptions() Options {
	return Options{
		OutDir:          ".",
		Width:           10 * vg.Inch,
		Height:          6 * vg.Inch,
		PanelSize:       2.5 * vg.Inch,
		Bins:            20,
		BarColumn:       dataset.SepalLength,
		HistogramColumn: dataset.PetalLength,
		ScatterX:        dataset.SepalLength,
		ScatterY:        dataset.PetalLength,
	}
}

// Renderer produces the five chart artifacts.
type Renderer struct {
	opt Options
}

// NewRenderer fills unset options from DefaultOptions.
func NewRenderer(opt Options) *Renderer {
	def := DefaultOptions()
	if opt.OutDir == "" {
		opt.OutDir = def.OutDir
	}
	if opt.Width <= 0 {
		opt.Width = def.Width
	}
	if opt.Height <= 0 {
		opt.Height = def.Height
	}
	if opt.PanelSize <= 0 {
		opt.PanelSize = def.PanelSize
	}
	if opt.Bins <= 0 {
		opt.Bins = def.Bins
	}
	if opt.BarColumn == "" {
		opt.BarColumn = def.BarColumn
	}
	if opt.HistogramColumn == "" {
		opt.HistogramColumn = def.HistogramColumn
	}
	if opt.ScatterX == "" {
		opt.ScatterX = def.ScatterX
	}
	if opt.ScatterY == "" {
		opt.ScatterY = def.ScatterY
	}
	return &Renderer{opt: opt}
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opt }

type job struct {
	artifact Artifact
	build    func(in *input) (io.WriterTo, error)
}

func (r *Renderer) jobs() []job {
	at := func(name, kind string) Artifact {
		return Artifact{Name: name, Kind: kind, Path: filepath.Join(r.opt.OutDir, name)}
	}
	return []job{
		{at(LineChartFile, "Line chart"), r.lineChart},
		{at(BarChartFile, "Bar chart"), r.barChart},
		{at(HistogramFile, "Histogram"), r.histogram},
		{at(ScatterPlotFile, "Scatter plot"), r.scatterPlot},
		{at(PairPlotFile, "Pair plot"), r.pairPlot},
	}
}

// input is the read-only data shared by every chart of one Render call.
type input struct {
	table  *dataset.Table
	agg    *analysis.GroupAggregate
	labels []string
	rows   map[string][]int
	colors map[string]color.RGBA
}

func newInput(t *dataset.Table, agg *analysis.GroupAggregate) *input {
	in := &input{table: t, agg: agg, rows: map[string][]int{}, colors: map[string]color.RGBA{}}
	if agg != nil {
		in.labels = agg.Labels()
	} else {
		in.labels = t.LabelValues()
	}
	for r, l := range t.Labels() {
		if l != "" {
			in.rows[l] = append(in.rows[l], r)
		}
	}
	for i, c := range palette(len(in.labels)) {
		in.colors[in.labels[i]] = c
	}
	return in
}

// column returns the values of a numeric column for the rows of one label.
func (in *input) column(name, label string) ([]float64, error) {
	xs, err := in.table.Floats(name)
	if err != nil {
		return nil, err
	}
	idx := in.rows[label]
	out := make([]float64, len(idx))
	for i, r := range idx {
		out[i] = xs[r]
	}
	return out, nil
}

// Render attempts every artifact. A failing artifact never stops the others.
func (r *Renderer) Render(t *dataset.Table, agg *analysis.GroupAggregate) *Outcome {
	jobs := r.jobs()
	out := &Outcome{Results: make([]Result, len(jobs))}
	if err := utils.EnsureDir(r.opt.OutDir); err != nil {
		for i, j := range jobs {
			out.Results[i] = Result{Artifact: j.artifact, Err: &ArtifactWriteError{Name: j.artifact.Name, Path: j.artifact.Path, Err: fmt.Errorf("create output dir: %w", err)}}
		}
		return out
	}
	in := newInput(t, agg)
	if !r.opt.Parallel {
		for i, j := range jobs {
			out.Results[i] = r.produce(j, in)
		}
		return out
	}
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			out.Results[i] = r.produce(j, in)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (r *Renderer) produce(j job, in *input) (res Result) {
	res.Artifact = j.artifact
	fail := func(err error) Result {
		res.Err = &ArtifactWriteError{Name: j.artifact.Name, Path: j.artifact.Path, Err: err}
		return res
	}
	defer func() {
		if p := recover(); p != nil {
			res = fail(fmt.Errorf("render panic: %v", p))
		}
	}()
	wt, err := j.build(in)
	if err != nil {
		return fail(fmt.Errorf("build: %w", err))
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fail(fmt.Errorf("encode png: %w", err))
	}
	if err := utils.SafeWriteFile(j.artifact.Path, buf.Bytes()); err != nil {
		return fail(err)
	}
	return res
}
