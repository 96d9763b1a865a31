// Package pipeline runs load, clean, analyze, visualize and report in order.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/KaramelBytes/iriscope-cli/internal/analysis"
	"github.com/KaramelBytes/iriscope-cli/internal/charts"
	"github.com/KaramelBytes/iriscope-cli/internal/clean"
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/KaramelBytes/iriscope-cli/internal/report"
)

// Stage names used in StageError.
const (
	StageLoad    = "load"
	StageAnalyze = "analyze"
)

// StageError wraps a failure that aborted the run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return "stage error"
	}
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// LoadFunc materializes the input table.
type LoadFunc func() (*dataset.Table, error)

// Options configures a Pipeline.
type Options struct {
	// Source names the dataset in console output. Defaults to "Iris".
	Source string
	// Load defaults to dataset.LoadIris.
	Load     LoadFunc
	Charts   charts.Options
	HeadRows int
	Logger   *slog.Logger
}

// Pipeline is a single-use run over one dataset.
type Pipeline struct {
	opt    Options
	rep    *report.Reporter
	logger *slog.Logger
}

// New returns a Pipeline printing its progress to out.
func New(out io.Writer, opt Options) *Pipeline {
	if opt.Source == "" {
		opt.Source = "Iris"
	}
	if opt.Load == nil {
		opt.Load = dataset.LoadIris
	}
	if opt.HeadRows <= 0 {
		opt.HeadRows = 5
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		opt:    opt,
		rep:    report.New(out),
		logger: logger.With(slog.String("component", "pipeline")),
	}
}

// Reporter exposes the console reporter, e.g. to inspect its faults.
func (p *Pipeline) Reporter() *report.Reporter { return p.rep }

// Run executes every stage. A load or analysis failure returns a
// *StageError and stops the run; chart failures are recorded in the
// summary and do not fail the run.
func (p *Pipeline) Run() (*report.RunSummary, error) {
	started := time.Now()
	sum := report.NewRunSummary(p.opt.Source, started)
	p.logger.Debug("run started", slog.String("run_id", sum.ID))

	p.rep.Start()
	p.rep.Loading(p.opt.Source)
	mark := time.Now()
	tbl, err := p.opt.Load()
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Err: err}
	}
	p.logger.Debug("stage finished", slog.String("stage", StageLoad), slog.Duration("elapsed", time.Since(mark)))
	p.rep.Loaded()
	p.rep.Head(tbl, p.opt.HeadRows)
	p.rep.Info(tbl)
	sum.Rows, sum.Columns = tbl.Shape()

	mark = time.Now()
	cleaned, cr := clean.Clean(tbl)
	p.logger.Debug("stage finished", slog.String("stage", "clean"), slog.Duration("elapsed", time.Since(mark)),
		slog.Int("missing", cr.TotalMissing()), slog.Int("filled_columns", len(cr.Fills)))
	p.rep.Missing(cr)
	p.rep.DataTypes(cleaned)
	sum.Clean = cr

	mark = time.Now()
	res, err := analysis.Analyze(cleaned)
	if err != nil {
		return nil, &StageError{Stage: StageAnalyze, Err: err}
	}
	p.logger.Debug("stage finished", slog.String("stage", StageAnalyze), slog.Duration("elapsed", time.Since(mark)))
	p.rep.Stats(res.Stats)
	p.rep.GroupMeans(res.Groups)
	p.rep.Correlation(res.Corr)
	sum.Stats, sum.Groups, sum.Corr = res.Stats, res.Groups, res.Corr

	p.rep.Visualizations()
	mark = time.Now()
	renderer := charts.NewRenderer(p.opt.Charts)
	out := renderer.Render(cleaned, res.Groups)
	for _, r := range out.Results {
		p.rep.Chart(r)
	}
	p.rep.ChartSummary(out)
	p.logger.Debug("stage finished", slog.String("stage", "render"), slog.Duration("elapsed", time.Since(mark)),
		slog.Int("produced", len(out.Produced())), slog.Int("failed", len(out.Failures())),
		slog.Bool("parallel", renderer.Options().Parallel))
	sum.OutDir = renderer.Options().OutDir
	sum.Artifacts = out.Produced()
	sum.Failures = out.Failures()

	p.rep.Findings()
	p.rep.Complete()
	sum.Duration = time.Since(started)
	for _, f := range p.rep.Faults() {
		p.logger.Debug("report fault", slog.String("section", f.Section), slog.String("error", f.Err.Error()))
	}
	return sum, nil
}
