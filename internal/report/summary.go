package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/iriscope-cli/internal/analysis"
	"github.com/KaramelBytes/iriscope-cli/internal/charts"
	"github.com/KaramelBytes/iriscope-cli/internal/clean"
	"github.com/KaramelBytes/iriscope-cli/internal/utils"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// RunSummary collects everything a pipeline run derived and produced.
type RunSummary struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Source    string
	Rows      int
	Columns   int
	OutDir    string

	Clean     *clean.Report
	Stats     []analysis.ColumnStats
	Groups    *analysis.GroupAggregate
	Corr      *analysis.CorrMatrix
	Artifacts []charts.Artifact
	Failures  []*charts.ArtifactWriteError
}

// NewRunSummary starts a summary with a fresh run id.
func NewRunSummary(source string, started time.Time) *RunSummary {
	return &RunSummary{ID: uuid.NewString(), Source: source, StartedAt: started}
}

// Markdown renders the summary as a Markdown document.
func (s *RunSummary) Markdown() string {
	var b strings.Builder
	b.WriteString("# iriscope run report\n\n")
	b.WriteString(fmt.Sprintf("- Run: `%s`\n", s.ID))
	b.WriteString(fmt.Sprintf("- Started: %s\n", s.StartedAt.UTC().Format(time.RFC3339)))
	if s.Duration > 0 {
		b.WriteString(fmt.Sprintf("- Duration: %s\n", s.Duration.Round(time.Millisecond)))
	}
	b.WriteString(fmt.Sprintf("- Dataset: %s (%d rows, %d columns)\n", s.Source, s.Rows, s.Columns))

	if s.Clean != nil {
		b.WriteString("\n## Cleaning\n\n")
		if s.Clean.TotalMissing() == 0 {
			b.WriteString("No missing values.\n")
		}
		for _, f := range s.Clean.Fills {
			b.WriteString(fmt.Sprintf("- %s: %d cell(s) filled with %s\n", f.Column, f.Cells, f.Value))
		}
		for _, c := range s.Clean.Unrepaired {
			b.WriteString(fmt.Sprintf("- %s: left missing (no observed values)\n", c))
		}
	}

	if len(s.Stats) > 0 {
		b.WriteString("\n## Statistics\n\n")
		b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
		for _, st := range s.Stats {
			b.WriteString(fmt.Sprintf("| %s | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
				st.Column, st.Count, st.Mean, st.Std, st.Min, st.Q1, st.Median, st.Q3, st.Max))
		}
	}

	if s.Groups != nil {
		b.WriteString("\n## Group means\n\n")
		b.WriteString("| " + s.Groups.LabelColumn + " | n | " + strings.Join(s.Groups.Columns, " | ") + " |\n")
		b.WriteString(strings.Repeat("|---", len(s.Groups.Columns)+2) + "|\n")
		for _, g := range s.Groups.Groups {
			b.WriteString(fmt.Sprintf("| %s | %d |", g.Label, g.Size))
			for _, m := range g.Means {
				b.WriteString(fmt.Sprintf(" %.4g |", m))
			}
			b.WriteString("\n")
		}
	}

	if s.Corr != nil {
		b.WriteString("\n## Correlation\n\n")
		b.WriteString("|   | " + strings.Join(s.Corr.Columns, " | ") + " |\n")
		b.WriteString(strings.Repeat("|---", len(s.Corr.Columns)+1) + "|\n")
		for i, c := range s.Corr.Columns {
			b.WriteString("| " + c + " |")
			for _, v := range s.Corr.Values[i] {
				b.WriteString(fmt.Sprintf(" %.3f |", v))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## Charts\n\n")
	for _, a := range s.Artifacts {
		b.WriteString(fmt.Sprintf("- %s: `%s`\n", a.Kind, a.Path))
	}
	for _, f := range s.Failures {
		b.WriteString(fmt.Sprintf("- FAILED %s: %v\n", f.Name, f.Err))
	}

	b.WriteString("\n## Findings\n\n")
	for i, f := range Findings {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, f))
	}
	return b.String()
}

// HTML renders the Markdown report as a standalone HTML page.
func (s *RunSummary) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "iriscope run " + s.ID,
	})
	return markdown.ToHTML([]byte(s.Markdown()), p, r)
}

type manifest struct {
	ID        string          `yaml:"id"`
	StartedAt time.Time       `yaml:"started_at"`
	Source    string          `yaml:"source"`
	Rows      int             `yaml:"rows"`
	Columns   int             `yaml:"columns"`
	OutDir    string          `yaml:"output_dir"`
	Filled    map[string]int  `yaml:"filled,omitempty"`
	Artifacts []manifestEntry `yaml:"artifacts"`
}

type manifestEntry struct {
	Name  string `yaml:"name"`
	Path  string `yaml:"path"`
	OK    bool   `yaml:"ok"`
	Error string `yaml:"error,omitempty"`
}

// Manifest returns the YAML manifest of the run's artifacts.
func (s *RunSummary) Manifest() ([]byte, error) {
	m := manifest{
		ID:        s.ID,
		StartedAt: s.StartedAt.UTC(),
		Source:    s.Source,
		Rows:      s.Rows,
		Columns:   s.Columns,
		OutDir:    s.OutDir,
	}
	if s.Clean != nil && len(s.Clean.Fills) > 0 {
		m.Filled = map[string]int{}
		for _, f := range s.Clean.Fills {
			m.Filled[f.Column] = f.Cells
		}
	}
	for _, a := range s.Artifacts {
		m.Artifacts = append(m.Artifacts, manifestEntry{Name: a.Name, Path: a.Path, OK: true})
	}
	for _, f := range s.Failures {
		m.Artifacts = append(m.Artifacts, manifestEntry{Name: f.Name, Path: f.Path, Error: f.Err.Error()})
	}
	b, err := yaml.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return b, nil
}

// WriteMarkdown writes the Markdown report, and the HTML page next to it
// when withHTML is set. It returns the paths written.
func (s *RunSummary) WriteMarkdown(path string, withHTML bool) ([]string, error) {
	if err := utils.SafeWriteFile(path, []byte(s.Markdown())); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	written := []string{path}
	if withHTML {
		hp := strings.TrimSuffix(path, ".md") + ".html"
		if err := utils.SafeWriteFile(hp, s.HTML()); err != nil {
			return written, fmt.Errorf("write html report: %w", err)
		}
		written = append(written, hp)
	}
	return written, nil
}

// WriteManifest writes the YAML manifest to path.
func (s *RunSummary) WriteManifest(path string) error {
	b, err := s.Manifest()
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
