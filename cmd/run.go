package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/iriscope-cli/internal/charts"
	"github.com/KaramelBytes/iriscope-cli/internal/pipeline"
	"github.com/KaramelBytes/iriscope-cli/internal/utils"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var (
	runOutputDir string
	runBins      int
	runParallel  bool
	runHeadRows  int
	runReport    string
	runHTML      bool
	runManifest  string
)

var runPipelineCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full load, clean, analyze and chart pipeline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := settings()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		outDir := c.OutputDir
		if f.Changed("output-dir") {
			outDir = runOutputDir
		}
		if outDir, err = utils.ExpandHome(outDir); err != nil {
			return err
		}
		bins := c.HistogramBins
		if f.Changed("bins") {
			if runBins < 1 {
				return fmt.Errorf("--bins must be at least 1")
			}
			bins = runBins
		}
		headRows := c.HeadRows
		if f.Changed("head") {
			headRows = runHeadRows
		}
		reportPath := c.ReportPath
		if f.Changed("report") {
			reportPath = runReport
		}
		manifestPath := c.ManifestPath
		if f.Changed("manifest") {
			manifestPath = runManifest
		}

		p := pipeline.New(cmd.OutOrStdout(), pipeline.Options{
			HeadRows: headRows,
			Logger:   logger,
			Charts: charts.Options{
				OutDir:    outDir,
				Width:     vg.Length(c.ChartWidthIn) * vg.Inch,
				Height:    vg.Length(c.ChartHeightIn) * vg.Inch,
				PanelSize: vg.Length(c.PairPanelIn) * vg.Inch,
				Bins:      bins,
				Parallel:  c.RenderParallel || runParallel,
			},
		})
		sum, err := p.Run()
		if err != nil {
			return err
		}

		if reportPath != "" {
			written, err := sum.WriteMarkdown(reportPath, c.ReportHTML || runHTML)
			for _, w := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written to %s\n", w)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
			}
		}
		if manifestPath != "" {
			if err := sum.WriteManifest(manifestPath); err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Manifest written to %s\n", manifestPath)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runPipelineCmd)
	runPipelineCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "directory for the chart PNGs (overrides config)")
	runPipelineCmd.Flags().IntVar(&runBins, "bins", 0, "histogram bin count (overrides config)")
	runPipelineCmd.Flags().BoolVar(&runParallel, "parallel", false, "render charts concurrently")
	runPipelineCmd.Flags().IntVar(&runHeadRows, "head", 0, "rows to print from the top of the dataset (overrides config)")
	runPipelineCmd.Flags().StringVar(&runReport, "report", "", "write a Markdown run report to this path")
	runPipelineCmd.Flags().BoolVar(&runHTML, "html", false, "also write the run report as HTML")
	runPipelineCmd.Flags().StringVar(&runManifest, "manifest", "", "write a YAML manifest of produced artifacts to this path")
}
