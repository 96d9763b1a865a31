package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

func init() { color.NoColor = true }

// resetFlags clears values and Changed state that persist across Execute calls.
func resetFlags(c interface{ Flags() *pflag.FlagSet }) {
	c.Flags().VisitAll(func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	})
}

// runCmd is a helper to execute the root command with args and capture stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range []interface{ Flags() *pflag.FlagSet }{runPipelineCmd, datasetExportCmd} {
		resetFlags(c)
	}
	cfg = nil
	cfgFile = ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// isolate points HOME at a temp dir so no user config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestCLI_RunWritesChartsAndReports(t *testing.T) {
	home := isolate(t)
	outDir := filepath.Join(home, "charts")
	mustRun(t, "config", "set", "chart_width_in", "3")
	mustRun(t, "config", "set", "chart_height_in", "2")
	mustRun(t, "config", "set", "pair_panel_in", "1")

	report := filepath.Join(home, "run.md")
	manifest := filepath.Join(home, "run.yaml")
	out := mustRun(t, "run", "-o", outDir, "--parallel", "--report", report, "--html", "--manifest", manifest)

	for _, name := range []string{"line_chart.png", "bar_chart.png", "histogram.png", "scatter_plot.png", "pair_plot.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
		if !strings.Contains(out, "saved as '"+name+"'") {
			t.Fatalf("no notice for %s in output", name)
		}
	}
	for _, p := range []string{report, filepath.Join(home, "run.html"), manifest} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
	}
	if !strings.Contains(out, "Dataset shape: (150, 5)") {
		t.Fatalf("shape line missing:\n%s", out)
	}
	if !strings.Contains(out, "No missing values found") {
		t.Fatalf("missing-value report missing")
	}
	if !strings.Contains(out, "6. Iris setosa is the most distinct species") {
		t.Fatalf("findings missing")
	}
}

func TestCLI_ConfigShowAndSet(t *testing.T) {
	isolate(t)
	mustRun(t, "config", "set", "histogram_bins", "15")
	out := mustRun(t, "config", "show")
	if !strings.Contains(out, "histogram_bins: 15") {
		t.Fatalf("expected persisted bins, got:\n%s", out)
	}
	if _, err := runCmd(t, "config", "set", "histogram_bins", "zero"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := runCmd(t, "config", "set", "no_such_key", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestCLI_DatasetExport(t *testing.T) {
	home := isolate(t)
	csvPath := filepath.Join(home, "iris.csv")
	mustRun(t, "dataset", "export", "-o", csvPath)
	b, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 151 {
		t.Fatalf("expected header + 150 rows, got %d lines", len(lines))
	}

	xlsxPath := filepath.Join(home, "iris.xlsx")
	mustRun(t, "dataset", "export", "-o", xlsxPath)
	if _, err := os.Stat(xlsxPath); err != nil {
		t.Fatal(err)
	}

	if _, err := runCmd(t, "dataset", "export", "--format", "json"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestCLI_Utilities(t *testing.T) {
	isolate(t)
	if out := mustRun(t, "calc", "6", "/", "4"); !strings.Contains(out, "6 / 4 = 1.5") {
		t.Fatalf("calc output: %q", out)
	}
	if _, err := runCmd(t, "calc", "1", "/", "0"); err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if _, err := runCmd(t, "calc", "1", "^", "2"); err == nil {
		t.Fatalf("expected invalid operator")
	}
	if out := mustRun(t, "discount", "100", "25"); !strings.Contains(out, "is: 75.00") {
		t.Fatalf("discount output: %q", out)
	}
	if out := mustRun(t, "discount", "100", "10"); !strings.Contains(out, "is: 100.00") {
		t.Fatalf("discount below threshold: %q", out)
	}
	if out := mustRun(t, "characters"); !strings.Contains(out, "ShadowHex laughs maniacally") {
		t.Fatalf("characters output: %q", out)
	}
}

func TestCLI_Lowercase(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "Shout.TXT")
	if err := os.WriteFile(in, []byte("LOUD Text"), 0o644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, "lowercase", in)
	b, err := os.ReadFile(filepath.Join(home, "modified_Shout.TXT"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "loud text" {
		t.Fatalf("unexpected content %q", b)
	}
	if _, err := runCmd(t, "lowercase", filepath.Join(home, "nope.txt")); err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
