package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "." || c.HistogramBins != 20 || c.HeadRows != 5 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.ChartWidthIn != 10 || c.ChartHeightIn != 6 || c.PairPanelIn != 2.5 {
		t.Fatalf("unexpected chart defaults: %+v", c)
	}
	if c.RenderParallel || c.ReportHTML || c.ReportPath != "" || c.ManifestPath != "" {
		t.Fatalf("unexpected report defaults: %+v", c)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set("histogram_bins", "12"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("output_dir", "charts"); err != nil {
		t.Fatal(err)
	}
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".iriscope", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	t.Setenv("IRISCOPE_HISTOGRAM_BINS", "30")
	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got.HistogramBins != 30 {
		t.Fatalf("env should win, got %d bins", got.HistogramBins)
	}
	if got.OutputDir != "charts" {
		t.Fatalf("file value lost, got %q", got.OutputDir)
	}
}

func TestExplicitConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("render_parallel: true\nhead_rows: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.RenderParallel || c.HeadRows != 3 {
		t.Fatalf("file values not applied: %+v", c)
	}

	if err := os.WriteFile(path, []byte("head_rows: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing explicit file should fall back to defaults: %v", err)
	}
}

func TestSetValidation(t *testing.T) {
	c := &Global{}
	bad := [][2]string{
		{"histogram_bins", "0"},
		{"histogram_bins", "x"},
		{"chart_width_in", "-1"},
		{"render_parallel", "maybe"},
		{"head_rows", "-2"},
		{"nope", "1"},
	}
	for _, kv := range bad {
		if err := c.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("Set(%s, %s) should fail", kv[0], kv[1])
		}
	}
	if err := c.Set("pair_panel_in", "3.5"); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get("pair_panel_in"); v != "3.5" {
		t.Fatalf("Get pair_panel_in = %s", v)
	}
	for _, k := range Keys {
		if _, err := c.Get(k); err != nil {
			t.Fatalf("Get(%s): %v", k, err)
		}
	}
}

func TestValidateRejectsZeroBins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("IRISCOPE_HISTOGRAM_BINS", "0")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected validation error")
	}
}
