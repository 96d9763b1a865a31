package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KaramelBytes/iriscope-cli/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. IRISCOPE_OUTPUT_DIR.
const EnvPrefix = "IRISCOPE"

// Global configuration structure.
type Global struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Chart rendering
	HistogramBins  int     `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	ChartWidthIn   float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn  float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
	PairPanelIn    float64 `mapstructure:"pair_panel_in" yaml:"pair_panel_in"`
	RenderParallel bool    `mapstructure:"render_parallel" yaml:"render_parallel"`

	// Console and run report
	HeadRows     int    `mapstructure:"head_rows" yaml:"head_rows"`
	ReportPath   string `mapstructure:"report_path" yaml:"report_path"`
	ReportHTML   bool   `mapstructure:"report_html" yaml:"report_html"`
	ManifestPath string `mapstructure:"manifest_path" yaml:"manifest_path"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"output_dir",
	"histogram_bins",
	"chart_width_in",
	"chart_height_in",
	"pair_panel_in",
	"render_parallel",
	"head_rows",
	"report_path",
	"report_html",
	"manifest_path",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", ".")
	v.SetDefault("histogram_bins", 20)
	v.SetDefault("chart_width_in", 10.0)
	v.SetDefault("chart_height_in", 6.0)
	v.SetDefault("pair_panel_in", 2.5)
	v.SetDefault("render_parallel", false)
	v.SetDefault("head_rows", 5)
	v.SetDefault("report_path", "")
	v.SetDefault("report_html", false)
	v.SetDefault("manifest_path", "")
}

// Dir returns ~/.iriscope.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".iriscope"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.iriscope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory seeds the environment without overriding variables already set.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// A missing file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the renderer cannot use.
func (c *Global) Validate() error {
	switch {
	case c.HistogramBins < 1:
		return fmt.Errorf("histogram_bins must be at least 1, got %d", c.HistogramBins)
	case c.ChartWidthIn <= 0 || c.ChartHeightIn <= 0:
		return fmt.Errorf("chart size must be positive, got %gx%g in", c.ChartWidthIn, c.ChartHeightIn)
	case c.PairPanelIn <= 0:
		return fmt.Errorf("pair_panel_in must be positive, got %g", c.PairPanelIn)
	case c.HeadRows < 0:
		return fmt.Errorf("head_rows must not be negative, got %d", c.HeadRows)
	}
	return nil
}

// Set parses val for key and assigns it.
func (c *Global) Set(key, val string) error {
	positive := func(k string) (float64, error) {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return 0, fmt.Errorf("invalid positive number for %s: %v", k, val)
		}
		return f, nil
	}
	switch key {
	case "output_dir":
		c.OutputDir = val
	case "histogram_bins":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for histogram_bins: %v", val)
		}
		c.HistogramBins = i
	case "chart_width_in":
		f, err := positive(key)
		if err != nil {
			return err
		}
		c.ChartWidthIn = f
	case "chart_height_in":
		f, err := positive(key)
		if err != nil {
			return err
		}
		c.ChartHeightIn = f
	case "pair_panel_in":
		f, err := positive(key)
		if err != nil {
			return err
		}
		c.PairPanelIn = f
	case "render_parallel":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for render_parallel: %w", err)
		}
		c.RenderParallel = b
	case "head_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for head_rows: %v", val)
		}
		c.HeadRows = i
	case "report_path":
		c.ReportPath = val
	case "report_html":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for report_html: %w", err)
		}
		c.ReportHTML = b
	case "manifest_path":
		c.ManifestPath = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the display value of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "output_dir":
		return c.OutputDir, nil
	case "histogram_bins":
		return strconv.Itoa(c.HistogramBins), nil
	case "chart_width_in":
		return strconv.FormatFloat(c.ChartWidthIn, 'g', -1, 64), nil
	case "chart_height_in":
		return strconv.FormatFloat(c.ChartHeightIn, 'g', -1, 64), nil
	case "pair_panel_in":
		return strconv.FormatFloat(c.PairPanelIn, 'g', -1, 64), nil
	case "render_parallel":
		return strconv.FormatBool(c.RenderParallel), nil
	case "head_rows":
		return strconv.Itoa(c.HeadRows), nil
	case "report_path":
		return c.ReportPath, nil
	case "report_html":
		return strconv.FormatBool(c.ReportHTML), nil
	case "manifest_path":
		return c.ManifestPath, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
