package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/variant-insights/internal/utils"
)

// DirName is the per-user directory holding the default config file.
const DirName = ".variant-insights"

// Global configuration structure.
type Global struct {
	InputPath  string `mapstructure:"input_path" yaml:"input_path"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`

	// Filtering and cleaning
	SignificanceLabel string `mapstructure:"significance_label" yaml:"significance_label"`
	MinPopulations    int    `mapstructure:"min_populations" yaml:"min_populations"`
	UnknownLabel      string `mapstructure:"unknown_label" yaml:"unknown_label"`

	// Synthetic timeline
	YearStart     int `mapstructure:"year_start" yaml:"year_start"`
	YearEnd       int `mapstructure:"year_end" yaml:"year_end"`
	RollingWindow int `mapstructure:"rolling_window" yaml:"rolling_window"`

	ContinueOnRenderError bool         `mapstructure:"continue_on_render_error" yaml:"continue_on_render_error"`
	Charts                ChartsConfig `mapstructure:"charts" yaml:"charts"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ChartsConfig groups the options of the three pipeline charts.
type ChartsConfig struct {
	Bar        ChartConfig `mapstructure:"bar" yaml:"bar"`
	TimeSeries ChartConfig `mapstructure:"timeseries" yaml:"timeseries"`
	Scatter    ChartConfig `mapstructure:"scatter" yaml:"scatter"`
}

// ChartConfig controls how a single chart is produced. Show renders it on the
// terminal; SavePath writes an image whose format follows the extension.
type ChartConfig struct {
	Show     bool   `mapstructure:"show" yaml:"show"`
	SavePath string `mapstructure:"save_path" yaml:"save_path"`
}

// Enabled reports whether the chart produces any output at all.
func (c ChartConfig) Enabled() bool {
	return c.Show || c.SavePath != ""
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.variant-insights/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
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

// Load loads configuration from the config file and defaults.
// Precedence: flags (applied by the caller) > config file > defaults.
// Environment variables are deliberately not consulted.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Global {
	v := viper.New()
	SetDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input_path", "longevity.csv")
	v.SetDefault("output_path", "filtered_longevity.csv")
	v.SetDefault("sheet_name", "")
	v.SetDefault("delimiter", ",")
	v.SetDefault("significance_label", "significant")
	v.SetDefault("min_populations", 2)
	v.SetDefault("unknown_label", "Unknown")
	v.SetDefault("year_start", 2000)
	v.SetDefault("year_end", 2023)
	v.SetDefault("rolling_window", 5)
	v.SetDefault("continue_on_render_error", true)
	// Charts
	v.SetDefault("charts.bar.show", false)
	v.SetDefault("charts.bar.save_path", "variants_per_population.png")
	v.SetDefault("charts.timeseries.show", false)
	v.SetDefault("charts.timeseries.save_path", "annual_variant_counts.png")
	v.SetDefault("charts.scatter.show", false)
	v.SetDefault("charts.scatter.save_path", "variants_vs_genes.png")
	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}
