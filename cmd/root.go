package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/variant-insights/internal/config"
	"github.com/KaramelBytes/variant-insights/internal/logger"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logLevel  string
	logFormat string

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "variant-insights",
	Short: "Filter and chart genetic-variant association data",
	Long: `variant-insights loads a table of genetic-variant association records, keeps the
significant variants reported in at least two populations, exports them as CSV,
and produces per-population, per-year and variant-vs-gene summaries and charts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprint("✗ Error:"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/"+cfgpkg.DirName+"/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug | info | warn | error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text | json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Deferred: config show/set report it, pipeline commands fail on it
		cfg, cfgErr = nil, err
		return
	}
	cfg, cfgErr = c, nil

	f := rootCmd.PersistentFlags()
	if f.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if f.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
}

// requireConfig returns the loaded configuration or the error that prevented loading it.
func requireConfig() (*cfgpkg.Global, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("load config: %w", cfgErr)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	return cfg, nil
}

// newLogger builds the run logger; stderr output goes to the command's error writer.
func newLogger(c *cfgpkg.Global, stderr io.Writer) (*logger.Logger, error) {
	switch c.Logging.Output {
	case "", "stderr":
		return logger.NewWithWriter(&c.Logging, stderr), nil
	default:
		return logger.New(&c.Logging)
	}
}
