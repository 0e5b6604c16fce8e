package cmd

import (
	"fmt"
	"strconv"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/variant-insights/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set variant-insights configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return fmt.Errorf("load config: %w", cfgErr)
		}
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "input_path: %s\n", cfg.InputPath)
		fmt.Fprintf(w, "output_path: %s\n", cfg.OutputPath)
		if cfg.SheetName != "" {
			fmt.Fprintf(w, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(w, "delimiter: %q\n", cfg.Delimiter)
		fmt.Fprintf(w, "significance_label: %s\n", cfg.SignificanceLabel)
		fmt.Fprintf(w, "min_populations: %d\n", cfg.MinPopulations)
		fmt.Fprintf(w, "unknown_label: %s\n", cfg.UnknownLabel)
		fmt.Fprintf(w, "year_start: %d\n", cfg.YearStart)
		fmt.Fprintf(w, "year_end: %d\n", cfg.YearEnd)
		fmt.Fprintf(w, "rolling_window: %d\n", cfg.RollingWindow)
		fmt.Fprintf(w, "continue_on_render_error: %t\n", cfg.ContinueOnRenderError)
		for _, ch := range []struct {
			name string
			c    cfgpkg.ChartConfig
		}{
			{"bar", cfg.Charts.Bar},
			{"timeseries", cfg.Charts.TimeSeries},
			{"scatter", cfg.Charts.Scatter},
		} {
			fmt.Fprintf(w, "charts.%s.show: %t\n", ch.name, ch.c.Show)
			fmt.Fprintf(w, "charts.%s.save_path: %s\n", ch.name, ch.c.SavePath)
		}
		fmt.Fprintf(w, "logging.level: %s\n", cfg.Logging.Level)
		fmt.Fprintf(w, "logging.format: %s\n", cfg.Logging.Format)
		fmt.Fprintf(w, "logging.output: %s\n", cfg.Logging.Output)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		if err := setKey(&next, key, val); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), color.Green.Sprint("✓ Saved config"))
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	atob := func() (bool, error) {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		return b, nil
	}

	var err error
	switch key {
	case "input_path":
		c.InputPath = val
	case "output_path":
		c.OutputPath = val
	case "sheet_name":
		c.SheetName = val
	case "delimiter":
		c.Delimiter = val
	case "significance_label":
		c.SignificanceLabel = val
	case "unknown_label":
		c.UnknownLabel = val
	case "min_populations":
		c.MinPopulations, err = atoi()
	case "year_start":
		c.YearStart, err = atoi()
	case "year_end":
		c.YearEnd, err = atoi()
	case "rolling_window":
		c.RollingWindow, err = atoi()
	case "continue_on_render_error":
		c.ContinueOnRenderError, err = atob()
	case "charts.bar.show":
		c.Charts.Bar.Show, err = atob()
	case "charts.bar.save_path":
		c.Charts.Bar.SavePath = val
	case "charts.timeseries.show":
		c.Charts.TimeSeries.Show, err = atob()
	case "charts.timeseries.save_path":
		c.Charts.TimeSeries.SavePath = val
	case "charts.scatter.show":
		c.Charts.Scatter.Show, err = atob()
	case "charts.scatter.save_path":
		c.Charts.Scatter.SavePath = val
	case "logging.level":
		c.Logging.Level = val
	case "logging.format":
		c.Logging.Format = val
	case "logging.output":
		c.Logging.Output = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
