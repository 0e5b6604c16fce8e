package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/variant-insights/internal/chart"
	cfgpkg "github.com/KaramelBytes/variant-insights/internal/config"
	"github.com/KaramelBytes/variant-insights/internal/pipeline"
)

var (
	runOutputPath string
	runSheetName  string
	runDelimiter  string
	runBarOut     string
	runSeriesOut  string
	runScatterOut string
	runShow       bool
	runNoCharts   bool
	runQuiet      bool
)

var runCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Run the full analysis: filter, export, clean, aggregate and chart",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := runConfig(cmd, args)
		if err != nil {
			return err
		}
		log, err := newLogger(c, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = log.Close() }()

		out := cmd.OutOrStdout()
		p, err := pipeline.New(c, log, out)
		if err != nil {
			return err
		}
		res, err := p.Run()
		if res == nil {
			return err
		}

		if !runQuiet {
			fmt.Fprintln(out, res.Report.Markdown())
		}
		printArtifacts(out, res)
		for _, rerr := range res.RenderErrors {
			var re *chart.RenderError
			if errors.As(rerr, &re) {
				fmt.Fprintln(cmd.ErrOrStderr(), color.Yellow.Sprintf("⚠ %s chart failed: %v", re.Chart, re.Err))
			}
		}
		if err != nil {
			return fmt.Errorf("%d chart(s) failed", len(res.RenderErrors))
		}
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter [input]",
	Short: "Keep significant variants seen in several populations and export them as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := runConfig(cmd, args)
		if err != nil {
			return err
		}
		log, err := newLogger(c, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = log.Close() }()

		p, err := pipeline.New(c, log, nil)
		if err != nil {
			return err
		}
		res, err := p.Filter()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		st := res.Report.Filter
		fmt.Fprintf(out, "Rows: %d loaded, %d significant, %d retained (%d variants)\n",
			st.Loaded, st.Significant, st.Retained, st.Variants)
		for _, w := range res.Report.Warnings {
			fmt.Fprintln(out, color.Yellow.Sprint("⚠ "+w))
		}
		printArtifacts(out, res)
		return nil
	},
}

// runConfig copies the loaded configuration and applies the command's flags.
func runConfig(cmd *cobra.Command, args []string) (*cfgpkg.Global, error) {
	base, err := requireConfig()
	if err != nil {
		return nil, err
	}
	c := *base

	if len(args) == 1 {
		c.InputPath = args[0]
	}
	f := cmd.Flags()
	if f.Changed("output") {
		c.OutputPath = runOutputPath
	}
	if f.Changed("sheet") {
		c.SheetName = runSheetName
	}
	if f.Changed("delimiter") {
		c.Delimiter = runDelimiter
	}
	if f.Lookup("bar-out") == nil {
		return &c, nil
	}
	if f.Changed("bar-out") {
		c.Charts.Bar.SavePath = runBarOut
	}
	if f.Changed("timeseries-out") {
		c.Charts.TimeSeries.SavePath = runSeriesOut
	}
	if f.Changed("scatter-out") {
		c.Charts.Scatter.SavePath = runScatterOut
	}
	if runShow {
		c.Charts.Bar.Show = true
		c.Charts.TimeSeries.Show = true
		c.Charts.Scatter.Show = true
	}
	if runNoCharts {
		c.Charts = cfgpkg.ChartsConfig{}
	}
	return &c, nil
}

func printArtifacts(w io.Writer, res *pipeline.Result) {
	for el := res.Artifacts.Front(); el != nil; el = el.Next() {
		fmt.Fprintln(w, color.Green.Sprintf("✓ Wrote %s to %s", el.Key, el.Value))
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(filterCmd)

	for _, c := range []*cobra.Command{runCmd, filterCmd} {
		c.Flags().StringVarP(&runOutputPath, "output", "o", "", "path of the filtered CSV export (overrides config)")
		c.Flags().StringVar(&runSheetName, "sheet", "", "XLSX: sheet name to read (default first sheet)")
		c.Flags().StringVar(&runDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|'")
	}
	runCmd.Flags().StringVar(&runBarOut, "bar-out", "", "image path of the population bar chart (empty disables saving)")
	runCmd.Flags().StringVar(&runSeriesOut, "timeseries-out", "", "image path of the annual time-series chart (empty disables saving)")
	runCmd.Flags().StringVar(&runScatterOut, "scatter-out", "", "image path of the variant/gene scatter chart (empty disables saving)")
	runCmd.Flags().BoolVar(&runShow, "show", false, "print every chart to the terminal")
	runCmd.Flags().BoolVar(&runNoCharts, "no-charts", false, "skip charts entirely")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "do not print the run report")
}
