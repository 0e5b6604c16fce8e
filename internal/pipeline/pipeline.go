// Package pipeline runs the variant analysis end to end: load, filter,
// export, clean, aggregate and chart.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"

	"github.com/KaramelBytes/variant-insights/internal/analysis"
	"github.com/KaramelBytes/variant-insights/internal/chart"
	"github.com/KaramelBytes/variant-insights/internal/config"
	"github.com/KaramelBytes/variant-insights/internal/dataset"
	"github.com/KaramelBytes/variant-insights/internal/logger"
)

// Step names, in execution order.
const (
	StepLoad       = "load"
	StepFilter     = "filter"
	StepExport     = "export"
	StepClean      = "clean"
	StepPopulation = "population"
	StepTimeline   = "timeline"
	StepGenes      = "genes"
)

// Result contains the outputs and statistics of a run.
type Result struct {
	RunID       string
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration

	// Filtered is the exported table, left as loaded.
	Filtered *dataset.Table
	// Cleaned is the copy of Filtered that the aggregates ran on, with nulls
	// filled and years synthesized. Nil after Filter.
	Cleaned *dataset.Table
	Report  *analysis.Report
	// Artifacts maps a description to the written path, in write order.
	Artifacts *orderedmap.OrderedMap[string, string]
	// RenderErrors holds chart failures that did not stop the run.
	RenderErrors []error
}

// Pipeline executes the steps against one configuration.
type Pipeline struct {
	cfg      *config.Global
	log      *logger.Logger
	renderer *chart.Renderer
	newID    func() string
}

// New creates a pipeline. Charts with show enabled are printed to display.
func New(cfg *config.Global, log *logger.Logger, display io.Writer) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Pipeline{
		cfg:      cfg,
		log:      log,
		renderer: chart.NewRenderer(display),
		newID:    func() string { return uuid.NewString() },
	}, nil
}

// Filter runs load, filter and export only.
func (p *Pipeline) Filter() (*Result, error) {
	res, log := p.begin()
	if err := p.filterAndExport(res, log); err != nil {
		return nil, err
	}
	p.finish(res, log)
	return res, nil
}

// Run executes the full pipeline. Input and export failures abort the run.
// Chart failures abort too unless continue_on_render_error is set, in which
// case the remaining steps still run and the failures are returned joined
// together with a complete Result.
func (p *Pipeline) Run() (*Result, error) {
	res, log := p.begin()
	if err := p.filterAndExport(res, log); err != nil {
		return nil, err
	}
	tbl := res.Filtered.Clone()
	res.Cleaned = tbl
	rep := res.Report

	slog := log.WithStep(StepClean)
	rep.Cleaning = analysis.Clean(tbl, p.cfg.UnknownLabel)
	slog.Infow("missing values filled",
		"variant", rep.Cleaning.Variant,
		"gene", rep.Cleaning.Gene,
		"pubmed", rep.Cleaning.PubMed,
	)

	slog = log.WithStep(StepPopulation)
	rep.Populations = analysis.VariantsPerPopulation(tbl)
	slog.Infow("variants counted per population", "populations", len(rep.Populations))
	if err := p.chart(res, slog, chart.NameBar, p.cfg.Charts.Bar, func(t chart.Target) error {
		return p.renderer.PopulationBar(rep.Populations, t)
	}); err != nil {
		return nil, err
	}

	slog = log.WithStep(StepTimeline)
	analysis.SynthesizeYears(tbl, p.cfg.YearStart, p.cfg.YearEnd)
	rep.Window = p.cfg.RollingWindow
	rep.Annual = analysis.AnnualCounts(tbl, p.cfg.RollingWindow)
	slog.Infow("annual counts computed", "years", len(rep.Annual), "window", p.cfg.RollingWindow)
	if err := p.chart(res, slog, chart.NameTimeSeries, p.cfg.Charts.TimeSeries, func(t chart.Target) error {
		return p.renderer.AnnualSeries(rep.Annual, p.cfg.RollingWindow, t)
	}); err != nil {
		return nil, err
	}

	slog = log.WithStep(StepGenes)
	rep.Genes = analysis.VariantsAndGenesPerPopulation(tbl)
	rep.Correlation = analysis.VariantGeneCorrelation(rep.Genes)
	slog.Infow("variant/gene correlation computed",
		"populations", len(rep.Genes),
		"r", analysis.FormatCorrelation(rep.Correlation),
	)
	if err := p.chart(res, slog, chart.NameScatter, p.cfg.Charts.Scatter, func(t chart.Target) error {
		return p.renderer.VariantGeneScatter(rep.Genes, rep.Correlation, t)
	}); err != nil {
		return nil, err
	}

	p.finish(res, log)
	if len(res.RenderErrors) > 0 {
		return res, errors.Join(res.RenderErrors...)
	}
	return res, nil
}

func (p *Pipeline) begin() (*Result, *logger.Logger) {
	res := &Result{
		RunID:     p.newID(),
		StartedAt: time.Now(),
		Artifacts: orderedmap.NewOrderedMap[string, string](),
	}
	res.Report = &analysis.Report{RunID: res.RunID, Input: p.cfg.InputPath}
	return res, p.log.WithRun(res.RunID)
}

func (p *Pipeline) finish(res *Result, log *logger.Logger) {
	res.CompletedAt = time.Now()
	res.Duration = res.CompletedAt.Sub(res.StartedAt)
	for el := res.Artifacts.Front(); el != nil; el = el.Next() {
		res.Report.Artifacts = append(res.Report.Artifacts, analysis.Artifact{Name: el.Key, Path: el.Value})
	}
	log.Infow("run completed",
		"duration", res.Duration,
		"artifacts", res.Artifacts.Len(),
		"render_errors", len(res.RenderErrors),
	)
}

func (p *Pipeline) filterAndExport(res *Result, log *logger.Logger) error {
	delim, err := config.ParseDelimiter(p.cfg.Delimiter)
	if err != nil {
		return err
	}

	slog := log.WithStep(StepLoad)
	slog.Debugw("loading input", "path", p.cfg.InputPath, "sheet", p.cfg.SheetName)
	tbl, err := dataset.Load(p.cfg.InputPath, dataset.LoadOptions{Delimiter: delim, SheetName: p.cfg.SheetName})
	if err != nil {
		slog.Errorw("load failed", "error", err)
		return err
	}
	slog.Infow("input loaded", "rows", tbl.Len(), "source", tbl.Source)

	slog = log.WithStep(StepFilter)
	filtered, st := analysis.FilterSignificant(tbl, analysis.FilterOptions{
		SignificanceLabel: p.cfg.SignificanceLabel,
		MinPopulations:    p.cfg.MinPopulations,
	})
	res.Filtered = filtered
	res.Report.Filter = st
	slog.Infow("significant variants filtered",
		"significant", st.Significant,
		"retained", st.Retained,
		"variants", st.Variants,
	)
	if st.Retained == 0 {
		res.Report.Warnings = append(res.Report.Warnings,
			fmt.Sprintf("no %q variant was reported in %d or more populations", p.cfg.SignificanceLabel, p.cfg.MinPopulations))
	}

	slog = log.WithStep(StepExport)
	if err := dataset.Export(p.cfg.OutputPath, filtered); err != nil {
		slog.Errorw("export failed", "error", err)
		return err
	}
	res.Artifacts.Set("filtered table", p.cfg.OutputPath)
	slog.Infow("filtered table exported", "path", p.cfg.OutputPath, "rows", filtered.Len())
	return nil
}

// chart renders one chart when enabled and applies the render error policy.
func (p *Pipeline) chart(res *Result, log *logger.Logger, name string, cc config.ChartConfig, render func(chart.Target) error) error {
	log = log.WithFields(map[string]interface{}{"chart": name})
	if !cc.Enabled() {
		log.Debug("chart disabled")
		return nil
	}
	err := render(chart.Target{Show: cc.Show, SavePath: cc.SavePath})
	if err == nil {
		if cc.SavePath != "" {
			res.Artifacts.Set(name+" chart", cc.SavePath)
		}
		log.Infow("chart rendered", "path", cc.SavePath, "shown", cc.Show)
		return nil
	}
	if !p.cfg.ContinueOnRenderError {
		log.Errorw("chart failed", "error", err)
		return err
	}
	log.Warnw("chart failed, continuing", "error", err)
	res.RenderErrors = append(res.RenderErrors, err)
	res.Report.Warnings = append(res.Report.Warnings, err.Error())
	return nil
}
