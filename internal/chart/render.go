// Package chart draws the pipeline charts, either as image files through
// gonum/plot or as text on a terminal.
package chart

import (
	"errors"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/variant-insights/internal/analysis"
	"github.com/KaramelBytes/variant-insights/internal/utils"
)

// Chart names used in errors and logs.
const (
	NameBar        = "bar"
	NameTimeSeries = "timeseries"
	NameScatter    = "scatter"
)

// Target says where a chart goes. Show prints it to the renderer's writer;
// SavePath writes an image whose format follows the file extension.
type Target struct {
	Show     bool
	SavePath string
}

// Renderer produces the three pipeline charts.
type Renderer struct {
	out io.Writer
}

// NewRenderer returns a Renderer that prints shown charts to out.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = io.Discard
	}
	return &Renderer{out: out}
}

// PopulationBar renders variants per population.
func (r *Renderer) PopulationBar(rows []analysis.PopulationCount, t Target) error {
	return r.render(NameBar, t, 10*vg.Inch, 6*vg.Inch,
		func() (*plot.Plot, error) { return PopulationBarPlot(rows) },
		func(w io.Writer) error { return WritePopulationBars(w, rows) })
}

// AnnualSeries renders the annual counts with their trailing average.
func (r *Renderer) AnnualSeries(rows []analysis.YearCount, window int, t Target) error {
	return r.render(NameTimeSeries, t, 10*vg.Inch, 6*vg.Inch,
		func() (*plot.Plot, error) { return AnnualSeriesPlot(rows, window) },
		func(w io.Writer) error { return WriteAnnualSeries(w, rows, window) })
}

// VariantGeneScatter renders variants against unique genes per population.
func (r *Renderer) VariantGeneScatter(rows []analysis.PopulationGenes, corr float64, t Target) error {
	return r.render(NameScatter, t, 8*vg.Inch, 6*vg.Inch,
		func() (*plot.Plot, error) { return VariantGeneScatterPlot(rows, corr) },
		func(w io.Writer) error { return WriteVariantGeneScatter(w, rows, corr) })
}

func (r *Renderer) render(name string, t Target, w, h vg.Length, build func() (*plot.Plot, error), text func(io.Writer) error) error {
	var errs []error
	if t.SavePath != "" {
		if err := save(build, t.SavePath, w, h); err != nil {
			errs = append(errs, &RenderError{Chart: name, Path: t.SavePath, Err: err})
		}
	}
	if t.Show {
		if err := text(r.out); err != nil {
			errs = append(errs, &RenderError{Chart: name, Err: err})
		}
	}
	return errors.Join(errs...)
}

func save(build func() (*plot.Plot, error), path string, w, h vg.Length) error {
	p, err := build()
	if err != nil {
		return err
	}
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	return p.Save(w, h, path)
}
