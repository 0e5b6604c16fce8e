package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/variant-insights/internal/analysis"
)

// Chart titles and axis labels.
const (
	BarTitle     = "Number of Significant Genetic Variants per Population"
	SeriesTitle  = "Annual Count of Significant Genetic Variants and 5-Year Rolling Average"
	scatterTitle = "Relationship Between Significant Variants and Unique Genes (Correlation: %s)"
)

// ScatterTitle embeds the correlation, rounded to two decimals, in the title.
func ScatterTitle(r float64) string {
	return fmt.Sprintf(scatterTitle, analysis.FormatCorrelation(r))
}

// PopulationBarPlot builds a horizontal bar chart with one bar per population,
// in the given order, each coloured from the tab20 palette by position.
func PopulationBarPlot(rows []analysis.PopulationCount) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = BarTitle
	p.X.Label.Text = "Number of Variants"
	p.Y.Label.Text = "Population"
	p.X.Min = 0

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Population
		bars, err := plotter.NewBarChart(plotter.Values{float64(row.VariantCount)}, vg.Points(18))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.XMin = float64(i)
		bars.Color = Tab20(i)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}
	if len(names) > 0 {
		p.NominalY(names...)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// AnnualSeriesPlot builds the annual count line (with point markers) and the
// dashed trailing average line. Buckets without a rolling value are skipped.
func AnnualSeriesPlot(rows []analysis.YearCount, window int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = SeriesTitle
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Significant Variants"
	p.Legend.Top = true

	counts := make(plotter.XYs, 0, len(rows))
	rolling := make(plotter.XYs, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, plotter.XY{X: float64(row.Year), Y: float64(row.VariantCount)})
		if row.HasRollingAvg {
			rolling = append(rolling, plotter.XY{X: float64(row.Year), Y: row.RollingAvg})
		}
	}

	if len(counts) > 0 {
		line, points, err := plotter.NewLinePoints(counts)
		if err != nil {
			return nil, err
		}
		line.Color = Tab20(0)
		line.Width = vg.Points(1.5)
		points.Shape = draw.CircleGlyph{}
		points.Color = Tab20(0)
		points.Radius = vg.Points(3)
		p.Add(line, points)
		p.Legend.Add("Annual Count", line, points)
	}
	if len(rolling) > 0 {
		avg, err := plotter.NewLine(rolling)
		if err != nil {
			return nil, err
		}
		avg.Color = Tab20(2)
		avg.Width = vg.Points(1.5)
		avg.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(avg)
		p.Legend.Add(fmt.Sprintf("%d-Year Rolling Avg", window), avg)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// VariantGeneScatterPlot places one circle per population, each with its own
// HUSL colour, and puts the correlation in the title.
func VariantGeneScatterPlot(rows []analysis.PopulationGenes, r float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = ScatterTitle(r)
	p.X.Label.Text = "Number of Significant Variants"
	p.Y.Label.Text = "Number of Unique Genes"

	colors := HUSL(len(rows))
	for i, row := range rows {
		pt, err := plotter.NewScatter(plotter.XYs{{X: float64(row.NumVariants), Y: float64(row.NumUniqueGenes)}})
		if err != nil {
			return nil, err
		}
		pt.GlyphStyle.Color = colors[i]
		pt.GlyphStyle.Radius = vg.Points(5)
		pt.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(pt)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

func rgba(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
