package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/KaramelBytes/variant-insights/internal/analysis"
)

const barCells = 40

// scaled returns the bar length for v on a 0..max scale.
func scaled(v, max float64) int {
	if max <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / max * barCells))
	if n == 0 {
		n = 1
	}
	return n
}

func labelWidth(labels []string, header string) int {
	w := runewidth.StringWidth(header)
	for _, l := range labels {
		if lw := runewidth.StringWidth(l); lw > w {
			w = lw
		}
	}
	return w
}

func paint(c interface{ RGBA() (r, g, b, a uint32) }, s string) string {
	r, g, b := rgba(c)
	return color.RGB(r, g, b).Sprint(s)
}

// WritePopulationBars prints the per-population bar chart as text.
func WritePopulationBars(w io.Writer, rows []analysis.PopulationCount) error {
	labels := make([]string, len(rows))
	max := 0.0
	for i, r := range rows {
		labels[i] = r.Population
		max = math.Max(max, float64(r.VariantCount))
	}
	lw := labelWidth(labels, "Population")

	var b strings.Builder
	b.WriteString(BarTitle + "\n\n")
	for i, r := range rows {
		bar := paint(Tab20(i), strings.Repeat("█", scaled(float64(r.VariantCount), max)))
		b.WriteString(fmt.Sprintf("%s │ %s %d\n", runewidth.FillRight(r.Population, lw), bar, r.VariantCount))
	}
	if len(rows) == 0 {
		b.WriteString("(no populations)\n")
	}
	b.WriteString(fmt.Sprintf("%s └ Number of Variants\n\n", strings.Repeat(" ", lw)))
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAnnualSeries prints the annual counts and the trailing average.
func WriteAnnualSeries(w io.Writer, rows []analysis.YearCount, window int) error {
	max := 0.0
	for _, r := range rows {
		max = math.Max(max, float64(r.VariantCount))
	}

	var b strings.Builder
	b.WriteString(SeriesTitle + "\n\n")
	b.WriteString(fmt.Sprintf("%-6s %-7s %-9s\n", "Year", "Count", fmt.Sprintf("Avg(%d)", window)))
	for _, r := range rows {
		avg := "-"
		if r.HasRollingAvg {
			avg = fmt.Sprintf("%.2f", r.RollingAvg)
		}
		bar := paint(Tab20(0), strings.Repeat("●", scaled(float64(r.VariantCount), max)))
		b.WriteString(fmt.Sprintf("%-6d %-7d %-9s %s\n", r.Year, r.VariantCount, avg, bar))
	}
	if len(rows) == 0 {
		b.WriteString("(no rows)\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteVariantGeneScatter prints one coloured marker per population with its
// variant and gene counts.
func WriteVariantGeneScatter(w io.Writer, rows []analysis.PopulationGenes, r float64) error {
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Population
	}
	lw := labelWidth(labels, "Population")
	colors := HUSL(len(rows))

	var b strings.Builder
	b.WriteString(ScatterTitle(r) + "\n\n")
	b.WriteString(fmt.Sprintf("  %s  %8s  %8s\n", runewidth.FillRight("Population", lw), "Variants", "Genes"))
	for i, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s  %8d  %8d\n", paint(colors[i], "●"), runewidth.FillRight(row.Population, lw), row.NumVariants, row.NumUniqueGenes))
	}
	if len(rows) == 0 {
		b.WriteString("(no populations)\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
