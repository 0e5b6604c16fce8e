package analysis

import (
	"fmt"
	"strings"
)

// Artifact is a file written by a run.
type Artifact struct {
	Name string
	Path string
}

// Report is a plain-text summary of one pipeline run.
type Report struct {
	RunID       string
	Input       string
	Filter      FilterStats
	Cleaning    CleanStats
	Populations []PopulationCount
	Annual      []YearCount
	Window      int
	Genes       []PopulationGenes
	Correlation float64
	Artifacts   []Artifact
	Warnings    []string
}

// Markdown renders the report in the sectioned summary layout.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[RUN]\n")
	if r.RunID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	}
	if r.Input != "" {
		b.WriteString(fmt.Sprintf("Input: %s\n", r.Input))
	}
	b.WriteString(fmt.Sprintf("Rows: %d loaded, %d significant, %d retained (%d variants in 2+ populations)\n",
		r.Filter.Loaded, r.Filter.Significant, r.Filter.Retained, r.Filter.Variants))

	b.WriteString("\n[CLEANING]\n")
	if r.Cleaning.Total() == 0 {
		b.WriteString("- no missing values\n")
	} else {
		b.WriteString(fmt.Sprintf("- Variant: %d filled\n- Gene: %d filled\n- PubMed: %d filled with 0\n",
			r.Cleaning.Variant, r.Cleaning.Gene, r.Cleaning.PubMed))
	}

	if len(r.Populations) > 0 {
		b.WriteString("\n[VARIANTS PER POPULATION]\n")
		for _, p := range r.Populations {
			b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(p.Population), p.VariantCount))
		}
	}

	if len(r.Annual) > 0 {
		b.WriteString("\n[ANNUAL COUNTS]\n")
		b.WriteString(fmt.Sprintf("| Year | Variant_Count | Rolling_Avg (%d) |\n", r.Window))
		b.WriteString("| --- | --- | --- |\n")
		for _, y := range r.Annual {
			avg := "-"
			if y.HasRollingAvg {
				avg = fmt.Sprintf("%.2f", y.RollingAvg)
			}
			b.WriteString(fmt.Sprintf("| %d | %d | %s |\n", y.Year, y.VariantCount, avg))
		}
	}

	if len(r.Genes) > 0 {
		b.WriteString("\n[VARIANTS VS GENES]\n")
		for _, g := range r.Genes {
			b.WriteString(fmt.Sprintf("- %s: variants %d, unique genes %d\n", safeVal(g.Population), g.NumVariants, g.NumUniqueGenes))
		}
		b.WriteString(fmt.Sprintf("Correlation: r=%s\n", FormatCorrelation(r.Correlation)))
	}

	if len(r.Artifacts) > 0 {
		b.WriteString("\n[ARTIFACTS]\n")
		for _, a := range r.Artifacts {
			b.WriteString(fmt.Sprintf("- %s: %s\n", a.Name, a.Path))
		}
	}

	b.WriteString("\n[NOTES]\n")
	b.WriteString("- years are synthetic: evenly spaced over the retained rows in file order, not publication dates\n")
	for _, w := range r.Warnings {
		b.WriteString("- ")
		b.WriteString(w)
		b.WriteString("\n")
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
