// Package analysis implements the filter, cleaning and aggregation steps of
// the variant pipeline.
package analysis

import (
	"github.com/KaramelBytes/variant-insights/internal/dataset"
)

// FilterOptions controls the significance filter.
type FilterOptions struct {
	// SignificanceLabel is the Association value marking a relevant row.
	SignificanceLabel string
	// MinPopulations is the number of distinct populations a variant needs.
	MinPopulations int
}

// DefaultFilterOptions returns the conventional settings.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{SignificanceLabel: "significant", MinPopulations: 2}
}

// FilterStats summarises one filter pass.
type FilterStats struct {
	Loaded      int
	Significant int
	Retained    int
	// Variants is the number of distinct variants that met the threshold.
	Variants int
}

// FilterSignificant keeps significant rows whose variant was reported in at
// least MinPopulations distinct populations of the significant subset.
// Row order is preserved; the input table is not modified.
func FilterSignificant(t *dataset.Table, opt FilterOptions) (*dataset.Table, FilterStats) {
	st := FilterStats{Loaded: t.Len()}

	significant := make([]dataset.VariantRecord, 0, t.Len())
	for _, r := range t.Records {
		if r.Association.Valid && r.Association.String == opt.SignificanceLabel {
			significant = append(significant, r)
		}
	}
	st.Significant = len(significant)

	pops := map[string]map[string]struct{}{}
	for _, r := range significant {
		if !r.Variant.Valid {
			continue
		}
		set := pops[r.Variant.String]
		if set == nil {
			set = map[string]struct{}{}
			pops[r.Variant.String] = set
		}
		if r.Population.Valid {
			set[r.Population.String] = struct{}{}
		}
	}
	keep := map[string]bool{}
	for v, set := range pops {
		if len(set) >= opt.MinPopulations {
			keep[v] = true
		}
	}
	st.Variants = len(keep)

	out := &dataset.Table{Source: t.Source, Records: make([]dataset.VariantRecord, 0, len(significant))}
	for _, r := range significant {
		if r.Variant.Valid && keep[r.Variant.String] {
			out.Records = append(out.Records, r)
		}
	}
	st.Retained = out.Len()
	return out, st
}
