package analysis

import (
	"sort"

	"github.com/KaramelBytes/variant-insights/internal/dataset"
)

// PopulationCount is the number of distinct variants seen in a population.
type PopulationCount struct {
	Population   string
	VariantCount int
}

// PopulationGenes pairs distinct variant and gene counts for a population.
type PopulationGenes struct {
	Population     string
	NumVariants    int
	NumUniqueGenes int
}

type popAcc struct {
	variants map[string]struct{}
	genes    map[string]struct{}
}

// groupByPopulation collects distinct variants and genes per non-missing
// population. Missing variant or gene values are not counted.
func groupByPopulation(t *dataset.Table) ([]string, map[string]*popAcc) {
	groups := map[string]*popAcc{}
	for _, r := range t.Records {
		if !r.Population.Valid {
			continue
		}
		g := groups[r.Population.String]
		if g == nil {
			g = &popAcc{variants: map[string]struct{}{}, genes: map[string]struct{}{}}
			groups[r.Population.String] = g
		}
		if r.Variant.Valid {
			g.variants[r.Variant.String] = struct{}{}
		}
		if r.Gene.Valid {
			g.genes[r.Gene.String] = struct{}{}
		}
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}

// VariantsPerPopulation counts distinct variants per population, ordered by
// population name.
func VariantsPerPopulation(t *dataset.Table) []PopulationCount {
	keys, groups := groupByPopulation(t)
	out := make([]PopulationCount, len(keys))
	for i, k := range keys {
		out[i] = PopulationCount{Population: k, VariantCount: len(groups[k].variants)}
	}
	return out
}

// VariantsAndGenesPerPopulation counts distinct variants and distinct genes
// per population, ordered by population name.
func VariantsAndGenesPerPopulation(t *dataset.Table) []PopulationGenes {
	keys, groups := groupByPopulation(t)
	out := make([]PopulationGenes, len(keys))
	for i, k := range keys {
		g := groups[k]
		out[i] = PopulationGenes{Population: k, NumVariants: len(g.variants), NumUniqueGenes: len(g.genes)}
	}
	return out
}
