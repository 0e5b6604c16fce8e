package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// snapTolerance absorbs floating-point noise around perfect correlation.
const snapTolerance = 1e-12

// Pearson returns the Pearson correlation of xs and ys. The result is NaN when
// fewer than two pairs exist, the lengths differ, or either side is constant.
func Pearson(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) {
		return math.NaN()
	}
	vx, _ := stats.PopulationVariance(xs)
	vy, _ := stats.PopulationVariance(ys)
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil || math.IsNaN(r) {
		return math.NaN()
	}
	switch {
	case r >= 1-snapTolerance:
		return 1
	case r <= -1+snapTolerance:
		return -1
	}
	return r
}

// VariantGeneCorrelation correlates distinct variant counts with distinct
// gene counts, one observation per population.
func VariantGeneCorrelation(rows []PopulationGenes) float64 {
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.NumVariants)
		ys[i] = float64(r.NumUniqueGenes)
	}
	return Pearson(xs, ys)
}

// FormatCorrelation renders r with two decimals, or "nan" when undefined.
func FormatCorrelation(r float64) string {
	if math.IsNaN(r) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", r)
}
