package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/variant-insights/internal/dataset"
)

// YearCount is one bucket of the synthetic annual series.
type YearCount struct {
	Year         int
	VariantCount int
	// RollingAvg is meaningful only when HasRollingAvg is set.
	RollingAvg    float64
	HasRollingAvg bool
}

// SynthesizeYears assigns each record, in its current order, a year taken
// from len(t) evenly spaced points over [start, end], truncated to integers.
// The result is a synthetic timeline that follows row order, not observation
// dates. A single record gets start.
func SynthesizeYears(t *dataset.Table, start, end int) {
	years := LinearYears(t.Len(), start, end)
	for i := range t.Records {
		t.Records[i].Year = years[i]
	}
}

// LinearYears returns n integer points evenly spaced over [start, end].
func LinearYears(n, start, end int) []int {
	switch n {
	case 0:
		return nil
	case 1:
		return []int{start}
	}
	pts := floats.Span(make([]float64, n), float64(start), float64(end))
	pts[n-1] = float64(end)
	out := make([]int, n)
	for i, p := range pts {
		out[i] = int(math.Trunc(p))
	}
	return out
}

// AnnualCounts groups records by Year (ascending), counts rows per year and
// adds a trailing mean over window consecutive buckets. The first window-1
// buckets have no rolling value.
func AnnualCounts(t *dataset.Table, window int) []YearCount {
	counts := map[int]int{}
	for _, r := range t.Records {
		counts[r.Year]++
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearCount, len(years))
	vals := make([]float64, len(years))
	for i, y := range years {
		out[i] = YearCount{Year: y, VariantCount: counts[y]}
		vals[i] = float64(counts[y])
	}
	for i, avg := range RollingMean(vals, window) {
		if !math.IsNaN(avg) {
			out[i].RollingAvg = avg
			out[i].HasRollingAvg = true
		}
	}
	return out
}

// RollingMean returns the trailing mean of each window of vals. Positions
// without a full window are NaN.
func RollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		if window < 1 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		m, err := stats.Mean(vals[i-window+1 : i+1])
		if err != nil {
			m = math.NaN()
		}
		out[i] = m
	}
	return out
}
