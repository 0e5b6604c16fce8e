package analysis

import (
	"database/sql"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/variant-insights/internal/dataset"
)

func rec(id, assoc, pop, variant, gene string) dataset.VariantRecord {
	r := dataset.VariantRecord{ID: id, Association: dataset.Str(assoc)}
	if pop != "" {
		r.Population = dataset.Str(pop)
	}
	if variant != "" {
		r.Variant = dataset.Str(variant)
	}
	if gene != "" {
		r.Gene = dataset.Str(gene)
	}
	return r
}

func TestFilterSignificant_Example(t *testing.T) {
	tbl := &dataset.Table{Records: []dataset.VariantRecord{
		rec("1", "significant", "PopA", "Var1", "G1"),
		rec("2", "significant", "PopB", "Var1", "G1"),
		rec("3", "significant", "PopA", "Var2", "G2"),
	}}

	out, st := FilterSignificant(tbl, DefaultFilterOptions())

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "1", out.Records[0].ID)
	assert.Equal(t, "2", out.Records[1].ID)
	assert.Equal(t, FilterStats{Loaded: 3, Significant: 3, Retained: 2, Variants: 1}, st)
}

func TestFilterSignificant_Rules(t *testing.T) {
	tbl := &dataset.Table{Records: []dataset.VariantRecord{
		rec("1", "significant", "Italian", "rs1", "FOXO3"),
		rec("2", "non-significant", "German", "rs1", "FOXO3"), // not counted toward rs1
		rec("3", "significant", "Italian", "rs2", "APOE"),
		rec("4", "significant", "Italian", "rs2", "APOE"), // same population twice
		rec("5", "significant", "", "rs3", "SIRT1"),       // missing population not counted
		rec("6", "significant", "Danish", "rs3", "SIRT1"),
		rec("7", "significant", "Danish", "", "TP53"),  // missing variant never kept
		rec("8", "significant", "Chinese", "", "TP53"), // ...even across populations
		rec("9", "Significant", "Chinese", "rs4", "X"), // label is case sensitive
		rec("10", "significant", "Japanese", "rs4", "X"),
		rec("11", "significant", "Danish", "rs5", "CETP"),
		rec("12", "significant", "Japanese", "rs5", ""),
		rec("13", "significant", "Italian", "rs5", "CETP"),
	}}
	tbl.Records = append(tbl.Records, dataset.VariantRecord{ID: "14", Population: dataset.Str("Han"), Variant: dataset.Str("rs5")})

	out, st := FilterSignificant(tbl, DefaultFilterOptions())

	var ids []string
	for _, r := range out.Records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"11", "12", "13"}, ids)
	assert.Equal(t, 1, st.Variants)
	assert.Equal(t, 11, st.Significant)

	for _, r := range out.Records {
		assert.Equal(t, "significant", r.Association.String)
	}
	assert.Equal(t, 14, tbl.Len(), "input is untouched")
}

func TestFilterSignificant_MinPopulations(t *testing.T) {
	tbl := &dataset.Table{Records: []dataset.VariantRecord{
		rec("1", "hit", "A", "v1", "g"),
		rec("2", "hit", "B", "v1", "g"),
		rec("3", "hit", "C", "v1", "g"),
		rec("4", "hit", "A", "v2", "g"),
		rec("5", "hit", "B", "v2", "g"),
	}}
	out, _ := FilterSignificant(tbl, FilterOptions{SignificanceLabel: "hit", MinPopulations: 3})
	assert.Equal(t, 3, out.Len())

	out, _ = FilterSignificant(tbl, FilterOptions{SignificanceLabel: "hit", MinPopulations: 1})
	assert.Equal(t, 5, out.Len())
}

func TestClean(t *testing.T) {
	tbl := &dataset.Table{Records: []dataset.VariantRecord{
		rec("1", "significant", "A", "", ""),
		{ID: "2", Variant: dataset.Str("rs1"), Gene: dataset.Str("APOE"), PubMed: dataset.Int(42)},
	}}

	st := Clean(tbl, "Unknown")
	assert.Equal(t, CleanStats{Variant: 1, Gene: 1, PubMed: 1}, st)
	assert.Equal(t, 3, st.Total())

	for _, r := range tbl.Records {
		assert.True(t, r.Variant.Valid)
		assert.True(t, r.Gene.Valid)
		assert.True(t, r.PubMed.Valid)
	}
	assert.Equal(t, "Unknown", tbl.Records[0].Variant.String)
	assert.Equal(t, "Unknown", tbl.Records[0].Gene.String)
	assert.Equal(t, sql.NullInt64{Int64: 0, Valid: true}, tbl.Records[0].PubMed)
	assert.Equal(t, int64(42), tbl.Records[1].PubMed.Int64)

	again := Clean(tbl, "Unknown")
	assert.Zero(t, again.Total(), "second pass is a no-op")
}

func TestVariantsPerPopulation(t *testing.T) {
	tbl := &dataset.Table{Records: []dataset.VariantRecord{
		rec("1", "s", "Italian", "rs1", "FOXO3"),
		rec("2", "s", "German", "rs1", "FOXO3"),
		rec("3", "s", "Italian", "rs2", "APOE"),
		rec("4", "s", "Italian", "rs2", "APOE"),
		rec("5", "s", "", "rs3", "APOE"),
		rec("6", "s", "Danish", "", "APOE"),
	}}

	got := VariantsPerPopulation(tbl)
	assert.Equal(t, []PopulationCount{
		{Population: "Danish", VariantCount: 0},
		{Population: "German", VariantCount: 1},
		{Population: "Italian", VariantCount: 2},
	}, got)
}

func TestVariantsAndGenesPerPopulation(t *testing.T) {
	tbl := &dataset.Table{Records: []dataset.VariantRecord{
		rec("1", "s", "B", "rs1", "FOXO3"),
		rec("2", "s", "B", "rs2", "FOXO3"),
		rec("3", "s", "B", "rs3", "Unknown"),
		rec("4", "s", "A", "rs1", "FOXO3"),
	}}

	got := VariantsAndGenesPerPopulation(tbl)
	assert.Equal(t, []PopulationGenes{
		{Population: "A", NumVariants: 1, NumUniqueGenes: 1},
		{Population: "B", NumVariants: 3, NumUniqueGenes: 2},
	}, got)
}

func TestLinearYears(t *testing.T) {
	assert.Nil(t, LinearYears(0, 2000, 2023))
	assert.Equal(t, []int{2000}, LinearYears(1, 2000, 2023))
	assert.Equal(t, []int{2000, 2023}, LinearYears(2, 2000, 2023))
	assert.Equal(t, []int{2000, 2011, 2023}, LinearYears(3, 2000, 2023))

	full := LinearYears(24, 2000, 2023)
	for i, y := range full {
		assert.Equal(t, 2000+i, y)
	}

	for _, n := range []int{5, 47, 100, 1001} {
		ys := LinearYears(n, 2000, 2023)
		require.Len(t, ys, n)
		assert.Equal(t, 2000, ys[0])
		assert.Equal(t, 2023, ys[n-1])
		for i := 1; i < n; i++ {
			assert.LessOrEqual(t, ys[i-1], ys[i], "n=%d i=%d", n, i)
			assert.GreaterOrEqual(t, ys[i], 2000)
			assert.LessOrEqual(t, ys[i], 2023)
		}
	}
}

func TestSynthesizeYears(t *testing.T) {
	tbl := &dataset.Table{Records: make([]dataset.VariantRecord, 3)}
	SynthesizeYears(tbl, 2000, 2023)
	assert.Equal(t, 2000, tbl.Records[0].Year)
	assert.Equal(t, 2011, tbl.Records[1].Year)
	assert.Equal(t, 2023, tbl.Records[2].Year)

	empty := &dataset.Table{}
	SynthesizeYears(empty, 2000, 2023)
	assert.Zero(t, empty.Len())
}

func TestRollingMean(t *testing.T) {
	got := RollingMean([]float64{1, 2, 3, 4, 5, 6, 10}, 5)
	require.Len(t, got, 7)
	for i := 0; i < 4; i++ {
		assert.True(t, math.IsNaN(got[i]), "index %d", i)
	}
	assert.InDelta(t, 3.0, got[4], 1e-12)
	assert.InDelta(t, 4.0, got[5], 1e-12)
	assert.InDelta(t, 5.6, got[6], 1e-12)

	short := RollingMean([]float64{1, 2}, 5)
	assert.True(t, math.IsNaN(short[0]) && math.IsNaN(short[1]))

	assert.Equal(t, []float64{7, 8}, RollingMean([]float64{7, 8}, 1))
}

func TestAnnualCounts(t *testing.T) {
	tbl := &dataset.Table{Records: make([]dataset.VariantRecord, 12)}
	years := []int{2000, 2000, 2002, 2003, 2003, 2003, 2005, 2007, 2007, 2010, 2011, 2011}
	for i, y := range years {
		tbl.Records[i].Year = y
	}

	got := AnnualCounts(tbl, 5)
	require.Len(t, got, 7)
	assert.Equal(t, YearCount{Year: 2000, VariantCount: 2}, got[0])
	assert.Equal(t, 2003, got[2].Year)
	assert.Equal(t, 3, got[2].VariantCount)
	for i := 0; i < 4; i++ {
		assert.False(t, got[i].HasRollingAvg)
	}
	// buckets: 2,1,3,1,2,1,2
	require.True(t, got[4].HasRollingAvg)
	assert.InDelta(t, 9.0/5, got[4].RollingAvg, 1e-12)
	assert.InDelta(t, 8.0/5, got[5].RollingAvg, 1e-12)
	assert.InDelta(t, 9.0/5, got[6].RollingAvg, 1e-12)
}

func TestPearson(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 7}
	affine := make([]float64, len(xs))
	for i, x := range xs {
		affine[i] = 3*x + 2
	}
	assert.Equal(t, 1.0, Pearson(xs, affine))

	neg := []float64{10, 8, 6, 4, -2}
	assert.Equal(t, -1.0, Pearson(xs, neg))

	r := Pearson([]float64{1, 2, 3, 4}, []float64{2, 1, 4, 3})
	assert.InDelta(t, 0.6, r, 1e-12)
	assert.True(t, r >= -1 && r <= 1)

	assert.True(t, math.IsNaN(Pearson([]float64{1}, []float64{2})))
	assert.True(t, math.IsNaN(Pearson([]float64{1, 1, 1}, []float64{1, 2, 3})))
	assert.True(t, math.IsNaN(Pearson([]float64{1, 2}, []float64{1, 2, 3})))
}

func TestVariantGeneCorrelation(t *testing.T) {
	rows := []PopulationGenes{
		{Population: "A", NumVariants: 1, NumUniqueGenes: 2},
		{Population: "B", NumVariants: 2, NumUniqueGenes: 4},
		{Population: "C", NumVariants: 5, NumUniqueGenes: 10},
	}
	assert.Equal(t, 1.0, VariantGeneCorrelation(rows))
	assert.Equal(t, "1.00", FormatCorrelation(VariantGeneCorrelation(rows)))
	assert.Equal(t, "nan", FormatCorrelation(VariantGeneCorrelation(rows[:1])))
	assert.Equal(t, "-0.50", FormatCorrelation(-0.499))
}

func TestReportMarkdown(t *testing.T) {
	rep := &Report{
		RunID:       "run-1",
		Input:       "3-longevity.csv",
		Filter:      FilterStats{Loaded: 10, Significant: 6, Retained: 4, Variants: 2},
		Cleaning:    CleanStats{Gene: 1, PubMed: 2},
		Populations: []PopulationCount{{Population: "Italian|North", VariantCount: 2}},
		Annual: []YearCount{
			{Year: 2000, VariantCount: 1},
			{Year: 2023, VariantCount: 3, RollingAvg: 2, HasRollingAvg: true},
		},
		Window:      2,
		Genes:       []PopulationGenes{{Population: "Italian", NumVariants: 2, NumUniqueGenes: 1}},
		Correlation: math.NaN(),
		Artifacts:   []Artifact{{Name: "filtered table", Path: "out.csv"}},
		Warnings:    []string{"scatter chart failed"},
	}

	md := rep.Markdown()
	for _, want := range []string{
		"[RUN]", "Run: run-1", "Input: 3-longevity.csv",
		"Rows: 10 loaded, 6 significant, 4 retained (2 variants in 2+ populations)",
		"- Gene: 1 filled", "- PubMed: 2 filled with 0",
		"- Italian/North: 2",
		"| Year | Variant_Count | Rolling_Avg (2) |", "| 2000 | 1 | - |", "| 2023 | 3 | 2.00 |",
		"- Italian: variants 2, unique genes 1", "Correlation: r=nan",
		"[ARTIFACTS]", "- filtered table: out.csv",
		"[NOTES]", "- scatter chart failed",
	} {
		assert.True(t, strings.Contains(md, want), "missing %q in:\n%s", want, md)
	}

	empty := (&Report{}).Markdown()
	assert.Contains(t, empty, "- no missing values")
	assert.NotContains(t, empty, "[ARTIFACTS]")
}
