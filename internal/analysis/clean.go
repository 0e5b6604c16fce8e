package analysis

import (
	"github.com/KaramelBytes/variant-insights/internal/dataset"
)

// CleanStats counts the substitutions made by Clean.
type CleanStats struct {
	Variant int
	Gene    int
	PubMed  int
}

// Total returns the number of filled cells.
func (s CleanStats) Total() int { return s.Variant + s.Gene + s.PubMed }

// Clean fills missing categorical fields with unknown and missing PubMed ids
// with 0, in place. Missing values are treated as domain unknowns; running it
// twice changes nothing.
func Clean(t *dataset.Table, unknown string) CleanStats {
	var st CleanStats
	for i := range t.Records {
		r := &t.Records[i]
		if !r.Variant.Valid {
			r.Variant = dataset.Str(unknown)
			st.Variant++
		}
		if !r.Gene.Valid {
			r.Gene = dataset.Str(unknown)
			st.Gene++
		}
		if !r.PubMed.Valid {
			r.PubMed = dataset.Int(0)
			st.PubMed++
		}
	}
	return st
}
