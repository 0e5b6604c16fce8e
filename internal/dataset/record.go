// Package dataset holds the variant-association table and its readers and
// writers.
package dataset

import (
	"database/sql"
)

// Column names of the projected table, in export order.
const (
	ColID          = "id"
	ColAssociation = "Association"
	ColPopulation  = "Population"
	ColVariant     = "Variant"
	ColGene        = "Gene"
	ColPubMed      = "PubMed"
)

// Columns lists the required input columns, which are also the export header.
var Columns = []string{ColID, ColAssociation, ColPopulation, ColVariant, ColGene, ColPubMed}

// VariantRecord is one variant-outcome association row.
type VariantRecord struct {
	ID          string
	Association sql.NullString
	Population  sql.NullString
	Variant     sql.NullString
	Gene        sql.NullString
	PubMed      sql.NullInt64
	// Year is synthesized after cleaning; zero until then.
	Year int
}

// Table is an ordered, in-memory set of records.
type Table struct {
	Source  string
	Records []VariantRecord
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Clone returns a deep copy, so later steps can mutate records freely.
func (t *Table) Clone() *Table {
	out := &Table{Source: t.Source, Records: make([]VariantRecord, len(t.Records))}
	copy(out.Records, t.Records)
	return out
}

// Str builds a valid nullable string.
func Str(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

// Int builds a valid nullable integer.
func Int(n int64) sql.NullInt64 { return sql.NullInt64{Int64: n, Valid: true} }

type nullInt = sql.NullInt64

// naTokens mirrors the values pandas treats as missing by default.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNA reports whether a raw cell denotes a missing value.
func IsNA(s string) bool {
	_, ok := naTokens[s]
	return ok
}

func nullable(s string) sql.NullString {
	if IsNA(s) {
		return sql.NullString{}
	}
	return Str(s)
}
