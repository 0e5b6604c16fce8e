package dataset

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadOptions controls how an input file is read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, a comma is used (tab for .tsv files).
	Delimiter rune
	// SheetName selects the XLSX worksheet; empty means the first sheet.
	SheetName string
}

// Loader reads one input format into a Table.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt LoadOptions) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on the file name and reads the table.
// Files with an unknown extension are read as CSV.
func Load(path string, opt LoadOptions) (*Table, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return csvLoader{}.Load(path, opt)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// builder maps raw rows onto records using the header positions of the
// required columns.
type builder struct {
	path  string
	idx   []int
	table *Table
}

func newBuilder(path string, header []string) (*builder, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	idx := make([]int, len(Columns))
	for i, name := range Columns {
		p, ok := pos[name]
		if !ok {
			return nil, &InputError{Path: path, Column: name, Err: ErrMissingColumn}
		}
		idx[i] = p
	}
	return &builder{path: path, idx: idx, table: &Table{Source: filepath.Base(path)}}, nil
}

func (b *builder) add(rec []string) error {
	row := len(b.table.Records) + 1
	cell := func(col int) string {
		if p := b.idx[col]; p < len(rec) {
			return rec[p]
		}
		return ""
	}
	pubmed, err := parsePubMed(cell(5))
	if err != nil {
		return &InputError{Path: b.path, Row: row, Column: ColPubMed, Err: err}
	}
	b.table.Records = append(b.table.Records, VariantRecord{
		ID:          cell(0),
		Association: nullable(cell(1)),
		Population:  nullable(cell(2)),
		Variant:     nullable(cell(3)),
		Gene:        nullable(cell(4)),
		PubMed:      pubmed,
	})
	return nil
}

var errNotInteger = errors.New("not an integer")

// parsePubMed accepts integer text and integral float text such as "123.0",
// which is how a nullable integer column round-trips through pandas.
func parsePubMed(s string) (nullInt, error) {
	if IsNA(s) {
		return nullInt{}, nil
	}
	raw := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Int(n), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return nullInt{}, fmt.Errorf("%w: %q", errNotInteger, s)
	}
	return Int(int64(f)), nil
}
