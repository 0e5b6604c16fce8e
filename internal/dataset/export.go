package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/KaramelBytes/variant-insights/internal/utils"
)

// WriteCSV writes the projected columns with a header row and no index.
// Missing values are written as empty cells.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	row := make([]string, len(Columns))
	for _, r := range t.Records {
		row[0] = r.ID
		row[1] = r.Association.String
		row[2] = r.Population.String
		row[3] = r.Variant.String
		row[4] = r.Gene.String
		row[5] = ""
		if r.PubMed.Valid {
			row[5] = strconv.FormatInt(r.PubMed.Int64, 10)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes the table to path atomically, creating parent directories.
func Export(path string, t *Table) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return &OutputError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &OutputError{Path: path, Err: err}
	}
	return nil
}
