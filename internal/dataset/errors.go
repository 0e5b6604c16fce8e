package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped by InputError when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// InputError indicates the input table could not be read. It is always fatal.
type InputError struct {
	Path   string
	Row    int // 1-based data row, 0 when not row specific
	Column string
	Err    error
}

func (e *InputError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("input %s: row %d, column %s: %v", e.Path, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("input %s: row %d: %v", e.Path, e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("input %s: %v %q", e.Path, e.Err, e.Column)
	default:
		return fmt.Sprintf("input %s: %v", e.Path, e.Err)
	}
}

func (e *InputError) Unwrap() error { return e.Err }

// OutputError indicates the filtered table could not be exported.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
