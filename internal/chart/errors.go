package chart

import "fmt"

// RenderError indicates a chart could not be drawn, saved or displayed.
type RenderError struct {
	Chart string
	Path  string
	Err   error
}

func (e *RenderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("render %s chart to %s: %v", e.Chart, e.Path, e.Err)
	}
	return fmt.Sprintf("render %s chart: %v", e.Chart, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
