package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Global) Validate() error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if strings.TrimSpace(c.InputPath) == "" {
		add("input_path", "is required")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		add("output_path", "is required")
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		add("delimiter", err.Error())
	}
	if c.SignificanceLabel == "" {
		add("significance_label", "must not be empty")
	}
	if c.MinPopulations < 1 {
		add("min_populations", "must be at least 1")
	}
	if c.UnknownLabel == "" {
		add("unknown_label", "must not be empty")
	}
	if c.YearEnd < c.YearStart {
		add("year_end", fmt.Sprintf("must not be before year_start (%d < %d)", c.YearEnd, c.YearStart))
	}
	if c.RollingWindow < 1 {
		add("rolling_window", "must be at least 1")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		add("logging.level", fmt.Sprintf("unknown level %q (use debug, info, warn, error)", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		add("logging.format", fmt.Sprintf("unknown format %q (use text or json)", c.Logging.Format))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseDelimiter maps the configured delimiter name to a rune.
// An empty value selects a comma.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", ",", "comma":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q (use ',' | ';' | 'tab' | '|')", s)
	}
}
