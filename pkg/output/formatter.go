// Package output renders command results in the formats codemate supports:
// a human text format plus json, yaml, and table for scripting. It also
// renders the user-overridable result message templates.
package output

import "io"

// Formatter is the interface that all output formatters must implement.
type Formatter interface {
	// Format formats the given data according to the formatter's rules
	// and writes the output to the provided writer.
	Format(w io.Writer, data interface{}, config *FormatConfig) error

	// Name returns the name of the formatter (e.g., "text", "json").
	Name() string

	// Supports returns true if the formatter can handle the given data type.
	Supports(data interface{}) bool
}

// FormatConfig contains configuration options for formatting output.
type FormatConfig struct {
	// Pretty enables pretty-printing (for JSON)
	Pretty bool

	// Colors enables colored output
	Colors bool

	// Compact reduces whitespace in output
	Compact bool

	// ShowHeaders controls header display (for tables)
	ShowHeaders bool

	// SortBy specifies the column to sort by (for tables)
	SortBy string

	// SortAsc controls sort direction
	SortAsc bool
}

// NewFormatConfig creates a new FormatConfig with sensible defaults.
func NewFormatConfig() *FormatConfig {
	return &FormatConfig{
		Pretty:      true,
		Colors:      true,
		ShowHeaders: true,
		SortAsc:     true,
	}
}

// WithPretty sets the pretty-printing option.
func (c *FormatConfig) WithPretty(pretty bool) *FormatConfig {
	c.Pretty = pretty
	return c
}

// WithColors sets the colors option.
func (c *FormatConfig) WithColors(colors bool) *FormatConfig {
	c.Colors = colors
	return c
}

// WithCompact sets the compact option.
func (c *FormatConfig) WithCompact(compact bool) *FormatConfig {
	c.Compact = compact
	return c
}

// WithSorting sets the sorting options.
func (c *FormatConfig) WithSorting(column string, asc bool) *FormatConfig {
	c.SortBy = column
	c.SortAsc = asc
	return c
}

// Result represents a formatted output result with success/error information.
type Result struct {
	// Success indicates whether the operation was successful
	Success bool

	// Data is the actual result data
	Data interface{}

	// Error is the error message if Success is false
	Error string

	// Message is an optional message to display
	Message string

	// Metadata contains additional information about the result
	Metadata map[string]interface{}
}

// NewResult creates a successful result.
func NewResult(data interface{}) *Result {
	return &Result{
		Success:  true,
		Data:     data,
		Metadata: make(map[string]interface{}),
	}
}

// NewErrorResult creates an error result.
func NewErrorResult(err error) *Result {
	return &Result{
		Success:  false,
		Error:    err.Error(),
		Metadata: make(map[string]interface{}),
	}
}

// WithMessage sets the result message.
func (r *Result) WithMessage(msg string) *Result {
	r.Message = msg
	return r
}

// WithMetadata adds metadata to the result.
func (r *Result) WithMetadata(key string, value interface{}) *Result {
	r.Metadata[key] = value
	return r
}
