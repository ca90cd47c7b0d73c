package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Supports returns true if the formatter can handle the given data type.
// YAML formatter can handle any data type.
func (f *YAMLFormatter) Supports(data interface{}) bool {
	return true
}

// Format formats the data as YAML and writes it to the writer.
func (f *YAMLFormatter) Format(w io.Writer, data interface{}, _ *FormatConfig) error {
	if data == nil {
		_, err := w.Write([]byte("null\n"))
		return err
	}

	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()
	encoder.SetIndent(2)

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// FormatResult formats a Result object as YAML.
func (f *YAMLFormatter) FormatResult(w io.Writer, result *Result, config *FormatConfig) error {
	output := make(map[string]interface{})
	output["success"] = result.Success

	if result.Success {
		output["data"] = result.Data
	} else {
		output["error"] = result.Error
	}

	if result.Message != "" {
		output["message"] = result.Message
	}

	if len(result.Metadata) > 0 {
		output["metadata"] = result.Metadata
	}

	return f.Format(w, output, config)
}

// FormatError formats an error as YAML.
func (f *YAMLFormatter) FormatError(w io.Writer, err error, config *FormatConfig) error {
	errorOutput := map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	}

	return f.Format(w, errorOutput, config)
}

// FormatEmpty formats an empty result as YAML.
func (f *YAMLFormatter) FormatEmpty(w io.Writer, message string, config *FormatConfig) error {
	emptyOutput := map[string]interface{}{
		"success": true,
		"data":    nil,
	}

	if message != "" {
		emptyOutput["message"] = message
	}

	return f.Format(w, emptyOutput, config)
}
