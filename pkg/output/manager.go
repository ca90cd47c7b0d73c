package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Manager manages output formatting and provides high-level formatting methods.
type Manager struct {
	formatters     map[string]Formatter
	defaultFormat  string
	config         *FormatConfig
	templateEngine *TemplateEngine
}

// NewManager creates a new output manager with the built-in formatters
// registered and text as the default format.
func NewManager() *Manager {
	m := &Manager{
		formatters:     make(map[string]Formatter),
		defaultFormat:  "text",
		config:         NewFormatConfig(),
		templateEngine: NewTemplateEngine(),
	}

	m.RegisterFormatter(NewTextFormatter())
	m.RegisterFormatter(NewJSONFormatter())
	m.RegisterFormatter(NewYAMLFormatter())
	m.RegisterFormatter(NewTableFormatter())

	return m
}

// RegisterFormatter registers a new formatter.
func (m *Manager) RegisterFormatter(formatter Formatter) {
	m.formatters[formatter.Name()] = formatter
}

// GetFormatter returns a formatter by name.
func (m *Manager) GetFormatter(name string) (Formatter, error) {
	formatter, ok := m.formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("formatter '%s' not found (supported: %s)", name, strings.Join(m.SupportedFormats(), ", "))
	}
	return formatter, nil
}

// SetDefaultFormat sets the default output format.
func (m *Manager) SetDefaultFormat(format string) {
	m.defaultFormat = format
}

// SetConfig sets the format configuration.
func (m *Manager) SetConfig(config *FormatConfig) {
	m.config = config
}

// GetConfig returns the current format configuration.
func (m *Manager) GetConfig() *FormatConfig {
	return m.config
}

// SelectFormat picks the format to use: an explicit flag wins, then the
// configured default, then the manager default.
func (m *Manager) SelectFormat(explicit, configured string) string {
	if explicit != "" {
		return explicit
	}
	if configured != "" {
		return configured
	}
	return m.defaultFormat
}

// Format formats data using the specified format.
func (m *Manager) Format(w io.Writer, data interface{}, format string) error {
	return m.FormatWithConfig(w, data, format, m.config)
}

// FormatWithConfig formats data using the specified format and config.
func (m *Manager) FormatWithConfig(w io.Writer, data interface{}, format string, config *FormatConfig) error {
	if format == "" {
		format = m.defaultFormat
	}

	formatter, err := m.GetFormatter(format)
	if err != nil {
		return err
	}

	if !formatter.Supports(data) {
		return fmt.Errorf("formatter '%s' does not support data type %T", format, data)
	}

	return formatter.Format(w, data, config)
}

// FormatResult formats a Result object.
func (m *Manager) FormatResult(w io.Writer, result *Result, format string) error {
	if format == "" {
		format = m.defaultFormat
	}

	formatter, err := m.GetFormatter(format)
	if err != nil {
		return err
	}

	switch f := formatter.(type) {
	case interface {
		FormatResult(io.Writer, *Result, *FormatConfig) error
	}:
		return f.FormatResult(w, result, m.config)
	default:
		if result.Success {
			return formatter.Format(w, result.Data, m.config)
		}
		return m.FormatError(w, fmt.Errorf("%s", result.Error), format)
	}
}

// FormatError formats an error.
func (m *Manager) FormatError(w io.Writer, err error, format string) error {
	if err == nil {
		return nil
	}
	if format == "" {
		format = m.defaultFormat
	}

	formatter, fmtErr := m.GetFormatter(format)
	if fmtErr != nil {
		return fmtErr
	}

	switch f := formatter.(type) {
	case interface {
		FormatError(io.Writer, error, *FormatConfig) error
	}:
		return f.FormatError(w, err, m.config)
	default:
		errorData := map[string]interface{}{
			"error": err.Error(),
		}
		return formatter.Format(w, errorData, m.config)
	}
}

// FormatEmpty formats an empty result with an optional message.
func (m *Manager) FormatEmpty(w io.Writer, message string, format string) error {
	if format == "" {
		format = m.defaultFormat
	}

	formatter, err := m.GetFormatter(format)
	if err != nil {
		return err
	}

	switch f := formatter.(type) {
	case interface {
		FormatEmpty(io.Writer, string, *FormatConfig) error
	}:
		return f.FormatEmpty(w, message, m.config)
	default:
		if message != "" {
			_, err := w.Write([]byte(message + "\n"))
			return err
		}
		return nil
	}
}

// FormatSuccess formats a success message with optional data.
func (m *Manager) FormatSuccess(w io.Writer, message string, data interface{}, format string) error {
	result := NewResult(data).WithMessage(message)
	return m.FormatResult(w, result, format)
}

// IsFormatSupported checks if a format is supported.
func (m *Manager) IsFormatSupported(format string) bool {
	_, ok := m.formatters[strings.ToLower(format)]
	return ok
}

// SupportedFormats returns the registered format names, sorted.
func (m *Manager) SupportedFormats() []string {
	formats := make([]string, 0, len(m.formatters))
	for name := range m.formatters {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// Print is a convenience method to format and print to stdout.
func (m *Manager) Print(data interface{}, format string) error {
	return m.Format(os.Stdout, data, format)
}

// PrintResult is a convenience method to format and print a Result to stdout.
func (m *Manager) PrintResult(result *Result, format string) error {
	return m.FormatResult(os.Stdout, result, format)
}

// PrintError is a convenience method to format and print an error to stderr.
func (m *Manager) PrintError(err error, format string) error {
	return m.FormatError(os.Stderr, err, format)
}

// RenderMessage renders a message template with the given data.
func (m *Manager) RenderMessage(template string, data map[string]interface{}) (string, error) {
	return m.templateEngine.Render(template, data)
}

// DefaultManager is the global default output manager.
var DefaultManager = NewManager()

// Format formats data using the default manager.
func Format(w io.Writer, data interface{}, format string) error {
	return DefaultManager.Format(w, data, format)
}

// FormatResult formats a Result using the default manager.
func FormatResult(w io.Writer, result *Result, format string) error {
	return DefaultManager.FormatResult(w, result, format)
}

// Print formats and prints data to stdout using the default manager.
func Print(data interface{}, format string) error {
	return DefaultManager.Print(data, format)
}

// PrintResult formats and prints a Result to stdout using the default manager.
func PrintResult(result *Result, format string) error {
	return DefaultManager.PrintResult(result, format)
}

// PrintError formats and prints an error to stderr using the default manager.
func PrintError(err error, format string) error {
	return DefaultManager.PrintError(err, format)
}
