package config

import (
	"fmt"
	"strings"

	"github.com/codemate-labs/codemate/pkg/framework"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
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

// Validator handles settings validation.
type Validator struct {
	registry *framework.Registry
	errors   ValidationErrors
}

// NewValidator creates a validator that checks framework identifiers against
// the given registry.
func NewValidator(registry *framework.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks merged settings for values no command could act on.
func (v *Validator) Validate(s *Settings) error {
	v.errors = make(ValidationErrors, 0)

	if strings.TrimSpace(s.OutputRoot) == "" {
		v.addError("output_root", "output root must not be empty")
	}

	validFormats := []string{"text", "json", "yaml", "table"}
	if s.Format != "" && !contains(validFormats, s.Format) {
		v.addError("format", "format must be one of: text, json, yaml, table")
	}

	for id, dir := range s.FrameworkDirs {
		field := fmt.Sprintf("framework_dirs.%s", id)
		if !v.registry.Supported(id) {
			v.addError(field, fmt.Sprintf("unknown framework (supported: %s)", strings.Join(v.registry.IDs(), ", ")))
		}
		if strings.TrimSpace(dir) == "" {
			v.addError(field, "directory must not be empty")
		}
	}

	for name, tmpl := range s.Messages {
		if strings.TrimSpace(name) == "" {
			v.addError("messages", "message name must not be empty")
		}
		if strings.TrimSpace(tmpl) == "" {
			v.addError(fmt.Sprintf("messages.%s", name), "template must not be empty")
		}
	}

	if len(v.errors) > 0 {
		return v.errors
	}

	return nil
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
