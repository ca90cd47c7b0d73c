package output

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Template names for the generation events commands report. Users can
// override any of them in their config or a project manifest.
const (
	TemplateGenerated   = "generated"
	TemplateOverwritten = "overwritten"
	TemplateDryRun      = "dry_run"
	TemplateSessionDone = "session_done"
)

// TemplateEngine provides message template rendering with variable interpolation.
// It supports both simple variable substitution (e.g., {name}) and expr expressions.
type TemplateEngine struct {
	// Cache for compiled expr programs
	programCache map[string]*vm.Program
}

// NewTemplateEngine creates a new template engine.
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		programCache: make(map[string]*vm.Program),
	}
}

// Render renders a template string with the given data.
// Supports two template syntaxes:
//  1. Simple variables: {variable_name} or {object.field}
//  2. Expr expressions: {{expression}}
func (t *TemplateEngine) Render(template string, data map[string]interface{}) (string, error) {
	if template == "" {
		return "", nil
	}

	if data == nil {
		data = make(map[string]interface{})
	}

	// First, process expr expressions ({{ }})
	result, err := t.processExpressions(template, data)
	if err != nil {
		return "", err
	}

	// Then, process simple variables ({ })
	result, err = t.processVariables(result, data)
	if err != nil {
		return "", err
	}

	return result, nil
}

// processExpressions processes {{ expr }} style expressions.
func (t *TemplateEngine) processExpressions(template string, data map[string]interface{}) (string, error) {
	re := regexp.MustCompile(`\{\{([^}]+)\}\}`)

	var lastErr error
	result := re.ReplaceAllStringFunc(template, func(match string) string {
		expression := strings.TrimSpace(match[2 : len(match)-2])

		value, err := t.evaluateExpression(expression, data)
		if err != nil {
			lastErr = err
			return match
		}

		return fmt.Sprint(value)
	})

	if lastErr != nil {
		return "", fmt.Errorf("failed to evaluate expression: %w", lastErr)
	}

	return result, nil
}

// processVariables processes {variable} style simple variable substitution.
func (t *TemplateEngine) processVariables(template string, data map[string]interface{}) (string, error) {
	re := regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_\.]*)\}`)

	var lastErr error
	result := re.ReplaceAllStringFunc(template, func(match string) string {
		varPath := strings.TrimSpace(match[1 : len(match)-1])

		value, err := t.resolveVariable(varPath, data)
		if err != nil {
			lastErr = err
			return match
		}

		return fmt.Sprint(value)
	})

	if lastErr != nil {
		return "", fmt.Errorf("failed to resolve variable: %w", lastErr)
	}

	return result, nil
}

// evaluateExpression evaluates an expr expression, caching compiled programs.
func (t *TemplateEngine) evaluateExpression(expression string, data map[string]interface{}) (interface{}, error) {
	program, ok := t.programCache[expression]
	if !ok {
		var err error
		program, err = expr.Compile(expression, expr.Env(data), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("failed to compile expression '%s': %w", expression, err)
		}
		t.programCache[expression] = program
	}

	result, err := expr.Run(program, data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute expression '%s': %w", expression, err)
	}

	return result, nil
}

// resolveVariable resolves a variable path like "name" or "result.filename".
func (t *TemplateEngine) resolveVariable(path string, data map[string]interface{}) (interface{}, error) {
	parts := strings.Split(path, ".")
	var current interface{} = data

	for _, part := range parts {
		switch v := current.(type) {
		case map[string]interface{}:
			val, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("variable '%s' not found", path)
			}
			current = val
		case map[string]string:
			val, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("variable '%s' not found", path)
			}
			current = val
		default:
			return nil, fmt.Errorf("cannot access field '%s' on non-map type", part)
		}
	}

	return current, nil
}

// ClearCache clears the compiled expression cache.
func (t *TemplateEngine) ClearCache() {
	t.programCache = make(map[string]*vm.Program)
}

// MessageTemplate represents a reusable message template.
type MessageTemplate struct {
	Name        string
	Template    string
	Description string
	engine      *TemplateEngine
}

// NewMessageTemplate creates a new message template.
func NewMessageTemplate(name, template, description string) *MessageTemplate {
	return &MessageTemplate{
		Name:        name,
		Template:    template,
		Description: description,
		engine:      NewTemplateEngine(),
	}
}

// Render renders the template with the given data.
func (m *MessageTemplate) Render(data map[string]interface{}) (string, error) {
	return m.engine.Render(m.Template, data)
}

// TemplateLibrary manages a collection of message templates.
type TemplateLibrary struct {
	templates map[string]*MessageTemplate
}

// NewTemplateLibrary creates a new template library.
func NewTemplateLibrary() *TemplateLibrary {
	return &TemplateLibrary{
		templates: make(map[string]*MessageTemplate),
	}
}

// Add adds a template to the library.
func (l *TemplateLibrary) Add(template *MessageTemplate) {
	l.templates[template.Name] = template
}

// Override replaces a template's body, keeping its description when the
// template already exists. Unknown names add a new template so user config
// can define custom events.
func (l *TemplateLibrary) Override(name, body string) {
	if existing, ok := l.templates[name]; ok {
		existing.Template = body
		existing.engine.ClearCache()
		return
	}
	l.Add(NewMessageTemplate(name, body, "user-defined template"))
}

// Get retrieves a template by name.
func (l *TemplateLibrary) Get(name string) (*MessageTemplate, error) {
	template, ok := l.templates[name]
	if !ok {
		return nil, fmt.Errorf("template '%s' not found", name)
	}
	return template, nil
}

// Render renders a template by name with the given data.
func (l *TemplateLibrary) Render(name string, data map[string]interface{}) (string, error) {
	template, err := l.Get(name)
	if err != nil {
		return "", err
	}
	return template.Render(data)
}

// List returns all template names, sorted.
func (l *TemplateLibrary) List() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerationTemplates builds the default message library for generation
// events. Each command gets a fresh library so config overrides never leak
// between runs.
func GenerationTemplates() *TemplateLibrary {
	lib := NewTemplateLibrary()

	lib.Add(NewMessageTemplate(
		TemplateGenerated,
		"✓ Generated {filename} ({framework}) at {path}",
		"Printed after a component file is written",
	))

	lib.Add(NewMessageTemplate(
		TemplateOverwritten,
		"✓ Regenerated {filename} ({framework}) at {path}, replacing the existing file",
		"Printed when generation overwrote an existing file",
	))

	lib.Add(NewMessageTemplate(
		TemplateDryRun,
		"Would generate {filename} ({framework}) at {path}",
		"Printed instead of writing when --dry-run is set",
	))

	lib.Add(NewMessageTemplate(
		TemplateSessionDone,
		`Generated {{ count }} component{{ count == 1 ? "" : "s" }} this session`,
		"Printed when an interactive session ends",
	))

	return lib
}
