// Package framework defines the scaffold targets codemate can generate and
// the naming conventions each one imposes on component files.
package framework

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Spec describes a single target framework: the identifier users type on the
// command line, how a component name maps to a filename, and the boilerplate
// source produced for it.
type Spec struct {
	// ID is the lowercase identifier accepted on the command line.
	ID string

	// Language is the human-readable implementation language.
	Language string

	// Extension is the generated file's suffix, including the dot.
	Extension string

	// Description is a one-line summary shown by the list command.
	Description string

	filename func(name string) string
	tmpl     *template.Template
}

// templateData carries every casing of the component name into a template.
type templateData struct {
	Name   string
	Pascal string
	Camel  string
	Kebab  string
	Snake  string
}

func newData(name string) templateData {
	name = strings.TrimSpace(name)
	return templateData{
		Name:   name,
		Pascal: PascalCase(name),
		Camel:  CamelCase(name),
		Kebab:  KebabCase(name),
		Snake:  SnakeCase(name),
	}
}

// Filename returns the file name for a component, applying the framework's
// casing convention and extension. The name may be any casing; "user card"
// and "UserCard" produce the same result.
func (s *Spec) Filename(name string) string {
	return s.filename(strings.TrimSpace(name))
}

// Render produces the boilerplate source for a component. Output depends only
// on the component name, so repeated calls are byte-identical.
func (s *Spec) Render(name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, newData(name)); err != nil {
		return nil, fmt.Errorf("rendering %s template: %w", s.ID, err)
	}
	return buf.Bytes(), nil
}

func mustSpec(id, lang, ext, desc string, filename func(string) string, body string) *Spec {
	return &Spec{
		ID:          id,
		Language:    lang,
		Extension:   ext,
		Description: desc,
		filename:    filename,
		tmpl:        template.Must(template.New(id).Parse(body)),
	}
}
