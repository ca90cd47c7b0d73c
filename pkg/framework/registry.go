package framework

import (
	"fmt"
	"strings"
)

// UnsupportedError reports a framework identifier the registry does not know.
// Matching is exact: identifiers are lowercase and never normalized, so
// "React" is rejected even though "react" is supported.
type UnsupportedError struct {
	ID        string
	Supported []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported framework %q (supported: %s)", e.ID, strings.Join(e.Supported, ", "))
}

// Registry holds the supported framework specs in their canonical order.
type Registry struct {
	order []string
	specs map[string]*Spec
}

// NewRegistry builds the registry of built-in frameworks.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]*Spec)}
	for _, s := range builtinSpecs() {
		r.order = append(r.order, s.ID)
		r.specs[s.ID] = s
	}
	return r
}

// Lookup returns the spec for an identifier, or an UnsupportedError when the
// identifier is unknown.
func (r *Registry) Lookup(id string) (*Spec, error) {
	s, ok := r.specs[id]
	if !ok {
		return nil, &UnsupportedError{ID: id, Supported: r.IDs()}
	}
	return s, nil
}

// Supported reports whether an identifier names a known framework.
func (r *Registry) Supported(id string) bool {
	_, ok := r.specs[id]
	return ok
}

// IDs returns the framework identifiers in canonical order. The order is
// fixed across runs so listings and completions stay stable.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Specs returns the framework specs in canonical order.
func (r *Registry) Specs() []*Spec {
	specs := make([]*Spec, 0, len(r.order))
	for _, id := range r.order {
		specs = append(specs, r.specs[id])
	}
	return specs
}

func builtinSpecs() []*Spec {
	return []*Spec{
		mustSpec("react", "TypeScript", ".tsx", "React function component with a typed props interface",
			func(name string) string { return PascalCase(name) + ".tsx" }, reactTemplate),
		mustSpec("angular", "TypeScript", ".component.ts", "Angular component class with an inline template",
			func(name string) string { return KebabCase(name) + ".component.ts" }, angularTemplate),
		mustSpec("python", "Python", ".py", "Python dataclass component module",
			func(name string) string { return SnakeCase(name) + ".py" }, pythonTemplate),
		mustSpec("node", "JavaScript", ".js", "Node.js Express router module",
			func(name string) string { return CamelCase(name) + ".js" }, nodeTemplate),
		mustSpec("java", "Java", ".java", "Java component class with accessors",
			func(name string) string { return PascalCase(name) + ".java" }, javaTemplate),
	}
}
