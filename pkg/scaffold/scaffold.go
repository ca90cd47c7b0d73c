// Package scaffold turns a generation request into a file on disk: it renders
// the framework template for a component name and writes the result into the
// target directory.
package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codemate-labs/codemate/pkg/framework"
)

// Request describes one generation. OutputDir must already be resolved by the
// caller; DirFor derives the default when no explicit directory was given.
type Request struct {
	Framework string
	Name      string
	OutputDir string
	DryRun    bool
}

// Result reports what a generation did (or, for a dry run, would do).
type Result struct {
	Framework string
	Filename  string
	Path      string
	Bytes     int
	Overwrote bool
	DryRun    bool
	Duration  time.Duration
}

// Generator renders and writes component scaffolds.
type Generator struct {
	registry *framework.Registry
}

// NewGenerator returns a Generator backed by the given framework registry.
func NewGenerator(registry *framework.Registry) *Generator {
	return &Generator{registry: registry}
}

// DirFor returns the directory a framework's generated files land in when the
// user does not name one: a per-framework subdirectory of the output root.
func DirFor(root string, spec *framework.Spec) string {
	return filepath.Join(root, spec.ID)
}

// Generate validates the request, renders the template, and writes the file.
// An existing file at the target path is overwritten without warning. With
// DryRun set, everything up to the write happens and the filesystem is left
// untouched.
func (g *Generator) Generate(req Request) (*Result, error) {
	start := time.Now()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, Usagef("component name must not be empty")
	}
	if req.OutputDir == "" {
		return nil, Usagef("output directory must not be empty")
	}

	spec, err := g.registry.Lookup(req.Framework)
	if err != nil {
		return nil, err
	}

	filename := spec.Filename(name)
	// A name made entirely of separators produces a bare extension; reject it
	// along with anything that would resolve outside the target directory.
	if filename == spec.Extension || !filepath.IsLocal(filename) || strings.ContainsAny(filename, `/\`) {
		return nil, Usagef("component name %q does not produce a valid filename", req.Name)
	}

	content, err := spec.Render(name)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(req.OutputDir, filename)
	res := &Result{
		Framework: spec.ID,
		Filename:  filename,
		Path:      path,
		Bytes:     len(content),
		DryRun:    req.DryRun,
		Overwrote: fileExists(path),
	}

	if req.DryRun {
		res.Duration = time.Since(start)
		return res, nil
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, &FilesystemError{Op: "creating directory", Path: req.OutputDir, Err: err}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, &FilesystemError{Op: "writing file", Path: path, Err: err}
	}

	res.Duration = time.Since(start)
	return res, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
