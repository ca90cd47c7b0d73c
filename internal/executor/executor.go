// Package executor runs the generation pipeline behind the CLI commands.
//
// A command hands the executor a GenerateRequest; the executor resolves the
// target directory from settings, writes the scaffold, records the result in
// history, and prints the user-facing message. Keeping the pipeline out of
// the command layer lets the one-shot generate command and the interactive
// session share it unchanged.
package executor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/codemate-labs/codemate/pkg/config"
	"github.com/codemate-labs/codemate/pkg/framework"
	"github.com/codemate-labs/codemate/pkg/output"
	"github.com/codemate-labs/codemate/pkg/scaffold"
	"github.com/codemate-labs/codemate/pkg/state"
)

// GenerateRequest describes one generation as the command layer hands it
// over. OutputDir is the explicit target from a positional argument or
// prompt; when empty the executor resolves the directory from settings.
// Extra carries additional template data, such as flag state, that user
// message templates may reference; it never overrides the built-in keys.
type GenerateRequest struct {
	Framework string
	Name      string
	OutputDir string
	DryRun    bool
	Extra     map[string]interface{}
}

// Executor wires the registry, generator, history, and output subsystems
// into the generation pipeline.
type Executor struct {
	registry  *framework.Registry
	generator *scaffold.Generator
	settings  *config.Settings
	history   *state.History
	outputMgr *output.Manager
	templates *output.TemplateLibrary
	out       io.Writer
	errOut    io.Writer
}

// ExecutorConfig holds the subsystems an Executor runs against. Settings is
// required; everything else has a usable default. History may be nil, in
// which case generations are not recorded.
type ExecutorConfig struct {
	Registry      *framework.Registry
	Settings      *config.Settings
	History       *state.History
	OutputManager *output.Manager
	Templates     *output.TemplateLibrary
	Out           io.Writer
	ErrOut        io.Writer
}

// NewExecutor creates an executor. Message template overrides from the
// settings are applied to the template library here, so every caller sees
// the same rendered output.
func NewExecutor(cfg *ExecutorConfig) (*Executor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("executor config is required")
	}
	if cfg.Settings == nil {
		return nil, fmt.Errorf("executor requires settings")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = framework.NewRegistry()
	}

	outputMgr := cfg.OutputManager
	if outputMgr == nil {
		outputMgr = output.NewManager()
	}

	templates := cfg.Templates
	if templates == nil {
		templates = output.GenerationTemplates()
	}
	for name, body := range cfg.Settings.Messages {
		templates.Override(name, body)
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := cfg.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	return &Executor{
		registry:  registry,
		generator: scaffold.NewGenerator(registry),
		settings:  cfg.Settings,
		history:   cfg.History,
		outputMgr: outputMgr,
		templates: templates,
		out:       out,
		errOut:    errOut,
	}, nil
}

// Generate runs the full pipeline for one component and returns the scaffold
// result. Dry runs skip the history record along with the write.
func (e *Executor) Generate(req *GenerateRequest) (*scaffold.Result, error) {
	if req == nil {
		return nil, fmt.Errorf("generate request is required")
	}

	spec, err := e.registry.Lookup(req.Framework)
	if err != nil {
		return nil, err
	}

	dir := e.resolveOutputDir(spec, req.OutputDir)
	e.verbosef("target directory: %s", dir)

	result, err := e.generator.Generate(scaffold.Request{
		Framework: req.Framework,
		Name:      req.Name,
		OutputDir: dir,
		DryRun:    req.DryRun,
	})
	if err != nil {
		return nil, err
	}

	e.verbosef("wrote %d bytes in %s", result.Bytes, result.Duration)
	e.record(req.Name, result)
	e.report(req, result)

	return result, nil
}

// SessionGenerate adapts the pipeline to the callback shape the interactive
// session invokes per generation.
func (e *Executor) SessionGenerate(frameworkID, name string) error {
	_, err := e.Generate(&GenerateRequest{Framework: frameworkID, Name: name})
	return err
}

// SessionSummary renders the end-of-session message for count generations.
func (e *Executor) SessionSummary(count int) string {
	message, err := e.templates.Render(output.TemplateSessionDone, map[string]interface{}{
		"count": count,
	})
	if err != nil {
		e.warnf("message template %q: %v", output.TemplateSessionDone, err)
		return fmt.Sprintf("Generated %d components this session", count)
	}
	return message
}

// resolveOutputDir picks the directory a generation writes into. An explicit
// directory wins; otherwise a per-framework override from settings; otherwise
// the framework subdirectory of the output root.
func (e *Executor) resolveOutputDir(spec *framework.Spec, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir, ok := e.settings.FrameworkDirs[spec.ID]; ok && dir != "" {
		return dir
	}
	return scaffold.DirFor(e.settings.OutputRoot, spec)
}

// record appends the generation to history and persists it. History failures
// must not fail a generation that already wrote its file, so they only warn.
func (e *Executor) record(name string, result *scaffold.Result) {
	if e.history == nil || result.DryRun {
		return
	}

	entry := &state.HistoryEntry{
		Framework:  result.Framework,
		Name:       strings.TrimSpace(name),
		Filename:   result.Filename,
		Path:       result.Path,
		Bytes:      result.Bytes,
		Overwrote:  result.Overwrote,
		DurationMS: result.Duration.Milliseconds(),
	}
	if err := e.history.RecordGeneration(entry); err != nil {
		e.warnf("failed to record history: %v", err)
	}
}

// report renders and prints the result message for a generation.
func (e *Executor) report(req *GenerateRequest, result *scaffold.Result) {
	name := output.TemplateGenerated
	switch {
	case result.DryRun:
		name = output.TemplateDryRun
	case result.Overwrote:
		name = output.TemplateOverwritten
	}

	data := map[string]interface{}{
		"filename":  result.Filename,
		"framework": result.Framework,
		"path":      result.Path,
		"bytes":     result.Bytes,
		"overwrote": result.Overwrote,
		"dry_run":   result.DryRun,
	}
	for key, value := range req.Extra {
		if _, taken := data[key]; !taken {
			data[key] = value
		}
	}

	message, err := e.templates.Render(name, data)
	if err != nil {
		// A broken override from user config should not eat the result.
		e.warnf("message template %q: %v", name, err)
		message = fmt.Sprintf("Generated %s at %s", result.Filename, result.Path)
	}

	fmt.Fprintln(e.out, message)
}

// FrameworkRow is one row of the list command's structured output.
type FrameworkRow struct {
	ID          string `json:"id" yaml:"id"`
	Language    string `json:"language" yaml:"language"`
	Extension   string `json:"extension" yaml:"extension"`
	Description string `json:"description" yaml:"description"`
}

// FrameworkRows returns the registry contents in registry order, shaped for
// structured output.
func (e *Executor) FrameworkRows() []FrameworkRow {
	specs := e.registry.Specs()
	rows := make([]FrameworkRow, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, FrameworkRow{
			ID:          spec.ID,
			Language:    spec.Language,
			Extension:   spec.Extension,
			Description: spec.Description,
		})
	}
	return rows
}

// List prints the supported frameworks. The text format prints exactly the
// framework ids, one per line, in registry order; scripts depend on that
// shape. Structured formats carry the full framework details.
func (e *Executor) List(format string) error {
	format = e.outputMgr.SelectFormat(format, e.settings.Format)

	if format == "text" {
		for _, id := range e.registry.IDs() {
			fmt.Fprintln(e.out, id)
		}
		return nil
	}

	return e.outputMgr.Format(e.out, e.FrameworkRows(), format)
}

// verbosef prints a diagnostic line to stderr when verbose mode is on.
func (e *Executor) verbosef(format string, args ...interface{}) {
	if !e.settings.Verbose {
		return
	}
	fmt.Fprintf(e.errOut, format+"\n", args...)
}

func (e *Executor) warnf(format string, args ...interface{}) {
	pterm.Warning.WithWriter(e.errOut).Printfln(format, args...)
}
