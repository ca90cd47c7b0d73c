package executor

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/codemate-labs/codemate/pkg/config"
	"github.com/codemate-labs/codemate/pkg/framework"
	"github.com/codemate-labs/codemate/pkg/output"
	"github.com/codemate-labs/codemate/pkg/state"
)

// Runtime wires together everything behind one CLI invocation: the merged
// configuration, the framework registry, output formatting, generation
// history, and the executor. Commands build a Runtime after flag parsing
// and pull the pieces they need from it.
type Runtime struct {
	loader    *config.Loader
	loaded    *config.Loaded
	registry  *framework.Registry
	outputMgr *output.Manager
	templates *output.TemplateLibrary
	history   *state.History
	executor  *Executor
}

// RuntimeConfig holds the invocation-level inputs a Runtime is built from.
type RuntimeConfig struct {
	// CLIName is the binary name, used for config and state paths and the
	// environment variable prefix. Defaults to "codemate".
	CLIName string

	// Version is the running binary's version, checked against a project
	// manifest's requires constraint.
	Version string

	// WorkDir is where project manifest discovery starts. Empty means the
	// process working directory.
	WorkDir string

	// Verbose forces verbose output on top of whatever the config sources
	// resolved, for the --verbose flag.
	Verbose bool

	Out    io.Writer
	ErrOut io.Writer
}

// NewRuntime loads configuration and assembles the subsystems. Configuration
// errors (an invalid manifest, an unsatisfied requires constraint) fail the
// invocation here, before any command logic runs. An unusable history file
// does not: generation still works, it just goes unrecorded.
func NewRuntime(cfg *RuntimeConfig) (*Runtime, error) {
	if cfg == nil {
		cfg = &RuntimeConfig{}
	}

	cliName := cfg.CLIName
	if cliName == "" {
		cliName = "codemate"
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := cfg.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	loader := config.NewLoader(cliName, version)
	loader.WorkDir = cfg.WorkDir

	loaded, err := loader.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		loaded.Final.Verbose = true
		loaded.Sources["verbose"] = "flag"
	}

	registry := framework.NewRegistry()
	outputMgr := output.NewManager()
	templates := output.GenerationTemplates()

	history, err := state.NewHistoryAt(historyPath(cliName, loader), 0)
	if err != nil {
		pterm.Warning.WithWriter(errOut).Printfln("history unavailable: %v", err)
		history = nil
	}

	exec, err := NewExecutor(&ExecutorConfig{
		Registry:      registry,
		Settings:      &loaded.Final,
		History:       history,
		OutputManager: outputMgr,
		Templates:     templates,
		Out:           out,
		ErrOut:        errOut,
	})
	if err != nil {
		return nil, err
	}

	return &Runtime{
		loader:    loader,
		loaded:    loaded,
		registry:  registry,
		outputMgr: outputMgr,
		templates: templates,
		history:   history,
		executor:  exec,
	}, nil
}

// historyPath returns where the generation history lives. The
// CODEMATE_HISTORY environment variable overrides the XDG state location,
// the same escape hatch CODEMATE_CONFIG provides for the user config file.
func historyPath(cliName string, loader *config.Loader) string {
	envName := strings.ToUpper(strings.ReplaceAll(cliName, "-", "_")) + "_HISTORY"
	if custom := os.Getenv(envName); custom != "" {
		return custom
	}
	return filepath.Join(loader.StateDir(), "history.json")
}

// GetExecutor returns the generation executor.
func (rt *Runtime) GetExecutor() *Executor {
	return rt.executor
}

// GetRegistry returns the framework registry.
func (rt *Runtime) GetRegistry() *framework.Registry {
	return rt.registry
}

// GetSettings returns the merged settings this invocation runs with.
func (rt *Runtime) GetSettings() *config.Settings {
	return &rt.loaded.Final
}

// GetLoaded returns the merged configuration with per-value provenance.
func (rt *Runtime) GetLoaded() *config.Loaded {
	return rt.loaded
}

// GetLoader returns the config loader, for commands that need paths.
func (rt *Runtime) GetLoader() *config.Loader {
	return rt.loader
}

// GetHistory returns the generation history, or nil when the history file
// could not be opened.
func (rt *Runtime) GetHistory() *state.History {
	return rt.history
}

// GetOutputManager returns the output format manager.
func (rt *Runtime) GetOutputManager() *output.Manager {
	return rt.outputMgr
}

// GetTemplates returns the message template library with any configured
// overrides applied.
func (rt *Runtime) GetTemplates() *output.TemplateLibrary {
	return rt.templates
}

// LastFramework returns the framework of the most recent recorded
// generation, or the empty string when there is none.
func (rt *Runtime) LastFramework() string {
	if rt.history == nil {
		return ""
	}
	return rt.history.LastFramework()
}
