package executor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codemate-labs/codemate/pkg/config"
)

// isolateEnv redirects every path the runtime touches into a temp directory
// so tests never read or write the invoking user's real config and state.
func isolateEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("CODEMATE_CONFIG", filepath.Join(tmp, "config.yaml"))
	t.Setenv("CODEMATE_HISTORY", filepath.Join(tmp, "history.json"))
	t.Setenv("CODEMATE_OUTPUT_DIR", "")
	t.Setenv("CODEMATE_VERBOSE", "")
	t.Setenv("CODEMATE_FORMAT", "")
	return tmp
}

func newTestRuntime(t *testing.T, cfg *RuntimeConfig) (*Runtime, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	if cfg == nil {
		cfg = &RuntimeConfig{}
	}
	cfg.Out = out
	cfg.ErrOut = errOut

	rt, err := NewRuntime(cfg)
	if err != nil {
		t.Fatalf("NewRuntime() error = %v", err)
	}
	return rt, out, errOut
}

func TestNewRuntimeDefaults(t *testing.T) {
	tmp := isolateEnv(t)
	rt, _, _ := newTestRuntime(t, &RuntimeConfig{WorkDir: tmp})

	settings := rt.GetSettings()
	if settings.OutputRoot != config.DefaultOutputRoot {
		t.Errorf("OutputRoot = %q, want %q", settings.OutputRoot, config.DefaultOutputRoot)
	}
	if settings.Format != "text" {
		t.Errorf("Format = %q, want %q", settings.Format, "text")
	}
	if settings.Verbose {
		t.Error("Verbose should default to false")
	}

	if rt.GetExecutor() == nil {
		t.Error("GetExecutor() = nil")
	}
	if rt.GetRegistry() == nil {
		t.Error("GetRegistry() = nil")
	}
	if rt.GetHistory() == nil {
		t.Error("GetHistory() = nil, want history at CODEMATE_HISTORY path")
	}
	if rt.LastFramework() != "" {
		t.Errorf("LastFramework() = %q, want empty", rt.LastFramework())
	}
}

func TestNewRuntimeNilConfig(t *testing.T) {
	isolateEnv(t)

	rt, err := NewRuntime(nil)
	if err != nil {
		t.Fatalf("NewRuntime(nil) error = %v", err)
	}
	if rt.GetSettings().Format != "text" {
		t.Errorf("Format = %q, want %q", rt.GetSettings().Format, "text")
	}
}

func TestNewRuntimeManifestApplied(t *testing.T) {
	tmp := isolateEnv(t)
	manifest := "output_root: app/widgets\nframework_dirs:\n  react: app/react\n"
	if err := os.WriteFile(filepath.Join(tmp, "codemate.yaml"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	rt, _, _ := newTestRuntime(t, &RuntimeConfig{WorkDir: tmp})

	settings := rt.GetSettings()
	if settings.OutputRoot != "app/widgets" {
		t.Errorf("OutputRoot = %q, want %q", settings.OutputRoot, "app/widgets")
	}
	if settings.FrameworkDirs["react"] != "app/react" {
		t.Errorf("FrameworkDirs[react] = %q, want %q", settings.FrameworkDirs["react"], "app/react")
	}
	if got := rt.GetLoaded().Sources["output_root"]; got != "manifest" {
		t.Errorf("Sources[output_root] = %q, want %q", got, "manifest")
	}
}

func TestNewRuntimeManifestRequiresRejected(t *testing.T) {
	tmp := isolateEnv(t)
	manifest := "requires: \">= 2.0.0\"\n"
	if err := os.WriteFile(filepath.Join(tmp, "codemate.yaml"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewRuntime(&RuntimeConfig{WorkDir: tmp, Version: "1.0.0", Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("NewRuntime() expected requires constraint error")
	}
	if !strings.Contains(err.Error(), "does not satisfy") {
		t.Errorf("error = %q, want requires violation", err)
	}
}

func TestNewRuntimeInvalidManifest(t *testing.T) {
	tmp := isolateEnv(t)
	if err := os.WriteFile(filepath.Join(tmp, "codemate.yaml"), []byte("output_root: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewRuntime(&RuntimeConfig{WorkDir: tmp, Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("NewRuntime() expected invalid manifest error")
	}
	if !strings.Contains(err.Error(), "invalid manifest") {
		t.Errorf("error = %q, want invalid manifest", err)
	}
}

func TestNewRuntimeVerboseFlag(t *testing.T) {
	tmp := isolateEnv(t)
	rt, _, _ := newTestRuntime(t, &RuntimeConfig{WorkDir: tmp, Verbose: true})

	if !rt.GetSettings().Verbose {
		t.Error("Verbose flag not applied")
	}
	if got := rt.GetLoaded().Sources["verbose"]; got != "flag" {
		t.Errorf("Sources[verbose] = %q, want %q", got, "flag")
	}
}

func TestNewRuntimeEnvOutputDir(t *testing.T) {
	tmp := isolateEnv(t)
	custom := filepath.Join(tmp, "generated")
	t.Setenv("CODEMATE_OUTPUT_DIR", custom)

	rt, _, _ := newTestRuntime(t, &RuntimeConfig{WorkDir: tmp})

	if got := rt.GetSettings().OutputRoot; got != custom {
		t.Errorf("OutputRoot = %q, want %q", got, custom)
	}
	if got := rt.GetLoaded().Sources["output_root"]; got != "env" {
		t.Errorf("Sources[output_root] = %q, want %q", got, "env")
	}
}

func TestNewRuntimeBrokenHistoryWarns(t *testing.T) {
	tmp := isolateEnv(t)
	historyFile := filepath.Join(tmp, "history.json")
	if err := os.WriteFile(historyFile, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	rt, _, errOut := newTestRuntime(t, &RuntimeConfig{WorkDir: tmp})

	if rt.GetHistory() != nil {
		t.Error("GetHistory() should be nil for an unreadable history file")
	}
	if !strings.Contains(errOut.String(), "history unavailable") {
		t.Errorf("errOut = %q, want history warning", errOut.String())
	}

	// Generation still works, just unrecorded.
	if _, err := rt.GetExecutor().Generate(&GenerateRequest{
		Framework: "react",
		Name:      "UserCard",
		OutputDir: filepath.Join(tmp, "out"),
	}); err != nil {
		t.Errorf("Generate() error = %v", err)
	}
}

func TestRuntimeLastFramework(t *testing.T) {
	tmp := isolateEnv(t)
	rt, _, _ := newTestRuntime(t, &RuntimeConfig{WorkDir: tmp})

	if _, err := rt.GetExecutor().Generate(&GenerateRequest{
		Framework: "angular",
		Name:      "NavBar",
		OutputDir: filepath.Join(tmp, "out"),
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := rt.LastFramework(); got != "angular" {
		t.Errorf("LastFramework() = %q, want %q", got, "angular")
	}

	// A fresh runtime reads the same history file.
	rt2, _, _ := newTestRuntime(t, &RuntimeConfig{WorkDir: tmp})
	if got := rt2.LastFramework(); got != "angular" {
		t.Errorf("reloaded LastFramework() = %q, want %q", got, "angular")
	}
}

func TestHistoryPathEnvOverride(t *testing.T) {
	loader := config.NewLoader("codemate", "dev")

	custom := filepath.Join(t.TempDir(), "custom-history.json")
	t.Setenv("CODEMATE_HISTORY", custom)
	if got := historyPath("codemate", loader); got != custom {
		t.Errorf("historyPath() = %q, want %q", got, custom)
	}

	t.Setenv("CODEMATE_HISTORY", "")
	want := filepath.Join("codemate", "history.json")
	if got := historyPath("codemate", loader); !strings.HasSuffix(got, want) {
		t.Errorf("historyPath() = %q, want suffix %q", got, want)
	}
}
