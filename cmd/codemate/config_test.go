package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir switches the working directory for the duration of the test. It
// mirrors testing.T.Chdir, which needs a Go 1.24 toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestConfigShowDefaults(t *testing.T) {
	cliEnv(t)
	t.Setenv("CODEMATE_OUTPUT_DIR", "")

	stdout, _, err := runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{
		"output_root: src/components (default)",
		"format: text (default)",
		"verbose: false (default)",
		"Manifest: none",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigShowEnvSource(t *testing.T) {
	tmp := cliEnv(t)

	stdout, _, err := runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	want := "output_root: " + filepath.Join(tmp, "components") + " (env)"
	if !strings.Contains(stdout, want) {
		t.Errorf("config show missing %q:\n%s", want, stdout)
	}
}

func TestConfigShowManifestSource(t *testing.T) {
	tmp := cliEnv(t)
	t.Setenv("CODEMATE_OUTPUT_DIR", "")

	project := filepath.Join(tmp, "project")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := "output_root: app/widgets\nframework_dirs:\n  react: app/react\n"
	if err := os.WriteFile(filepath.Join(project, "codemate.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, project)

	stdout, _, err := runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{
		"output_root: app/widgets (manifest)",
		"framework_dirs.react: app/react (manifest)",
		"Manifest: " + filepath.Join(project, "codemate.yaml"),
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigShowUserConfigSource(t *testing.T) {
	tmp := cliEnv(t)
	t.Setenv("CODEMATE_OUTPUT_DIR", "")

	userConfig := "format: json\nmessages:\n  generated: \"done {filename}\"\n"
	if err := os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte(userConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{
		"format: json (user config)",
		"messages.generated: done {filename} (user config)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigShowJSON(t *testing.T) {
	cliEnv(t)

	stdout, _, err := runCLI(t, "", "config", "show", "-o", "json")
	if err != nil {
		t.Fatalf("config show -o json failed: %v", err)
	}
	if !strings.Contains(stdout, `"key": "output_root"`) {
		t.Errorf("expected provenance rows as JSON, got:\n%s", stdout)
	}
}

func TestConfigValidateExplicitPath(t *testing.T) {
	tmp := cliEnv(t)
	path := filepath.Join(tmp, "codemate.yaml")
	manifest := "requires: \">= 0.1.0\"\noutput_root: app/widgets\n"
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "", "config", "validate", path)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(stdout, "is valid") {
		t.Errorf("expected validation success, got %q", stdout)
	}
}

func TestConfigValidateSchemaViolation(t *testing.T) {
	tmp := cliEnv(t)
	path := filepath.Join(tmp, "codemate.yaml")
	if err := os.WriteFile(path, []byte("output_root: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "", "config", "validate", path)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !strings.Contains(err.Error(), "invalid manifest") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigValidateBadRequires(t *testing.T) {
	tmp := cliEnv(t)
	path := filepath.Join(tmp, "codemate.yaml")
	if err := os.WriteFile(path, []byte("requires: \"not-a-constraint\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "", "config", "validate", path)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !strings.Contains(err.Error(), "invalid requires constraint") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigValidateDiscoversManifest(t *testing.T) {
	tmp := cliEnv(t)
	nested := filepath.Join(tmp, "project", "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmp, "project", "codemate.yaml")
	if err := os.WriteFile(path, []byte("output_root: app/widgets\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, nested)

	stdout, _, err := runCLI(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(stdout, path) {
		t.Errorf("expected discovered path %q in output, got %q", path, stdout)
	}
}

func TestConfigValidateNoManifest(t *testing.T) {
	cliEnv(t)
	chdir(t, t.TempDir())

	_, _, err := runCLI(t, "", "config", "validate")
	if err == nil {
		t.Fatal("expected an error without a manifest")
	}
	if !strings.Contains(err.Error(), "no codemate.yaml found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigPathCommand(t *testing.T) {
	tmp := cliEnv(t)

	stdout, _, err := runCLI(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if want := filepath.Join(tmp, "config.yaml") + "\n"; stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}
