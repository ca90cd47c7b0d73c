package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestLoader isolates a loader from the host: the user config points into
// a temp dir and manifest discovery starts in another.
func newTestLoader(t *testing.T, version string) *Loader {
	t.Helper()
	t.Setenv("CODEMATE_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("CODEMATE_OUTPUT_DIR", "")
	t.Setenv("CODEMATE_VERBOSE", "")
	t.Setenv("CODEMATE_FORMAT", "")

	l := NewLoader("codemate", version)
	l.WorkDir = t.TempDir()
	return l
}

func TestLoadConfigDefaults(t *testing.T) {
	l := newTestLoader(t, "1.0.0")

	loaded, err := l.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if loaded.Final.OutputRoot != DefaultOutputRoot {
		t.Errorf("OutputRoot = %q, want %q", loaded.Final.OutputRoot, DefaultOutputRoot)
	}
	if loaded.Final.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", loaded.Final.Format, DefaultFormat)
	}
	if loaded.Final.Verbose {
		t.Error("Verbose = true, want false")
	}
	for _, key := range []string{"output_root", "format", "verbose"} {
		if src := loaded.Sources[key]; src != "default" {
			t.Errorf("Sources[%q] = %q, want %q", key, src, "default")
		}
	}
	if loaded.Manifest != nil {
		t.Errorf("Manifest = %+v, want nil", loaded.Manifest)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	l := newTestLoader(t, "1.0.0")
	t.Setenv("CODEMATE_OUTPUT_DIR", filepath.Join("generated", "components"))
	t.Setenv("CODEMATE_VERBOSE", "true")
	t.Setenv("CODEMATE_FORMAT", "json")

	loaded, err := l.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if loaded.Final.OutputRoot != filepath.Join("generated", "components") {
		t.Errorf("OutputRoot = %q", loaded.Final.OutputRoot)
	}
	if !loaded.Final.Verbose {
		t.Error("Verbose = false, want true")
	}
	if loaded.Final.Format != "json" {
		t.Errorf("Format = %q, want %q", loaded.Final.Format, "json")
	}
	if src := loaded.Sources["output_root"]; src != "env" {
		t.Errorf("Sources[output_root] = %q, want %q", src, "env")
	}
}

func TestLoadConfigUserConfig(t *testing.T) {
	l := newTestLoader(t, "1.0.0")

	verbose := true
	if err := l.SaveUserConfig(&UserConfig{
		OutputRoot: "lib/widgets",
		Verbose:    &verbose,
		FrameworkDirs: map[string]string{
			"react": "lib/widgets/jsx",
		},
	}); err != nil {
		t.Fatalf("SaveUserConfig returned error: %v", err)
	}

	loaded, err := l.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if loaded.Final.OutputRoot != "lib/widgets" {
		t.Errorf("OutputRoot = %q, want %q", loaded.Final.OutputRoot, "lib/widgets")
	}
	if !loaded.Final.Verbose {
		t.Error("Verbose = false, want true")
	}
	if dir := loaded.Final.FrameworkDirs["react"]; dir != "lib/widgets/jsx" {
		t.Errorf("FrameworkDirs[react] = %q", dir)
	}
	if src := loaded.Sources["output_root"]; src != "user config" {
		t.Errorf("Sources[output_root] = %q, want %q", src, "user config")
	}
}

func TestLoadConfigEnvBeatsUserConfig(t *testing.T) {
	l := newTestLoader(t, "1.0.0")

	if err := l.SaveUserConfig(&UserConfig{OutputRoot: "from-user"}); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CODEMATE_OUTPUT_DIR", "from-env")

	loaded, err := l.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if loaded.Final.OutputRoot != "from-env" {
		t.Errorf("OutputRoot = %q, want %q", loaded.Final.OutputRoot, "from-env")
	}
}

func TestLoadConfigManifestDiscovery(t *testing.T) {
	l := newTestLoader(t, "1.0.0")

	root := l.WorkDir
	manifest := filepath.Join(root, ManifestName)
	if err := os.WriteFile(manifest, []byte("output_root: app/components\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Discovery walks up from a nested working directory.
	nested := filepath.Join(root, "src", "pages")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	l.WorkDir = nested

	loaded, err := l.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if loaded.ManifestPath != manifest {
		t.Errorf("ManifestPath = %q, want %q", loaded.ManifestPath, manifest)
	}
	if loaded.Final.OutputRoot != "app/components" {
		t.Errorf("OutputRoot = %q, want %q", loaded.Final.OutputRoot, "app/components")
	}
	if src := loaded.Sources["output_root"]; src != "manifest" {
		t.Errorf("Sources[output_root] = %q, want %q", src, "manifest")
	}
}

func TestLoadConfigManifestBeatsUserConfig(t *testing.T) {
	l := newTestLoader(t, "1.0.0")

	if err := l.SaveUserConfig(&UserConfig{OutputRoot: "from-user"}); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(l.WorkDir, ManifestName)
	if err := os.WriteFile(manifest, []byte("output_root: from-manifest\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := l.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if loaded.Final.OutputRoot != "from-manifest" {
		t.Errorf("OutputRoot = %q, want %q", loaded.Final.OutputRoot, "from-manifest")
	}
}

func TestLoadConfigInvalidManifest(t *testing.T) {
	l := newTestLoader(t, "1.0.0")

	manifest := filepath.Join(l.WorkDir, ManifestName)
	if err := os.WriteFile(manifest, []byte("bogus_key: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := l.LoadConfig()
	if err == nil {
		t.Fatal("LoadConfig succeeded with an invalid manifest")
	}
	if !strings.Contains(err.Error(), manifest) {
		t.Errorf("error %q does not name the manifest path", err)
	}
}

func TestLoadConfigRequires(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		requires string
		wantErr  bool
	}{
		{name: "satisfied", version: "1.2.3", requires: ">= 1.0.0", wantErr: false},
		{name: "unsatisfied", version: "0.9.0", requires: ">= 1.0.0", wantErr: true},
		{name: "dev build skips enforcement", version: "dev", requires: ">= 1.0.0", wantErr: false},
		{name: "invalid constraint", version: "1.2.3", requires: "not-a-range", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoader(t, tt.version)
			manifest := filepath.Join(l.WorkDir, ManifestName)
			if err := os.WriteFile(manifest, []byte("requires: \""+tt.requires+"\"\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := l.LoadConfig()
			if tt.wantErr && err == nil {
				t.Error("LoadConfig succeeded, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("LoadConfig returned error: %v", err)
			}
		})
	}
}

func TestSaveUserConfigRoundTrip(t *testing.T) {
	l := newTestLoader(t, "1.0.0")

	in := &UserConfig{
		OutputRoot: "out",
		Format:     "yaml",
		Messages:   map[string]string{"generated": "done: {filename}"},
	}
	if err := l.SaveUserConfig(in); err != nil {
		t.Fatalf("SaveUserConfig returned error: %v", err)
	}

	out, _, err := l.loadUserConfig()
	if err != nil {
		t.Fatalf("loadUserConfig returned error: %v", err)
	}
	if out.OutputRoot != in.OutputRoot || out.Format != in.Format {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
	if out.Messages["generated"] != in.Messages["generated"] {
		t.Errorf("Messages[generated] = %q", out.Messages["generated"])
	}
}

func TestUserConfigPathOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("CODEMATE_CONFIG", custom)

	l := NewLoader("codemate", "1.0.0")
	if got := l.UserConfigPath(); got != custom {
		t.Errorf("UserConfigPath() = %q, want %q", got, custom)
	}
}
