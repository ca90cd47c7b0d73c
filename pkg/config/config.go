// Package config handles loading, merging, and validation of codemate
// settings from built-in defaults, the user config file, the project
// manifest, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultOutputRoot is the base directory generated files land under
	// when nothing else names one. Each framework gets a subdirectory.
	DefaultOutputRoot = "src/components"

	// DefaultFormat is the result format commands print without -o.
	DefaultFormat = "text"

	// ManifestName is the per-project configuration file discovered by
	// walking up from the working directory.
	ManifestName = "codemate.yaml"
)

// Settings is the fully merged configuration a command runs with. Flags and
// positional arguments are applied on top by the command layer.
type Settings struct {
	OutputRoot    string
	Verbose       bool
	Format        string
	FrameworkDirs map[string]string
	Messages      map[string]string
}

// UserConfig mirrors the optional config file in the XDG config directory.
type UserConfig struct {
	OutputRoot    string            `yaml:"output_root,omitempty"`
	Verbose       *bool             `yaml:"verbose,omitempty"`
	Format        string            `yaml:"format,omitempty"`
	FrameworkDirs map[string]string `yaml:"framework_dirs,omitempty"`
	Messages      map[string]string `yaml:"messages,omitempty"`
}

// Manifest mirrors a project's codemate.yaml. Requires constrains which
// codemate versions may generate into the project.
type Manifest struct {
	Requires      string            `yaml:"requires,omitempty"`
	OutputRoot    string            `yaml:"output_root,omitempty"`
	FrameworkDirs map[string]string `yaml:"framework_dirs,omitempty"`
	Messages      map[string]string `yaml:"messages,omitempty"`
}

// Loaded carries the merged settings plus enough provenance for the config
// command to explain where each value came from.
type Loaded struct {
	Final        Settings
	User         *UserConfig
	Manifest     *Manifest
	UserPath     string
	ManifestPath string
	Sources      map[string]string
}

// Loader handles loading settings from all sources.
type Loader struct {
	cliName   string
	version   string
	envPrefix string

	// WorkDir is where manifest discovery starts. Defaults to the process
	// working directory; tests point it at a temp tree.
	WorkDir string
}

// NewLoader creates a loader for the named CLI. version is the running
// binary's version, used to enforce a manifest's requires constraint.
func NewLoader(cliName, version string) *Loader {
	return &Loader{
		cliName:   cliName,
		version:   version,
		envPrefix: strings.ToUpper(strings.ReplaceAll(cliName, "-", "_")),
	}
}

// LoadConfig loads and merges settings from all sources.
// Priority: ENV > project manifest > user config > built-in defaults.
func (l *Loader) LoadConfig() (*Loaded, error) {
	loaded := &Loaded{
		Final: Settings{
			OutputRoot:    DefaultOutputRoot,
			Format:        DefaultFormat,
			FrameworkDirs: map[string]string{},
			Messages:      map[string]string{},
		},
		Sources: map[string]string{
			"output_root": "default",
			"format":      "default",
			"verbose":     "default",
		},
	}

	user, userPath, err := l.loadUserConfig()
	if err != nil {
		// The user config is optional; a broken one must not wedge every
		// command, so warn and continue with the remaining sources.
		fmt.Fprintf(os.Stderr, "Warning: failed to load user config: %v\n", err)
		user = &UserConfig{}
	}
	loaded.User = user
	loaded.UserPath = userPath
	l.applyUserConfig(loaded, user)

	manifest, manifestPath, err := l.loadManifest()
	if err != nil {
		return nil, err
	}
	loaded.Manifest = manifest
	loaded.ManifestPath = manifestPath
	if manifest != nil {
		if err := l.checkRequires(manifest, manifestPath); err != nil {
			return nil, err
		}
		l.applyManifest(loaded, manifest)
	}

	l.applyEnvironment(loaded)

	return loaded, nil
}

func (l *Loader) applyUserConfig(loaded *Loaded, user *UserConfig) {
	if user.OutputRoot != "" {
		loaded.Final.OutputRoot = user.OutputRoot
		loaded.Sources["output_root"] = "user config"
	}
	if user.Format != "" {
		loaded.Final.Format = user.Format
		loaded.Sources["format"] = "user config"
	}
	if user.Verbose != nil {
		loaded.Final.Verbose = *user.Verbose
		loaded.Sources["verbose"] = "user config"
	}
	for id, dir := range user.FrameworkDirs {
		loaded.Final.FrameworkDirs[id] = dir
	}
	for name, tmpl := range user.Messages {
		loaded.Final.Messages[name] = tmpl
	}
}

func (l *Loader) applyManifest(loaded *Loaded, m *Manifest) {
	if m.OutputRoot != "" {
		loaded.Final.OutputRoot = m.OutputRoot
		loaded.Sources["output_root"] = "manifest"
	}
	for id, dir := range m.FrameworkDirs {
		loaded.Final.FrameworkDirs[id] = dir
	}
	for name, tmpl := range m.Messages {
		loaded.Final.Messages[name] = tmpl
	}
}

// applyEnvironment applies CODEMATE_OUTPUT_DIR and CODEMATE_VERBOSE.
func (l *Loader) applyEnvironment(loaded *Loaded) {
	v := viper.New()
	v.SetEnvPrefix(l.envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if dir := strings.TrimSpace(v.GetString("output_dir")); dir != "" {
		loaded.Final.OutputRoot = dir
		loaded.Sources["output_root"] = "env"
	}
	if v.GetBool("verbose") {
		loaded.Final.Verbose = true
		loaded.Sources["verbose"] = "env"
	}
	if format := strings.TrimSpace(v.GetString("format")); format != "" {
		loaded.Final.Format = format
		loaded.Sources["format"] = "env"
	}
}

// loadUserConfig loads user-specific configuration from XDG-compliant paths.
func (l *Loader) loadUserConfig() (*UserConfig, string, error) {
	configPath := l.UserConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// User config is optional.
		return &UserConfig{}, configPath, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, configPath, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, configPath, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, configPath, nil
}

// loadManifest walks up from WorkDir looking for a codemate.yaml, validating
// it against the manifest schema before use. A missing manifest is not an
// error; a malformed one is.
func (l *Loader) loadManifest() (*Manifest, string, error) {
	dir := l.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	path, ok := findManifest(dir)
	if !ok {
		return nil, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	if err := ValidateManifest(data); err != nil {
		return nil, path, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, path, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &m, path, nil
}

// DiscoverManifest walks up from dir looking for the project manifest and
// returns its path, or false when no ancestor carries one.
func DiscoverManifest(dir string) (string, bool) {
	return findManifest(dir)
}

// findManifest searches dir and its ancestors for the manifest file.
func findManifest(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// UserConfigPath returns the XDG-compliant user config file path. The
// CODEMATE_CONFIG environment variable overrides it.
func (l *Loader) UserConfigPath() string {
	if customPath := os.Getenv(l.envPrefix + "_CONFIG"); customPath != "" {
		return customPath
	}
	return filepath.Join(xdg.ConfigHome, l.cliName, "config.yaml")
}

// CacheDir returns the XDG-compliant cache directory.
func (l *Loader) CacheDir() string {
	return filepath.Join(xdg.CacheHome, l.cliName)
}

// DataDir returns the XDG-compliant data directory.
func (l *Loader) DataDir() string {
	return filepath.Join(xdg.DataHome, l.cliName)
}

// StateDir returns the XDG-compliant state directory.
func (l *Loader) StateDir() string {
	return filepath.Join(xdg.StateHome, l.cliName)
}

// EnsureDirs creates the XDG directories the CLI writes to.
func (l *Loader) EnsureDirs() error {
	dirs := []string{
		filepath.Dir(l.UserConfigPath()),
		l.CacheDir(),
		l.DataDir(),
		l.StateDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// SaveUserConfig saves user configuration to the XDG config directory.
func (l *Loader) SaveUserConfig(config *UserConfig) error {
	configPath := l.UserConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
