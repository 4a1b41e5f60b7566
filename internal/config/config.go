// Package config handles cmdstub configuration: a TOML file layered
// under environment variables, layered under command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid marks configuration that cannot drive a run. It is fatal
// before any document is processed.
var ErrInvalid = errors.New("invalid configuration")

// Config is the effective cmdstub configuration.
type Config struct {
	// SourceDir is the directory holding documentation pages.
	SourceDir string `toml:"source_dir"`

	// TargetDir is the directory the stub tree is written to.
	TargetDir string `toml:"target_dir"`

	// LongNames and ShortNames select which alias styles the emitted
	// parameters use. Both may be enabled; at least one must be.
	LongNames  bool `toml:"long_names"`
	ShortNames bool `toml:"short_names"`

	// ForceOverwrite clears a non-empty target directory instead of
	// refusing to write.
	ForceOverwrite bool `toml:"force_overwrite"`

	// VocabFile is an optional YAML vocabulary extension file.
	VocabFile string `toml:"vocab_file"`

	// Jobs bounds the per-document worker pool. Zero means one worker
	// per CPU.
	Jobs int `toml:"jobs"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering: an ANSI color code ("0" to "255") or a hex color
	// ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered
	// markdown code blocks.
	CodeTheme string `toml:"code_theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SourceDir:  "source",
		TargetDir:  "target",
		LongNames:  true,
		ShortNames: true,
	}
}

// Load loads the configuration from the default location and applies
// environment overrides. A missing file yields the defaults.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path and applies
// environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers CMDSTUB_* environment variables over the file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("CMDSTUB_SOURCE_DIR"); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv("CMDSTUB_TARGET_DIR"); v != "" {
		c.TargetDir = v
	}
	if v := os.Getenv("CMDSTUB_VOCAB_FILE"); v != "" {
		c.VocabFile = v
	}
	if v, ok := boolEnv("CMDSTUB_LONG_NAMES"); ok {
		c.LongNames = v
	}
	if v, ok := boolEnv("CMDSTUB_SHORT_NAMES"); ok {
		c.ShortNames = v
	}
	if v, ok := boolEnv("CMDSTUB_FORCE_OVERWRITE"); ok {
		c.ForceOverwrite = v
	}
}

func boolEnv(name string) (value, ok bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(v) {
	case "true", "1":
		return true, true
	}
	return false, true
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if !c.LongNames && !c.ShortNames {
		return fmt.Errorf("%w: at least one of long_names and short_names must be enabled", ErrInvalid)
	}
	if c.SourceDir == "" {
		return fmt.Errorf("%w: source_dir must be set", ErrInvalid)
	}
	if c.TargetDir == "" {
		return fmt.Errorf("%w: target_dir must be set", ErrInvalid)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative", ErrInvalid)
	}
	return nil
}

// DefaultPath returns the default config file path. It prefers the
// XDG-style ~/.config/cmdstub/config.toml, then the OS config dir.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "cmdstub", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "cmdstub", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# cmdstub configuration

# Where to look for documentation pages.
# source_dir = "source"

# Where to write the generated stub tree.
# target_dir = "target"

# Which parameter alias styles to emit. At least one must be true.
# long_names = true
# short_names = true

# Clear a non-empty target directory instead of refusing to write.
# force_overwrite = false

# Optional YAML vocabulary extension file.
# vocab_file = ""

# Worker pool size; 0 means one worker per CPU.
# jobs = 0

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
