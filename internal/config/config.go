// internal/config/config.go
//
// Runtime configuration for the autoloader. The base directory is the
// directory candidates are resolved against; optional settings live in
// <base>/.autoloader/config.yaml.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// StateDir is the directory holding the settings file and logs.
	StateDir = ".autoloader"

	defaultLogLevel    = "warn"
	defaultLogFormat   = "console"
	defaultWaitTimeout = 5 * time.Minute
	defaultWaitRescan  = 2 * time.Second
)

const defaultSettingsYAML = `# autoloader settings
version: 1

log:
  # debug, info, warn or error. warn keeps a successful load silent.
  level: warn
  # console or json
  format: console
  # also append to .autoloader/logs/autoloader.log
  file: false

wait:
  # how long "autoloader wait" blocks for the manifest to appear, 0 for no limit
  timeout: 5m
  # periodic re-check in case filesystem events are missed
  rescan: 2s
`

// LogSettings controls logger construction.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   bool   `yaml:"file"`
}

// WaitSettings controls the wait command.
type WaitSettings struct {
	Timeout time.Duration `yaml:"timeout"`
	Rescan  time.Duration `yaml:"rescan"`
}

// Settings models .autoloader/config.yaml.
type Settings struct {
	Version int          `yaml:"version"`
	Log     LogSettings  `yaml:"log"`
	Wait    WaitSettings `yaml:"wait"`
}

// Config holds the runtime configuration.
type Config struct {
	// BaseDir is the directory manifest candidates are relative to.
	BaseDir string

	// StatePath is BaseDir/.autoloader
	StatePath string

	Settings Settings
}

// New resolves baseDir and reads settings from it when present. Symlinks in
// baseDir are resolved so parent candidates walk the real directory tree.
func New(baseDir string) (*Config, error) {
	trimmed := strings.TrimSpace(baseDir)
	if trimmed == "" {
		return nil, fmt.Errorf("config: base dir is required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", trimmed, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	cfg := &Config{
		BaseDir:   abs,
		StatePath: filepath.Join(abs, StateDir),
		Settings:  DefaultSettings(),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultBaseDir returns the directory of the running executable with
// symlinks resolved.
func DefaultBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("config: locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Version: 1,
		Log: LogSettings{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Wait: WaitSettings{
			Timeout: defaultWaitTimeout,
			Rescan:  defaultWaitRescan,
		},
	}
}

// SettingsPath returns the on-disk location of the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.StatePath, "config.yaml")
}

// LogsDir returns the directory for the optional log file.
func (c *Config) LogsDir() string {
	return filepath.Join(c.StatePath, "logs")
}

// LogFilePath returns the log file path, or "" when file logging is off.
func (c *Config) LogFilePath() string {
	if !c.Settings.Log.File {
		return ""
	}
	return filepath.Join(c.LogsDir(), "autoloader.log")
}

// Init creates .autoloader/ with a commented default settings file.
// An existing settings file is left alone.
func Init(baseDir string) (string, error) {
	stateDir := filepath.Join(baseDir, StateDir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return "", fmt.Errorf("config: create %s: %w", stateDir, err)
	}
	path := filepath.Join(stateDir, "config.yaml")
	if err := ensureSettingsFile(path); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := DefaultSettings()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	c.Settings = parsed
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Wait.Rescan == 0 {
		s.Wait.Rescan = defaultWaitRescan
	}
}

func (s *Settings) normalize() {
	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))
	if s.Log.Level == "" {
		s.Log.Level = defaultLogLevel
	}
	s.Log.Format = strings.ToLower(strings.TrimSpace(s.Log.Format))
	if s.Log.Format == "" {
		s.Log.Format = defaultLogFormat
	}
}

// Validate reports the first invalid setting.
func (s Settings) Validate() error {
	if s.Version != 1 {
		return fmt.Errorf("unsupported settings version %d (expected 1)", s.Version)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn' or 'error'")
	}
	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	if s.Wait.Timeout < 0 {
		return fmt.Errorf("wait.timeout must not be negative")
	}
	if s.Wait.Rescan <= 0 {
		return fmt.Errorf("wait.rescan must be positive")
	}
	return nil
}

func ensureSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultSettingsYAML), 0644)
}
