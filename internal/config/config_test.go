package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSettings(t *testing.T, baseDir, body string) {
	t.Helper()
	stateDir := filepath.Join(baseDir, StateDir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewDefaultsWhenMissing(t *testing.T) {
	baseDir := t.TempDir()
	cfg, err := New(baseDir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Settings.Log.Level != "warn" || cfg.Settings.Log.Format != "console" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Settings.Log)
	}
	if cfg.LogFilePath() != "" {
		t.Fatalf("file logging should be off by default")
	}
	if _, err := os.Stat(filepath.Join(baseDir, StateDir)); !os.IsNotExist(err) {
		t.Fatalf("New must not create the state dir")
	}
}

func TestNewParsesYaml(t *testing.T) {
	baseDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	writeSettings(t, baseDir, strings.TrimSpace(`
version: 1
log:
  level: " DEBUG "
  format: json
  file: true
wait:
  timeout: 30s
`))
	cfg, err := New(baseDir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Settings.Log.Level != "debug" || cfg.Settings.Log.Format != "json" {
		t.Fatalf("log settings not normalized: %+v", cfg.Settings.Log)
	}
	if cfg.Settings.Wait.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.Settings.Wait.Timeout)
	}
	if cfg.Settings.Wait.Rescan != defaultWaitRescan {
		t.Fatalf("expected default rescan, got %s", cfg.Settings.Wait.Rescan)
	}
	if !strings.HasPrefix(cfg.LogFilePath(), baseDir) {
		t.Fatalf("expected log file under base dir, got %s", cfg.LogFilePath())
	}
}

func TestNewValidation(t *testing.T) {
	cases := map[string]string{
		"level":   "log:\n  level: loud\n",
		"format":  "log:\n  format: xml\n",
		"version": "version: 2\n",
		"timeout": "wait:\n  timeout: -1s\n",
		"yaml":    "log: [\n",
	}
	for name, body := range cases {
		baseDir := t.TempDir()
		writeSettings(t, baseDir, body)
		if _, err := New(baseDir); err == nil {
			t.Errorf("%s: expected validation error but got none", name)
		}
	}
}

func TestNewRequiresBaseDir(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatalf("expected error for empty base dir")
	}
}

func TestInitWritesDefaultsOnce(t *testing.T) {
	baseDir := t.TempDir()
	path, err := Init(baseDir)
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := os.WriteFile(path, []byte("version: 1\nlog:\n  level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Init(baseDir); err != nil {
		t.Fatalf("second Init returned error: %v", err)
	}
	cfg, err := New(baseDir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Settings.Log.Level != "error" {
		t.Fatalf("Init must not overwrite existing settings, got %+v", cfg.Settings.Log)
	}
}

func TestDefaultSettingsFileParses(t *testing.T) {
	baseDir := t.TempDir()
	if _, err := Init(baseDir); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	cfg, err := New(baseDir)
	if err != nil {
		t.Fatalf("default settings must parse: %v", err)
	}
	if cfg.Settings.Wait.Timeout != 5*time.Minute {
		t.Fatalf("unexpected default timeout %s", cfg.Settings.Wait.Timeout)
	}
}

func TestZeroTimeoutMeansNoLimit(t *testing.T) {
	baseDir := t.TempDir()
	writeSettings(t, baseDir, "wait:\n  timeout: 0s\n")
	cfg, err := New(baseDir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Settings.Wait.Timeout != 0 {
		t.Fatalf("expected timeout 0 to be kept, got %s", cfg.Settings.Wait.Timeout)
	}
	if cfg.Settings.Wait.Rescan != defaultWaitRescan {
		t.Fatalf("expected default rescan, got %s", cfg.Settings.Wait.Rescan)
	}
}

func TestNewResolvesSymlinkedBase(t *testing.T) {
	real, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	cfg, err := New(link)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.BaseDir != real {
		t.Fatalf("expected base dir %s, got %s", real, cfg.BaseDir)
	}
}
