package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"vendor/autoload.go":  FormatGo,
		"autoload.YAML":       FormatYAML,
		"autoload.yml":        FormatYAML,
		"autoload.toml":       FormatTOML,
		"vendor/autoload.php": FormatInclude,
		"vendor/autoload":     FormatInclude,
	}
	for path, want := range cases {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestLoadFileInclude(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendor", "autoload.php")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("<?php\nreturn require __DIR__.'/composer/autoload_real.php';\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	files, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(files))
	}
	def := files[0].Definition
	if def.Kind != KindInclude || def.Name != "autoload.php" {
		t.Fatalf("unexpected definition: %+v", def)
	}
	if digest, _ := def.Config["sha256"].(string); len(digest) != 64 {
		t.Fatalf("expected sha256 digest, got %v", def.Config["sha256"])
	}
	if files[0].Path != path {
		t.Fatalf("expected path %s, got %s", path, files[0].Path)
	}
}

func TestLoadFileEmptyIncludeIsAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoload.php")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	files, err := LoadFile(path)
	if err != nil {
		t.Fatalf("empty include should load: %v", err)
	}
	if size := files[0].Definition.Config["size"]; size != 0 {
		t.Fatalf("expected size 0, got %v", size)
	}
}

func TestLoadFileMultiDefinitionPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoload.yaml")
	if err := os.WriteFile(path, []byte(listDefinitions), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	files, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(files) != 2 || files[1].Path != path+"#2" {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestLoadFileDuplicateIDs(t *testing.T) {
	payload := "definitions:\n  - id: acme/widget\n  - id: acme/widget\n"
	path := filepath.Join(t.TempDir(), "autoload.yaml")
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadFileDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "autoload.php")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadFile(dir); err == nil {
		t.Fatalf("expected directory to be rejected")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoaderRegistersDefinitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.yaml")
	if err := os.WriteFile(path, []byte("id: acme/widget\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got []DefinitionFile
	loader := Loader{Register: func(files []DefinitionFile) error {
		got = files
		return nil
	}}
	if err := loader.Load(context.Background(), path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Definition.ID != "acme/widget" || got[0].Path != path {
		t.Fatalf("unexpected registration: %+v", got)
	}

	boom := errors.New("registry full")
	loader.Register = func([]DefinitionFile) error { return boom }
	if err := loader.Load(context.Background(), path); !errors.Is(err, boom) {
		t.Fatalf("expected register error, got %v", err)
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	loader := Loader{Register: func([]DefinitionFile) error {
		called = true
		return nil
	}}
	if err := loader.Load(ctx, "missing.yaml"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatalf("cancelled load must not register")
	}
}
