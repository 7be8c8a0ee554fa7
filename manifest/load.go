// Package manifest reads dependency manifests and turns them into the
// definitions they register. Go manifests are interpreted, YAML and TOML
// manifests are decoded, and anything else is included as an opaque unit.
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies how a manifest is read.
type Format string

const (
	FormatGo      Format = "go"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatInclude Format = "include"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return FormatGo
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatInclude
	}
}

// LoadFile reads the manifest at path and returns every definition it declares.
func LoadFile(path string) ([]DefinitionFile, error) {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("manifest: stat %s: %w", clean, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("manifest: %s is a directory", clean)
	}

	var defs []Definition
	switch DetectFormat(clean) {
	case FormatGo:
		defs, err = EvalGoFile(clean)
	case FormatYAML:
		defs, err = readAndParse(clean, ParseYAML)
	case FormatTOML:
		defs, err = readAndParse(clean, ParseTOML)
	default:
		var data []byte
		data, err = os.ReadFile(clean)
		if err != nil {
			err = fmt.Errorf("manifest: read %s: %w", clean, err)
			break
		}
		defs = []Definition{IncludeDefinition(clean, data)}
	}
	if err != nil {
		return nil, err
	}
	if err := checkDuplicates(clean, defs); err != nil {
		return nil, err
	}
	return toFiles(clean, defs), nil
}

func readAndParse(path string, parse func([]byte) ([]Definition, error)) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	defs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return defs, nil
}

// Loader reads a located manifest and hands its definitions to Register.
// It satisfies the Loader interface of the locator package.
type Loader struct {
	Register func([]DefinitionFile) error
}

// Load reads the manifest at path and registers everything it declares.
func (l Loader) Load(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	files, err := LoadFile(path)
	if err != nil {
		return err
	}
	if l.Register == nil {
		return nil
	}
	return l.Register(files)
}
