package manifest

import (
	"fmt"
	"strings"
)

const (
	// KindPackage is the default kind of a registered definition.
	KindPackage = "package"
	// KindInclude marks a manifest that was included without being evaluated.
	KindInclude = "include"
)

// Definition is one unit a manifest registers into the running process.
type Definition struct {
	ID          string         `json:"id" yaml:"id" toml:"id"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Version     string         `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Kind        string         `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty" yaml:"config,omitempty" toml:"config,omitempty"`
}

// Normalized returns a trimmed copy with defaults applied.
func (def Definition) Normalized() Definition {
	clone := Definition{
		ID:          strings.TrimSpace(def.ID),
		Name:        strings.TrimSpace(def.Name),
		Version:     strings.TrimSpace(def.Version),
		Kind:        strings.ToLower(strings.TrimSpace(def.Kind)),
		Description: strings.TrimSpace(def.Description),
	}
	if clone.Kind == "" {
		clone.Kind = KindPackage
	}
	if len(def.Config) > 0 {
		clone.Config = make(map[string]any, len(def.Config))
		for key, value := range def.Config {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				continue
			}
			clone.Config[trimmed] = value
		}
	}
	return clone
}

// Validate checks the fields every definition needs.
func (def Definition) Validate() error {
	normalized := def.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("manifest: id is required")
	}
	if strings.ContainsAny(normalized.ID, " \t\n") {
		return fmt.Errorf("manifest: id %q contains whitespace", normalized.ID)
	}
	return nil
}

// DefinitionFile pairs a definition with the manifest it came from.
type DefinitionFile struct {
	Definition Definition
	Path       string
}

func checkDuplicates(path string, defs []Definition) error {
	seen := make(map[string]int, len(defs))
	for idx, def := range defs {
		if first, ok := seen[def.ID]; ok {
			return fmt.Errorf("manifest: %s: duplicate id %s (definitions %d and %d)", path, def.ID, first+1, idx+1)
		}
		seen[def.ID] = idx
	}
	return nil
}

func toFiles(path string, defs []Definition) []DefinitionFile {
	files := make([]DefinitionFile, len(defs))
	for i, def := range defs {
		source := path
		if len(defs) > 1 {
			source = fmt.Sprintf("%s#%d", path, i+1)
		}
		files[i] = DefinitionFile{Definition: def, Path: source}
	}
	return files
}
