package manifest

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Definitions []Definition `yaml:"definitions"`
}

// ParseDefinitionYAML decodes and validates a single definition payload.
func ParseDefinitionYAML(data []byte) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, fmt.Errorf("manifest: definition payload is empty")
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("manifest: decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def.Normalized(), nil
}

// ParseYAML decodes a manifest that is either one definition document or
// a document with a top-level definitions list.
func ParseYAML(data []byte) ([]Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("manifest: payload is empty")
	}
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("manifest: decode yaml: %w", err)
	}
	if _, ok := top["definitions"]; !ok {
		def, err := ParseDefinitionYAML(data)
		if err != nil {
			return nil, err
		}
		return []Definition{def}, nil
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: decode definitions: %w", err)
	}
	defs := make([]Definition, 0, len(doc.Definitions))
	for idx, def := range doc.Definitions {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("definitions[%d]: %w", idx, err)
		}
		defs = append(defs, def.Normalized())
	}
	return defs, nil
}
