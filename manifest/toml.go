package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type tomlDocument struct {
	Definitions []Definition `toml:"definitions"`
}

// ParseTOML decodes a manifest made of [[definitions]] tables.
func ParseTOML(data []byte) ([]Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("manifest: payload is empty")
	}
	var doc tomlDocument
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("manifest: decode toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("manifest: unknown keys: %s", strings.Join(keys, ", "))
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
