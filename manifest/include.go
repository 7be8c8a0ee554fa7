package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// IncludeDefinition describes a manifest the process cannot evaluate itself,
// such as a generated PHP autoloader. The file is recorded as included with
// its digest and size; the content is not inspected.
func IncludeDefinition(path string, data []byte) Definition {
	sum := sha256.Sum256(data)
	return Definition{
		ID:   filepath.ToSlash(filepath.Clean(path)),
		Name: filepath.Base(path),
		Kind: KindInclude,
		Config: map[string]any{
			"sha256": hex.EncodeToString(sum[:]),
			"size":   len(data),
		},
	}
}
