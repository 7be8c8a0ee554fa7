// Package registry holds the definitions that loaded manifests register
// into the running process.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kingrea/autoloader/manifest"
)

// Registry maps definition IDs to the manifest entries that declared them.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]manifest.DefinitionFile
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: map[string]manifest.DefinitionFile{}}
}

// Register adds one definition. Returns an error if the ID already exists.
func (r *Registry) Register(file manifest.DefinitionFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(file)
}

// RegisterAll adds every definition or none of them.
func (r *Registry) RegisterAll(files []manifest.DefinitionFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := make([]string, 0, len(files))
	for _, file := range files {
		if err := r.registerLocked(file); err != nil {
			for _, id := range added {
				delete(r.entries, id)
			}
			return err
		}
		added = append(added, file.Definition.ID)
	}
	return nil
}

func (r *Registry) registerLocked(file manifest.DefinitionFile) error {
	id := file.Definition.ID
	if id == "" {
		return fmt.Errorf("registry: id is required (%s)", file.Path)
	}
	if existing, exists := r.entries[id]; exists {
		return fmt.Errorf("registry: duplicate id %s (%s and %s)", id, existing.Path, file.Path)
	}
	r.entries[id] = file
	return nil
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (manifest.DefinitionFile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.entries[id]
	return file, ok
}

// IDs returns a sorted list of registered identifiers.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entries returns every registered entry sorted by ID.
func (r *Registry) Entries() []manifest.DefinitionFile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	files := make([]manifest.DefinitionFile, 0, len(r.entries))
	for _, file := range r.entries {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Definition.ID < files[j].Definition.ID })
	return files
}

// Len reports how many definitions are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
