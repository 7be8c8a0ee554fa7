// Package locator finds the dependency manifest among an ordered list of
// candidate locations and hands the first one that exists to a Loader.
package locator

import (
	"os"
	"path/filepath"
	"strings"
)

// CandidateList is an ordered list of manifest paths relative to a base
// directory. Earlier entries take priority.
type CandidateList []string

// DefaultCandidates are the locations checked when the caller does not
// supply its own list: the project's own vendor directory, then the
// autoloader of a parent project that installed this one as a dependency.
var DefaultCandidates = CandidateList{
	filepath.Join("vendor", "autoload.php"),
	filepath.Join("..", "..", "..", "autoload.php"),
}

// Resolve joins every candidate with baseDir. Absolute candidates are kept
// as they are.
func (c CandidateList) Resolve(baseDir string) []string {
	paths := make([]string, len(c))
	for i, candidate := range c {
		paths[i] = resolvePath(baseDir, candidate)
	}
	return paths
}

// CandidateStatus reports whether one candidate exists on disk.
type CandidateStatus struct {
	Candidate string
	Path      string
	Exists    bool
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

// fileExists mirrors a plain existence check: anything stat can see counts,
// directories included. Stat failures of any kind read as "absent".
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
