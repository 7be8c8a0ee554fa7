package locator

import (
	"errors"
	"fmt"
	"strings"
)

// NotInstalledMessage is printed when no manifest could be found.
const NotInstalledMessage = "Please run composer install."

// ErrManifestNotFound matches every *ManifestNotFoundError.
var ErrManifestNotFound = errors.New("locator: manifest not found")

// ManifestNotFoundError is returned when every candidate was absent.
type ManifestNotFoundError struct {
	BaseDir    string
	Candidates []string
}

// Error returns the operator-facing diagnostic.
func (e *ManifestNotFoundError) Error() string {
	return NotInstalledMessage
}

// Is lets errors.Is(err, ErrManifestNotFound) succeed.
func (e *ManifestNotFoundError) Is(target error) bool {
	return target == ErrManifestNotFound
}

// ExitCode is the process status a command-line caller should exit with.
func (e *ManifestNotFoundError) ExitCode() int {
	return 1
}

// Detail lists the paths that were checked, for logs.
func (e *ManifestNotFoundError) Detail() string {
	return fmt.Sprintf("no manifest under %s (checked %s)", e.BaseDir, strings.Join(e.Candidates, ", "))
}

// LoadError wraps a failure of the load step for the manifest at Path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("locator: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
