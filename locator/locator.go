package locator

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// State is the lookup's position in its lifecycle. Loaded and Failed are terminal.
type State int

const (
	StateSearching State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Loader includes a located manifest into the running process.
type Loader interface {
	Load(ctx context.Context, path string) error
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(ctx context.Context, path string) error

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Result describes the outcome of one lookup.
type Result struct {
	State     State
	Candidate string // as listed, relative to the base dir
	Path      string // resolved path that was loaded
	Checked   int    // candidates examined, including the winner
}

// Option customises a Locator.
type Option func(*Locator)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithExists replaces the filesystem existence check.
func WithExists(exists func(path string) bool) Option {
	return func(l *Locator) {
		if exists != nil {
			l.exists = exists
		}
	}
}

// Locator checks candidates in order and loads the first one present.
// It keeps no state between calls.
type Locator struct {
	baseDir    string
	candidates CandidateList
	loader     Loader
	exists     func(string) bool
	logger     *zap.Logger
}

// New builds a Locator for candidates relative to baseDir. Programs that
// embed the lookup pass their own candidates and Loader here.
func New(baseDir string, candidates CandidateList, loader Loader, opts ...Option) (*Locator, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("locator: at least one candidate is required")
	}
	if loader == nil {
		return nil, fmt.Errorf("locator: loader is required")
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("locator: resolve base dir %s: %w", baseDir, err)
	}
	// Parent candidates walk the real tree, not the path of a symlink.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	l := &Locator{
		baseDir:    abs,
		candidates: append(CandidateList(nil), candidates...),
		loader:     loader,
		exists:     fileExists,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// BaseDir returns the absolute directory candidates are resolved against.
func (l *Locator) BaseDir() string {
	return l.baseDir
}

// Paths returns the resolved candidate paths in priority order.
func (l *Locator) Paths() []string {
	return l.candidates.Resolve(l.baseDir)
}

// Locate finds the first existing candidate without loading it. A found
// result stays in StateSearching since nothing has been loaded.
func (l *Locator) Locate() (Result, error) {
	paths := l.Paths()
	for i, path := range paths {
		if l.exists(path) {
			l.logger.Debug("manifest found",
				zap.String("candidate", l.candidates[i]),
				zap.String("path", path))
			return Result{
				State:     StateSearching,
				Candidate: l.candidates[i],
				Path:      path,
				Checked:   i + 1,
			}, nil
		}
		l.logger.Debug("candidate absent", zap.String("path", path))
	}
	return Result{State: StateFailed, Checked: len(paths)}, &ManifestNotFoundError{
		BaseDir:    l.baseDir,
		Candidates: paths,
	}
}

// LocateAndLoad loads the first existing candidate. Candidates after the
// winner are never examined. When none exists it returns a
// *ManifestNotFoundError and loads nothing.
func (l *Locator) LocateAndLoad(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{State: StateSearching}, err
	}
	res, err := l.Locate()
	if err != nil {
		return res, err
	}
	if err := l.loader.Load(ctx, res.Path); err != nil {
		res.State = StateFailed
		return res, &LoadError{Path: res.Path, Err: err}
	}
	res.State = StateLoaded
	l.logger.Info("manifest loaded", zap.String("path", res.Path), zap.Int("checked", res.Checked))
	return res, nil
}

// Inspect reports the existence of every candidate. Nothing is loaded.
func (l *Locator) Inspect() []CandidateStatus {
	paths := l.Paths()
	statuses := make([]CandidateStatus, len(paths))
	for i, path := range paths {
		statuses[i] = CandidateStatus{
			Candidate: l.candidates[i],
			Path:      path,
			Exists:    l.exists(path),
		}
	}
	return statuses
}
