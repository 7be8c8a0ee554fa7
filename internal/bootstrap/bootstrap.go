// Package bootstrap wires the locator to the manifest reader and the
// definition registry for one startup lookup.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kingrea/autoloader/internal/config"
	"github.com/kingrea/autoloader/internal/registry"
	"github.com/kingrea/autoloader/locator"
	"github.com/kingrea/autoloader/manifest"
)

// Loader includes a manifest by registering every definition it declares.
// A manifest that fails part way leaves the registry unchanged.
type Loader struct {
	Registry *registry.Registry
	Logger   *zap.Logger
}

// Load implements locator.Loader.
func (l *Loader) Load(ctx context.Context, path string) error {
	var registered int
	reader := manifest.Loader{Register: func(files []manifest.DefinitionFile) error {
		registered = len(files)
		return l.Registry.RegisterAll(files)
	}}
	if err := reader.Load(ctx, path); err != nil {
		return err
	}
	if l.Logger != nil {
		l.Logger.Debug("manifest registered",
			zap.String("path", path),
			zap.String("format", string(manifest.DetectFormat(path))),
			zap.Int("definitions", registered))
	}
	return nil
}

// Session is the outcome of a successful bootstrap.
type Session struct {
	Result   locator.Result
	Registry *registry.Registry
}

// NewLocator builds a locator over the default candidates at cfg.BaseDir,
// loading into reg.
func NewLocator(cfg *config.Config, reg *registry.Registry, logger *zap.Logger) (*locator.Locator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := &Loader{Registry: reg, Logger: logger}
	return locator.New(cfg.BaseDir, locator.DefaultCandidates, loader, locator.WithLogger(logger))
}

// Run locates and loads the manifest for cfg.BaseDir. The returned error is
// a *locator.ManifestNotFoundError when nothing is installed.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	reg := registry.New()
	loc, err := NewLocator(cfg, reg, logger)
	if err != nil {
		return nil, err
	}
	res, err := loc.LocateAndLoad(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{Result: res, Registry: reg}, nil
}
