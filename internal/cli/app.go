// Package cli holds the glue between the cobra commands and the library:
// settings, engine construction, batch runs and the watch loop.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/bodygen"
	"github.com/aretw0/bodygen/internal/config"
	"github.com/aretw0/bodygen/internal/indexer"
	"github.com/aretw0/bodygen/pkg/adapters/gltf"
	"github.com/aretw0/bodygen/pkg/adapters/memory"
	"github.com/aretw0/bodygen/pkg/adapters/redis"
	"github.com/aretw0/bodygen/pkg/catalog"
	"github.com/aretw0/bodygen/pkg/ports"
	"github.com/aretw0/bodygen/pkg/sources"
)

// Options are the persistent command-line flags.
type Options struct {
	ConfigPath string
	Dir        string
	Debug      bool
}

// App bundles what every command needs.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Out      io.Writer
	Err      io.Writer
	Metrics  *indexer.Metrics

	engine  *bodygen.Engine
	closers []func() error
}

// NewApp loads settings and sets up logging. The engine is built lazily.
func NewApp(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultFile
		if opts.Dir != "" {
			path = filepath.Join(opts.Dir, config.DefaultFile)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Dir != "" {
		cfg.SetDataFolder(opts.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger, err := NewLogger(opts.Debug, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	reg := prometheus.NewRegistry()
	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Metrics:  indexer.NewMetrics(reg),
		Out:      os.Stdout,
		Err:      os.Stderr,
	}, nil
}

// Close releases the cache connection, if any.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// LoadCatalog reads the slider and category folders named in the settings.
func (a *App) LoadCatalog() (*catalog.Catalog, error) {
	cat, err := sources.LoadCatalog(a.Config.SlidersDir, a.Config.CategoriesDir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	a.Logger.Info("catalog loaded", "sliders", cat.Len(), "dir", a.Config.SlidersDir)
	return cat, nil
}

// NewCache builds the TRI cache selected by the settings.
func (a *App) NewCache() (ports.TriCache, error) {
	c := a.Config.Cache
	switch c.Backend {
	case config.BackendRedis:
		var opts []redis.Option
		if c.Prefix != "" {
			opts = append(opts, redis.WithPrefix(c.Prefix))
		}
		if c.TTL > 0 {
			opts = append(opts, redis.WithTTL(c.TTL))
		}
		rc := redis.New(c.Address, c.Password, c.DB, opts...)
		a.closers = append(a.closers, rc.Close)
		a.Logger.Debug("using redis tri cache", "address", c.Address, "db", c.DB)
		return rc, nil
	default:
		return memory.NewCache(), nil
	}
}

// Engine returns the engine, building it on first use: cache, catalog and
// every configured preview body.
func (a *App) Engine(ctx context.Context) (*bodygen.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}

	cache, err := a.NewCache()
	if err != nil {
		return nil, err
	}
	cat, err := a.LoadCatalog()
	if err != nil {
		return nil, err
	}

	eng, err := bodygen.New(
		bodygen.WithCatalog(cat),
		bodygen.WithTriCache(cache),
		bodygen.WithLogger(a.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	for _, b := range a.Config.Bodies {
		if err := a.loadBody(ctx, eng, b); err != nil {
			return nil, err
		}
	}

	a.engine = eng
	return eng, nil
}

func (a *App) loadBody(ctx context.Context, eng *bodygen.Engine, b config.BodyConfig) error {
	mesh, err := gltf.Open(a.resolve(b.Mesh))
	if err != nil {
		return fmt.Errorf("body %q: %w", b.Name, err)
	}
	if err := eng.LoadBody(ctx, b.Name, mesh, a.resolve(b.Tri)); err != nil {
		return err
	}
	a.Logger.Info("body loaded", "body", b.Name, "mesh", b.Mesh)
	return nil
}

// resolve makes relative paths relative to the data folder.
func (a *App) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.Config.DataFolder, p)
}

// Indexer builds a batch indexer over cat using the settings.
func (a *App) Indexer(cat *catalog.Catalog, loader indexer.TriLoader) *indexer.Indexer {
	opts := []indexer.Option{
		indexer.WithWorkers(a.Config.Workers),
		indexer.WithPresetOptions(a.PresetOptions()),
		indexer.WithLogger(a.Logger),
		indexer.WithMetrics(a.Metrics),
	}
	if loader != nil {
		opts = append(opts, indexer.WithTriLoader(loader))
	}
	return indexer.New(cat, opts...)
}

// PresetOptions derives preset parsing options from the settings.
func (a *App) PresetOptions() sources.PresetOptions {
	return sources.PresetOptions{
		Percent: a.Config.UsePercent(),
		Size:    a.Config.SizeFilter(),
	}
}
