// Package indexer validates preset files and decodes TRI files in parallel.
//
// Each file is independent: a failure is recorded on that file's result and
// the rest of the batch carries on. Only context cancellation stops a batch.
package indexer

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/preset"
	"github.com/aretw0/bodygen/pkg/sources"
)

const (
	kindPreset = "preset"
	kindTri    = "tri"

	statusOK      = "ok"
	statusInvalid = "invalid"
	statusError   = "error"
)

// TriLoader loads a TRI file by path. *bodygen.Engine satisfies it.
type TriLoader interface {
	LoadTri(ctx context.Context, path string) (*domain.TriFile, error)
}

// PresetResult is the outcome for one preset file.
type PresetResult struct {
	Path    string                   `json:"path"`
	Presets []domain.ValidatedPreset `json:"presets,omitempty"`
	Err     error                    `json:"-"`
}

// Invalid counts presets with errors.
func (r PresetResult) Invalid() int {
	n := 0
	for _, p := range r.Presets {
		if !p.Valid {
			n++
		}
	}
	return n
}

// TriResult is the outcome for one TRI file.
type TriResult struct {
	Path string          `json:"path"`
	Tri  *domain.TriFile `json:"-"`
	Err  error           `json:"-"`
}

// Indexer runs batches on a bounded worker pool.
type Indexer struct {
	catalog preset.SliderLookup
	loader  TriLoader
	opts    sources.PresetOptions
	workers int
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Indexer)

// WithWorkers bounds the number of files processed at once.
func WithWorkers(n int) Option {
	return func(ix *Indexer) {
		if n > 0 {
			ix.workers = n
		}
	}
}

// WithPresetOptions sets how preset values are read.
func WithPresetOptions(o sources.PresetOptions) Option {
	return func(ix *Indexer) {
		ix.opts = o
	}
}

// WithTriLoader sets the loader used by DecodeFiles.
func WithTriLoader(l TriLoader) Option {
	return func(ix *Indexer) {
		ix.loader = l
	}
}

// WithLogger sets the logger for per-file failures.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Indexer) {
		ix.logger = l
	}
}

// WithMetrics records batch activity on m.
func WithMetrics(m *Metrics) Option {
	return func(ix *Indexer) {
		ix.metrics = m
	}
}

// New creates an indexer validating against cat.
func New(cat preset.SliderLookup, opts ...Option) *Indexer {
	ix := &Indexer{
		catalog: cat,
		opts:    sources.DefaultPresetOptions,
		workers: runtime.NumCPU(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.metrics == nil {
		ix.metrics = NewMetrics(nil)
	}
	return ix
}

// ValidateFiles reads and validates every preset file. Results are in input
// order.
func (ix *Indexer) ValidateFiles(ctx context.Context, paths []string) ([]PresetResult, error) {
	results := make([]PresetResult, len(paths))
	err := ix.each(ctx, paths, func(i int, path string) {
		results[i] = ix.validateFile(path)
	})
	return results, err
}

func (ix *Indexer) validateFile(path string) PresetResult {
	start := time.Now()
	defer func() {
		ix.metrics.Duration.WithLabelValues(kindPreset).Observe(time.Since(start).Seconds())
	}()

	f := sources.ReadPresetFile(path, ix.opts)
	if f.Err != nil {
		ix.logger.Warn("preset file skipped", "file", path, "error", f.Err)
		ix.metrics.Files.WithLabelValues(kindPreset, statusError).Inc()
		return PresetResult{Path: path, Err: f.Err}
	}

	res := PresetResult{Path: path, Presets: make([]domain.ValidatedPreset, 0, len(f.Presets))}
	for _, p := range f.Presets {
		vp := preset.ValidatePreset(ix.catalog, p)
		ix.metrics.SlidersDropped.Add(float64(len(vp.Errors)))
		ix.metrics.SlidersClamped.Add(float64(len(vp.Warnings)))
		res.Presets = append(res.Presets, vp)
	}

	status := statusOK
	if res.Invalid() > 0 {
		status = statusInvalid
	}
	ix.metrics.Files.WithLabelValues(kindPreset, status).Inc()
	return res
}

// ScanPresets validates every preset file in dir.
func (ix *Indexer) ScanPresets(ctx context.Context, dir string) ([]PresetResult, error) {
	paths, err := sources.PresetPaths(dir)
	if err != nil {
		return nil, err
	}
	return ix.ValidateFiles(ctx, paths)
}

// DecodeFiles loads every TRI file through the configured loader. Results are
// in input order.
func (ix *Indexer) DecodeFiles(ctx context.Context, paths []string) ([]TriResult, error) {
	loader := ix.loader
	if loader == nil {
		loader = fileLoader{}
	}

	results := make([]TriResult, len(paths))
	err := ix.each(ctx, paths, func(i int, path string) {
		start := time.Now()
		t, err := loader.LoadTri(ctx, path)
		ix.metrics.Duration.WithLabelValues(kindTri).Observe(time.Since(start).Seconds())

		if err != nil {
			ix.logger.Warn("tri file skipped", "file", path, "error", err)
			ix.metrics.Files.WithLabelValues(kindTri, statusError).Inc()
			results[i] = TriResult{Path: path, Err: err}
			return
		}
		ix.metrics.Files.WithLabelValues(kindTri, statusOK).Inc()
		results[i] = TriResult{Path: path, Tri: t}
	})
	return results, err
}

// each runs fn for every path on the worker pool. fn never fails; the only
// error is the context's.
func (ix *Indexer) each(ctx context.Context, paths []string, fn func(i int, path string)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for i, p := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
