package bodygen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/aretw0/bodygen/pkg/adapters/memory"
	"github.com/aretw0/bodygen/pkg/catalog"
	"github.com/aretw0/bodygen/pkg/codec"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/morph"
	"github.com/aretw0/bodygen/pkg/ports"
	"github.com/aretw0/bodygen/pkg/preset"
	"github.com/aretw0/bodygen/pkg/template"
	"github.com/aretw0/bodygen/pkg/tri"
)

// Engine is the high-level entry point for the bodygen library.
// It holds the shared catalog, the TRI cache and the registered preview
// bodies. An Engine is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	cache   ports.TriCache
	logger  *slog.Logger

	mu     sync.RWMutex
	bodies map[string]*body
}

type body struct {
	base  []float32
	tri   *domain.TriFile
	index *morph.Index
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithCatalog sets the slider catalog used for validation.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) error {
		e.catalog = c
		return nil
	}
}

// WithTriCache replaces the default in-memory TRI cache. A nil cache keeps
// the default.
func WithTriCache(c ports.TriCache) Option {
	return func(e *Engine) error {
		if c == nil {
			return nil
		}
		e.cache = c
		return nil
	}
}

// WithLogger sets a custom structured logger for the engine. A nil logger
// keeps the discard default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return nil
		}
		e.logger = logger
		return nil
	}
}

// WithBody registers a preview body at construction time.
func WithBody(name string, base []float32, t *domain.TriFile) Option {
	return func(e *Engine) error {
		return e.RegisterBody(name, base, t)
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		bodies: make(map[string]*body),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cache:  memory.NewCache(),
	}
	for _, opt := range opts {
		if err := opt(eng); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

// Catalog returns the catalog, or nil if none was configured.
func (e *Engine) Catalog() *catalog.Catalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog
}

// SetCatalog swaps the catalog used by subsequent validations.
// Validations already running keep the catalog they started with.
func (e *Engine) SetCatalog(c *catalog.Catalog) {
	e.mu.Lock()
	e.catalog = c
	e.mu.Unlock()
	if c != nil {
		e.logger.Debug("catalog replaced", "sliders", c.Len())
	}
}

// Validate checks a slider list against the catalog.
func (e *Engine) Validate(sliders []domain.Slider) (domain.ValidatedPreset, error) {
	cat := e.Catalog()
	if cat == nil {
		return domain.ValidatedPreset{}, domain.ErrNoCatalog
	}
	return preset.Validate(cat, sliders), nil
}

// ValidatePreset checks a preset record against the catalog.
func (e *Engine) ValidatePreset(p domain.RawPreset) (domain.ValidatedPreset, error) {
	cat := e.Catalog()
	if cat == nil {
		return domain.ValidatedPreset{}, domain.ErrNoCatalog
	}
	vp := preset.ValidatePreset(cat, p)
	if !vp.Valid {
		e.logger.Debug("preset rejected", "preset", p.Name, "errors", len(vp.Errors))
	}
	return vp, nil
}

// ValidateDescriptor parses a "name@value,..." descriptor and validates it.
func (e *Engine) ValidateDescriptor(descriptor string) (domain.ValidatedPreset, error) {
	sliders, err := preset.ParseDescriptor(descriptor)
	if err != nil {
		return domain.ValidatedPreset{}, err
	}
	return e.Validate(sliders)
}

// FormatTemplates parses templates text and renders templates.ini and morphs.ini.
func (e *Engine) FormatTemplates(text string) (template.Output, error) {
	return template.FormatText(text)
}

// ValidateTemplates checks templates text for a usable "#morphs=" directive.
func (e *Engine) ValidateTemplates(text string) error {
	return template.Validate(text)
}

// LoadTri reads and decodes a TRI file, going through the cache keyed by the
// file's content hash.
func (e *Engine) LoadTri(ctx context.Context, path string) (*domain.TriFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return e.DecodeTri(ctx, data)
}

// DecodeTri decodes TRI bytes, going through the cache.
func (e *Engine) DecodeTri(ctx context.Context, data []byte) (*domain.TriFile, error) {
	key := codec.ContentKey(data)

	cached, err := e.cache.Get(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		e.logger.Warn("tri cache read failed", "key", key, "error", err)
	}

	t, err := tri.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Put(ctx, key, t); err != nil {
		e.logger.Warn("tri cache write failed", "key", key, "error", err)
	}
	return t, nil
}

// RegisterBody makes a base mesh and its morph file available to Preview.
// The mesh must have a vertex for every index the TRI file references.
func (e *Engine) RegisterBody(name string, base []float32, t *domain.TriFile) error {
	if name == "" {
		return fmt.Errorf("body name is required")
	}
	if t == nil {
		return fmt.Errorf("body %q: tri file is required", name)
	}
	if len(base)%3 != 0 {
		return fmt.Errorf("body %q: position buffer length %d is not a multiple of 3", name, len(base))
	}
	if need := t.MaxIndex() + 1; need*3 > len(base) {
		return fmt.Errorf("body %q: tri references vertex %d but mesh has %d vertices", name, need-1, len(base)/3)
	}

	b := &body{
		base:  append([]float32(nil), base...),
		tri:   t,
		index: morph.NewIndex(t),
	}

	e.mu.Lock()
	e.bodies[name] = b
	e.mu.Unlock()

	e.logger.Debug("body registered", "body", name, "vertices", len(base)/3, "channels", len(t.Morphs))
	return nil
}

// LoadBody reads a base mesh from src and a TRI file from triPath and
// registers them under name.
func (e *Engine) LoadBody(ctx context.Context, name string, src ports.PositionSource, triPath string) error {
	base, err := src.ReadPositions(ctx)
	if err != nil {
		return fmt.Errorf("body %q: %w", name, err)
	}
	t, err := e.LoadTri(ctx, triPath)
	if err != nil {
		return fmt.Errorf("body %q: %w", name, err)
	}
	return e.RegisterBody(name, base, t)
}

// Bodies returns the registered body names, sorted.
func (e *Engine) Bodies() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.bodies))
	for n := range e.bodies {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Preview applies sliders to a registered body and returns the new positions.
// Sliders naming channels the TRI file lacks are skipped.
func (e *Engine) Preview(ctx context.Context, name string, sliders []domain.Slider) ([]float32, error) {
	e.mu.RLock()
	b, ok := e.bodies[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBodyNotFound, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.index.Apply(b.base, sliders), nil
}

// PreviewDescriptor is Preview driven by a "name@value,..." descriptor.
func (e *Engine) PreviewDescriptor(ctx context.Context, name, descriptor string) ([]float32, error) {
	sliders, err := preset.ParseDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	return e.Preview(ctx, name, sliders)
}

// PreviewTo runs Preview and writes the result to sink.
func (e *Engine) PreviewTo(ctx context.Context, name string, sliders []domain.Slider, sink ports.PositionSink) error {
	out, err := e.Preview(ctx, name, sliders)
	if err != nil {
		return err
	}
	return sink.WritePositions(ctx, out)
}
