package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/routers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/bodygen"
	"github.com/aretw0/bodygen/pkg/catalog"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/morph"
	"github.com/aretw0/bodygen/pkg/preset"
	"github.com/aretw0/bodygen/pkg/template"
)

// Engine is the subset of *bodygen.Engine the HTTP adapter needs.
type Engine interface {
	Catalog() *catalog.Catalog
	ValidatePreset(p domain.RawPreset) (domain.ValidatedPreset, error)
	FormatTemplates(text string) (template.Output, error)
	ValidateTemplates(text string) error
	Bodies() []string
	Preview(ctx context.Context, name string, sliders []domain.Slider) ([]float32, error)
}

var _ Engine = (*bodygen.Engine)(nil)

// Server exposes an Engine over HTTP.
type Server struct {
	engine     Engine
	events     *EventHub
	logger     *slog.Logger
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	router     routers.Router
	apiVersion string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry exposes reg on /metrics and counts requests into it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer builds a Server around engine.
func NewServer(engine Engine, opts ...Option) (*Server, error) {
	s := &Server{engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.events = NewEventHub(s.logger)

	doc, router, err := loadRouter(context.Background())
	if err != nil {
		return nil, err
	}
	s.router = router
	s.apiVersion = doc.Info.Version

	if s.registry != nil {
		s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bodygen",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"})
		if err := s.registry.Register(s.requests); err != nil {
			return nil, fmt.Errorf("registering http metrics: %w", err)
		}
	}
	return s, nil
}

// Events returns the hub feeding the /events stream.
func (s *Server) Events() *EventHub {
	return s.events
}

// Notify pushes a reload notification to SSE clients.
func (s *Server) Notify(msg string) {
	s.events.Broadcast(msg)
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	if s.requests != nil {
		r.Use(s.countRequests)
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.validateRequests)
		r.Get("/health", s.getHealth)
		r.Get("/info", s.getInfo)
		r.Post("/validate", s.validatePreset)
		r.Post("/templates/format", s.formatTemplates)
		r.Post("/templates/validate", s.validateTemplates)
		r.Get("/sliders/{gender}", s.listSliders)
		r.Get("/bodies", s.listBodies)
		r.Post("/preview/{body}", s.preview)
		r.Get("/events", s.subscribeEvents)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		s.requests.WithLabelValues(r.Method, route, fmt.Sprint(code)).Inc()
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>BodyGen API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// SliderRequest carries sliders either as a descriptor or as a list.
// A non-empty descriptor wins.
type SliderRequest struct {
	Name       string          `json:"name,omitempty"`
	Set        string          `json:"set,omitempty"`
	Descriptor string          `json:"descriptor,omitempty"`
	Sliders    []domain.Slider `json:"sliders,omitempty"`
	Recenter   bool            `json:"recenter,omitempty"`
}

func (req SliderRequest) sliders() ([]domain.Slider, error) {
	if strings.TrimSpace(req.Descriptor) != "" {
		return preset.ParseDescriptor(req.Descriptor)
	}
	if req.Sliders == nil {
		return []domain.Slider{}, nil
	}
	return req.Sliders, nil
}

// TemplatesRequest carries raw templates text.
type TemplatesRequest struct {
	Text string `json:"text"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

// CategoryView is one display category of sliders.
type CategoryView struct {
	Name    string                   `json:"name"`
	Sliders []domain.DecoratedSlider `json:"sliders"`
}

// SlidersResponse lists a gender's sliders by category.
type SlidersResponse struct {
	Gender     string         `json:"gender"`
	Categories []CategoryView `json:"categories"`
}

// BoundsView is a JSON-friendly morph.Box.
type BoundsView struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// PreviewResponse carries morphed positions for one body.
type PreviewResponse struct {
	Body      string      `json:"body"`
	Vertices  int         `json:"vertices"`
	Positions []float32   `json:"positions"`
	Bounds    *BoundsView `json:"bounds,omitempty"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "bodygen-http",
		"version":     strings.TrimSpace(bodygen.Version),
		"api_version": s.apiVersion,
	})
}

func (s *Server) validatePreset(w http.ResponseWriter, r *http.Request) {
	var body SliderRequest
	if !s.decode(w, r, &body) {
		return
	}
	sliders, err := body.sliders()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	vp, err := s.engine.ValidatePreset(domain.RawPreset{Name: body.Name, Set: body.Set, Sliders: sliders})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, vp)
}

func (s *Server) formatTemplates(w http.ResponseWriter, r *http.Request) {
	var body TemplatesRequest
	if !s.decode(w, r, &body) {
		return
	}
	out, err := s.engine.FormatTemplates(body.Text)
	if err != nil {
		s.writeTemplateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) validateTemplates(w http.ResponseWriter, r *http.Request) {
	var body TemplatesRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.engine.ValidateTemplates(body.Text); err != nil {
		s.writeTemplateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (s *Server) listSliders(w http.ResponseWriter, r *http.Request) {
	g, err := domain.ParseGender(chi.URLParam(r, "gender"))
	if err != nil || !g.Valid() {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid gender %q", chi.URLParam(r, "gender")))
		return
	}
	cat := s.engine.Catalog()
	if cat == nil {
		s.writeEngineError(w, domain.ErrNoCatalog)
		return
	}

	byCategory := cat.Categorized(g)
	resp := SlidersResponse{Gender: g.String(), Categories: []CategoryView{}}
	for _, name := range cat.CategoryNames(g) {
		resp.Categories = append(resp.Categories, CategoryView{Name: name, Sliders: byCategory[name]})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listBodies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Bodies())
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "body")
	var body SliderRequest
	if !s.decode(w, r, &body) {
		return
	}
	sliders, err := body.sliders()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	positions, err := s.engine.Preview(r.Context(), name, sliders)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if body.Recenter {
		positions = morph.Recenter(positions)
	}

	resp := PreviewResponse{Body: name, Vertices: len(positions) / 3, Positions: positions}
	if box, ok := morph.Bounds(positions); ok {
		resp.Bounds = &BoundsView{Min: box.Min, Max: box.Max}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	s.writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBodyNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrNoCatalog):
		s.writeError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.logger.Error("engine call failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeTemplateError(w http.ResponseWriter, err error) {
	var gerr *template.GrammarError
	if errors.As(err, &gerr) {
		s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: gerr.Error(), Line: gerr.Line})
		return
	}
	s.writeError(w, http.StatusUnprocessableEntity, err)
}
