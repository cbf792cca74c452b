package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/bodygen"
	"github.com/aretw0/bodygen/pkg/catalog"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/morph"
	"github.com/aretw0/bodygen/pkg/preset"
	"github.com/aretw0/bodygen/pkg/template"
)

// Engine defines what the MCP server needs from bodygen.
type Engine interface {
	Catalog() *catalog.Catalog
	ValidatePreset(p domain.RawPreset) (domain.ValidatedPreset, error)
	FormatTemplates(text string) (template.Output, error)
	ValidateTemplates(text string) error
	Bodies() []string
	Preview(ctx context.Context, name string, sliders []domain.Slider) ([]float32, error)
}

var _ Engine = (*bodygen.Engine)(nil)

// ValidateArgs are the arguments of validate_preset.
type ValidateArgs struct {
	Descriptor string `json:"descriptor"`
	Name       string `json:"name,omitempty"`
}

// TemplatesArgs are the arguments of the template tools.
type TemplatesArgs struct {
	Text string `json:"text"`
}

// TemplatesCheck reports whether a templates text is usable.
type TemplatesCheck struct {
	Valid bool   `json:"valid" jsonschema_description:"True when the text has a usable #morphs= directive"`
	Error string `json:"error,omitempty" jsonschema_description:"Grammar error, if any"`
	Line  int    `json:"line,omitempty" jsonschema_description:"1-based line of the error, zero when not tied to a line"`
}

// SlidersArgs are the arguments of list_sliders.
type SlidersArgs struct {
	Gender string `json:"gender"`
}

// SliderCategory is one display category in a list_sliders result.
type SliderCategory struct {
	Name    string                   `json:"name"`
	Sliders []domain.DecoratedSlider `json:"sliders"`
}

// SlidersResult lists a gender's sliders by category.
type SlidersResult struct {
	Gender     string           `json:"gender" jsonschema_description:"Catalog gender"`
	Categories []SliderCategory `json:"categories" jsonschema_description:"Sliders grouped by display category"`
}

// PreviewArgs are the arguments of preview_body.
type PreviewArgs struct {
	Body       string `json:"body"`
	Descriptor string `json:"descriptor"`
	Recenter   bool   `json:"recenter,omitempty"`
}

// PreviewResult summarises a morphed body.
type PreviewResult struct {
	Body      string     `json:"body"`
	Vertices  int        `json:"vertices"`
	Min       [3]float32 `json:"min" jsonschema_description:"Bounding box minimum"`
	Max       [3]float32 `json:"max" jsonschema_description:"Bounding box maximum"`
	Positions []float32  `json:"positions,omitempty" jsonschema_description:"Flat x,y,z vertex positions"`
}

// Server wraps an Engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("bodygen-mcp", strings.TrimSpace(bodygen.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("validate_preset",
		mcp.WithDescription("Validate a slider descriptor (name@value,...) against the slider catalog. Unknown sliders are removed and out-of-range values clamped."),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description("Comma separated name@value pairs, values as fractions")),
		mcp.WithString("name", mcp.Description("Preset name to carry into the result")),
		mcp.WithOutputSchema[domain.ValidatedPreset](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("format_templates",
		mcp.WithDescription("Render templates.ini and morphs.ini from BodyGen templates text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Templates text with #morphs= directives")),
		mcp.WithOutputSchema[template.Output](),
	), mcp.NewStructuredToolHandler(s.handleFormat))

	s.mcpServer.AddTool(mcp.NewTool("validate_templates",
		mcp.WithDescription("Check BodyGen templates text for a usable #morphs= directive."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Templates text")),
		mcp.WithOutputSchema[TemplatesCheck](),
	), mcp.NewStructuredToolHandler(s.handleValidateTemplates))

	s.mcpServer.AddTool(mcp.NewTool("list_sliders",
		mcp.WithDescription("List the catalog sliders for one gender, grouped by display category."),
		mcp.WithString("gender", mcp.Required(), mcp.Enum("male", "female"), mcp.Description("Catalog gender")),
		mcp.WithOutputSchema[SlidersResult](),
	), mcp.NewStructuredToolHandler(s.handleListSliders))

	s.mcpServer.AddTool(mcp.NewTool("preview_body",
		mcp.WithDescription("Apply a slider descriptor to a registered body and return its morphed positions and bounds."),
		mcp.WithString("body", mcp.Required(), mcp.Description("Registered body name")),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description("Comma separated name@value pairs")),
		mcp.WithBoolean("recenter", mcp.Description("Translate the result so its bounding box is centered on the origin")),
		mcp.WithOutputSchema[PreviewResult](),
	), mcp.NewStructuredToolHandler(s.handlePreview))

	s.mcpServer.AddTool(mcp.NewTool("list_bodies",
		mcp.WithDescription("List the bodies registered for preview."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.engine.Bodies())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (domain.ValidatedPreset, error) {
	sliders, err := preset.ParseDescriptor(args.Descriptor)
	if err != nil {
		return domain.ValidatedPreset{}, err
	}
	vp, err := s.engine.ValidatePreset(domain.RawPreset{Name: args.Name, Sliders: sliders})
	if err != nil {
		return domain.ValidatedPreset{}, fmt.Errorf("validate failed: %w", err)
	}
	return vp, nil
}

func (s *Server) handleFormat(ctx context.Context, request mcp.CallToolRequest, args TemplatesArgs) (template.Output, error) {
	return s.engine.FormatTemplates(args.Text)
}

func (s *Server) handleValidateTemplates(ctx context.Context, request mcp.CallToolRequest, args TemplatesArgs) (TemplatesCheck, error) {
	err := s.engine.ValidateTemplates(args.Text)
	if err == nil {
		return TemplatesCheck{Valid: true}, nil
	}
	var gerr *template.GrammarError
	if !errors.As(err, &gerr) {
		return TemplatesCheck{}, err
	}
	return TemplatesCheck{Error: gerr.Error(), Line: gerr.Line}, nil
}

func (s *Server) handleListSliders(ctx context.Context, request mcp.CallToolRequest, args SlidersArgs) (SlidersResult, error) {
	g, err := domain.ParseGender(args.Gender)
	if err != nil || !g.Valid() {
		return SlidersResult{}, fmt.Errorf("invalid gender %q", args.Gender)
	}
	cat := s.engine.Catalog()
	if cat == nil {
		return SlidersResult{}, domain.ErrNoCatalog
	}
	return slidersFor(cat, g), nil
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest, args PreviewArgs) (PreviewResult, error) {
	sliders, err := preset.ParseDescriptor(args.Descriptor)
	if err != nil {
		return PreviewResult{}, err
	}
	positions, err := s.engine.Preview(ctx, args.Body, sliders)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("preview failed: %w", err)
	}
	if args.Recenter {
		positions = morph.Recenter(positions)
	}

	res := PreviewResult{Body: args.Body, Vertices: len(positions) / 3, Positions: positions}
	if box, ok := morph.Bounds(positions); ok {
		res.Min, res.Max = box.Min, box.Max
	}
	return res, nil
}

func slidersFor(cat *catalog.Catalog, g domain.Gender) SlidersResult {
	byCategory := cat.Categorized(g)
	res := SlidersResult{Gender: g.String(), Categories: []SliderCategory{}}
	for _, name := range cat.CategoryNames(g) {
		res.Categories = append(res.Categories, SliderCategory{Name: name, Sliders: byCategory[name]})
	}
	return res
}

func (s *Server) registerResources() {
	for _, g := range domain.Genders {
		uri := "bodygen://sliders/" + g.String()
		s.mcpServer.AddResource(mcp.NewResource(uri, fmt.Sprintf("Slider catalog (%s)", g),
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			cat := s.engine.Catalog()
			if cat == nil {
				return nil, domain.ErrNoCatalog
			}
			jsonBytes, err := json.Marshal(slidersFor(cat, g))
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(jsonBytes),
				},
			}, nil
		})
	}
}
