package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/bodygen"
	"github.com/aretw0/bodygen/internal/watch"
	httpAdapter "github.com/aretw0/bodygen/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/bodygen/pkg/adapters/mcp"
	"github.com/aretw0/bodygen/pkg/sources"
)

// ServeOptions drive RunServe.
type ServeOptions struct {
	Port  int
	Watch bool
}

// RunServe starts the HTTP API and blocks until ctx is cancelled.
func RunServe(ctx context.Context, a *App, opts ServeOptions) error {
	eng, err := a.Engine(ctx)
	if err != nil {
		return err
	}

	srvOpts := []httpAdapter.Option{httpAdapter.WithLogger(a.Logger)}
	if a.Config.Metrics.Enabled {
		srvOpts = append(srvOpts, httpAdapter.WithRegistry(a.Registry))
	}
	srv, err := httpAdapter.NewServer(eng, srvOpts...)
	if err != nil {
		return err
	}

	if opts.Watch {
		if err := WatchCatalog(ctx, a, eng, srv.Notify); err != nil {
			return err
		}
	}

	port := opts.Port
	if port == 0 {
		port = a.Config.HTTP.Port
	}
	printSystemMessage(a.Err, "Serving BodyGen API on :%d (data folder %s)", port, a.Config.DataFolder)
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
}

// MCPOptions drive RunMCP.
type MCPOptions struct {
	SSE  bool
	Port int
}

// RunMCP serves the MCP tools on stdio, or over SSE when requested.
func RunMCP(ctx context.Context, a *App, opts MCPOptions) error {
	eng, err := a.Engine(ctx)
	if err != nil {
		return err
	}
	srv := mcpAdapter.NewServer(eng, mcpAdapter.WithLogger(a.Logger))
	if opts.SSE {
		return srv.ServeSSE(ctx, opts.Port)
	}
	return srv.ServeStdio()
}

// WatchCatalog reloads the catalog into eng whenever a slider or category
// file changes, then calls notify with the changed path. It returns once the
// watcher is running; the loop ends with ctx.
func WatchCatalog(ctx context.Context, a *App, eng *bodygen.Engine, notify func(path string)) error {
	exts := append(append([]string{}, sources.SliderExts...), sources.DataExts...)
	w := watch.New(
		[]string{a.Config.SlidersDir, a.Config.CategoriesDir},
		watch.WithExtensions(exts...),
		watch.WithLogger(a.Logger),
	)
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for path := range events {
			cat, err := a.LoadCatalog()
			if err != nil {
				a.Logger.Error("catalog reload failed", "file", path, "error", err)
				continue
			}
			eng.SetCatalog(cat)
			a.Logger.Info("catalog reloaded", "file", path, "sliders", cat.Len())
			if notify != nil {
				notify(path)
			}
		}
	}()
	return nil
}

// serveMetrics exposes the registry on the metrics port until ctx ends.
func serveMetrics(ctx context.Context, a *App) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Metrics.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.Logger.Info("metrics listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
}
