package cli

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/bodygen"
	"github.com/aretw0/bodygen/internal/presentation/report"
	"github.com/aretw0/bodygen/internal/watch"
	"github.com/aretw0/bodygen/pkg/sources"
)

// WatchDebounce is the quiet period before a change triggers a new run.
var WatchDebounce = 300 * time.Millisecond

// RunWatch validates the presets folder, then re-validates whenever a slider,
// category or preset file changes, until ctx is cancelled.
func RunWatch(ctx context.Context, a *App, opts ValidateOptions) error {
	report.PrintBanner(a.Out, bodygen.Version)
	if a.Config.Metrics.Enabled {
		serveMetrics(ctx, a)
	}

	exts := append(append([]string{}, sources.SliderExts...), sources.DataExts...)
	w := watch.New(
		[]string{a.Config.SlidersDir, a.Config.CategoriesDir, a.Config.PresetsDir},
		watch.WithExtensions(exts...),
		watch.WithDebounce(WatchDebounce),
		watch.WithLogger(a.Logger),
	)
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	printSystemMessage(a.Out, "Watching %s", a.Config.DataFolder)
	runWatchIteration(ctx, a, opts)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			printSystemMessage(a.Out, "Changed: %s", path)
			runWatchIteration(ctx, a, opts)
		}
	}
}

// runWatchIteration runs one validation pass. Failures are reported, not
// returned, so the loop keeps going.
func runWatchIteration(ctx context.Context, a *App, opts ValidateOptions) {
	err := RunValidate(ctx, a, opts)
	switch {
	case err == nil:
		printSystemMessage(a.Out, "All presets valid.")
	case errors.Is(err, ErrValidationFailed):
		printSystemMessage(a.Out, "Some presets need attention.")
	case IsInterrupted(err):
	default:
		a.Logger.Error("validation run failed", "error", err)
		printSystemMessage(a.Out, "Run failed: %v", err)
	}
}
