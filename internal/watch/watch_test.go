package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/bodygen/internal/watch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatch_ReportsRelevantChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	w := watch.New([]string{dir, ""},
		watch.WithExtensions(".yaml"),
		watch.WithDebounce(50*time.Millisecond),
	)
	events, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1"), 0o644))

	select {
	case got := <-events:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	cancel()
	for range events {
	}
}

func TestWatch_NoDirectories(t *testing.T) {
	w := watch.New([]string{filepath.Join(t.TempDir(), "missing")})
	_, err := w.Watch(context.Background())
	assert.Error(t, err)
}
