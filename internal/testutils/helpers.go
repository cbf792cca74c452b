// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupDataFolder creates a temporary game data folder with empty BodySlide
// slider, category and preset folders and returns its absolute path.
// It fails the test immediately on error.
func SetupDataFolder(t *testing.T) string {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for _, sub := range []string{"Sliders", "SliderCategories", "SliderPresets"} {
		require.NoError(t, os.MkdirAll(BodySlide(dir, sub), 0o755), "Failed to create %s", sub)
	}
	return dir
}

// BodySlide joins parts under the data folder's Tools/BodySlide directory.
func BodySlide(dir string, parts ...string) string {
	return filepath.Join(append([]string{dir, "Tools", "BodySlide"}, parts...)...)
}

// WriteFile writes content to path, creating parent folders, and returns path.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
