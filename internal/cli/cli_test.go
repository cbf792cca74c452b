package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bodygen/internal/testutils"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/preset"
	"github.com/aretw0/bodygen/pkg/template"
	"github.com/aretw0/bodygen/pkg/tri"
)

const testSliders = `[
	// torso
	{"name": "Butt", "morph": "BigButt", "minimum": -1, "maximum": 1, "interval": 0.01, "gender": 1},
	{"name": "Waist", "morph": "Waist", "minimum": -1, "maximum": 1, "interval": 0.01, "gender": 1},
]`

const testCategories = `
categories:
  - name: Torso
    entries:
      - morph: BigButt
        display_name: Butt Size
`

const goodPresets = `
SliderPresets:
  Preset:
    - name: Curvy
      set: CBBE Body
      SetSlider:
        - {name: BigButt, size: big, value: 100}
        - {name: Waist, size: big, value: -20}
`

const badPresets = `
SliderPresets:
  Preset:
    - name: Alien
      set: CBBE Body
      SetSlider:
        - {name: Antennae, size: big, value: 100}
`

var (
	writeFile = testutils.WriteFile
	bodySlide = testutils.BodySlide
)

// newTestApp lays out a data folder and returns an App pointed at it with
// output captured.
func newTestApp(t *testing.T) (*App, *bytes.Buffer, string) {
	t.Helper()
	dir := testutils.SetupDataFolder(t)
	writeFile(t, bodySlide(dir, "Sliders", "cbbe.json"), testSliders)
	writeFile(t, bodySlide(dir, "SliderCategories", "cbbe.yaml"), testCategories)
	writeFile(t, bodySlide(dir, "SliderPresets", "good.yaml"), goodPresets)

	app, err := NewApp(Options{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	var out bytes.Buffer
	app.Out = &out
	app.Err = &out
	return app, &out, dir
}

func TestNewApp(t *testing.T) {
	app, _, dir := newTestApp(t)
	assert.Equal(t, dir, app.Config.DataFolder)
	assert.Equal(t, bodySlide(dir, "Sliders"), app.Config.SlidersDir)
	assert.Equal(t, bodySlide(dir, "SliderPresets"), app.Config.PresetsDir)
	assert.True(t, app.PresetOptions().Percent)
	assert.Equal(t, "big", app.PresetOptions().Size)

	cat, err := app.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func TestNewApp_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bodygen.yaml"), "cache:\n  backend: carrier-pigeon\n")

	_, err := NewApp(Options{Dir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")

	writeFile(t, filepath.Join(dir, "bodygen.yaml"), "log_level: loud\n")
	_, err = NewApp(Options{Dir: dir})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(true, "")
	require.NoError(t, err)
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	l, err = NewLogger(false, "")
	require.NoError(t, err)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))

	l, err = NewLogger(false, "warn")
	require.NoError(t, err)
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))

	_, err = NewLogger(false, "shouty")
	assert.Error(t, err)
}

func TestRunValidate(t *testing.T) {
	app, out, dir := newTestApp(t)

	require.NoError(t, RunValidate(context.Background(), app, ValidateOptions{Filter: preset.Filter{Gender: domain.GenderUnknown}}))
	assert.Contains(t, out.String(), "good.yaml")
	assert.Contains(t, out.String(), "`Curvy=BigButt@1,Waist@-0.2`")

	writeFile(t, bodySlide(dir, "SliderPresets", "bad.yaml"), badPresets)
	out.Reset()
	err := RunValidate(context.Background(), app, ValidateOptions{Filter: preset.Filter{Gender: domain.GenderUnknown}})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, out.String(), `Slider "Antennae" is not supported. Removed.`)
}

func TestRunValidate_JSON(t *testing.T) {
	app, out, dir := newTestApp(t)

	err := RunValidate(context.Background(), app, ValidateOptions{
		Paths:  []string{bodySlide(dir, "SliderPresets", "good.yaml")},
		Filter: preset.Filter{Gender: domain.GenderUnknown},
		JSON:   true,
	})
	require.NoError(t, err)

	var files []presetFileView
	require.NoError(t, json.Unmarshal(out.Bytes(), &files))
	require.Len(t, files, 1)
	require.Len(t, files[0].Presets, 1)
	assert.Equal(t, "Curvy", files[0].Presets[0].Name)
	assert.Equal(t, domain.GenderFemale, files[0].Presets[0].Gender)
}

func TestRunSliders(t *testing.T) {
	app, out, _ := newTestApp(t)

	require.NoError(t, RunSliders(app, domain.GenderFemale, false))
	assert.Contains(t, out.String(), "# Sliders (female)")
	assert.Contains(t, out.String(), "| Butt Size | BigButt |")

	out.Reset()
	require.NoError(t, RunSliders(app, domain.GenderFemale, true))
	var ds []domain.SliderDescriptor
	require.NoError(t, json.Unmarshal(out.Bytes(), &ds))
	assert.Len(t, ds, 2)
}

func TestRunFormat(t *testing.T) {
	app, out, dir := newTestApp(t)
	path := filepath.Join(dir, "templates.ini")
	writeFile(t, path, "#morphs=a.esm;b.esp\nP1=BigButt@1\n")

	require.NoError(t, RunFormat(app, path, false, false))
	assert.Contains(t, out.String(), "; morphs.ini\na.esm=P1\n\nb.esp=P1")

	out.Reset()
	require.NoError(t, RunFormat(app, path, true, false))
	assert.Contains(t, out.String(), "is valid")

	writeFile(t, path, "P1=BigButt@1\n")
	assert.ErrorIs(t, RunFormat(app, path, true, false), template.ErrNoMorphsDirective)
	assert.Error(t, RunFormat(app, filepath.Join(dir, "missing.ini"), false, false))
}

func TestRunWrite(t *testing.T) {
	app, out, dir := newTestApp(t)
	root := filepath.Join(dir, "BodyGen")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Other.esm"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-plugin"), 0o755))
	source := filepath.Join(root, "Mine.esp", "templates.ini")
	writeFile(t, source, "#morphs=Mine.esp\nP1=BigButt@1\n")

	require.NoError(t, RunWrite(app, WriteOptions{Source: source, DryRun: true}))
	assert.Contains(t, out.String(), "Other.esm")
	assert.NoFileExists(t, filepath.Join(root, "Other.esm", "morphs.ini"))

	out.Reset()
	require.NoError(t, RunWrite(app, WriteOptions{Source: source}))
	assert.Contains(t, out.String(), "Wrote 2 plugin folder(s).")

	data, err := os.ReadFile(filepath.Join(root, "Other.esm", "morphs.ini"))
	require.NoError(t, err)
	assert.Equal(t, "Mine.esp=P1", string(data))
	assert.NoFileExists(t, filepath.Join(root, "not-a-plugin", "morphs.ini"))
}

func TestRunDecode(t *testing.T) {
	app, out, dir := newTestApp(t)

	data, err := tri.Encode(&domain.TriFile{SetName: "CBBE", Morphs: []domain.MorphChannel{{
		Name: "BigButt", Scale: 0.01,
		Entries: []domain.MorphEntry{{Index: 4, DX: 1, DY: 2, DZ: 3}},
	}}})
	require.NoError(t, err)
	good := filepath.Join(dir, "CBBE.tri")
	writeFile(t, good, string(data))

	require.NoError(t, RunDecode(context.Background(), app, []string{good}, false))
	assert.Contains(t, out.String(), "| CBBE.tri | CBBE | 1 | 1 | 4 |")

	bad := filepath.Join(dir, "broken.tri")
	writeFile(t, bad, "not a tri file")
	out.Reset()
	err = RunDecode(context.Background(), app, []string{good, bad}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.tri")
	assert.Contains(t, out.String(), `"set_name": "CBBE"`)
}

func TestRunPreview_UnknownBody(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := RunPreview(context.Background(), app, PreviewOptions{Body: "cbbe", Descriptor: "BigButt@1"})
	assert.ErrorIs(t, err, domain.ErrBodyNotFound)
}

func TestWatchCatalog(t *testing.T) {
	app, _, dir := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng, err := app.Engine(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, eng.Catalog().Len())

	notified := make(chan string, 4)
	require.NoError(t, WatchCatalog(ctx, app, eng, func(p string) { notified <- p }))

	extra := bodySlide(dir, "Sliders", "extra.json")
	writeFile(t, extra, `[{"name": "Arms", "morph": "Arms", "minimum": 0, "maximum": 1, "gender": 0}]`)

	select {
	case p := <-notified:
		assert.Equal(t, extra, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notification")
	}
	assert.Equal(t, 3, eng.Catalog().Len())
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, HandleExecutionError(nil))
	assert.NoError(t, HandleExecutionError(context.Canceled))
	assert.ErrorIs(t, HandleExecutionError(ErrValidationFailed), ErrValidationFailed)
}

func TestSignalContext(t *testing.T) {
	sc := NewSignalContext(context.Background())
	assert.Nil(t, sc.Signal())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())

	var buf bytes.Buffer
	ReportSignal(&buf, nil)
	assert.Empty(t, buf.String())
	ReportSignal(&buf, os.Interrupt)
	assert.Equal(t, ">>> Interrupted.\n", buf.String())

	buf.Reset()
	ReportSignal(&buf, syscall.SIGTERM)
	assert.Equal(t, ">>> Terminated (terminated).\n", buf.String())
}
