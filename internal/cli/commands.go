package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/bodygen"
	"github.com/aretw0/bodygen/internal/config"
	"github.com/aretw0/bodygen/internal/indexer"
	"github.com/aretw0/bodygen/internal/output"
	"github.com/aretw0/bodygen/internal/presentation/report"
	"github.com/aretw0/bodygen/pkg/adapters/gltf"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/morph"
	"github.com/aretw0/bodygen/pkg/preset"
	"github.com/aretw0/bodygen/pkg/template"
)

// ErrValidationFailed is returned when a batch had invalid presets or
// unreadable files.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOptions drive RunValidate.
type ValidateOptions struct {
	Paths  []string
	Filter preset.Filter
	JSON   bool
}

// RunValidate validates the given preset files, or the whole presets folder,
// and prints a report.
func RunValidate(ctx context.Context, a *App, opts ValidateOptions) error {
	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	ix := a.Indexer(cat, nil)

	var results []indexer.PresetResult
	if len(opts.Paths) > 0 {
		results, err = ix.ValidateFiles(ctx, opts.Paths)
	} else {
		results, err = ix.ScanPresets(ctx, a.Config.PresetsDir)
	}
	if err != nil {
		return err
	}

	if opts.JSON {
		if err := writeJSON(a.Out, presetResultsView(results, opts.Filter)); err != nil {
			return err
		}
	} else if err := render(a.Out, report.Presets(results, opts.Filter)); err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil || r.Invalid() > 0 {
			return ErrValidationFailed
		}
	}
	return nil
}

type presetFileView struct {
	Path    string                   `json:"path"`
	Error   string                   `json:"error,omitempty"`
	Presets []domain.ValidatedPreset `json:"presets"`
}

func presetResultsView(results []indexer.PresetResult, filter preset.Filter) []presetFileView {
	out := make([]presetFileView, 0, len(results))
	for _, r := range results {
		v := presetFileView{Path: r.Path, Presets: filter.Apply(r.Presets)}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		out = append(out, v)
	}
	return out
}

// RunSliders prints the catalog for one gender.
func RunSliders(a *App, g domain.Gender, asJSON bool) error {
	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(a.Out, cat.ByGender(g))
	}
	return render(a.Out, report.Sliders(cat, g))
}

// RunDecode decodes TRI files through the engine cache and prints a summary.
func RunDecode(ctx context.Context, a *App, paths []string, asJSON bool) error {
	cache, err := a.NewCache()
	if err != nil {
		return err
	}
	eng, err := bodygen.New(bodygen.WithTriCache(cache), bodygen.WithLogger(a.Logger))
	if err != nil {
		return err
	}

	results, err := a.Indexer(nil, eng).DecodeFiles(ctx, paths)
	if err != nil {
		return err
	}

	if asJSON {
		type view struct {
			Path  string          `json:"path"`
			Error string          `json:"error,omitempty"`
			Tri   *domain.TriFile `json:"tri,omitempty"`
		}
		out := make([]view, 0, len(results))
		for _, r := range results {
			v := view{Path: r.Path, Tri: r.Tri}
			if r.Err != nil {
				v.Error = r.Err.Error()
			}
			out = append(out, v)
		}
		if err := writeJSON(a.Out, out); err != nil {
			return err
		}
	} else if err := render(a.Out, report.Tris(results)); err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.Path, r.Err)
		}
	}
	return nil
}

// RunFormat formats a templates file ("-" reads stdin). With checkOnly it
// only validates.
func RunFormat(a *App, path string, checkOnly, asJSON bool) error {
	text, err := readInput(path)
	if err != nil {
		return err
	}
	if checkOnly {
		if err := template.Validate(text); err != nil {
			return err
		}
		printSystemMessage(a.Out, "%s is valid.", displayName(path))
		return nil
	}

	out, err := template.FormatText(text)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(a.Out, out)
	}
	fmt.Fprintf(a.Out, "; %s\n%s\n\n; %s\n%s\n", template.TemplatesFile, out.Templates, template.MorphsFile, out.Morphs)
	return nil
}

// WriteOptions drive RunWrite.
type WriteOptions struct {
	// Source is the templates.ini to format.
	Source string
	// Root is the output root holding plugin folders. Empty means the parent
	// of the source's folder.
	Root   string
	DryRun bool
}

// RunWrite formats the source templates and writes templates.ini and
// morphs.ini into every plugin folder, printing per-target status first.
func RunWrite(a *App, opts WriteOptions) error {
	text, err := readInput(opts.Source)
	if err != nil {
		return err
	}
	out, err := template.FormatText(text)
	if err != nil {
		return err
	}

	from := opts.Root
	if from == "" {
		from = opts.Source
	}
	targets, err := output.Targets(from)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		printSystemMessage(a.Out, "No plugin folders found under %s.", from)
		return nil
	}

	statuses, err := output.Status(targets, out)
	if err != nil {
		return err
	}
	report.Targets(a.Out, statuses)

	if opts.DryRun {
		return nil
	}
	n, err := output.Write(targets, out)
	if err != nil {
		return err
	}
	a.Logger.Info("templates written", "targets", n)
	printSystemMessage(a.Out, "Wrote %d plugin folder(s).", n)
	return nil
}

// PreviewOptions drive RunPreview.
type PreviewOptions struct {
	Body       string
	Descriptor string
	Recenter   bool
	// Out is a .glb path to write the morphed mesh to. Empty prints a summary only.
	Out string
}

// RunPreview applies a descriptor to a configured body.
func RunPreview(ctx context.Context, a *App, opts PreviewOptions) error {
	eng, err := a.Engine(ctx)
	if err != nil {
		return err
	}
	sliders, err := preset.ParseDescriptor(opts.Descriptor)
	if err != nil {
		return err
	}
	positions, err := eng.Preview(ctx, opts.Body, sliders)
	if err != nil {
		return err
	}
	if opts.Recenter {
		positions = morph.Recenter(positions)
	}

	if box, ok := morph.Bounds(positions); ok {
		size := box.Size()
		printSystemMessage(a.Out, "%s: %d vertices, size %.3f x %.3f x %.3f",
			opts.Body, len(positions)/3, size[0], size[1], size[2])
	}
	if opts.Out == "" {
		return nil
	}

	body, ok := a.bodyConfig(opts.Body)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrBodyNotFound, opts.Body)
	}
	mesh, err := gltf.Open(a.resolve(body.Mesh))
	if err != nil {
		return err
	}
	if err := mesh.WritePositions(ctx, positions); err != nil {
		return err
	}
	if err := mesh.SaveBinary(opts.Out); err != nil {
		return err
	}
	printSystemMessage(a.Out, "Saved %s.", opts.Out)
	return nil
}

func (a *App) bodyConfig(name string) (config.BodyConfig, bool) {
	for _, b := range a.Config.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return config.BodyConfig{}, false
}

func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", displayName(path), err)
	}
	return string(data), nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

func render(w io.Writer, markdown string) error {
	r := report.Plain
	if w == os.Stdout {
		r = report.ForStdout()
	}
	out, err := r(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.TrimRight(out, "\n")+"\n")
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
