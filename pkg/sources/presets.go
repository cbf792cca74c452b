package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/bodygen/pkg/domain"
)

// PresetOptions controls how preset slider values are read.
type PresetOptions struct {
	// Percent divides values by 100 (BodySlide stores 0..100 percentages).
	Percent bool
	// Size keeps only sliders with this size ("big" or "small"). Sliders with
	// no size are always kept. Empty keeps every slider.
	Size string
}

// DefaultPresetOptions matches BodySlide's on-disk presets.
var DefaultPresetOptions = PresetOptions{Percent: true, Size: "big"}

type presetRecord struct {
	Name      string `mapstructure:"name"`
	Set       string `mapstructure:"set"`
	Group     []domain.PresetGroup
	SetSlider []sliderRecord
}

type sliderRecord struct {
	Name  string  `mapstructure:"name"`
	Size  string  `mapstructure:"size"`
	Value float64 `mapstructure:"value"`
}

// PresetFile is the outcome of reading one preset file. Exactly one of
// Presets or Err is meaningful.
type PresetFile struct {
	Path    string             `json:"path"`
	Presets []domain.RawPreset `json:"presets,omitempty"`
	Err     error              `json:"-"`
}

// Filename returns the base name of the file.
func (f PresetFile) Filename() string {
	return filepath.Base(f.Path)
}

// ParsePresets decodes one preset file. Records without SetSlider are skipped.
func ParsePresets(data []byte, path string, opts PresetOptions) ([]domain.RawPreset, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if m, ok := doc.(map[string]any); ok {
		if inner, ok := m["SliderPresets"]; ok {
			doc = inner
		}
	}

	var out []domain.RawPreset
	for i, rec := range listUnder(doc, "presets", "Preset") {
		m, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: preset %d: expected a mapping, got %T", path, i, rec)
		}
		if _, ok := m["SetSlider"]; !ok {
			continue
		}
		m["Group"] = asList(m["Group"])
		m["SetSlider"] = asList(m["SetSlider"])

		var r presetRecord
		if err := decodeRecord(m, &r); err != nil {
			return nil, fmt.Errorf("%s: preset %d: %w", path, i, err)
		}
		out = append(out, r.toRaw(opts))
	}
	return out, nil
}

func (r presetRecord) toRaw(opts PresetOptions) domain.RawPreset {
	p := domain.RawPreset{
		Name:    r.Name,
		Set:     r.Set,
		Groups:  r.Group,
		Sliders: make([]domain.Slider, 0, len(r.SetSlider)),
	}
	if p.Groups == nil {
		p.Groups = []domain.PresetGroup{}
	}
	for _, s := range r.SetSlider {
		if opts.Size != "" && s.Size != "" && !strings.EqualFold(s.Size, opts.Size) {
			continue
		}
		v := s.Value
		if opts.Percent {
			v /= 100
		}
		p.Sliders = append(p.Sliders, domain.Slider{Name: s.Name, Value: v})
	}
	return p
}

// ReadPresetFile reads one preset file. Parse failures are reported on the
// result rather than returned so directory scans can continue.
func ReadPresetFile(path string, opts PresetOptions) PresetFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return PresetFile{Path: path, Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	presets, err := ParsePresets(data, path, opts)
	if err != nil {
		return PresetFile{Path: path, Err: err}
	}
	return PresetFile{Path: path, Presets: presets}
}

// PresetPaths lists the preset files in dir, in name order.
func PresetPaths(dir string) ([]string, error) {
	return listFiles(dir, DataExts...)
}
