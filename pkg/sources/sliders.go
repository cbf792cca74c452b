package sources

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/aretw0/bodygen/pkg/catalog"
	"github.com/aretw0/bodygen/pkg/domain"
)

// SliderExts are the extensions read by LoadSliders.
var SliderExts = []string{".json", ".jsonc"}

// ParseSliders decodes one slider file. Records keep their own gender; the
// path is attached to every descriptor.
func ParseSliders(data []byte, path string) ([]domain.SliderDescriptor, error) {
	var records []domain.SliderDescriptor
	if err := json.Unmarshal(jsonc.ToJSON(data), &records); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range records {
		records[i].SourcePath = path
	}
	return records, nil
}

// GroupByGender splits the descriptors of one file into catalog sources, one
// per gender, in male, female order. Records with any other gender are dropped.
func GroupByGender(path string, descriptors []domain.SliderDescriptor) []catalog.Source {
	var out []catalog.Source
	for _, g := range domain.Genders {
		var ds []domain.SliderDescriptor
		for _, d := range descriptors {
			if d.Gender == g {
				ds = append(ds, d)
			}
		}
		if len(ds) > 0 {
			out = append(out, catalog.Source{Path: path, Gender: g, Descriptors: ds})
		}
	}
	return out
}

// ReadSliderFile reads and parses one slider file into catalog sources.
func ReadSliderFile(path string) ([]catalog.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ds, err := ParseSliders(data, path)
	if err != nil {
		return nil, err
	}
	return GroupByGender(path, ds), nil
}

// LoadSliders reads every slider file in dir, in name order.
func LoadSliders(dir string) ([]catalog.Source, error) {
	paths, err := listFiles(dir, SliderExts...)
	if err != nil {
		return nil, err
	}
	var out []catalog.Source
	for _, p := range paths {
		srcs, err := ReadSliderFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, srcs...)
	}
	return out, nil
}
