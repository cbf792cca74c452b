package sources

import (
	"fmt"
	"os"

	"github.com/aretw0/bodygen/pkg/domain"
)

// DataExts are the extensions read for category and preset files.
var DataExts = []string{".yaml", ".yml", ".json"}

// ParseCategories decodes one category file.
func ParseCategories(data []byte, path string) ([]domain.SliderCategory, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var out []domain.SliderCategory
	for i, rec := range listUnder(doc, "categories", "SliderCategories") {
		normaliseCategory(rec)
		var cat domain.SliderCategory
		if err := decodeRecord(rec, &cat); err != nil {
			return nil, fmt.Errorf("%s: category %d: %w", path, i, err)
		}
		if cat.CategoryName == "" {
			continue
		}
		cat.SourcePath = path
		out = append(out, cat)
	}
	return out, nil
}

// LoadCategories reads every category file in dir, in name order.
func LoadCategories(dir string) ([]domain.SliderCategory, error) {
	paths, err := listFiles(dir, DataExts...)
	if err != nil {
		return nil, err
	}
	var out []domain.SliderCategory
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		cats, err := ParseCategories(data, p)
		if err != nil {
			return nil, err
		}
		out = append(out, cats...)
	}
	return out, nil
}

// normaliseCategory accepts the BodySlide shape, where entries are listed under
// "Slider" as {name, displayname}, alongside the native {morph, display_name}.
func normaliseCategory(rec any) {
	m, ok := rec.(map[string]any)
	if !ok {
		return
	}
	entries, has := m["entries"]
	if !has {
		entries = m["Slider"]
	}
	list := asList(entries)
	for _, e := range list {
		em, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := em["morph"]; !ok {
			em["morph"] = em["name"]
		}
		if _, ok := em["display_name"]; !ok {
			if dn, ok := em["displayname"]; ok {
				em["display_name"] = dn
			}
		}
	}
	m["entries"] = list
}
