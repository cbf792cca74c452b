package preset

import (
	"fmt"
	"math"

	"github.com/aretw0/bodygen/pkg/domain"
)

// SliderLookup resolves a morph key to its descriptor.
// *catalog.Catalog satisfies it.
type SliderLookup interface {
	Lookup(morphKey string) (domain.SliderDescriptor, bool)
}

// Validate cleans sliders against the catalog.
func Validate(cat SliderLookup, sliders []domain.Slider) domain.ValidatedPreset {
	vp := domain.ValidatedPreset{
		RawSliders:   append([]domain.Slider{}, sliders...),
		CleanSliders: []domain.Slider{},
		Errors:       []string{},
		Warnings:     []string{},
	}

	var hits [2]int
	for _, raw := range sliders {
		d, ok := cat.Lookup(raw.Name)
		if !ok {
			vp.Errors = append(vp.Errors, fmt.Sprintf("Slider %q is not supported. Removed.", raw.Name))
			continue
		}

		value := raw.Value
		switch {
		case math.IsNaN(value) || value < d.Minimum:
			vp.Warnings = append(vp.Warnings, fmt.Sprintf(
				"Slider %q value %s is less than minimum allowed. Corrected to %s.",
				raw.Name, FormatValue(value), FormatValue(d.Minimum)))
			value = d.Minimum
		case value > d.Maximum:
			vp.Warnings = append(vp.Warnings, fmt.Sprintf(
				"Slider %q value %s is greater than maximum allowed. Corrected to %s.",
				raw.Name, FormatValue(value), FormatValue(d.Maximum)))
			value = d.Maximum
		}

		vp.CleanSliders = append(vp.CleanSliders, domain.Slider{Name: raw.Name, Value: value})
		if d.Gender.Valid() {
			hits[d.Gender]++
		}
	}

	switch {
	case hits[domain.GenderMale] > hits[domain.GenderFemale]:
		vp.Gender = domain.GenderMale
	case hits[domain.GenderFemale] > hits[domain.GenderMale]:
		vp.Gender = domain.GenderFemale
	default:
		vp.Gender = domain.GenderUnknown
	}

	vp.Valid = len(vp.Errors) == 0
	vp.Descriptor = FormatDescriptor(vp.CleanSliders)
	return vp
}

// ValidatePreset validates a whole preset record, keeping its name, set and groups.
func ValidatePreset(cat SliderLookup, p domain.RawPreset) domain.ValidatedPreset {
	vp := Validate(cat, p.Sliders)
	vp.Name = p.Name
	vp.Set = p.Set
	if len(p.Groups) > 0 {
		vp.Groups = append([]domain.PresetGroup{}, p.Groups...)
	}
	return vp
}
