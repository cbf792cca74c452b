package domain

import "fmt"

// Gender classifies sliders and presets. Catalog entries are always Male or
// Female; presets may also be GenderUnknown when hits are tied.
type Gender int

const (
	GenderUnknown Gender = -1
	GenderMale    Gender = 0
	GenderFemale  Gender = 1
)

// Genders lists the catalog genders in lookup order.
var Genders = [2]Gender{GenderMale, GenderFemale}

// Valid reports whether g is one of the catalog genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	case GenderUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("gender(%d)", int(g))
	}
}

// ParseGender accepts the numeric form ("0", "1", "-1") or the names
// returned by String.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "0", "male", "m":
		return GenderMale, nil
	case "1", "female", "f":
		return GenderFemale, nil
	case "-1", "unknown", "any", "":
		return GenderUnknown, nil
	}
	return GenderUnknown, fmt.Errorf("invalid gender %q", s)
}

// SliderDescriptor describes one slider from a slider source file.
// MorphKey is the join key against MorphChannel.Name.
type SliderDescriptor struct {
	Name       string  `json:"name" yaml:"name"`
	MorphKey   string  `json:"morph" yaml:"morph"`
	Minimum    float64 `json:"minimum" yaml:"minimum"`
	Maximum    float64 `json:"maximum" yaml:"maximum"`
	Interval   float64 `json:"interval" yaml:"interval"`
	Gender     Gender  `json:"gender" yaml:"gender"`
	SourcePath string  `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// CategoryEntry maps a morph key to its display name inside a category.
type CategoryEntry struct {
	MorphKey    string `json:"morph" yaml:"morph" mapstructure:"morph"`
	DisplayName string `json:"display_name" yaml:"display_name" mapstructure:"display_name"`
}

// SliderCategory groups morph keys under a display category.
type SliderCategory struct {
	SourcePath   string          `json:"source_path,omitempty" yaml:"source_path,omitempty" mapstructure:"source_path"`
	CategoryName string          `json:"name" yaml:"name" mapstructure:"name"`
	Entries      []CategoryEntry `json:"entries" yaml:"entries" mapstructure:"entries"`
}

// DecoratedSlider is a descriptor placed in a display category.
type DecoratedSlider struct {
	SliderDescriptor
	Category    string `json:"category"`
	DisplayName string `json:"display_name"`
}

// Slider is a named value. Values are signed fractions, not percentages.
type Slider struct {
	Name  string  `json:"name" mapstructure:"name"`
	Value float64 `json:"value" mapstructure:"value"`
}
