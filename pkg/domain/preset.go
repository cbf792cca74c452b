package domain

// PresetGroup is a named group a preset belongs to.
type PresetGroup struct {
	Name string `json:"name" mapstructure:"name"`
}

// RawPreset is a preset record as delivered by the ingestion boundary.
type RawPreset struct {
	Name    string        `json:"name" mapstructure:"name"`
	Set     string        `json:"set" mapstructure:"set"`
	Groups  []PresetGroup `json:"groups" mapstructure:"groups"`
	Sliders []Slider      `json:"sliders" mapstructure:"sliders"`
}

// ValidatedPreset is the outcome of validating a slider list against a catalog.
// Each validation produces a new value; it is never updated in place.
type ValidatedPreset struct {
	Name         string        `json:"name"`
	Set          string        `json:"set,omitempty"`
	Groups       []PresetGroup `json:"groups,omitempty"`
	RawSliders   []Slider      `json:"raw_sliders"`
	CleanSliders []Slider      `json:"clean_sliders"`
	Errors       []string      `json:"errors"`
	Warnings     []string      `json:"warnings"`
	Gender       Gender        `json:"gender"`
	Descriptor   string        `json:"descriptor"`
	Valid        bool          `json:"valid"`
}
