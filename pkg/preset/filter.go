package preset

import (
	"strings"

	"github.com/aretw0/bodygen/pkg/domain"
)

// Filter selects validated presets for listing.
type Filter struct {
	// Gender restricts results to one gender; GenderUnknown matches any.
	Gender domain.Gender
	// Query is a case-insensitive substring of the preset name.
	Query string
}

// Match reports whether vp passes the filter.
func (f Filter) Match(vp domain.ValidatedPreset) bool {
	if f.Gender != domain.GenderUnknown && vp.Gender != f.Gender {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(vp.Name), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// Apply returns the presets that match, preserving order.
func (f Filter) Apply(presets []domain.ValidatedPreset) []domain.ValidatedPreset {
	out := make([]domain.ValidatedPreset, 0, len(presets))
	for _, vp := range presets {
		if f.Match(vp) {
			out = append(out, vp)
		}
	}
	return out
}
