package preset

import "github.com/aretw0/bodygen/pkg/domain"

// Status describes how a validated preset relates to previously imported ones.
type Status string

const (
	StatusImported    Status = "imported"
	StatusNeedsUpdate Status = "needs update"
	StatusNotImported Status = "not imported"
)

// ImportStatus compares vp against descriptors already imported, keyed by
// preset name.
func ImportStatus(imported map[string]string, vp domain.ValidatedPreset) Status {
	desc, ok := imported[vp.Name]
	switch {
	case !ok:
		return StatusNotImported
	case desc == vp.Descriptor:
		return StatusImported
	default:
		return StatusNeedsUpdate
	}
}
