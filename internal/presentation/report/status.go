package report

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/bodygen/internal/output"
	"github.com/aretw0/bodygen/pkg/template"
)

// Targets writes one colored line per output target: green when a file is
// up-to-date, yellow when it would be written.
func Targets(w io.Writer, statuses []output.TargetStatus) {
	p := termenv.ColorProfile()
	paint := func(s output.FileStatus) termenv.Style {
		color := "#facc15"
		if s == output.StatusUpToDate {
			color = "#4ade80"
		}
		return termenv.String(string(s)).Foreground(p.Color(color))
	}

	for _, s := range statuses {
		name := s.Name
		if s.Source {
			name += " (source)"
		}
		fmt.Fprintf(w, "%-32s %s: %s  %s: %s\n",
			name,
			template.TemplatesFile, paint(s.Templates),
			template.MorphsFile, paint(s.Morphs))
	}
}
