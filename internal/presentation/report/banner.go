package report

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the bodygen banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _               _                        ", "#f9a8d4"},
		{"| |__   ___   __| |_   _  __ _  ___ _ __  ", "#f472b6"},
		{"| '_ \\ / _ \\ / _` | | | |/ _` |/ _ \\ '_ \\ ", "#ec4899"},
		{"| |_) | (_) | (_| | |_| | (_| |  __/ | | |", "#db2777"},
		{"|_.__/ \\___/ \\__,_|\\__, |\\__, |\\___|_| |_|", "#be185d"},
		{"                   |___/ |___/            ", "#9d174d"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
