// Package report renders validation, catalog and output-status reports for
// the terminal.
package report

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer with automatic light/dark styling.
func NewRenderer() Renderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return Plain
	}
	return r.Render
}

// Plain returns markdown unchanged.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// ForStdout picks the glamour renderer when stdout is a terminal and Plain
// otherwise, so piped output stays greppable.
func ForStdout() Renderer {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return NewRenderer()
	}
	return Plain
}
