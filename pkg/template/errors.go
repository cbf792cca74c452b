package template

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMorphsDirective matches a GrammarError for text with no "#morphs=" line.
	ErrNoMorphsDirective = errors.New("no morphs setting found")
	// ErrEmptyMorphsValue matches a GrammarError for a "#morphs=" line with no value.
	ErrEmptyMorphsValue = errors.New("morphs setting is empty")
)

// GrammarError is a fatal parse error for one text blob.
type GrammarError struct {
	Kind error
	// Line is the 1-based line number, zero when the error is not tied to a line.
	Line int
}

func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s in %s:%d", e.Kind, TemplatesFile, e.Line)
	}
	return fmt.Sprintf("%s in %s", e.Kind, TemplatesFile)
}

func (e *GrammarError) Is(target error) bool {
	return e.Kind == target
}

func (e *GrammarError) Unwrap() error {
	return e.Kind
}
