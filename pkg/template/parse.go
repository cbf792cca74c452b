package template

import (
	"bufio"
	"strings"
)

const directive = "#morphs="

// Parse reads a templates text into a Document.
func Parse(text string) (*Document, error) {
	doc := &Document{}
	found := false
	current := ""

	err := scan(text, func(n int, line string) error {
		if strings.HasPrefix(line, directive) {
			key := strings.TrimSpace(strings.TrimPrefix(line, directive))
			if key == "" {
				return &GrammarError{Kind: ErrEmptyMorphsValue, Line: n}
			}
			current = key
			found = true
			return nil
		}
		if strings.HasPrefix(line, "#") || !found {
			return nil
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if name == "" || value == "" {
			return nil
		}
		doc.Append(current, name, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &GrammarError{Kind: ErrNoMorphsDirective}
	}
	return doc, nil
}

// Validate checks that text has at least one "#morphs=" directive and that
// none of them is empty. It does not build a document.
func Validate(text string) error {
	found := false
	err := scan(text, func(n int, line string) error {
		if !strings.HasPrefix(line, directive) {
			return nil
		}
		if strings.TrimSpace(strings.TrimPrefix(line, directive)) == "" {
			return &GrammarError{Kind: ErrEmptyMorphsValue, Line: n}
		}
		found = true
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return &GrammarError{Kind: ErrNoMorphsDirective}
	}
	return nil
}

// scan calls fn with each trimmed, non-blank line and its 1-based number.
func scan(text string, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	return sc.Err()
}
