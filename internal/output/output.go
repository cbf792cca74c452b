// Package output finds the per-plugin BodyGen folders and writes the formatted
// templates.ini / morphs.ini pair into each of them.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/bodygen/pkg/template"
)

// PluginExts are the folder suffixes treated as plugin targets.
var PluginExts = []string{".esm", ".esp", ".esl"}

// Target is one plugin folder under the BodyGen output root.
type Target struct {
	Name string `json:"name"`
	Path string `json:"path"`
	// Source marks the folder the templates were read from, if any.
	Source bool `json:"source"`
}

// FileStatus describes what Write would do to one file.
type FileStatus string

const (
	StatusUpToDate   FileStatus = "up-to-date"
	StatusWillUpdate FileStatus = "will be updated"
	StatusWillCreate FileStatus = "will be created"
)

// TargetStatus is the per-file status of one target.
type TargetStatus struct {
	Target
	Templates FileStatus `json:"templates"`
	Morphs    FileStatus `json:"morphs"`
}

// UpToDate reports whether neither file would change.
func (s TargetStatus) UpToDate() bool {
	return s.Templates == StatusUpToDate && s.Morphs == StatusUpToDate
}

// Targets lists plugin folders. from is either the output root or the path
// of an existing templates.ini inside one plugin folder; in that case the
// root is the folder's parent and that folder is marked as the source.
func Targets(from string) ([]Target, error) {
	root, source := from, ""
	if strings.EqualFold(filepath.Ext(from), ".ini") {
		source = filepath.Dir(from)
		root = filepath.Dir(source)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var out []Target
	for _, e := range entries {
		if !e.IsDir() || !slices.Contains(PluginExts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		p := filepath.Join(root, e.Name())
		out = append(out, Target{
			Name:   e.Name(),
			Path:   p,
			Source: source != "" && filepath.Clean(source) == p,
		})
	}
	return out, nil
}

// Status compares the formatted output with what is on disk for each target.
func Status(targets []Target, out template.Output) ([]TargetStatus, error) {
	res := make([]TargetStatus, 0, len(targets))
	for _, t := range targets {
		ts := TargetStatus{Target: t}
		var err error
		if ts.Templates, err = fileStatus(filepath.Join(t.Path, template.TemplatesFile), out.Templates); err != nil {
			return nil, err
		}
		if ts.Morphs, err = fileStatus(filepath.Join(t.Path, template.MorphsFile), out.Morphs); err != nil {
			return nil, err
		}
		res = append(res, ts)
	}
	return res, nil
}

func fileStatus(path, want string) (FileStatus, error) {
	have, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusWillCreate, nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.Equal(have, []byte(want)) {
		return StatusUpToDate, nil
	}
	return StatusWillUpdate, nil
}

// Write stores both files in every target and returns how many targets were
// written. It stops at the first failure.
func Write(targets []Target, out template.Output) (int, error) {
	count := 0
	for _, t := range targets {
		if err := os.WriteFile(filepath.Join(t.Path, template.TemplatesFile), []byte(out.Templates), 0o644); err != nil {
			return count, fmt.Errorf("writing %s: %w", t.Name, err)
		}
		if err := os.WriteFile(filepath.Join(t.Path, template.MorphsFile), []byte(out.Morphs), 0o644); err != nil {
			return count, fmt.Errorf("writing %s: %w", t.Name, err)
		}
		count++
	}
	return count, nil
}
