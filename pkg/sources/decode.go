package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// decodeDocument parses YAML (a superset of JSON) into generic values.
func decodeDocument(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// asList normalises a value that may be a single object or a list of them.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// listUnder returns the records of a document that is either a bare list or a
// map holding the list under one of keys.
func listUnder(doc any, keys ...string) []any {
	if m, ok := doc.(map[string]any); ok {
		for _, k := range keys {
			if v, ok := m[k]; ok {
				return asList(v)
			}
		}
		return []any{m}
	}
	return asList(doc)
}

func decodeRecord(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// listFiles returns the files in dir with one of exts, sorted by name.
// A missing directory yields no files.
func listFiles(dir string, exts ...string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(e.Name()))) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
