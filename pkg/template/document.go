package template

import "strings"

// Entry is one named descriptor under a rule key.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Document maps rule keys to their entries, remembering the order in which
// keys first appeared. The zero value is an empty document ready to use.
type Document struct {
	keys    []string
	entries map[string][]Entry
}

// Append adds an entry under key, creating the key if needed.
func (d *Document) Append(key, name, value string) {
	if d.entries == nil {
		d.entries = make(map[string][]Entry)
	}
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = append(d.entries[key], Entry{Name: name, Value: value})
}

// Keys returns the rule keys in document order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Entries returns a copy of the entries for key.
func (d *Document) Entries(key string) []Entry {
	return append([]Entry(nil), d.entries[key]...)
}

// Len returns the number of rule keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// Equal reports whether both documents hold the same keys in the same order
// with the same ordered entries.
func (d *Document) Equal(o *Document) bool {
	if len(d.keys) != len(o.keys) {
		return false
	}
	for i, k := range d.keys {
		if o.keys[i] != k {
			return false
		}
		a, b := d.entries[k], o.entries[k]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// AtomicRules splits a compound rule key on ";" and drops empty parts.
func AtomicRules(key string) []string {
	parts := strings.Split(key, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Named is a preset name and its descriptor.
type Named struct {
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
}

// RuleGroup assigns a list of presets to one or more rules.
type RuleGroup struct {
	Rules   []string `json:"rules"`
	Presets []Named  `json:"presets"`
}

// FromGroups builds a document with one compound key per group.
// Groups without rules or presets are skipped.
func FromGroups(groups []RuleGroup) *Document {
	doc := &Document{}
	for _, g := range groups {
		key := strings.Join(g.Rules, ";")
		if strings.TrimSpace(key) == "" {
			continue
		}
		for _, p := range g.Presets {
			doc.Append(key, p.Name, p.Descriptor)
		}
	}
	return doc
}
