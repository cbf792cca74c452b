package domain

// MorphEntry is a single sparse vertex displacement.
// The deltas are raw integers; the effective offset is delta * channel scale.
type MorphEntry struct {
	Index uint16 `json:"index" cbor:"1,keyasint"`
	DX    int16  `json:"dx" cbor:"2,keyasint"`
	DY    int16  `json:"dy" cbor:"3,keyasint"`
	DZ    int16  `json:"dz" cbor:"4,keyasint"`
}

// MorphChannel is one named displacement field.
type MorphChannel struct {
	Name    string       `json:"name" cbor:"1,keyasint"`
	Scale   float32      `json:"scale" cbor:"2,keyasint"`
	Entries []MorphEntry `json:"entries" cbor:"3,keyasint"`
}

// TriFile is a decoded morph-target file. It is never mutated after decoding.
type TriFile struct {
	SetName string         `json:"set_name" cbor:"1,keyasint"`
	Morphs  []MorphChannel `json:"morphs" cbor:"2,keyasint"`
}

// Channel returns the first channel with the given name.
func (t *TriFile) Channel(name string) (*MorphChannel, bool) {
	for i := range t.Morphs {
		if t.Morphs[i].Name == name {
			return &t.Morphs[i], true
		}
	}
	return nil, false
}

// MaxIndex returns the highest vertex index referenced by any channel, or -1 if
// the file has no entries. A mesh needs at least MaxIndex()+1 vertices.
func (t *TriFile) MaxIndex() int {
	highest := -1
	for _, m := range t.Morphs {
		for _, e := range m.Entries {
			if int(e.Index) > highest {
				highest = int(e.Index)
			}
		}
	}
	return highest
}

// EntryCount returns the total number of sparse entries across all channels.
func (t *TriFile) EntryCount() int {
	n := 0
	for _, m := range t.Morphs {
		n += len(m.Entries)
	}
	return n
}
