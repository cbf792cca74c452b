// Package morph displaces a flat vertex buffer by decoded morph channels.
//
// Buffers are laid out as x0,y0,z0,x1,y1,z1,... so vertex i lives at
// [3i, 3i+2]. Applying is pure: the base buffer is never modified and the
// cost is proportional to the entries of the channels actually used.
package morph

import (
	"fmt"

	"github.com/aretw0/bodygen/pkg/domain"
)

// IndexOutOfRangeError means a morph entry points past the end of the vertex
// buffer, i.e. the TRI file was built for a different mesh. Apply panics with
// this value.
type IndexOutOfRangeError struct {
	Channel  string
	Index    uint16
	Vertices int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("morph: channel %q references vertex %d but the buffer has %d vertices", e.Channel, e.Index, e.Vertices)
}

// Index maps channel names to channels of one TriFile.
// Build it once per TriFile to skip the per-call indexing in Apply.
type Index struct {
	channels map[string]*domain.MorphChannel
}

// NewIndex indexes the channels of tri. When names repeat, the first wins.
func NewIndex(tri *domain.TriFile) *Index {
	idx := &Index{channels: make(map[string]*domain.MorphChannel, len(tri.Morphs))}
	for i := range tri.Morphs {
		name := tri.Morphs[i].Name
		if _, ok := idx.channels[name]; !ok {
			idx.channels[name] = &tri.Morphs[i]
		}
	}
	return idx
}

// Has reports whether a channel with the given name exists.
func (idx *Index) Has(name string) bool {
	_, ok := idx.channels[name]
	return ok
}

// Apply returns a copy of base displaced by each slider.
//
// Sliders with a zero value or without a matching channel are skipped.
// Sliders naming the same channel add up. Apply panics with
// *IndexOutOfRangeError if an entry addresses a vertex outside base.
func (idx *Index) Apply(base []float32, sliders []domain.Slider) []float32 {
	out := make([]float32, len(base))
	copy(out, base)

	for _, s := range sliders {
		if s.Value == 0 {
			continue
		}
		ch, ok := idx.channels[s.Name]
		if !ok {
			continue
		}
		k := s.Value * float64(ch.Scale)
		for _, e := range ch.Entries {
			i := int(e.Index) * 3
			if i+2 >= len(out) {
				panic(&IndexOutOfRangeError{Channel: ch.Name, Index: e.Index, Vertices: len(out) / 3})
			}
			out[i] += float32(k * float64(e.DX))
			out[i+1] += float32(k * float64(e.DY))
			out[i+2] += float32(k * float64(e.DZ))
		}
	}
	return out
}

// Apply indexes tri and applies sliders to a copy of base.
func Apply(base []float32, tri *domain.TriFile, sliders []domain.Slider) []float32 {
	return NewIndex(tri).Apply(base, sliders)
}

// Missing returns the names of sliders that have no channel in idx, in input
// order and without duplicates. Callers use it to explain a partial preview.
func (idx *Index) Missing(sliders []domain.Slider) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range sliders {
		if idx.Has(s.Name) || seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s.Name)
	}
	return out
}
