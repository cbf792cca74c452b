// Package gltf adapts glTF / GLB base meshes to the position ports used by
// the morph preview.
package gltf

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoPositions is returned when the selected primitive has no POSITION attribute.
var ErrNoPositions = errors.New("gltf: primitive has no POSITION attribute")

// Mesh is one primitive of a glTF document exposed as a flat position buffer.
// It implements ports.PositionSource and ports.PositionSink; writes only
// change the in-memory document until SaveBinary is called.
type Mesh struct {
	doc       *gltf.Document
	mesh      int
	primitive int
}

type Option func(*Mesh) error

// WithMesh selects a mesh by name. The first mesh is used by default.
func WithMesh(name string) Option {
	return func(m *Mesh) error {
		for i, mesh := range m.doc.Meshes {
			if mesh.Name == name {
				m.mesh = i
				return nil
			}
		}
		return fmt.Errorf("gltf: mesh %q not found", name)
	}
}

// WithPrimitive selects a primitive index inside the mesh.
func WithPrimitive(index int) Option {
	return func(m *Mesh) error {
		m.primitive = index
		return nil
	}
}

// Open loads a .gltf or .glb file.
func Open(path string, opts ...Option) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return FromDocument(doc, opts...)
}

// Decode reads a self-contained document (GLB or glTF with embedded buffers).
func Decode(r io.Reader, opts ...Option) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf: decode: %w", err)
	}
	return FromDocument(doc, opts...)
}

// FromDocument wraps an already loaded document.
func FromDocument(doc *gltf.Document, opts ...Option) (*Mesh, error) {
	m := &Mesh{doc: doc}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.mesh >= len(doc.Meshes) {
		return nil, fmt.Errorf("gltf: document has %d meshes", len(doc.Meshes))
	}
	if m.primitive < 0 || m.primitive >= len(doc.Meshes[m.mesh].Primitives) {
		return nil, fmt.Errorf("gltf: mesh %d has no primitive %d", m.mesh, m.primitive)
	}
	return m, nil
}

// Document returns the underlying document.
func (m *Mesh) Document() *gltf.Document {
	return m.doc
}

func (m *Mesh) prim() *gltf.Primitive {
	return m.doc.Meshes[m.mesh].Primitives[m.primitive]
}

// ReadPositions flattens the POSITION accessor into index*3+axis order.
func (m *Mesh) ReadPositions(ctx context.Context) ([]float32, error) {
	idx, ok := m.prim().Attributes[gltf.POSITION]
	if !ok {
		return nil, ErrNoPositions
	}
	if int(idx) >= len(m.doc.Accessors) {
		return nil, fmt.Errorf("gltf: position accessor %d out of range", idx)
	}

	vertices, err := modeler.ReadPosition(m.doc, m.doc.Accessors[idx], nil)
	if err != nil {
		return nil, fmt.Errorf("gltf: read positions: %w", err)
	}

	out := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out, nil
}

// WritePositions appends a new POSITION accessor holding positions and points
// the primitive at it. The vertex count must not change.
func (m *Mesh) WritePositions(ctx context.Context, positions []float32) error {
	if len(positions)%3 != 0 {
		return fmt.Errorf("gltf: position buffer length %d is not a multiple of 3", len(positions))
	}
	p := m.prim()
	if idx, ok := p.Attributes[gltf.POSITION]; ok && int(idx) < len(m.doc.Accessors) {
		if want := int(m.doc.Accessors[idx].Count); want != len(positions)/3 {
			return fmt.Errorf("gltf: vertex count mismatch: mesh has %d, buffer has %d", want, len(positions)/3)
		}
	}

	vertices := make([][3]float32, len(positions)/3)
	for i := range vertices {
		vertices[i] = [3]float32{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}
	p.Attributes[gltf.POSITION] = modeler.WritePosition(m.doc, vertices)
	return nil
}

// SaveBinary writes the document as a .glb file.
func (m *Mesh) SaveBinary(path string) error {
	if err := gltf.SaveBinary(m.doc, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
