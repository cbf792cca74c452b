package gltf_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meshgltf "github.com/aretw0/bodygen/pkg/adapters/gltf"
	"github.com/aretw0/bodygen/pkg/ports"
)

var (
	_ ports.PositionSource = (*meshgltf.Mesh)(nil)
	_ ports.PositionSink   = (*meshgltf.Mesh)(nil)
)

func triangle() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = []*gltf.Mesh{{
		Name: "Body",
		Primitives: []*gltf.Primitive{{
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}},
	}}
	return doc
}

func TestMesh_ReadPositions(t *testing.T) {
	m, err := meshgltf.FromDocument(triangle())
	require.NoError(t, err)

	got, err := m.ReadPositions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, got)
}

func TestMesh_WriteAndSave(t *testing.T) {
	ctx := context.Background()
	m, err := meshgltf.FromDocument(triangle(), meshgltf.WithMesh("Body"))
	require.NoError(t, err)

	moved := []float32{0, 0, 1, 1, 0, 1, 0, 1, 1}
	require.NoError(t, m.WritePositions(ctx, moved))

	path := filepath.Join(t.TempDir(), "out.glb")
	require.NoError(t, m.SaveBinary(path))

	reopened, err := meshgltf.Open(path)
	require.NoError(t, err)
	got, err := reopened.ReadPositions(ctx)
	require.NoError(t, err)
	assert.Equal(t, moved, got)
}

func TestMesh_Errors(t *testing.T) {
	_, err := meshgltf.FromDocument(triangle(), meshgltf.WithMesh("Head"))
	assert.Error(t, err)

	_, err = meshgltf.FromDocument(triangle(), meshgltf.WithPrimitive(3))
	assert.Error(t, err)

	_, err = meshgltf.FromDocument(gltf.NewDocument())
	assert.Error(t, err)

	m, err := meshgltf.FromDocument(triangle())
	require.NoError(t, err)
	assert.Error(t, m.WritePositions(context.Background(), []float32{1, 2}))
	assert.Error(t, m.WritePositions(context.Background(), []float32{1, 2, 3}))
}
