package memory

import (
	"context"
	"sync"
)

// Mesh is an in-memory position buffer implementing ports.PositionSource
// and ports.PositionSink.
type Mesh struct {
	mu        sync.RWMutex
	positions []float32
}

// NewMesh creates a mesh holding a copy of positions.
func NewMesh(positions []float32) *Mesh {
	return &Mesh{positions: append([]float32(nil), positions...)}
}

// ReadPositions returns a copy of the current buffer.
func (m *Mesh) ReadPositions(ctx context.Context) ([]float32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float32(nil), m.positions...), nil
}

// WritePositions replaces the buffer with a copy of positions.
func (m *Mesh) WritePositions(ctx context.Context, positions []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = append(m.positions[:0:0], positions...)
	return nil
}
