package ports

import "context"

// PositionSource loads the vertex positions of a base mesh as a flat
// index*3+axis buffer.
type PositionSource interface {
	ReadPositions(ctx context.Context) ([]float32, error)
}

// PositionSink persists a morphed position buffer.
type PositionSink interface {
	WritePositions(ctx context.Context, positions []float32) error
}
