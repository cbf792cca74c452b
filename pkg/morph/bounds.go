package morph

import "github.com/chewxy/math32"

// Box is an axis-aligned bounding box.
type Box struct {
	Min [3]float32
	Max [3]float32
}

// Bounds computes the bounding box of a flat vertex buffer.
// It reports false when the buffer holds no complete vertex.
func Bounds(buf []float32) (Box, bool) {
	if len(buf) < 3 {
		return Box{}, false
	}
	b := Box{
		Min: [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)},
		Max: [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)},
	}
	for i := 0; i+2 < len(buf); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := buf[i+axis]
			b.Min[axis] = math32.Min(b.Min[axis], v)
			b.Max[axis] = math32.Max(b.Max[axis], v)
		}
	}
	return b, true
}

// Center returns the midpoint of the box.
func (b Box) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
func (b Box) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Recenter returns a copy of buf translated so the box center sits at the origin.
func Recenter(buf []float32) []float32 {
	out := make([]float32, len(buf))
	copy(out, buf)
	b, ok := Bounds(buf)
	if !ok {
		return out
	}
	c := b.Center()
	for i := 0; i+2 < len(out); i += 3 {
		out[i] -= c[0]
		out[i+1] -= c[1]
		out[i+2] -= c[2]
	}
	return out
}
