package morph_test

import (
	"testing"

	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/morph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigButtTri() *domain.TriFile {
	return &domain.TriFile{
		SetName: "CBBE",
		Morphs: []domain.MorphChannel{
			{Name: "BigButt", Scale: 0.01, Entries: []domain.MorphEntry{{Index: 0, DX: 100, DY: 0, DZ: -50}}},
			{Name: "Wide", Scale: 0.5, Entries: []domain.MorphEntry{{Index: 0, DX: 2, DY: 0, DZ: 0}, {Index: 1, DX: 0, DY: 4, DZ: -4}}},
		},
	}
}

func TestApply_Scenario(t *testing.T) {
	out := morph.Apply([]float32{0, 0, 0}, bigButtTri(), []domain.Slider{{Name: "BigButt", Value: 2}})
	require.Len(t, out, 3)
	assert.InDelta(t, 2, out[0], 1e-6)
	assert.InDelta(t, 0, out[1], 1e-6)
	assert.InDelta(t, -1, out[2], 1e-6)
}

func TestApply_Identity(t *testing.T) {
	base := []float32{1, 2, 3, 4, 5, 6}
	tri := bigButtTri()

	assert.Equal(t, base, morph.Apply(base, tri, nil))
	assert.Equal(t, base, morph.Apply(base, tri, []domain.Slider{{Name: "BigButt", Value: 0}, {Name: "Wide", Value: 0}}))
}

func TestApply_DoesNotModifyBase(t *testing.T) {
	base := []float32{1, 2, 3, 4, 5, 6}
	out := morph.Apply(base, bigButtTri(), []domain.Slider{{Name: "Wide", Value: 1}})

	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, base)
	assert.Equal(t, []float32{2, 2, 3, 4, 7, 4}, out)
}

func TestApply_Linearity(t *testing.T) {
	base := []float32{0, 0, 0, 0, 0, 0}
	tri := bigButtTri()

	for _, k := range []float64{-2, 0.5, 3, 10} {
		unit := morph.Apply(base, tri, []domain.Slider{{Name: "Wide", Value: 0.25}})
		scaled := morph.Apply(base, tri, []domain.Slider{{Name: "Wide", Value: 0.25 * k}})
		for i := range unit {
			assert.InDeltaf(t, float64(unit[i])*k, float64(scaled[i]), 1e-5, "k=%v component %d", k, i)
		}
	}
}

func TestApply_AdditiveAndOrderIndependent(t *testing.T) {
	base := []float32{1, 1, 1, 1, 1, 1}
	tri := bigButtTri()
	a := domain.Slider{Name: "BigButt", Value: 1}
	b := domain.Slider{Name: "Wide", Value: -1}

	ab := morph.Apply(base, tri, []domain.Slider{a, b})
	ba := morph.Apply(base, tri, []domain.Slider{b, a})
	for i := range ab {
		assert.InDelta(t, ab[i], ba[i], 1e-6)
	}
}

func TestApply_RepeatedSliderSums(t *testing.T) {
	base := []float32{0, 0, 0, 0, 0, 0}
	tri := bigButtTri()

	twice := morph.Apply(base, tri, []domain.Slider{{Name: "Wide", Value: 1}, {Name: "Wide", Value: 1}})
	double := morph.Apply(base, tri, []domain.Slider{{Name: "Wide", Value: 2}})
	assert.Equal(t, double, twice)
}

func TestApply_UnknownSliderIgnored(t *testing.T) {
	base := []float32{1, 2, 3}
	out := morph.Apply(base, bigButtTri(), []domain.Slider{{Name: "NotInThisBody", Value: 1}})
	assert.Equal(t, base, out)
}

func TestApply_IndexOutOfRangePanics(t *testing.T) {
	tri := bigButtTri()
	base := []float32{0, 0, 0}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*morph.IndexOutOfRangeError)
		require.True(t, ok, "panic value should be *IndexOutOfRangeError, got %T", r)
		assert.Equal(t, "Wide", err.Channel)
		assert.Equal(t, uint16(1), err.Index)
		assert.Equal(t, 1, err.Vertices)
	}()
	morph.Apply(base, tri, []domain.Slider{{Name: "Wide", Value: 1}})
}

func TestIndex(t *testing.T) {
	tri := bigButtTri()
	tri.Morphs = append(tri.Morphs, domain.MorphChannel{Name: "BigButt", Scale: 99})
	idx := morph.NewIndex(tri)

	assert.True(t, idx.Has("BigButt"))
	assert.False(t, idx.Has("Nope"))

	out := idx.Apply([]float32{0, 0, 0}, []domain.Slider{{Name: "BigButt", Value: 1}})
	assert.InDelta(t, 1, out[0], 1e-6, "first channel with a repeated name wins")

	assert.Equal(t, []string{"Nope", "Other"}, idx.Missing([]domain.Slider{
		{Name: "Nope"}, {Name: "BigButt"}, {Name: "Other"}, {Name: "Nope"},
	}))
}

func TestBounds(t *testing.T) {
	_, ok := morph.Bounds([]float32{1, 2})
	assert.False(t, ok)

	b, ok := morph.Bounds([]float32{-1, 0, 2, 3, 4, -2})
	require.True(t, ok)
	assert.Equal(t, [3]float32{-1, 0, -2}, b.Min)
	assert.Equal(t, [3]float32{3, 4, 2}, b.Max)
	assert.Equal(t, [3]float32{1, 2, 0}, b.Center())
	assert.Equal(t, [3]float32{4, 4, 4}, b.Size())

	centered := morph.Recenter([]float32{-1, 0, 2, 3, 4, -2})
	assert.Equal(t, []float32{-2, -2, 2, 2, 2, -2}, centered)
}
