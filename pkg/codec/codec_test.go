package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bodygen/pkg/codec"
	"github.com/aretw0/bodygen/pkg/domain"
)

func sample() *domain.TriFile {
	return &domain.TriFile{
		SetName: "CBBE",
		Morphs: []domain.MorphChannel{
			{Name: "BigButt", Scale: 0.01, Entries: []domain.MorphEntry{
				{Index: 10, DX: 100, DY: 0, DZ: -50},
				{Index: 20, DX: -100, DY: 50, DZ: 0},
			}},
			{Name: "Waist", Scale: 0.5, Entries: []domain.MorphEntry{{Index: 3, DX: 1, DY: 2, DZ: 3}}},
		},
	}
}

func TestPackUnpack(t *testing.T) {
	payload, err := codec.Pack(sample())
	require.NoError(t, err)

	got, err := codec.Unpack(payload)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestPack_Deterministic(t *testing.T) {
	a, err := codec.Pack(sample())
	require.NoError(t, err)
	b, err := codec.Pack(sample())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPack_Nil(t *testing.T) {
	_, err := codec.Pack(nil)
	assert.Error(t, err)
}

func TestUnpack_Garbage(t *testing.T) {
	_, err := codec.Unpack([]byte("definitely not zstd"))
	assert.Error(t, err)
}

func TestContentKey(t *testing.T) {
	k1 := codec.ContentKey([]byte("PIRT"))
	k2 := codec.ContentKey([]byte("PIRT"))
	k3 := codec.ContentKey([]byte("PIRU"))

	assert.Len(t, k1, 64)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}
