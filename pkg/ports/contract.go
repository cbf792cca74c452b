package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTriCacheContract runs a suite of tests to verify that a TriCache implementation
// adheres to the defined interface contract.
func RunTriCacheContract(t *testing.T, cache TriCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	sample := &domain.TriFile{
		SetName: "CBBE",
		Morphs: []domain.MorphChannel{
			{Name: "BigButt", Scale: 0.01, Entries: []domain.MorphEntry{
				{Index: 10, DX: 100, DY: 0, DZ: -50},
				{Index: 20, DX: -100, DY: 50, DZ: 0},
			}},
		},
	}

	t.Run("Put and Get", func(t *testing.T) {
		err := cache.Put(ctx, key, sample)
		require.NoError(t, err, "Put should not return error")

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, sample.SetName, loaded.SetName)
		require.Len(t, loaded.Morphs, 1)
		assert.Equal(t, sample.Morphs[0].Name, loaded.Morphs[0].Name)
		assert.InDelta(t, sample.Morphs[0].Scale, loaded.Morphs[0].Scale, 1e-9)
		assert.Equal(t, sample.Morphs[0].Entries, loaded.Morphs[0].Entries)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, sample))
		replacement := &domain.TriFile{SetName: "UUNP"}
		require.NoError(t, cache.Put(ctx, key, replacement))

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "UUNP", loaded.SetName)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, sample))

		err := cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = cache.Put(ctx, k1, sample)
		_ = cache.Put(ctx, k2, sample)

		defer func() {
			_ = cache.Delete(ctx, k1)
			_ = cache.Delete(ctx, k2)
		}()

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
