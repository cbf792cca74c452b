package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bodygen/pkg/adapters/memory"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/ports"
)

func TestMemoryCache_Contract(t *testing.T) {
	cache := memory.NewCache()
	ports.RunTriCacheContract(t, cache)
}

func TestMemoryCache_SharesPointer(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	tri := &domain.TriFile{SetName: "CBBE"}

	require.NoError(t, cache.Put(ctx, "k", tri))
	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Same(t, tri, got)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			_ = cache.Put(ctx, key, &domain.TriFile{SetName: key})
			_, _ = cache.Get(ctx, key)
			_, _ = cache.List(ctx)
		}(i)
	}
	wg.Wait()

	keys, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 16)
}
