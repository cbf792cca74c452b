package ports

import (
	"context"

	"github.com/aretw0/bodygen/pkg/domain"
)

// TriCache stores decoded TRI files so repeated previews skip the decoder.
// Cached files are shared read-only; callers must not mutate them.
type TriCache interface {
	// Put stores tri under key, replacing any previous value.
	Put(ctx context.Context, key string, tri *domain.TriFile) error

	// Get retrieves the file stored under key.
	// Returns domain.ErrCacheMiss if the key is not present.
	Get(ctx context.Context, key string) (*domain.TriFile, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every key currently stored.
	List(ctx context.Context) ([]string, error)
}
