package indexer

import (
	"context"

	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/tri"
)

// fileLoader decodes straight from disk without caching.
type fileLoader struct{}

func (fileLoader) LoadTri(_ context.Context, path string) (*domain.TriFile, error) {
	return tri.ReadFile(path)
}
