package sources

import (
	"github.com/aretw0/bodygen/pkg/catalog"
)

// LoadCatalog reads the slider and category folders and builds a catalog.
func LoadCatalog(slidersDir, categoriesDir string) (*catalog.Catalog, error) {
	srcs, err := LoadSliders(slidersDir)
	if err != nil {
		return nil, err
	}
	cats, err := LoadCategories(categoriesDir)
	if err != nil {
		return nil, err
	}
	return catalog.Build(srcs, cats), nil
}
