package builtin

import (
	"context"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/ports"
)

// Source serves the catalog compiled into the binary
type Source struct{}

// NewSource creates the built-in catalog source
func NewSource() ports.CatalogSource {
	return Source{}
}

// Load returns a fresh copy of the built-in catalog
func (Source) Load(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Default(), nil
}
