package ports

import (
	"context"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
)

// CatalogSource loads the phenomenon catalog served by the form
type CatalogSource interface {
	// Load returns a catalog; callers validate it before use
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogStore is a CatalogSource that can also replace its contents
type CatalogStore interface {
	CatalogSource

	// Save replaces the stored catalog atomically
	Save(ctx context.Context, c *catalog.Catalog) error
}
