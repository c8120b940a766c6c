package domain

import "context"

// AssetSource supplies raw product listings. Implementations must return
// deterministic ordering per call; the engine performs no retries.
type AssetSource interface {
	ProductKeys(ctx context.Context) ([]string, error)
	Listing(ctx context.Context, productKey string) (*Listing, error)
}

// CatalogSource supplies existing canonical records (or the subset of
// fields sufficient for matching: key, title, images) for the
// incremental-update path.
type CatalogSource interface {
	ExistingProducts(ctx context.Context) ([]CanonicalProduct, error)
}

// SnapshotStore persists the previously emitted catalog between batches
type SnapshotStore interface {
	Load(ctx context.Context) ([]CanonicalProduct, error)
	Save(ctx context.Context, products []CanonicalProduct) error
}
