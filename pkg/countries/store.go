package countries

import "context"

// StoreInterface defines the storage operations for cached countries
type StoreInterface interface {
	// Upsert inserts a country or updates the one whose name matches case-insensitively
	Upsert(ctx context.Context, country *Country) error
	Get(ctx context.Context, name string) (*Country, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, opts ListOptions) ([]*Country, error)
	Status(ctx context.Context) (Status, error)
}
