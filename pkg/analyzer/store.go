package analyzer

import "context"

// StoreInterface defines the storage operations for analyzed records.
// Implementations must make Insert atomic: of two concurrent inserts of the same id
// exactly one succeeds and the other returns ErrConflict.
type StoreInterface interface {
	Insert(ctx context.Context, record *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters Filters) ([]*Record, error)
}
