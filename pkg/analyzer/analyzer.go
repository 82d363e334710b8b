package analyzer

import (
	"context"
	"fmt"
	"time"
)

// Analyzer creates, reads, deletes and queries analyzed strings
type Analyzer struct {
	store StoreInterface
	now   func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithClock replaces the clock used to stamp new records
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer creates an analyzer backed by the given store
func NewAnalyzer(store StoreInterface, opts ...Option) (*Analyzer, error) {
	if store == nil {
		return nil, fmt.Errorf("a valid store must be provided")
	}

	a := &Analyzer{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Create analyzes and stores a value. Storing the same value twice fails with ErrConflict.
func (a *Analyzer) Create(ctx context.Context, value string) (*Record, error) {
	record := NewRecord(value, a.now())

	if err := a.store.Insert(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Get returns the record stored for a value
func (a *Analyzer) Get(ctx context.Context, value string) (*Record, error) {
	return a.store.Get(ctx, Hash(value))
}

// Delete removes the record stored for a value
func (a *Analyzer) Delete(ctx context.Context, value string) error {
	return a.store.Delete(ctx, Hash(value))
}

// List returns the records matching every filter, newest first
func (a *Analyzer) List(ctx context.Context, filters Filters) ([]*Record, error) {
	return a.store.List(ctx, filters)
}

// Interpret translates a natural language query and lists its matches
func (a *Analyzer) Interpret(ctx context.Context, query string) (Filters, []*Record, error) {
	filters, err := ParseNaturalLanguage(query)
	if err != nil {
		return Filters{}, nil, err
	}

	records, err := a.store.List(ctx, filters)
	if err != nil {
		return Filters{}, nil, err
	}

	return filters, records, nil
}
