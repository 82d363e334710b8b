package analyzer

import (
	"context"
	"sort"
	"sync"

	"github.com/ethanbaker/analyzer/pkg/analyzer"
)

// InMemoryStore provides an in-memory implementation of analyzer.StoreInterface
type InMemoryStore struct {
	records map[string]*analyzer.Record
	mutex   sync.RWMutex
}

// NewInMemoryStore creates a new in-memory analyzer store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*analyzer.Record),
	}
}

// Insert stores a record unless one with the same id exists
func (s *InMemoryStore) Insert(_ context.Context, record *analyzer.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.records[record.ID]; exists {
		return analyzer.ErrConflict
	}

	s.records[record.ID] = copyRecord(record)
	return nil
}

// Get retrieves a record by id
func (s *InMemoryStore) Get(_ context.Context, id string) (*analyzer.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, analyzer.ErrNotFound
	}

	return copyRecord(record), nil
}

// Delete removes a record by id
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.records[id]; !exists {
		return analyzer.ErrNotFound
	}

	delete(s.records, id)
	return nil
}

// List returns the records matching the filters, newest first
func (s *InMemoryStore) List(_ context.Context, filters analyzer.Filters) ([]*analyzer.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make([]*analyzer.Record, 0, len(s.records))
	for _, record := range s.records {
		if filters.Match(record) {
			records = append(records, copyRecord(record))
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

// copyRecord avoids sharing the frequency map with callers
func copyRecord(r *analyzer.Record) *analyzer.Record {
	out := *r
	out.Properties.CharacterFrequencyMap = make(map[string]int, len(r.Properties.CharacterFrequencyMap))
	for k, v := range r.Properties.CharacterFrequencyMap {
		out.Properties.CharacterFrequencyMap[k] = v
	}
	return &out
}
