package countries

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ethanbaker/analyzer/pkg/countries"
)

// InMemoryStore provides an in-memory implementation of countries.StoreInterface
type InMemoryStore struct {
	countries map[string]*countries.Country // keyed by nameKey
	nextID    uint
	mutex     sync.RWMutex
}

// NewInMemoryStore creates a new in-memory country store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		countries: make(map[string]*countries.Country),
		nextID:    1,
	}
}

// Upsert inserts a country or updates the one with the same case-insensitive name
func (s *InMemoryStore) Upsert(_ context.Context, country *countries.Country) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := nameKey(country.Name)
	if existing, ok := s.countries[key]; ok {
		country.ID = existing.ID
	} else {
		country.ID = s.nextID
		s.nextID++
	}

	s.countries[key] = copyCountry(country)
	return nil
}

// Get retrieves a country by case-insensitive name
func (s *InMemoryStore) Get(_ context.Context, name string) (*countries.Country, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	country, ok := s.countries[nameKey(name)]
	if !ok {
		return nil, countries.ErrNotFound
	}
	return copyCountry(country), nil
}

// Delete removes a country by case-insensitive name
func (s *InMemoryStore) Delete(_ context.Context, name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := nameKey(name)
	if _, ok := s.countries[key]; !ok {
		return countries.ErrNotFound
	}

	delete(s.countries, key)
	return nil
}

// List returns the countries matching the options
func (s *InMemoryStore) List(_ context.Context, opts countries.ListOptions) ([]*countries.Country, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]*countries.Country, 0, len(s.countries))
	for _, c := range s.countries {
		if opts.Region != "" && !strings.EqualFold(c.Region, opts.Region) {
			continue
		}
		if opts.Currency != "" && (c.CurrencyCode == nil || !strings.EqualFold(*c.CurrencyCode, opts.Currency)) {
			continue
		}
		out = append(out, copyCountry(c))
	}

	sort.Slice(out, func(i, j int) bool {
		if opts.SortByGDP && out[i].EstimatedGDP != out[j].EstimatedGDP {
			return out[i].EstimatedGDP > out[j].EstimatedGDP
		}
		return out[i].ID < out[j].ID
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}

	return out, nil
}

// Status returns the number of cached countries and the latest refresh time
func (s *InMemoryStore) Status(_ context.Context) (countries.Status, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	status := countries.Status{TotalCountries: int64(len(s.countries))}
	for _, c := range s.countries {
		if status.LastRefreshedAt == nil || c.LastRefreshedAt.After(*status.LastRefreshedAt) {
			refreshed := c.LastRefreshedAt
			status.LastRefreshedAt = &refreshed
		}
	}

	return status, nil
}

// copyCountry avoids sharing pointer fields with callers
func copyCountry(c *countries.Country) *countries.Country {
	out := *c
	if c.CurrencyCode != nil {
		code := *c.CurrencyCode
		out.CurrencyCode = &code
	}
	if c.ExchangeRate != nil {
		rate := *c.ExchangeRate
		out.ExchangeRate = &rate
	}
	return &out
}
