package countries

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no country matches a name
	ErrNotFound = errors.New("country not found")

	// ErrUpstreamUnavailable is returned when a refresh source cannot be reached
	ErrUpstreamUnavailable = errors.New("external data source unavailable")
)

// Country is a cached country with its estimated GDP
type Country struct {
	ID              uint
	Name            string
	Capital         string
	Region          string
	Population      int64
	CurrencyCode    *string
	ExchangeRate    *float64
	EstimatedGDP    float64
	FlagURL         string
	LastRefreshedAt time.Time
}

// ListOptions filters and orders a country listing
type ListOptions struct {
	Region    string // case-insensitive exact match, empty for any
	Currency  string // case-insensitive exact match, empty for any
	SortByGDP bool   // estimated GDP descending instead of insertion order
	Limit     int    // 0 for no limit
}

// Status summarizes the cache
type Status struct {
	TotalCountries  int64
	LastRefreshedAt *time.Time
}

// RefreshResult reports what a refresh did
type RefreshResult struct {
	Updated     int
	Skipped     int
	RefreshedAt time.Time
	ImagePath   string
}
