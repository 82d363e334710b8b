package countries

import (
	"context"
	"fmt"

	"github.com/ethanbaker/analyzer/pkg/upstream"
)

// RemoteCountry is a country as returned by the countries API
type RemoteCountry struct {
	Name       string `json:"name"`
	Capital    string `json:"capital"`
	Region     string `json:"region"`
	Population int64  `json:"population"`
	Flag       string `json:"flag"`
	Currencies []struct {
		Code string `json:"code"`
	} `json:"currencies"`
}

// CurrencyCode returns the first listed currency code, if any
func (c RemoteCountry) CurrencyCode() *string {
	if len(c.Currencies) == 0 || c.Currencies[0].Code == "" {
		return nil
	}
	code := c.Currencies[0].Code
	return &code
}

// Source provides the raw data used by a refresh
type Source interface {
	FetchCountries(ctx context.Context) ([]RemoteCountry, error)
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// HTTPSource reads countries and USD exchange rates from two REST APIs
type HTTPSource struct {
	countriesURL string
	ratesURL     string
	countries    *upstream.Client
	rates        *upstream.Client
}

// NewHTTPSource creates a source for the given endpoints
func NewHTTPSource(countriesURL, ratesURL string, opts upstream.Options) *HTTPSource {
	return &HTTPSource{
		countriesURL: countriesURL,
		ratesURL:     ratesURL,
		countries:    upstream.NewClient("restcountries", opts),
		rates:        upstream.NewClient("exchange-rates", opts),
	}
}

// FetchCountries downloads every country
func (s *HTTPSource) FetchCountries(ctx context.Context) ([]RemoteCountry, error) {
	var out []RemoteCountry
	if err := s.countries.GetJSON(ctx, s.countriesURL, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return out, nil
}

// FetchRates downloads exchange rates keyed by currency code
func (s *HTTPSource) FetchRates(ctx context.Context) (map[string]float64, error) {
	var out struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := s.rates.GetJSON(ctx, s.ratesURL, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if out.Rates == nil {
		out.Rates = map[string]float64{}
	}
	return out.Rates, nil
}
