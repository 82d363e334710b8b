package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// RefreshCountries triggers a refresh of the country cache
func (c *Client) RefreshCountries(ctx context.Context) (*RefreshResponse, error) {
	var out RefreshResponse
	if err := c.doJSON(ctx, http.MethodPost, "/countries/refresh", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListCountries lists cached countries
func (c *Client) ListCountries(ctx context.Context, query CountryQuery) ([]Country, error) {
	params := url.Values{}
	if query.Region != "" {
		params.Set("region", query.Region)
	}
	if query.Currency != "" {
		params.Set("currency", query.Currency)
	}
	if query.SortByGDP {
		params.Set("sort", "gdp_desc")
	}

	path := "/countries"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out []Country
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetCountry retrieves a cached country by name
func (c *Client) GetCountry(ctx context.Context, name string) (*Country, error) {
	var out Country
	if err := c.doJSON(ctx, http.MethodGet, "/countries/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteCountry removes a cached country by name
func (c *Client) DeleteCountry(ctx context.Context, name string) error {
	return c.doJSON(ctx, http.MethodDelete, "/countries/"+url.PathEscape(name), nil, nil)
}

// GetStatus summarizes the country cache
func (c *Client) GetStatus(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/status", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetProfile retrieves the profile payload
func (c *Client) GetProfile(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
