package sdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateString analyzes and stores a new string
func (c *Client) CreateString(ctx context.Context, value string) (*StringRecord, error) {
	var out StringRecord
	if err := c.doJSON(ctx, http.MethodPost, "/strings", &CreateStringRequest{Value: value}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetString retrieves the record of a string
func (c *Client) GetString(ctx context.Context, value string) (*StringRecord, error) {
	var out StringRecord
	if err := c.doJSON(ctx, http.MethodGet, "/strings/"+url.PathEscape(value), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteString removes the record of a string
func (c *Client) DeleteString(ctx context.Context, value string) error {
	return c.doJSON(ctx, http.MethodDelete, "/strings/"+url.PathEscape(value), nil, nil)
}

// ListStrings lists the records matching the filters
func (c *Client) ListStrings(ctx context.Context, filters StringFilters) (*StringListResponse, error) {
	params := url.Values{}
	if filters.IsPalindrome != nil {
		params.Set("is_palindrome", strconv.FormatBool(*filters.IsPalindrome))
	}
	if filters.MinLength != nil {
		params.Set("min_length", strconv.Itoa(*filters.MinLength))
	}
	if filters.MaxLength != nil {
		params.Set("max_length", strconv.Itoa(*filters.MaxLength))
	}
	if filters.WordCount != nil {
		params.Set("word_count", strconv.Itoa(*filters.WordCount))
	}
	if filters.ContainsCharacter != nil {
		params.Set("contains_character", *filters.ContainsCharacter)
	}

	path := "/strings"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out StringListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// FilterByNaturalLanguage lists the records matching a natural language query
func (c *Client) FilterByNaturalLanguage(ctx context.Context, query string) (*NaturalLanguageResponse, error) {
	path := "/strings/filter-by-natural-language?query=" + url.QueryEscape(query)

	var out NaturalLanguageResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
