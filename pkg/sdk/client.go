package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when the server answers 404
var ErrNotFound = errors.New("not found")

// APIError is returned for any non 2xx response
type APIError struct {
	Method string
	Path   string
	Code   int
	Body   ErrorResponse
}

func (e *APIError) Error() string {
	msg := e.Body.Detail
	if msg == "" {
		msg = e.Body.Error
	}
	return fmt.Sprintf("[BACKEND]: backend '%s %s' failed: %d: %s", e.Method, e.Path, e.Code, msg)
}

// Is matches ErrNotFound for 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client wraps calls to the analyzer backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client. The api key is only needed for admin routes.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, decode whatever error body was returned
		apiErr := &APIError{Method: method, Path: path, Code: resp.StatusCode}
		b, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(b, &apiErr.Body)
		return apiErr
	}

	// If no output expected, return early
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
