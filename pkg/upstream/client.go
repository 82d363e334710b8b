package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethanbaker/analyzer/internal/logging"
	"github.com/ethanbaker/analyzer/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

// maxBodySize caps how much of an upstream response is read
const maxBodySize = 16 << 20

// StatusError is returned when an upstream answers with a non 2xx status
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.URL, e.Code)
}

// Options tunes a Client's circuit breaker
type Options struct {
	Timeout             time.Duration // per request timeout
	ConsecutiveFailures uint32        // failures before the circuit opens (default 5)
	OpenTimeout         time.Duration // time spent open before probing again (default 30s)
}

// Client fetches JSON documents from a third-party API behind a circuit breaker
type Client struct {
	name       string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a client for the named upstream
func NewClient(name string, opts Options) *Client {
	if opts.ConsecutiveFailures == 0 {
		opts.ConsecutiveFailures = 5
	}
	if opts.OpenTimeout == 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("upstream", name).Str("from", from.String()).Str("to", to.String()).Msg("[UPSTREAM]: circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Client{
		name:       name,
		httpClient: &http.Client{Timeout: opts.Timeout},
		cb:         cb,
	}
}

// Name returns the upstream name
func (c *Client) Name() string {
	return c.name
}

// State returns the current circuit breaker state
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}

// GetJSON fetches a URL and decodes its JSON body into out
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.get(ctx, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.UpstreamRequests.WithLabelValues(c.name, "rejected").Inc()
		} else {
			metrics.UpstreamRequests.WithLabelValues(c.name, "failure").Inc()
		}
		return fmt.Errorf("%s: %w", c.name, err)
	}

	metrics.UpstreamRequests.WithLabelValues(c.name, "success").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", c.name, err)
	}
	return nil
}

// get performs a single request and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "analyzer/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
