package profile

import (
	"context"
	"strings"
	"time"

	"github.com/ethanbaker/analyzer/internal/logging"
	"github.com/ethanbaker/analyzer/pkg/upstream"
)

// FallbackFact is served whenever the fact upstream cannot provide one
const FallbackFact = "Could not fetch a cat fact at the moment."

// Identity is the static identity served by the profile endpoint
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Stack string `json:"stack"`
}

// Profile is the payload returned by the profile endpoint
type Profile struct {
	Status    string   `json:"status"`
	User      Identity `json:"user"`
	Timestamp string   `json:"timestamp"`
	Fact      string   `json:"fact"`
}

// Options configures a Service
type Options struct {
	Identity Identity
	FactURL  string
	Timeout  time.Duration
	Now      func() time.Time // optional, time.Now by default
}

// Service builds profile payloads
type Service struct {
	identity Identity
	factURL  string
	client   *upstream.Client
	now      func() time.Time
}

// NewService creates a profile service
func NewService(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		identity: opts.Identity,
		factURL:  opts.FactURL,
		client:   upstream.NewClient("catfact", upstream.Options{Timeout: opts.Timeout}),
		now:      opts.Now,
	}
}

// Get returns the profile with a fresh fact, falling back to FallbackFact on any failure
func (s *Service) Get(ctx context.Context) *Profile {
	return &Profile{
		Status:    "success",
		User:      s.identity,
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Fact:      s.fact(ctx),
	}
}

// fact fetches a single fact
func (s *Service) fact(ctx context.Context) string {
	var out struct {
		Fact string `json:"fact"`
	}

	if err := s.client.GetJSON(ctx, s.factURL, &out); err != nil {
		logging.Warn().Err(err).Msg("[PROFILE]: failed to fetch fact")
		return FallbackFact
	}

	if strings.TrimSpace(out.Fact) == "" {
		logging.Warn().Msg("[PROFILE]: fact response did not contain a fact")
		return FallbackFact
	}

	return out.Fact
}
