package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var identity = Identity{Email: "dev@example.com", Name: "Dev Example", Stack: "Go/Gin"}

func newService(url string) *Service {
	return NewService(Options{
		Identity: identity,
		FactURL:  url,
		Timeout:  200 * time.Millisecond,
		Now:      func() time.Time { return time.Date(2025, 10, 18, 7, 5, 9, 42_000_000, time.UTC) },
	})
}

func TestGetWithFact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fact":"Cats sleep 70% of their lives.","length":30}`))
	}))
	defer server.Close()

	got := newService(server.URL).Get(context.Background())

	assert.Equal(t, &Profile{
		Status:    "success",
		User:      identity,
		Timestamp: "2025-10-18T07:05:09.042Z",
		Fact:      "Cats sleep 70% of their lives.",
	}, got)
}

func TestGetFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{name: "missing fact", handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"length":0}`)) }},
		{name: "invalid json", handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`<html>`)) }},
		{name: "timeout", handler: func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			got := newService(server.URL).Get(context.Background())
			assert.Equal(t, FallbackFact, got.Fact)
			assert.Equal(t, "success", got.Status)
			assert.Equal(t, identity, got.User)
		})
	}
}

func TestGetUnreachable(t *testing.T) {
	got := newService("http://127.0.0.1:1/fact").Get(context.Background())
	assert.Equal(t, FallbackFact, got.Fact)
}
