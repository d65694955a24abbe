package apisports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
}

func TestRequest_DecodesResponseArray(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-apisports-key"); got != "test-key" {
			t.Errorf("missing credential header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"get":"teams","errors":[],"results":1,"response":[{"id":145,"name":"Toronto Raptors","code":"TOR"}]}`))
	})

	var teams []GamesTeamEntry
	if err := client.Request(context.Background(), "/teams", map[string]string{"search": "raptors"}, &teams); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Toronto Raptors" || teams[0].ID != 145 {
		t.Fatalf("unexpected decode result: %+v", teams)
	}
}

func TestRequest_MissingCredential(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{BaseURL: "http://unused.invalid"})
	err := client.Request(context.Background(), "/teams", nil, nil)
	if !crerr.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRequest_NonOKStatusIsTaggedHTTPError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "subscription expired", http.StatusForbidden)
	})

	err := client.Request(context.Background(), "/teams", nil, nil)
	var httpErr *HTTPError
	if !crerr.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", httpErr.Code)
	}
}

func TestRequest_VendorErrorInsideOKResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"get":"games","errors":{"token":"Error/Missing application key"},"results":0,"response":[]}`))
	})

	err := client.Request(context.Background(), "/games", nil, nil)
	var vendorErr *VendorError
	if !crerr.As(err, &vendorErr) {
		t.Fatalf("expected VendorError, got %v", err)
	}
	if vendorErr.Code != "token" {
		t.Fatalf("code = %q, want token", vendorErr.Code)
	}
}

func TestRequest_NetworkFailureIsTagged(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", APIKey: "test-key"})
	err := client.Request(context.Background(), "/teams", nil, nil)
	if !crerr.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestParseSeasonYear(t *testing.T) {
	t.Parallel()

	if got := ParseSeasonYear(Season("2025-2026")); got != 2025 {
		t.Fatalf("dual season year = %d", got)
	}
	if got := ParseSeasonYear(Season("2024")); got != 2024 {
		t.Fatalf("single season year = %d", got)
	}
	if got := ParseSeasonYear(Season("n/a")); got != 0 {
		t.Fatalf("invalid season year = %d", got)
	}
}
