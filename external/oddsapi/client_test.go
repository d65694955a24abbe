package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

const sampleEvents = `[
  {
    "id": "abc123",
    "sport_key": "basketball_nba",
    "commence_time": "2025-11-01T00:10:00Z",
    "home_team": "Boston Celtics",
    "away_team": "Miami Heat",
    "bookmakers": [
      {
        "key": "draftkings",
        "title": "DraftKings",
        "last_update": "2025-10-31T23:58:00Z",
        "markets": [
          {"key": "h2h", "outcomes": [
            {"name": "Boston Celtics", "price": 1.45},
            {"name": "Miami Heat", "price": 2.85}
          ]}
        ]
      }
    ]
  }
]`

func TestEventsWithOdds_Decodes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "k" {
			t.Errorf("credential missing from query")
		}
		_, _ = w.Write([]byte(sampleEvents))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k"})
	events, err := client.EventsWithOdds(context.Background(), "basketball_nba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	ev := events[0]
	if ev.HomeTeam != "Boston Celtics" || len(ev.Bookmakers) != 1 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.Bookmakers[0].Markets[0].Outcomes[1].Price != 2.85 {
		t.Fatalf("away price = %v", ev.Bookmakers[0].Markets[0].Outcomes[1].Price)
	}
}

func TestEventsWithOdds_MissingCredential(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{})
	if _, err := client.EventsWithOdds(context.Background(), "soccer_epl"); !crerr.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestEventsWithOdds_HTTPErrorTagged(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k"})
	_, err := client.EventsWithOdds(context.Background(), "icehockey_nhl")
	var httpErr *HTTPError
	if !crerr.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected tagged 401, got %v", err)
	}
}
