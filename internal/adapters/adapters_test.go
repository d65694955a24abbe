package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/resolver"
)

type recordedRequest struct {
	endpoint string
	params   map[string]string
}

// fakeProvider routes requests to canned JSON payloads and records every
// call so tests can assert on fallback behavior.
type fakeProvider struct {
	configured bool
	handler    func(endpoint string, params map[string]string) (string, error)
	requests   []recordedRequest
}

func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Request(_ context.Context, endpoint string, params map[string]string, target any) error {
	f.requests = append(f.requests, recordedRequest{endpoint: endpoint, params: params})
	payload, err := f.handler(endpoint, params)
	if err != nil {
		return err
	}
	if target == nil || payload == "" {
		return nil
	}
	return sonic.Unmarshal([]byte(payload), target)
}

func fixedNow() time.Time {
	return time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)
}

func newSoccerForTest(handler func(string, map[string]string) (string, error)) (*SoccerAdapter, *fakeProvider) {
	provider := &fakeProvider{configured: true, handler: handler}
	a := NewSoccer(SoccerConfig{
		Provider: provider,
		Resolver: resolver.New(resolver.Config{}),
		Now:      fixedNow,
	})
	return a, provider
}

func TestSoccerFindTeam_SearchCascade(t *testing.T) {
	t.Parallel()

	a, _ := newSoccerForTest(func(endpoint string, params map[string]string) (string, error) {
		if endpoint != "/teams" {
			t.Fatalf("unexpected endpoint %s", endpoint)
		}
		if params["search"] == "Manchester United" {
			return `[{"team":{"id":33,"name":"Manchester United","code":"MUN","country":"England","founded":1878},"venue":{"name":"Old Trafford"}}]`, nil
		}
		return `[]`, nil
	})

	got, err := a.FindTeam(context.Background(), "man utd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "soccer-33" || got.ProviderID != "33" {
		t.Fatalf("canonical id = %q provider id = %q", got.ID, got.ProviderID)
	}
	if got.Name != "Manchester United" || got.Venue != "Old Trafford" || got.Founded != 1878 {
		t.Fatalf("unexpected team %+v", got)
	}
}

func TestSoccerFindTeam_NothingClearsThreshold(t *testing.T) {
	t.Parallel()

	a, _ := newSoccerForTest(func(endpoint string, params map[string]string) (string, error) {
		return `[{"team":{"id":99,"name":"Completely Different Name"},"venue":{}}]`, nil
	})

	_, err := a.FindTeam(context.Background(), "Zzzz Qqqq Xxxx")
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestSoccerTeamStats_StandingsFallback(t *testing.T) {
	t.Parallel()

	a, provider := newSoccerForTest(func(endpoint string, params map[string]string) (string, error) {
		switch endpoint {
		case "/teams/statistics":
			// Provider reachable but empty: zero games played.
			return `{"form":"","fixtures":{"played":{"total":0},"wins":{"total":0},"draws":{"total":0},"loses":{"total":0}},"goals":{"for":{"total":{"total":0}},"against":{"total":{"total":0}}}}`, nil
		case "/standings":
			return `[{"league":{"id":39,"name":"Premier League","season":2025,"standings":[[
				{"rank":2,"team":{"id":33,"name":"Manchester United"},"points":24,"form":"DWWLW",
				 "all":{"played":11,"win":7,"draw":3,"lose":1,"goals":{"for":22,"against":9}}}
			]]}}]`, nil
		default:
			t.Fatalf("unexpected endpoint %s", endpoint)
			return "", nil
		}
	})

	stats, err := a.TeamStats(context.Background(), "soccer-33", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := stats.Validate(); err != nil {
		t.Fatalf("derived stats break the record invariant: %v", err)
	}
	if stats.Wins != 7 || stats.Losses != 1 || stats.Draws != 3 || stats.GamesPlayed != 11 {
		t.Fatalf("record = %+v", stats)
	}
	// Provider form is oldest-first; the model wants most recent first.
	if stats.Form != "WLWWD" {
		t.Fatalf("form = %q, want WLWWD", stats.Form)
	}
	if stats.Streak != "W1" {
		t.Fatalf("streak = %q", stats.Streak)
	}
	if got := stats.Extended["rank"].Number; got != 2 {
		t.Fatalf("rank = %v", got)
	}
	if len(provider.requests) != 2 {
		t.Fatalf("expected statistics then standings, got %d calls", len(provider.requests))
	}
	if provider.requests[0].params["season"] != "2025" {
		t.Fatalf("season param = %q, want 2025 for soccer in November", provider.requests[0].params["season"])
	}
}

func TestSoccerRecentGames_PreviousSeasonFallback(t *testing.T) {
	t.Parallel()

	a, provider := newSoccerForTest(func(endpoint string, params map[string]string) (string, error) {
		if endpoint != "/fixtures" {
			t.Fatalf("unexpected endpoint %s", endpoint)
		}
		if params["season"] == "2025" {
			// Current season has only an upcoming fixture.
			return `[{"fixture":{"id":1,"date":"2025-11-22T15:00:00Z","status":{"short":"NS"}},
				"league":{"id":39,"name":"Premier League","season":2025},
				"teams":{"home":{"id":33,"name":"Manchester United"},"away":{"id":40,"name":"Liverpool"}},
				"goals":{"home":null,"away":null},"score":{"halftime":{},"fulltime":{}}}]`, nil
		}
		return `[
			{"fixture":{"id":2,"date":"2025-05-04T15:00:00Z","status":{"short":"FT"}},
			 "league":{"id":39,"name":"Premier League","season":2024},
			 "teams":{"home":{"id":33,"name":"Manchester United"},"away":{"id":50,"name":"Manchester City"}},
			 "goals":{"home":2,"away":1},"score":{"halftime":{"home":1,"away":0},"fulltime":{"home":2,"away":1}}},
			{"fixture":{"id":3,"date":"2025-05-11T15:00:00Z","status":{"short":"FT"}},
			 "league":{"id":39,"name":"Premier League","season":2024},
			 "teams":{"home":{"id":40,"name":"Liverpool"},"away":{"id":33,"name":"Manchester United"}},
			 "goals":{"home":3,"away":3},"score":{"halftime":{"home":2,"away":1},"fulltime":{"home":3,"away":3}}}
		]`, nil
	})

	recent, err := a.RecentGames(context.Background(), "33", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(provider.requests) != 2 {
		t.Fatalf("expected current-season call plus one retry, got %d", len(provider.requests))
	}
	if provider.requests[1].params["season"] != "2024" {
		t.Fatalf("retry season = %q, want 2024", provider.requests[1].params["season"])
	}
	if len(recent.Games) != 2 {
		t.Fatalf("games = %d, want 2", len(recent.Games))
	}
	// Most recent first.
	if recent.Games[0].ID != "3" || recent.Games[1].ID != "2" {
		t.Fatalf("order = %s, %s", recent.Games[0].ID, recent.Games[1].ID)
	}
	if recent.Summary.Wins != 1 || recent.Summary.Draws != 1 || recent.Summary.Losses != 0 {
		t.Fatalf("summary = %+v", recent.Summary)
	}
	if recent.Summary.GoalsFor != 5 || recent.Summary.GoalsAgainst != 4 {
		t.Fatalf("goals = %+v", recent.Summary)
	}
}

func newBasketballForTest(handler func(string, map[string]string) (string, error)) *BasketballAdapter {
	return NewBasketball(GamesConfig{
		Provider: &fakeProvider{configured: true, handler: handler},
		Resolver: resolver.New(resolver.Config{}),
		Now:      fixedNow,
	})
}

func TestBasketballTeamStats_FromGroupedStandings(t *testing.T) {
	t.Parallel()

	a := newBasketballForTest(func(endpoint string, params map[string]string) (string, error) {
		if endpoint != "/standings" {
			t.Fatalf("unexpected endpoint %s", endpoint)
		}
		if params["season"] != "2025-2026" {
			t.Fatalf("season param = %q, want dual-year NBA season", params["season"])
		}
		return `[[{"position":1,"team":{"id":139,"name":"Boston Celtics"},
			"league":{"id":12,"name":"NBA","season":"2025-2026"},
			"games":{"played":10,"win":{"total":8,"percentage":"0.800"},"draw":{"total":0},"lose":{"total":2}},
			"points":{"for":1150,"against":1080},"form":"LWWWW"}]]`, nil
	})

	stats, err := a.TeamStats(context.Background(), "basketball-139", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Wins != 8 || stats.Losses != 2 || stats.GamesPlayed != 10 {
		t.Fatalf("record = %+v", stats)
	}
	if stats.WinPct != 80 {
		t.Fatalf("win pct = %v", stats.WinPct)
	}
	if stats.AvgFor != 115 || stats.AvgAgainst != 108 {
		t.Fatalf("averages = %v / %v", stats.AvgFor, stats.AvgAgainst)
	}
	if stats.Form != "WWWWL" || stats.Streak != "W4" {
		t.Fatalf("form = %q streak = %q", stats.Form, stats.Streak)
	}
}

func TestBasketballInjuries_NotSupported(t *testing.T) {
	t.Parallel()

	a := newBasketballForTest(func(string, map[string]string) (string, error) {
		t.Fatal("injuries must not reach the provider")
		return "", nil
	})

	_, err := a.Injuries(context.Background(), "basketball-139")
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestFootballHeadToHead_SummaryMatchesGames(t *testing.T) {
	t.Parallel()

	handler := func(endpoint string, params map[string]string) (string, error) {
		switch endpoint {
		case "/teams":
			if params["id"] == "25" || params["search"] == "Kansas City Chiefs" {
				return `[{"id":25,"name":"Kansas City Chiefs","code":"KC"}]`, nil
			}
			return `[{"id":21,"name":"Philadelphia Eagles","code":"PHI"}]`, nil
		case "/games":
			return `[
				{"id":100,"date":"2025-09-14T17:00:00Z","status":{"short":"FT"},
				 "league":{"id":1,"name":"NFL","season":2025},
				 "teams":{"home":{"id":25,"name":"Kansas City Chiefs"},"away":{"id":21,"name":"Philadelphia Eagles"}},
				 "scores":{"home":{"quarter_1":7,"quarter_2":10,"quarter_3":0,"quarter_4":7,"total":24},
				           "away":{"quarter_1":3,"quarter_2":7,"quarter_3":7,"quarter_4":0,"total":17}}},
				{"id":101,"date":"2025-10-05T17:00:00Z","status":{"short":"FT"},
				 "league":{"id":1,"name":"NFL","season":2025},
				 "teams":{"home":{"id":21,"name":"Philadelphia Eagles"},"away":{"id":25,"name":"Kansas City Chiefs"}},
				 "scores":{"home":{"total":31},"away":{"total":28}}}
			]`, nil
		default:
			t.Fatalf("unexpected endpoint %s", endpoint)
			return "", nil
		}
	}

	a := NewFootball(GamesConfig{
		Provider: &fakeProvider{configured: true, handler: handler},
		Resolver: resolver.New(resolver.Config{}),
		Now:      fixedNow,
	})

	h2h, err := a.HeadToHead(context.Background(), "chiefs", "eagles", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h2h.Validate(); err != nil {
		t.Fatalf("summary inconsistent: %v", err)
	}
	if h2h.Summary.TotalGames != len(h2h.Matches) {
		t.Fatalf("total games %d != %d matches", h2h.Summary.TotalGames, len(h2h.Matches))
	}
	if h2h.Summary.Team1Wins != 1 || h2h.Summary.Team2Wins != 1 || h2h.Summary.Draws != 0 {
		t.Fatalf("summary = %+v", h2h.Summary)
	}
	if h2h.Summary.Team1Points != 24+28 || h2h.Summary.Team2Points != 17+31 {
		t.Fatalf("points = %+v", h2h.Summary)
	}
	// Per-period splits survive the transform when the host reports them.
	if len(h2h.Matches) != 2 {
		t.Fatalf("matches = %d", len(h2h.Matches))
	}
	for _, m := range h2h.Matches {
		if m.ID == "100" && len(m.Score.HomePeriods) != 4 {
			t.Fatalf("quarters = %v", m.Score.HomePeriods)
		}
	}
}

func TestRegistry_AvailableAndDispatch(t *testing.T) {
	t.Parallel()

	res := resolver.New(resolver.Config{})
	okProvider := &fakeProvider{configured: true, handler: func(string, map[string]string) (string, error) { return "[]", nil }}
	missingKey := &fakeProvider{configured: false, handler: func(string, map[string]string) (string, error) { return "[]", nil }}

	registry := NewRegistry()
	if err := registry.Register(NewSoccer(SoccerConfig{Provider: okProvider, Resolver: res})); err != nil {
		t.Fatalf("register soccer: %v", err)
	}
	if err := registry.Register(NewBasketball(GamesConfig{Provider: missingKey, Resolver: res})); err != nil {
		t.Fatalf("register basketball: %v", err)
	}

	available := registry.Available()
	if len(available) != 1 || available[0] != sport.Soccer {
		t.Fatalf("available = %v, want [soccer]", available)
	}

	if _, err := registry.Get(sport.Hockey); !errors.Is(err, ErrSportNotSupported) {
		t.Fatalf("expected ErrSportNotSupported, got %v", err)
	}
	if err := registry.Register(NewSoccer(SoccerConfig{Provider: okProvider, Resolver: res})); err == nil {
		t.Fatal("duplicate registration must fail")
	}
}
