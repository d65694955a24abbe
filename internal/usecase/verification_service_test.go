package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stefanautomateed/sportsdata/internal/domain/enriched"
	"github.com/stefanautomateed/sportsdata/internal/domain/envelope"
	"github.com/stefanautomateed/sportsdata/internal/domain/headtohead"
	"github.com/stefanautomateed/sportsdata/internal/domain/match"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
	"github.com/stefanautomateed/sportsdata/internal/platform/cache"
)

type fakeEnricher struct {
	result envelope.Envelope[enriched.Match]
}

func (f *fakeEnricher) GetEnrichedMatchData(context.Context, EnrichedQuery) envelope.Envelope[enriched.Match] {
	return f.result
}

func fullEnrichedMatch() enriched.Match {
	homeStats := validStats("soccer-33")
	awayStats := validStats("soccer-40")
	h2h := headtohead.Build("soccer-33", "soccer-40", []match.Match{{
		ID:       "1",
		HomeTeam: team.Team{ID: "soccer-33"},
		AwayTeam: team.Team{ID: "soccer-40"},
		Score:    &match.Score{Home: 2, Away: 1},
	}})
	return enriched.Match{
		Sport:  sport.Soccer,
		Season: "2025",
		Home:   enriched.Side{Team: team.Team{ID: "soccer-33", Name: "Manchester United"}, Stats: &homeStats},
		Away:   enriched.Side{Team: team.Team{ID: "soccer-40", Name: "Liverpool"}, Stats: &awayStats},
		H2H:    &h2h,
	}
}

func verify(t *testing.T, em enriched.Match) envelope.Envelope[VerifiedMatch] {
	t.Helper()
	service := NewVerificationService(VerificationConfig{
		DataLayer: &fakeEnricher{result: envelope.OK(em, envelope.Metadata{Provider: providerStats})},
	})
	return service.GetVerifiedMatchData(context.Background(), EnrichedQuery{
		Sport:    sport.Soccer,
		HomeTeam: "Manchester United",
		AwayTeam: "Liverpool",
	})
}

func TestGetVerifiedMatchData_GradesHigh(t *testing.T) {
	t.Parallel()

	result := verify(t, fullEnrichedMatch())
	if !result.Success {
		t.Fatalf("unexpected failure: %+v", result.Error)
	}
	if result.Data.Grade != GradeHigh {
		t.Fatalf("grade = %s, want %s (warnings: %v)", result.Data.Grade, GradeHigh, result.Data.Warnings)
	}
	if !result.Data.SufficientForAnalysis {
		t.Fatal("both sides carry verified stats; the gate must open")
	}
}

func TestGetVerifiedMatchData_GradesUnavailable(t *testing.T) {
	t.Parallel()

	result := verify(t, enriched.Match{
		Sport:  sport.Soccer,
		Season: "2025",
		Home:   enriched.Side{Team: team.Team{ID: "soccer-33"}},
		Away:   enriched.Side{Team: team.Team{ID: "soccer-40"}},
	})
	if result.Data.Grade != GradeUnavailable {
		t.Fatalf("grade = %s, want %s", result.Data.Grade, GradeUnavailable)
	}
	if result.Data.SufficientForAnalysis {
		t.Fatal("gate must stay shut with no verified stats")
	}
}

func TestGetVerifiedMatchData_OneSideIsMedium(t *testing.T) {
	t.Parallel()

	em := fullEnrichedMatch()
	em.Away.Stats = nil
	em.H2H = nil

	result := verify(t, em)
	if result.Data.Grade != GradeMedium {
		t.Fatalf("grade = %s, want %s", result.Data.Grade, GradeMedium)
	}
	if !result.Data.SufficientForAnalysis {
		t.Fatal("one verified side is enough for the gate")
	}
}

func TestGetVerifiedMatchData_WarningsBlockHigh(t *testing.T) {
	t.Parallel()

	em := fullEnrichedMatch()
	em.Warnings = []string{"away injuries unavailable: NETWORK_ERROR"}

	result := verify(t, em)
	if result.Data.Grade == GradeHigh {
		t.Fatal("warnings must block the HIGH grade")
	}
	if result.Data.Grade != GradeMedium {
		t.Fatalf("grade = %s, want %s", result.Data.Grade, GradeMedium)
	}
}

func TestGetVerifiedMatchData_SeasonEchoMismatchWarns(t *testing.T) {
	t.Parallel()

	em := fullEnrichedMatch()
	em.Home.Stats.Season = "2023"

	result := verify(t, em)
	found := false
	for _, w := range result.Data.Warnings {
		if strings.Contains(w, "home stats echo season 2023") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a season mismatch warning, got %v", result.Data.Warnings)
	}
	if result.Data.Grade == GradeHigh {
		t.Fatal("a season mismatch must block the HIGH grade")
	}
}

func TestGetVerifiedMatchData_EquivalentSeasonRepresentations(t *testing.T) {
	t.Parallel()

	em := fullEnrichedMatch()
	em.Sport = sport.Basketball
	em.Season = "2025-2026"
	em.Home.Stats.Season = "2025"
	em.Away.Stats.Season = "2025-2026"

	result := verify(t, em)
	if len(result.Data.Warnings) != 0 {
		t.Fatalf("the two representations of one cycle must not warn: %v", result.Data.Warnings)
	}
	if result.Data.Grade != GradeHigh {
		t.Fatalf("grade = %s, want %s", result.Data.Grade, GradeHigh)
	}
}

func TestGetVerifiedMatchData_PassesFailureThrough(t *testing.T) {
	t.Parallel()

	service := NewVerificationService(VerificationConfig{
		DataLayer: &fakeEnricher{result: envelope.Fail[enriched.Match](
			CodeTeamNotFound, "team not found", envelope.Metadata{Provider: providerStats},
		)},
	})

	result := service.GetVerifiedMatchData(context.Background(), EnrichedQuery{
		Sport:    sport.Soccer,
		HomeTeam: "Nobody",
		AwayTeam: "No One",
	})
	if result.Success || result.Error == nil || result.Error.Code != CodeTeamNotFound {
		t.Fatalf("orchestrator failures must pass through, got %+v", result.Error)
	}
}

func TestGetVerifiedMatchData_RetainsIdentityAndSnapshots(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(time.Minute)
	service := NewVerificationService(VerificationConfig{
		DataLayer:   &fakeEnricher{result: envelope.OK(fullEnrichedMatch(), envelope.Metadata{})},
		Cache:       store,
		IdentityTTL: time.Hour,
		SnapshotTTL: time.Minute,
	})

	result := service.GetVerifiedMatchData(context.Background(), EnrichedQuery{
		Sport:    sport.Soccer,
		HomeTeam: "Manchester United",
		AwayTeam: "Liverpool",
	})
	if !result.Success {
		t.Fatalf("unexpected failure: %+v", result.Error)
	}

	type key struct {
		Sport sport.Sport `json:"sport"`
		ID    string      `json:"id"`
	}
	if _, ok := store.Get(context.Background(), cache.Key("verifiedIdentity", key{sport.Soccer, "soccer-33"})); !ok {
		t.Fatal("resolved identity must be retained under the identity TTL")
	}
	if _, ok := store.Get(context.Background(), cache.Key("verifiedStats", key{sport.Soccer, "soccer-33"})); !ok {
		t.Fatal("stat snapshot must be retained under the snapshot TTL")
	}
}
