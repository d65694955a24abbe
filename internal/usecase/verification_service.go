package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/stefanautomateed/sportsdata/internal/domain/enriched"
	"github.com/stefanautomateed/sportsdata/internal/domain/envelope"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
	"github.com/stefanautomateed/sportsdata/internal/domain/teamstats"
	"github.com/stefanautomateed/sportsdata/internal/platform/cache"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
)

// QualityGrade is the overlay's verdict on whether assembled data is
// trustworthy enough for downstream analysis.
type QualityGrade string

const (
	GradeHigh        QualityGrade = "HIGH"
	GradeMedium      QualityGrade = "MEDIUM"
	GradeLow         QualityGrade = "LOW"
	GradeUnavailable QualityGrade = "UNAVAILABLE"
)

const (
	defaultIdentityTTL = 72 * time.Hour
	defaultSnapshotTTL = 6 * time.Hour
	defaultFormMinimum = 3
)

// VerifiedMatch is the enriched view plus the overlay's provenance verdict.
type VerifiedMatch struct {
	Match                 enriched.Match `json:"match"`
	Grade                 QualityGrade   `json:"grade"`
	Warnings              []string       `json:"warnings"`
	SufficientForAnalysis bool           `json:"sufficientForAnalysis"`
}

// EnrichedFetcher is the slice of the orchestrator the overlay wraps; it
// never talks to providers directly.
type EnrichedFetcher interface {
	GetEnrichedMatchData(ctx context.Context, q EnrichedQuery) envelope.Envelope[enriched.Match]
}

type VerificationConfig struct {
	DataLayer EnrichedFetcher
	Cache     *cache.Store
	Logger    *logging.Logger
	// IdentityTTL caches resolved team identities; identity is stable, so it
	// runs for days. SnapshotTTL covers numeric stat snapshots that move
	// during a season and runs for hours.
	IdentityTTL time.Duration
	SnapshotTTL time.Duration
	// FormMinimum is how many form entries a HIGH grade requires.
	FormMinimum int
}

// VerificationService wraps the orchestrator for callers that must not act
// on unverified numbers: it cross-validates season echoes, grades data
// quality and gates analysis readiness.
type VerificationService struct {
	dataLayer   EnrichedFetcher
	cache       *cache.Store
	logger      *logging.Logger
	identityTTL time.Duration
	snapshotTTL time.Duration
	formMinimum int
}

func NewVerificationService(cfg VerificationConfig) *VerificationService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	identityTTL := cfg.IdentityTTL
	if identityTTL <= 0 {
		identityTTL = defaultIdentityTTL
	}
	snapshotTTL := cfg.SnapshotTTL
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}
	formMinimum := cfg.FormMinimum
	if formMinimum <= 0 {
		formMinimum = defaultFormMinimum
	}
	return &VerificationService{
		dataLayer:   cfg.DataLayer,
		cache:       cfg.Cache,
		logger:      logger,
		identityTTL: identityTTL,
		snapshotTTL: snapshotTTL,
		formMinimum: formMinimum,
	}
}

// GetVerifiedMatchData enriches the fixture, then layers season
// cross-validation, the quality grade and the sufficiency gate on top.
// Orchestrator failures pass through unchanged.
func (v *VerificationService) GetVerifiedMatchData(ctx context.Context, q EnrichedQuery) envelope.Envelope[VerifiedMatch] {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.GetVerifiedMatchData")
	defer span.End()

	result := v.dataLayer.GetEnrichedMatchData(ctx, q)
	if !result.Success {
		code, message := CodeFetchError, "enrichment failed"
		if result.Error != nil {
			code, message = result.Error.Code, result.Error.Message
		}
		return envelope.Fail[VerifiedMatch](code, message, result.Metadata)
	}

	em := result.Data
	warnings := append([]string(nil), em.Warnings...)
	warnings = append(warnings, v.seasonWarnings(em)...)

	verified := VerifiedMatch{
		Match:                 em,
		Grade:                 v.grade(em, warnings),
		Warnings:              warnings,
		SufficientForAnalysis: SufficientForAnalysis(em),
	}

	v.retain(ctx, q.Sport, em)

	if verified.Grade == GradeUnavailable {
		v.logger.WarnContext(ctx, "enriched match carries no usable data",
			"sport", q.Sport, "home", q.HomeTeam, "away", q.AwayTeam)
	}

	return envelope.OK(verified, result.Metadata)
}

// seasonWarnings compares the season each provider echoed back against the
// season the aggregation targeted, tolerating the two representations of the
// same cycle ("2025" vs "2025-2026").
func (v *VerificationService) seasonWarnings(em enriched.Match) []string {
	requested := em.Season
	if requested == "" {
		return nil
	}

	var out []string
	check := func(side string, stats *teamstats.TeamStats) {
		if stats == nil || stats.Season == "" {
			return
		}
		if !sport.SeasonsEquivalent(requested, stats.Season) {
			out = append(out, fmt.Sprintf("%s stats echo season %s, requested %s", side, stats.Season, requested))
		}
	}
	check("home", em.Home.Stats)
	check("away", em.Away.Stats)

	return out
}

// grade assigns the four-level quality verdict. HIGH demands both sides'
// stats, head-to-head history, enough form entries and a clean warnings
// list; everything between that and "nothing at all" is MEDIUM or LOW.
func (v *VerificationService) grade(em enriched.Match, warnings []string) QualityGrade {
	homeStats := statsUsable(em.Home.Stats)
	awayStats := statsUsable(em.Away.Stats)
	hasH2H := em.H2H != nil && em.H2H.Summary.TotalGames > 0
	hasRecent := (em.Home.Recent != nil && len(em.Home.Recent.Games) > 0) ||
		(em.Away.Recent != nil && len(em.Away.Recent.Games) > 0)
	hasAny := homeStats || awayStats || hasH2H || hasRecent ||
		len(em.Home.Injuries) > 0 || len(em.Away.Injuries) > 0 || em.Odds != nil

	if !hasAny {
		return GradeUnavailable
	}

	if homeStats && awayStats && hasH2H && len(warnings) == 0 &&
		formEntries(em) >= v.formMinimum {
		return GradeHigh
	}

	if homeStats || awayStats {
		return GradeMedium
	}
	if len(warnings) > 0 && (hasH2H || hasRecent) {
		return GradeMedium
	}

	return GradeLow
}

// SufficientForAnalysis is the minimum bar downstream callers must consult
// before treating a payload as analysis-ready: at least one side carries
// verified stats.
func SufficientForAnalysis(em enriched.Match) bool {
	return statsUsable(em.Home.Stats) || statsUsable(em.Away.Stats)
}

func statsUsable(stats *teamstats.TeamStats) bool {
	if stats == nil || stats.GamesPlayed == 0 {
		return false
	}
	return stats.Validate() == nil
}

// formEntries is the longest form string either side carries.
func formEntries(em enriched.Match) int {
	longest := 0
	if em.Home.Stats != nil && len(em.Home.Stats.Form) > longest {
		longest = len(em.Home.Stats.Form)
	}
	if em.Away.Stats != nil && len(em.Away.Stats.Form) > longest {
		longest = len(em.Away.Stats.Form)
	}
	return longest
}

// retain writes the stable and the fast-moving parts of the view back under
// their own TTLs so later verifications reuse identity without re-verifying
// stat snapshots past their freshness window.
func (v *VerificationService) retain(ctx context.Context, sp sport.Sport, em enriched.Match) {
	if v.cache == nil {
		return
	}

	keep := func(op string, id string, value any, ttl time.Duration) {
		if id == "" {
			return
		}
		type key struct {
			Sport sport.Sport `json:"sport"`
			ID    string      `json:"id"`
		}
		v.cache.SetTTL(ctx, cache.Key(op, key{sp, id}), value, ttl)
	}

	keepIdentity := func(t team.Team) {
		keep("verifiedIdentity", t.ID, t, v.identityTTL)
	}
	keepIdentity(em.Home.Team)
	keepIdentity(em.Away.Team)

	if em.Home.Stats != nil {
		keep("verifiedStats", em.Home.Stats.TeamID, *em.Home.Stats, v.snapshotTTL)
	}
	if em.Away.Stats != nil {
		keep("verifiedStats", em.Away.Stats.TeamID, *em.Away.Stats, v.snapshotTTL)
	}
}
