package adapters

import (
	"context"
	"errors"

	"github.com/stefanautomateed/sportsdata/internal/domain/headtohead"
	"github.com/stefanautomateed/sportsdata/internal/domain/injury"
	"github.com/stefanautomateed/sportsdata/internal/domain/match"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
	"github.com/stefanautomateed/sportsdata/internal/domain/teamstats"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrStatsNotFound     = errors.New("statistics not found")
	ErrNotSupported      = errors.New("capability not supported for this sport")
	ErrSportNotSupported = errors.New("no adapter registered for sport")
)

// ProviderClient is the transport capability an adapter builds on; satisfied
// by *apisports.Client. Keeping it an interface lets adapter tests run
// against canned payloads.
type ProviderClient interface {
	Configured() bool
	Request(ctx context.Context, endpoint string, params map[string]string, target any) error
}

// MatchFilters narrows a Matches query. Zero values mean "no constraint";
// an empty season defaults to the sport's current one.
type MatchFilters struct {
	TeamID string
	Season string
	League string
}

// Adapter is the common capability contract implemented once per sport.
// Implementations translate provider quirks into the common model and never
// leak provider wire types upward.
type Adapter interface {
	Sport() sport.Sport

	// Available reports whether the adapter's provider credential check
	// passes. Unavailable adapters stay registered but are skipped.
	Available() bool

	// FindTeam accepts a canonical id, provider-native id or any spelling of
	// a team name. Returns ErrTeamNotFound when the search cascade exhausts
	// every variation without clearing the fuzzy threshold.
	FindTeam(ctx context.Context, nameOrID string) (team.Team, error)

	Matches(ctx context.Context, filters MatchFilters) ([]match.Match, error)

	// TeamStats tries the provider's statistics endpoint first and derives
	// an equivalent record from standings when the sport has none. Returns
	// ErrStatsNotFound when both are empty.
	TeamStats(ctx context.Context, teamID, season string) (teamstats.TeamStats, error)

	// RecentGames returns up to limit finished games, most recent first,
	// retrying the immediately preceding season when the current one has no
	// finished games yet.
	RecentGames(ctx context.Context, teamID string, limit int) (match.RecentGames, error)

	HeadToHead(ctx context.Context, teamA, teamB string, limit int) (headtohead.HeadToHead, error)

	// Injuries is an optional capability; sports without provider support
	// return ErrNotSupported rather than failing.
	Injuries(ctx context.Context, teamID string) ([]injury.Injury, error)
}
