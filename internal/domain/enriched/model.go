package enriched

import (
	"github.com/stefanautomateed/sportsdata/internal/domain/headtohead"
	"github.com/stefanautomateed/sportsdata/internal/domain/injury"
	"github.com/stefanautomateed/sportsdata/internal/domain/match"
	"github.com/stefanautomateed/sportsdata/internal/domain/odds"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
	"github.com/stefanautomateed/sportsdata/internal/domain/teamstats"
)

// Side is everything the layer could gather about one side of a fixture.
// Nil pointers and empty slices mean the sub-fetch failed or was switched
// off; partial sides are the norm.
type Side struct {
	Team     team.Team
	Stats    *teamstats.TeamStats
	Recent   *match.RecentGames
	Injuries []injury.Injury
}

// Match is the composition root handed to consumers: the fixture plus both
// sides, optional head-to-head history and optional bookmaker odds. Built in
// memory per request and never persisted by this layer.
type Match struct {
	Sport    sport.Sport
	Season   string
	Home     Side
	Away     Side
	H2H      *headtohead.HeadToHead
	Odds     *odds.Odds
	Warnings []string
}
