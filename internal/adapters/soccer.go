package adapters

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stefanautomateed/sportsdata/external/apisports"
	"github.com/stefanautomateed/sportsdata/internal/domain/headtohead"
	"github.com/stefanautomateed/sportsdata/internal/domain/injury"
	"github.com/stefanautomateed/sportsdata/internal/domain/match"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
	"github.com/stefanautomateed/sportsdata/internal/domain/teamstats"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
	"github.com/stefanautomateed/sportsdata/internal/resolver"
)

type SoccerConfig struct {
	Provider       ProviderClient
	Resolver       *resolver.Resolver
	Logger         *logging.Logger
	FuzzyThreshold int
	LeagueID       int64  // provider league id used for stats and standings
	LeagueName     string
	Now            func() time.Time
}

// SoccerAdapter maps the v3 football host onto the common contract. Soccer
// is the one sport with a direct team-statistics endpoint, so the standings
// derivation is a fallback rather than the primary path.
type SoccerAdapter struct {
	base
	leagueID   int64
	leagueName string
	now        func() time.Time
}

func NewSoccer(cfg SoccerConfig) *SoccerAdapter {
	leagueID := cfg.LeagueID
	if leagueID == 0 {
		leagueID = 39 // Premier League
	}
	leagueName := cfg.LeagueName
	if leagueName == "" {
		leagueName = "Premier League"
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &SoccerAdapter{
		base:       newBase(sport.Soccer, cfg.Provider, cfg.Resolver, cfg.Logger, cfg.FuzzyThreshold),
		leagueID:   leagueID,
		leagueName: leagueName,
		now:        now,
	}
}

func (a *SoccerAdapter) Sport() sport.Sport { return sport.Soccer }
func (a *SoccerAdapter) Available() bool    { return a.available() }

func (a *SoccerAdapter) currentSeason() string {
	return sport.CurrentSeason(sport.Soccer, a.now())
}

func (a *SoccerAdapter) FindTeam(ctx context.Context, nameOrID string) (team.Team, error) {
	native := a.nativeID(nameOrID)
	if isNumericID(native) {
		var entries []apisports.SoccerTeamEntry
		if err := a.provider.Request(ctx, "/teams", map[string]string{"id": native}, &entries); err != nil {
			return team.Team{}, err
		}
		if len(entries) == 0 {
			return team.Team{}, fmt.Errorf("%w: id %s", ErrTeamNotFound, native)
		}
		return a.toTeam(entries[0]), nil
	}

	for _, variation := range a.resolver.SearchVariations(nameOrID, sport.Soccer) {
		var entries []apisports.SoccerTeamEntry
		if err := a.provider.Request(ctx, "/teams", map[string]string{"search": variation}, &entries); err != nil {
			return team.Team{}, err
		}

		candidates := make([]teamCandidate, 0, len(entries))
		for _, e := range entries {
			candidates = append(candidates, teamCandidate{
				id:      e.Team.ID,
				name:    e.Team.Name,
				code:    e.Team.Code,
				country: e.Team.Country,
				venue:   e.Venue.Name,
				founded: e.Team.Founded,
			})
		}

		if picked, ok := a.pickCandidate(variation, candidates); ok {
			for _, e := range entries {
				if e.Team.ID == picked.id {
					return a.toTeam(e), nil
				}
			}
		}
	}

	return team.Team{}, fmt.Errorf("%w: %q", ErrTeamNotFound, nameOrID)
}

func (a *SoccerAdapter) toTeam(e apisports.SoccerTeamEntry) team.Team {
	providerID := strconv.FormatInt(e.Team.ID, 10)
	return team.Team{
		ID:         team.CanonicalID(sport.Soccer, providerID),
		ProviderID: providerID,
		Name:       e.Team.Name,
		ShortName:  e.Team.Code,
		Sport:      sport.Soccer,
		League:     a.leagueName,
		Country:    e.Team.Country,
		Venue:      e.Venue.Name,
		Founded:    e.Team.Founded,
	}
}

func (a *SoccerAdapter) Matches(ctx context.Context, filters MatchFilters) ([]match.Match, error) {
	season := filters.Season
	if season == "" {
		season = a.currentSeason()
	}

	params := map[string]string{"season": season}
	if filters.TeamID != "" {
		params["team"] = a.nativeID(filters.TeamID)
	}
	if filters.League != "" {
		params["league"] = filters.League
	} else if filters.TeamID == "" {
		params["league"] = strconv.FormatInt(a.leagueID, 10)
	}

	var fixtures []apisports.SoccerFixture
	if err := a.provider.Request(ctx, "/fixtures", params, &fixtures); err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, a.toMatch(f))
	}
	return out, nil
}

func (a *SoccerAdapter) toMatch(f apisports.SoccerFixture) match.Match {
	homeID := strconv.FormatInt(f.Teams.Home.ID, 10)
	awayID := strconv.FormatInt(f.Teams.Away.ID, 10)

	m := match.Match{
		ID:      strconv.FormatInt(f.Fixture.ID, 10),
		Sport:   sport.Soccer,
		League:  f.League.Name,
		Season:  f.League.Season.String(),
		Status:  match.NormalizeStatus(f.Fixture.Status.Short),
		Kickoff: f.Fixture.Date,
		Venue:   f.Fixture.Venue.Name,
		HomeTeam: team.Team{
			ID:         team.CanonicalID(sport.Soccer, homeID),
			ProviderID: homeID,
			Name:       f.Teams.Home.Name,
			Sport:      sport.Soccer,
			League:     f.League.Name,
		},
		AwayTeam: team.Team{
			ID:         team.CanonicalID(sport.Soccer, awayID),
			ProviderID: awayID,
			Name:       f.Teams.Away.Name,
			Sport:      sport.Soccer,
			League:     f.League.Name,
		},
	}

	if f.Goals.Home != nil && f.Goals.Away != nil {
		score := &match.Score{Home: *f.Goals.Home, Away: *f.Goals.Away}
		if f.Score.Halftime.Home != nil && f.Score.Halftime.Away != nil {
			firstHalfHome, firstHalfAway := *f.Score.Halftime.Home, *f.Score.Halftime.Away
			score.HomePeriods = []int{firstHalfHome, score.Home - firstHalfHome}
			score.AwayPeriods = []int{firstHalfAway, score.Away - firstHalfAway}
		}
		m.Score = score
	}

	return m
}

func (a *SoccerAdapter) TeamStats(ctx context.Context, teamID, season string) (teamstats.TeamStats, error) {
	if season == "" {
		season = a.currentSeason()
	}
	native := a.nativeID(teamID)

	params := map[string]string{
		"team":   native,
		"league": strconv.FormatInt(a.leagueID, 10),
		"season": season,
	}

	var stats apisports.SoccerTeamStatistics
	err := a.provider.Request(ctx, "/teams/statistics", params, &stats)
	if err == nil && stats.Fixtures.Played.Total > 0 {
		s := teamstats.TeamStats{
			TeamID:        team.CanonicalID(sport.Soccer, native),
			Season:        season,
			Wins:          stats.Fixtures.Wins.Total,
			Losses:        stats.Fixtures.Loses.Total,
			Draws:         stats.Fixtures.Draws.Total,
			PointsFor:     stats.Goals.For.Total.Total,
			PointsAgainst: stats.Goals.Against.Total.Total,
			Form:          reverseForm(stats.Form),
		}
		s.Streak = streakFromForm(s.Form)
		s.Derive()
		return s, nil
	}
	if err != nil {
		a.logger.DebugContext(ctx, "statistics endpoint unusable, deriving from standings",
			"team", native, "season", season, "error", err)
	}

	return a.statsFromStandings(ctx, native, season)
}

func (a *SoccerAdapter) statsFromStandings(ctx context.Context, native, season string) (teamstats.TeamStats, error) {
	params := map[string]string{
		"league": strconv.FormatInt(a.leagueID, 10),
		"season": season,
	}

	var entries []apisports.SoccerStandingsEntry
	if err := a.provider.Request(ctx, "/standings", params, &entries); err != nil {
		return teamstats.TeamStats{}, err
	}

	for _, entry := range entries {
		for _, group := range entry.League.Standings {
			for _, row := range group {
				if strconv.FormatInt(row.Team.ID, 10) != native {
					continue
				}
				s := teamstats.TeamStats{
					TeamID:        team.CanonicalID(sport.Soccer, native),
					Season:        season,
					Wins:          row.All.Win,
					Losses:        row.All.Lose,
					Draws:         row.All.Draw,
					PointsFor:     row.All.Goals.For,
					PointsAgainst: row.All.Goals.Against,
					Form:          reverseForm(row.Form),
					Extended: map[string]teamstats.StatValue{
						"rank":         teamstats.Number(float64(row.Rank)),
						"table_points": teamstats.Number(float64(row.Points)),
					},
				}
				s.Streak = streakFromForm(s.Form)
				s.Derive()
				return s, nil
			}
		}
	}

	return teamstats.TeamStats{}, fmt.Errorf("%w: team %s season %s", ErrStatsNotFound, native, season)
}

func (a *SoccerAdapter) RecentGames(ctx context.Context, teamID string, limit int) (match.RecentGames, error) {
	native := a.nativeID(teamID)
	canonical := team.CanonicalID(sport.Soccer, native)

	season := a.currentSeason()
	games, err := a.finishedGames(ctx, native, season, limit)
	if err != nil {
		return match.RecentGames{}, err
	}
	if len(games) == 0 {
		// Early in a season there may be nothing finished yet; look one
		// season back before giving up.
		games, err = a.finishedGames(ctx, native, sport.PreviousSeason(season), limit)
		if err != nil {
			return match.RecentGames{}, err
		}
	}

	return match.RecentGames{
		TeamID:  canonical,
		Games:   games,
		Summary: match.SummarizeFor(canonical, games),
	}, nil
}

func (a *SoccerAdapter) finishedGames(ctx context.Context, native, season string, limit int) ([]match.Match, error) {
	var fixtures []apisports.SoccerFixture
	params := map[string]string{"team": native, "season": season}
	if err := a.provider.Request(ctx, "/fixtures", params, &fixtures); err != nil {
		return nil, err
	}

	games := make([]match.Match, 0, len(fixtures))
	for _, f := range fixtures {
		games = append(games, a.toMatch(f))
	}
	return finishedMostRecentFirst(games, limit), nil
}

func (a *SoccerAdapter) HeadToHead(ctx context.Context, teamA, teamB string, limit int) (headtohead.HeadToHead, error) {
	home, err := a.FindTeam(ctx, teamA)
	if err != nil {
		return headtohead.HeadToHead{}, err
	}
	away, err := a.FindTeam(ctx, teamB)
	if err != nil {
		return headtohead.HeadToHead{}, err
	}

	season := a.currentSeason()
	games, err := a.h2hGames(ctx, home.ProviderID, away.ProviderID, season, limit)
	if err != nil {
		return headtohead.HeadToHead{}, err
	}
	if len(games) == 0 {
		games, err = a.h2hGames(ctx, home.ProviderID, away.ProviderID, sport.PreviousSeason(season), limit)
		if err != nil {
			return headtohead.HeadToHead{}, err
		}
	}

	return headtohead.Build(home.ID, away.ID, games), nil
}

func (a *SoccerAdapter) h2hGames(ctx context.Context, homeID, awayID, season string, limit int) ([]match.Match, error) {
	params := map[string]string{
		"h2h":    homeID + "-" + awayID,
		"season": season,
	}
	if limit > 0 {
		params["last"] = strconv.Itoa(limit)
	}

	var fixtures []apisports.SoccerFixture
	if err := a.provider.Request(ctx, "/fixtures/headtohead", params, &fixtures); err != nil {
		return nil, err
	}

	games := make([]match.Match, 0, len(fixtures))
	for _, f := range fixtures {
		games = append(games, a.toMatch(f))
	}
	return finishedMostRecentFirst(games, limit), nil
}

func (a *SoccerAdapter) Injuries(ctx context.Context, teamID string) ([]injury.Injury, error) {
	native := a.nativeID(teamID)
	params := map[string]string{
		"team":   native,
		"season": a.currentSeason(),
	}

	var entries []apisports.SoccerInjuryEntry
	if err := a.provider.Request(ctx, "/injuries", params, &entries); err != nil {
		return nil, err
	}

	out := make([]injury.Injury, 0, len(entries))
	for _, e := range entries {
		out = append(out, injury.Injury{
			PlayerID:    strconv.FormatInt(e.Player.ID, 10),
			PlayerName:  e.Player.Name,
			TeamID:      team.CanonicalID(sport.Soccer, strconv.FormatInt(e.Team.ID, 10)),
			Category:    e.Player.Reason,
			Status:      injury.NormalizeStatus(e.Player.Type),
			Description: e.Player.Name + ": " + e.Player.Reason,
		})
	}
	return out, nil
}
