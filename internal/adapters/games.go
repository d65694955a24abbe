package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

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

type seasonStyle int

const (
	seasonStyleSingle seasonStyle = iota // "2025"
	seasonStyleDual                      // "2025-2026", NBA-style
)

// GamesConfig configures one adapter over an API-Sports "games" host
// (basketball, hockey, american football share this wire shape).
type GamesConfig struct {
	Provider       ProviderClient
	Resolver       *resolver.Resolver
	Logger         *logging.Logger
	FuzzyThreshold int
	LeagueID       int64
	LeagueName     string
	Now            func() time.Time
}

// gamesAdapter implements the contract for the three hosts that expose a
// /games endpoint and no per-team statistics endpoint; season aggregates are
// always derived from standings.
type gamesAdapter struct {
	base
	leagueID          int64
	leagueName        string
	style             seasonStyle
	injuriesSupported bool
	now               func() time.Time
}

func newGamesAdapter(s sport.Sport, cfg GamesConfig, style seasonStyle, injuries bool, defaultLeagueID int64, defaultLeagueName string) gamesAdapter {
	leagueID := cfg.LeagueID
	if leagueID == 0 {
		leagueID = defaultLeagueID
	}
	leagueName := cfg.LeagueName
	if leagueName == "" {
		leagueName = defaultLeagueName
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return gamesAdapter{
		base:              newBase(s, cfg.Provider, cfg.Resolver, cfg.Logger, cfg.FuzzyThreshold),
		leagueID:          leagueID,
		leagueName:        leagueName,
		style:             style,
		injuriesSupported: injuries,
		now:               now,
	}
}

func (a *gamesAdapter) Sport() sport.Sport { return a.sport }
func (a *gamesAdapter) Available() bool    { return a.available() }

func (a *gamesAdapter) currentSeason() string {
	if a.style == seasonStyleDual {
		return sport.CurrentSeason(a.sport, a.now())
	}
	return sport.CurrentSeasonSingleYear(a.sport, a.now())
}

func (a *gamesAdapter) FindTeam(ctx context.Context, nameOrID string) (team.Team, error) {
	native := a.nativeID(nameOrID)
	if isNumericID(native) {
		var entries []apisports.GamesTeamEntry
		if err := a.provider.Request(ctx, "/teams", map[string]string{"id": native}, &entries); err != nil {
			return team.Team{}, err
		}
		if len(entries) == 0 {
			return team.Team{}, fmt.Errorf("%w: id %s", ErrTeamNotFound, native)
		}
		return a.toTeam(entries[0]), nil
	}

	for _, variation := range a.resolver.SearchVariations(nameOrID, a.sport) {
		var entries []apisports.GamesTeamEntry
		if err := a.provider.Request(ctx, "/teams", map[string]string{"search": variation}, &entries); err != nil {
			return team.Team{}, err
		}

		candidates := make([]teamCandidate, 0, len(entries))
		for _, e := range entries {
			candidates = append(candidates, teamCandidate{
				id:      e.ID,
				name:    e.Name,
				code:    e.Code,
				country: e.Country.Name,
			})
		}

		if picked, ok := a.pickCandidate(variation, candidates); ok {
			for _, e := range entries {
				if e.ID == picked.id {
					return a.toTeam(e), nil
				}
			}
		}
	}

	return team.Team{}, fmt.Errorf("%w: %q", ErrTeamNotFound, nameOrID)
}

func (a *gamesAdapter) toTeam(e apisports.GamesTeamEntry) team.Team {
	providerID := strconv.FormatInt(e.ID, 10)
	return team.Team{
		ID:         team.CanonicalID(a.sport, providerID),
		ProviderID: providerID,
		Name:       e.Name,
		ShortName:  e.Code,
		Sport:      a.sport,
		League:     a.leagueName,
		Country:    e.Country.Name,
	}
}

func (a *gamesAdapter) Matches(ctx context.Context, filters MatchFilters) ([]match.Match, error) {
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
	} else {
		params["league"] = strconv.FormatInt(a.leagueID, 10)
	}

	var games []apisports.GameEntry
	if err := a.provider.Request(ctx, "/games", params, &games); err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(games))
	for _, g := range games {
		out = append(out, a.toMatch(g))
	}
	return out, nil
}

func (a *gamesAdapter) toMatch(g apisports.GameEntry) match.Match {
	homeID := strconv.FormatInt(g.Teams.Home.ID, 10)
	awayID := strconv.FormatInt(g.Teams.Away.ID, 10)

	m := match.Match{
		ID:      strconv.FormatInt(g.ID, 10),
		Sport:   a.sport,
		League:  g.League.Name,
		Season:  g.League.Season.String(),
		Status:  match.NormalizeStatus(g.Status.Short),
		Kickoff: g.Date,
		HomeTeam: team.Team{
			ID:         team.CanonicalID(a.sport, homeID),
			ProviderID: homeID,
			Name:       g.Teams.Home.Name,
			ShortName:  g.Teams.Home.Code,
			Sport:      a.sport,
			League:     g.League.Name,
		},
		AwayTeam: team.Team{
			ID:         team.CanonicalID(a.sport, awayID),
			ProviderID: awayID,
			Name:       g.Teams.Away.Name,
			ShortName:  g.Teams.Away.Code,
			Sport:      a.sport,
			League:     g.League.Name,
		},
	}

	if g.Scores.Home.Total != nil && g.Scores.Away.Total != nil {
		m.Score = &match.Score{
			Home:        *g.Scores.Home.Total,
			Away:        *g.Scores.Away.Total,
			HomePeriods: g.Scores.Home.Periods(),
			AwayPeriods: g.Scores.Away.Periods(),
		}
	}

	return m
}

// TeamStats derives the season record from standings; the games hosts have
// no direct team-statistics endpoint to try first.
func (a *gamesAdapter) TeamStats(ctx context.Context, teamID, season string) (teamstats.TeamStats, error) {
	if season == "" {
		season = a.currentSeason()
	}
	native := a.nativeID(teamID)

	rows, err := a.standingsRows(ctx, native, season)
	if err != nil {
		return teamstats.TeamStats{}, err
	}

	for _, row := range rows {
		if strconv.FormatInt(row.Team.ID, 10) != native {
			continue
		}
		s := teamstats.TeamStats{
			TeamID:        team.CanonicalID(a.sport, native),
			Season:        season,
			Wins:          row.Games.Win.Total,
			Losses:        row.Games.Lose.Total,
			Draws:         row.Games.Draw.Total,
			PointsFor:     row.Points.For,
			PointsAgainst: row.Points.Against,
			Form:          reverseForm(row.Form),
		}
		if row.Position > 0 {
			s.Extended = map[string]teamstats.StatValue{
				"rank": teamstats.Number(float64(row.Position)),
			}
		}
		s.Streak = streakFromForm(s.Form)
		s.Derive()
		return s, nil
	}

	return teamstats.TeamStats{}, fmt.Errorf("%w: team %s season %s", ErrStatsNotFound, native, season)
}

// standingsRows tolerates both nesting shapes the games hosts use: a flat
// row list and a list of groups.
func (a *gamesAdapter) standingsRows(ctx context.Context, native, season string) ([]apisports.GamesStandingRow, error) {
	params := map[string]string{
		"league": strconv.FormatInt(a.leagueID, 10),
		"season": season,
		"team":   native,
	}

	var raw json.RawMessage
	if err := a.provider.Request(ctx, "/standings", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var grouped [][]apisports.GamesStandingRow
	if err := sonic.Unmarshal(raw, &grouped); err == nil {
		rows := make([]apisports.GamesStandingRow, 0)
		for _, group := range grouped {
			rows = append(rows, group...)
		}
		return rows, nil
	}

	var flat []apisports.GamesStandingRow
	if err := sonic.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode standings payload: %w", err)
	}
	return flat, nil
}

func (a *gamesAdapter) RecentGames(ctx context.Context, teamID string, limit int) (match.RecentGames, error) {
	native := a.nativeID(teamID)
	canonical := team.CanonicalID(a.sport, native)

	season := a.currentSeason()
	games, err := a.finishedGames(ctx, native, season, limit)
	if err != nil {
		return match.RecentGames{}, err
	}
	if len(games) == 0 {
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

func (a *gamesAdapter) finishedGames(ctx context.Context, native, season string, limit int) ([]match.Match, error) {
	var entries []apisports.GameEntry
	params := map[string]string{"team": native, "season": season}
	if err := a.provider.Request(ctx, "/games", params, &entries); err != nil {
		return nil, err
	}

	games := make([]match.Match, 0, len(entries))
	for _, g := range entries {
		games = append(games, a.toMatch(g))
	}
	return finishedMostRecentFirst(games, limit), nil
}

func (a *gamesAdapter) HeadToHead(ctx context.Context, teamA, teamB string, limit int) (headtohead.HeadToHead, error) {
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

func (a *gamesAdapter) h2hGames(ctx context.Context, homeID, awayID, season string, limit int) ([]match.Match, error) {
	params := map[string]string{
		"h2h":    homeID + "-" + awayID,
		"season": season,
	}

	var entries []apisports.GameEntry
	if err := a.provider.Request(ctx, "/games", params, &entries); err != nil {
		return nil, err
	}

	games := make([]match.Match, 0, len(entries))
	for _, g := range entries {
		games = append(games, a.toMatch(g))
	}
	return finishedMostRecentFirst(games, limit), nil
}

func (a *gamesAdapter) Injuries(ctx context.Context, teamID string) ([]injury.Injury, error) {
	if !a.injuriesSupported {
		return nil, fmt.Errorf("%w: injuries for %s", ErrNotSupported, a.sport)
	}

	native := a.nativeID(teamID)
	var entries []apisports.GamesInjuryEntry
	if err := a.provider.Request(ctx, "/injuries", map[string]string{"team": native}, &entries); err != nil {
		return nil, err
	}

	out := make([]injury.Injury, 0, len(entries))
	for _, e := range entries {
		out = append(out, injury.Injury{
			PlayerID:    strconv.FormatInt(e.Player.ID, 10),
			PlayerName:  e.Player.Name,
			TeamID:      team.CanonicalID(a.sport, strconv.FormatInt(e.Team.ID, 10)),
			Category:    e.Description,
			Status:      injury.NormalizeStatus(e.Status),
			Description: e.Player.Name + ": " + e.Description,
		})
	}
	return out, nil
}
