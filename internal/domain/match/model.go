package match

import (
	"strings"
	"time"

	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Score carries final totals plus optional per-period splits
// (halves, quarters or periods depending on the sport).
type Score struct {
	Home        int
	Away        int
	HomePeriods []int
	AwayPeriods []int
}

// Match is one fixture snapshot. The layer observes provider state, it keeps
// no transition machine of its own.
type Match struct {
	ID       string
	Sport    sport.Sport
	League   string
	Season   string
	HomeTeam team.Team
	AwayTeam team.Team
	Status   string
	Kickoff  time.Time
	Score    *Score
	Venue    string
}

// Record summarizes a slice of finished matches from one team's perspective.
type Record struct {
	Wins         int
	Losses       int
	Draws        int
	GoalsFor     int
	GoalsAgainst int
}

// RecentGames is a team's latest finished matches, most recent first, with a
// summary computed purely from the included matches.
type RecentGames struct {
	TeamID  string
	Games   []Match
	Summary Record
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN", "AOT", "OT", "SO":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, "ABANDONED":
		return true
	default:
		return false
	}
}

// SummarizeFor folds the record of the given team over the matches. Matches
// the team did not play in, or that carry no score, are skipped.
func SummarizeFor(teamID string, games []Match) Record {
	var rec Record
	for _, g := range games {
		if g.Score == nil {
			continue
		}
		var scored, conceded int
		switch teamID {
		case g.HomeTeam.ID:
			scored, conceded = g.Score.Home, g.Score.Away
		case g.AwayTeam.ID:
			scored, conceded = g.Score.Away, g.Score.Home
		default:
			continue
		}
		rec.GoalsFor += scored
		rec.GoalsAgainst += conceded
		switch {
		case scored > conceded:
			rec.Wins++
		case scored < conceded:
			rec.Losses++
		default:
			rec.Draws++
		}
	}
	return rec
}
