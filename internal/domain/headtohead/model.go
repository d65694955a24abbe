package headtohead

import (
	"fmt"

	"github.com/stefanautomateed/sportsdata/internal/domain/match"
)

// Summary aggregates the head-to-head history between two teams.
type Summary struct {
	TotalGames  int
	Team1Wins   int
	Team2Wins   int
	Draws       int
	Team1Points int
	Team2Points int
}

// HeadToHead pairs two teams with their shared match history, most recent
// first. The summary is always a fold over Matches, never provider-supplied.
type HeadToHead struct {
	Team1ID string
	Team2ID string
	Summary Summary
	Matches []match.Match
}

// Build computes the summary from the given matches. Matches carrying no
// score are dropped so the summary stays a pure fold over Matches.
func Build(team1ID, team2ID string, matches []match.Match) HeadToHead {
	h := HeadToHead{Team1ID: team1ID, Team2ID: team2ID, Matches: make([]match.Match, 0, len(matches))}
	for _, m := range matches {
		if m.Score == nil {
			continue
		}
		h.Matches = append(h.Matches, m)
		h.Summary.TotalGames++

		team1Pts, team2Pts := m.Score.Away, m.Score.Home
		if m.HomeTeam.ID == team1ID {
			team1Pts, team2Pts = m.Score.Home, m.Score.Away
		}
		h.Summary.Team1Points += team1Pts
		h.Summary.Team2Points += team2Pts

		switch {
		case team1Pts > team2Pts:
			h.Summary.Team1Wins++
		case team2Pts > team1Pts:
			h.Summary.Team2Wins++
		default:
			h.Summary.Draws++
		}
	}
	return h
}

func (h HeadToHead) Validate() error {
	if h.Summary.Team1Wins+h.Summary.Team2Wins+h.Summary.Draws != h.Summary.TotalGames {
		return fmt.Errorf("head-to-head outcome counts do not sum to %d total games", h.Summary.TotalGames)
	}
	return nil
}
