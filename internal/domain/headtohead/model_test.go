package headtohead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanautomateed/sportsdata/internal/domain/match"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
)

func fixture(id, homeID, awayID string, home, away int) match.Match {
	return match.Match{
		ID:       id,
		HomeTeam: team.Team{ID: homeID},
		AwayTeam: team.Team{ID: awayID},
		Status:   match.StatusFinished,
		Score:    &match.Score{Home: home, Away: away},
	}
}

func TestBuildFoldsBothOrientations(t *testing.T) {
	t.Parallel()

	// Team soccer-33 appears once at home and once away.
	h := Build("soccer-33", "soccer-40", []match.Match{
		fixture("1", "soccer-33", "soccer-40", 2, 1),
		fixture("2", "soccer-40", "soccer-33", 3, 3),
		fixture("3", "soccer-40", "soccer-33", 2, 0),
	})

	require.NoError(t, h.Validate())
	assert.Equal(t, 3, h.Summary.TotalGames)
	assert.Equal(t, 1, h.Summary.Team1Wins)
	assert.Equal(t, 1, h.Summary.Team2Wins)
	assert.Equal(t, 1, h.Summary.Draws)
	assert.Equal(t, 2+3+0, h.Summary.Team1Points)
	assert.Equal(t, 1+3+2, h.Summary.Team2Points)
}

func TestBuildDropsScorelessMatches(t *testing.T) {
	t.Parallel()

	scheduled := match.Match{
		ID:       "future",
		HomeTeam: team.Team{ID: "a"},
		AwayTeam: team.Team{ID: "b"},
		Status:   match.StatusScheduled,
	}
	h := Build("a", "b", []match.Match{scheduled, fixture("past", "a", "b", 1, 0)})

	require.NoError(t, h.Validate())
	assert.Equal(t, 1, h.Summary.TotalGames)
	require.Len(t, h.Matches, 1)
	assert.Equal(t, "past", h.Matches[0].ID)
}

func TestBuildEmptyHistory(t *testing.T) {
	t.Parallel()

	h := Build("a", "b", nil)
	require.NoError(t, h.Validate())
	assert.Zero(t, h.Summary.TotalGames)
	assert.Empty(t, h.Matches)
}
