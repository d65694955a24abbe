package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stefanautomateed/sportsdata/internal/domain/team"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusScheduled, NormalizeStatus(""))
	assert.Equal(t, StatusScheduled, NormalizeStatus("  "))
	assert.Equal(t, "FT", NormalizeStatus(" ft "))
}

func TestIsFinishedStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"FT", "AET", "PEN", "OT", "SO", StatusFinished} {
		assert.True(t, IsFinishedStatus(status), status)
	}
	for _, status := range []string{"NS", StatusScheduled, StatusLive, StatusPostponed} {
		assert.False(t, IsFinishedStatus(status), status)
	}
}

func TestIsCancelledLikeStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCancelledLikeStatus("postponed"))
	assert.True(t, IsCancelledLikeStatus("ABANDONED"))
	assert.False(t, IsCancelledLikeStatus("FT"))
}

func TestSummarizeForSkipsForeignAndScorelessGames(t *testing.T) {
	t.Parallel()

	games := []Match{
		{HomeTeam: team.Team{ID: "us"}, AwayTeam: team.Team{ID: "them"}, Score: &Score{Home: 2, Away: 0}},
		{HomeTeam: team.Team{ID: "them"}, AwayTeam: team.Team{ID: "us"}, Score: &Score{Home: 1, Away: 1}},
		{HomeTeam: team.Team{ID: "them"}, AwayTeam: team.Team{ID: "other"}, Score: &Score{Home: 4, Away: 0}},
		{HomeTeam: team.Team{ID: "us"}, AwayTeam: team.Team{ID: "them"}},
	}

	rec := SummarizeFor("us", games)
	assert.Equal(t, Record{Wins: 1, Draws: 1, GoalsFor: 3, GoalsAgainst: 1}, rec)
}
