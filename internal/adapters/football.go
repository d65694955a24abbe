package adapters

import "github.com/stefanautomateed/sportsdata/internal/domain/sport"

// FootballAdapter targets the NFL by default and is the one games-family
// sport with a provider injury feed.
type FootballAdapter struct {
	gamesAdapter
}

func NewFootball(cfg GamesConfig) *FootballAdapter {
	return &FootballAdapter{
		gamesAdapter: newGamesAdapter(sport.Football, cfg, seasonStyleSingle, true, 1, "NFL"),
	}
}
