package adapters

import "github.com/stefanautomateed/sportsdata/internal/domain/sport"

// HockeyAdapter targets the NHL by default. The hockey host reports no
// injury feed, so that capability is absent rather than failing.
type HockeyAdapter struct {
	gamesAdapter
}

func NewHockey(cfg GamesConfig) *HockeyAdapter {
	return &HockeyAdapter{
		gamesAdapter: newGamesAdapter(sport.Hockey, cfg, seasonStyleSingle, false, 57, "NHL"),
	}
}
