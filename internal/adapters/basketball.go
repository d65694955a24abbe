package adapters

import "github.com/stefanautomateed/sportsdata/internal/domain/sport"

// BasketballAdapter targets the NBA by default, which names seasons with the
// dual-year form.
type BasketballAdapter struct {
	gamesAdapter
}

func NewBasketball(cfg GamesConfig) *BasketballAdapter {
	return &BasketballAdapter{
		gamesAdapter: newGamesAdapter(sport.Basketball, cfg, seasonStyleDual, false, 12, "NBA"),
	}
}

// NewBasketballSecondary builds an adapter for a secondary basketball league
// (continental cups and national leagues), which name seasons with a single
// starting year.
func NewBasketballSecondary(cfg GamesConfig) *BasketballAdapter {
	if cfg.LeagueName == "" {
		cfg.LeagueName = "EuroLeague"
	}
	if cfg.LeagueID == 0 {
		cfg.LeagueID = 120
	}
	return &BasketballAdapter{
		gamesAdapter: newGamesAdapter(sport.Basketball, cfg, seasonStyleSingle, false, cfg.LeagueID, cfg.LeagueName),
	}
}
