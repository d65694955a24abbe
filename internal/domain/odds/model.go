package odds

import "time"

// Quote is one bookmaker's prices for a match.
type Quote struct {
	Bookmaker     string
	HomeMoneyline float64
	AwayMoneyline float64
	DrawMoneyline float64 // zero when the sport has no draw market
	Spread        float64
	SpreadHome    float64
	SpreadAway    float64
	Total         float64
	OverPrice     float64
	UnderPrice    float64
}

// Odds is the bookmaker view of one match. It is sourced from a different
// provider than scores and stats, so team naming may disagree with the rest
// of the model; callers match it fuzzily before trusting it.
type Odds struct {
	MatchID   string
	HomeTeam  string
	AwayTeam  string
	Quotes    []Quote
	UpdatedAt time.Time
}
