package teamstats

import "fmt"

// StatValue is one sport-specific extended statistic. Providers disagree on
// what they report beyond the common record, so extras stay an open map of
// known-key/unknown-key values without giving up typing elsewhere.
type StatValue struct {
	Number float64
	Text   string
	IsText bool
}

func Number(v float64) StatValue { return StatValue{Number: v} }
func Text(v string) StatValue    { return StatValue{Text: v, IsText: true} }

// TeamStats is one team's season aggregate in the common model.
type TeamStats struct {
	TeamID        string
	Season        string
	GamesPlayed   int
	Wins          int
	Losses        int
	Draws         int
	WinPct        float64
	PointsFor     int
	PointsAgainst int
	AvgFor        float64
	AvgAgainst    float64
	Form          string // most recent first, e.g. "WWLDW"
	Streak        string // e.g. "W3"
	Extended      map[string]StatValue
}

// Validate enforces the record/averages coherence rule: the win-loss-draw
// total must be the games-played count the averages were derived from.
func (s TeamStats) Validate() error {
	if s.TeamID == "" {
		return fmt.Errorf("team stats team id is required")
	}
	if s.Wins+s.Losses+s.Draws != s.GamesPlayed {
		return fmt.Errorf("record %d-%d-%d does not sum to %d games played",
			s.Wins, s.Losses, s.Draws, s.GamesPlayed)
	}
	return nil
}

// Derive fills WinPct and the per-game averages from the raw totals.
func (s *TeamStats) Derive() {
	s.GamesPlayed = s.Wins + s.Losses + s.Draws
	if s.GamesPlayed == 0 {
		return
	}
	games := float64(s.GamesPlayed)
	s.WinPct = float64(s.Wins) / games * 100
	s.AvgFor = float64(s.PointsFor) / games
	s.AvgAgainst = float64(s.PointsAgainst) / games
}
