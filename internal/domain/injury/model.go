package injury

import "strings"

// Status is the normalized availability verdict. Providers report a zoo of
// phrasings; everything maps into this closed set.
const (
	StatusOut          = "OUT"
	StatusDoubtful     = "DOUBTFUL"
	StatusQuestionable = "QUESTIONABLE"
	StatusProbable     = "PROBABLE"
	StatusDayToDay     = "DAY_TO_DAY"
)

// Injury is one player's availability report.
type Injury struct {
	PlayerID    string
	PlayerName  string
	TeamID      string
	Category    string // body part or condition as reported
	Status      string
	Description string
}

// NormalizeStatus maps a provider phrase onto the closed status set.
// Unknown phrasings default to QUESTIONABLE, the least committal verdict.
func NormalizeStatus(value string) string {
	switch v := strings.ToLower(strings.TrimSpace(value)); {
	case strings.Contains(v, "out"), strings.Contains(v, "missing fixture"), strings.Contains(v, "injured"):
		return StatusOut
	case strings.Contains(v, "doubtful"):
		return StatusDoubtful
	case strings.Contains(v, "probable"):
		return StatusProbable
	case strings.Contains(v, "day-to-day"), strings.Contains(v, "day to day"):
		return StatusDayToDay
	default:
		return StatusQuestionable
	}
}
