package apisports

import (
	"strconv"
	"strings"
	"time"
)

// Season tolerates the two shapes API-Sports emits: a bare year (2025) for
// most hosts and a dual-year string ("2025-2026") for NBA-style leagues.
type Season string

func (s *Season) UnmarshalJSON(raw []byte) error {
	*s = Season(strings.Trim(strings.TrimSpace(string(raw)), `"`))
	return nil
}

func (s Season) String() string { return string(s) }

type StatusInfo struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// --- soccer host (v3.football) ---

type SoccerTeamInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Country string `json:"country"`
	Founded int    `json:"founded"`
}

type SoccerVenue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type SoccerTeamEntry struct {
	Team  SoccerTeamInfo `json:"team"`
	Venue SoccerVenue    `json:"venue"`
}

type SoccerLeague struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Season Season `json:"season"`
}

type SoccerFixtureCore struct {
	ID     int64       `json:"id"`
	Date   time.Time   `json:"date"`
	Venue  SoccerVenue `json:"venue"`
	Status StatusInfo  `json:"status"`
}

type SoccerSideTeam struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Winner *bool  `json:"winner"`
}

type GoalsPair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type SoccerFixture struct {
	Fixture SoccerFixtureCore `json:"fixture"`
	League  SoccerLeague      `json:"league"`
	Teams   struct {
		Home SoccerSideTeam `json:"home"`
		Away SoccerSideTeam `json:"away"`
	} `json:"teams"`
	Goals GoalsPair `json:"goals"`
	Score struct {
		Halftime GoalsPair `json:"halftime"`
		Fulltime GoalsPair `json:"fulltime"`
	} `json:"score"`
}

type statTotal struct {
	Total int `json:"total"`
}

type statAverage struct {
	Total string `json:"total"`
}

// SoccerTeamStatistics is the /teams/statistics object (not array) response.
type SoccerTeamStatistics struct {
	Form     string `json:"form"`
	Fixtures struct {
		Played statTotal `json:"played"`
		Wins   statTotal `json:"wins"`
		Draws  statTotal `json:"draws"`
		Loses  statTotal `json:"loses"`
	} `json:"fixtures"`
	Goals struct {
		For struct {
			Total   statTotal   `json:"total"`
			Average statAverage `json:"average"`
		} `json:"for"`
		Against struct {
			Total   statTotal   `json:"total"`
			Average statAverage `json:"average"`
		} `json:"against"`
	} `json:"goals"`
}

type SoccerStandingRow struct {
	Rank int `json:"rank"`
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Points int    `json:"points"`
	Form   string `json:"form"`
	All    struct {
		Played int `json:"played"`
		Win    int `json:"win"`
		Draw   int `json:"draw"`
		Lose   int `json:"lose"`
		Goals  struct {
			For     int `json:"for"`
			Against int `json:"against"`
		} `json:"goals"`
	} `json:"all"`
}

type SoccerStandingsEntry struct {
	League struct {
		ID        int64                 `json:"id"`
		Name      string                `json:"name"`
		Season    Season                `json:"season"`
		Standings [][]SoccerStandingRow `json:"standings"`
	} `json:"league"`
}

type SoccerInjuryEntry struct {
	Player struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"player"`
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// --- games hosts (v1.basketball, v1.hockey, v1.american-football) ---

type GamesTeamEntry struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// GameScoreLine carries whichever split keys the host uses; quarters for
// basketball and gridiron, periods for hockey. Absent keys stay nil.
type GameScoreLine struct {
	Quarter1 *int `json:"quarter_1"`
	Quarter2 *int `json:"quarter_2"`
	Quarter3 *int `json:"quarter_3"`
	Quarter4 *int `json:"quarter_4"`
	First    *int `json:"first"`
	Second   *int `json:"second"`
	Third    *int `json:"third"`
	Overtime *int `json:"over_time"`
	Total    *int `json:"total"`
}

func (l GameScoreLine) Periods() []int {
	var out []int
	for _, p := range []*int{l.Quarter1, l.Quarter2, l.Quarter3, l.Quarter4, l.First, l.Second, l.Third, l.Overtime} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

type GameEntry struct {
	ID     int64      `json:"id"`
	Date   time.Time  `json:"date"`
	Status StatusInfo `json:"status"`
	League struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Season Season `json:"season"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
	Teams struct {
		Home GamesTeamEntry `json:"home"`
		Away GamesTeamEntry `json:"away"`
	} `json:"teams"`
	Scores struct {
		Home GameScoreLine `json:"home"`
		Away GameScoreLine `json:"away"`
	} `json:"scores"`
}

type GamesStandingRow struct {
	Position int `json:"position"`
	Team     struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	League struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Season Season `json:"season"`
	} `json:"league"`
	Games struct {
		Played int `json:"played"`
		Win    struct {
			Total      int    `json:"total"`
			Percentage string `json:"percentage"`
		} `json:"win"`
		Draw struct {
			Total int `json:"total"`
		} `json:"draw"`
		Lose struct {
			Total int `json:"total"`
		} `json:"lose"`
	} `json:"games"`
	Points struct {
		For     int `json:"for"`
		Against int `json:"against"`
	} `json:"points"`
	Form string `json:"form"`
}

type GamesInjuryEntry struct {
	Player struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"player"`
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// ParseSeasonYear extracts the starting year of either season shape.
func ParseSeasonYear(s Season) int {
	value := string(s)
	if first, _, ok := strings.Cut(value, "-"); ok {
		value = first
	}
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return year
}
