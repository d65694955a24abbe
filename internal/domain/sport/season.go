package sport

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Season boundary month per sport. A date before the boundary month belongs
// to the season that started the previous calendar year.
//
//	basketball, hockey: October through June
//	gridiron football:  September through February
//	soccer:             August through May
func seasonStartMonth(s Sport) time.Month {
	switch s {
	case Football:
		return time.September
	case Soccer:
		return time.August
	default:
		return time.October
	}
}

// SeasonStartYear returns the calendar year the current season started in.
func SeasonStartYear(s Sport, at time.Time) int {
	if at.Month() >= seasonStartMonth(s) {
		return at.Year()
	}
	return at.Year() - 1
}

// CurrentSeason returns the season identifier for the sport's top league.
// Basketball's top league uses the dual-year form ("2025-2026"); every other
// sport uses the single starting year ("2025").
func CurrentSeason(s Sport, at time.Time) string {
	start := SeasonStartYear(s, at)
	if s == Basketball {
		return fmt.Sprintf("%d-%d", start, start+1)
	}
	return strconv.Itoa(start)
}

// CurrentSeasonSingleYear returns the single-year representation regardless
// of sport. Basketball's secondary leagues (continental cups) use this form.
func CurrentSeasonSingleYear(s Sport, at time.Time) string {
	return strconv.Itoa(SeasonStartYear(s, at))
}

// PreviousSeason shifts a season identifier one full cycle back, preserving
// whichever representation it arrived in. Unparseable input comes back
// unchanged.
func PreviousSeason(season string) string {
	season = strings.TrimSpace(season)
	if first, _, ok := strings.Cut(season, "-"); ok {
		year, err := strconv.Atoi(first)
		if err != nil {
			return season
		}
		return fmt.Sprintf("%d-%d", year-1, year)
	}
	year, err := strconv.Atoi(season)
	if err != nil {
		return season
	}
	return strconv.Itoa(year - 1)
}

// SeasonsEquivalent reports whether two season identifiers name the same
// competitive cycle, tolerating the two representations ("2025-2026" and
// "2025" both start in 2025).
func SeasonsEquivalent(a, b string) bool {
	return seasonStart(a) != 0 && seasonStart(a) == seasonStart(b)
}

func seasonStart(season string) int {
	season = strings.TrimSpace(season)
	if first, _, ok := strings.Cut(season, "-"); ok {
		season = first
	}
	year, err := strconv.Atoi(season)
	if err != nil {
		return 0
	}
	return year
}
