package adapters

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stefanautomateed/sportsdata/internal/domain/match"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
	"github.com/stefanautomateed/sportsdata/internal/resolver"
)

// teamCandidate is one live search result from a provider team endpoint,
// reduced to what the matching cascade needs.
type teamCandidate struct {
	id      int64
	name    string
	code    string
	country string
	venue   string
	founded int
}

type base struct {
	sport     sport.Sport
	provider  ProviderClient
	resolver  *resolver.Resolver
	logger    *logging.Logger
	threshold int
}

func newBase(s sport.Sport, provider ProviderClient, res *resolver.Resolver, logger *logging.Logger, threshold int) base {
	if logger == nil {
		logger = logging.Default()
	}
	if threshold <= 0 || threshold > 100 {
		threshold = resolver.DefaultFuzzyThreshold
	}
	return base{sport: s, provider: provider, resolver: res, logger: logger, threshold: threshold}
}

func (b base) available() bool {
	return b.provider != nil && b.provider.Configured()
}

// nativeID strips the sport prefix off a canonical id; bare provider ids and
// plain numbers pass through untouched.
func (b base) nativeID(id string) string {
	id = strings.TrimSpace(id)
	prefix := string(b.sport) + "-"
	if strings.HasPrefix(id, prefix) {
		return id[len(prefix):]
	}
	return id
}

func isNumericID(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// pickCandidate runs the exact → partial → fuzzy cascade against live
// provider results, mirroring the resolver's own ordering but scored against
// what the vendor actually returned.
func (b base) pickCandidate(variation string, candidates []teamCandidate) (teamCandidate, bool) {
	needle := strings.ToLower(strings.TrimSpace(variation))
	if needle == "" || len(candidates) == 0 {
		return teamCandidate{}, false
	}

	for _, c := range candidates {
		if strings.ToLower(c.name) == needle || strings.EqualFold(c.code, variation) {
			return c, true
		}
	}

	for _, c := range candidates {
		name := strings.ToLower(c.name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return c, true
		}
	}

	best := teamCandidate{}
	bestScore := -1
	for _, c := range candidates {
		if score := resolver.Similarity(needle, c.name); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore >= b.threshold {
		return best, true
	}
	return teamCandidate{}, false
}

// finishedMostRecentFirst filters to finished games, orders them newest
// first and truncates to limit (non-positive limit keeps everything).
func finishedMostRecentFirst(games []match.Match, limit int) []match.Match {
	finished := make([]match.Match, 0, len(games))
	for _, g := range games {
		if match.IsFinishedStatus(g.Status) && g.Score != nil {
			finished = append(finished, g)
		}
	}
	sort.Slice(finished, func(i, j int) bool {
		return finished[i].Kickoff.After(finished[j].Kickoff)
	})
	if limit > 0 && len(finished) > limit {
		finished = finished[:limit]
	}
	return finished
}

// streakFromForm turns a most-recent-first form string ("WWLDW") into a
// streak descriptor ("W2").
func streakFromForm(form string) string {
	form = strings.TrimSpace(form)
	if form == "" {
		return ""
	}
	lead := form[0]
	count := 0
	for i := 0; i < len(form); i++ {
		if form[i] != lead {
			break
		}
		count++
	}
	return string(lead) + strconv.Itoa(count)
}

// reverseForm flips a provider's oldest-first form string into the common
// model's most-recent-first convention.
func reverseForm(form string) string {
	runes := []rune(strings.TrimSpace(form))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
