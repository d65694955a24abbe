package resolver

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/agnivade/levenshtein"

	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
)

// DefaultFuzzyThreshold is the minimum 0-100 similarity score a fuzzy match
// must reach. Empirical, not a law of the domain; override via Config.
const DefaultFuzzyThreshold = 70

type Config struct {
	FuzzyThreshold int
	Logger         *logging.Logger
}

// Resolver maps any spelling or abbreviation of a team name onto the
// canonical name for its sport. Resolution order: exact alias, substring
// containment, fuzzy similarity, pass-through. It never fails; the worst
// outcome is the trimmed input echoed back.
type Resolver struct {
	threshold int
	logger    *logging.Logger

	mu     sync.RWMutex
	memo   map[string]string
	misses atomic.Int64
}

func New(cfg Config) *Resolver {
	threshold := cfg.FuzzyThreshold
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultFuzzyThreshold
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{
		threshold: threshold,
		logger:    logger,
		memo:      make(map[string]string),
	}
}

// Resolve returns the canonical name for rawName within the sport. Every
// resolution, pass-through included, is memoized for the life of the process;
// this memo is unbounded and never expires, unlike the TTL data cache.
func (r *Resolver) Resolve(rawName string, s sport.Sport) string {
	trimmed := strings.TrimSpace(rawName)
	if trimmed == "" {
		return ""
	}

	key := string(s) + "|" + strings.ToLower(trimmed)
	r.mu.RLock()
	cached, ok := r.memo[key]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	r.misses.Add(1)
	resolved := r.lookup(trimmed, s)

	r.mu.Lock()
	r.memo[key] = resolved
	r.mu.Unlock()

	return resolved
}

func (r *Resolver) lookup(trimmed string, s sport.Sport) string {
	normalized := strings.ToLower(trimmed)
	aliases := aliasTable(s)

	if canonical, ok := aliases[normalized]; ok {
		return canonical
	}

	if canonical, ok := containmentMatch(normalized, aliases); ok {
		return canonical
	}

	if canonical, score, ok := r.fuzzyMatch(normalized, s); ok {
		r.logger.Debug("fuzzy name resolution accepted",
			"sport", s.String(), "input", trimmed, "canonical", canonical, "score", score)
		return canonical
	}

	return trimmed
}

// containmentMatch accepts an alias key that contains, or is contained by,
// the normalized input. Longer keys win so "manchester united" beats "united".
func containmentMatch(normalized string, aliases map[string]string) (string, bool) {
	bestKey := ""
	for key := range aliases {
		if !strings.Contains(normalized, key) && !strings.Contains(key, normalized) {
			continue
		}
		if len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey == "" {
		return "", false
	}
	return aliases[bestKey], true
}

func (r *Resolver) fuzzyMatch(normalized string, s sport.Sport) (string, int, bool) {
	best := ""
	bestScore := -1
	for _, canonical := range canonicalNames(s) {
		score := Similarity(normalized, canonical)
		if score > bestScore {
			best, bestScore = canonical, score
		}
	}
	if bestScore >= r.threshold {
		return best, bestScore, true
	}
	return "", bestScore, false
}

// Similarity is a normalized edit-distance score between 0 and 100, computed
// with integer division so a score of exactly the threshold is reachable.
func Similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	if distance >= longest {
		return 0
	}
	return (longest - distance) * 100 / longest
}

// clubSuffixes are organizational tokens that provider search endpoints
// often omit or reorder.
var clubSuffixes = map[string]struct{}{
	"fc": {}, "cf": {}, "afc": {}, "ac": {}, "sc": {}, "ssc": {},
	"cd": {}, "rc": {}, "bc": {}, "hc": {}, "club": {},
}

// SearchVariations returns candidate strings an adapter should try against a
// provider's own team search: the canonical name, the raw input, a
// suffix-stripped form, and the first and last tokens of the canonical name.
// Order is preserved and duplicates are removed.
func (r *Resolver) SearchVariations(rawName string, s sport.Sport) []string {
	trimmed := strings.TrimSpace(rawName)
	if trimmed == "" {
		return nil
	}

	canonical := r.Resolve(trimmed, s)
	candidates := []string{canonical, trimmed, stripClubSuffixes(canonical)}

	tokens := strings.Fields(canonical)
	if len(tokens) > 1 {
		candidates = append(candidates, tokens[0], tokens[len(tokens)-1])
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		lower := strings.ToLower(c)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, c)
	}
	return out
}

func stripClubSuffixes(name string) string {
	tokens := strings.Fields(name)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := clubSuffixes[strings.ToLower(tok)]; ok {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// canonicalNames lists every canonical name known for the sport, sorted for
// deterministic fuzzy scans.
func canonicalNames(s sport.Sport) []string {
	table := aliasTable(s)
	seen := make(map[string]struct{}, len(table))
	names := make([]string, 0, len(table))
	for _, canonical := range table {
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		names = append(names, canonical)
	}
	sort.Strings(names)
	return names
}
