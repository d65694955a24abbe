package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/stefanautomateed/sportsdata/external/apisports"
	"github.com/stefanautomateed/sportsdata/external/oddsapi"
	"github.com/stefanautomateed/sportsdata/internal/adapters"
	"github.com/stefanautomateed/sportsdata/internal/domain/enriched"
	"github.com/stefanautomateed/sportsdata/internal/domain/envelope"
	"github.com/stefanautomateed/sportsdata/internal/domain/headtohead"
	"github.com/stefanautomateed/sportsdata/internal/domain/injury"
	"github.com/stefanautomateed/sportsdata/internal/domain/match"
	"github.com/stefanautomateed/sportsdata/internal/domain/odds"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/domain/team"
	"github.com/stefanautomateed/sportsdata/internal/domain/teamstats"
	"github.com/stefanautomateed/sportsdata/internal/platform/cache"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
)

const (
	providerStats = "api-sports"
	providerOdds  = "the-odds-api"

	defaultRecentGamesLimit = 5
	defaultHeadToHeadLimit  = 10
)

// oddsSportKeys maps the internal sport tags onto the odds vendor's own
// sport keys for the leagues the adapters default to.
var oddsSportKeys = map[sport.Sport]string{
	sport.Soccer:     "soccer_epl",
	sport.Basketball: "basketball_nba",
	sport.Hockey:     "icehockey_nhl",
	sport.Football:   "americanfootball_nfl",
}

// OddsProvider is the slice of the odds vendor client the orchestrator needs.
type OddsProvider interface {
	Configured() bool
	EventsWithOdds(ctx context.Context, sportKey string) ([]oddsapi.Event, error)
}

type DataLayerConfig struct {
	Registry *adapters.Registry
	Cache    *cache.Store // nil disables caching
	Odds     OddsProvider
	Logger   *logging.Logger
}

// DataLayerService is the public entry point of the layer. It routes by
// sport through the registry, caches every successful fetch by its own
// parameter signature and assembles the enriched match view; everything it
// returns crosses the boundary inside an envelope.
type DataLayerService struct {
	registry *adapters.Registry
	cache    *cache.Store
	odds     OddsProvider
	logger   *logging.Logger
	validate *validator.Validate
}

func NewDataLayerService(cfg DataLayerConfig) *DataLayerService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &DataLayerService{
		registry: cfg.Registry,
		cache:    cfg.Cache,
		odds:     cfg.Odds,
		logger:   logger,
		validate: validator.New(),
	}
}

// EnrichedOptions are the consumer's toggles for GetEnrichedMatchData.
// The zero value means "nothing"; use DefaultEnrichedOptions for the usual
// everything-on view.
type EnrichedOptions struct {
	IncludeStats       bool `json:"includeStats"`
	IncludeRecentGames bool `json:"includeRecentGames"`
	IncludeH2H         bool `json:"includeH2H"`
	IncludeInjuries    bool `json:"includeInjuries"`
	IncludeOdds        bool `json:"includeOdds"`
	RecentGamesLimit   int  `json:"recentGamesLimit" validate:"gte=0,lte=50"`
	H2HLimit           int  `json:"h2hLimit"         validate:"gte=0,lte=50"`
}

func DefaultEnrichedOptions() EnrichedOptions {
	return EnrichedOptions{
		IncludeStats:       true,
		IncludeRecentGames: true,
		IncludeH2H:         true,
		IncludeInjuries:    true,
		RecentGamesLimit:   defaultRecentGamesLimit,
		H2HLimit:           defaultHeadToHeadLimit,
	}
}

type EnrichedQuery struct {
	Sport    sport.Sport `json:"sport"    validate:"required"`
	HomeTeam string      `json:"homeTeam" validate:"required"`
	AwayTeam string      `json:"awayTeam" validate:"required"`
	// Options nil means DefaultEnrichedOptions.
	Options *EnrichedOptions `json:"options" validate:"omitempty"`
}

func (s *DataLayerService) AvailableSports() []sport.Sport {
	return s.registry.Available()
}

func (s *DataLayerService) FindTeam(ctx context.Context, sp sport.Sport, nameOrID string) envelope.Envelope[team.Team] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.FindTeam")
	defer span.End()

	adapter, err := s.adapterFor(sp)
	if err != nil {
		return failFrom[team.Team](err, statsMeta(false))
	}
	value, cached, err := s.findTeamCached(ctx, adapter, sp, nameOrID)
	if err != nil {
		return failFrom[team.Team](err, statsMeta(false))
	}
	return envelope.OK(value, statsMeta(cached))
}

func (s *DataLayerService) GetMatches(ctx context.Context, sp sport.Sport, filters adapters.MatchFilters) envelope.Envelope[[]match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.GetMatches")
	defer span.End()

	adapter, err := s.adapterFor(sp)
	if err != nil {
		return failFrom[[]match.Match](err, statsMeta(false))
	}

	type key struct {
		Sport   sport.Sport           `json:"sport"`
		Filters adapters.MatchFilters `json:"filters"`
	}
	value, cached, err := fetchCached(ctx, s.cache, "matches", key{sp, filters}, func(ctx context.Context) ([]match.Match, error) {
		return adapter.Matches(ctx, filters)
	})
	if err != nil {
		return failFrom[[]match.Match](err, statsMeta(false))
	}
	return envelope.OK(value, statsMeta(cached))
}

func (s *DataLayerService) GetTeamStats(ctx context.Context, sp sport.Sport, teamID, season string) envelope.Envelope[teamstats.TeamStats] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.GetTeamStats")
	defer span.End()

	adapter, err := s.adapterFor(sp)
	if err != nil {
		return failFrom[teamstats.TeamStats](err, statsMeta(false))
	}
	value, cached, err := s.teamStatsCached(ctx, adapter, sp, teamID, season)
	if err != nil {
		return failFrom[teamstats.TeamStats](err, statsMeta(false))
	}
	return envelope.OK(value, statsMeta(cached))
}

func (s *DataLayerService) GetRecentGames(ctx context.Context, sp sport.Sport, teamID string, limit int) envelope.Envelope[match.RecentGames] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.GetRecentGames")
	defer span.End()

	adapter, err := s.adapterFor(sp)
	if err != nil {
		return failFrom[match.RecentGames](err, statsMeta(false))
	}
	value, cached, err := s.recentGamesCached(ctx, adapter, sp, teamID, limit)
	if err != nil {
		return failFrom[match.RecentGames](err, statsMeta(false))
	}
	return envelope.OK(value, statsMeta(cached))
}

func (s *DataLayerService) GetHeadToHead(ctx context.Context, sp sport.Sport, teamA, teamB string, limit int) envelope.Envelope[headtohead.HeadToHead] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.GetHeadToHead")
	defer span.End()

	adapter, err := s.adapterFor(sp)
	if err != nil {
		return failFrom[headtohead.HeadToHead](err, statsMeta(false))
	}
	value, cached, err := s.headToHeadCached(ctx, adapter, sp, teamA, teamB, limit)
	if err != nil {
		return failFrom[headtohead.HeadToHead](err, statsMeta(false))
	}
	return envelope.OK(value, statsMeta(cached))
}

func (s *DataLayerService) GetInjuries(ctx context.Context, sp sport.Sport, teamID string) envelope.Envelope[[]injury.Injury] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.GetInjuries")
	defer span.End()

	adapter, err := s.adapterFor(sp)
	if err != nil {
		return failFrom[[]injury.Injury](err, statsMeta(false))
	}
	value, cached, err := s.injuriesCached(ctx, adapter, sp, teamID)
	if err != nil {
		return failFrom[[]injury.Injury](err, statsMeta(false))
	}
	return envelope.OK(value, statsMeta(cached))
}

// GetMatchOdds looks the fixture up with the independent odds vendor. Team
// naming there rarely agrees with the stats provider, so events are accepted
// on first-token containment in either direction, in either orientation.
func (s *DataLayerService) GetMatchOdds(ctx context.Context, sp sport.Sport, homeName, awayName string) envelope.Envelope[odds.Odds] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.GetMatchOdds")
	defer span.End()

	value, cached, err := s.matchOdds(ctx, sp, homeName, awayName)
	if err != nil {
		return failFrom[odds.Odds](err, oddsMeta(false))
	}
	return envelope.OK(value, oddsMeta(cached))
}

// GetEnrichedMatchData assembles the full view of one fixture. Team
// resolution failure on either side is the only fatal path; every other
// sub-fetch failure degrades to an empty field plus a warning.
func (s *DataLayerService) GetEnrichedMatchData(ctx context.Context, q EnrichedQuery) envelope.Envelope[enriched.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataLayerService.GetEnrichedMatchData")
	defer span.End()

	if err := s.validate.Struct(q); err != nil {
		return envelope.Fail[enriched.Match](CodeInvalidInput, err.Error(), statsMeta(false))
	}

	opts := DefaultEnrichedOptions()
	if q.Options != nil {
		opts = *q.Options
	}
	if opts.RecentGamesLimit <= 0 {
		opts.RecentGamesLimit = defaultRecentGamesLimit
	}
	if opts.H2HLimit <= 0 {
		opts.H2HLimit = defaultHeadToHeadLimit
	}

	adapter, err := s.adapterFor(q.Sport)
	if err != nil {
		return failFrom[enriched.Match](err, statsMeta(false))
	}

	var home, away team.Team
	var homeHit, awayHit bool
	var homeErr, awayErr error
	var resolve conc.WaitGroup
	resolve.Go(func() {
		home, homeHit, homeErr = s.findTeamCached(ctx, adapter, q.Sport, q.HomeTeam)
	})
	resolve.Go(func() {
		away, awayHit, awayErr = s.findTeamCached(ctx, adapter, q.Sport, q.AwayTeam)
	})
	resolve.Wait()

	if homeErr != nil {
		return failFrom[enriched.Match](homeErr, statsMeta(false))
	}
	if awayErr != nil {
		return failFrom[enriched.Match](awayErr, statsMeta(false))
	}

	result := enriched.Match{
		Sport:  q.Sport,
		Season: defaultSeason(q.Sport, time.Now()),
		Home:   enriched.Side{Team: home},
		Away:   enriched.Side{Team: away},
	}

	var mu sync.Mutex
	allCached := homeHit && awayHit
	note := func(hit bool, apply func()) {
		mu.Lock()
		defer mu.Unlock()
		allCached = allCached && hit
		if apply != nil {
			apply()
		}
	}

	type subFetch struct {
		field string
		run   func(ctx context.Context) error
	}
	fetches := make([]subFetch, 0, 8)

	if opts.IncludeStats {
		fetches = append(fetches,
			subFetch{"home stats", func(ctx context.Context) error {
				stats, hit, err := s.teamStatsCached(ctx, adapter, q.Sport, home.ID, "")
				if err != nil {
					return err
				}
				note(hit, func() { result.Home.Stats = &stats })
				return nil
			}},
			subFetch{"away stats", func(ctx context.Context) error {
				stats, hit, err := s.teamStatsCached(ctx, adapter, q.Sport, away.ID, "")
				if err != nil {
					return err
				}
				note(hit, func() { result.Away.Stats = &stats })
				return nil
			}},
		)
	}
	if opts.IncludeRecentGames {
		fetches = append(fetches,
			subFetch{"home recent games", func(ctx context.Context) error {
				recent, hit, err := s.recentGamesCached(ctx, adapter, q.Sport, home.ID, opts.RecentGamesLimit)
				if err != nil {
					return err
				}
				note(hit, func() { result.Home.Recent = &recent })
				return nil
			}},
			subFetch{"away recent games", func(ctx context.Context) error {
				recent, hit, err := s.recentGamesCached(ctx, adapter, q.Sport, away.ID, opts.RecentGamesLimit)
				if err != nil {
					return err
				}
				note(hit, func() { result.Away.Recent = &recent })
				return nil
			}},
		)
	}
	if opts.IncludeH2H {
		fetches = append(fetches, subFetch{"head to head", func(ctx context.Context) error {
			h2h, hit, err := s.headToHeadCached(ctx, adapter, q.Sport, home.ID, away.ID, opts.H2HLimit)
			if err != nil {
				return err
			}
			note(hit, func() { result.H2H = &h2h })
			return nil
		}})
	}
	if opts.IncludeInjuries {
		fetches = append(fetches,
			subFetch{"home injuries", func(ctx context.Context) error {
				items, hit, err := s.injuriesCached(ctx, adapter, q.Sport, home.ID)
				if err != nil {
					return err
				}
				note(hit, func() { result.Home.Injuries = items })
				return nil
			}},
			subFetch{"away injuries", func(ctx context.Context) error {
				items, hit, err := s.injuriesCached(ctx, adapter, q.Sport, away.ID)
				if err != nil {
					return err
				}
				note(hit, func() { result.Away.Injuries = items })
				return nil
			}},
		)
	}
	if opts.IncludeOdds && s.odds != nil {
		fetches = append(fetches, subFetch{"odds", func(ctx context.Context) error {
			o, hit, err := s.matchOdds(ctx, q.Sport, home.Name, away.Name)
			if err != nil {
				return err
			}
			note(hit, func() { result.Odds = &o })
			return nil
		}})
	}

	if len(fetches) > 0 {
		pool, err := ants.NewPool(len(fetches))
		if err != nil {
			return failFrom[enriched.Match](fmt.Errorf("create worker pool: %w", err), statsMeta(false))
		}
		defer pool.Release()

		var workers sync.WaitGroup
		for _, fetch := range fetches {
			fetch := fetch
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				fetchErr := fetch.run(ctx)
				if fetchErr == nil {
					return
				}
				if errors.Is(fetchErr, adapters.ErrNotSupported) {
					// Capability absent for this sport, not a data problem.
					return
				}
				code, _ := classify(fetchErr)
				mu.Lock()
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s unavailable: %s", fetch.field, code))
				allCached = false
				mu.Unlock()
				s.logger.DebugContext(ctx, "enrichment sub-fetch absorbed",
					"sport", q.Sport, "field", fetch.field, "error", fetchErr)
			}); err != nil {
				workers.Done()
				return failFrom[enriched.Match](fmt.Errorf("submit sub-fetch: %w", err), statsMeta(false))
			}
		}
		workers.Wait()
	}

	return envelope.OK(result, statsMeta(allCached))
}

func (s *DataLayerService) adapterFor(sp sport.Sport) (adapters.Adapter, error) {
	adapter, err := s.registry.Get(sp)
	if err != nil {
		return nil, err
	}
	if !adapter.Available() {
		return nil, fmt.Errorf("%w for sport %s", apisports.ErrNotConfigured, sp)
	}
	return adapter, nil
}

type teamQueryKey struct {
	Sport sport.Sport `json:"sport"`
	Query string      `json:"query"`
}

func (s *DataLayerService) findTeamCached(ctx context.Context, adapter adapters.Adapter, sp sport.Sport, nameOrID string) (team.Team, bool, error) {
	params := teamQueryKey{Sport: sp, Query: strings.ToLower(strings.TrimSpace(nameOrID))}
	return fetchCached(ctx, s.cache, "findTeam", params, func(ctx context.Context) (team.Team, error) {
		return adapter.FindTeam(ctx, nameOrID)
	})
}

func (s *DataLayerService) teamStatsCached(ctx context.Context, adapter adapters.Adapter, sp sport.Sport, teamID, season string) (teamstats.TeamStats, bool, error) {
	type key struct {
		Sport  sport.Sport `json:"sport"`
		TeamID string      `json:"teamId"`
		Season string      `json:"season"`
	}
	return fetchCached(ctx, s.cache, "teamStats", key{sp, teamID, season}, func(ctx context.Context) (teamstats.TeamStats, error) {
		return adapter.TeamStats(ctx, teamID, season)
	})
}

func (s *DataLayerService) recentGamesCached(ctx context.Context, adapter adapters.Adapter, sp sport.Sport, teamID string, limit int) (match.RecentGames, bool, error) {
	type key struct {
		Sport  sport.Sport `json:"sport"`
		TeamID string      `json:"teamId"`
		Limit  int         `json:"limit"`
	}
	return fetchCached(ctx, s.cache, "recentGames", key{sp, teamID, limit}, func(ctx context.Context) (match.RecentGames, error) {
		return adapter.RecentGames(ctx, teamID, limit)
	})
}

func (s *DataLayerService) headToHeadCached(ctx context.Context, adapter adapters.Adapter, sp sport.Sport, teamA, teamB string, limit int) (headtohead.HeadToHead, bool, error) {
	type key struct {
		Sport sport.Sport `json:"sport"`
		TeamA string      `json:"teamA"`
		TeamB string      `json:"teamB"`
		Limit int         `json:"limit"`
	}
	return fetchCached(ctx, s.cache, "headToHead", key{sp, teamA, teamB, limit}, func(ctx context.Context) (headtohead.HeadToHead, error) {
		return adapter.HeadToHead(ctx, teamA, teamB, limit)
	})
}

func (s *DataLayerService) injuriesCached(ctx context.Context, adapter adapters.Adapter, sp sport.Sport, teamID string) ([]injury.Injury, bool, error) {
	type key struct {
		Sport  sport.Sport `json:"sport"`
		TeamID string      `json:"teamId"`
	}
	return fetchCached(ctx, s.cache, "injuries", key{sp, teamID}, func(ctx context.Context) ([]injury.Injury, error) {
		return adapter.Injuries(ctx, teamID)
	})
}

func (s *DataLayerService) matchOdds(ctx context.Context, sp sport.Sport, homeName, awayName string) (odds.Odds, bool, error) {
	if s.odds == nil || !s.odds.Configured() {
		return odds.Odds{}, false, oddsapi.ErrNotConfigured
	}
	sportKey, ok := oddsSportKeys[sp]
	if !ok {
		return odds.Odds{}, false, fmt.Errorf("%w: no odds sport key for %s", adapters.ErrSportNotSupported, sp)
	}

	type key struct {
		SportKey string `json:"sportKey"`
	}
	events, cached, err := fetchCached(ctx, s.cache, "oddsEvents", key{sportKey}, func(ctx context.Context) ([]oddsapi.Event, error) {
		return s.odds.EventsWithOdds(ctx, sportKey)
	})
	if err != nil {
		return odds.Odds{}, false, err
	}

	for _, event := range events {
		straight := teamNamesMatch(event.HomeTeam, homeName) && teamNamesMatch(event.AwayTeam, awayName)
		flipped := teamNamesMatch(event.HomeTeam, awayName) && teamNamesMatch(event.AwayTeam, homeName)
		if !straight && !flipped {
			continue
		}
		return oddsFromEvent(event), cached, nil
	}

	return odds.Odds{}, false, fmt.Errorf("%w: no odds event matched %q vs %q", adapters.ErrTeamNotFound, homeName, awayName)
}

// teamNamesMatch accepts two team names when either contains the other, or
// when the first token of one is contained in the other.
func teamNamesMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return strings.Contains(b, firstToken(a)) || strings.Contains(a, firstToken(b))
}

func firstToken(value string) string {
	if idx := strings.IndexByte(value, ' '); idx > 0 {
		return value[:idx]
	}
	return value
}

func oddsFromEvent(event oddsapi.Event) odds.Odds {
	out := odds.Odds{
		MatchID:  event.ID,
		HomeTeam: event.HomeTeam,
		AwayTeam: event.AwayTeam,
	}

	for _, bookmaker := range event.Bookmakers {
		quote := odds.Quote{Bookmaker: bookmaker.Title}
		if quote.Bookmaker == "" {
			quote.Bookmaker = bookmaker.Key
		}

		var priced bool
		for _, market := range bookmaker.Markets {
			switch market.Key {
			case "h2h":
				for _, outcome := range market.Outcomes {
					switch {
					case strings.EqualFold(outcome.Name, event.HomeTeam):
						quote.HomeMoneyline = outcome.Price
						priced = true
					case strings.EqualFold(outcome.Name, event.AwayTeam):
						quote.AwayMoneyline = outcome.Price
						priced = true
					case strings.EqualFold(outcome.Name, "Draw"):
						quote.DrawMoneyline = outcome.Price
						priced = true
					}
				}
			case "spreads":
				for _, outcome := range market.Outcomes {
					switch {
					case strings.EqualFold(outcome.Name, event.HomeTeam):
						quote.Spread = outcome.Point
						quote.SpreadHome = outcome.Price
						priced = true
					case strings.EqualFold(outcome.Name, event.AwayTeam):
						quote.SpreadAway = outcome.Price
						priced = true
					}
				}
			case "totals":
				for _, outcome := range market.Outcomes {
					switch {
					case strings.EqualFold(outcome.Name, "Over"):
						quote.Total = outcome.Point
						quote.OverPrice = outcome.Price
						priced = true
					case strings.EqualFold(outcome.Name, "Under"):
						quote.UnderPrice = outcome.Price
						priced = true
					}
				}
			}
		}

		if priced {
			out.Quotes = append(out.Quotes, quote)
		}
		if bookmaker.LastUpdate.After(out.UpdatedAt) {
			out.UpdatedAt = bookmaker.LastUpdate
		}
	}

	return out
}

// defaultSeason picks the representation the sport's default league uses.
func defaultSeason(sp sport.Sport, at time.Time) string {
	if sp == sport.Basketball {
		return sport.CurrentSeason(sp, at)
	}
	return sport.CurrentSeasonSingleYear(sp, at)
}

func statsMeta(cached bool) envelope.Metadata {
	return envelope.Metadata{Provider: providerStats, Cached: cached, FetchedAt: time.Now().UTC()}
}

func oddsMeta(cached bool) envelope.Metadata {
	return envelope.Metadata{Provider: providerOdds, Cached: cached, FetchedAt: time.Now().UTC()}
}

func failFrom[T any](err error, meta envelope.Metadata) envelope.Envelope[T] {
	code, message := classify(err)
	return envelope.Fail[T](code, message, meta)
}

// fetchCached serves the typed value from the cache or loads it once across
// concurrent callers, caching only successful results. The bool reports a
// cache hit.
func fetchCached[T any](ctx context.Context, store *cache.Store, op string, params any, loader func(context.Context) (T, error)) (T, bool, error) {
	key := cache.Key(op, params)
	if value, ok := store.Get(ctx, key); ok {
		if typed, ok := value.(T); ok {
			return typed, true, nil
		}
	}

	loaded, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	typed, ok := loaded.(T)
	if !ok {
		var zero T
		return zero, false, fmt.Errorf("unexpected cached value type %T under %s", loaded, key)
	}
	return typed, false, nil
}
