package app

import (
	"fmt"
	"net/http"

	"github.com/stefanautomateed/sportsdata/external/apisports"
	"github.com/stefanautomateed/sportsdata/external/oddsapi"
	"github.com/stefanautomateed/sportsdata/internal/adapters"
	"github.com/stefanautomateed/sportsdata/internal/config"
	"github.com/stefanautomateed/sportsdata/internal/platform/cache"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
	"github.com/stefanautomateed/sportsdata/internal/resolver"
	"github.com/stefanautomateed/sportsdata/internal/usecase"
)

// App bundles the fully wired services. Both services share the same cache
// store so the verification overlay can retain what the orchestrator fetched.
type App struct {
	Config       config.Config
	Logger       *logging.Logger
	DataLayer    *usecase.DataLayerService
	Verification *usecase.VerificationService
}

// New wires the full dependency graph: one provider client per API-Sports
// host, the odds client, the name resolver, the four sport adapters behind
// the registry, the cache store and the two services on top.
func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewJSON(cfg.LogLevel)
	}

	res := resolver.New(resolver.Config{
		FuzzyThreshold: cfg.FuzzyThreshold,
		Logger:         logger,
	})

	statsHTTP := &http.Client{Timeout: cfg.APISportsTimeout}
	statsClient := func(baseURL string) *apisports.Client {
		return apisports.NewClient(apisports.Config{
			HTTPClient:     statsHTTP,
			BaseURL:        baseURL,
			APIKey:         cfg.APISportsKey,
			Timeout:        cfg.APISportsTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.APISportsCircuit,
		})
	}

	registry := adapters.NewRegistry()
	sportAdapters := []adapters.Adapter{
		adapters.NewSoccer(adapters.SoccerConfig{
			Provider:       statsClient(cfg.APISportsSoccerBaseURL),
			Resolver:       res,
			Logger:         logger,
			FuzzyThreshold: cfg.FuzzyThreshold,
		}),
		adapters.NewBasketball(adapters.GamesConfig{
			Provider:       statsClient(cfg.APISportsBasketballBaseURL),
			Resolver:       res,
			Logger:         logger,
			FuzzyThreshold: cfg.FuzzyThreshold,
		}),
		adapters.NewHockey(adapters.GamesConfig{
			Provider:       statsClient(cfg.APISportsHockeyBaseURL),
			Resolver:       res,
			Logger:         logger,
			FuzzyThreshold: cfg.FuzzyThreshold,
		}),
		adapters.NewFootball(adapters.GamesConfig{
			Provider:       statsClient(cfg.APISportsFootballBaseURL),
			Resolver:       res,
			Logger:         logger,
			FuzzyThreshold: cfg.FuzzyThreshold,
		}),
	}
	for _, a := range sportAdapters {
		if err := registry.Register(a); err != nil {
			return nil, fmt.Errorf("register %s adapter: %w", a.Sport(), err)
		}
	}

	oddsClient := oddsapi.NewClient(oddsapi.Config{
		BaseURL: cfg.OddsAPIBaseURL,
		APIKey:  cfg.OddsAPIKey,
		Timeout: cfg.OddsAPITimeout,
		Logger:  logger,
	})

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	dataLayer := usecase.NewDataLayerService(usecase.DataLayerConfig{
		Registry: registry,
		Cache:    store,
		Odds:     oddsClient,
		Logger:   logger,
	})

	verification := usecase.NewVerificationService(usecase.VerificationConfig{
		DataLayer:   dataLayer,
		Cache:       store,
		Logger:      logger,
		IdentityTTL: cfg.IdentityTTL,
		SnapshotTTL: cfg.SnapshotTTL,
		FormMinimum: cfg.HighGradeFormMin,
	})

	return &App{
		Config:       cfg,
		Logger:       logger,
		DataLayer:    dataLayer,
		Verification: verification,
	}, nil
}
