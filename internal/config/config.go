package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
	"github.com/stefanautomateed/sportsdata/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores the runtime configuration of the data layer. A missing
// provider credential is not an error: the sports behind that provider
// degrade to unavailable instead.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	APISportsKey               string
	APISportsSoccerBaseURL     string
	APISportsBasketballBaseURL string
	APISportsHockeyBaseURL     string
	APISportsFootballBaseURL   string
	APISportsTimeout           time.Duration
	APISportsCircuit           resilience.CircuitBreakerConfig

	OddsAPIKey     string
	OddsAPIBaseURL string
	OddsAPITimeout time.Duration

	CacheEnabled bool
	CacheTTL     time.Duration
	IdentityTTL  time.Duration
	SnapshotTTL  time.Duration

	FuzzyThreshold   int
	HighGradeFormMin int

	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	apiSportsTimeout, err := time.ParseDuration(getEnv("APISPORTS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_TIMEOUT: %w", err)
	}
	if apiSportsTimeout <= 0 {
		return Config{}, fmt.Errorf("APISPORTS_TIMEOUT must be > 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("APISPORTS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("APISPORTS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("APISPORTS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	oddsTimeout, err := time.ParseDuration(getEnv("ODDS_API_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_TIMEOUT: %w", err)
	}
	if oddsTimeout <= 0 {
		return Config{}, fmt.Errorf("ODDS_API_TIMEOUT must be > 0")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	identityTTL, err := time.ParseDuration(getEnv("IDENTITY_CACHE_TTL", "72h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IDENTITY_CACHE_TTL: %w", err)
	}
	if identityTTL <= 0 {
		return Config{}, fmt.Errorf("IDENTITY_CACHE_TTL must be > 0")
	}
	snapshotTTL, err := time.ParseDuration(getEnv("SNAPSHOT_CACHE_TTL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SNAPSHOT_CACHE_TTL: %w", err)
	}
	if snapshotTTL <= 0 {
		return Config{}, fmt.Errorf("SNAPSHOT_CACHE_TTL must be > 0")
	}

	fuzzyThreshold, err := getEnvAsInt("FUZZY_MATCH_THRESHOLD", 70)
	if err != nil {
		return Config{}, fmt.Errorf("parse FUZZY_MATCH_THRESHOLD: %w", err)
	}
	if fuzzyThreshold < 1 || fuzzyThreshold > 100 {
		return Config{}, fmt.Errorf("FUZZY_MATCH_THRESHOLD must be between 1 and 100")
	}
	highGradeFormMin, err := getEnvAsInt("HIGH_GRADE_FORM_MIN", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse HIGH_GRADE_FORM_MIN: %w", err)
	}
	if highGradeFormMin < 1 {
		return Config{}, fmt.Errorf("HIGH_GRADE_FORM_MIN must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "sportsdata"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		APISportsKey:               strings.TrimSpace(getEnv("APISPORTS_KEY", "")),
		APISportsSoccerBaseURL:     strings.TrimSpace(getEnv("APISPORTS_SOCCER_BASE_URL", "https://v3.football.api-sports.io")),
		APISportsBasketballBaseURL: strings.TrimSpace(getEnv("APISPORTS_BASKETBALL_BASE_URL", "https://v1.basketball.api-sports.io")),
		APISportsHockeyBaseURL:     strings.TrimSpace(getEnv("APISPORTS_HOCKEY_BASE_URL", "https://v1.hockey.api-sports.io")),
		APISportsFootballBaseURL:   strings.TrimSpace(getEnv("APISPORTS_FOOTBALL_BASE_URL", "https://v1.american-football.api-sports.io")),
		APISportsTimeout:           apiSportsTimeout,
		APISportsCircuit: resilience.CircuitBreakerConfig{
			Enabled:          circuitEnabled,
			FailureThreshold: circuitFailureCount,
			OpenTimeout:      circuitOpenTimeout,
			HalfOpenMaxReq:   circuitHalfOpenMaxReq,
		},

		OddsAPIKey:     strings.TrimSpace(getEnv("ODDS_API_KEY", "")),
		OddsAPIBaseURL: strings.TrimSpace(getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4")),
		OddsAPITimeout: oddsTimeout,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,
		IdentityTTL:  identityTTL,
		SnapshotTTL:  snapshotTTL,

		FuzzyThreshold:   fuzzyThreshold,
		HighGradeFormMin: highGradeFormMin,

		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
