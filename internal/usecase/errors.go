package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/stefanautomateed/sportsdata/external/apisports"
	"github.com/stefanautomateed/sportsdata/external/oddsapi"
	"github.com/stefanautomateed/sportsdata/internal/adapters"
)

// Taxonomy codes carried in the envelope. Consumers switch on these, never
// on error strings.
const (
	CodeNotConfigured     = "NOT_CONFIGURED"
	CodeSportNotSupported = "SPORT_NOT_SUPPORTED"
	CodeTeamNotFound      = "TEAM_NOT_FOUND"
	CodeStatsNotFound     = "STATS_NOT_FOUND"
	CodeFetchError        = "FETCH_ERROR"
	CodeNetworkError      = "NETWORK_ERROR"
	CodeNotSupported      = "NOT_SUPPORTED"
	CodeInvalidInput      = "INVALID_INPUT"
)

// classify maps any error surfacing from the adapter or provider layers onto
// a taxonomy code plus a consumer-safe message.
func classify(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	switch {
	case errors.Is(err, adapters.ErrTeamNotFound):
		return CodeTeamNotFound, err.Error()
	case errors.Is(err, adapters.ErrStatsNotFound):
		return CodeStatsNotFound, err.Error()
	case errors.Is(err, adapters.ErrNotSupported):
		return CodeNotSupported, err.Error()
	case errors.Is(err, adapters.ErrSportNotSupported):
		return CodeSportNotSupported, err.Error()
	case errors.Is(err, apisports.ErrNotConfigured), errors.Is(err, oddsapi.ErrNotConfigured):
		return CodeNotConfigured, err.Error()
	case errors.Is(err, apisports.ErrNetwork), errors.Is(err, oddsapi.ErrNetwork),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return CodeNetworkError, err.Error()
	}

	var providerHTTP *apisports.HTTPError
	if errors.As(err, &providerHTTP) {
		return fmt.Sprintf("HTTP_%d", providerHTTP.Code), err.Error()
	}
	var oddsHTTP *oddsapi.HTTPError
	if errors.As(err, &oddsHTTP) {
		return fmt.Sprintf("HTTP_%d", oddsHTTP.Code), err.Error()
	}

	// Vendor-embedded error payloads and anything unclassified: the provider
	// was reachable but returned unusable data.
	return CodeFetchError, err.Error()
}
