package oddsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
	"github.com/stefanautomateed/sportsdata/internal/platform/resilience"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

const maxResponseBytes = 4 << 20

var (
	ErrNotConfigured = crerr.New("odds api key is not configured")
	ErrNetwork       = crerr.New("odds provider network failure")
)

type HTTPError struct {
	Code int
	Body string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("odds provider returned HTTP %d: %s", e.Code, e.Body)
}

// Outcome is one priced selection inside a market.
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Point float64 `json:"point"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Event is one fixture as the odds vendor sees it. Team naming here follows
// the vendor's own conventions and routinely disagrees with the stats
// provider; callers fuzzy-match before trusting a quote set.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client talks to the independent odds vendor. Same discipline as the stats
// provider client: tagged errors, no retries, context honored.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	flight     resilience.SingleFlight
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// EventsWithOdds fetches upcoming events for a vendor sport key, including
// moneyline, spread and total markets from US bookmakers.
func (c *Client) EventsWithOdds(ctx context.Context, sportKey string) ([]Event, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	values := url.Values{}
	values.Set("apiKey", c.apiKey)
	values.Set("regions", "us")
	values.Set("markets", "h2h,spreads,totals")
	values.Set("oddsFormat", "decimal")

	fullURL := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, url.PathEscape(sportKey), values.Encode())

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.execute(ctx, fullURL)
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", out)
	}

	var events []Event
	if err := sonic.Unmarshal(raw, &events); err != nil {
		return nil, crerr.Wrap(err, "decode odds payload")
	}

	return events, nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Wrapf(ErrNetwork, "send request: %s", strings.ReplaceAll(err.Error(), c.apiKey, "***"))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Wrapf(ErrNetwork, "read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.TrimSpace(string(raw))
		if len(body) > 256 {
			body = body[:256] + "..."
		}
		c.logger.WarnContext(ctx, "odds request failed", "status", resp.StatusCode)
		return nil, &HTTPError{Code: resp.StatusCode, Body: body}
	}

	return raw, nil
}
