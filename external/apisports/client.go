package apisports

import (
	"context"
	"encoding/json"
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

// One API-Sports host per sport. The wire shape is identical across hosts,
// only the endpoints and base URLs differ.
const (
	SoccerBaseURL     = "https://v3.football.api-sports.io"
	BasketballBaseURL = "https://v1.basketball.api-sports.io"
	HockeyBaseURL     = "https://v1.hockey.api-sports.io"
	FootballBaseURL   = "https://v1.american-football.api-sports.io"
)

const maxResponseBytes = 6 << 20

var (
	// ErrNotConfigured marks a client built without an API key. The sport it
	// backs degrades to unavailable; nothing crashes.
	ErrNotConfigured = crerr.New("provider api key is not configured")
	// ErrNetwork marks transport failures (DNS, refused, timeout).
	ErrNetwork = crerr.New("provider network failure")
)

// HTTPError is a non-2xx response from the vendor.
type HTTPError struct {
	Code int
	Body string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d: %s", e.Code, e.Body)
}

// VendorError is an error payload embedded inside a 200 response; API-Sports
// reports quota and parameter problems this way.
type VendorError struct {
	Code    string
	Message string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("provider error %s: %s", e.Code, e.Message)
}

type Config struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the authenticated request wrapper for one API-Sports host.
// Every failure path is captured and returned as a tagged error; Request
// never panics and applies no retries of its own.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
		httpClient.Timeout = 20 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Configured reports whether the client holds a credential.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// payloadEnvelope is the uniform API-Sports response frame. "errors" is an
// empty array on success and an object (or array of strings) on failure,
// still under HTTP 200.
type payloadEnvelope struct {
	Get      string          `json:"get"`
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response json.RawMessage `json:"response"`
}

// Request performs one authenticated GET and decodes the vendor's "response"
// array into target. Concurrent identical requests are collapsed.
func (c *Client) Request(ctx context.Context, endpoint string, params map[string]string, target any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "provider circuit breaker rejected request",
				"endpoint", endpoint, "state", c.breaker.State())
			return crerr.Wrap(ErrNetwork, "provider temporarily unavailable")
		}
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	fullURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.execute(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, ErrNetwork) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}

	var env payloadEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return crerr.Wrap(err, "decode provider envelope")
	}

	if vendorErr := parseVendorErrors(env.Errors); vendorErr != nil {
		c.logger.WarnContext(ctx, "provider rejected request",
			"endpoint", endpoint, "code", vendorErr.Code, "message", vendorErr.Message)
		return vendorErr
	}

	if target != nil && len(env.Response) > 0 {
		if err := sonic.Unmarshal(env.Response, target); err != nil {
			return crerr.Wrap(err, "decode provider response")
		}
	}

	return nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Wrapf(ErrNetwork, "send request: %s", sanitizeSecret(err.Error(), c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Wrapf(ErrNetwork, "read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{Code: resp.StatusCode, Body: abbreviateBody(raw)}
		c.logger.WarnContext(ctx, "provider request failed",
			"url", sanitizeSecret(fullURL, c.apiKey), "status", resp.StatusCode)
		return nil, httpErr
	}

	return raw, nil
}

// parseVendorErrors handles both shapes API-Sports uses: a map of
// field→message and a plain list of messages. An empty array means success.
func parseVendorErrors(raw json.RawMessage) *VendorError {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "[]" || trimmed == "{}" || trimmed == "null" {
		return nil
	}

	var asMap map[string]string
	if err := sonic.Unmarshal(raw, &asMap); err == nil && len(asMap) > 0 {
		for code, message := range asMap {
			return &VendorError{Code: code, Message: message}
		}
	}

	var asList []string
	if err := sonic.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		return &VendorError{Code: "provider_error", Message: strings.Join(asList, "; ")}
	}

	return &VendorError{Code: "provider_error", Message: abbreviateBody(raw)}
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func sanitizeSecret(text, secret string) string {
	if secret == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "***")
}
