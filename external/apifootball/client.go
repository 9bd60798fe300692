package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/platform/resilience"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

const (
	defaultBaseURL  = "https://v3.football.api-sports.io"
	defaultTimezone = "Africa/Cairo"
	apiKeyHeader    = "x-apisports-key"
	maxBodyBytes    = 8 << 20
)

var errAPIFootballTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timezone       string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads fixtures from API-Football v3.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	timezone     string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.Group[[]byte]
}

var _ usecase.FixtureProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timezone := strings.TrimSpace(cfg.Timezone)
	if timezone == "" {
		timezone = defaultTimezone
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		timezone:     timezone,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger.Named("api-football"),
		breaker:      cfg.CircuitBreaker.Build("api-football"),
	}
}

// FetchFixturesByDate lists every fixture on date (YYYY-MM-DD) in the configured timezone.
func (c *Client) FetchFixturesByDate(ctx context.Context, date string) ([]usecase.ExternalFixture, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: fixture date %q", usecase.ErrInvalidInput, date)
	}

	query := url.Values{}
	query.Set("date", date)
	query.Set("timezone", c.timezone)

	var envelope fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch fixtures date=%s: %w", date, err)
	}
	if envelope.Paging.Total > 1 {
		c.logger.WarnContext(ctx, "fixtures response is paginated, only the first page is used",
			"date", date,
			"pages", envelope.Paging.Total,
		)
	}

	out := make([]usecase.ExternalFixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Fixture.ID <= 0 || item.League.ID <= 0 {
			continue
		}
		out = append(out, mapFixture(item))
	}

	c.logger.DebugContext(ctx, "fixtures fetched", "date", date, "results", envelope.Results, "mapped", len(out))
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		var body []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isAPIFootballCircuitFailure)
		return body, execErr
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fixture provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	if reported, ok := target.(providerErrorReporter); ok {
		if msg := reported.providerErrors(); msg != "" {
			return fmt.Errorf("provider reported errors: %s", msg)
		}
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errAPIFootballTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapFixture(item fixtureItem) usecase.ExternalFixture {
	kickoff := parseProviderDateTime(item.Fixture.Date)
	if kickoff.IsZero() && item.Fixture.Timestamp > 0 {
		kickoff = time.Unix(item.Fixture.Timestamp, 0).UTC()
	}

	return usecase.ExternalFixture{
		ID:          item.Fixture.ID,
		LeagueID:    item.League.ID,
		LeagueName:  strings.TrimSpace(item.League.Name),
		LeagueLogo:  strings.TrimSpace(item.League.Logo),
		KickoffAt:   kickoff,
		StatusShort: strings.TrimSpace(item.Fixture.Status.Short),
		Elapsed:     item.Fixture.Status.Elapsed,
		Venue:       strings.TrimSpace(item.Fixture.Venue.Name),
		Home:        mapTeam(item.Teams.Home),
		Away:        mapTeam(item.Teams.Away),
		HomeGoals:   item.Goals.Home,
		AwayGoals:   item.Goals.Away,
	}
}

func mapTeam(t teamItem) usecase.ExternalTeam {
	return usecase.ExternalTeam{ID: t.ID, Name: strings.TrimSpace(t.Name), Logo: strings.TrimSpace(t.Logo)}
}

func parseProviderDateTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func isAPIFootballCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errAPIFootballTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if secret != "" {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
