package wikidata

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
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/platform/resilience"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

const (
	defaultSPARQLURL     = "https://query.wikidata.org/sparql"
	defaultAPIURL        = "https://www.wikidata.org/w/api.php"
	defaultLanguage      = "ar"
	defaultUserAgent     = "matchday-sync/1.0 (https://github.com/riskibarqy/matchday-sync)"
	defaultSearchWorkers = 4
	maxEntityIDsPerCall  = 50
	maxBodyBytes         = 4 << 20
)

var errWikidataTransient = crerr.New("wikidata transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	SPARQLURL      string
	APIURL         string
	Language       string
	UserAgent      string
	Timeout        time.Duration
	SearchWorkers  int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client resolves English team names to labels in the target language. It is best effort:
// a failing step becomes misses, a name refused by the open circuit is reported as
// unattempted, and a lookup where nothing could be attempted errors.
type Client struct {
	httpClient    *http.Client
	sparqlURL     string
	apiURL        string
	language      string
	userAgent     string
	searchWorkers int
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
}

var _ usecase.NameLookup = (*Client)(nil)

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
		httpClient.Timeout = 15 * time.Second
	}

	workers := cfg.SearchWorkers
	if workers <= 0 {
		workers = defaultSearchWorkers
	}

	return &Client{
		httpClient:    httpClient,
		sparqlURL:     firstNonEmpty(cfg.SPARQLURL, defaultSPARQLURL),
		apiURL:        firstNonEmpty(cfg.APIURL, defaultAPIURL),
		language:      firstNonEmpty(cfg.Language, defaultLanguage),
		userAgent:     firstNonEmpty(cfg.UserAgent, defaultUserAgent),
		searchWorkers: workers,
		logger:        logger.Named("wikidata"),
		breaker:       cfg.CircuitBreaker.Build("wikidata"),
	}
}

func (c *Client) LookupLocalizedNames(ctx context.Context, referenceNames []string) (map[string]string, error) {
	names := uniqueNames(referenceNames)
	out := make(map[string]string, len(names))
	if len(names) == 0 {
		return out, nil
	}

	attempted := false
	labels, err := c.sparqlLabels(ctx, names)
	switch {
	case err == nil:
		attempted = true
		for name, label := range labels {
			out[name] = label
		}
	case isCircuitOpen(err):
		return nil, fmt.Errorf("%w: name lookup is temporarily unavailable", usecase.ErrDependencyUnavailable)
	default:
		c.logger.WarnContext(ctx, "sparql label lookup failed", "names", len(names), "error", err)
	}

	missing := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := out[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	hits, searched, blocked := c.searchEntities(ctx, missing)
	attempted = attempted || searched
	if len(hits) > 0 {
		labels, err := c.entityLabels(ctx, hits)
		if err != nil {
			c.logger.WarnContext(ctx, "entity label fetch failed", "ids", len(hits), "error", err)
		}
		for name, label := range labels {
			out[name] = label
		}
		if isCircuitOpen(err) {
			for name := range hits {
				if _, ok := out[name]; !ok {
					blocked = append(blocked, name)
				}
			}
		}
	}

	if !attempted {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: every wikidata step failed", usecase.ErrDependencyUnavailable)
	}
	if len(blocked) > 0 {
		c.logger.WarnContext(ctx, "circuit opened during name lookup", "requested", len(names), "resolved", len(out), "unattempted", len(blocked))
		return out, &usecase.IncompleteLookupError{Unattempted: blocked}
	}

	c.logger.DebugContext(ctx, "name lookup finished", "requested", len(names), "resolved", len(out))
	return out, nil
}

// sparqlLabels matches exact English labels and returns the target language label for each.
func (c *Client) sparqlLabels(ctx context.Context, names []string) (map[string]string, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("query", buildLabelQuery(names, c.language))

	var envelope sparqlEnvelope
	if err := c.getJSON(ctx, c.sparqlURL, query, "application/sparql-results+json", &envelope); err != nil {
		return nil, fmt.Errorf("sparql query: %w", err)
	}

	out := make(map[string]string, len(names))
	for _, row := range envelope.Results.Bindings {
		ref := strings.TrimSpace(row.RefLabel.Value)
		loc := strings.TrimSpace(row.LocLabel.Value)
		if ref == "" || loc == "" {
			continue
		}
		if _, exists := out[ref]; !exists {
			out[ref] = loc
		}
	}
	return out, nil
}

type searchHit struct {
	name     string
	entityID string
	err      error
}

// searchEntities runs one wbsearchentities call per name on a bounded pool. searched reports
// whether at least one call got an answer; blocked lists names refused by an open circuit.
func (c *Client) searchEntities(ctx context.Context, names []string) (hits map[string]string, searched bool, blocked []string) {
	p := pool.NewWithResults[searchHit]().WithMaxGoroutines(c.searchWorkers)
	for _, name := range names {
		p.Go(func() searchHit {
			id, err := c.searchEntity(ctx, name)
			return searchHit{name: name, entityID: id, err: err}
		})
	}

	hits = make(map[string]string, len(names))
	for _, hit := range p.Wait() {
		if isCircuitOpen(hit.err) {
			blocked = append(blocked, hit.name)
			continue
		}
		if hit.err != nil {
			c.logger.DebugContext(ctx, "entity search failed", "name", hit.name, "error", hit.err)
			continue
		}
		searched = true
		if hit.entityID != "" {
			hits[hit.name] = hit.entityID
		}
	}
	return hits, searched, blocked
}

func (c *Client) searchEntity(ctx context.Context, name string) (string, error) {
	query := url.Values{}
	query.Set("action", "wbsearchentities")
	query.Set("format", "json")
	query.Set("language", "en")
	query.Set("uselang", "en")
	query.Set("type", "item")
	query.Set("limit", "1")
	query.Set("search", name)

	var envelope searchEnvelope
	if err := c.getJSON(ctx, c.apiURL, query, "application/json", &envelope); err != nil {
		return "", err
	}
	if envelope.Error != nil {
		return "", fmt.Errorf("wbsearchentities %s: %s", envelope.Error.Code, envelope.Error.Info)
	}
	if len(envelope.Search) == 0 {
		return "", nil
	}
	return strings.TrimSpace(envelope.Search[0].ID), nil
}

// entityLabels fetches labels for all found ids, batched at the API's id limit.
func (c *Client) entityLabels(ctx context.Context, hits map[string]string) (map[string]string, error) {
	namesByID := make(map[string][]string, len(hits))
	ids := make([]string, 0, len(hits))
	for name, id := range hits {
		if _, seen := namesByID[id]; !seen {
			ids = append(ids, id)
		}
		namesByID[id] = append(namesByID[id], name)
	}

	out := make(map[string]string, len(hits))
	for start := 0; start < len(ids); start += maxEntityIDsPerCall {
		batch := ids[start:min(start+maxEntityIDsPerCall, len(ids))]

		query := url.Values{}
		query.Set("action", "wbgetentities")
		query.Set("format", "json")
		query.Set("props", "labels")
		query.Set("languages", c.language+"|en")
		query.Set("ids", strings.Join(batch, "|"))

		var envelope entitiesEnvelope
		if err := c.getJSON(ctx, c.apiURL, query, "application/json", &envelope); err != nil {
			return out, fmt.Errorf("wbgetentities: %w", err)
		}
		if envelope.Error != nil {
			return out, fmt.Errorf("wbgetentities %s: %s", envelope.Error.Code, envelope.Error.Info)
		}

		for _, id := range batch {
			entity, ok := envelope.Entities[id]
			if !ok {
				continue
			}
			label := strings.TrimSpace(entity.Labels[c.language].Value)
			if label == "" {
				continue
			}
			for _, name := range namesByID[id] {
				out[name] = label
			}
		}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, accept string, target any) error {
	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, endpoint+"?"+query.Encode(), accept)
		return reqErr
	}, isWikidataCircuitFailure)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode wikidata payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: send request: %v", errWikidataTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errWikidataTransient, err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status=%d", errWikidataTransient, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wikidata status=%d", resp.StatusCode)
	}
	return raw, nil
}

func buildLabelQuery(names []string, language string) string {
	values := make([]string, 0, len(names))
	for _, name := range names {
		values = append(values, `"`+escapeSPARQLString(name)+`"@en`)
	}

	var b strings.Builder
	b.WriteString("SELECT ?refLabel ?locLabel WHERE {\n")
	b.WriteString("  VALUES ?refLabel { ")
	b.WriteString(strings.Join(values, " "))
	b.WriteString(" }\n")
	b.WriteString("  ?item rdfs:label ?refLabel .\n")
	b.WriteString(`  ?item rdfs:label ?locLabel FILTER(LANG(?locLabel) = "`)
	b.WriteString(escapeSPARQLString(language))
	b.WriteString("\")\n}")
	return b.String()
}

func escapeSPARQLString(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}

func uniqueNames(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func isCircuitOpen(err error) bool {
	return stderrors.Is(err, resilience.ErrCircuitOpen)
}

func isWikidataCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errWikidataTransient)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
