package jobqueue

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/platform/resilience"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

const internalJobTokenHeader = "X-Internal-Job-Token"

var errQStashTransient = crerr.New("qstash transient failure")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	HTTPClient       *http.Client
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher schedules a delayed POST back to this service through Upstash QStash.
type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
}

var _ usecase.JobQueue = (*QStashPublisher)(nil)

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) (*QStashPublisher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(cfg.TargetBaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, crerr.New("QSTASH_TOKEN is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return &QStashPublisher{
		client:           client,
		baseURL:          baseURL,
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    targetBaseURL,
		retries:          max(cfg.Retries, 0),
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		logger:           logger.Named("qstash"),
		breaker:          cfg.CircuitBreaker.Build("qstash"),
	}, nil
}

func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return crerr.New("job path is required")
	}
	if payload == nil {
		payload = map[string]any{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}
	body := bytes.TrimSpace(buf.B)

	targetURL := p.targetBaseURL + path
	publishURL := p.baseURL + "/v2/publish/" + targetURL
	delayText := normalizeDelay(delay)
	deduplicationID = strings.TrimSpace(deduplicationID)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.target_url", targetURL),
			attribute.String("qstash.delay", delayText),
			attribute.String("qstash.deduplication_id", deduplicationID),
		)
	}
	p.logger.DebugContext(ctx, "qstash publish request",
		"target_url", targetURL,
		"curl_preview", p.curlPreview(publishURL, delayText, deduplicationID, body),
	)

	err := p.breaker.Execute(func() error {
		return p.publish(ctx, publishURL, body, delayText, deduplicationID)
	}, isQStashCircuitFailure)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", p.breaker.State())
			return fmt.Errorf("%w: qstash is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	p.logger.InfoContext(ctx, "qstash job published", "path", path, "delay", delayText, "deduplication_id", deduplicationID)
	return nil
}

func (p *QStashPublisher) publish(ctx context.Context, publishURL string, body []byte, delay, deduplicationID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, bytes.NewReader(body))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay != "0s" {
		req.Header.Set("Upstash-Delay", delay)
	}
	if deduplicationID != "" {
		req.Header.Set("Upstash-Deduplication-Id", deduplicationID)
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-"+internalJobTokenHeader, p.internalJobToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: publish qstash job: %v", errQStashTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if isQStashRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: publish qstash job status=%d body=%s", errQStashTransient, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return fmt.Errorf("publish qstash job status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
}

// curlPreview renders the request for debug logs with secrets masked.
func (p *QStashPublisher) curlPreview(publishURL, delay, deduplicationID string, body []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	appendHeader := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl -X POST")
	appendPart(shellQuote(publishURL))
	appendHeader("Authorization: Bearer ***")
	appendHeader("Content-Type: application/json")
	if p.retries > 0 {
		appendHeader("Upstash-Retries: " + strconv.Itoa(p.retries))
	}
	if delay != "0s" {
		appendHeader("Upstash-Delay: " + delay)
	}
	if deduplicationID != "" {
		appendHeader("Upstash-Deduplication-Id: " + deduplicationID)
	}
	if p.internalJobToken != "" {
		appendHeader("Upstash-Forward-" + internalJobTokenHeader + ": ***")
	}
	appendPart("-d")
	appendPart(shellQuote(truncateForLog(string(body), 2048)))
	return buf.String()
}

func normalizeDelay(delay time.Duration) string {
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds <= 0 {
		return "0s"
	}
	return strconv.Itoa(seconds) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "...(truncated)"
}

func isQStashCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errQStashTransient)
}

func isQStashRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
