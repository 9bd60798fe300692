package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config stores runtime configuration for every command.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	StoreDriver             string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration

	DisplayTimezone   string
	Location          *time.Location
	LeagueCatalogPath string

	APIFootballBaseURL    string
	APIFootballKey        string
	APIFootballTimeout    time.Duration
	APIFootballMaxRetries int
	APIFootballCircuit    resilience.CircuitBreakerConfig

	WikidataSPARQLURL     string
	WikidataAPIURL        string
	WikidataLanguage      string
	WikidataUserAgent     string
	WikidataTimeout       time.Duration
	WikidataSearchWorkers int
	WikidataCircuit       resilience.CircuitBreakerConfig

	SyncPreRoll         time.Duration
	SyncPostRoll        time.Duration
	SyncFetchWorkers    int
	EnrichmentBatchSize int
	JobLiveInterval     time.Duration
	JobIdleInterval     time.Duration

	InternalJobToken    string
	QStashEnabled       bool
	QStashBaseURL       string
	QStashToken         string
	QStashTargetBaseURL string
	QStashRetries       int
	QStashCircuit       resilience.CircuitBreakerConfig

	UptraceEnabled             bool
	UptraceDSN                 string
	PprofEnabled               bool
	PprofAddr                  string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	r := &envReader{}
	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "matchday-sync"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        r.positiveDuration("APP_READ_TIMEOUT", "10s"),
		WriteTimeout:       r.positiveDuration("APP_WRITE_TIMEOUT", "60s"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),

		StoreDriver:             strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", StoreDriverPostgres))),
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: r.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", "true"),
		CacheEnabled:            r.boolean("CACHE_ENABLED", "true"),
		CacheTTL:                r.positiveDuration("CACHE_TTL", "30s"),

		DisplayTimezone:   strings.TrimSpace(getEnv("DISPLAY_TIMEZONE", "Africa/Cairo")),
		LeagueCatalogPath: strings.TrimSpace(getEnv("LEAGUE_CATALOG_PATH", "")),

		APIFootballBaseURL:    strings.TrimSpace(getEnv("API_FOOTBALL_BASE_URL", "https://v3.football.api-sports.io")),
		APIFootballKey:        strings.TrimSpace(getEnv("API_FOOTBALL_KEY", "")),
		APIFootballTimeout:    r.positiveDuration("API_FOOTBALL_TIMEOUT", "20s"),
		APIFootballMaxRetries: r.nonNegativeInt("API_FOOTBALL_MAX_RETRIES", 2),
		APIFootballCircuit:    r.circuit("API_FOOTBALL"),

		WikidataSPARQLURL:     strings.TrimSpace(getEnv("WIKIDATA_SPARQL_URL", "https://query.wikidata.org/sparql")),
		WikidataAPIURL:        strings.TrimSpace(getEnv("WIKIDATA_API_URL", "https://www.wikidata.org/w/api.php")),
		WikidataLanguage:      strings.TrimSpace(getEnv("WIKIDATA_LANGUAGE", "ar")),
		WikidataUserAgent:     strings.TrimSpace(getEnv("WIKIDATA_USER_AGENT", "matchday-sync/1.0 (https://github.com/riskibarqy/matchday-sync)")),
		WikidataTimeout:       r.positiveDuration("WIKIDATA_TIMEOUT", "15s"),
		WikidataSearchWorkers: r.positiveInt("WIKIDATA_SEARCH_WORKERS", 4),
		WikidataCircuit:       r.circuit("WIKIDATA"),

		SyncPreRoll:         r.positiveDuration("SYNC_PRE_ROLL", "10m"),
		SyncPostRoll:        r.positiveDuration("SYNC_POST_ROLL", "160m"),
		SyncFetchWorkers:    r.positiveInt("SYNC_FETCH_WORKERS", 3),
		EnrichmentBatchSize: r.positiveInt("ENRICHMENT_BATCH_SIZE", 10),
		JobLiveInterval:     r.positiveDuration("JOB_LIVE_INTERVAL", "2m"),
		JobIdleInterval:     r.positiveDuration("JOB_IDLE_INTERVAL", "6h"),

		InternalJobToken:    strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		QStashEnabled:       r.boolean("QSTASH_ENABLED", "false"),
		QStashBaseURL:       strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io")),
		QStashToken:         strings.TrimSpace(getEnv("QSTASH_TOKEN", "")),
		QStashTargetBaseURL: strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", "")),
		QStashRetries:       r.nonNegativeInt("QSTASH_RETRIES", 3),
		QStashCircuit:       r.circuit("QSTASH"),

		UptraceEnabled:             r.boolean("UPTRACE_ENABLED", "false"),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PprofEnabled:               r.boolean("PPROF_ENABLED", "false"),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeEnabled:           r.boolean("PYROSCOPE_ENABLED", "false"),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        r.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("parse DISPLAY_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	if c.APIFootballKey == "" {
		return fmt.Errorf("API_FOOTBALL_KEY is required")
	}
	if c.WikidataLanguage == "" {
		return fmt.Errorf("WIKIDATA_LANGUAGE cannot be empty")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if c.PyroscopeEnabled {
		if c.PyroscopeServerAddress == "" {
			return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
		}
		if c.PyroscopeAppName == "" {
			return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
		}
	}
	if c.QStashEnabled {
		if c.QStashToken == "" {
			return fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if c.QStashTargetBaseURL == "" {
			return fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if c.InternalJobToken == "" {
			return fmt.Errorf("INTERNAL_JOB_TOKEN is required when QSTASH_ENABLED=true")
		}
	}
	return nil
}

// envReader parses typed values and keeps the first error so Load can build Config in one literal.
type envReader struct {
	err error
}

func (r *envReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *envReader) boolean(key, fallback string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (r *envReader) positiveDuration(key, fallback string) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return 0
	}
	if v <= 0 {
		r.fail(fmt.Errorf("%s must be > 0", key))
	}
	return v
}

func (r *envReader) positiveInt(key string, fallback int) int {
	v, err := getEnvAsInt(key, fallback)
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return 0
	}
	if v < 1 {
		r.fail(fmt.Errorf("%s must be >= 1", key))
	}
	return v
}

func (r *envReader) nonNegativeInt(key string, fallback int) int {
	v, err := getEnvAsInt(key, fallback)
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return 0
	}
	if v < 0 {
		r.fail(fmt.Errorf("%s must be >= 0", key))
	}
	return v
}

// circuit reads <PREFIX>_CIRCUIT_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and _HALF_OPEN_MAX_REQ.
func (r *envReader) circuit(prefix string) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          r.boolean(prefix+"_CIRCUIT_ENABLED", "true"),
		FailureThreshold: r.positiveInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5),
		OpenTimeout:      r.positiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", "30s"),
		HalfOpenMaxReq:   r.positiveInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 1),
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

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
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
