package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/matchday-sync/external/apifootball"
	"github.com/riskibarqy/matchday-sync/external/jobqueue"
	"github.com/riskibarqy/matchday-sync/external/wikidata"
	"github.com/riskibarqy/matchday-sync/internal/config"
	"github.com/riskibarqy/matchday-sync/internal/interfaces/httpapi"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

// Container holds the wired services shared by cmd/api and cmd/sync.
type Container struct {
	cfg    config.Config
	logger *logging.Logger
	stores stores

	Sync *usecase.SyncOrchestrator
	Jobs *usecase.JobOrchestratorService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	catalog, err := loadCatalog(cfg.LeagueCatalogPath)
	if err != nil {
		return nil, err
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:        cfg.APIFootballBaseURL,
		APIKey:         cfg.APIFootballKey,
		Timezone:       cfg.DisplayTimezone,
		Timeout:        cfg.APIFootballTimeout,
		MaxRetries:     cfg.APIFootballMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.APIFootballCircuit,
	})
	lookup := wikidata.NewClient(wikidata.ClientConfig{
		SPARQLURL:      cfg.WikidataSPARQLURL,
		APIURL:         cfg.WikidataAPIURL,
		Language:       cfg.WikidataLanguage,
		UserAgent:      cfg.WikidataUserAgent,
		Timeout:        cfg.WikidataTimeout,
		SearchWorkers:  cfg.WikidataSearchWorkers,
		Logger:         logger,
		CircuitBreaker: cfg.WikidataCircuit,
	})

	normalizer := usecase.NewNormalizer(catalog, cfg.Location)
	ingester := usecase.NewIngestionService(provider, st.snapshots, normalizer, catalog, logger)
	enrichment := usecase.NewEnrichmentService(st.queue, st.index, st.names, lookup, cfg.EnrichmentBatchSize, logger)
	syncer := usecase.NewSyncOrchestrator(
		ingester,
		enrichment,
		st.snapshots,
		st.meta,
		st.index,
		st.names,
		st.queue,
		usecase.SyncConfig{
			Location:     cfg.Location,
			PreRoll:      cfg.SyncPreRoll,
			PostRoll:     cfg.SyncPostRoll,
			FetchWorkers: cfg.SyncFetchWorkers,
		},
		logger,
	)

	queue := usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		publisher, err := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker:   cfg.QStashCircuit,
		}, logger)
		if err != nil {
			_ = st.close()
			return nil, fmt.Errorf("build qstash publisher: %w", err)
		}
		queue = publisher
	}
	jobs := usecase.NewJobOrchestratorService(syncer, queue, usecase.JobOrchestratorConfig{
		LiveInterval: cfg.JobLiveInterval,
		IdleInterval: cfg.JobIdleInterval,
		SelfSchedule: cfg.QStashEnabled,
		Location:     cfg.Location,
	}, logger)

	logger.Info("matchday sync wired",
		"store_driver", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"leagues", catalog.Len(),
		"timezone", cfg.DisplayTimezone,
		"self_schedule", cfg.QStashEnabled,
	)

	return &Container{
		cfg:    cfg,
		logger: logger,
		stores: st,
		Sync:   syncer,
		Jobs:   jobs,
	}, nil
}

func (c *Container) NewHTTPServer() (*http.Server, error) {
	if c.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Sync, c.Jobs, c.logger)
	router := httpapi.NewRouter(handler, c.logger, c.cfg.ServiceName, c.cfg.CORSAllowedOrigins, c.cfg.InternalJobToken)

	return &http.Server{
		Addr:         c.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  c.cfg.ReadTimeout,
		WriteTimeout: c.cfg.WriteTimeout,
	}, nil
}

// Close releases the store connection.
func (c *Container) Close() error {
	if c == nil || c.stores.close == nil {
		return nil
	}
	return c.stores.close()
}
