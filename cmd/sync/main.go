// Command sync performs one synchronization run and exits. It is meant for cron-style schedulers:
// exit status 0 covers every completed run, including one that decided nothing needed fetching.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/riskibarqy/matchday-sync/internal/app"
	"github.com/riskibarqy/matchday-sync/internal/config"
	"github.com/riskibarqy/matchday-sync/internal/observability"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(logging.LevelError, "service", "matchday-sync").Error("load config", "error", err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel, "service", cfg.ServiceName, "env", cfg.AppEnv, "command", "sync")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	ctx, span := otel.Tracer("matchday-sync/cmd/sync").Start(ctx, "sync.Run")
	defer span.End()

	started := time.Now()
	result, err := container.Sync.Run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "sync run failed", "date", result.Date, "mode", result.Mode, "error", err)
		return 1
	}

	logRun(ctx, logger, result, time.Since(started))
	return 0
}

func logRun(ctx context.Context, logger *logging.Logger, result usecase.RunResult, took time.Duration) {
	logger.InfoContext(ctx, "sync run completed",
		"date", result.Date,
		"mode", result.Mode,
		"verdict", result.Decision.Verdict,
		"ingested", result.Ingested,
		"rewritten", result.Rewritten,
		"queue_remaining", result.Enrichment.Remaining,
		"queue_done", result.Enrichment.Done,
		"meta_reset", result.MetaReset,
		"yesterday_open", result.YesterdayOpen,
		"duration_ms", took.Milliseconds(),
	)
}
