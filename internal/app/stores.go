package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/matchday-sync/internal/config"
	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/domain/syncmeta"
	"github.com/riskibarqy/matchday-sync/internal/domain/team"
	"github.com/riskibarqy/matchday-sync/internal/domain/translation"
	"github.com/riskibarqy/matchday-sync/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchday-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-sync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday-sync/internal/platform/dburl"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
)

// stores groups every repository the sync needs behind one driver choice.
type stores struct {
	snapshots snapshot.Repository
	meta      syncmeta.Repository
	index     team.IndexRepository
	names     team.NameRepository
	queue     translation.Repository
	close     func() error
}

func openStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (stores, error) {
	var s stores
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		teams := memory.NewTeamRepository()
		s = stores{
			snapshots: memory.NewSnapshotRepository(),
			meta:      memory.NewSyncMetaRepository(),
			index:     teams,
			names:     teams,
			queue:     memory.NewTranslationRepository(),
			close:     func() error { return nil },
		}
		logger.Warn("using in-memory store, state is lost on exit")
	case config.StoreDriverPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		teams := postgres.NewTeamRepository(db)
		s = stores{
			snapshots: postgres.NewSnapshotRepository(db),
			meta:      postgres.NewSyncMetaRepository(db),
			index:     teams,
			names:     teams,
			queue:     postgres.NewTranslationRepository(db),
			close:     db.Close,
		}
		logger.Info("postgres store ready", "db_name", dburl.DatabaseName(cfg.DBURL))
	default:
		return stores{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	if cfg.CacheEnabled {
		s.names = cache.NewTeamNameRepository(s.names, cfg.CacheTTL)
		s.snapshots = cache.NewSnapshotRepository(s.snapshots, cfg.CacheTTL)
	}
	return s, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dburl.DatabaseName(cfg.DBURL)),
		otelsql.WithAttributes(attribute.String("service.name", cfg.ServiceName)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := postgres.CheckSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
