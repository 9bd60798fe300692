package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/domain/syncmeta"
	qb "github.com/riskibarqy/matchday-sync/internal/platform/querybuilder"
)

// SnapshotRepository stores each day slot as one JSONB document replaced in a single statement.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Get(ctx context.Context, slot snapshot.DaySlot) (snapshot.DaySnapshot, bool, error) {
	query, args, err := qb.Select("slot", "match_date", "payload", "updated_at").
		From(daySnapshotsTable).
		Where(qb.Eq("slot", string(slot))).
		Limit(1).
		ToSQL()
	if err != nil {
		return snapshot.DaySnapshot{}, false, fmt.Errorf("build select day snapshot query: %w", err)
	}

	var row daySnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return snapshot.DaySnapshot{}, false, nil
		}
		return snapshot.DaySnapshot{}, false, fmt.Errorf("select day snapshot slot=%s: %w", slot, err)
	}

	var out snapshot.DaySnapshot
	if err := sonic.Unmarshal(row.Payload, &out); err != nil {
		return snapshot.DaySnapshot{}, false, fmt.Errorf("decode day snapshot slot=%s: %w", slot, err)
	}
	out.Slot = slot
	if out.Date == "" {
		out.Date = row.MatchDate
	}
	return out, true, nil
}

func (r *SnapshotRepository) Replace(ctx context.Context, snap snapshot.DaySnapshot) error {
	if _, err := snapshot.ParseSlot(string(snap.Slot)); err != nil {
		return err
	}

	payload, err := sonic.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode day snapshot slot=%s: %w", snap.Slot, err)
	}

	query, args, err := qb.InsertModels(daySnapshotsTable, []daySnapshotInsertModel{{
		Slot:      string(snap.Slot),
		MatchDate: snap.Date,
		Payload:   string(payload),
	}}, `ON CONFLICT (slot) DO UPDATE SET
    match_date = EXCLUDED.match_date,
    payload = EXCLUDED.payload,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build replace day snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("replace day snapshot slot=%s: %w", snap.Slot, err)
	}
	return nil
}

// SyncMetaRepository keeps the single sync meta document under a fixed key.
type SyncMetaRepository struct {
	db *sqlx.DB
}

func NewSyncMetaRepository(db *sqlx.DB) *SyncMetaRepository {
	return &SyncMetaRepository{db: db}
}

func (r *SyncMetaRepository) Get(ctx context.Context) (syncmeta.Meta, bool, error) {
	query, args, err := qb.Select("meta_key", "payload", "updated_at").
		From(syncMetaTable).
		Where(qb.Eq("meta_key", syncMetaKey)).
		Limit(1).
		ToSQL()
	if err != nil {
		return syncmeta.Meta{}, false, fmt.Errorf("build select sync meta query: %w", err)
	}

	var row syncMetaTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return syncmeta.Meta{}, false, nil
		}
		return syncmeta.Meta{}, false, fmt.Errorf("select sync meta: %w", err)
	}

	meta, err := syncmeta.Decode(row.Payload)
	if err != nil {
		return syncmeta.Meta{}, true, err
	}
	return meta, true, nil
}

func (r *SyncMetaRepository) Save(ctx context.Context, meta syncmeta.Meta) error {
	payload, err := syncmeta.Encode(meta)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto(syncMetaTable).
		Columns("meta_key", "payload").
		Values(syncMetaKey, string(payload)).
		Suffix(`ON CONFLICT (meta_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save sync meta query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save sync meta: %w", err)
	}
	return nil
}
