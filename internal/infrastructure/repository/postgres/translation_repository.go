package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/matchday-sync/internal/domain/translation"
	qb "github.com/riskibarqy/matchday-sync/internal/platform/querybuilder"
)

// TranslationRepository keeps the per-day queue header and its entries. Entries are ordered by
// their serial id, which preserves insertion order.
type TranslationRepository struct {
	db *sqlx.DB
}

func NewTranslationRepository(db *sqlx.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

func (r *TranslationRepository) GetState(ctx context.Context, day string) (translation.State, bool, error) {
	state, ok, err := getTranslationState(ctx, r.db, day)
	if err != nil {
		return translation.State{}, false, err
	}
	return state, ok, nil
}

func (r *TranslationRepository) Build(ctx context.Context, day string, teamIDs []int64, at time.Time) (translation.State, bool, error) {
	ids := uniqueInt64(teamIDs)
	at = at.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return translation.State{}, false, fmt.Errorf("begin tx build translation queue: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// The header insert is the lock: a concurrent builder sees the conflict and backs off.
	query, args, err := qb.InsertInto(translationStatesTable).
		Columns("queue_day", "built", "done", "remaining", "updated_at").
		Values(day, true, len(ids) == 0, len(ids), at).
		Suffix(`ON CONFLICT (queue_day) DO NOTHING RETURNING queue_day, built, done, remaining, updated_at`).
		ToSQL()
	if err != nil {
		return translation.State{}, false, fmt.Errorf("build insert translation state query: %w", err)
	}

	var row translationStateTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return translation.State{}, false, fmt.Errorf("insert translation state day=%s: %w", day, err)
		}
		existing, _, getErr := getTranslationState(ctx, tx, day)
		if getErr != nil {
			return translation.State{}, false, getErr
		}
		return existing, false, nil
	}

	entries := make([]translationEntryInsertModel, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, translationEntryInsertModel{QueueDay: day, TeamID: id, CreatedAt: at})
	}
	for _, part := range chunk(entries, insertChunkSize) {
		query, args, err := qb.InsertModels(translationEntriesTable, part, `ON CONFLICT (queue_day, team_id) DO NOTHING`)
		if err != nil {
			return translation.State{}, false, fmt.Errorf("build insert translation entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return translation.State{}, false, fmt.Errorf("insert translation entries day=%s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return translation.State{}, false, fmt.Errorf("commit build translation queue tx: %w", err)
	}
	return stateFromRow(row), true, nil
}

func (r *TranslationRepository) ListEntries(ctx context.Context, day string, limit int) ([]int64, error) {
	builder := qb.Select("team_id").
		From(translationEntriesTable).
		Where(qb.Eq("queue_day", day)).
		OrderBy("id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select translation entries query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select translation entries day=%s: %w", day, err)
	}
	return ids, nil
}

func (r *TranslationRepository) RemoveEntries(ctx context.Context, day string, teamIDs []int64, at time.Time) (translation.State, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return translation.State{}, fmt.Errorf("begin tx remove translation entries: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if ids := uniqueInt64(teamIDs); len(ids) > 0 {
		query, args, err := qb.DeleteFrom(translationEntriesTable).
			Where(qb.Eq("queue_day", day), qb.In("team_id", ids)).
			ToSQL()
		if err != nil {
			return translation.State{}, fmt.Errorf("build delete translation entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return translation.State{}, fmt.Errorf("delete translation entries day=%s: %w", day, err)
		}
	}

	query, args, err := refreshTranslationStateQuery(day, at)
	if err != nil {
		return translation.State{}, fmt.Errorf("build update translation state query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return translation.State{}, fmt.Errorf("update translation state day=%s: %w", day, err)
	}

	state, ok, err := getTranslationState(ctx, tx, day)
	if err != nil {
		return translation.State{}, err
	}
	if err := tx.Commit(); err != nil {
		return translation.State{}, fmt.Errorf("commit remove translation entries tx: %w", err)
	}
	if !ok {
		return translation.State{Day: day}, nil
	}
	return state, nil
}

// refreshTranslationStateQuery recomputes remaining and done from the entries table so the
// header can never drift from the entries.
func refreshTranslationStateQuery(day string, at time.Time) (string, []any, error) {
	return qb.Update(translationStatesTable).
		SetExpr("remaining", "(SELECT COUNT(*) FROM "+translationEntriesTable+" WHERE queue_day = ?)", day).
		SetExpr("done", "NOT EXISTS (SELECT 1 FROM "+translationEntriesTable+" WHERE queue_day = ?)", day).
		Set("updated_at", at.UTC()).
		Where(qb.Eq("queue_day", day)).
		ToSQL()
}

func getTranslationState(ctx context.Context, q sqlx.QueryerContext, day string) (translation.State, bool, error) {
	query, args, err := qb.Select("queue_day", "built", "done", "remaining", "updated_at").
		From(translationStatesTable).
		Where(qb.Eq("queue_day", day)).
		Limit(1).
		ToSQL()
	if err != nil {
		return translation.State{}, false, fmt.Errorf("build select translation state query: %w", err)
	}

	var row translationStateTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return translation.State{}, false, nil
		}
		return translation.State{}, false, fmt.Errorf("select translation state day=%s: %w", day, err)
	}
	return stateFromRow(row), true, nil
}

func stateFromRow(row translationStateTableModel) translation.State {
	return translation.State{
		Day:       row.QueueDay,
		Built:     row.Built,
		Done:      row.Done,
		Remaining: row.Remaining,
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
