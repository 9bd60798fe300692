package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/matchday-sync/internal/domain/team"
	qb "github.com/riskibarqy/matchday-sync/internal/platform/querybuilder"
)

// TeamRepository serves both the team index and the resolved name tables.
type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertIndex(ctx context.Context, entries []team.IndexEntry) error {
	rows := dedupeIndexRows(entries)
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert team index: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, part := range chunk(rows, insertChunkSize) {
		query, args, err := qb.InsertModels(teamIndexTable, part, `ON CONFLICT (team_id) DO UPDATE SET
    reference_name = EXCLUDED.reference_name,
    last_seen_at = GREATEST(team_index.last_seen_at, EXCLUDED.last_seen_at)`)
		if err != nil {
			return fmt.Errorf("build upsert team index query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert team index rows=%d: %w", len(part), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert team index tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetIndex(ctx context.Context, teamIDs []int64) (map[int64]team.IndexEntry, error) {
	out := make(map[int64]team.IndexEntry, len(teamIDs))
	ids := uniqueInt64(teamIDs)
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("team_id", "reference_name", "last_seen_at").
		From(teamIndexTable).
		Where(qb.In("team_id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team index query: %w", err)
	}

	var rows []teamIndexTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team index: %w", err)
	}
	for _, row := range rows {
		out[row.TeamID] = team.IndexEntry{
			TeamID:        row.TeamID,
			ReferenceName: row.ReferenceName,
			LastSeenAt:    row.LastSeenAt.UTC(),
		}
	}
	return out, nil
}

func (r *TeamRepository) ListNames(ctx context.Context) (map[int64]team.Name, error) {
	query, args, err := qb.Select("team_id", "localized_name", "reference_name", "source", "resolved_at").
		From(teamNamesTable).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team names query: %w", err)
	}

	var rows []teamNameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team names: %w", err)
	}

	out := make(map[int64]team.Name, len(rows))
	for _, row := range rows {
		out[row.TeamID] = team.Name{
			TeamID:        row.TeamID,
			LocalizedName: row.LocalizedName,
			ReferenceName: row.ReferenceName,
			Source:        row.Source.String,
			ResolvedAt:    row.ResolvedAt.UTC(),
		}
	}
	return out, nil
}

func (r *TeamRepository) ListFailures(ctx context.Context) (map[int64]team.Failure, error) {
	query, args, err := qb.Select("team_id", "reference_name", "failed_at").
		From(teamNameFailuresTable).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team name failures query: %w", err)
	}

	var rows []teamNameFailureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team name failures: %w", err)
	}

	out := make(map[int64]team.Failure, len(rows))
	for _, row := range rows {
		out[row.TeamID] = team.Failure{
			TeamID:        row.TeamID,
			ReferenceName: row.ReferenceName,
			FailedAt:      row.FailedAt.UTC(),
		}
	}
	return out, nil
}

// InsertNames relies on ON CONFLICT DO NOTHING so a stored name always wins.
func (r *TeamRepository) InsertNames(ctx context.Context, names []team.Name) error {
	rows := make([]teamNameInsertModel, 0, len(names))
	seen := make(map[int64]struct{}, len(names))
	for _, n := range names {
		if err := n.Validate(); err != nil {
			return err
		}
		if _, dup := seen[n.TeamID]; dup {
			continue
		}
		seen[n.TeamID] = struct{}{}
		rows = append(rows, teamNameInsertModel{
			TeamID:        n.TeamID,
			LocalizedName: n.LocalizedName,
			ReferenceName: n.ReferenceName,
			Source:        nullableString(n.Source),
			ResolvedAt:    n.ResolvedAt.UTC(),
		})
	}
	return insertIgnoringConflicts(ctx, r.db, teamNamesTable, rows)
}

func (r *TeamRepository) InsertFailures(ctx context.Context, failures []team.Failure) error {
	rows := make([]teamNameFailureTableModel, 0, len(failures))
	seen := make(map[int64]struct{}, len(failures))
	for _, f := range failures {
		if _, dup := seen[f.TeamID]; dup {
			continue
		}
		seen[f.TeamID] = struct{}{}
		rows = append(rows, teamNameFailureTableModel{
			TeamID:        f.TeamID,
			ReferenceName: f.ReferenceName,
			FailedAt:      f.FailedAt.UTC(),
		})
	}
	return insertIgnoringConflicts(ctx, r.db, teamNameFailuresTable, rows)
}

func insertIgnoringConflicts[T any](ctx context.Context, db *sqlx.DB, table string, rows []T) error {
	for _, part := range chunk(rows, insertChunkSize) {
		query, args, err := qb.InsertModels(table, part, `ON CONFLICT (team_id) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s rows=%d: %w", table, len(part), err)
		}
	}
	return nil
}

// dedupeIndexRows keeps the last entry per team; one statement may not touch a row twice.
func dedupeIndexRows(entries []team.IndexEntry) []teamIndexTableModel {
	pos := make(map[int64]int, len(entries))
	rows := make([]teamIndexTableModel, 0, len(entries))
	for _, e := range entries {
		if e.TeamID <= 0 {
			continue
		}
		row := teamIndexTableModel{TeamID: e.TeamID, ReferenceName: e.ReferenceName, LastSeenAt: e.LastSeenAt.UTC()}
		if i, ok := pos[e.TeamID]; ok {
			rows[i] = row
			continue
		}
		pos[e.TeamID] = len(rows)
		rows = append(rows, row)
	}
	return rows
}
