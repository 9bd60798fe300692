package postgres

import (
	"database/sql"
	"time"
)

const (
	teamIndexTable        = "team_index"
	teamNamesTable        = "team_names"
	teamNameFailuresTable = "team_name_failures"
)

type teamIndexTableModel struct {
	TeamID        int64     `db:"team_id"`
	ReferenceName string    `db:"reference_name"`
	LastSeenAt    time.Time `db:"last_seen_at"`
}

type teamNameTableModel struct {
	TeamID        int64          `db:"team_id"`
	LocalizedName string         `db:"localized_name"`
	ReferenceName string         `db:"reference_name"`
	Source        sql.NullString `db:"source"`
	ResolvedAt    time.Time      `db:"resolved_at"`
}

type teamNameInsertModel struct {
	TeamID        int64     `db:"team_id"`
	LocalizedName string    `db:"localized_name"`
	ReferenceName string    `db:"reference_name"`
	Source        *string   `db:"source"`
	ResolvedAt    time.Time `db:"resolved_at"`
}

type teamNameFailureTableModel struct {
	TeamID        int64     `db:"team_id"`
	ReferenceName string    `db:"reference_name"`
	FailedAt      time.Time `db:"failed_at"`
}
