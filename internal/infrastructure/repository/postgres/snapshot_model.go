package postgres

import "time"

const (
	daySnapshotsTable = "day_snapshots"
	syncMetaTable     = "sync_meta"

	syncMetaKey = "fixtures"
)

type daySnapshotTableModel struct {
	Slot      string    `db:"slot"`
	MatchDate string    `db:"match_date"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type daySnapshotInsertModel struct {
	Slot      string `db:"slot"`
	MatchDate string `db:"match_date"`
	Payload   string `db:"payload"`
}

type syncMetaTableModel struct {
	MetaKey   string    `db:"meta_key"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}
