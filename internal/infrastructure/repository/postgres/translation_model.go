package postgres

import "time"

const (
	translationStatesTable  = "translation_queue_states"
	translationEntriesTable = "translation_queue_entries"
)

type translationStateTableModel struct {
	QueueDay  string    `db:"queue_day"`
	Built     bool      `db:"built"`
	Done      bool      `db:"done"`
	Remaining int       `db:"remaining"`
	UpdatedAt time.Time `db:"updated_at"`
}

type translationEntryInsertModel struct {
	QueueDay  string    `db:"queue_day"`
	TeamID    int64     `db:"team_id"`
	CreatedAt time.Time `db:"created_at"`
}
