package team

import "context"

// IndexRepository stores the team id to reference name index.
type IndexRepository interface {
	UpsertIndex(ctx context.Context, entries []IndexEntry) error
	GetIndex(ctx context.Context, teamIDs []int64) (map[int64]IndexEntry, error)
}

// NameRepository stores resolved names and lookup failures.
type NameRepository interface {
	ListNames(ctx context.Context) (map[int64]Name, error)
	ListFailures(ctx context.Context) (map[int64]Failure, error)
	// InsertNames keeps any name already stored for a team id.
	InsertNames(ctx context.Context, names []Name) error
	InsertFailures(ctx context.Context, failures []Failure) error
}
