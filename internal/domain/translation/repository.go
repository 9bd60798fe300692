package translation

import (
	"context"
	"time"
)

type Repository interface {
	GetState(ctx context.Context, day string) (State, bool, error)
	// Build writes the entries and a built state only when no state exists for day.
	// created is false when another run already built the queue.
	Build(ctx context.Context, day string, teamIDs []int64, at time.Time) (state State, created bool, err error)
	// ListEntries returns up to limit team ids in insertion order.
	ListEntries(ctx context.Context, day string, limit int) ([]int64, error)
	// RemoveEntries deletes the ids and recomputes remaining/done from what is left.
	RemoveEntries(ctx context.Context, day string, teamIDs []int64, at time.Time) (State, error)
}
