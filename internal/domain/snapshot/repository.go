package snapshot

import "context"

// Repository replaces whole day snapshots; there is no partial update.
type Repository interface {
	Get(ctx context.Context, slot DaySlot) (DaySnapshot, bool, error)
	Replace(ctx context.Context, snap DaySnapshot) error
}
