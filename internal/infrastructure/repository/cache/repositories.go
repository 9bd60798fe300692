package cache

import (
	"context"
	"maps"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/domain/team"
	basecache "github.com/riskibarqy/matchday-sync/internal/platform/cache"
)

const (
	keyTeamNames    = "team:names"
	keyTeamFailures = "team:failures"
	keySnapshotPfx  = "snapshot:"
)

// TeamNameRepository caches the full name and failure maps; every insert drops both.
type TeamNameRepository struct {
	next     team.NameRepository
	names    *basecache.Store[map[int64]team.Name]
	failures *basecache.Store[map[int64]team.Failure]
}

func NewTeamNameRepository(next team.NameRepository, ttl time.Duration) *TeamNameRepository {
	return &TeamNameRepository{
		next:     next,
		names:    basecache.NewStore[map[int64]team.Name](ttl),
		failures: basecache.NewStore[map[int64]team.Failure](ttl),
	}
}

func (r *TeamNameRepository) ListNames(ctx context.Context) (map[int64]team.Name, error) {
	v, err := r.names.GetOrLoad(ctx, keyTeamNames, r.next.ListNames)
	if err != nil {
		return nil, err
	}
	return maps.Clone(v), nil
}

func (r *TeamNameRepository) ListFailures(ctx context.Context) (map[int64]team.Failure, error) {
	v, err := r.failures.GetOrLoad(ctx, keyTeamFailures, r.next.ListFailures)
	if err != nil {
		return nil, err
	}
	return maps.Clone(v), nil
}

func (r *TeamNameRepository) InsertNames(ctx context.Context, names []team.Name) error {
	if err := r.next.InsertNames(ctx, names); err != nil {
		return err
	}
	r.names.Delete(ctx, keyTeamNames)
	return nil
}

func (r *TeamNameRepository) InsertFailures(ctx context.Context, failures []team.Failure) error {
	if err := r.next.InsertFailures(ctx, failures); err != nil {
		return err
	}
	r.failures.Delete(ctx, keyTeamFailures)
	return nil
}

// SnapshotRepository fronts the read path of the matches endpoint.
type SnapshotRepository struct {
	next  snapshot.Repository
	cache *basecache.Store[cachedSnapshot]
}

func NewSnapshotRepository(next snapshot.Repository, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{next: next, cache: basecache.NewStore[cachedSnapshot](ttl)}
}

func (r *SnapshotRepository) Get(ctx context.Context, slot snapshot.DaySlot) (snapshot.DaySnapshot, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keySnapshotPfx+string(slot), func(ctx context.Context) (cachedSnapshot, error) {
		snap, exists, err := r.next.Get(ctx, slot)
		if err != nil {
			return cachedSnapshot{}, err
		}
		return cachedSnapshot{value: snap, exists: exists}, nil
	})
	if err != nil {
		return snapshot.DaySnapshot{}, false, err
	}
	return v.value, v.exists, nil
}

func (r *SnapshotRepository) Replace(ctx context.Context, snap snapshot.DaySnapshot) error {
	if err := r.next.Replace(ctx, snap); err != nil {
		return err
	}
	r.cache.Delete(ctx, keySnapshotPfx+string(snap.Slot))
	return nil
}

type cachedSnapshot struct {
	value  snapshot.DaySnapshot
	exists bool
}
