package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchday-sync/internal/domain/team"
)

// TeamRepository implements both team.IndexRepository and team.NameRepository.
type TeamRepository struct {
	mu       sync.RWMutex
	index    map[int64]team.IndexEntry
	names    map[int64]team.Name
	failures map[int64]team.Failure
}

func NewTeamRepository(names ...team.Name) *TeamRepository {
	r := &TeamRepository{
		index:    make(map[int64]team.IndexEntry),
		names:    make(map[int64]team.Name),
		failures: make(map[int64]team.Failure),
	}
	for _, n := range names {
		r.names[n.TeamID] = n
	}
	return r
}

func (r *TeamRepository) UpsertIndex(_ context.Context, entries []team.IndexEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		r.index[e.TeamID] = e
	}
	return nil
}

func (r *TeamRepository) GetIndex(_ context.Context, teamIDs []int64) (map[int64]team.IndexEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]team.IndexEntry, len(teamIDs))
	for _, id := range teamIDs {
		if e, ok := r.index[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

// DeleteIndex removes index entries; the postgres store never does this, tests use it.
func (r *TeamRepository) DeleteIndex(teamIDs ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range teamIDs {
		delete(r.index, id)
	}
}

func (r *TeamRepository) ListNames(_ context.Context) (map[int64]team.Name, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]team.Name, len(r.names))
	for id, n := range r.names {
		out[id] = n
	}
	return out, nil
}

func (r *TeamRepository) ListFailures(_ context.Context) (map[int64]team.Failure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]team.Failure, len(r.failures))
	for id, f := range r.failures {
		out[id] = f
	}
	return out, nil
}

func (r *TeamRepository) InsertNames(_ context.Context, names []team.Name) error {
	for _, n := range names {
		if err := n.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		if _, exists := r.names[n.TeamID]; exists {
			continue
		}
		r.names[n.TeamID] = n
	}
	return nil
}

func (r *TeamRepository) InsertFailures(_ context.Context, failures []team.Failure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range failures {
		if _, exists := r.failures[f.TeamID]; exists {
			continue
		}
		r.failures[f.TeamID] = f
	}
	return nil
}
