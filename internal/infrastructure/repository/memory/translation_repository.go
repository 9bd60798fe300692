package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/translation"
)

type translationQueue struct {
	state   translation.State
	entries []int64
}

type TranslationRepository struct {
	mu     sync.Mutex
	queues map[string]*translationQueue
}

func NewTranslationRepository() *TranslationRepository {
	return &TranslationRepository{queues: make(map[string]*translationQueue)}
}

func (r *TranslationRepository) GetState(_ context.Context, day string) (translation.State, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queues[day]
	if !ok {
		return translation.State{}, false, nil
	}
	return q.state, true, nil
}

func (r *TranslationRepository) Build(_ context.Context, day string, teamIDs []int64, at time.Time) (translation.State, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q, ok := r.queues[day]; ok {
		return q.state, false, nil
	}

	q := &translationQueue{}
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		q.entries = append(q.entries, id)
	}
	q.state = translation.State{
		Day:       day,
		Built:     true,
		Remaining: len(q.entries),
		Done:      len(q.entries) == 0,
		UpdatedAt: at,
	}
	r.queues[day] = q
	return q.state, true, nil
}

func (r *TranslationRepository) ListEntries(_ context.Context, day string, limit int) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queues[day]
	if !ok {
		return nil, nil
	}
	n := len(q.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	return slices.Clone(q.entries[:n]), nil
}

func (r *TranslationRepository) RemoveEntries(_ context.Context, day string, teamIDs []int64, at time.Time) (translation.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queues[day]
	if !ok {
		return translation.State{Day: day}, nil
	}
	q.entries = slices.DeleteFunc(q.entries, func(id int64) bool {
		return slices.Contains(teamIDs, id)
	})
	q.state.Remaining = len(q.entries)
	q.state.Done = len(q.entries) == 0
	q.state.UpdatedAt = at
	return q.state, nil
}

// Entries returns every queued id, for assertions.
func (r *TranslationRepository) Entries(day string) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.queues[day]; ok {
		return slices.Clone(q.entries)
	}
	return nil
}
