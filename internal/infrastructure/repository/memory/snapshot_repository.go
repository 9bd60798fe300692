package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchday-sync/internal/domain/fixture"
	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
)

type SnapshotRepository struct {
	mu     sync.RWMutex
	bySlot map[snapshot.DaySlot]snapshot.DaySnapshot
	writes map[snapshot.DaySlot]int
}

func NewSnapshotRepository(seed ...snapshot.DaySnapshot) *SnapshotRepository {
	r := &SnapshotRepository{
		bySlot: make(map[snapshot.DaySlot]snapshot.DaySnapshot),
		writes: make(map[snapshot.DaySlot]int),
	}
	for _, snap := range seed {
		r.bySlot[snap.Slot] = cloneSnapshot(snap)
	}
	return r
}

func (r *SnapshotRepository) Get(_ context.Context, slot snapshot.DaySlot) (snapshot.DaySnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.bySlot[slot]
	if !ok {
		return snapshot.DaySnapshot{}, false, nil
	}
	return cloneSnapshot(snap), true, nil
}

func (r *SnapshotRepository) Replace(_ context.Context, snap snapshot.DaySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySlot[snap.Slot] = cloneSnapshot(snap)
	r.writes[snap.Slot]++
	return nil
}

// Writes counts Replace calls per slot.
func (r *SnapshotRepository) Writes(slot snapshot.DaySlot) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes[slot]
}

func cloneSnapshot(in snapshot.DaySnapshot) snapshot.DaySnapshot {
	out := in
	if in.Leagues == nil {
		return out
	}
	out.Leagues = make([]snapshot.LeagueEntry, len(in.Leagues))
	for i, entry := range in.Leagues {
		copied := entry
		if entry.Matches != nil {
			copied.Matches = make([]fixture.Match, len(entry.Matches))
			for j, m := range entry.Matches {
				copied.Matches[j] = cloneMatch(m)
			}
		}
		out.Leagues[i] = copied
	}
	return out
}

func cloneMatch(m fixture.Match) fixture.Match {
	m.Minute = cloneInt(m.Minute)
	m.HomeScore = cloneInt(m.HomeScore)
	m.AwayScore = cloneInt(m.AwayScore)
	if m.Stadium != nil {
		v := *m.Stadium
		m.Stadium = &v
	}
	return m
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
