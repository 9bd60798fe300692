package memory

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/fixture"
	"github.com/riskibarqy/matchday-sync/internal/domain/league"
	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/domain/syncmeta"
	"github.com/riskibarqy/matchday-sync/internal/domain/team"
)

func TestSnapshotRepository_ReplaceIsolatesCallerCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSnapshotRepository()
	score := 1
	snap := snapshot.DaySnapshot{
		Slot: snapshot.SlotToday,
		Date: "2026-10-17",
		Leagues: []snapshot.LeagueEntry{{
			League:  league.League{ID: 39, ReferenceName: "Premier League"},
			Matches: []fixture.Match{{ID: 1, HomeTeam: "Arsenal", HomeScore: &score}},
		}},
	}
	if err := repo.Replace(ctx, snap); err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	snap.Leagues[0].Matches[0].HomeTeam = "mutated"
	*snap.Leagues[0].Matches[0].HomeScore = 9

	got, ok, err := repo.Get(ctx, snapshot.SlotToday)
	if err != nil || !ok {
		t.Fatalf("Get ok=%v err=%v", ok, err)
	}
	m := got.Leagues[0].Matches[0]
	if m.HomeTeam != "Arsenal" || *m.HomeScore != 1 {
		t.Fatalf("stored snapshot aliased caller data: %+v", m)
	}
	if repo.Writes(snapshot.SlotToday) != 1 || repo.Writes(snapshot.SlotTomorrow) != 0 {
		t.Fatalf("unexpected write counters")
	}
}

func TestSyncMetaRepository_CorruptValueIsMalformed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSyncMetaRepository()
	if _, ok, err := repo.Get(ctx); ok || err != nil {
		t.Fatalf("empty repo: ok=%v err=%v", ok, err)
	}

	repo.SetRaw([]byte(`{"date":`))
	_, ok, err := repo.Get(ctx)
	if !ok || !errors.Is(err, syncmeta.ErrMalformed) {
		t.Fatalf("expected present malformed meta, ok=%v err=%v", ok, err)
	}

	if err := repo.Save(ctx, syncmeta.Meta{Date: "2026-10-17"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, ok, err := repo.Get(ctx)
	if err != nil || !ok || got.Date != "2026-10-17" {
		t.Fatalf("Save must overwrite the corrupt value: %+v ok=%v err=%v", got, ok, err)
	}
}

func TestTeamRepository_InsertNamesNeverOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(team.Name{TeamID: 42, LocalizedName: "الأهلي", ReferenceName: "Al Ahly", Source: team.SourceWikidata})

	err := repo.InsertNames(ctx, []team.Name{
		{TeamID: 42, LocalizedName: "other", ReferenceName: "Al Ahly"},
		{TeamID: 43, LocalizedName: "الزمالك", ReferenceName: "Zamalek"},
	})
	if err != nil {
		t.Fatalf("InsertNames error: %v", err)
	}

	names, _ := repo.ListNames(ctx)
	if names[42].LocalizedName != "الأهلي" || names[43].LocalizedName != "الزمالك" {
		t.Fatalf("unexpected names %+v", names)
	}

	if err := repo.InsertNames(ctx, []team.Name{{TeamID: 44}}); err == nil {
		t.Fatalf("expected validation error for empty localized name")
	}
}

func TestTranslationRepository_RemainingTracksEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	at := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	repo := NewTranslationRepository()

	state, created, err := repo.Build(ctx, "2026-10-17", []int64{5, 3, 5, 8}, at)
	if err != nil || !created {
		t.Fatalf("Build created=%v err=%v", created, err)
	}
	if state.Remaining != 3 || state.Done {
		t.Fatalf("unexpected state %+v", state)
	}

	if _, created, _ := repo.Build(ctx, "2026-10-17", []int64{99}, at); created {
		t.Fatalf("second Build for the same day must be a no-op")
	}

	ids, _ := repo.ListEntries(ctx, "2026-10-17", 2)
	if !slices.Equal(ids, []int64{5, 3}) {
		t.Fatalf("ListEntries must keep insertion order, got %v", ids)
	}

	state, err = repo.RemoveEntries(ctx, "2026-10-17", []int64{5, 8}, at.Add(time.Minute))
	if err != nil {
		t.Fatalf("RemoveEntries error: %v", err)
	}
	if state.Remaining != len(repo.Entries("2026-10-17")) || state.Remaining != 1 {
		t.Fatalf("remaining must equal stored entries, state=%+v entries=%v", state, repo.Entries("2026-10-17"))
	}

	state, _ = repo.RemoveEntries(ctx, "2026-10-17", []int64{3}, at.Add(2*time.Minute))
	if !state.Done || state.Remaining != 0 {
		t.Fatalf("drained queue must be done, got %+v", state)
	}
}
