package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/fixture"
	"github.com/riskibarqy/matchday-sync/internal/domain/league"
	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/domain/syncmeta"
	"github.com/riskibarqy/matchday-sync/internal/domain/team"
	"github.com/riskibarqy/matchday-sync/internal/infrastructure/repository/memory"
)

const (
	dayYesterday = "2026-10-16"
	dayToday     = "2026-10-17"
	dayTomorrow  = "2026-10-18"
)

type orchestratorFixture struct {
	provider  *stubProvider
	lookup    *stubLookup
	snapshots *memory.SnapshotRepository
	meta      *memory.SyncMetaRepository
	teams     *memory.TeamRepository
	queue     *memory.TranslationRepository
	orch      *SyncOrchestrator
	now       time.Time
}

func newOrchestratorFixture(t *testing.T, now time.Time, batchSize int) *orchestratorFixture {
	t.Helper()

	f := &orchestratorFixture{
		provider:  &stubProvider{byDate: map[string][]ExternalFixture{}, errFor: map[string]error{}},
		lookup:    &stubLookup{names: map[string]string{}},
		snapshots: memory.NewSnapshotRepository(),
		meta:      memory.NewSyncMetaRepository(),
		teams:     memory.NewTeamRepository(),
		queue:     memory.NewTranslationRepository(),
		now:       now,
	}
	clock := func() time.Time { return f.now }

	ingester := NewIngestionService(f.provider, f.snapshots, NewNormalizer(testCatalog(), testLocation), testCatalog(), nil)
	enrichment := NewEnrichmentService(f.queue, f.teams, f.teams, f.lookup, batchSize, nil)
	enrichment.now = clock
	f.orch = NewSyncOrchestrator(ingester, enrichment, f.snapshots, f.meta, f.teams, f.teams, f.queue, SyncConfig{
		Location:     testLocation,
		PreRoll:      10 * time.Minute,
		PostRoll:     160 * time.Minute,
		FetchWorkers: 3,
	}, nil)
	f.orch.now = clock
	return f
}

var (
	ahly    = ExternalTeam{ID: 10, Name: "Al Ahly"}
	zamalek = ExternalTeam{ID: 11, Name: "Zamalek"}
	arsenal = ExternalTeam{ID: 12, Name: "Arsenal"}
	chelsea = ExternalTeam{ID: 13, Name: "Chelsea"}
	madrid  = ExternalTeam{ID: 14, Name: "Real Madrid"}
)

func seedProviderDays(f *orchestratorFixture) (first, last time.Time) {
	first = time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	last = time.Date(2026, 10, 17, 17, 30, 0, 0, time.UTC)
	f.provider.byDate[dayToday] = []ExternalFixture{
		fx(1, testLeagueRanked2, last, "NS", ahly, zamalek),
		fx(2, testLeagueRanked, first, "NS", arsenal, chelsea),
		fx(3, testLeagueUnknown, first.Add(-6*time.Hour), "FT", ExternalTeam{ID: 90, Name: "X"}, ExternalTeam{ID: 91, Name: "Y"}),
	}
	f.provider.byDate[dayYesterday] = []ExternalFixture{
		fx(4, testLeagueRanked2, time.Date(2026, 10, 16, 16, 0, 0, 0, time.UTC), "FT", ahly, madrid),
	}
	f.provider.byDate[dayTomorrow] = []ExternalFixture{
		fx(5, testLeagueUnranked, time.Date(2026, 10, 18, 19, 0, 0, 0, time.UTC), "NS", madrid, ahly),
	}
	return first, last
}

func TestSyncOrchestrator_FullRefreshWithoutMeta(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), 10)
	first, last := seedProviderDays(f)
	f.lookup.names["Al Ahly"] = "الأهلي"

	res, err := f.orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != RunModeFullRefresh {
		t.Fatalf("expected full refresh, got %s", res.Mode)
	}
	for _, day := range []string{dayYesterday, dayToday, dayTomorrow} {
		if !f.provider.called(day) {
			t.Fatalf("expected fetch for %s", day)
		}
	}

	meta, ok, err := f.meta.Get(context.Background())
	if err != nil || !ok {
		t.Fatalf("meta not saved: %v", err)
	}
	if meta.Date != dayToday || meta.MatchCount != 2 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if meta.FirstMatchAt == nil || !meta.FirstMatchAt.Equal(first) || meta.LastMatchAt == nil || !meta.LastMatchAt.Equal(last) {
		t.Fatalf("meta bounds = %v..%v, want %v..%v", meta.FirstMatchAt, meta.LastMatchAt, first, last)
	}

	idx, _ := f.teams.GetIndex(context.Background(), []int64{10, 11, 12, 13, 14, 90})
	if len(idx) != 5 {
		t.Fatalf("team index should hold 5 catalog teams, got %d", len(idx))
	}
	if f.lookup.calls != 1 {
		t.Fatalf("expected one enrichment batch, got %d lookups", f.lookup.calls)
	}
	if res.Enrichment.Added != 1 || res.Enrichment.Failed != 4 || !res.Enrichment.Done {
		t.Fatalf("unexpected enrichment %+v", res.Enrichment)
	}

	for _, slot := range snapshot.AllSlots {
		snap, ok, _ := f.snapshots.Get(context.Background(), slot)
		if !ok {
			t.Fatalf("missing %s snapshot", slot)
		}
		assertTeamLabel(t, snap, 10, "الأهلي | Al Ahly")
	}
	if len(res.Rewritten) != 3 {
		t.Fatalf("expected all three snapshots rewritten, got %v", res.Rewritten)
	}
}

func TestSyncOrchestrator_MalformedMetaFailsOpen(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), 10)
	seedProviderDays(f)
	f.meta.SetRaw([]byte(`{"date":`))

	res, err := f.orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != RunModeFullRefresh || !res.MetaReset {
		t.Fatalf("expected full refresh after corrupt meta, got %+v", res)
	}
	if _, _, err := f.meta.Get(context.Background()); err != nil {
		t.Fatalf("meta should be healthy after refresh: %v", err)
	}
}

func TestSyncOrchestrator_FullRefreshFailsOnProviderError(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), 10)
	seedProviderDays(f)
	boom := errors.New("quota exceeded")
	f.provider.errFor[dayTomorrow] = boom

	if _, err := f.orch.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if _, ok, _ := f.meta.Get(context.Background()); ok {
		t.Fatalf("meta must not be saved when a day fails")
	}
	if f.lookup.calls != 0 {
		t.Fatalf("enrichment must not run after a failed refresh")
	}
}

func TestSyncOrchestrator_WindowClosedStillReingestsStaleYesterday(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	last := time.Date(2026, 10, 17, 17, 30, 0, 0, time.UTC)
	now := last.Add(160*time.Minute + time.Minute)
	f := newOrchestratorFixture(t, now, 10)
	seedProviderDays(f)
	ctx := context.Background()

	if err := f.meta.Save(ctx, syncmeta.Meta{Date: dayToday, FirstMatchAt: &first, LastMatchAt: &last, MatchCount: 2}); err != nil {
		t.Fatalf("seed meta: %v", err)
	}
	seedSnapshot(t, f, snapshot.SlotYesterday, dayYesterday, fixture.Match{ID: 4, LeagueID: testLeagueRanked2, Status: "1H", HomeTeamID: 10, HomeTeamRef: "Al Ahly", HomeTeam: "Al Ahly"})
	seedSnapshot(t, f, snapshot.SlotTomorrow, dayTomorrow, fixture.Match{ID: 5, LeagueID: testLeagueUnranked, Status: "NS"})

	res, err := f.orch.Run(ctx)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Decision.Verdict != VerdictWindowClosed || res.Decision.Fetch {
		t.Fatalf("gate must not fetch today, got %+v", res.Decision)
	}
	if f.provider.called(dayToday) {
		t.Fatalf("today must not be fetched after the window closed")
	}
	if !f.provider.called(dayYesterday) || f.provider.callCount() != 1 {
		t.Fatalf("expected only yesterday to be fetched, got %v", f.provider.calls)
	}

	snap, _, _ := f.snapshots.Get(ctx, snapshot.SlotYesterday)
	if snap.HasNonTerminal() {
		t.Fatalf("yesterday should now be final")
	}

	res, err = f.orch.Run(ctx)
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if res.Mode != RunModeNoop || f.provider.callCount() != 1 {
		t.Fatalf("second run must be a noop, got %+v calls=%v", res, f.provider.calls)
	}
}

func TestSyncOrchestrator_ActiveWindowRefreshesTodayAndMeta(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	staleLast := time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)
	f := newOrchestratorFixture(t, first.Add(30*time.Minute), 10)
	_, last := seedProviderDays(f)
	ctx := context.Background()

	if err := f.meta.Save(ctx, syncmeta.Meta{Date: dayToday, FirstMatchAt: &first, LastMatchAt: &staleLast, MatchCount: 1}); err != nil {
		t.Fatalf("seed meta: %v", err)
	}
	seedSnapshot(t, f, snapshot.SlotTomorrow, dayTomorrow, fixture.Match{ID: 5, LeagueID: testLeagueUnranked, Status: "NS"})

	res, err := f.orch.Run(ctx)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != RunModeIncremental || res.Decision.Verdict != VerdictActiveWindow {
		t.Fatalf("unexpected run %+v", res)
	}
	if !f.provider.called(dayToday) || f.provider.called(dayTomorrow) {
		t.Fatalf("expected today only, got %v", f.provider.calls)
	}
	meta, _, _ := f.meta.Get(ctx)
	if !meta.LastMatchAt.Equal(last) || meta.MatchCount != 2 || !meta.UpdatedAt.Equal(f.now.UTC()) {
		t.Fatalf("meta not refreshed: %+v", meta)
	}
}

func TestSyncOrchestrator_MissingTomorrowIsFetched(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	f := newOrchestratorFixture(t, first.Add(-2*time.Hour), 10)
	seedProviderDays(f)
	ctx := context.Background()
	if err := f.meta.Save(ctx, syncmeta.Meta{Date: dayToday, FirstMatchAt: &first, LastMatchAt: &first, MatchCount: 1}); err != nil {
		t.Fatalf("seed meta: %v", err)
	}

	res, err := f.orch.Run(ctx)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Decision.Verdict != VerdictTooEarly {
		t.Fatalf("expected too early, got %s", res.Decision.Verdict)
	}
	if !f.provider.called(dayTomorrow) || f.provider.callCount() != 1 {
		t.Fatalf("expected tomorrow only, got %v", f.provider.calls)
	}
}

func TestSyncOrchestrator_ResolvedTeamIsRewrittenEverywhere(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	f := newOrchestratorFixture(t, first.Add(-2*time.Hour), 1)
	ctx := context.Background()

	if err := f.meta.Save(ctx, syncmeta.Meta{Date: dayToday, FirstMatchAt: &first, LastMatchAt: &first, MatchCount: 1}); err != nil {
		t.Fatalf("seed meta: %v", err)
	}
	seedSnapshot(t, f, snapshot.SlotYesterday, dayYesterday, fixture.Match{ID: 4, Status: "FT", HomeTeamID: 10, HomeTeam: "Al Ahly", HomeTeamRef: "Al Ahly", AwayTeamID: 14, AwayTeam: "Real Madrid", AwayTeamRef: "Real Madrid"})
	seedSnapshot(t, f, snapshot.SlotToday, dayToday, fixture.Match{ID: 1, Status: "NS", HomeTeamID: 11, HomeTeam: "Zamalek", HomeTeamRef: "Zamalek", AwayTeamID: 10, AwayTeam: "Al Ahly", AwayTeamRef: "Al Ahly"})
	seedSnapshot(t, f, snapshot.SlotTomorrow, dayTomorrow, fixture.Match{ID: 5, Status: "NS", HomeTeamID: 10, HomeTeam: "Al Ahly", HomeTeamRef: "Al Ahly", AwayTeamID: 14, AwayTeam: "Real Madrid", AwayTeamRef: "Real Madrid"})
	if err := f.teams.UpsertIndex(ctx, []team.IndexEntry{{TeamID: 10, ReferenceName: "Al Ahly"}, {TeamID: 11, ReferenceName: "Zamalek"}}); err != nil {
		t.Fatalf("seed index: %v", err)
	}
	if _, _, err := f.queue.Build(ctx, dayToday, []int64{10, 11}, f.now); err != nil {
		t.Fatalf("seed queue: %v", err)
	}
	f.lookup.names["Al Ahly"] = "الأهلي"

	res, err := f.orch.Run(ctx)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if f.provider.callCount() != 0 {
		t.Fatalf("no fixture fetch expected, got %v", f.provider.calls)
	}
	if res.Enrichment.Added != 1 || res.Enrichment.Remaining != 1 {
		t.Fatalf("unexpected enrichment %+v", res.Enrichment)
	}
	if got := f.queue.Entries(dayToday); len(got) != 1 || got[0] != 11 {
		t.Fatalf("team 10 must be removed from the queue, left %v", got)
	}
	if len(res.Rewritten) != 3 {
		t.Fatalf("expected 3 rewritten snapshots, got %v", res.Rewritten)
	}
	for _, slot := range snapshot.AllSlots {
		snap, _, _ := f.snapshots.Get(ctx, slot)
		assertTeamLabel(t, snap, 10, "الأهلي | Al Ahly")
		if slot != snapshot.SlotToday {
			assertTeamLabel(t, snap, 14, "Real Madrid")
		}
	}
}

func TestSyncOrchestrator_NoopRunMakesNoExternalCalls(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC).Add(-3*time.Hour), 10)
	ctx := context.Background()
	if err := f.meta.Save(ctx, syncmeta.Meta{Date: dayToday}); err != nil {
		t.Fatalf("seed meta: %v", err)
	}
	seedSnapshot(t, f, snapshot.SlotTomorrow, dayTomorrow)
	if _, _, err := f.queue.Build(ctx, dayToday, nil, f.now); err != nil {
		t.Fatalf("seed queue: %v", err)
	}

	res, err := f.orch.Run(ctx)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != RunModeNoop || res.Decision.Verdict != VerdictNoMatches {
		t.Fatalf("expected noop on empty day, got %+v", res)
	}
	if f.provider.callCount() != 0 || f.lookup.calls != 0 {
		t.Fatalf("noop run must not call out")
	}
}

func TestSyncOrchestrator_StatusAndSnapshot(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), 10)
	ctx := context.Background()

	status, err := f.orch.Status(ctx)
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if status.Meta != nil || status.Decision.Verdict != VerdictNoMeta || status.Date != dayToday {
		t.Fatalf("unexpected status %+v", status)
	}

	if _, err := f.orch.Snapshot(ctx, snapshot.SlotToday); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func seedSnapshot(t *testing.T, f *orchestratorFixture, slot snapshot.DaySlot, date string, matches ...fixture.Match) {
	t.Helper()
	snap := snapshot.DaySnapshot{Slot: slot, Date: date, Leagues: []snapshot.LeagueEntry{}}
	if len(matches) > 0 {
		snap.Leagues = append(snap.Leagues, snapshot.LeagueEntry{League: league.League{ID: testLeagueRanked2}, Matches: matches})
	}
	if err := f.snapshots.Replace(context.Background(), snap); err != nil {
		t.Fatalf("seed %s snapshot: %v", slot, err)
	}
}

func assertTeamLabel(t *testing.T, snap snapshot.DaySnapshot, teamID int64, want string) {
	t.Helper()
	found := false
	for _, entry := range snap.Leagues {
		for _, m := range entry.Matches {
			if m.HomeTeamID == teamID {
				found = true
				if m.HomeTeam != want {
					t.Fatalf("%s match %d home label = %q, want %q", snap.Slot, m.ID, m.HomeTeam, want)
				}
			}
			if m.AwayTeamID == teamID {
				found = true
				if m.AwayTeam != want {
					t.Fatalf("%s match %d away label = %q, want %q", snap.Slot, m.ID, m.AwayTeam, want)
				}
			}
		}
	}
	if !found {
		t.Fatalf("team %d not present in %s", teamID, snap.Slot)
	}
}
