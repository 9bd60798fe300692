package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/infrastructure/repository/memory"
)

func newTestIngestion(provider FixtureProvider, repo snapshot.Repository) *IngestionService {
	return NewIngestionService(provider, repo, NewNormalizer(testCatalog(), testLocation), testCatalog(), nil)
}

func TestIngestionService_Ingest_FiltersAndOrders(t *testing.T) {
	t.Parallel()

	kick := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	provider := &stubProvider{byDate: map[string][]ExternalFixture{
		"2026-10-17": {
			fx(1, testLeagueUnranked, kick, "NS", ExternalTeam{ID: 1, Name: "Real Madrid"}, ExternalTeam{ID: 2, Name: "Getafe"}),
			fx(2, testLeagueUnknown, kick, "1H", ExternalTeam{ID: 3, Name: "X"}, ExternalTeam{ID: 4, Name: "Y"}),
			fx(3, testLeagueRanked, kick.Add(time.Hour), "NS", ExternalTeam{ID: 5, Name: "Arsenal"}, ExternalTeam{ID: 6, Name: "Chelsea"}),
			fx(4, testLeagueRanked, kick.Add(2*time.Hour), "1H", ExternalTeam{ID: 7, Name: "Spurs"}, ExternalTeam{ID: 8, Name: "Fulham"}),
		},
	}}
	repo := memory.NewSnapshotRepository()
	svc := newTestIngestion(provider, repo)

	res, err := svc.Ingest(context.Background(), "2026-10-17", snapshot.SlotToday, NameIndex{5: "أرسنال"})
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if len(res.Raw) != 4 || res.Dropped != 1 {
		t.Fatalf("raw=%d dropped=%d", len(res.Raw), res.Dropped)
	}

	stored, ok, _ := repo.Get(context.Background(), snapshot.SlotToday)
	if !ok {
		t.Fatalf("snapshot not written")
	}
	if len(stored.Leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(stored.Leagues))
	}
	for _, entry := range stored.Leagues {
		for _, m := range entry.Matches {
			if m.ID == 2 || m.LeagueID == testLeagueUnknown {
				t.Fatalf("unknown league match leaked into snapshot")
			}
		}
	}
	if stored.Leagues[0].League.ID != testLeagueRanked {
		t.Fatalf("ranked league must come first, got %d", stored.Leagues[0].League.ID)
	}
	pl := stored.Leagues[0].Matches
	if pl[0].ID != 4 || pl[1].ID != 3 {
		t.Fatalf("live match must precede not started, got %v", ids(pl))
	}
	if pl[1].HomeTeam != "أرسنال | Arsenal" {
		t.Fatalf("known name not rendered: %q", pl[1].HomeTeam)
	}
}

func TestIngestionService_Ingest_IsIdempotent(t *testing.T) {
	t.Parallel()

	kick := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	provider := &stubProvider{byDate: map[string][]ExternalFixture{
		"2026-10-17": {
			fx(1, testLeagueRanked2, kick, "NS", ExternalTeam{ID: 1, Name: "Al Ahly"}, ExternalTeam{ID: 2, Name: "Zamalek"}),
			fx(2, testLeagueRanked, kick, "FT", ExternalTeam{ID: 3, Name: "Arsenal"}, ExternalTeam{ID: 4, Name: "Chelsea"}),
		},
	}}
	repo := memory.NewSnapshotRepository()
	svc := newTestIngestion(provider, repo)
	ctx := context.Background()

	encode := func() []byte {
		snap, _, _ := repo.Get(ctx, snapshot.SlotToday)
		b, err := sonic.Marshal(snap)
		if err != nil {
			t.Fatalf("marshal snapshot: %v", err)
		}
		return b
	}

	if _, err := svc.Ingest(ctx, "2026-10-17", snapshot.SlotToday, NameIndex{1: "الأهلي"}); err != nil {
		t.Fatalf("first Ingest error: %v", err)
	}
	first := encode()
	if _, err := svc.Ingest(ctx, "2026-10-17", snapshot.SlotToday, NameIndex{1: "الأهلي"}); err != nil {
		t.Fatalf("second Ingest error: %v", err)
	}
	if second := encode(); !bytes.Equal(first, second) {
		t.Fatalf("snapshots differ:\n%s\n%s", first, second)
	}
}

func TestIngestionService_Ingest_ProviderFailureWritesNothing(t *testing.T) {
	t.Parallel()

	boom := errors.New("provider down")
	provider := &stubProvider{errFor: map[string]error{"2026-10-17": boom}}
	repo := memory.NewSnapshotRepository()
	svc := newTestIngestion(provider, repo)

	if _, err := svc.Ingest(context.Background(), "2026-10-17", snapshot.SlotToday, nil); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if repo.Writes(snapshot.SlotToday) != 0 {
		t.Fatalf("snapshot must not be written on provider failure")
	}
}
