package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/league"
)

var testLocation = time.FixedZone("EET", 3*60*60)

const (
	testLeagueRanked   int64 = 39
	testLeagueRanked2  int64 = 233
	testLeagueUnranked int64 = 140
	testLeagueUnknown  int64 = 999
)

func testCatalog() league.Catalog {
	return league.MustCatalog([]league.League{
		{ID: testLeagueUnranked, LocalizedName: "الدوري الإسباني", ReferenceName: "La Liga"},
		{ID: testLeagueRanked2, LocalizedName: "الدوري المصري", ReferenceName: "Egyptian League"},
		{ID: testLeagueRanked, LocalizedName: "الدوري الإنجليزي", ReferenceName: "Premier League"},
	}, []int64{testLeagueRanked, testLeagueRanked2})
}

type stubProvider struct {
	mu     sync.Mutex
	byDate map[string][]ExternalFixture
	errFor map[string]error
	calls  []string
}

func (s *stubProvider) FetchFixturesByDate(_ context.Context, date string) ([]ExternalFixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, date)
	if err := s.errFor[date]; err != nil {
		return nil, err
	}
	return append([]ExternalFixture(nil), s.byDate[date]...), nil
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubProvider) called(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.calls {
		if d == date {
			return true
		}
	}
	return false
}

type stubLookup struct {
	mu      sync.Mutex
	names   map[string]string
	err     error
	calls   int
	queried [][]string
	// unattempted names are reported as never looked up.
	unattempted []string
}

func (s *stubLookup) LookupLocalizedNames(_ context.Context, names []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.queried = append(s.queried, append([]string(nil), names...))
	if s.err != nil {
		return nil, s.err
	}
	skip := make(map[string]struct{}, len(s.unattempted))
	for _, n := range s.unattempted {
		skip[n] = struct{}{}
	}
	out := make(map[string]string)
	for _, n := range names {
		if _, ok := skip[n]; ok {
			continue
		}
		if v, ok := s.names[n]; ok {
			out[n] = v
		}
	}
	if len(s.unattempted) > 0 {
		return out, &IncompleteLookupError{Unattempted: s.unattempted}
	}
	return out, nil
}

func fx(id, leagueID int64, kickoff time.Time, status string, home, away ExternalTeam) ExternalFixture {
	return ExternalFixture{
		ID:          id,
		LeagueID:    leagueID,
		LeagueLogo:  "https://media.api-sports.io/football/leagues/1.png",
		KickoffAt:   kickoff,
		StatusShort: status,
		Home:        home,
		Away:        away,
	}
}

func intPtr(v int) *int {
	return &v
}
