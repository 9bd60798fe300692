package usecase

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/matchday-sync/internal/domain/fixture"
	"github.com/riskibarqy/matchday-sync/internal/domain/league"
	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
)

// OrderLeagues sorts entries in place by catalog priority. Stable.
func OrderLeagues(catalog league.Catalog, entries []snapshot.LeagueEntry) {
	slices.SortStableFunc(entries, func(a, b snapshot.LeagueEntry) int {
		switch {
		case catalog.Less(a.League.ID, b.League.ID):
			return -1
		case catalog.Less(b.League.ID, a.League.ID):
			return 1
		default:
			return 0
		}
	})
}

// OrderMatches sorts live, then not started, then everything else; kickoff ascending
// inside a bucket. Equal keys keep the provider order.
func OrderMatches(matches []fixture.Match) {
	slices.SortStableFunc(matches, func(a, b fixture.Match) int {
		if c := cmp.Compare(fixture.BucketOf(a.Status), fixture.BucketOf(b.Status)); c != 0 {
			return c
		}
		return a.KickoffAt.Compare(b.KickoffAt)
	})
}
