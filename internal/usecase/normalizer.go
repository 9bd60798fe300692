package usecase

import (
	"strings"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/fixture"
	"github.com/riskibarqy/matchday-sync/internal/domain/league"
)

const displayTimeLayout = "15:04"

// Normalizer turns provider records into catalog matches rendered in the display time zone.
type Normalizer struct {
	catalog  league.Catalog
	location *time.Location
}

func NewNormalizer(catalog league.Catalog, location *time.Location) Normalizer {
	if location == nil {
		location = time.UTC
	}
	return Normalizer{catalog: catalog, location: location}
}

// Normalize reports ok=false for fixtures whose league is not in the catalog.
func (n Normalizer) Normalize(raw ExternalFixture) (fixture.Match, league.League, bool) {
	item, ok := n.catalog.Lookup(raw.LeagueID)
	if !ok {
		return fixture.Match{}, league.League{}, false
	}
	if logo := strings.TrimSpace(raw.LeagueLogo); logo != "" {
		item.Logo = logo
	}

	homeRef := strings.TrimSpace(raw.Home.Name)
	awayRef := strings.TrimSpace(raw.Away.Name)
	match := fixture.Match{
		ID:          raw.ID,
		LeagueID:    raw.LeagueID,
		Status:      fixture.NormalizeStatus(raw.StatusShort),
		Minute:      copyInt(raw.Elapsed),
		KickoffAt:   raw.KickoffAt.UTC(),
		Time:        raw.KickoffAt.In(n.location).Format(displayTimeLayout),
		HomeTeamID:  raw.Home.ID,
		HomeTeam:    homeRef,
		HomeTeamRef: homeRef,
		HomeLogo:    strings.TrimSpace(raw.Home.Logo),
		HomeScore:   copyInt(raw.HomeGoals),
		AwayTeamID:  raw.Away.ID,
		AwayTeam:    awayRef,
		AwayTeamRef: awayRef,
		AwayLogo:    strings.TrimSpace(raw.Away.Logo),
		AwayScore:   copyInt(raw.AwayGoals),
	}
	if venue := strings.TrimSpace(raw.Venue); venue != "" {
		match.Stadium = &venue
	}
	if raw.KickoffAt.IsZero() {
		match.Time = ""
	}

	return match, item, true
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
