package usecase

import (
	"context"
	"fmt"
	"time"
)

// ExternalFixture is one provider fixture record before normalization.
type ExternalFixture struct {
	ID          int64
	LeagueID    int64
	LeagueName  string
	LeagueLogo  string
	KickoffAt   time.Time
	StatusShort string
	Elapsed     *int
	Venue       string
	Home        ExternalTeam
	Away        ExternalTeam
	HomeGoals   *int
	AwayGoals   *int
}

type ExternalTeam struct {
	ID   int64
	Name string
	Logo string
}

// FixtureProvider returns every fixture the provider lists for a calendar date (YYYY-MM-DD).
type FixtureProvider interface {
	FetchFixturesByDate(ctx context.Context, date string) ([]ExternalFixture, error)
}

// NameLookup resolves reference names to localized names. Missing keys are misses.
// An *IncompleteLookupError comes with the partial result; any other error means the
// lookup was not attempted at all.
type NameLookup interface {
	LookupLocalizedNames(ctx context.Context, referenceNames []string) (map[string]string, error)
}

// IncompleteLookupError lists names the lookup never got to ask about, usually because a
// circuit opened partway through. Those names are neither hits nor misses.
type IncompleteLookupError struct {
	Unattempted []string
}

func (e *IncompleteLookupError) Error() string {
	return fmt.Sprintf("%s: %d names not looked up", ErrDependencyUnavailable, len(e.Unattempted))
}

func (e *IncompleteLookupError) Unwrap() error {
	return ErrDependencyUnavailable
}
