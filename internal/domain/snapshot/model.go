package snapshot

import (
	"fmt"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/fixture"
	"github.com/riskibarqy/matchday-sync/internal/domain/league"
)

// DaySlot names one of the three rolling days kept in the store.
type DaySlot string

const (
	SlotYesterday DaySlot = "yesterday"
	SlotToday     DaySlot = "today"
	SlotTomorrow  DaySlot = "tomorrow"
)

var AllSlots = []DaySlot{SlotYesterday, SlotToday, SlotTomorrow}

func ParseSlot(v string) (DaySlot, error) {
	switch s := DaySlot(v); s {
	case SlotYesterday, SlotToday, SlotTomorrow:
		return s, nil
	default:
		return "", fmt.Errorf("unknown day slot %q", v)
	}
}

// DayOffset is the slot's distance in days from today.
func (s DaySlot) DayOffset() int {
	switch s {
	case SlotYesterday:
		return -1
	case SlotTomorrow:
		return 1
	default:
		return 0
	}
}

type LeagueEntry struct {
	League  league.League   `json:"league"`
	Matches []fixture.Match `json:"matches"`
}

// DaySnapshot is the ordered per-league listing for one calendar day.
type DaySnapshot struct {
	Slot    DaySlot       `json:"slot"`
	Date    string        `json:"date"`
	Leagues []LeagueEntry `json:"leagues"`
}

func (s DaySnapshot) MatchCount() int {
	n := 0
	for _, entry := range s.Leagues {
		n += len(entry.Matches)
	}
	return n
}

// HasNonTerminal reports whether any match can still change.
func (s DaySnapshot) HasNonTerminal() bool {
	for _, entry := range s.Leagues {
		for _, m := range entry.Matches {
			if !m.IsTerminal() {
				return true
			}
		}
	}
	return false
}

// KickoffBounds returns the earliest and latest known kickoff; ok is false when no match
// has one. Matches without a kickoff time are ignored.
func (s DaySnapshot) KickoffBounds() (first, last time.Time, ok bool) {
	for _, entry := range s.Leagues {
		for _, m := range entry.Matches {
			if m.KickoffAt.IsZero() {
				continue
			}
			if !ok || m.KickoffAt.Before(first) {
				first = m.KickoffAt
			}
			if !ok || m.KickoffAt.After(last) {
				last = m.KickoffAt
			}
			ok = true
		}
	}
	return first, last, ok
}

// TeamRef is one side of a match as the provider names it.
type TeamRef struct {
	ID            int64
	ReferenceName string
}

// TeamRefs lists every team referenced by the snapshot once, in first-seen order.
func (s DaySnapshot) TeamRefs() []TeamRef {
	seen := make(map[int64]struct{})
	out := make([]TeamRef, 0)
	add := func(id int64, ref string) {
		if id <= 0 {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, TeamRef{ID: id, ReferenceName: ref})
	}
	for _, entry := range s.Leagues {
		for _, m := range entry.Matches {
			add(m.HomeTeamID, m.HomeTeamRef)
			add(m.AwayTeamID, m.AwayTeamRef)
		}
	}
	return out
}
