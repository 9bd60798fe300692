package usecase

import (
	"time"

	"github.com/riskibarqy/matchday-sync/internal/domain/syncmeta"
)

const (
	DefaultPreRoll  = 10 * time.Minute
	DefaultPostRoll = 160 * time.Minute
)

type Verdict string

const (
	VerdictTooEarly     Verdict = "TOO_EARLY"
	VerdictActiveWindow Verdict = "ACTIVE_WINDOW"
	VerdictWindowClosed Verdict = "WINDOW_CLOSED"
	VerdictNoMeta       Verdict = "NO_META"
	VerdictNoMatches    Verdict = "NO_MATCHES"
)

// Decision is the gate's verdict for today. OpensAt/ClosesAt are zero without bounds.
type Decision struct {
	Verdict  Verdict   `json:"verdict"`
	Fetch    bool      `json:"fetch"`
	OpensAt  time.Time `json:"opens_at,omitempty"`
	ClosesAt time.Time `json:"closes_at,omitempty"`
}

// FetchGate decides whether today's fixtures should be fetched. It has no side effects.
type FetchGate struct {
	preRoll  time.Duration
	postRoll time.Duration
}

func NewFetchGate(preRoll, postRoll time.Duration) FetchGate {
	if preRoll < 0 {
		preRoll = DefaultPreRoll
	}
	if postRoll <= 0 {
		postRoll = DefaultPostRoll
	}
	return FetchGate{preRoll: preRoll, postRoll: postRoll}
}

// Decide treats a missing meta (present=false) as fail-open.
func (g FetchGate) Decide(meta syncmeta.Meta, present bool, now time.Time) Decision {
	if !present {
		return Decision{Verdict: VerdictNoMeta, Fetch: true}
	}
	if !meta.HasMatches() {
		return Decision{Verdict: VerdictNoMatches}
	}

	opensAt := meta.FirstMatchAt.Add(-g.preRoll)
	closesAt := meta.LastMatchAt.Add(g.postRoll)
	d := Decision{OpensAt: opensAt, ClosesAt: closesAt}
	switch {
	case now.Before(opensAt):
		d.Verdict = VerdictTooEarly
	case now.After(closesAt):
		d.Verdict = VerdictWindowClosed
	default:
		d.Verdict = VerdictActiveWindow
		d.Fetch = true
	}
	return d
}
