package fixture

import (
	"strings"
	"time"
)

// Provider short status codes.
const (
	StatusNotStarted     = "NS"
	StatusFirstHalf      = "1H"
	StatusHalfTime       = "HT"
	StatusSecondHalf     = "2H"
	StatusExtraTime      = "ET"
	StatusBreakTime      = "BT"
	StatusPenalties      = "P"
	StatusInterrupted    = "INT"
	StatusLive           = "LIVE"
	StatusSuspended      = "SUSP"
	StatusFinished       = "FT"
	StatusAfterExtraTime = "AET"
	StatusAfterPenalties = "PEN"
	StatusCancelled      = "CANC"
	StatusPostponed      = "PST"
	StatusAbandoned      = "ABD"
	StatusWalkover       = "WO"
	StatusAwarded        = "AWD"
	StatusToBeDetermined = "TBD"
)

// Match is one fixture as stored in a day snapshot. HomeTeam/AwayTeam hold the
// rendered display name, HomeTeamRef/AwayTeamRef the provider reference name.
type Match struct {
	ID          int64     `json:"id"`
	LeagueID    int64     `json:"league_id"`
	Status      string    `json:"status"`
	Minute      *int      `json:"minute"`
	KickoffAt   time.Time `json:"kickoff_at"`
	Time        string    `json:"time"`
	HomeTeamID  int64     `json:"home_id"`
	HomeTeam    string    `json:"home_team"`
	HomeTeamRef string    `json:"home_team_ref"`
	HomeLogo    string    `json:"home_logo"`
	HomeScore   *int      `json:"home_score"`
	AwayTeamID  int64     `json:"away_id"`
	AwayTeam    string    `json:"away_team"`
	AwayTeamRef string    `json:"away_team_ref"`
	AwayLogo    string    `json:"away_logo"`
	AwayScore   *int      `json:"away_score"`
	Stadium     *string   `json:"stadium"`
}

// NormalizeStatus upper-cases a provider status; empty means not started.
func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusNotStarted
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFirstHalf, StatusSecondHalf, StatusHalfTime, StatusExtraTime,
		StatusBreakTime, StatusPenalties, StatusInterrupted, StatusLive:
		return true
	default:
		return false
	}
}

// IsTerminalStatus reports statuses after which a match will not change again.
func IsTerminalStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, StatusAfterExtraTime, StatusAfterPenalties, StatusCancelled,
		StatusPostponed, StatusAbandoned, StatusWalkover, StatusAwarded, StatusToBeDetermined:
		return true
	default:
		return false
	}
}

// Bucket is the coarse ordering class of a match inside its league.
type Bucket int

const (
	BucketLive Bucket = iota
	BucketNotStarted
	BucketOther
)

// BucketOf never classifies an unknown status as live.
func BucketOf(status string) Bucket {
	switch {
	case IsLiveStatus(status):
		return BucketLive
	case NormalizeStatus(status) == StatusNotStarted:
		return BucketNotStarted
	default:
		return BucketOther
	}
}

func (m Match) IsTerminal() bool {
	return IsTerminalStatus(m.Status)
}
