package usecase

import (
	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/domain/team"
)

// NameIndex maps team id to its resolved localized name.
type NameIndex map[int64]string

func NewNameIndex(names map[int64]team.Name) NameIndex {
	idx := make(NameIndex, len(names))
	for id, n := range names {
		if n.LocalizedName != "" {
			idx[id] = n.LocalizedName
		}
	}
	return idx
}

// Display renders the stored team label for a match row.
func (idx NameIndex) Display(teamID int64, reference string) string {
	return team.DisplayName(idx[teamID], reference)
}

// RewriteSnapshot re-renders every team label from idx. It returns a copy and
// whether any label changed; the input is never mutated.
func RewriteSnapshot(snap snapshot.DaySnapshot, idx NameIndex) (snapshot.DaySnapshot, bool) {
	out := snap
	if snap.Leagues == nil {
		return out, false
	}
	out.Leagues = make([]snapshot.LeagueEntry, len(snap.Leagues))
	changed := false

	for i, entry := range snap.Leagues {
		copied := entry
		copied.Matches = append(copied.Matches[:0:0], entry.Matches...)
		for j := range copied.Matches {
			m := &copied.Matches[j]
			if m.HomeTeamRef == "" {
				m.HomeTeamRef = team.ReferenceFromDisplay(m.HomeTeam)
			}
			if m.AwayTeamRef == "" {
				m.AwayTeamRef = team.ReferenceFromDisplay(m.AwayTeam)
			}
			home := idx.Display(m.HomeTeamID, m.HomeTeamRef)
			away := idx.Display(m.AwayTeamID, m.AwayTeamRef)
			if home != m.HomeTeam || away != m.AwayTeam {
				changed = true
			}
			m.HomeTeam = home
			m.AwayTeam = away
		}
		out.Leagues[i] = copied
	}

	return out, changed
}
