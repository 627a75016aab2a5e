package lineup

import (
	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

// Slot addresses one team's lineup for one night.
type Slot struct {
	TeamIdx int
	Night   stats.Night
}

// HydrateReport lists nightly lineups taken from the server and those seeded locally.
type HydrateReport struct {
	Applied []Slot
	Seeded  []Slot
	Skipped []Slot
}

// ApplyRemote applies stored nightly lineups to the local teams.
//
// A night with stored rows replaces the local list. A night without rows is
// seeded from the drafted actives only while its local list is still empty and
// the night is open, so local edits are never clobbered. Slots for which skip
// returns true keep their local list. Rosters are not touched.
func ApplyRemote(s league.State, rows []Row, skip func(teamID string, night stats.Night) bool) (league.State, HydrateReport) {
	report := HydrateReport{}
	keyByPlayerID := stats.KeysByPlayerID(s.Pool)

	type slotKey struct {
		teamID string
		night  stats.Night
	}
	stored := make(map[slotKey][]string)
	for _, row := range rows {
		if row.Slot != "" && row.Slot != SlotActive {
			continue
		}
		key, ok := keyByPlayerID[row.PlayerID]
		if !ok {
			continue
		}
		sk := slotKey{teamID: row.TeamID, night: row.Night}
		stored[sk] = append(stored[sk], key)
	}

	out := s.Clone()
	for i := range out.Teams {
		t := &out.Teams[i]
		if t.ID == "" {
			continue
		}

		for _, night := range stats.Nights {
			slot := Slot{TeamIdx: i, Night: night}
			if skip != nil && skip(t.ID, night) {
				report.Skipped = append(report.Skipped, slot)
				continue
			}

			keys, ok := stored[slotKey{teamID: t.ID, night: night}]
			if ok {
				t.ActiveByNight.Set(night, team.Cap(keys, team.MaxActive))
				report.Applied = append(report.Applied, slot)
				continue
			}

			if len(t.ActiveByNight.Get(night)) == 0 && t.IsOpen(night) && len(t.Active) > 0 {
				t.ActiveByNight.Set(night, team.Cap(t.Active, team.MaxActive))
				report.Seeded = append(report.Seeded, slot)
			}
		}
		t.Normalize()
	}

	return out, report
}
