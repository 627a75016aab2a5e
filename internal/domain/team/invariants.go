package team

import (
	"fmt"

	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
)

// ViolationKind names a broken roster invariant.
type ViolationKind string

const (
	ViolationDuplicateKey   ViolationKind = "duplicate_key"
	ViolationRosterSize     ViolationKind = "roster_size"
	ViolationCaptainMissing ViolationKind = "captain_missing"
	ViolationNightOverflow  ViolationKind = "night_overflow"
	ViolationNotOnRoster    ViolationKind = "night_not_on_roster"
	ViolationSharedPlayer   ViolationKind = "shared_player"
)

// Violation reports an inconsistency. Callers log these; they never abort a transition.
type Violation struct {
	TeamID string
	Kind   ViolationKind
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("team %s: %s: %s", v.TeamID, v.Kind, v.Detail)
}

// CheckInvariants inspects both rosters and their nightly lineups.
func CheckInvariants(teams [2]Team) []Violation {
	var out []Violation
	owner := make(map[string]string, 2*RosterSize)

	for _, t := range teams {
		seen := make(map[string]struct{}, RosterSize)
		for _, key := range t.Roster() {
			if _, dup := seen[key]; dup {
				out = append(out, Violation{TeamID: t.ID, Kind: ViolationDuplicateKey, Detail: key})
				continue
			}
			seen[key] = struct{}{}

			if other, taken := owner[key]; taken && other != t.ID {
				out = append(out, Violation{TeamID: t.ID, Kind: ViolationSharedPlayer, Detail: fmt.Sprintf("%s also on team %s", key, other)})
			}
			owner[key] = t.ID
		}

		size := t.RosterSize()
		if size != 0 && size != RosterSize {
			out = append(out, Violation{TeamID: t.ID, Kind: ViolationRosterSize, Detail: fmt.Sprintf("roster has %d players", size)})
		}
		if t.CaptainKey != "" && size > 0 && !t.OnRoster(t.CaptainKey) {
			out = append(out, Violation{TeamID: t.ID, Kind: ViolationCaptainMissing, Detail: t.CaptainKey})
		}

		for _, night := range stats.Nights {
			active := t.ActiveByNight.Get(night)
			if len(Dedupe(active)) > MaxActive {
				out = append(out, Violation{TeamID: t.ID, Kind: ViolationNightOverflow, Detail: fmt.Sprintf("%s has %d actives", night, len(active))})
			}
			if size == 0 {
				continue
			}
			for _, key := range active {
				if !t.OnRoster(key) {
					out = append(out, Violation{TeamID: t.ID, Kind: ViolationNotOnRoster, Detail: fmt.Sprintf("%s active %s", night, key)})
				}
			}
		}
	}

	return out
}
