package draft

import (
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

// Pick assigns one player to one team. Slice order is pick order.
type Pick struct {
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
}

// Result reports which teams had their roster replaced by the draft.
type Result struct {
	Teams   [2]team.Team
	Applied [2]bool
}

// Apply merges the authoritative draft into the local rosters.
// A team's roster is replaced only when it holds exactly six resolvable picks:
// the first four become active and the last two the bench.
// Team identities update owner fields and the captain; a captain missing from
// the roster is put back on it.
func Apply(teams [2]team.Team, picks []Pick, identities []team.Identity, pool []stats.PlayerTotals) Result {
	out := Result{}
	for i := range teams {
		out.Teams[i] = teams[i].Clone()
	}

	keyByPlayerID := stats.KeysByPlayerID(pool)
	byTeam := make(map[string][]string, 2)
	for _, pick := range picks {
		key, ok := keyByPlayerID[pick.PlayerID]
		if !ok {
			continue
		}
		byTeam[pick.TeamID] = append(byTeam[pick.TeamID], key)
	}

	identityByID := make(map[string]team.Identity, len(identities))
	for _, identity := range identities {
		identityByID[identity.TeamID] = identity
	}

	for i := range out.Teams {
		t := &out.Teams[i]

		keys := team.Dedupe(byTeam[t.ID])
		if t.ID != "" && len(keys) == team.RosterSize {
			t.Active = append([]string(nil), keys[:team.MaxActive]...)
			t.Bench = append([]string(nil), keys[team.MaxActive:]...)
			out.Applied[i] = true
		}

		if identity, ok := identityByID[t.ID]; ok {
			if identity.Name != "" {
				t.Owner = identity.Name
			}
			if identity.OwnerUserID != "" {
				t.OwnerUserID = identity.OwnerUserID
			}
			if identity.CaptainKey != "" {
				t.CaptainKey = identity.CaptainKey
			}
		}
		t.EnsureCaptainOnRoster()
		t.Normalize()
	}

	return out
}

// PicksFromTeams builds the draft in roster order for every rostered player
// that has a remote id.
func PicksFromTeams(teams [2]team.Team, pool []stats.PlayerTotals) []Pick {
	index := stats.IndexByKey(pool)
	out := make([]Pick, 0, 2*team.RosterSize)
	for _, t := range teams {
		if t.ID == "" {
			continue
		}
		for _, key := range t.Roster() {
			pos, ok := index[key]
			if !ok || pool[pos].PlayerID == "" {
				continue
			}
			out = append(out, Pick{TeamID: t.ID, PlayerID: pool[pos].PlayerID})
		}
	}
	return out
}

// Complete reports whether both rosters hold a full draft.
func Complete(teams [2]team.Team) bool {
	return teams[0].IsFull() && teams[1].IsFull()
}
