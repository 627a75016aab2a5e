package lineup

import (
	"fmt"

	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

const SlotActive = "active"

// Row is one stored nightly lineup entry.
type Row struct {
	SeasonID string      `json:"seasonId,omitempty"`
	Week     int         `json:"week,omitempty"`
	TeamID   string      `json:"teamId"`
	PlayerID string      `json:"playerId"`
	Night    stats.Night `json:"night"`
	Slot     string      `json:"slot"`
}

// NightLineup is a full replacement of one team's active set for one night.
type NightLineup struct {
	SeasonID  string
	Week      int
	TeamID    string
	Night     stats.Night
	PlayerIDs []string
}

func (l NightLineup) Validate() error {
	if l.SeasonID == "" {
		return fmt.Errorf("season id is required")
	}
	if l.Week < 1 {
		return fmt.Errorf("week must be >= 1")
	}
	if l.TeamID == "" {
		return fmt.Errorf("team id is required")
	}
	if !l.Night.Valid() {
		return fmt.Errorf("night must be MON or FRI")
	}
	if len(l.PlayerIDs) > team.MaxActive {
		return fmt.Errorf("at most %d active players per night", team.MaxActive)
	}
	seen := make(map[string]struct{}, len(l.PlayerIDs))
	for _, id := range l.PlayerIDs {
		if id == "" {
			return fmt.Errorf("player id is required")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate player %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Rows expands the lineup into stored rows.
func (l NightLineup) Rows() []Row {
	out := make([]Row, 0, len(l.PlayerIDs))
	for _, id := range l.PlayerIDs {
		out = append(out, Row{
			SeasonID: l.SeasonID,
			Week:     l.Week,
			TeamID:   l.TeamID,
			PlayerID: id,
			Night:    l.Night,
			Slot:     SlotActive,
		})
	}
	return out
}

// PlayerIDs resolves nightly keys to remote player ids, skipping unknown players.
func PlayerIDs(keys []string, pool []stats.PlayerTotals) []string {
	index := stats.IndexByKey(pool)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		pos, ok := index[key]
		if !ok || pool[pos].PlayerID == "" {
			continue
		}
		out = append(out, pool[pos].PlayerID)
	}
	return out
}
