package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
)

type LineupRepository struct {
	mu     sync.RWMutex
	byWeek map[string][]lineup.Row
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{byWeek: make(map[string][]lineup.Row)}
}

func (r *LineupRepository) ListByWeek(_ context.Context, seasonID string, week int) ([]lineup.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]lineup.Row(nil), r.byWeek[weekKey(seasonID, week)]...), nil
}

func (r *LineupRepository) ReplaceNight(_ context.Context, item lineup.NightLineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := weekKey(item.SeasonID, item.Week)
	kept := make([]lineup.Row, 0, len(r.byWeek[key])+len(item.PlayerIDs))
	for _, row := range r.byWeek[key] {
		if row.TeamID == item.TeamID && row.Night == item.Night {
			continue
		}
		kept = append(kept, row)
	}
	r.byWeek[key] = append(kept, item.Rows()...)
	return nil
}

func weekKey(seasonID string, week int) string {
	return seasonID + "::" + strconv.Itoa(week)
}
