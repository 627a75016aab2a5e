package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

type TeamRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]team.Identity
}

func NewTeamRepository(teams []team.Identity) *TeamRepository {
	r := &TeamRepository{bySeason: make(map[string][]team.Identity)}
	for _, t := range teams {
		r.bySeason[t.SeasonID] = append(r.bySeason[t.SeasonID], t)
	}
	return r
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]team.Identity(nil), r.bySeason[seasonID]...), nil
}

func (r *TeamRepository) GetByID(_ context.Context, seasonID, teamID string) (team.Identity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.bySeason[seasonID] {
		if t.TeamID == teamID {
			return t, true, nil
		}
	}
	return team.Identity{}, false, nil
}

func (r *TeamRepository) CreateMany(_ context.Context, teams []team.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range teams {
		items := r.bySeason[t.SeasonID]
		replaced := false
		for i := range items {
			if items[i].TeamID == t.TeamID {
				items[i] = t
				replaced = true
			}
		}
		if !replaced {
			items = append(items, t)
		}
		r.bySeason[t.SeasonID] = items
	}
	return nil
}
