package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
)

type ScoreRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]score.TeamScore
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{bySeason: make(map[string][]score.TeamScore)}
}

func (r *ScoreRepository) ListBySeason(_ context.Context, seasonID string) ([]score.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]score.TeamScore(nil), r.bySeason[seasonID]...), nil
}

func (r *ScoreRepository) UpsertWeek(_ context.Context, seasonID string, week int, scores []score.TeamScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.bySeason[seasonID]
	for _, s := range scores {
		s.SeasonID = seasonID
		s.Week = week
		replaced := false
		for i := range items {
			if items[i].Week == week && items[i].TeamID == s.TeamID {
				items[i] = s
				replaced = true
			}
		}
		if !replaced {
			items = append(items, s)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Week < items[j].Week })
	r.bySeason[seasonID] = items
	return nil
}
