package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	orders []string
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	orders := make([]string, 0, len(seasons))
	for _, s := range seasons {
		items[s.ID] = s
		orders = append(orders, s.ID)
	}

	return &SeasonRepository{
		items:  items,
		orders: orders,
	}
}

func (r *SeasonRepository) GetActive(_ context.Context) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.orders) - 1; i >= 0; i-- {
		if s := r.items[r.orders[i]]; s.IsActive {
			return s, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	return s, ok, nil
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("season %s already exists", s.ID)
	}
	for id, existing := range r.items {
		existing.IsActive = false
		r.items[id] = existing
	}
	s.IsActive = true
	r.items[s.ID] = s
	r.orders = append(r.orders, s.ID)
	return nil
}

func (r *SeasonRepository) SetWeek(_ context.Context, seasonID string, week int) (season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, fmt.Errorf("season %s not found", seasonID)
	}
	if s.IsLocked {
		return season.Season{}, season.ErrLocked
	}
	s.CurrentWeek = week
	r.items[seasonID] = s
	return s, nil
}
