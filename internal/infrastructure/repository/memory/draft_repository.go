package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
)

type DraftRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]draft.Pick
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{bySeason: make(map[string][]draft.Pick)}
}

func (r *DraftRepository) ListBySeason(_ context.Context, seasonID string) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]draft.Pick(nil), r.bySeason[seasonID]...), nil
}

func (r *DraftRepository) Replace(_ context.Context, seasonID string, picks []draft.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeason[seasonID] = append([]draft.Pick(nil), picks...)
	return nil
}
