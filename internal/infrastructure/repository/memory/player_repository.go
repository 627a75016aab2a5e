package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items []player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	return &PlayerRepository{items: append([]player.Player(nil), players...)}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]player.Player(nil), r.items...), nil
}

func (r *PlayerRepository) InsertMissing(_ context.Context, players []player.Player) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	known := make(map[string]struct{}, len(r.items))
	for _, p := range r.items {
		known[strings.ToLower(p.Name)] = struct{}{}
	}

	inserted := 0
	for _, p := range players {
		key := strings.ToLower(p.Name)
		if _, exists := known[key]; exists {
			continue
		}
		known[key] = struct{}{}
		r.items = append(r.items, p)
		inserted++
	}
	return inserted, nil
}
