package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/platform/id"
)

type PlayerService struct {
	playerRepo player.Repository
	ids        id.Generator
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, ids id.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		ids:        ids,
		now:        time.Now,
	}
}

// List returns the directory ordered by name. A non-empty query keeps only
// fuzzy matches, closest first.
func (s *PlayerService) List(ctx context.Context, query string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	query = strings.TrimSpace(query)
	if query == "" {
		return items, nil
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]player.Player, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, items[rank.OriginalIndex])
	}
	return out, nil
}

// Sync inserts every name that has no case-insensitive match yet.
func (s *PlayerService) Sync(ctx context.Context, principal user.Principal, names []string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Sync")
	defer span.End()

	if err := requireWriter(principal); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(names))
	candidates := make([]player.Player, 0, len(names))
	now := s.now().UTC()
	for _, raw := range names {
		name := strings.Join(strings.Fields(raw), " ")
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		playerID, err := s.ids.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate player id: %w", err)
		}
		candidates = append(candidates, player.Player{ID: playerID, Name: name, CreatedAt: now})
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	inserted, err := s.playerRepo.InsertMissing(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("insert missing players: %w", err)
	}
	return inserted, nil
}
