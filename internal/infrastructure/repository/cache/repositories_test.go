package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/slowpitch-league/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/slowpitch-league/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestPlayerRepository_ListServedFromCacheUntilInsert(t *testing.T) {
	ctx := context.Background()
	next := playermock.NewRepository(t)
	next.On("List", mock.Anything).Return([]player.Player{{ID: "p1", Name: "Ana"}}, nil).Twice()
	next.On("InsertMissing", mock.Anything, mock.Anything).Return(1, nil).Once()

	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("unexpected players: %+v", items)
		}
	}

	if _, err := repo.InsertMissing(ctx, []player.Player{{ID: "p2", Name: "Bo"}}); err != nil {
		t.Fatalf("insert players: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list players after insert: %v", err)
	}
}

func TestSeasonRepository_SetWeekEvictsActive(t *testing.T) {
	ctx := context.Background()
	next := memory.NewSeasonRepository(memory.SeedSeasons())
	repo := NewSeasonRepository(next, basecache.NewStore(time.Minute))

	before, exists, err := repo.GetActive(ctx)
	if err != nil || !exists {
		t.Fatalf("get active season: exists=%v err=%v", exists, err)
	}
	if _, err := repo.SetWeek(ctx, before.ID, before.CurrentWeek+1); err != nil {
		t.Fatalf("set week: %v", err)
	}

	after, _, err := repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active season after set week: %v", err)
	}
	if after.CurrentWeek != before.CurrentWeek+1 {
		t.Fatalf("expected week %d, got %d", before.CurrentWeek+1, after.CurrentWeek)
	}
}

var _ season.Repository = (*SeasonRepository)(nil)
