package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/platform/id"
	seasonmock "github.com/riskibarqy/slowpitch-league/internal/mocks/domain/season"
	teammock "github.com/riskibarqy/slowpitch-league/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

var commissioner = user.Principal{UserID: "c1", Name: "Commish", Role: user.RoleCommissioner}

func TestSeasonService_Current_NoActiveSeasonUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewSeasonService(seasonRepo, teamRepo, &id.Sequence{Prefix: "s"})

	seasonRepo.
		On("GetActive", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(season.Season{}, false, nil).
		Once()

	_, err := service.Current(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeasonService_AdvanceWeek_LockedSeasonUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewSeasonService(seasonRepo, teamRepo, &id.Sequence{Prefix: "s"})

	seasonRepo.
		On("GetByID", mock.Anything, "s1").
		Return(season.Season{ID: "s1", Name: "Spring", CurrentWeek: 3, IsActive: true}, true, nil).
		Once()
	seasonRepo.
		On("SetWeek", mock.Anything, "s1", 4).
		Return(season.Season{}, season.ErrLocked).
		Once()

	_, err := service.AdvanceWeek(ctx, commissioner, "s1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSeasonService_AdvanceWeek_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewSeasonService(seasonRepo, teamRepo, &id.Sequence{Prefix: "s"})

	seasonRepo.
		On("GetByID", mock.Anything, "s1").
		Return(season.Season{ID: "s1", Name: "Spring", CurrentWeek: 3, IsActive: true}, true, nil).
		Once()
	seasonRepo.
		On("SetWeek", mock.Anything, "s1", 4).
		Return(season.Season{ID: "s1", Name: "Spring", CurrentWeek: 4, IsActive: true}, nil).
		Once()

	got, err := service.AdvanceWeek(ctx, commissioner, "s1")
	if err != nil {
		t.Fatalf("advance week: %v", err)
	}
	if got.CurrentWeek != 4 {
		t.Fatalf("unexpected week: %d", got.CurrentWeek)
	}
}

func TestSeasonService_SetWeek_RequiresCommissionerUsingMockery(t *testing.T) {
	t.Parallel()

	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewSeasonService(seasonRepo, teamRepo, &id.Sequence{Prefix: "s"})

	tests := []struct {
		name      string
		principal user.Principal
		week      int
		targetErr error
	}{
		{name: "visitor", principal: user.Principal{UserID: "v", Role: user.RoleVisitor}, week: 2, targetErr: ErrForbidden},
		{name: "player", principal: user.Principal{UserID: "p", Role: user.RolePlayer}, week: 2, targetErr: ErrForbidden},
		{name: "anonymous", principal: user.Principal{}, week: 2, targetErr: ErrUnauthorized},
		{name: "bad week", principal: commissioner, week: 0, targetErr: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SetWeek(context.Background(), tt.principal, "s1", tt.week)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}
