package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/memory"
)

var northOwner = user.Principal{UserID: "user-nora", Name: "Nora", Role: user.RolePlayer}

func newLineupService() *LineupService {
	return NewLineupService(
		memory.NewSeasonRepository(memory.SeedSeasons()),
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewLineupRepository(),
	)
}

func TestLineupService_SaveNight_OwnerReplacesNight(t *testing.T) {
	svc := newLineupService()
	item := lineup.NightLineup{
		SeasonID:  memory.SeasonIDDemo,
		Week:      1,
		TeamID:    memory.TeamIDNorth,
		Night:     stats.Monday,
		PlayerIDs: []string{"p1", "p2", "p3", "p4"},
	}
	if _, err := svc.SaveNight(t.Context(), northOwner, item); err != nil {
		t.Fatalf("save night: %v", err)
	}

	item.PlayerIDs = []string{"p5"}
	if _, err := svc.SaveNight(t.Context(), northOwner, item); err != nil {
		t.Fatalf("save night again: %v", err)
	}

	rows, err := svc.ListByWeek(t.Context(), memory.SeasonIDDemo, 1)
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 || rows[0].PlayerID != "p5" || rows[0].Slot != lineup.SlotActive {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestLineupService_SaveNight_Rejections(t *testing.T) {
	valid := lineup.NightLineup{
		SeasonID:  memory.SeasonIDDemo,
		Week:      1,
		TeamID:    memory.TeamIDSouth,
		Night:     stats.Friday,
		PlayerIDs: []string{"p1"},
	}
	tooMany := valid
	tooMany.PlayerIDs = []string{"a", "b", "c", "d", "e"}
	dup := valid
	dup.PlayerIDs = []string{"a", "a"}
	badNight := valid
	badNight.Night = "SUN"
	unknownTeam := valid
	unknownTeam.TeamID = "nobody"

	tests := []struct {
		name      string
		principal user.Principal
		item      lineup.NightLineup
		targetErr error
	}{
		{name: "visitor", principal: user.Principal{UserID: "v", Role: user.RoleVisitor}, item: valid, targetErr: ErrForbidden},
		{name: "other owner", principal: northOwner, item: valid, targetErr: ErrForbidden},
		{name: "too many players", principal: commissioner, item: tooMany, targetErr: ErrInvalidInput},
		{name: "duplicate players", principal: commissioner, item: dup, targetErr: ErrInvalidInput},
		{name: "bad night", principal: commissioner, item: badNight, targetErr: ErrInvalidInput},
		{name: "unknown team", principal: commissioner, item: unknownTeam, targetErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLineupService().SaveNight(t.Context(), tt.principal, tt.item)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestLineupService_SaveNight_CommissionerAnyTeam(t *testing.T) {
	svc := newLineupService()
	_, err := svc.SaveNight(t.Context(), commissioner, lineup.NightLineup{
		SeasonID:  memory.SeasonIDDemo,
		Week:      2,
		TeamID:    memory.TeamIDSouth,
		Night:     stats.Friday,
		PlayerIDs: []string{"p9"},
	})
	if err != nil {
		t.Fatalf("commissioner save: %v", err)
	}
}
