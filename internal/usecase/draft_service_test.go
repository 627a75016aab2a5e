package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/memory"
)

func newDraftService() *DraftService {
	return NewDraftService(
		memory.NewSeasonRepository(memory.SeedSeasons()),
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewDraftRepository(),
	)
}

func TestDraftService_Replace_PreservesPickOrder(t *testing.T) {
	svc := newDraftService()
	picks := []draft.Pick{
		{TeamID: memory.TeamIDNorth, PlayerID: "p1"},
		{TeamID: memory.TeamIDSouth, PlayerID: "p2"},
		{TeamID: memory.TeamIDNorth, PlayerID: " p3 "},
	}

	if _, err := svc.Replace(t.Context(), commissioner, memory.SeasonIDDemo, picks); err != nil {
		t.Fatalf("replace draft: %v", err)
	}
	got, err := svc.Get(t.Context(), memory.SeasonIDDemo)
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if len(got) != 3 || got[0].PlayerID != "p1" || got[2].PlayerID != "p3" {
		t.Fatalf("unexpected picks: %+v", got)
	}

	if _, err := svc.Replace(t.Context(), commissioner, memory.SeasonIDDemo, picks[:1]); err != nil {
		t.Fatalf("replace draft again: %v", err)
	}
	got, _ = svc.Get(t.Context(), memory.SeasonIDDemo)
	if len(got) != 1 {
		t.Fatalf("expected wholesale replace, got %+v", got)
	}
}

func TestDraftService_Replace_Validation(t *testing.T) {
	seven := make([]draft.Pick, 0, 7)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		seven = append(seven, draft.Pick{TeamID: memory.TeamIDNorth, PlayerID: id})
	}

	tests := []struct {
		name      string
		principal user.Principal
		seasonID  string
		picks     []draft.Pick
		targetErr error
	}{
		{
			name:      "visitor",
			principal: user.Principal{UserID: "v", Role: user.RoleVisitor},
			seasonID:  memory.SeasonIDDemo,
			targetErr: ErrForbidden,
		},
		{
			name:      "unknown season",
			principal: commissioner,
			seasonID:  "missing",
			targetErr: ErrNotFound,
		},
		{
			name:      "unknown team",
			principal: commissioner,
			seasonID:  memory.SeasonIDDemo,
			picks:     []draft.Pick{{TeamID: "other", PlayerID: "a"}},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "duplicate player",
			principal: commissioner,
			seasonID:  memory.SeasonIDDemo,
			picks: []draft.Pick{
				{TeamID: memory.TeamIDNorth, PlayerID: "a"},
				{TeamID: memory.TeamIDSouth, PlayerID: "a"},
			},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "too many picks",
			principal: commissioner,
			seasonID:  memory.SeasonIDDemo,
			picks:     seven,
			targetErr: ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newDraftService().Replace(t.Context(), tt.principal, tt.seasonID, tt.picks)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}
