package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/slowpitch-league/internal/platform/id"
)

func TestSeasonService_Start_CarriesTeamsOver(t *testing.T) {
	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	svc := NewSeasonService(seasonRepo, teamRepo, &id.Sequence{Prefix: "season-"})

	started, teams, err := svc.Start(t.Context(), commissioner, StartSeasonInput{Name: "Fall 2026"})
	if err != nil {
		t.Fatalf("start season: %v", err)
	}
	if started.ID != "season-1" || started.CurrentWeek != 1 || !started.IsActive {
		t.Fatalf("unexpected season: %+v", started)
	}
	if len(teams) != 2 || teams[0].TeamID != memory.TeamIDNorth || teams[0].SeasonID != "season-1" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
	if teams[1].CaptainKey != "sam ortiz" {
		t.Fatalf("expected captain to carry over, got %q", teams[1].CaptainKey)
	}

	current, err := svc.Current(t.Context())
	if err != nil {
		t.Fatalf("current season: %v", err)
	}
	if current.ID != "season-1" {
		t.Fatalf("expected new season to be active, got %s", current.ID)
	}

	listed, err := svc.ListTeams(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(listed))
	}
}

func TestSeasonService_Start_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     StartSeasonInput
		targetErr error
	}{
		{name: "missing name", input: StartSeasonInput{}, targetErr: ErrInvalidInput},
		{
			name:      "one team",
			input:     StartSeasonInput{Name: "X", Teams: []team.Identity{{Name: "A"}}},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "unnamed team",
			input:     StartSeasonInput{Name: "X", Teams: []team.Identity{{Name: "A"}, {Name: " "}}},
			targetErr: ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSeasonService(memory.NewSeasonRepository(nil), memory.NewTeamRepository(nil), &id.Sequence{})
			_, _, err := svc.Start(t.Context(), commissioner, tt.input)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}
