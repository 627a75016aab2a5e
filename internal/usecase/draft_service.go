package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

type DraftService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	draftRepo  draft.Repository
}

func NewDraftService(seasonRepo season.Repository, teamRepo team.Repository, draftRepo draft.Repository) *DraftService {
	return &DraftService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		draftRepo:  draftRepo,
	}
}

func (s *DraftService) Get(ctx context.Context, seasonID string) ([]draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Get")
	defer span.End()

	if _, err := seasonTeams(ctx, s.seasonRepo, s.teamRepo, seasonID); err != nil {
		return nil, err
	}
	picks, err := s.draftRepo.ListBySeason(ctx, strings.TrimSpace(seasonID))
	if err != nil {
		return nil, fmt.Errorf("list draft picks: %w", err)
	}
	return picks, nil
}

// Replace swaps the season draft wholesale. Pick order is preserved.
func (s *DraftService) Replace(ctx context.Context, principal user.Principal, seasonID string, picks []draft.Pick) ([]draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Replace")
	defer span.End()

	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	teams, err := seasonTeams(ctx, s.seasonRepo, s.teamRepo, seasonID)
	if err != nil {
		return nil, err
	}

	normalized := make([]draft.Pick, 0, len(picks))
	perTeam := make(map[string]int, len(teams))
	seen := make(map[string]struct{}, len(picks))
	for _, pick := range picks {
		pick.TeamID = strings.TrimSpace(pick.TeamID)
		pick.PlayerID = strings.TrimSpace(pick.PlayerID)
		if pick.TeamID == "" || pick.PlayerID == "" {
			return nil, fmt.Errorf("%w: teamId and playerId are required", ErrInvalidInput)
		}
		if _, ok := teams[pick.TeamID]; !ok {
			return nil, fmt.Errorf("%w: team=%s is not in season=%s", ErrInvalidInput, pick.TeamID, seasonID)
		}
		if _, dup := seen[pick.PlayerID]; dup {
			return nil, fmt.Errorf("%w: player=%s picked twice", ErrInvalidInput, pick.PlayerID)
		}
		seen[pick.PlayerID] = struct{}{}
		perTeam[pick.TeamID]++
		if perTeam[pick.TeamID] > team.RosterSize {
			return nil, fmt.Errorf("%w: team=%s has more than %d picks", ErrInvalidInput, pick.TeamID, team.RosterSize)
		}
		normalized = append(normalized, pick)
	}

	if err := s.draftRepo.Replace(ctx, strings.TrimSpace(seasonID), normalized); err != nil {
		return nil, fmt.Errorf("replace draft: %w", err)
	}
	return normalized, nil
}
