package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

type LineupService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	lineupRepo lineup.Repository
}

func NewLineupService(seasonRepo season.Repository, teamRepo team.Repository, lineupRepo lineup.Repository) *LineupService {
	return &LineupService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		lineupRepo: lineupRepo,
	}
}

func (s *LineupService) ListByWeek(ctx context.Context, seasonID string, week int) ([]lineup.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.ListByWeek")
	defer span.End()

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	if _, err := seasonTeams(ctx, s.seasonRepo, s.teamRepo, seasonID); err != nil {
		return nil, err
	}
	rows, err := s.lineupRepo.ListByWeek(ctx, strings.TrimSpace(seasonID), week)
	if err != nil {
		return nil, fmt.Errorf("list lineups by week: %w", err)
	}
	return rows, nil
}

// SaveNight replaces one team's active set for one night. Non-commissioners
// may only write the team they own.
func (s *LineupService) SaveNight(ctx context.Context, principal user.Principal, item lineup.NightLineup) (lineup.NightLineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SaveNight")
	defer span.End()

	if err := requireWriter(principal); err != nil {
		return lineup.NightLineup{}, err
	}

	item.SeasonID = strings.TrimSpace(item.SeasonID)
	item.TeamID = strings.TrimSpace(item.TeamID)
	item.PlayerIDs = trimIDs(item.PlayerIDs)
	if err := item.Validate(); err != nil {
		return lineup.NightLineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	teams, err := seasonTeams(ctx, s.seasonRepo, s.teamRepo, item.SeasonID)
	if err != nil {
		return lineup.NightLineup{}, err
	}
	identity, ok := teams[item.TeamID]
	if !ok {
		return lineup.NightLineup{}, fmt.Errorf("%w: team=%s in season=%s", ErrNotFound, item.TeamID, item.SeasonID)
	}
	if !principal.IsCommissioner() && identity.OwnerUserID != principal.UserID && principal.TeamID != item.TeamID {
		return lineup.NightLineup{}, fmt.Errorf("%w: team=%s is not yours", ErrForbidden, item.TeamID)
	}

	if err := s.lineupRepo.ReplaceNight(ctx, item); err != nil {
		return lineup.NightLineup{}, fmt.Errorf("replace night lineup: %w", err)
	}
	return item, nil
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
