package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

type ScoreService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	scoreRepo  score.Repository
}

func NewScoreService(seasonRepo season.Repository, teamRepo team.Repository, scoreRepo score.Repository) *ScoreService {
	return &ScoreService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		scoreRepo:  scoreRepo,
	}
}

// ListBySeason returns week -> teamId -> score.
func (s *ScoreService) ListBySeason(ctx context.Context, seasonID string) (map[int]map[string]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ListBySeason")
	defer span.End()

	if _, err := seasonTeams(ctx, s.seasonRepo, s.teamRepo, seasonID); err != nil {
		return nil, err
	}
	items, err := s.scoreRepo.ListBySeason(ctx, strings.TrimSpace(seasonID))
	if err != nil {
		return nil, fmt.Errorf("list scores by season: %w", err)
	}

	out := make(map[int]map[string]float64)
	for _, item := range items {
		week, ok := out[item.Week]
		if !ok {
			week = make(map[string]float64, 2)
			out[item.Week] = week
		}
		week[item.TeamID] = item.Score
	}
	return out, nil
}

func (s *ScoreService) SaveWeek(ctx context.Context, principal user.Principal, seasonID string, week int, scores map[string]float64) ([]score.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.SaveWeek")
	defer span.End()

	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: scores are required", ErrInvalidInput)
	}

	seasonID = strings.TrimSpace(seasonID)
	teams, err := seasonTeams(ctx, s.seasonRepo, s.teamRepo, seasonID)
	if err != nil {
		return nil, err
	}

	items := make([]score.TeamScore, 0, len(scores))
	for teamID, value := range scores {
		if _, ok := teams[teamID]; !ok {
			return nil, fmt.Errorf("%w: team=%s is not in season=%s", ErrInvalidInput, teamID, seasonID)
		}
		items = append(items, score.TeamScore{SeasonID: seasonID, Week: week, TeamID: teamID, Score: value})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TeamID < items[j].TeamID })

	if err := s.scoreRepo.UpsertWeek(ctx, seasonID, week, items); err != nil {
		return nil, fmt.Errorf("upsert week scores: %w", err)
	}
	return items, nil
}
