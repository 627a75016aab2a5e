package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/platform/id"
)

type StartSeasonInput struct {
	Name  string
	Teams []team.Identity
}

type SeasonService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	ids        id.Generator
	now        func() time.Time
}

func NewSeasonService(seasonRepo season.Repository, teamRepo team.Repository, ids id.Generator) *SeasonService {
	return &SeasonService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		ids:        ids,
		now:        time.Now,
	}
}

func (s *SeasonService) Current(ctx context.Context) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Current")
	defer span.End()

	item, exists, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("get active season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
	}
	return item, nil
}

// Start opens a new active season at week 1. Without explicit teams the
// previous season's teams are carried over.
func (s *SeasonService) Start(ctx context.Context, principal user.Principal, input StartSeasonInput) (season.Season, []team.Identity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Start")
	defer span.End()

	if err := requireCommissioner(principal); err != nil {
		return season.Season{}, nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return season.Season{}, nil, fmt.Errorf("%w: season name is required", ErrInvalidInput)
	}

	teams := input.Teams
	if len(teams) == 0 {
		previous, exists, err := s.seasonRepo.GetActive(ctx)
		if err != nil {
			return season.Season{}, nil, fmt.Errorf("get active season: %w", err)
		}
		if exists {
			teams, err = s.teamRepo.ListBySeason(ctx, previous.ID)
			if err != nil {
				return season.Season{}, nil, fmt.Errorf("list previous teams: %w", err)
			}
		}
	}
	if len(teams) != 2 {
		return season.Season{}, nil, fmt.Errorf("%w: a season needs exactly 2 teams, got %d", ErrInvalidInput, len(teams))
	}

	seasonID, err := s.ids.NewID()
	if err != nil {
		return season.Season{}, nil, fmt.Errorf("generate season id: %w", err)
	}
	item := season.Season{
		ID:          seasonID,
		Name:        name,
		CurrentWeek: 1,
		IsActive:    true,
		CreatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	carried := make([]team.Identity, 0, len(teams))
	for _, t := range teams {
		t.SeasonID = seasonID
		t.Name = strings.TrimSpace(t.Name)
		if t.TeamID == "" {
			t.TeamID, err = s.ids.NewID()
			if err != nil {
				return season.Season{}, nil, fmt.Errorf("generate team id: %w", err)
			}
		}
		if t.Name == "" {
			return season.Season{}, nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
		}
		carried = append(carried, t)
	}
	if carried[0].TeamID == carried[1].TeamID {
		return season.Season{}, nil, fmt.Errorf("%w: team ids must differ", ErrInvalidInput)
	}

	if err := s.seasonRepo.Create(ctx, item); err != nil {
		return season.Season{}, nil, fmt.Errorf("create season: %w", err)
	}
	if err := s.teamRepo.CreateMany(ctx, carried); err != nil {
		return season.Season{}, nil, fmt.Errorf("create season teams: %w", err)
	}

	return item, carried, nil
}

func (s *SeasonService) AdvanceWeek(ctx context.Context, principal user.Principal, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.AdvanceWeek")
	defer span.End()

	if err := requireCommissioner(principal); err != nil {
		return season.Season{}, err
	}
	item, err := s.get(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}
	return s.setWeek(ctx, item, item.CurrentWeek+1)
}

func (s *SeasonService) SetWeek(ctx context.Context, principal user.Principal, seasonID string, week int) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SetWeek")
	defer span.End()

	if err := requireCommissioner(principal); err != nil {
		return season.Season{}, err
	}
	if week < 1 {
		return season.Season{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	item, err := s.get(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}
	return s.setWeek(ctx, item, week)
}

func (s *SeasonService) ListTeams(ctx context.Context, seasonID string) ([]team.Identity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListTeams")
	defer span.End()

	if _, err := s.get(ctx, seasonID); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list teams by season: %w", err)
	}
	return teams, nil
}

func (s *SeasonService) setWeek(ctx context.Context, item season.Season, week int) (season.Season, error) {
	if item.IsLocked {
		return season.Season{}, fmt.Errorf("%w: season=%s is locked", ErrConflict, item.ID)
	}
	updated, err := s.seasonRepo.SetWeek(ctx, item.ID, week)
	if errors.Is(err, season.ErrLocked) {
		return season.Season{}, fmt.Errorf("%w: season=%s is locked", ErrConflict, item.ID)
	}
	if err != nil {
		return season.Season{}, fmt.Errorf("set season week: %w", err)
	}
	return updated, nil
}

func (s *SeasonService) get(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}

// seasonTeams loads a season's teams keyed by team id, failing when the season is unknown.
func seasonTeams(ctx context.Context, seasonRepo season.Repository, teamRepo team.Repository, seasonID string) (map[string]team.Identity, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	_, exists, err := seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	teams, err := teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list teams by season: %w", err)
	}
	out := make(map[string]team.Identity, len(teams))
	for _, t := range teams {
		out[t.TeamID] = t
	}
	return out, nil
}
