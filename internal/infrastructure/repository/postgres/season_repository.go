package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	qb "github.com/riskibarqy/slowpitch-league/internal/platform/querybuilder"
)

var seasonSelectColumns = []string{
	"id",
	"name",
	"current_week",
	"is_locked",
	"is_active",
	"created_at",
}

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetActive(ctx context.Context) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Eq("is_active", true)).
		OrderBy("created_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	deactivate, deactivateArgs, err := qb.Update("seasons").
		Set("is_active", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("is_active", true)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate seasons query: %w", err)
	}
	insert, insertArgs, err := qb.InsertModel("seasons", seasonTableModel{
		ID:          s.ID,
		Name:        s.Name,
		CurrentWeek: s.CurrentWeek,
		IsLocked:    s.IsLocked,
		IsActive:    true,
		CreatedAt:   s.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create season tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deactivate, deactivateArgs...); err != nil {
		return fmt.Errorf("deactivate seasons: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insert, insertArgs...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create season tx: %w", err)
	}
	return nil
}

func (r *SeasonRepository) SetWeek(ctx context.Context, seasonID string, week int) (season.Season, error) {
	query, args, err := qb.Update("seasons").
		Set("current_week", week).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", seasonID), qb.Eq("is_locked", false)).
		Suffix("RETURNING " + joinColumns(seasonSelectColumns)).
		ToSQL()
	if err != nil {
		return season.Season{}, fmt.Errorf("build set season week query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return season.Season{}, fmt.Errorf("set season week: %w", err)
		}
		existing, exists, getErr := r.GetByID(ctx, seasonID)
		if getErr != nil {
			return season.Season{}, getErr
		}
		if exists && existing.IsLocked {
			return season.Season{}, season.ErrLocked
		}
		return season.Season{}, fmt.Errorf("set season week: season %s not found", seasonID)
	}

	return seasonFromRow(row), nil
}

func (r *SeasonRepository) getOne(ctx context.Context, query string, args []any) (season.Season, bool, error) {
	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return seasonFromRow(row), true, nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:          row.ID,
		Name:        row.Name,
		CurrentWeek: row.CurrentWeek,
		IsLocked:    row.IsLocked,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
}
