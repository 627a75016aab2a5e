package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	qb "github.com/riskibarqy/slowpitch-league/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) ListBySeason(ctx context.Context, seasonID string) ([]score.TeamScore, error) {
	query, args, err := qb.Select("season_id", "week", "team_id", "score").From("weekly_scores").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("week", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	out := make([]score.TeamScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScoreRepository) UpsertWeek(ctx context.Context, seasonID string, week int, scores []score.TeamScore) error {
	if len(scores) == 0 {
		return nil
	}

	rows := make([]scoreTableModel, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, scoreTableModel{SeasonID: seasonID, Week: week, TeamID: s.TeamID, Score: s.Score})
	}
	query, args, err := qb.InsertModels("weekly_scores", rows, `ON CONFLICT (season_id, week, team_id)
DO UPDATE SET
    score = EXCLUDED.score,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert scores: %w", err)
	}
	return nil
}
