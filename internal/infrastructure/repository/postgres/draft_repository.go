package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	qb "github.com/riskibarqy/slowpitch-league/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) ListBySeason(ctx context.Context, seasonID string) ([]draft.Pick, error) {
	query, args, err := qb.Select("season_id", "position", "team_id", "player_id").From("season_draft").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft query: %w", err)
	}

	var rows []draftTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list draft: %w", err)
	}

	out := make([]draft.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, draft.Pick{TeamID: row.TeamID, PlayerID: row.PlayerID})
	}
	return out, nil
}

func (r *DraftRepository) Replace(ctx context.Context, seasonID string, picks []draft.Pick) error {
	deleteQuery, deleteArgs, err := qb.DeleteFrom("season_draft").
		Where(qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete draft query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace draft tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if len(picks) > 0 {
		insertQuery, insertArgs, err := qb.InsertModels("season_draft", draftInsertModels(seasonID, picks), "")
		if err != nil {
			return fmt.Errorf("build insert draft query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert draft: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace draft tx: %w", err)
	}
	return nil
}
