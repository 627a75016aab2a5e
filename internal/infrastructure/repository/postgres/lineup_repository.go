package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	qb "github.com/riskibarqy/slowpitch-league/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) ListByWeek(ctx context.Context, seasonID string, week int) ([]lineup.Row, error) {
	query, args, err := qb.Select("season_id", "week", "team_id", "night", "position", "player_id", "slot").
		From("weekly_lineups").
		Where(qb.Eq("season_id", seasonID), qb.Eq("week", week)).
		OrderBy("team_id", "night", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	out := make([]lineup.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceNight deletes the team's rows for the night and inserts the new set in one transaction.
func (r *LineupRepository) ReplaceNight(ctx context.Context, item lineup.NightLineup) error {
	deleteQuery, deleteArgs, err := qb.DeleteFrom("weekly_lineups").
		Where(
			qb.Eq("season_id", item.SeasonID),
			qb.Eq("week", item.Week),
			qb.Eq("team_id", item.TeamID),
			qb.Eq("night", string(item.Night)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete lineup query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace lineup tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	if len(item.PlayerIDs) > 0 {
		insertQuery, insertArgs, err := qb.InsertModels("weekly_lineups", lineupInsertModels(item), "")
		if err != nil {
			return fmt.Errorf("build insert lineup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert lineup: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace lineup tx: %w", err)
	}
	return nil
}
