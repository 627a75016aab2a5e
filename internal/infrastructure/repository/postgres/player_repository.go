package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	qb "github.com/riskibarqy/slowpitch-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("id", "name", "created_at").From("players").
		OrderBy("LOWER(name)", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

// InsertMissing relies on the unique LOWER(name) index to skip known names.
func (r *PlayerRepository) InsertMissing(ctx context.Context, players []player.Player) (int, error) {
	if len(players) == 0 {
		return 0, nil
	}

	rows := make([]playerTableModel, 0, len(players))
	for _, p := range players {
		rows = append(rows, playerTableModel{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
	}
	query, args, err := qb.InsertModels("players", rows, "ON CONFLICT ((LOWER(name))) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build insert players query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert players: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count inserted players: %w", err)
	}
	return int(affected), nil
}
