package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	qb "github.com/riskibarqy/slowpitch-league/internal/platform/querybuilder"
)

var teamSelectColumns = []string{
	"season_id",
	"id",
	"position",
	"name",
	"owner_user_id",
	"captain_key",
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Identity, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Identity, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, seasonID, teamID string) (team.Identity, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("season_id", seasonID), qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Identity{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Identity{}, false, nil
		}
		return team.Identity{}, false, fmt.Errorf("get team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) CreateMany(ctx context.Context, teams []team.Identity) error {
	if len(teams) == 0 {
		return nil
	}

	rows := make([]teamTableModel, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, teamTableModel{
			SeasonID:    t.SeasonID,
			ID:          t.TeamID,
			Position:    i,
			Name:        t.Name,
			OwnerUserID: t.OwnerUserID,
			CaptainKey:  t.CaptainKey,
		})
	}

	query, args, err := qb.InsertModels("teams", rows, `ON CONFLICT (season_id, id)
DO UPDATE SET
    name = EXCLUDED.name,
    owner_user_id = EXCLUDED.owner_user_id,
    captain_key = EXCLUDED.captain_key`)
	if err != nil {
		return fmt.Errorf("build insert teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert teams: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Identity {
	return team.Identity{
		TeamID:      row.ID,
		SeasonID:    row.SeasonID,
		Name:        row.Name,
		OwnerUserID: row.OwnerUserID,
		CaptainKey:  row.CaptainKey,
	}
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
