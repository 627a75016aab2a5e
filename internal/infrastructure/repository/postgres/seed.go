package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads seed into an empty database. It is a no-op once any season exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, seed memory.Seed, hash func(string) (string, error)) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	users, err := seed.UserAccounts(hash)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range seed.Seasons() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO seasons (id, name, current_week, is_locked, is_active)
VALUES (:id, :name, :current_week, FALSE, TRUE)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":           s.ID,
			"name":         s.Name,
			"current_week": s.CurrentWeek,
		})
		if err != nil {
			return fmt.Errorf("bind seed season %s query: %w", s.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed season %s: %w", s.ID, err)
		}
	}

	for _, u := range users {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO users (id, name, pin_hash, role, team_id)
VALUES (:id, :name, :pin_hash, :role, :team_id)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":       u.ID,
			"name":     u.Name,
			"pin_hash": u.PinHash,
			"role":     string(u.Role),
			"team_id":  u.TeamID,
		})
		if err != nil {
			return fmt.Errorf("bind seed user %s query: %w", u.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for i, t := range seed.TeamIdentities() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (season_id, id, position, name, owner_user_id, captain_key)
VALUES (:season_id, :id, :position, :name, :owner_user_id, :captain_key)
ON CONFLICT (season_id, id) DO NOTHING`, map[string]any{
			"season_id":     t.SeasonID,
			"id":            t.TeamID,
			"position":      i,
			"name":          t.Name,
			"owner_user_id": t.OwnerUserID,
			"captain_key":   t.CaptainKey,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.TeamID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.TeamID, err)
		}
	}

	for _, p := range seed.PlayerDirectory() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, name)
VALUES (:id, :name)
ON CONFLICT DO NOTHING`, map[string]any{
			"id":   p.ID,
			"name": p.Name,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
