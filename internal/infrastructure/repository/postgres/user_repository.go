package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/domain/userstate"
	qb "github.com/riskibarqy/slowpitch-league/internal/platform/querybuilder"
)

var userSelectColumns = []string{"id", "name", "pin_hash", "role", "team_id", "created_at"}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (user.User, bool, error) {
	query, args, err := qb.Select(userSelectColumns...).From("users").
		Where(qb.EqFold("name", strings.TrimSpace(name))).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by name query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select(userSelectColumns...).From("users").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	query, args, err := qb.InsertModel("users", userTableModel{
		ID:        u.ID,
		Name:      u.Name,
		PinHash:   u.PinHash,
		Role:      string(u.Role),
		TeamID:    u.TeamID,
		CreatedAt: u.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: name already taken: %w", u.Name, err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, args []any) (user.User, bool, error) {
	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return user.User{
		ID:        row.ID,
		Name:      row.Name,
		PinHash:   row.PinHash,
		Role:      user.Role(row.Role),
		TeamID:    row.TeamID,
		CreatedAt: row.CreatedAt,
	}, true, nil
}

type UserStateRepository struct {
	db *sqlx.DB
}

func NewUserStateRepository(db *sqlx.DB) *UserStateRepository {
	return &UserStateRepository{db: db}
}

func (r *UserStateRepository) Get(ctx context.Context, userID string) (userstate.State, bool, error) {
	query, args, err := qb.Select("user_id", "state_json::text AS state_json", "updated_at").From("user_states").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return userstate.State{}, false, fmt.Errorf("build get user state query: %w", err)
	}

	var row userStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return userstate.State{}, false, nil
		}
		return userstate.State{}, false, fmt.Errorf("get user state: %w", err)
	}
	return userstate.State{
		UserID:    row.UserID,
		StateJSON: []byte(row.StateJSON),
		UpdatedAt: row.UpdatedAt,
	}, true, nil
}

func (r *UserStateRepository) Upsert(ctx context.Context, state userstate.State) error {
	query, args, err := qb.InsertModel("user_states", userStateTableModel{
		UserID:    state.UserID,
		StateJSON: string(state.StateJSON),
		UpdatedAt: state.UpdatedAt,
	}, `ON CONFLICT (user_id)
DO UPDATE SET
    state_json = EXCLUDED.state_json,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert user state query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user state: %w", err)
	}
	return nil
}
