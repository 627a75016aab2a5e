package userstate

import (
	"context"
	"time"
)

// State is one user's saved client snapshot.
type State struct {
	UserID    string
	StateJSON []byte
	UpdatedAt time.Time
}

// Repository stores one snapshot per user.
type Repository interface {
	Get(ctx context.Context, userID string) (State, bool, error)
	Upsert(ctx context.Context, state State) error
}
