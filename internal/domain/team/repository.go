package team

import "context"

// Repository persists the two team identities of each season.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Identity, error)
	GetByID(ctx context.Context, seasonID, teamID string) (Identity, bool, error)
	CreateMany(ctx context.Context, teams []Identity) error
}
