package user

import "context"

// Repository describes user lookups needed by authentication.
type Repository interface {
	GetByName(ctx context.Context, name string) (User, bool, error)
	GetByID(ctx context.Context, userID string) (User, bool, error)
	Create(ctx context.Context, u User) error
}
