package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	GetActive(ctx context.Context) (Season, bool, error)
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	// Create stores s as the only active season.
	Create(ctx context.Context, s Season) error
	// SetWeek fails with ErrLocked when the season is locked.
	SetWeek(ctx context.Context, seasonID string, week int) (Season, error)
}
