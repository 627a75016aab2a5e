package draft

import "context"

// Repository stores the season draft. Replace swaps the whole draft atomically.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Pick, error)
	Replace(ctx context.Context, seasonID string, picks []Pick) error
}
