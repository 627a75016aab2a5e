package score

import "context"

// Repository persists weekly team scores.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]TeamScore, error)
	UpsertWeek(ctx context.Context, seasonID string, week int, scores []TeamScore) error
}
