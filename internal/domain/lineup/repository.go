package lineup

import "context"

// Repository stores nightly lineups. ReplaceNight deletes and inserts in one transaction.
type Repository interface {
	ListByWeek(ctx context.Context, seasonID string, week int) ([]Row, error)
	ReplaceNight(ctx context.Context, lineup NightLineup) error
}
