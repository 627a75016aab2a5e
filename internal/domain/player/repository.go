package player

import "context"

// Repository describes player directory persistence.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	// InsertMissing stores players whose name has no case-insensitive match and
	// returns the number inserted.
	InsertMissing(ctx context.Context, players []Player) (int, error)
}
