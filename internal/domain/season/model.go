package season

import (
	"errors"
	"fmt"
	"time"
)

var ErrLocked = errors.New("season is locked")

// Season is one run of the league. Exactly one season is active at a time.
type Season struct {
	ID          string
	Name        string
	CurrentWeek int
	IsLocked    bool
	IsActive    bool
	CreatedAt   time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.CurrentWeek < 1 {
		return fmt.Errorf("season week must be >= 1")
	}
	return nil
}
