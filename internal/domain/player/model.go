package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is one entry of the league-wide player directory.
type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}
