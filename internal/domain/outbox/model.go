package outbox

import (
	"fmt"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
)

// Kind identifies the remote write a command performs.
type Kind string

const (
	KindSaveLineup  Kind = "save_lineup"
	KindSaveDraft   Kind = "save_draft"
	KindSaveScores  Kind = "save_scores"
	KindAdvanceWeek Kind = "advance_week"
	KindSyncPlayers Kind = "sync_players"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
)

// Command is a queued remote write recorded after a local state change.
type Command struct {
	ID       string            `json:"id"`
	Kind     Kind              `json:"kind"`
	SeasonID string            `json:"seasonId"`
	Week     int               `json:"week,omitempty"`
	TeamID   string            `json:"teamId,omitempty"`
	Night    stats.Night       `json:"night,omitempty"`
	Players  []string          `json:"playerIds,omitempty"`
	Picks    []draft.Pick      `json:"picks,omitempty"`
	Scores   []score.TeamScore `json:"scores,omitempty"`
	Names    []string          `json:"names,omitempty"`

	Status        Status    `json:"status"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"lastError,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	NextAttemptAt time.Time `json:"nextAttemptAt"`
}

// Key groups commands whose later instance fully replaces the earlier one.
// Commands that do not coalesce return their own id.
func (c Command) Key() string {
	switch c.Kind {
	case KindSaveLineup:
		return fmt.Sprintf("lineup:%s:%d:%s:%s", c.SeasonID, c.Week, c.TeamID, c.Night)
	case KindSaveDraft:
		return "draft:" + c.SeasonID
	default:
		return c.ID
	}
}

// Lane is the ordering domain of the command. Commands in one lane run in order.
func (c Command) Lane() string {
	if c.Kind == KindSaveLineup {
		return c.Key()
	}
	return "season:" + c.SeasonID
}

func (c Command) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("command id is required")
	}
	switch c.Kind {
	case KindSaveLineup:
		if c.SeasonID == "" || c.TeamID == "" || c.Week < 1 || !c.Night.Valid() {
			return fmt.Errorf("lineup command requires season, week, team and night")
		}
	case KindSaveDraft, KindAdvanceWeek:
		if c.SeasonID == "" {
			return fmt.Errorf("%s command requires season", c.Kind)
		}
	case KindSaveScores:
		if c.SeasonID == "" || c.Week < 1 || len(c.Scores) == 0 {
			return fmt.Errorf("scores command requires season, week and scores")
		}
	case KindSyncPlayers:
		if len(c.Names) == 0 {
			return fmt.Errorf("sync players command requires names")
		}
	default:
		return fmt.Errorf("unknown command kind %q", c.Kind)
	}
	return nil
}

func (c Command) Clone() Command {
	out := c
	out.Players = append([]string(nil), c.Players...)
	out.Picks = append([]draft.Pick(nil), c.Picks...)
	out.Scores = append([]score.TeamScore(nil), c.Scores...)
	out.Names = append([]string(nil), c.Names...)
	return out
}

func (c Command) String() string {
	switch c.Kind {
	case KindSaveLineup:
		return fmt.Sprintf("%s team=%s week=%d night=%s", c.Kind, c.TeamID, c.Week, c.Night)
	case KindSaveScores:
		return fmt.Sprintf("%s week=%d", c.Kind, c.Week)
	default:
		return string(c.Kind)
	}
}
