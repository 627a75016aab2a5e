package postgres

import (
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
)

type seasonTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	CurrentWeek int       `db:"current_week"`
	IsLocked    bool      `db:"is_locked"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

type teamTableModel struct {
	SeasonID    string `db:"season_id"`
	ID          string `db:"id"`
	Position    int    `db:"position"`
	Name        string `db:"name"`
	OwnerUserID string `db:"owner_user_id"`
	CaptainKey  string `db:"captain_key"`
}

type draftTableModel struct {
	SeasonID string `db:"season_id"`
	Position int    `db:"position"`
	TeamID   string `db:"team_id"`
	PlayerID string `db:"player_id"`
}

type lineupTableModel struct {
	SeasonID string `db:"season_id"`
	Week     int    `db:"week"`
	TeamID   string `db:"team_id"`
	Night    string `db:"night"`
	Position int    `db:"position"`
	PlayerID string `db:"player_id"`
	Slot     string `db:"slot"`
}

type scoreTableModel struct {
	SeasonID string  `db:"season_id"`
	Week     int     `db:"week"`
	TeamID   string  `db:"team_id"`
	Score    float64 `db:"score"`
}

type playerTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type userTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	PinHash   string    `db:"pin_hash"`
	Role      string    `db:"role"`
	TeamID    string    `db:"team_id"`
	CreatedAt time.Time `db:"created_at"`
}

type userStateTableModel struct {
	UserID    string    `db:"user_id"`
	StateJSON string    `db:"state_json"`
	UpdatedAt time.Time `db:"updated_at"`
}

func draftInsertModels(seasonID string, picks []draft.Pick) []draftTableModel {
	out := make([]draftTableModel, 0, len(picks))
	for i, pick := range picks {
		out = append(out, draftTableModel{
			SeasonID: seasonID,
			Position: i,
			TeamID:   pick.TeamID,
			PlayerID: pick.PlayerID,
		})
	}
	return out
}

func lineupInsertModels(item lineup.NightLineup) []lineupTableModel {
	out := make([]lineupTableModel, 0, len(item.PlayerIDs))
	for i, playerID := range item.PlayerIDs {
		out = append(out, lineupTableModel{
			SeasonID: item.SeasonID,
			Week:     item.Week,
			TeamID:   item.TeamID,
			Night:    string(item.Night),
			Position: i,
			PlayerID: playerID,
			Slot:     lineup.SlotActive,
		})
	}
	return out
}

func (m lineupTableModel) toDomain() lineup.Row {
	return lineup.Row{
		SeasonID: m.SeasonID,
		Week:     m.Week,
		TeamID:   m.TeamID,
		PlayerID: m.PlayerID,
		Night:    stats.Night(m.Night),
		Slot:     m.Slot,
	}
}

func (m scoreTableModel) toDomain() score.TeamScore {
	return score.TeamScore{
		SeasonID: m.SeasonID,
		Week:     m.Week,
		TeamID:   m.TeamID,
		Score:    m.Score,
	}
}
