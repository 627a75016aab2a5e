package httpapi

import (
	"strconv"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

type loginRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Pin  string `json:"pin" validate:"required,max=64"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      user.Principal `json:"user"`
}

type seasonDTO struct {
	SeasonID    string `json:"seasonId"`
	Name        string `json:"name"`
	CurrentWeek int    `json:"currentWeek"`
	IsLocked    bool   `json:"isLocked"`
}

type startSeasonRequest struct {
	Name  string           `json:"name" validate:"required,max=100"`
	Teams []teamRequestDTO `json:"teams" validate:"omitempty,len=2,dive"`
}

type teamRequestDTO struct {
	TeamID      string `json:"teamId" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	OwnerUserID string `json:"ownerUserId"`
	CaptainKey  string `json:"captainKey"`
}

type startSeasonResponse struct {
	Season seasonDTO       `json:"season"`
	Teams  []team.Identity `json:"teams"`
}

type setWeekRequest struct {
	Week int `json:"week" validate:"required,gte=1"`
}

type draftRequest struct {
	Picks []draft.Pick `json:"picks" validate:"dive"`
}

type draftResponse struct {
	SeasonID string       `json:"seasonId"`
	Picks    []draft.Pick `json:"picks"`
}

type saveLineupRequest struct {
	TeamID    string   `json:"teamId" validate:"required"`
	Night     string   `json:"night" validate:"required,oneof=MON FRI"`
	PlayerIDs []string `json:"playerIds" validate:"max=4,dive,required"`
}

type saveLineupResponse struct {
	SeasonID  string   `json:"seasonId"`
	Week      int      `json:"week"`
	TeamID    string   `json:"teamId"`
	Night     string   `json:"night"`
	PlayerIDs []string `json:"playerIds"`
}

type saveScoresRequest struct {
	Scores map[string]float64 `json:"scores" validate:"required,min=1"`
}

type playerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type syncPlayersRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=500"`
}

type syncPlayersResponse struct {
	Inserted int `json:"inserted"`
}

type stateResponse struct {
	UserID    string    `json:"userId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func seasonToDTO(s season.Season) seasonDTO {
	return seasonDTO{
		SeasonID:    s.ID,
		Name:        s.Name,
		CurrentWeek: s.CurrentWeek,
		IsLocked:    s.IsLocked,
	}
}

func lineupToDTO(item lineup.NightLineup) saveLineupResponse {
	ids := item.PlayerIDs
	if ids == nil {
		ids = []string{}
	}
	return saveLineupResponse{
		SeasonID:  item.SeasonID,
		Week:      item.Week,
		TeamID:    item.TeamID,
		Night:     string(item.Night),
		PlayerIDs: ids,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerDTO{ID: p.ID, Name: p.Name})
	}
	return out
}

func scoresToDTO(byWeek map[int]map[string]float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(byWeek))
	for week, scores := range byWeek {
		out[strconv.Itoa(week)] = scores
	}
	return out
}
