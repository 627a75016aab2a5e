package leagueapi

import (
	"encoding/json"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

type envelope struct {
	APIVersion string          `json:"apiVersion"`
	Data       json.RawMessage `json:"data"`
	Error      *errorBody      `json:"error"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type loginRequest struct {
	Name string `json:"name"`
	Pin  string `json:"pin"`
}

// Session is the result of a successful login.
type Session struct {
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

type draftBody struct {
	SeasonID string       `json:"seasonId,omitempty"`
	Picks    []draft.Pick `json:"picks"`
}

type saveLineupRequest struct {
	TeamID    string   `json:"teamId"`
	Night     string   `json:"night"`
	PlayerIDs []string `json:"playerIds"`
}

type saveScoresRequest struct {
	Scores map[string]float64 `json:"scores"`
}

type playerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type syncPlayersRequest struct {
	Names []string `json:"names"`
}

type syncPlayersResponse struct {
	Inserted int `json:"inserted"`
}
