package engine

import (
	"context"
	"errors"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

var (
	// ErrRemoteNotFound means the server has no data yet. Reads treat it as empty.
	ErrRemoteNotFound = errors.New("remote resource not found")
	// ErrRemoteUnavailable covers transport failures and server errors.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrRemoteRejected means the server refused the write. Retrying will not help.
	ErrRemoteRejected = errors.New("remote rejected request")
)

// Remote is the league server as seen by the client core.
type Remote interface {
	CurrentSeason(ctx context.Context) (season.Season, error)
	SeasonTeams(ctx context.Context, seasonID string) ([]team.Identity, error)
	Draft(ctx context.Context, seasonID string) ([]draft.Pick, error)
	SaveDraft(ctx context.Context, seasonID string, picks []draft.Pick) error
	WeeklyLineups(ctx context.Context, seasonID string, week int) ([]lineup.Row, error)
	SaveLineup(ctx context.Context, item lineup.NightLineup) error
	Scores(ctx context.Context, seasonID string) (map[int]map[string]float64, error)
	SaveScores(ctx context.Context, seasonID string, week int, scores []score.TeamScore) error
	AdvanceWeek(ctx context.Context, seasonID string) (int, error)
	Players(ctx context.Context) ([]stats.DirectoryEntry, error)
	SyncPlayers(ctx context.Context, names []string) (int, error)
}

// Store keeps the encoded snapshot between runs. Load returns nil when nothing is stored.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, raw []byte) error
}
