package league

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

var (
	ErrWeekIncomplete = errors.New("both nights must be processed for both teams")
	ErrCorruptState   = errors.New("refusing to persist corrupt state")
	ErrUnknownTeam    = errors.New("unknown team")
)

// NightSources stores the uploaded file name per night.
type NightSources struct {
	Monday string `json:"MON,omitempty"`
	Friday string `json:"FRI,omitempty"`
}

func (s NightSources) Get(night stats.Night) string {
	if night == stats.Friday {
		return s.Friday
	}
	return s.Monday
}

func (s *NightSources) Set(night stats.Night, v string) {
	if night == stats.Friday {
		s.Friday = v
		return
	}
	s.Monday = v
}

// Uploads stores the raw rows of the latest upload per night.
type Uploads struct {
	Monday []stats.PlayerTotals `json:"MON"`
	Friday []stats.PlayerTotals `json:"FRI"`
}

func (u Uploads) Get(night stats.Night) []stats.PlayerTotals {
	if night == stats.Friday {
		return u.Friday
	}
	return u.Monday
}

func (u *Uploads) Set(night stats.Night, rows []stats.PlayerTotals) {
	if night == stats.Friday {
		u.Friday = rows
		return
	}
	u.Monday = rows
}

// State is the whole league as seen by one client.
type State struct {
	SeasonID       string               `json:"seasonId"`
	Week           int                  `json:"week"`
	History        []score.WeekResult   `json:"history"`
	Sources        NightSources         `json:"sources"`
	Uploads        Uploads              `json:"uploads"`
	Pool           []stats.PlayerTotals `json:"pool"`
	Teams          [2]team.Team         `json:"teams"`
	TeamsHydrated  bool                 `json:"teamsHydrated"`
	WeeklyHydrated bool                 `json:"weeklyHydrated"`
}

// Empty returns a fresh week-one state.
func Empty() State {
	st := State{
		Week:    1,
		History: []score.WeekResult{},
		Uploads: Uploads{Monday: []stats.PlayerTotals{}, Friday: []stats.PlayerTotals{}},
		Pool:    []stats.PlayerTotals{},
	}
	for i := range st.Teams {
		st.Teams[i].Normalize()
	}
	return st
}

func (s State) Clone() State {
	out := s
	out.History = make([]score.WeekResult, len(s.History))
	for i, w := range s.History {
		out.History[i] = w
		out.History[i].Locked = [2][]string{
			append([]string(nil), w.Locked[0]...),
			append([]string(nil), w.Locked[1]...),
		}
	}
	out.Uploads = Uploads{
		Monday: stats.CloneRows(s.Uploads.Monday),
		Friday: stats.CloneRows(s.Uploads.Friday),
	}
	out.Pool = stats.CloneRows(s.Pool)
	for i := range s.Teams {
		out.Teams[i] = s.Teams[i].Clone()
	}
	return out
}

// TeamIndex finds a team by id.
func (s State) TeamIndex(teamID string) (int, error) {
	for i, t := range s.Teams {
		if t.ID != "" && t.ID == teamID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownTeam, teamID)
}

// TeamIDs returns both team ids in state order.
func (s State) TeamIDs() [2]string {
	return [2]string{s.Teams[0].ID, s.Teams[1].ID}
}

// OwnerOf returns the index of the team holding key, or -1.
func (s State) OwnerOf(key string) int {
	for i, t := range s.Teams {
		if t.OnRoster(key) {
			return i
		}
	}
	return -1
}

// IsWeekComplete reports whether both nights are processed for both teams.
func (s State) IsWeekComplete() bool {
	return s.Teams[0].Processed.All() && s.Teams[1].Processed.All()
}

// WeeklyScores scores both teams for the current week.
func (s State) WeeklyScores() [2]float64 {
	return [2]float64{
		score.WeeklyScore(s.Teams[0], s.Pool),
		score.WeeklyScore(s.Teams[1], s.Pool),
	}
}

// FinalizeWeek appends the current week to history. It does not roll the week.
func FinalizeWeek(s State, now time.Time) (State, score.WeekResult, error) {
	if !s.IsWeekComplete() {
		return s, score.WeekResult{}, ErrWeekIncomplete
	}

	out := s.Clone()
	result := score.WeekResult{
		Week:   out.Week,
		Scores: out.WeeklyScores(),
		Locked: [2][]string{
			append([]string{}, out.Teams[0].Locked...),
			append([]string{}, out.Teams[1].Locked...),
		},
		ProcessedAt: now.UTC(),
	}
	out.History = append(out.History, result)
	return out, result, nil
}

// StartWeek rolls state to week. Locks, processed flags and uploads reset;
// rosters, nightly actives and the add/drop counters carry over.
func StartWeek(s State, week int) State {
	out := s.Clone()
	out.Week = week
	out.Sources = NightSources{}
	out.Uploads = Uploads{Monday: []stats.PlayerTotals{}, Friday: []stats.PlayerTotals{}}
	out.WeeklyHydrated = false
	for i := range out.Teams {
		out.Teams[i].ResetWeek()
	}
	return out
}

// CheckPersistable rejects states that must never reach storage.
func CheckPersistable(s State) error {
	for _, t := range s.Teams {
		if len(t.Active) == 0 && len(t.Bench) >= team.RosterSize {
			return fmt.Errorf("%w: team %s has no actives and %d bench players", ErrCorruptState, t.ID, len(t.Bench))
		}
		if len(t.Bench) > team.RosterSize {
			return fmt.Errorf("%w: team %s bench overflow", ErrCorruptState, t.ID)
		}
	}
	return nil
}
