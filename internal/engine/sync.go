package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/outbox"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

type Stage string

const (
	StageSeason Stage = "season"
	StageTeams  Stage = "teams"
	StageDraft  Stage = "draft"
	StageLineup Stage = "lineup"
	StageScores Stage = "scores"
)

var errStale = errors.New("local state changed during sync")

// token identifies the league state a stage result belongs to.
type token struct {
	seasonID   string
	week       int
	generation uint64
}

// SyncReport describes one pipeline run.
type SyncReport struct {
	SeasonID     string
	Week         int
	SeasonLocked bool
	NoSeason     bool
	Stale        bool
	Completed    []Stage
	WaitingOn    string
	Lineups      lineup.HydrateReport
	Violations   []team.Violation
}

// Syncer pulls the authoritative league data into the engine, one gated stage at a time:
// season, teams, draft, weekly lineups, score history.
type Syncer struct {
	mu     sync.Mutex
	engine *Engine
	remote Remote
	logger *logging.Logger
	done   map[Stage]token
}

func NewSyncer(engine *Engine, remote Remote, logger *logging.Logger) *Syncer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Syncer{
		engine: engine,
		remote: remote,
		logger: logger,
		done:   make(map[Stage]token),
	}
}

// Reset forgets completed stages so the next run fetches everything again.
func (s *Syncer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = make(map[Stage]token)
}

func (s *Syncer) Run(ctx context.Context) (SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := SyncReport{}
	current, directory, err := s.fetchSeason(ctx)
	if errors.Is(err, ErrRemoteNotFound) {
		report.NoSeason = true
		s.logger.InfoContext(ctx, "sync halted: no active season")
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("fetch current season: %w", err)
	}

	tok := s.engine.adoptSeason(ctx, current, directory)
	report.SeasonID = tok.seasonID
	report.Week = tok.week
	report.SeasonLocked = current.IsLocked
	report.Completed = append(report.Completed, StageSeason)

	err = s.runStages(ctx, tok, &report)
	if errors.Is(err, errStale) {
		report.Stale = true
		s.logger.InfoContext(ctx, "sync result discarded, local state moved on")
		return report, nil
	}
	if err != nil {
		return report, err
	}

	if report.WaitingOn != "" {
		s.logger.DebugContext(ctx, "sync waiting", "reason", report.WaitingOn)
	}
	return report, nil
}

func (s *Syncer) runStages(ctx context.Context, tok token, report *SyncReport) error {
	if err := s.syncTeams(ctx, tok); err != nil {
		return err
	}
	if !s.engine.State().TeamsHydrated {
		report.WaitingOn = "season teams"
		return nil
	}
	report.Completed = append(report.Completed, StageTeams)

	complete, err := s.syncDraft(ctx, tok)
	if err != nil {
		return err
	}
	if !complete {
		report.WaitingOn = "draft"
		return nil
	}
	report.Completed = append(report.Completed, StageDraft)

	report.Violations = team.CheckInvariants(s.engine.State().Teams)
	for _, v := range report.Violations {
		s.logger.WarnContext(ctx, "roster invariant violated", "team_id", v.TeamID, "kind", v.Kind, "detail", v.Detail)
	}

	if len(s.engine.State().Pool) == 0 {
		report.WaitingOn = "player pool"
		return nil
	}
	hydrated, err := s.syncLineups(ctx, tok)
	if err != nil {
		return err
	}
	report.Lineups = hydrated
	report.Completed = append(report.Completed, StageLineup)

	fetched, err := s.syncScores(ctx, tok)
	if err != nil {
		return err
	}
	if fetched {
		report.Completed = append(report.Completed, StageScores)
	}
	return nil
}

// fetchSeason loads the current season and the player directory side by side.
// A directory failure only costs the pool seed.
func (s *Syncer) fetchSeason(ctx context.Context) (season.Season, []stats.DirectoryEntry, error) {
	var (
		current    season.Season
		seasonErr  error
		directory  []stats.DirectoryEntry
		playersErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		current, seasonErr = s.remote.CurrentSeason(ctx)
	})
	wg.Go(func() {
		directory, playersErr = s.remote.Players(ctx)
	})
	wg.Wait()

	if playersErr != nil && !errors.Is(playersErr, ErrRemoteNotFound) {
		s.logger.WarnContext(ctx, "player directory unavailable", "error", playersErr)
	}
	return current, directory, seasonErr
}

func (s *Syncer) syncTeams(ctx context.Context, tok token) error {
	if s.done[StageTeams] == tok {
		return nil
	}

	identities, err := s.remote.SeasonTeams(ctx, tok.seasonID)
	if err != nil && !errors.Is(err, ErrRemoteNotFound) {
		return fmt.Errorf("fetch season teams: %w", err)
	}

	hydrated := false
	applied := s.engine.commitIf(tok, func(st league.State, _ *outbox.Queue) league.State {
		st.Teams = assignIdentities(st.Teams, identities)
		st.TeamsHydrated = st.Teams[0].ID != "" && st.Teams[1].ID != ""
		hydrated = st.TeamsHydrated
		return st
	})
	if !applied {
		return errStale
	}
	if hydrated {
		s.done[StageTeams] = tok
	}
	return nil
}

// syncDraft applies the stored draft and reports whether both rosters are full.
// A pending local draft save wins over the stored one.
func (s *Syncer) syncDraft(ctx context.Context, tok token) (bool, error) {
	if s.done[StageDraft] == tok {
		return true, nil
	}

	draftKey := outbox.Command{Kind: outbox.KindSaveDraft, SeasonID: tok.seasonID}.Key()
	if s.engine.hasPending(draftKey) {
		s.logger.DebugContext(ctx, "draft fetch skipped, local draft save pending")
		return draft.Complete(s.engine.State().Teams), nil
	}

	picks, err := s.remote.Draft(ctx, tok.seasonID)
	if err != nil && !errors.Is(err, ErrRemoteNotFound) {
		return false, fmt.Errorf("fetch draft: %w", err)
	}

	var result draft.Result
	applied := s.engine.commitIf(tok, func(st league.State, _ *outbox.Queue) league.State {
		identities := []team.Identity{st.Teams[0].Identity(), st.Teams[1].Identity()}
		result = draft.Apply(st.Teams, picks, identities, st.Pool)
		st.Teams = result.Teams
		return st
	})
	if !applied {
		return false, errStale
	}

	complete := draft.Complete(result.Teams)
	if complete {
		s.done[StageDraft] = tok
	}
	s.logger.DebugContext(ctx, "draft applied", "picks", len(picks), "applied", result.Applied, "complete", complete)
	return complete, nil
}

func (s *Syncer) syncLineups(ctx context.Context, tok token) (lineup.HydrateReport, error) {
	if s.done[StageLineup] == tok {
		return lineup.HydrateReport{}, nil
	}

	rows, err := s.remote.WeeklyLineups(ctx, tok.seasonID, tok.week)
	if err != nil && !errors.Is(err, ErrRemoteNotFound) {
		return lineup.HydrateReport{}, fmt.Errorf("fetch weekly lineups: %w", err)
	}

	var report lineup.HydrateReport
	applied := s.engine.commitIf(tok, func(st league.State, queue *outbox.Queue) league.State {
		pending := func(teamID string, night stats.Night) bool {
			return queue.HasPending(outbox.LineupKey(st.SeasonID, st.Week, teamID, night))
		}
		var next league.State
		next, report = lineup.ApplyRemote(st, rows, pending)
		next.WeeklyHydrated = true
		return next
	})
	if !applied {
		return lineup.HydrateReport{}, errStale
	}

	s.done[StageLineup] = tok
	if len(report.Skipped) > 0 {
		s.logger.InfoContext(ctx, "kept local lineups with pending saves", "slots", len(report.Skipped))
	}
	return report, nil
}

// syncScores rebuilds history from the server. Weeks whose scores are still
// queued locally are kept as they are.
func (s *Syncer) syncScores(ctx context.Context, tok token) (bool, error) {
	if s.done[StageScores] == tok {
		return true, nil
	}

	byWeek, err := s.remote.Scores(ctx, tok.seasonID)
	switch {
	case errors.Is(err, ErrRemoteNotFound):
		byWeek = map[int]map[string]float64{}
	case err != nil:
		s.logger.WarnContext(ctx, "score history unavailable, keeping local history", "error", err)
		return false, nil
	}

	applied := s.engine.commitIf(tok, func(st league.State, queue *outbox.Queue) league.State {
		merged := make(map[int]map[string]float64, len(byWeek))
		for week, scores := range byWeek {
			merged[week] = scores
		}
		for _, cmd := range queue.Commands() {
			if cmd.Kind != outbox.KindSaveScores || cmd.SeasonID != st.SeasonID {
				continue
			}
			scores := make(map[string]float64, len(cmd.Scores))
			for _, row := range cmd.Scores {
				scores[row.TeamID] = row.Score
			}
			merged[cmd.Week] = scores
		}
		st.History = score.HistoryFromWeeks(merged, st.TeamIDs(), st.History)
		return st
	})
	if !applied {
		return false, errStale
	}
	s.done[StageScores] = tok
	return true, nil
}

// adoptSeason binds the local state to the server's current season. A new
// season starts from an empty state; a server week ahead of the local one rolls
// the local week forward.
func (e *Engine) adoptSeason(ctx context.Context, current season.Season, directory []stats.DirectoryEntry) token {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	if st.SeasonID != current.ID {
		if st.SeasonID != "" {
			e.logger.InfoContext(ctx, "season changed, starting fresh", "from", st.SeasonID, "to", current.ID)
			st = league.Empty()
		}
		st.SeasonID = current.ID
		e.generation++
	}
	if current.CurrentWeek > st.Week {
		e.logger.InfoContext(ctx, "rolling local week forward", "from", st.Week, "to", current.CurrentWeek)
		st = league.StartWeek(st, current.CurrentWeek)
	}
	if len(directory) > 0 {
		st.Pool = stats.SeedPool(st.Pool, directory)
	}
	e.state = st
	return e.tokenLocked()
}

// commitIf applies fn to the state only while it still matches tok.
func (e *Engine) commitIf(tok token, fn func(league.State, *outbox.Queue) league.State) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tokenLocked() != tok {
		return false
	}
	e.state = fn(e.state.Clone(), e.queue)
	return true
}

func (e *Engine) hasPending(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.HasPending(key)
}

func (e *Engine) tokenLocked() token {
	return token{seasonID: e.state.SeasonID, week: e.state.Week, generation: e.generation}
}

// assignIdentities matches server teams to local slots by id, filling empty
// slots in server order.
func assignIdentities(teams [2]team.Team, identities []team.Identity) [2]team.Team {
	out := [2]team.Team{teams[0].Clone(), teams[1].Clone()}
	used := make(map[string]bool, len(identities))

	byID := make(map[string]team.Identity, len(identities))
	for _, identity := range identities {
		byID[identity.TeamID] = identity
	}
	for i := range out {
		if identity, ok := byID[out[i].ID]; ok && out[i].ID != "" {
			applyIdentity(&out[i], identity)
			used[identity.TeamID] = true
		}
	}

	for _, identity := range identities {
		if identity.TeamID == "" || used[identity.TeamID] {
			continue
		}
		for i := range out {
			if out[i].ID == "" {
				applyIdentity(&out[i], identity)
				used[identity.TeamID] = true
				break
			}
		}
	}
	return out
}

func applyIdentity(t *team.Team, identity team.Identity) {
	t.ID = identity.TeamID
	if identity.Name != "" {
		t.Owner = identity.Name
	}
	if identity.OwnerUserID != "" {
		t.OwnerUserID = identity.OwnerUserID
	}
	if identity.CaptainKey != "" {
		t.CaptainKey = identity.CaptainKey
	}
}
