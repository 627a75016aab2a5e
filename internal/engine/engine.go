package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/outbox"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/platform/id"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

type Options struct {
	Principal user.Principal
	Store     Store
	IDs       id.Generator
	Logger    *logging.Logger
	Now       func() time.Time
}

// Engine owns the client's league state and its outbox. Every action replaces
// the state as a whole and records the remote writes it implies.
type Engine struct {
	mu         sync.Mutex
	state      league.State
	queue      *outbox.Queue
	generation uint64

	principal user.Principal
	store     Store
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func New(opts Options) *Engine {
	if opts.IDs == nil {
		opts.IDs = id.NewUUIDGenerator()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		state:     league.Empty(),
		queue:     outbox.NewQueue(nil),
		principal: opts.Principal,
		store:     opts.Store,
		ids:       opts.IDs,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// Load replaces the in-memory state with the stored snapshot. A missing
// snapshot leaves an empty week-one state.
func (e *Engine) Load(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	raw, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	state := league.Empty()
	var pending []outbox.Command
	if len(raw) > 0 {
		snap, err := league.Decode(raw)
		if err != nil {
			return err
		}
		state = snap.State
		pending = snap.Pending
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
	e.queue = outbox.NewQueue(pending)
	e.generation++
	return nil
}

// Save persists the state together with undelivered commands.
func (e *Engine) Save(ctx context.Context) error {
	if e.store == nil {
		return nil
	}

	e.mu.Lock()
	if err := league.CheckPersistable(e.state); err != nil {
		e.mu.Unlock()
		e.logger.ErrorContext(ctx, "refusing to save league state", "error", err)
		return err
	}
	raw, err := league.Encode(league.Snapshot{
		SavedAt: e.now().UTC(),
		State:   e.state.Clone(),
		Pending: e.queue.Commands(),
	})
	e.mu.Unlock()
	if err != nil {
		return err
	}

	if err := e.store.Save(ctx, raw); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (e *Engine) State() league.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Pending returns the queued commands, failed ones included.
func (e *Engine) Pending() []outbox.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Commands()
}

func (e *Engine) Principal() user.Principal {
	return e.principal
}

// BoundTeamID returns the id of the team the principal runs, or "".
func (e *Engine) BoundTeamID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := BoundTeam(e.principal, e.state.Teams)
	if idx < 0 {
		return ""
	}
	return e.state.Teams[idx].ID
}

// Upload applies a GameChanger export for night.
func (e *Engine) Upload(ctx context.Context, night stats.Night, r io.Reader, source string) (lineup.UploadReport, error) {
	if err := requireCommissioner(e.principal); err != nil {
		return lineup.UploadReport{}, err
	}
	rows, err := stats.ReadGameChanger(r, night)
	if err != nil {
		return lineup.UploadReport{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, report, err := lineup.ApplyUpload(e.state, night, rows, source)
	if err != nil {
		return report, err
	}
	e.state = next

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.DisplayName)
	}
	if len(names) > 0 {
		e.enqueue(ctx, outbox.Command{Kind: outbox.KindSyncPlayers, SeasonID: next.SeasonID, Names: names})
	}
	for i, first := range report.FirstUpload {
		if !first {
			continue
		}
		for _, n := range stats.Nights {
			e.enqueue(ctx, e.lineupCommand(i, n))
		}
	}

	e.logger.InfoContext(ctx, "stats uploaded",
		"night", night,
		"rows", report.Rows,
		"source", source,
		"newly_locked", report.NewlyLocked,
	)
	return report, nil
}

// ProcessWithoutUpload closes night for every team that has not played it.
func (e *Engine) ProcessWithoutUpload(ctx context.Context, night stats.Night) (int, error) {
	if err := requireCommissioner(e.principal); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, changed, err := lineup.ProcessWithoutUpload(e.state, night)
	if err != nil {
		return 0, err
	}
	e.state = next
	e.logger.InfoContext(ctx, "night processed without upload", "night", night, "teams", changed)
	return changed, nil
}

// Swap moves inKey into the team's lineup for night in place of outKey.
func (e *Engine) Swap(ctx context.Context, teamID string, night stats.Night, outKey, inKey string) ([]stats.Night, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, err := teamIndex(e.state, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(e.principal, e.state, idx); err != nil {
		return nil, err
	}

	next, changed, err := lineup.Swap(e.state, idx, night, outKey, inKey)
	if err != nil {
		return nil, err
	}
	e.state = next
	for _, n := range changed {
		e.enqueue(ctx, e.lineupCommand(idx, n))
	}
	return changed, nil
}

// AddDrop replaces dropKey with addKey on the team's roster.
func (e *Engine) AddDrop(ctx context.Context, teamID, dropKey, addKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, err := teamIndex(e.state, teamID)
	if err != nil {
		return err
	}
	if err := requireOwner(e.principal, e.state, idx); err != nil {
		return err
	}

	prev := e.state.Teams[idx]
	next, err := lineup.AddDrop(e.state, idx, dropKey, addKey)
	if err != nil {
		return err
	}
	e.state = next

	e.enqueue(ctx, e.draftCommand())
	for _, n := range changedNights(prev, next.Teams[idx]) {
		e.enqueue(ctx, e.lineupCommand(idx, n))
	}
	e.logger.InfoContext(ctx, "add/drop applied",
		"team_id", teamID,
		"dropped", dropKey,
		"added", addKey,
		"used", next.Teams[idx].SeasonAddDropsUsed,
	)
	return nil
}

// AddActive drafts key onto the team's active list.
func (e *Engine) AddActive(teamID, key string) error {
	return e.draftEdit(teamID, key, lineup.AddActive)
}

// SetBench drafts key onto the team's bench.
func (e *Engine) SetBench(teamID, key string) error {
	return e.draftEdit(teamID, key, lineup.SetBench)
}

func (e *Engine) RemoveDrafted(teamID, key string) error {
	return e.draftEdit(teamID, key, lineup.RemoveDrafted)
}

func (e *Engine) draftEdit(teamID, key string, edit func(league.State, int, string) (league.State, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, err := teamIndex(e.state, teamID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrCommissioner(e.principal, e.state, idx); err != nil {
		return err
	}

	next, err := edit(e.state, idx, key)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// SaveDraft queues the current rosters as the season's draft and returns the pick count.
func (e *Engine) SaveDraft(ctx context.Context) (int, error) {
	if err := requireCommissioner(e.principal); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := e.draftCommand()
	e.enqueue(ctx, cmd)
	return len(cmd.Picks), nil
}

// FinalizeWeek records the finished week, queues its scores and the week
// advance, and rolls the local state to the next week.
func (e *Engine) FinalizeWeek(ctx context.Context) (score.WeekResult, error) {
	if err := requireCommissioner(e.principal); err != nil {
		return score.WeekResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, result, err := league.FinalizeWeek(e.state, e.now())
	if err != nil {
		return score.WeekResult{}, err
	}

	teamScores := score.TeamScores(result, next.TeamIDs())
	for i := range teamScores {
		teamScores[i].SeasonID = next.SeasonID
	}
	e.enqueue(ctx, outbox.Command{Kind: outbox.KindSaveScores, SeasonID: next.SeasonID, Week: result.Week, Scores: teamScores})
	e.enqueue(ctx, outbox.Command{Kind: outbox.KindAdvanceWeek, SeasonID: next.SeasonID, Week: result.Week})

	e.state = league.StartWeek(next, result.Week+1)
	e.logger.InfoContext(ctx, "week finalized",
		"week", result.Week,
		"scores", result.Scores,
	)
	return result, nil
}

// ResetSeason drops all local league state. Queued commands are kept.
func (e *Engine) ResetSeason(ctx context.Context) error {
	if err := requireCommissioner(e.principal); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = league.Empty()
	e.generation++
	e.logger.WarnContext(ctx, "local season state reset")
	return nil
}

// RetryFailed puts failed commands back in line.
func (e *Engine) RetryFailed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Retry()
}

// DiscardFailed drops failed commands and returns them.
func (e *Engine) DiscardFailed() []outbox.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Discard()
}

func (e *Engine) dueLanes(now time.Time) [][]outbox.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Lanes(now)
}

func (e *Engine) completeCommand(cmdID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue.Complete(cmdID)
}

func (e *Engine) failCommand(cmdID string, err error, next time.Time, terminal bool) (outbox.Command, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Fail(cmdID, err, next, terminal)
}

// enqueue stamps and queues cmd. Callers hold e.mu. Commands that cannot be
// addressed yet, such as lineups before the season is known, stay local.
func (e *Engine) enqueue(ctx context.Context, cmd outbox.Command) {
	cmdID, err := e.ids.NewID()
	if err != nil {
		e.logger.ErrorContext(ctx, "generate command id", "kind", cmd.Kind, "error", err)
		return
	}
	cmd.ID = cmdID
	cmd.Status = outbox.StatusPending
	cmd.CreatedAt = e.now().UTC()
	if err := cmd.Validate(); err != nil {
		e.logger.DebugContext(ctx, "remote write kept local", "kind", cmd.Kind, "reason", err)
		return
	}
	e.queue.Enqueue(cmd)
}

func (e *Engine) lineupCommand(idx int, night stats.Night) outbox.Command {
	t := e.state.Teams[idx]
	return outbox.Command{
		Kind:     outbox.KindSaveLineup,
		SeasonID: e.state.SeasonID,
		Week:     e.state.Week,
		TeamID:   t.ID,
		Night:    night,
		Players:  lineup.PlayerIDs(t.ActiveByNight.Get(night), e.state.Pool),
	}
}

func (e *Engine) draftCommand() outbox.Command {
	return outbox.Command{
		Kind:     outbox.KindSaveDraft,
		SeasonID: e.state.SeasonID,
		Picks:    draft.PicksFromTeams(e.state.Teams, e.state.Pool),
	}
}

func teamIndex(s league.State, teamID string) (int, error) {
	idx, err := s.TeamIndex(teamID)
	if err != nil {
		return -1, fmt.Errorf("%w: %s", lineup.ErrUnknownTeam, teamID)
	}
	return idx, nil
}

func changedNights(prev, next team.Team) []stats.Night {
	var out []stats.Night
	for _, n := range stats.Nights {
		if !sameKeys(prev.ActiveByNight.Get(n), next.ActiveByNight.Get(n)) {
			out = append(out, n)
		}
	}
	return out
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
