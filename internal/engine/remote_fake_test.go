package engine

import (
	"context"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

// fakeRemote is an in-memory league server. Err fields, when set, are
// returned by the matching call instead of data.
type fakeRemote struct {
	mu sync.Mutex

	season    season.Season
	teams     []team.Identity
	picks     []draft.Pick
	lineups   []lineup.Row
	scores    map[int]map[string]float64
	directory []stats.DirectoryEntry

	seasonErr  error
	teamsErr   error
	draftErr   error
	lineupsErr error
	scoresErr  error
	playersErr error

	writeErrs map[string][]error

	calls       map[string]int
	savedLines  []lineup.NightLineup
	savedDraft  []draft.Pick
	savedScores []score.TeamScore
	synced      []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		season: season.Season{ID: "s1", Name: "Spring", CurrentWeek: 1, IsActive: true},
		teams: []team.Identity{
			{TeamID: "t1", Name: "Nora", OwnerUserID: "u1", CaptainKey: "a"},
			{TeamID: "t2", Name: "Sam", OwnerUserID: "u2", CaptainKey: "g"},
		},
		scoresErr: ErrRemoteNotFound,
		writeErrs: map[string][]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeRemote) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// failNext queues errors for successive calls of a write method.
func (f *fakeRemote) failNext(name string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErrs[name] = append(f.writeErrs[name], errs...)
}

func (f *fakeRemote) record(name string) error {
	f.calls[name]++
	queued := f.writeErrs[name]
	if len(queued) == 0 {
		return nil
	}
	f.writeErrs[name] = queued[1:]
	return queued[0]
}

func (f *fakeRemote) CurrentSeason(context.Context) (season.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CurrentSeason"]++
	return f.season, f.seasonErr
}

func (f *fakeRemote) SeasonTeams(context.Context, string) ([]team.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["SeasonTeams"]++
	if f.teamsErr != nil {
		return nil, f.teamsErr
	}
	return append([]team.Identity(nil), f.teams...), nil
}

func (f *fakeRemote) Draft(context.Context, string) ([]draft.Pick, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Draft"]++
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return append([]draft.Pick(nil), f.picks...), nil
}

func (f *fakeRemote) SaveDraft(_ context.Context, _ string, picks []draft.Pick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SaveDraft"); err != nil {
		return err
	}
	f.savedDraft = append([]draft.Pick(nil), picks...)
	return nil
}

func (f *fakeRemote) WeeklyLineups(context.Context, string, int) ([]lineup.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["WeeklyLineups"]++
	if f.lineupsErr != nil {
		return nil, f.lineupsErr
	}
	return append([]lineup.Row(nil), f.lineups...), nil
}

func (f *fakeRemote) SaveLineup(_ context.Context, item lineup.NightLineup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SaveLineup"); err != nil {
		return err
	}
	f.savedLines = append(f.savedLines, item)
	return nil
}

func (f *fakeRemote) Scores(context.Context, string) (map[int]map[string]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Scores"]++
	if f.scoresErr != nil {
		return nil, f.scoresErr
	}
	return f.scores, nil
}

func (f *fakeRemote) SaveScores(_ context.Context, _ string, _ int, scores []score.TeamScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SaveScores"); err != nil {
		return err
	}
	f.savedScores = append(f.savedScores, scores...)
	return nil
}

func (f *fakeRemote) AdvanceWeek(context.Context, string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AdvanceWeek"); err != nil {
		return 0, err
	}
	f.season.CurrentWeek++
	return f.season.CurrentWeek, nil
}

func (f *fakeRemote) Players(context.Context) ([]stats.DirectoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Players"]++
	if f.playersErr != nil {
		return nil, f.playersErr
	}
	return append([]stats.DirectoryEntry(nil), f.directory...), nil
}

func (f *fakeRemote) SyncPlayers(_ context.Context, names []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SyncPlayers"); err != nil {
		return 0, err
	}
	f.synced = append(f.synced, names...)
	return len(names), nil
}
