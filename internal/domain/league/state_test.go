package league

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

func weekState() State {
	s := Empty()
	s.SeasonID = "s1"
	s.Week = 3
	s.Pool = []stats.PlayerTotals{
		stats.NewPlayerTotals("a", stats.Monday, stats.Counts{PA: 1, AB: 1, HR: 1}),
		stats.NewPlayerTotals("g", stats.Monday, stats.Counts{PA: 1, AB: 1, Singles: 1}),
	}
	s.Teams[0] = team.New(team.Identity{TeamID: "t1"})
	s.Teams[0].ActiveByNight.Monday = []string{"a"}
	s.Teams[0].LockedByNight.Monday = []string{"a"}
	s.Teams[0].RecomputeLocked()
	s.Teams[0].SeasonAddDropsUsed = 1
	s.Teams[1] = team.New(team.Identity{TeamID: "t2"})
	s.Teams[1].ActiveByNight.Monday = []string{"g"}
	for i := range s.Teams {
		s.Teams[i].Processed = team.NightFlags{Monday: true, Friday: true}
	}
	s.Sources.Set(stats.Monday, "mon.csv")
	s.Uploads.Set(stats.Monday, s.Pool)
	s.WeeklyHydrated = true
	return s
}

func TestFinalizeWeek(t *testing.T) {
	now := time.Date(2026, 6, 5, 23, 0, 0, 0, time.UTC)
	s := weekState()

	out, result, err := FinalizeWeek(s, now)
	if err != nil {
		t.Fatalf("FinalizeWeek error: %v", err)
	}
	if result.Week != 3 || result.Scores != [2]float64{3, 1} {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(out.History) != 1 || len(result.Locked[0]) != 1 || result.Locked[0][0] != "a" {
		t.Fatalf("unexpected history: %+v", out.History)
	}
	if !result.ProcessedAt.Equal(now) {
		t.Fatalf("unexpected processedAt: %v", result.ProcessedAt)
	}
	if len(s.History) != 0 {
		t.Fatalf("input state must not be mutated")
	}
}

func TestFinalizeWeek_RequiresCompleteWeek(t *testing.T) {
	s := weekState()
	s.Teams[1].Processed.Friday = false

	if _, _, err := FinalizeWeek(s, time.Now()); !errors.Is(err, ErrWeekIncomplete) {
		t.Fatalf("expected incomplete week error, got %v", err)
	}
}

func TestStartWeek_ResetsWeeklyStateOnly(t *testing.T) {
	out := StartWeek(weekState(), 4)

	if out.Week != 4 || out.WeeklyHydrated {
		t.Fatalf("unexpected week fields: week=%d hydrated=%v", out.Week, out.WeeklyHydrated)
	}
	if out.Sources.Monday != "" || len(out.Uploads.Monday) != 0 {
		t.Fatalf("expected uploads and sources cleared")
	}
	t1 := out.Teams[0]
	if t1.Processed.Any() || len(t1.Locked) != 0 || len(t1.LockedByNight.Monday) != 0 {
		t.Fatalf("expected locks reset, got %+v", t1)
	}
	if t1.SeasonAddDropsUsed != 1 {
		t.Fatalf("add/drop counter must survive week rollover")
	}
	if len(t1.ActiveByNight.Monday) != 1 {
		t.Fatalf("nightly lineups must carry over")
	}
	if len(out.Pool) != 2 {
		t.Fatalf("pool must carry over")
	}
}

func TestCheckPersistable(t *testing.T) {
	s := weekState()
	if err := CheckPersistable(s); err != nil {
		t.Fatalf("expected persistable state, got %v", err)
	}

	s.Teams[0].Bench = []string{"a", "b", "c", "d", "e", "f"}
	if err := CheckPersistable(s); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected corrupt state error, got %v", err)
	}
}
