package lineup

import (
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

func draftedState() league.State {
	s := league.Empty()
	s.SeasonID = "s1"
	s.TeamsHydrated = true
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n"} {
		row := stats.NewPlayerTotals(name, "", stats.Counts{})
		row.PlayerID = "p-" + name
		s.Pool = append(s.Pool, row)
	}

	s.Teams[0] = team.New(team.Identity{TeamID: "t1", Name: "Martin", OwnerUserID: "u1", CaptainKey: "a"})
	s.Teams[0].Active = []string{"a", "b", "c", "d"}
	s.Teams[0].Bench = []string{"e", "f"}
	s.Teams[0].ActiveByNight = team.NightLists{Monday: []string{"a", "b", "c", "d"}, Friday: []string{"a", "b", "c", "d"}}

	s.Teams[1] = team.New(team.Identity{TeamID: "t2", Name: "Jordan", OwnerUserID: "u2", CaptainKey: "g"})
	s.Teams[1].Active = []string{"g", "h", "i", "j"}
	s.Teams[1].Bench = []string{"k", "l"}
	s.Teams[1].ActiveByNight = team.NightLists{Monday: []string{"g", "h", "i", "j"}, Friday: []string{"g", "h", "i", "j"}}
	return s
}

func played(night stats.Night, names ...string) []stats.PlayerTotals {
	out := make([]stats.PlayerTotals, 0, len(names))
	for _, n := range names {
		out = append(out, stats.NewPlayerTotals(n, night, stats.Counts{PA: 3, AB: 3, Singles: 1}))
	}
	return out
}

func TestApplyUpload_LocksPlayedActivesExceptCaptain(t *testing.T) {
	s := draftedState()

	out, report, err := ApplyUpload(s, stats.Monday, played(stats.Monday, "a", "b", "c", "g", "k"), "mon.csv")
	if err != nil {
		t.Fatalf("ApplyUpload error: %v", err)
	}

	if got := out.Teams[0].LockedByNight.Monday; !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("unexpected team 1 locks: %v", got)
	}
	if got := out.Teams[1].LockedByNight.Monday; len(got) != 0 {
		t.Fatalf("captain and bench players must not lock, got %v", got)
	}
	if !out.Teams[0].Processed.Monday || !out.Teams[1].Processed.Monday || out.Teams[0].Processed.Friday {
		t.Fatalf("unexpected processed flags: %+v %+v", out.Teams[0].Processed, out.Teams[1].Processed)
	}
	if !reflect.DeepEqual(out.Teams[0].Locked, []string{"b", "c"}) {
		t.Fatalf("unexpected locked union: %v", out.Teams[0].Locked)
	}
	if out.Sources.Monday != "mon.csv" || !out.WeeklyHydrated {
		t.Fatalf("expected source and weekly hydration to be recorded")
	}
	if !report.Processed[0] || !report.FirstUpload[0] {
		t.Fatalf("unexpected report: %+v", report)
	}
	if s.Teams[0].Processed.Monday {
		t.Fatalf("input state must not be mutated")
	}
}

func TestApplyUpload_RejectsImpossibleLineWithoutMutation(t *testing.T) {
	s := draftedState()
	rows := played(stats.Monday, "a")
	rows = append(rows, stats.NewPlayerTotals("b", stats.Monday, stats.Counts{PA: 4, AB: 3, HR: 4}))

	out, _, err := ApplyUpload(s, stats.Monday, rows, "bad.csv")
	if !errors.Is(err, stats.ErrMalformedUpload) {
		t.Fatalf("expected malformed upload, got %v", err)
	}
	if !reflect.DeepEqual(out, s) {
		t.Fatalf("state changed on rejected upload")
	}
}

func TestApplyUpload_FirstUploadSyncsBothNights(t *testing.T) {
	s := draftedState()
	s.Teams[0].ActiveByNight.Friday = []string{"a", "e", "f", "b"}

	out, _, err := ApplyUpload(s, stats.Monday, played(stats.Monday, "b"), "mon.csv")
	if err != nil {
		t.Fatalf("ApplyUpload error: %v", err)
	}

	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(out.Teams[0].ActiveByNight.Monday, want) || !reflect.DeepEqual(out.Teams[0].ActiveByNight.Friday, want) {
		t.Fatalf("expected both nights synced to %v, got %+v", want, out.Teams[0].ActiveByNight)
	}
}

func TestApplyUpload_FirstUploadWithEmptyLineupScoresNothing(t *testing.T) {
	s := draftedState()
	s.Teams[0].ActiveByNight = team.NightLists{Monday: []string{}, Friday: []string{}}
	rows := []stats.PlayerTotals{stats.NewPlayerTotals("b", stats.Monday, stats.Counts{PA: 2, AB: 2, HR: 2})}

	out, report, err := ApplyUpload(s, stats.Monday, rows, "mon.csv")
	if err != nil {
		t.Fatalf("ApplyUpload error: %v", err)
	}
	if !report.FirstUpload[0] || !out.Teams[0].Processed.Monday {
		t.Fatalf("expected first upload to process monday: %+v", report)
	}
	if got := out.Teams[0].ActiveByNight; len(got.Monday) != 0 || len(got.Friday) != 0 {
		t.Fatalf("empty lineup must stay empty on both nights, got %+v", got)
	}
	if len(out.Teams[0].LockedByNight.Monday) != 0 {
		t.Fatalf("nobody was declared, got locks %v", out.Teams[0].LockedByNight.Monday)
	}
	if got := out.WeeklyScores()[0]; got != 0 {
		t.Fatalf("undeclared players must not score, got %v", got)
	}
	if !reflect.DeepEqual(out.Teams[0].Active, []string{"a", "b", "c", "d"}) {
		t.Fatalf("roster changed by upload: %v", out.Teams[0].Active)
	}
}

func TestApplyUpload_LaterUploadKeepsNightlyLineups(t *testing.T) {
	s := draftedState()
	s, _, err := ApplyUpload(s, stats.Monday, played(stats.Monday, "b"), "mon.csv")
	if err != nil {
		t.Fatalf("monday upload error: %v", err)
	}

	s, _, err = Swap(s, 0, stats.Friday, "d", "e")
	if err != nil {
		t.Fatalf("friday swap error: %v", err)
	}

	out, report, err := ApplyUpload(s, stats.Friday, played(stats.Friday, "b", "c", "e", "d"), "fri.csv")
	if err != nil {
		t.Fatalf("friday upload error: %v", err)
	}
	if report.FirstUpload[0] {
		t.Fatalf("friday upload must not be treated as first upload")
	}
	if got := out.Teams[0].ActiveByNight.Friday; !reflect.DeepEqual(got, []string{"a", "b", "c", "e"}) {
		t.Fatalf("friday lineup changed by upload: %v", got)
	}
	if got := out.Teams[0].LockedByNight.Friday; !reflect.DeepEqual(got, []string{"b", "c", "e"}) {
		t.Fatalf("unexpected friday locks: %v", got)
	}
	if !reflect.DeepEqual(out.Teams[0].Locked, []string{"b", "c", "e"}) {
		t.Fatalf("unexpected locked union: %v", out.Teams[0].Locked)
	}
	if !reflect.DeepEqual(out.Teams[0].Active, []string{"a", "b", "c", "d"}) || !reflect.DeepEqual(out.Teams[0].Bench, []string{"e", "f"}) {
		t.Fatalf("roster changed by upload: active=%v bench=%v", out.Teams[0].Active, out.Teams[0].Bench)
	}

	b, _ := stats.Find(out.Pool, "b")
	if b.PA != 6 || len(b.Leagues) != 2 {
		t.Fatalf("expected pool to merge both nights, got PA=%d leagues=%v", b.PA, b.Leagues)
	}
}

func TestApplyUpload_ReuploadDoesNotRelock(t *testing.T) {
	s := draftedState()
	s, _, _ = ApplyUpload(s, stats.Monday, played(stats.Monday, "b"), "mon.csv")
	out, report, err := ApplyUpload(s, stats.Monday, played(stats.Monday, "b", "c", "d"), "mon-fixed.csv")
	if err != nil {
		t.Fatalf("ApplyUpload error: %v", err)
	}
	if report.Processed[0] {
		t.Fatalf("already processed team must not transition again")
	}
	if !reflect.DeepEqual(out.Teams[0].LockedByNight.Monday, []string{"b"}) {
		t.Fatalf("re-upload changed locks: %v", out.Teams[0].LockedByNight.Monday)
	}
	if d, _ := stats.Find(out.Pool, "d"); d.PA != 3 {
		t.Fatalf("expected re-upload to overwrite night totals, got PA=%d", d.PA)
	}
}

func TestProcessWithoutUpload(t *testing.T) {
	s := draftedState()
	s.Teams[1].Processed.Friday = true

	out, changed, err := ProcessWithoutUpload(s, stats.Friday)
	if err != nil {
		t.Fatalf("ProcessWithoutUpload error: %v", err)
	}
	if changed != 1 || !out.Teams[0].Processed.Friday {
		t.Fatalf("unexpected result: changed=%d processed=%+v", changed, out.Teams[0].Processed)
	}
	if len(out.Teams[0].LockedByNight.Friday) != 0 {
		t.Fatalf("processing without upload must not lock players")
	}
}

func TestSwap(t *testing.T) {
	tests := []struct {
		name      string
		prepare   func(league.State) league.State
		night     stats.Night
		out, in   string
		targetErr error
		wantMon   []string
		wantFri   []string
	}{
		{
			name:    "open night positional swap",
			night:   stats.Monday,
			out:     "c",
			in:      "e",
			wantMon: []string{"a", "b", "e", "d"},
			wantFri: []string{"a", "b", "c", "d"},
		},
		{
			name: "locked night rejects non captain",
			prepare: func(s league.State) league.State {
				s, _, _ = ApplyUpload(s, stats.Monday, played(stats.Monday, "b"), "mon.csv")
				return s
			},
			night:     stats.Monday,
			out:       "b",
			in:        "e",
			targetErr: ErrNightLocked,
			wantMon:   []string{"a", "b", "c", "d"},
			wantFri:   []string{"a", "b", "c", "d"},
		},
		{
			name: "captain in applies to open nights only",
			prepare: func(s league.State) league.State {
				s.Teams[0].CaptainKey = "e"
				s.Teams[0].ActiveByNight.Monday = []string{"a", "b", "c", "d"}
				s, _, _ = ProcessWithoutUpload(s, stats.Monday)
				s.Teams[0].ActiveByNight.Friday = []string{"a", "b", "c", "d"}
				return s
			},
			night:   stats.Monday,
			out:     "d",
			in:      "e",
			wantMon: []string{"a", "b", "c", "d"},
			wantFri: []string{"a", "b", "c", "e"},
		},
		{
			name:    "captain out applies to every open night and keeps the captain",
			night:   stats.Friday,
			out:     "a",
			in:      "e",
			wantMon: []string{"e", "a", "c", "d"},
			wantFri: []string{"e", "a", "c", "d"},
		},
		{
			name: "captain out skips processed nights",
			prepare: func(s league.State) league.State {
				s, _, _ = ProcessWithoutUpload(s, stats.Monday)
				return s
			},
			night:   stats.Monday,
			out:     "a",
			in:      "e",
			wantMon: []string{"a", "b", "c", "d"},
			wantFri: []string{"e", "a", "c", "d"},
		},
		{
			name: "captain out with no open night is rejected",
			prepare: func(s league.State) league.State {
				s, _, _ = ProcessWithoutUpload(s, stats.Monday)
				s, _, _ = ProcessWithoutUpload(s, stats.Friday)
				return s
			},
			night:     stats.Friday,
			out:       "a",
			in:        "e",
			targetErr: ErrNoOpenNight,
			wantMon:   []string{"a", "b", "c", "d"},
			wantFri:   []string{"a", "b", "c", "d"},
		},
		{
			name:      "full lineup without out key is rejected",
			night:     stats.Monday,
			out:       "f",
			in:        "e",
			targetErr: ErrNotActive,
			wantMon:   []string{"a", "b", "c", "d"},
			wantFri:   []string{"a", "b", "c", "d"},
		},
		{
			name: "short lineup appends in key",
			prepare: func(s league.State) league.State {
				s.Teams[0].ActiveByNight.Monday = []string{"a", "b", "c"}
				return s
			},
			night:   stats.Monday,
			out:     "f",
			in:      "e",
			wantMon: []string{"a", "b", "c", "e"},
			wantFri: []string{"a", "b", "c", "d"},
		},
		{
			name:      "player from other team rejected",
			night:     stats.Monday,
			out:       "b",
			in:        "g",
			targetErr: ErrNotOnRoster,
			wantMon:   []string{"a", "b", "c", "d"},
			wantFri:   []string{"a", "b", "c", "d"},
		},
		{
			name: "missing captain is forced back into open night",
			prepare: func(s league.State) league.State {
				s.Teams[0].ActiveByNight.Monday = []string{"b", "c", "d", "f"}
				return s
			},
			night:   stats.Monday,
			out:     "f",
			in:      "e",
			wantMon: []string{"a", "c", "d", "e"},
			wantFri: []string{"a", "b", "c", "d"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := draftedState()
			if tc.prepare != nil {
				s = tc.prepare(s)
			}

			out, _, err := Swap(s, 0, tc.night, tc.out, tc.in)
			if tc.targetErr == nil && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) || !errors.Is(err, ErrPreconditionRejected) {
					t.Fatalf("expected error %v, got %v", tc.targetErr, err)
				}
			}
			if got := out.Teams[0].ActiveByNight.Monday; !reflect.DeepEqual(got, tc.wantMon) {
				t.Fatalf("unexpected monday lineup: %v want %v", got, tc.wantMon)
			}
			if got := out.Teams[0].ActiveByNight.Friday; !reflect.DeepEqual(got, tc.wantFri) {
				t.Fatalf("unexpected friday lineup: %v want %v", got, tc.wantFri)
			}
		})
	}
}

func TestAddDrop_CapAndPurge(t *testing.T) {
	s := draftedState()

	s, err := AddDrop(s, 0, "f", "m")
	if err != nil {
		t.Fatalf("first add/drop error: %v", err)
	}
	if !reflect.DeepEqual(s.Teams[0].Bench, []string{"e", "m"}) {
		t.Fatalf("expected added player on bench, got %v", s.Teams[0].Bench)
	}

	s, err = AddDrop(s, 0, "d", "n")
	if err != nil {
		t.Fatalf("second add/drop error: %v", err)
	}
	if team.Contains(s.Teams[0].ActiveByNight.Monday, "d") || team.Contains(s.Teams[0].ActiveByNight.Friday, "d") {
		t.Fatalf("dropped player still in nightly lineups: %+v", s.Teams[0].ActiveByNight)
	}
	if !reflect.DeepEqual(s.Teams[0].Active, []string{"a", "b", "c", "n"}) {
		t.Fatalf("expected added player in active when bench is full, got %v", s.Teams[0].Active)
	}

	s.Pool = append(s.Pool, stats.NewPlayerTotals("o", "", stats.Counts{}))
	out, err := AddDrop(s, 0, "e", "o")
	if !errors.Is(err, ErrAddDropCap) {
		t.Fatalf("expected cap error, got %v", err)
	}
	if out.Teams[0].SeasonAddDropsUsed != 2 {
		t.Fatalf("expected counter to stay at 2, got %d", out.Teams[0].SeasonAddDropsUsed)
	}
}

func TestAddDrop_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		drop, add string
		targetErr error
	}{
		{name: "captain", drop: "a", add: "m", targetErr: ErrCaptainDrop},
		{name: "not on roster", drop: "g", add: "m", targetErr: ErrNotOnRoster},
		{name: "unknown player", drop: "b", add: "zz", targetErr: ErrUnknownPlayer},
		{name: "taken", drop: "b", add: "h", targetErr: ErrPlayerTaken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := draftedState()
			out, err := AddDrop(s, 0, tc.drop, tc.add)
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
			if out.Teams[0].SeasonAddDropsUsed != 0 {
				t.Fatalf("counter changed on rejection")
			}
		})
	}
}

func TestDraftEdits(t *testing.T) {
	s := league.Empty()
	for _, name := range []string{"a", "b", "c"} {
		s.Pool = append(s.Pool, stats.NewPlayerTotals(name, "", stats.Counts{}))
	}
	s.Teams[0] = team.New(team.Identity{TeamID: "t1"})
	s.Teams[1] = team.New(team.Identity{TeamID: "t2"})

	s, err := AddActive(s, 0, "a")
	if err != nil {
		t.Fatalf("AddActive error: %v", err)
	}
	s, err = SetBench(s, 0, "a")
	if err != nil {
		t.Fatalf("SetBench error: %v", err)
	}
	if len(s.Teams[0].Active) != 0 || !reflect.DeepEqual(s.Teams[0].Bench, []string{"a"}) {
		t.Fatalf("expected a moved to bench: %+v", s.Teams[0])
	}

	if _, err := AddActive(s, 1, "a"); !errors.Is(err, ErrPlayerTaken) {
		t.Fatalf("expected taken error, got %v", err)
	}

	s, err = RemoveDrafted(s, 0, "a")
	if err != nil {
		t.Fatalf("RemoveDrafted error: %v", err)
	}
	if s.Teams[0].RosterSize() != 0 {
		t.Fatalf("expected empty roster after removal")
	}
}

func TestDraftEdits_FrozenAfterDraft(t *testing.T) {
	s := draftedState()
	if _, err := AddActive(s, 0, "m"); !errors.Is(err, ErrRosterFrozen) {
		t.Fatalf("expected frozen roster, got %v", err)
	}
	if _, err := RemoveDrafted(s, 0, "b"); !errors.Is(err, ErrRosterFrozen) {
		t.Fatalf("expected frozen roster, got %v", err)
	}
}

func TestApplyRemote(t *testing.T) {
	s := draftedState()
	s.Teams[1].ActiveByNight = team.NightLists{}
	s.Teams[0].ActiveByNight.Friday = []string{"a", "b", "c", "e"}

	rows := []Row{
		{TeamID: "t1", PlayerID: "p-a", Night: stats.Monday, Slot: SlotActive},
		{TeamID: "t1", PlayerID: "p-e", Night: stats.Monday, Slot: SlotActive},
		{TeamID: "t1", PlayerID: "p-f", Night: stats.Monday, Slot: SlotActive},
		{TeamID: "t1", PlayerID: "p-a", Night: stats.Monday, Slot: SlotActive},
		{TeamID: "t1", PlayerID: "p-b", Night: stats.Friday, Slot: SlotActive},
	}
	skip := func(teamID string, night stats.Night) bool {
		return teamID == "t1" && night == stats.Friday
	}

	out, report := ApplyRemote(s, rows, skip)
	if got := out.Teams[0].ActiveByNight.Monday; !reflect.DeepEqual(got, []string{"a", "e", "f"}) {
		t.Fatalf("unexpected stored monday lineup: %v", got)
	}
	if got := out.Teams[0].ActiveByNight.Friday; !reflect.DeepEqual(got, []string{"a", "b", "c", "e"}) {
		t.Fatalf("pending local friday lineup was overwritten: %v", got)
	}
	if got := out.Teams[1].ActiveByNight.Monday; !reflect.DeepEqual(got, []string{"g", "h", "i", "j"}) {
		t.Fatalf("expected empty night seeded from actives, got %v", got)
	}
	if len(report.Seeded) != 2 || len(report.Applied) != 1 || len(report.Skipped) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	again, report := ApplyRemote(out, nil, nil)
	if !reflect.DeepEqual(again.Teams, out.Teams) || len(report.Seeded) != 0 {
		t.Fatalf("empty response must not clobber local lineups")
	}
}
