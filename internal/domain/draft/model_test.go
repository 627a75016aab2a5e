package draft

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

func testPool() []stats.PlayerTotals {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	out := make([]stats.PlayerTotals, 0, len(names))
	for _, n := range names {
		row := stats.NewPlayerTotals(n, "", stats.Counts{})
		row.PlayerID = "p-" + n
		out = append(out, row)
	}
	return out
}

func testTeams() [2]team.Team {
	return [2]team.Team{
		team.New(team.Identity{TeamID: "t1", Name: "Martin"}),
		team.New(team.Identity{TeamID: "t2", Name: "Jordan"}),
	}
}

func TestApply_FullDraftSplitsActiveAndBench(t *testing.T) {
	picks := []Pick{
		{TeamID: "t1", PlayerID: "p-c"},
		{TeamID: "t2", PlayerID: "p-g"},
		{TeamID: "t1", PlayerID: "p-a"},
		{TeamID: "t1", PlayerID: "p-f"},
		{TeamID: "t1", PlayerID: "p-b"},
		{TeamID: "t1", PlayerID: "p-e"},
		{TeamID: "t1", PlayerID: "p-d"},
	}

	res := Apply(testTeams(), picks, nil, testPool())
	if !res.Applied[0] || res.Applied[1] {
		t.Fatalf("unexpected applied flags: %v", res.Applied)
	}
	if !reflect.DeepEqual(res.Teams[0].Active, []string{"c", "a", "f", "b"}) {
		t.Fatalf("unexpected active: %v", res.Teams[0].Active)
	}
	if !reflect.DeepEqual(res.Teams[0].Bench, []string{"e", "d"}) {
		t.Fatalf("unexpected bench: %v", res.Teams[0].Bench)
	}
}

func TestApply_PartialDraftKeepsSeededRoster(t *testing.T) {
	teams := testTeams()
	teams[1].Active = []string{"g", "h", "i", "j"}
	teams[1].Bench = []string{"k", "l"}

	picks := []Pick{{TeamID: "t2", PlayerID: "p-a"}, {TeamID: "t2", PlayerID: "p-b"}}
	res := Apply(teams, picks, nil, testPool())

	if res.Applied[1] {
		t.Fatalf("partial draft must not be applied")
	}
	if !reflect.DeepEqual(res.Teams[1].Active, []string{"g", "h", "i", "j"}) {
		t.Fatalf("seeded roster was overwritten: %v", res.Teams[1].Active)
	}
}

func TestApply_RestoresCaptainToBench(t *testing.T) {
	teams := testTeams()
	identities := []team.Identity{{TeamID: "t1", Name: "Martin", OwnerUserID: "u-1", CaptainKey: "z"}}

	res := Apply(teams, nil, identities, testPool())
	if res.Teams[0].CaptainKey != "z" || res.Teams[0].OwnerUserID != "u-1" {
		t.Fatalf("identity not applied: %+v", res.Teams[0])
	}
	if !reflect.DeepEqual(res.Teams[0].Bench, []string{"z"}) {
		t.Fatalf("expected captain on bench, got bench=%v active=%v", res.Teams[0].Bench, res.Teams[0].Active)
	}
}

func TestPicksFromTeams_RoundTrip(t *testing.T) {
	pool := testPool()
	teams := testTeams()
	teams[0].Active = []string{"a", "b", "c", "d"}
	teams[0].Bench = []string{"e", "f"}
	teams[1].Active = []string{"g", "h", "i", "j"}
	teams[1].Bench = []string{"k", "l"}

	picks := PicksFromTeams(teams, pool)
	if len(picks) != 12 {
		t.Fatalf("expected 12 picks, got %d", len(picks))
	}

	res := Apply(testTeams(), picks, nil, pool)
	for i := range teams {
		if !reflect.DeepEqual(res.Teams[i].Active, teams[i].Active) || !reflect.DeepEqual(res.Teams[i].Bench, teams[i].Bench) {
			t.Fatalf("team %d did not round trip: active=%v bench=%v", i, res.Teams[i].Active, res.Teams[i].Bench)
		}
	}
}
