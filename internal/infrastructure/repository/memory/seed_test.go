package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
)

const seedYAML = `
season:
  id: s-2026
  name: Spring 2026
  week: 2
teams:
  - id: t1
    name: North
    ownerUserId: u1
    captainKey: nora quinn
  - id: t2
    name: South
    ownerUserId: u2
users:
  - id: u1
    name: Nora
    pin: "1234"
    role: player
    teamId: t1
  - id: c1
    name: Commish
    pinHash: "$2a$10$abcdefghijklmnopqrstuv"
    role: commissioner
players:
  - "Nora  Quinn"
  - Sam Ortiz
`

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed(strings.NewReader(seedYAML))
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}

	seasons := seed.Seasons()
	if len(seasons) != 1 || seasons[0].CurrentWeek != 2 || !seasons[0].IsActive {
		t.Fatalf("unexpected seasons: %+v", seasons)
	}
	teams := seed.TeamIdentities()
	if len(teams) != 2 || teams[0].SeasonID != "s-2026" || teams[0].CaptainKey != "nora quinn" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
	players := seed.PlayerDirectory()
	if len(players) != 2 || players[0].Name != "Nora Quinn" || players[0].ID != "player-nora-quinn" {
		t.Fatalf("unexpected players: %+v", players)
	}

	hashed := 0
	users, err := seed.UserAccounts(func(pin string) (string, error) {
		hashed++
		return "hash:" + pin, nil
	})
	if err != nil {
		t.Fatalf("resolve users: %v", err)
	}
	if hashed != 1 || users[0].PinHash != "hash:1234" || users[1].PinHash == "" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestLoadSeed_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown field", doc: "season: {id: s}\nteams: [{id: a}, {id: b}]\nbogus: 1\n"},
		{name: "one team", doc: "season: {id: s}\nteams: [{id: a}]\n"},
		{name: "bad role", doc: "season: {id: s}\nteams: [{id: a}, {id: b}]\nusers: [{id: u, name: U, pin: '1', role: admin}]\n"},
		{name: "no pin", doc: "season: {id: s}\nteams: [{id: a}, {id: b}]\nusers: [{id: u, name: U, role: player}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSeed(strings.NewReader(tt.doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSeasonRepository_CreateDeactivatesPrevious(t *testing.T) {
	ctx := context.Background()
	repo := NewSeasonRepository(SeedSeasons())

	if err := repo.Create(ctx, season.Season{ID: "next", Name: "Fall", CurrentWeek: 1}); err != nil {
		t.Fatalf("create season: %v", err)
	}
	active, ok, err := repo.GetActive(ctx)
	if err != nil || !ok || active.ID != "next" {
		t.Fatalf("unexpected active season: %+v ok=%v err=%v", active, ok, err)
	}
	old, _, _ := repo.GetByID(ctx, SeasonIDDemo)
	if old.IsActive {
		t.Fatalf("expected previous season to be inactive")
	}
}

func TestLineupRepository_ReplaceNightKeepsOtherSlots(t *testing.T) {
	ctx := context.Background()
	repo := NewLineupRepository()

	mustReplace := func(l lineup.NightLineup) {
		t.Helper()
		if err := repo.ReplaceNight(ctx, l); err != nil {
			t.Fatalf("replace night: %v", err)
		}
	}
	mustReplace(lineup.NightLineup{SeasonID: "s", Week: 1, TeamID: "t1", Night: stats.Monday, PlayerIDs: []string{"a", "b"}})
	mustReplace(lineup.NightLineup{SeasonID: "s", Week: 1, TeamID: "t1", Night: stats.Friday, PlayerIDs: []string{"c"}})
	mustReplace(lineup.NightLineup{SeasonID: "s", Week: 1, TeamID: "t1", Night: stats.Monday, PlayerIDs: []string{"d"}})

	rows, err := repo.ListByWeek(ctx, "s", 1)
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0].PlayerID != "c" || rows[1].PlayerID != "d" || rows[1].Night != stats.Monday {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestPlayerRepository_InsertMissingIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository([]player.Player{{ID: "p1", Name: "Nora Quinn"}})

	inserted, err := repo.InsertMissing(ctx, []player.Player{
		{ID: "p2", Name: "nora quinn"},
		{ID: "p3", Name: "Sam Ortiz"},
		{ID: "p4", Name: "SAM ORTIZ"},
	})
	if err != nil {
		t.Fatalf("insert missing: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 insert, got %d", inserted)
	}
}
