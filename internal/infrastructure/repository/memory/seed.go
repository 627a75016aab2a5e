package memory

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"gopkg.in/yaml.v3"
)

const (
	SeasonIDDemo = "season-2026-spring"
	TeamIDNorth  = "team-north"
	TeamIDSouth  = "team-south"
)

var seedTime = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: SeasonIDDemo, Name: "Spring 2026", CurrentWeek: 1, IsActive: true, CreatedAt: seedTime},
	}
}

func SeedTeams() []team.Identity {
	return []team.Identity{
		{TeamID: TeamIDNorth, SeasonID: SeasonIDDemo, Name: "North", OwnerUserID: "user-nora", CaptainKey: "nora quinn"},
		{TeamID: TeamIDSouth, SeasonID: SeasonIDDemo, Name: "South", OwnerUserID: "user-sam", CaptainKey: "sam ortiz"},
	}
}

func SeedPlayers() []player.Player {
	names := []string{
		"Nora Quinn", "Sam Ortiz", "Dee Park", "Eli Brandt", "Mia Torres", "Jo Reyes",
		"Kai Moss", "Lu Chen", "Ray Dunn", "Tess Hale", "Ari Stone", "Bo Lyle",
	}
	out := make([]player.Player, 0, len(names))
	for _, name := range names {
		out = append(out, player.Player{ID: playerSeedID(name), Name: name, CreatedAt: seedTime})
	}
	return out
}

// Seed is the YAML document used to populate memory storage.
type Seed struct {
	Season  SeedSeason `yaml:"season"`
	Teams   []SeedTeam `yaml:"teams"`
	Users   []SeedUser `yaml:"users"`
	Players []string   `yaml:"players"`
}

type SeedSeason struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Week int    `yaml:"week"`
}

type SeedTeam struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	OwnerUserID string `yaml:"ownerUserId"`
	CaptainKey  string `yaml:"captainKey"`
}

// SeedUser carries either a plain PIN, hashed at load, or a ready bcrypt hash.
type SeedUser struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Pin     string `yaml:"pin"`
	PinHash string `yaml:"pinHash"`
	Role    string `yaml:"role"`
	TeamID  string `yaml:"teamId"`
}

func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return LoadSeed(f)
}

func LoadSeed(r io.Reader) (Seed, error) {
	var seed Seed
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	if err := seed.Validate(); err != nil {
		return Seed{}, err
	}
	return seed, nil
}

func (s Seed) Validate() error {
	if strings.TrimSpace(s.Season.ID) == "" {
		return fmt.Errorf("seed season id is required")
	}
	if len(s.Teams) != 2 {
		return fmt.Errorf("seed needs exactly 2 teams, got %d", len(s.Teams))
	}
	for _, u := range s.Users {
		if !user.Role(u.Role).Valid() {
			return fmt.Errorf("seed user %q has invalid role %q", u.Name, u.Role)
		}
		if u.Pin == "" && u.PinHash == "" {
			return fmt.Errorf("seed user %q needs pin or pinHash", u.Name)
		}
	}
	return nil
}

func (s Seed) Seasons() []season.Season {
	week := s.Season.Week
	if week < 1 {
		week = 1
	}
	name := s.Season.Name
	if name == "" {
		name = s.Season.ID
	}
	return []season.Season{
		{ID: s.Season.ID, Name: name, CurrentWeek: week, IsActive: true, CreatedAt: seedTime},
	}
}

func (s Seed) TeamIdentities() []team.Identity {
	out := make([]team.Identity, 0, len(s.Teams))
	for _, t := range s.Teams {
		out = append(out, team.Identity{
			TeamID:      t.ID,
			SeasonID:    s.Season.ID,
			Name:        t.Name,
			OwnerUserID: t.OwnerUserID,
			CaptainKey:  t.CaptainKey,
		})
	}
	return out
}

func (s Seed) PlayerDirectory() []player.Player {
	out := make([]player.Player, 0, len(s.Players))
	for _, name := range s.Players {
		name = strings.Join(strings.Fields(name), " ")
		if name == "" {
			continue
		}
		out = append(out, player.Player{ID: playerSeedID(name), Name: name, CreatedAt: seedTime})
	}
	return out
}

// UserAccounts resolves seed users, hashing plain PINs with hash.
func (s Seed) UserAccounts(hash func(string) (string, error)) ([]user.User, error) {
	out := make([]user.User, 0, len(s.Users))
	for _, u := range s.Users {
		pinHash := u.PinHash
		if pinHash == "" {
			hashed, err := hash(u.Pin)
			if err != nil {
				return nil, fmt.Errorf("hash pin for %q: %w", u.Name, err)
			}
			pinHash = hashed
		}
		out = append(out, user.User{
			ID:        u.ID,
			Name:      u.Name,
			PinHash:   pinHash,
			Role:      user.Role(u.Role),
			TeamID:    u.TeamID,
			CreatedAt: seedTime,
		})
	}
	return out, nil
}

func playerSeedID(name string) string {
	return "player-" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
