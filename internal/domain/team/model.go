package team

import (
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
)

const (
	RosterSize  = 6
	MaxActive   = 4
	MaxBench    = 2
	MaxAddDrops = 2
)

// Identity is the server-owned part of a team: who it is and who runs it.
type Identity struct {
	TeamID      string `json:"teamId"`
	SeasonID    string `json:"seasonId,omitempty"`
	Name        string `json:"name"`
	OwnerUserID string `json:"ownerUserId"`
	CaptainKey  string `json:"captainKey"`
}

// Team is the canonical roster and weekly lineup state of one of the two league teams.
type Team struct {
	ID                 string     `json:"teamId"`
	Owner              string     `json:"owner"`
	OwnerUserID        string     `json:"ownerUserId"`
	Active             []string   `json:"active"`
	Bench              []string   `json:"bench"`
	CaptainKey         string     `json:"captainKey"`
	ActiveByNight      NightLists `json:"activeByNight"`
	LockedByNight      NightLists `json:"lockedByNight"`
	Locked             []string   `json:"locked"`
	Processed          NightFlags `json:"processed"`
	SeasonAddDropsUsed int        `json:"seasonAddDropsUsed"`
}

// NightLists stores one key list per night.
type NightLists struct {
	Monday []string `json:"MON"`
	Friday []string `json:"FRI"`
}

func (l NightLists) Get(night stats.Night) []string {
	if night == stats.Friday {
		return l.Friday
	}
	return l.Monday
}

func (l *NightLists) Set(night stats.Night, keys []string) {
	if night == stats.Friday {
		l.Friday = keys
		return
	}
	l.Monday = keys
}

func (l NightLists) Clone() NightLists {
	return NightLists{
		Monday: cloneKeys(l.Monday),
		Friday: cloneKeys(l.Friday),
	}
}

// NightFlags stores one boolean per night.
type NightFlags struct {
	Monday bool `json:"MON"`
	Friday bool `json:"FRI"`
}

func (f NightFlags) Get(night stats.Night) bool {
	if night == stats.Friday {
		return f.Friday
	}
	return f.Monday
}

func (f *NightFlags) Set(night stats.Night, v bool) {
	if night == stats.Friday {
		f.Friday = v
		return
	}
	f.Monday = v
}

func (f NightFlags) Any() bool {
	return f.Monday || f.Friday
}

func (f NightFlags) All() bool {
	return f.Monday && f.Friday
}

func (t Team) Clone() Team {
	out := t
	out.Active = cloneKeys(t.Active)
	out.Bench = cloneKeys(t.Bench)
	out.ActiveByNight = t.ActiveByNight.Clone()
	out.LockedByNight = t.LockedByNight.Clone()
	out.Locked = cloneKeys(t.Locked)
	return out
}

// Identity returns the server-owned fields of the team.
func (t Team) Identity() Identity {
	return Identity{
		TeamID:      t.ID,
		Name:        t.Owner,
		OwnerUserID: t.OwnerUserID,
		CaptainKey:  t.CaptainKey,
	}
}

// Roster returns active followed by bench.
func (t Team) Roster() []string {
	out := make([]string, 0, len(t.Active)+len(t.Bench))
	out = append(out, t.Active...)
	return append(out, t.Bench...)
}

func (t Team) RosterSize() int {
	return len(t.Active) + len(t.Bench)
}

func (t Team) IsFull() bool {
	return t.RosterSize() == RosterSize
}

func (t Team) OnRoster(key string) bool {
	return Contains(t.Active, key) || Contains(t.Bench, key)
}

func (t Team) IsCaptain(key string) bool {
	return t.CaptainKey != "" && key == t.CaptainKey
}

// IsOpen reports whether the night still accepts lineup edits.
func (t Team) IsOpen(night stats.Night) bool {
	return !t.Processed.Get(night)
}

// OpenNights lists nights that have not been processed yet.
func (t Team) OpenNights() []stats.Night {
	out := make([]stats.Night, 0, len(stats.Nights))
	for _, night := range stats.Nights {
		if t.IsOpen(night) {
			out = append(out, night)
		}
	}
	return out
}

// BenchForNight lists roster members not active for night.
func (t Team) BenchForNight(night stats.Night) []string {
	active := t.ActiveByNight.Get(night)
	out := make([]string, 0, RosterSize)
	for _, key := range t.Roster() {
		if !Contains(active, key) && !Contains(out, key) {
			out = append(out, key)
		}
	}
	return out
}

// RecomputeLocked rebuilds the display set of locked keys from both nights.
func (t *Team) RecomputeLocked() {
	t.Locked = Union(t.LockedByNight.Monday, t.LockedByNight.Friday)
}

// EnsureCaptainOnRoster puts the captain back on the roster, preferring the bench.
func (t *Team) EnsureCaptainOnRoster() bool {
	if t.CaptainKey == "" || t.OnRoster(t.CaptainKey) {
		return false
	}
	if len(t.Bench) < MaxBench {
		t.Bench = append(t.Bench, t.CaptainKey)
		return true
	}
	if len(t.Active) < MaxActive {
		t.Active = append(t.Active, t.CaptainKey)
		return true
	}
	t.Bench = append(t.Bench, t.CaptainKey)
	return true
}

// Purge removes key from every roster and nightly list.
func (t *Team) Purge(key string) {
	t.Active = Remove(t.Active, key)
	t.Bench = Remove(t.Bench, key)
	t.ActiveByNight.Monday = Remove(t.ActiveByNight.Monday, key)
	t.ActiveByNight.Friday = Remove(t.ActiveByNight.Friday, key)
}

// ResetWeek clears the weekly lock state.
func (t *Team) ResetWeek() {
	t.Processed = NightFlags{}
	t.LockedByNight = NightLists{Monday: []string{}, Friday: []string{}}
	t.Locked = []string{}
}

// Normalize replaces nil lists with empty ones.
func (t *Team) Normalize() {
	t.Active = nonNil(t.Active)
	t.Bench = nonNil(t.Bench)
	t.ActiveByNight.Monday = nonNil(t.ActiveByNight.Monday)
	t.ActiveByNight.Friday = nonNil(t.ActiveByNight.Friday)
	t.LockedByNight.Monday = nonNil(t.LockedByNight.Monday)
	t.LockedByNight.Friday = nonNil(t.LockedByNight.Friday)
	t.Locked = nonNil(t.Locked)
}

func New(identity Identity) Team {
	t := Team{
		ID:          identity.TeamID,
		Owner:       identity.Name,
		OwnerUserID: identity.OwnerUserID,
		CaptainKey:  identity.CaptainKey,
	}
	t.Normalize()
	return t
}
