package lineup

import (
	"fmt"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

// Swap moves inKey into the nightly lineup in place of outKey.
//
// A move involving the captain applies to every open night; other moves apply
// to the given night only and are refused once that night is processed. An open
// lineup that loses its captain gets it back in the first slot not held by
// inKey. When outKey is not in a night's lineup, inKey is appended only if a
// slot is free.
// It returns the nights that changed.
func Swap(s league.State, idx int, night stats.Night, outKey, inKey string) (league.State, []stats.Night, error) {
	if err := checkTeamIndex(idx); err != nil {
		return s, nil, err
	}
	if !night.Valid() {
		return s, nil, ErrUnknownNight
	}
	if outKey == inKey {
		return s, nil, ErrSamePlayer
	}

	t := s.Teams[idx]
	if !t.OnRoster(inKey) {
		return s, nil, fmt.Errorf("%w: %s", ErrNotOnRoster, inKey)
	}
	if !t.OnRoster(outKey) {
		return s, nil, fmt.Errorf("%w: %s", ErrNotOnRoster, outKey)
	}

	captainMove := t.IsCaptain(inKey) || t.IsCaptain(outKey)
	nights := []stats.Night{night}
	if captainMove {
		nights = t.OpenNights()
		if len(nights) == 0 {
			return s, nil, ErrNoOpenNight
		}
	}

	for _, n := range nights {
		if t.Processed.Get(n) && !captainMove {
			return s, nil, fmt.Errorf("%w: %s", ErrNightLocked, n)
		}
		if team.Contains(t.LockedByNight.Get(n), outKey) {
			return s, nil, fmt.Errorf("%w: %s on %s", ErrPlayerLocked, outKey, n)
		}
	}

	next := make(map[stats.Night][]string, len(nights))
	for _, n := range nights {
		list, err := swapInList(t.ActiveByNight.Get(n), outKey, inKey)
		if err != nil {
			return s, nil, fmt.Errorf("%w: %s on %s", err, outKey, n)
		}
		if t.IsOpen(n) && t.CaptainKey != "" && t.OnRoster(t.CaptainKey) && !team.Contains(list, t.CaptainKey) {
			list = forceCaptain(list, t.CaptainKey, inKey)
		}
		next[n] = team.Cap(list, team.MaxActive)
	}

	out := s.Clone()
	changed := make([]stats.Night, 0, len(nights))
	for _, n := range nights {
		if equalKeys(out.Teams[idx].ActiveByNight.Get(n), next[n]) {
			continue
		}
		out.Teams[idx].ActiveByNight.Set(n, next[n])
		changed = append(changed, n)
	}
	return out, changed, nil
}

func swapInList(list []string, outKey, inKey string) ([]string, error) {
	out := append([]string{}, list...)
	for i, k := range out {
		if k == outKey {
			out[i] = inKey
			return team.Dedupe(out), nil
		}
	}
	if team.Contains(out, inKey) {
		return out, nil
	}
	if len(team.Dedupe(out)) >= team.MaxActive {
		return nil, ErrNotActive
	}
	return team.Dedupe(append(out, inKey)), nil
}

// forceCaptain puts the captain in the first slot not taken by keep.
func forceCaptain(list []string, captain, keep string) []string {
	out := append([]string{}, list...)
	if len(out) < team.MaxActive {
		return append(out, captain)
	}
	for i, k := range out {
		if k != keep {
			out[i] = captain
			return out
		}
	}
	return append(out, captain)
}

// AddDrop replaces dropKey with addKey on the roster. Each team gets two per season.
func AddDrop(s league.State, idx int, dropKey, addKey string) (league.State, error) {
	if err := checkTeamIndex(idx); err != nil {
		return s, err
	}

	t := s.Teams[idx]
	if t.SeasonAddDropsUsed >= team.MaxAddDrops {
		return s, ErrAddDropCap
	}
	if dropKey == addKey {
		return s, ErrSamePlayer
	}
	if t.IsCaptain(dropKey) {
		return s, ErrCaptainDrop
	}
	if !t.OnRoster(dropKey) {
		return s, fmt.Errorf("%w: %s", ErrNotOnRoster, dropKey)
	}
	if _, ok := stats.Find(s.Pool, addKey); !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, addKey)
	}
	if owner := s.OwnerOf(addKey); owner != -1 {
		return s, fmt.Errorf("%w: %s", ErrPlayerTaken, addKey)
	}

	out := s.Clone()
	nt := &out.Teams[idx]
	nt.Purge(dropKey)
	if len(nt.Bench) < team.MaxBench {
		nt.Bench = append(nt.Bench, addKey)
	} else {
		nt.Active = append(nt.Active, addKey)
	}
	nt.SeasonAddDropsUsed++
	return out, nil
}

// AddActive drafts key straight into the active group.
func AddActive(s league.State, idx int, key string) (league.State, error) {
	if err := checkDraftEdit(s, idx, key); err != nil {
		return s, err
	}
	t := s.Teams[idx]
	if team.Contains(t.Active, key) {
		return s, nil
	}
	if len(t.Active) >= team.MaxActive {
		return s, fmt.Errorf("%w: active group is full", ErrSlotFull)
	}

	out := s.Clone()
	nt := &out.Teams[idx]
	nt.Active = append(nt.Active, key)
	nt.Bench = team.Remove(nt.Bench, key)
	return out, nil
}

// SetBench drafts key onto the bench, moving it out of the active group if needed.
func SetBench(s league.State, idx int, key string) (league.State, error) {
	if err := checkDraftEdit(s, idx, key); err != nil {
		return s, err
	}
	t := s.Teams[idx]
	if team.Contains(t.Bench, key) {
		return s, nil
	}
	if len(t.Bench) >= team.MaxBench {
		return s, fmt.Errorf("%w: bench is full", ErrSlotFull)
	}

	out := s.Clone()
	nt := &out.Teams[idx]
	nt.Bench = append(nt.Bench, key)
	nt.Active = team.Remove(nt.Active, key)
	nt.ActiveByNight.Monday = team.Remove(nt.ActiveByNight.Monday, key)
	nt.ActiveByNight.Friday = team.Remove(nt.ActiveByNight.Friday, key)
	return out, nil
}

// RemoveDrafted takes key off the roster while the draft is still open.
func RemoveDrafted(s league.State, idx int, key string) (league.State, error) {
	if err := checkTeamIndex(idx); err != nil {
		return s, err
	}
	if draft.Complete(s.Teams) {
		return s, ErrRosterFrozen
	}
	t := s.Teams[idx]
	if t.IsCaptain(key) {
		return s, ErrCaptainDrop
	}
	if !t.OnRoster(key) {
		return s, fmt.Errorf("%w: %s", ErrNotOnRoster, key)
	}

	out := s.Clone()
	out.Teams[idx].Purge(key)
	return out, nil
}

func checkDraftEdit(s league.State, idx int, key string) error {
	if err := checkTeamIndex(idx); err != nil {
		return err
	}
	if draft.Complete(s.Teams) {
		return ErrRosterFrozen
	}
	if _, ok := stats.Find(s.Pool, key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, key)
	}
	if owner := s.OwnerOf(key); owner != -1 && owner != idx {
		return fmt.Errorf("%w: %s", ErrPlayerTaken, key)
	}
	return nil
}

func checkTeamIndex(idx int) error {
	if idx < 0 || idx > 1 {
		return fmt.Errorf("%w: index %d", ErrUnknownTeam, idx)
	}
	return nil
}

func equalKeys(a, b []string) bool {
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
