package lineup

import (
	"fmt"

	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

// UploadReport describes the effect of one stats upload on each team.
type UploadReport struct {
	Night       stats.Night
	Rows        int
	Processed   [2]bool
	FirstUpload [2]bool
	NewlyLocked [2][]string
}

// ApplyUpload ingests one night's stats and locks the players who batted.
//
// Locks are computed from the nightly actives as they stood before the upload.
// The first stats event of a team's week copies that night's lineup onto both
// nights, even when it is empty; later uploads leave nightly lineups as they
// were. Rosters never change.
func ApplyUpload(s league.State, night stats.Night, rows []stats.PlayerTotals, source string) (league.State, UploadReport, error) {
	report := UploadReport{Night: night, Rows: len(rows)}
	if !night.Valid() {
		return s, report, fmt.Errorf("%w: unknown night %q", stats.ErrMalformedUpload, night)
	}

	tagged := make([]stats.PlayerTotals, 0, len(rows))
	played := make([]string, 0, len(rows))
	for _, row := range rows {
		if err := row.Counts.Validate(); err != nil {
			return s, report, fmt.Errorf("%s: %w", row.DisplayName, err)
		}
		row = row.Clone()
		if row.Key == "" {
			row.Key = stats.NormalizeKey(row.DisplayName)
		}
		if !row.HasLeague(night) {
			row.Leagues = append(row.Leagues, night)
		}
		row.Recompute()
		tagged = append(tagged, row)
		played = append(played, row.Key)
	}

	frozen := s.Clone()
	out := s.Clone()

	out.Uploads.Set(night, tagged)
	merged := stats.Merge(out.Uploads.Monday, out.Uploads.Friday)
	out.Pool = stats.ApplyMerged(out.Pool, merged)

	for i := range out.Teams {
		prev := frozen.Teams[i]
		t := &out.Teams[i]
		firstOfWeek := !prev.Processed.Any()

		if !prev.Processed.Get(night) {
			newlyLocked := team.Intersect(prev.ActiveByNight.Get(night), played)
			if prev.CaptainKey != "" {
				newlyLocked = team.Remove(newlyLocked, prev.CaptainKey)
			}
			t.LockedByNight.Set(night, team.Union(prev.LockedByNight.Get(night), newlyLocked))
			t.RecomputeLocked()
			t.Processed.Set(night, true)

			report.Processed[i] = true
			report.NewlyLocked[i] = newlyLocked
		}

		if firstOfWeek {
			declared := team.Cap(prev.ActiveByNight.Get(night), team.MaxActive)
			t.ActiveByNight = team.NightLists{
				Monday: append([]string{}, declared...),
				Friday: append([]string{}, declared...),
			}
			report.FirstUpload[i] = true
		} else {
			t.ActiveByNight = prev.ActiveByNight.Clone()
		}

		t.Active = append([]string{}, prev.Active...)
		t.Bench = append([]string{}, prev.Bench...)
		t.Normalize()
	}

	out.Sources.Set(night, source)
	out.WeeklyHydrated = true
	return out, report, nil
}

// ProcessWithoutUpload marks night processed for every team that has not
// played it yet. No players are locked. It returns how many teams changed.
func ProcessWithoutUpload(s league.State, night stats.Night) (league.State, int, error) {
	if !night.Valid() {
		return s, 0, ErrUnknownNight
	}

	out := s.Clone()
	changed := 0
	for i := range out.Teams {
		if out.Teams[i].Processed.Get(night) {
			continue
		}
		out.Teams[i].Processed.Set(night, true)
		changed++
	}
	return out, changed, nil
}
