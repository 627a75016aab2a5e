package score

import (
	"sort"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

// WeekResult is a finalized week. History entries are append-only.
type WeekResult struct {
	Week        int         `json:"week"`
	Scores      [2]float64  `json:"scores"`
	Locked      [2][]string `json:"locked"`
	ProcessedAt time.Time   `json:"processedAt"`
}

// TeamScore is one team's score for one week as stored by the server.
type TeamScore struct {
	SeasonID string  `json:"seasonId,omitempty"`
	Week     int     `json:"week,omitempty"`
	TeamID   string  `json:"teamId"`
	Score    float64 `json:"score"`
}

// Record is a team's win/loss/tie tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// WeeklyScore sums points of nightly actives who batted, over processed nights only.
func WeeklyScore(t team.Team, pool []stats.PlayerTotals) float64 {
	index := stats.IndexByKey(pool)
	total := 0.0
	for _, night := range stats.Nights {
		if !t.Processed.Get(night) {
			continue
		}
		for _, key := range team.Dedupe(t.ActiveByNight.Get(night)) {
			pos, ok := index[key]
			if !ok || pool[pos].PA <= 0 {
				continue
			}
			total += pool[pos].Points
		}
	}
	return total
}

// RecordFor tallies results for the team at idx.
func RecordFor(history []WeekResult, idx int) Record {
	out := Record{}
	if idx < 0 || idx > 1 {
		return out
	}
	opp := 1 - idx
	for _, w := range history {
		switch {
		case w.Scores[idx] > w.Scores[opp]:
			out.Wins++
		case w.Scores[idx] < w.Scores[opp]:
			out.Losses++
		default:
			out.Ties++
		}
	}
	return out
}

// SeasonTotals sums each team's weekly scores.
func SeasonTotals(history []WeekResult) [2]float64 {
	var out [2]float64
	for _, w := range history {
		out[0] += w.Scores[0]
		out[1] += w.Scores[1]
	}
	return out
}

// HistoryFromWeeks converts the server's week -> {teamId: score} map into
// ordered results. Locks and timestamps are taken from local entries of the same week.
func HistoryFromWeeks(byWeek map[int]map[string]float64, teamIDs [2]string, local []WeekResult) []WeekResult {
	localByWeek := make(map[int]WeekResult, len(local))
	for _, w := range local {
		localByWeek[w.Week] = w
	}

	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	out := make([]WeekResult, 0, len(weeks))
	for _, week := range weeks {
		scores := byWeek[week]
		entry := WeekResult{
			Week:   week,
			Scores: [2]float64{scores[teamIDs[0]], scores[teamIDs[1]]},
			Locked: [2][]string{{}, {}},
		}
		if prev, ok := localByWeek[week]; ok {
			entry.Locked = prev.Locked
			entry.ProcessedAt = prev.ProcessedAt
		}
		out = append(out, entry)
	}
	return out
}

// TeamScores flattens a week result into per-team rows for the server.
func TeamScores(result WeekResult, teamIDs [2]string) []TeamScore {
	return []TeamScore{
		{Week: result.Week, TeamID: teamIDs[0], Score: result.Scores[0]},
		{Week: result.Week, TeamID: teamIDs[1], Score: result.Scores[1]},
	}
}

// Standing is one team's line in the season table.
type Standing struct {
	TeamID string  `json:"teamId"`
	Owner  string  `json:"owner"`
	Record Record  `json:"record"`
	Total  float64 `json:"total"`
}

// Standings ranks both teams by wins, then by season total.
func Standings(history []WeekResult, teams [2]team.Team) []Standing {
	totals := SeasonTotals(history)
	out := make([]Standing, 0, len(teams))
	for i, t := range teams {
		out = append(out, Standing{
			TeamID: t.ID,
			Owner:  t.Owner,
			Record: RecordFor(history, i),
			Total:  totals[i],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Record.Wins != out[j].Record.Wins {
			return out[i].Record.Wins > out[j].Record.Wins
		}
		return out[i].Total > out[j].Total
	})
	return out
}
