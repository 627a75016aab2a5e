package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/outbox"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/engine"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	headerStyle  = cellStyle.Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
)

func heading(w io.Writer, text string) {
	fmt.Fprintln(w, headingStyle.Render(text))
}

func newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	return t
}

func printTable(w io.Writer, t *table.Table) {
	fmt.Fprintln(w, t.Render())
}

// names renders pool keys as display names in list order.
func names(s league.State, keys []string) string {
	if len(keys) == 0 {
		return mutedStyle.Render("-")
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, displayName(s, key))
	}
	return strings.Join(out, ", ")
}

func displayName(s league.State, key string) string {
	if row, ok := stats.Find(s.Pool, key); ok && row.DisplayName != "" {
		return row.DisplayName
	}
	return key
}

func teamLabel(t team.Team, idx int) string {
	if t.Owner != "" {
		return t.Owner
	}
	if t.ID != "" {
		return t.ID
	}
	return fmt.Sprintf("Team %d", idx+1)
}

func renderStatus(w io.Writer, s league.State, p user.Principal, pending []outbox.Command) {
	heading(w, "League")
	summary := newTable().
		Row("season", orDash(s.SeasonID)).
		Row("week", fmt.Sprint(s.Week)).
		Row("signed in", principalLabel(p)).
		Row("pool", fmt.Sprintf("%d players", len(s.Pool)))
	for _, n := range stats.Nights {
		summary.Row(string(n)+" upload", orDash(s.Sources.Get(n)))
	}
	if s.IsWeekComplete() {
		summary.Row("week state", okStyle.Render("complete, ready to finalize"))
	}
	printTable(w, summary)

	weekly := s.WeeklyScores()
	for i, t := range s.Teams {
		fmt.Fprintln(w)
		heading(w, fmt.Sprintf("%s (%.1f pts this week)", teamLabel(t, i), weekly[i]))
		roster := newTable().
			Row("captain", names(s, nonEmpty(t.CaptainKey)), "").
			Row("active", names(s, t.Active), "").
			Row("bench", names(s, t.Bench), "")
		for _, n := range stats.Nights {
			state := "open"
			if t.Processed.Get(n) {
				state = "processed"
			}
			roster.Row(string(n), names(s, t.ActiveByNight.Get(n)), mutedStyle.Render(state))
		}
		roster.
			Row("locked", names(s, t.Locked), "").
			Row("add/drops", fmt.Sprintf("%d of %d", t.SeasonAddDropsUsed, team.MaxAddDrops), "")
		printTable(w, roster)
	}

	fmt.Fprintln(w)
	renderOutbox(w, pending)
}

func renderOutbox(w io.Writer, pending []outbox.Command) {
	heading(w, "Outbox")
	if len(pending) == 0 {
		fmt.Fprintln(w, okStyle.Render("nothing queued"))
		return
	}
	tbl := newTable("status", "command", "attempts", "last error")
	for _, cmd := range pending {
		status := warnStyle.Render(string(cmd.Status))
		if cmd.Status == outbox.StatusFailed {
			status = errorStyle.Render(string(cmd.Status))
		}
		tbl.Row(status, cmd.String(), fmt.Sprint(cmd.Attempts), orDash(cmd.LastError))
	}
	printTable(w, tbl)
}

func renderSync(w io.Writer, report engine.SyncReport) {
	if report.NoSeason {
		fmt.Fprintln(w, warnStyle.Render("no active season on the server"))
		return
	}
	if report.Stale {
		fmt.Fprintln(w, warnStyle.Render("local state changed during sync, run sync again"))
		return
	}

	stages := make([]string, 0, len(report.Completed))
	for _, st := range report.Completed {
		stages = append(stages, string(st))
	}
	fmt.Fprintf(w, "season %s week %d: %s\n", report.SeasonID, report.Week, okStyle.Render(strings.Join(stages, " > ")))
	if report.SeasonLocked {
		fmt.Fprintln(w, warnStyle.Render("season is locked on the server"))
	}
	if report.WaitingOn != "" {
		fmt.Fprintln(w, warnStyle.Render("waiting on "+report.WaitingOn))
	}
	if hydrated := report.Lineups; len(hydrated.Applied)+len(hydrated.Seeded)+len(hydrated.Skipped) > 0 {
		fmt.Fprintf(w, "lineups: %d applied, %d seeded, %d kept local\n", len(hydrated.Applied), len(hydrated.Seeded), len(hydrated.Skipped))
	}
	for _, v := range report.Violations {
		fmt.Fprintln(w, errorStyle.Render("invariant: "+v.String()))
	}
}

func renderUpload(w io.Writer, s league.State, report lineup.UploadReport) {
	fmt.Fprintf(w, "%s: %d stat rows\n", report.Night, report.Rows)
	tbl := newTable("team", "state", "newly locked")
	for i, t := range s.Teams {
		state := mutedStyle.Render("already processed")
		if report.Processed[i] {
			state = okStyle.Render("processed")
		}
		tbl.Row(teamLabel(t, i), state, names(s, report.NewlyLocked[i]))
	}
	printTable(w, tbl)
}

func renderWeek(w io.Writer, s league.State, result score.WeekResult) {
	heading(w, fmt.Sprintf("Week %d final", result.Week))
	tbl := newTable("team", "points")
	for i, t := range s.Teams {
		tbl.Row(teamLabel(t, i), fmt.Sprintf("%.1f", result.Scores[i]))
	}
	printTable(w, tbl)
}

func renderStandings(w io.Writer, s league.State) {
	heading(w, "Standings")
	tbl := newTable("team", "W-L-T", "total")
	for _, st := range score.Standings(s.History, s.Teams) {
		label := st.Owner
		if label == "" {
			label = orDash(st.TeamID)
		}
		tbl.Row(label, fmt.Sprintf("%d-%d-%d", st.Record.Wins, st.Record.Losses, st.Record.Ties), fmt.Sprintf("%.1f", st.Total))
	}
	printTable(w, tbl)

	if len(s.History) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading(w, "History")
	history := newTable("week", teamLabel(s.Teams[0], 0), teamLabel(s.Teams[1], 1))
	for _, week := range s.History {
		history.Row(fmt.Sprint(week.Week), fmt.Sprintf("%.1f", week.Scores[0]), fmt.Sprintf("%.1f", week.Scores[1]))
	}
	printTable(w, history)
}

func renderPlayers(w io.Writer, s league.State, rows []stats.PlayerTotals) {
	tbl := newTable("player", "team", "leagues", "PA", "pts", "pts/PA")
	for _, row := range rows {
		owner := mutedStyle.Render("free")
		if idx := s.OwnerOf(row.Key); idx >= 0 {
			owner = teamLabel(s.Teams[idx], idx)
		}
		leagues := make([]string, 0, len(row.Leagues))
		for _, n := range row.Leagues {
			leagues = append(leagues, string(n))
		}
		tbl.Row(row.DisplayName, owner, orDash(strings.Join(leagues, "+")), fmt.Sprint(row.PA), fmt.Sprintf("%.1f", row.Points), fmt.Sprintf("%.2f", row.PtsPerPA))
	}
	printTable(w, tbl)
}

func (c *cli) printFlush(report engine.FlushReport) {
	if report == (engine.FlushReport{}) {
		return
	}
	line := fmt.Sprintf("delivered %d", report.Delivered)
	if report.Retrying > 0 {
		line += warnStyle.Render(fmt.Sprintf(", %d will retry", report.Retrying))
	}
	if report.Failed > 0 {
		line += errorStyle.Render(fmt.Sprintf(", %d failed (see league status)", report.Failed))
	}
	fmt.Fprintln(c.out, line)
}

func principalLabel(p user.Principal) string {
	if p.UserID == "" {
		return mutedStyle.Render("nobody (read only)")
	}
	label := fmt.Sprintf("%s (%s)", p.Name, p.Role)
	if p.TeamID != "" {
		label += " team " + p.TeamID
	}
	return label
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func nonEmpty(key string) []string {
	if key == "" {
		return nil
	}
	return []string{key}
}
