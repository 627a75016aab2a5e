package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
)

const maxSuggestions = 4

type candidate struct {
	Key  string
	Name string
}

func poolCandidates(s league.State) []candidate {
	out := make([]candidate, 0, len(s.Pool))
	for _, row := range s.Pool {
		out = append(out, candidate{Key: row.Key, Name: row.DisplayName})
	}
	return out
}

func rosterCandidates(s league.State, t team.Team) []candidate {
	roster := t.Roster()
	out := make([]candidate, 0, len(roster))
	for _, key := range roster {
		out = append(out, candidate{Key: key, Name: displayName(s, key)})
	}
	return out
}

// resolveKey turns what the user typed into a pool key. An exact key match
// wins; otherwise the single closest fuzzy match is used.
func resolveKey(cands []candidate, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("player name is required")
	}

	want := stats.NormalizeKey(query)
	for _, c := range cands {
		if c.Key == want {
			return c.Key, nil
		}
	}

	targets := make([]string, len(cands))
	for i, c := range cands {
		targets[i] = c.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	if len(ranks) == 0 {
		return "", fmt.Errorf("no player matches %q", query)
	}
	sort.Stable(ranks)

	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		suggestions := make([]string, 0, maxSuggestions)
		for i := 0; i < len(ranks) && i < maxSuggestions; i++ {
			suggestions = append(suggestions, ranks[i].Target)
		}
		return "", fmt.Errorf("%q is ambiguous: %s", query, strings.Join(suggestions, ", "))
	}
	return cands[ranks[0].OriginalIndex].Key, nil
}

// rankPool orders pool rows by fuzzy closeness to query, or by points when query is empty.
func rankPool(pool []stats.PlayerTotals, query string) []stats.PlayerTotals {
	query = strings.TrimSpace(query)
	if query == "" {
		out := stats.CloneRows(pool)
		stats.SortByPoints(out)
		return out
	}

	targets := make([]string, len(pool))
	for i, row := range pool {
		targets[i] = row.DisplayName
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	out := make([]stats.PlayerTotals, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, pool[r.OriginalIndex])
	}
	return out
}

// resolveTeam accepts a team id or owner name.
func resolveTeam(s league.State, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for i, t := range s.Teams {
		if t.ID != "" && t.ID == raw {
			return t.ID, nil
		}
		if t.Owner != "" && strings.EqualFold(t.Owner, raw) {
			if t.ID == "" {
				return "", fmt.Errorf("team %d has no id yet: run league sync", i+1)
			}
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("unknown team %q", raw)
}
