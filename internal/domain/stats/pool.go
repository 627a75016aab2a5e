package stats

import (
	"sort"
	"strings"
)

// DirectoryEntry is one player known to the remote player directory.
type DirectoryEntry struct {
	PlayerID string
	Name     string
}

// NormalizeKey turns a display name into the pool key.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Merge combines the two night buckets into one row per player.
// Raw counts are summed and derived values recomputed; the result is ranked by points.
func Merge(mon, fri []PlayerTotals) []PlayerTotals {
	index := make(map[string]int, len(mon)+len(fri))
	out := make([]PlayerTotals, 0, len(mon)+len(fri))

	add := func(rows []PlayerTotals) {
		for _, row := range rows {
			key := row.Key
			if key == "" {
				key = NormalizeKey(row.DisplayName)
			}
			if key == "" {
				continue
			}

			pos, ok := index[key]
			if !ok {
				merged := row.Clone()
				merged.Key = key
				merged.Recompute()
				index[key] = len(out)
				out = append(out, merged)
				continue
			}

			current := &out[pos]
			current.Counts = current.Counts.Add(row.Counts)
			for _, night := range row.Leagues {
				if !current.HasLeague(night) {
					current.Leagues = append(current.Leagues, night)
				}
			}
			if current.PlayerID == "" {
				current.PlayerID = row.PlayerID
			}
			current.Recompute()
		}
	}
	add(mon)
	add(fri)

	SortByPoints(out)
	return out
}

// SortByPoints orders rows by points descending, keeping input order for ties.
func SortByPoints(rows []PlayerTotals) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
}

// SeedPool adds directory players to the pool as zero-stat rows.
// Existing rows keep their stats; only a missing player id is filled in.
func SeedPool(pool []PlayerTotals, directory []DirectoryEntry) []PlayerTotals {
	out := CloneRows(pool)
	index := IndexByKey(out)

	for _, entry := range directory {
		key := NormalizeKey(entry.Name)
		if key == "" {
			continue
		}
		if pos, ok := index[key]; ok {
			if out[pos].PlayerID == "" {
				out[pos].PlayerID = entry.PlayerID
			}
			continue
		}

		row := NewPlayerTotals(strings.TrimSpace(entry.Name), "", Counts{})
		row.PlayerID = entry.PlayerID
		index[key] = len(out)
		out = append(out, row)
	}
	return out
}

// ApplyMerged writes merged upload totals onto the pool.
// Pool rows missing from the merge are zeroed, unknown merged rows are appended.
func ApplyMerged(pool, merged []PlayerTotals) []PlayerTotals {
	mergedIndex := IndexByKey(merged)
	out := make([]PlayerTotals, 0, len(pool)+len(merged))
	seen := make(map[string]struct{}, len(pool))

	for _, row := range pool {
		seen[row.Key] = struct{}{}
		pos, ok := mergedIndex[row.Key]
		if !ok {
			zeroed := PlayerTotals{
				Key:         row.Key,
				DisplayName: row.DisplayName,
				PlayerID:    row.PlayerID,
			}
			zeroed.Recompute()
			out = append(out, zeroed)
			continue
		}

		updated := merged[pos].Clone()
		if updated.PlayerID == "" {
			updated.PlayerID = row.PlayerID
		}
		out = append(out, updated)
	}

	for _, row := range merged {
		if _, ok := seen[row.Key]; ok {
			continue
		}
		out = append(out, row.Clone())
	}

	SortByPoints(out)
	return out
}

func IndexByKey(rows []PlayerTotals) map[string]int {
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		if _, exists := index[row.Key]; !exists {
			index[row.Key] = i
		}
	}
	return index
}

// KeysByPlayerID maps remote player ids to pool keys.
func KeysByPlayerID(rows []PlayerTotals) map[string]string {
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.PlayerID != "" {
			out[row.PlayerID] = row.Key
		}
	}
	return out
}

// Find returns the pool row for key.
func Find(rows []PlayerTotals, key string) (PlayerTotals, bool) {
	for _, row := range rows {
		if row.Key == key {
			return row, true
		}
	}
	return PlayerTotals{}, false
}
