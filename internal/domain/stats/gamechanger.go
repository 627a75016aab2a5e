package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	gameChangerHeaderRow = 1
	gameChangerFirstData = 2
	gameChangerLastCol   = "TB"
)

var gameChangerRequired = []string{"First", "Last", "PA", "AB", "1B", "2B", "3B", "HR", "BB", "R", "RBI"}

// ReadGameChanger tokenizes a GameChanger season-stats export and decodes it for night.
func ReadGameChanger(r io.Reader, night Night) ([]PlayerTotals, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %v", ErrMalformedUpload, err)
	}
	return ParseGameChanger(records, night)
}

// ParseGameChanger decodes batting rows from a GameChanger export.
// Row 0 is a banner, row 1 the header, and players start at row 2.
// Every row is validated before anything is returned.
func ParseGameChanger(records [][]string, night Night) ([]PlayerTotals, error) {
	if !night.Valid() {
		return nil, fmt.Errorf("%w: unknown night %q", ErrMalformedUpload, night)
	}
	if len(records) <= gameChangerFirstData {
		return nil, nil
	}

	columns, err := battingColumns(records[gameChangerHeaderRow])
	if err != nil {
		return nil, err
	}

	out := make([]PlayerTotals, 0, len(records)-gameChangerFirstData)
	for i, record := range records[gameChangerFirstData:] {
		if blankRecord(record) {
			continue
		}

		first := columns.text(record, "First")
		last := columns.text(record, "Last")
		name := first
		if last != "" {
			name = first + " " + last
		}
		name = strings.TrimSpace(name)
		if name == "" || isSummaryRow(name) {
			continue
		}

		counts := Counts{
			PA:      columns.number(record, "PA"),
			AB:      columns.number(record, "AB"),
			Singles: columns.number(record, "1B"),
			Doubles: columns.number(record, "2B"),
			Triples: columns.number(record, "3B"),
			HR:      columns.number(record, "HR"),
			BB:      columns.number(record, "BB"),
			R:       columns.number(record, "R"),
			RBI:     columns.number(record, "RBI"),
			ROE:     columns.number(record, "ROE"),
		}
		if err := counts.Validate(); err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+gameChangerFirstData+1, name, err)
		}

		out = append(out, NewPlayerTotals(name, night, counts))
	}

	return out, nil
}

type headerMap map[string]int

// battingColumns indexes the header names up to and including TB.
// Fielding and pitching blocks repeat names after that point. ROE is optional.
func battingColumns(header []string) (headerMap, error) {
	tb := -1
	for i, h := range header {
		if strings.TrimSpace(h) == gameChangerLastCol {
			tb = i
			break
		}
	}
	if tb == -1 {
		return nil, fmt.Errorf("%w: TB column not found, not a GameChanger batting export", ErrMalformedUpload)
	}

	columns := make(headerMap, tb+1)
	for i, h := range header[:tb+1] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, exists := columns[h]; !exists {
			columns[h] = i
		}
	}

	missing := make([]string, 0)
	for _, name := range gameChangerRequired {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing batting columns %s", ErrMalformedUpload, strings.Join(missing, ", "))
	}
	return columns, nil
}

func (m headerMap) text(record []string, column string) string {
	i, ok := m[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// number decodes a counting stat. Blank or non-numeric cells count as zero.
func (m headerMap) number(record []string, column string) int {
	raw := m.text(record, column)
	if raw == "" {
		return 0
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isSummaryRow(name string) bool {
	switch strings.ToLower(name) {
	case "totals", "team totals", "glossary":
		return true
	}
	return false
}
