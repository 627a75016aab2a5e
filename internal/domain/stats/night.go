package stats

import (
	"fmt"
	"strings"
)

// Night identifies one of the two weekly games.
type Night string

const (
	Monday Night = "MON"
	Friday Night = "FRI"
)

// Nights lists the weekly games in schedule order.
var Nights = []Night{Monday, Friday}

func (n Night) Valid() bool {
	return n == Monday || n == Friday
}

// Other returns the opposite night of the week.
func (n Night) Other() Night {
	if n == Monday {
		return Friday
	}
	return Monday
}

// ParseNight accepts MON/FRI as well as full day names, case-insensitively.
func ParseNight(raw string) (Night, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MON", "MONDAY":
		return Monday, nil
	case "FRI", "FRIDAY":
		return Friday, nil
	default:
		return "", fmt.Errorf("unknown night %q", raw)
	}
}
