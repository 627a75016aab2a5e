package stats

// Counts holds the raw batting line of one player.
type Counts struct {
	PA      int `json:"PA"`
	AB      int `json:"AB"`
	Singles int `json:"singles"`
	Doubles int `json:"doubles"`
	Triples int `json:"triples"`
	HR      int `json:"HR"`
	BB      int `json:"BB"`
	R       int `json:"R"`
	RBI     int `json:"RBI"`
	ROE     int `json:"ROE"`
}

func (c Counts) Hits() int {
	return c.Singles + c.Doubles + c.Triples + c.HR
}

// Out is at-bats that did not end in a hit.
func (c Counts) Out() int {
	return c.AB - c.Hits()
}

func (c Counts) Add(other Counts) Counts {
	return Counts{
		PA:      c.PA + other.PA,
		AB:      c.AB + other.AB,
		Singles: c.Singles + other.Singles,
		Doubles: c.Doubles + other.Doubles,
		Triples: c.Triples + other.Triples,
		HR:      c.HR + other.HR,
		BB:      c.BB + other.BB,
		R:       c.R + other.R,
		RBI:     c.RBI + other.RBI,
		ROE:     c.ROE + other.ROE,
	}
}

func (c Counts) IsZero() bool {
	return c == Counts{}
}

// PlayerTotals is one row of the stat pool, keyed by normalized player name.
type PlayerTotals struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	PlayerID    string  `json:"playerId,omitempty"`
	Leagues     []Night `json:"leagues"`
	Counts
	OUT      int     `json:"OUT"`
	Points   float64 `json:"points"`
	PtsPerPA float64 `json:"ptsPerPA"`
}

// NewPlayerTotals builds a row for a single night and fills derived values.
func NewPlayerTotals(displayName string, night Night, counts Counts) PlayerTotals {
	row := PlayerTotals{
		Key:         NormalizeKey(displayName),
		DisplayName: displayName,
		Counts:      counts,
	}
	if night != "" {
		row.Leagues = []Night{night}
	}
	row.Recompute()
	return row
}

// Recompute refreshes OUT, points and points per plate appearance from the raw counts.
func (p *PlayerTotals) Recompute() {
	p.OUT = p.Counts.Out()
	p.Points = Points(p.Counts)
	p.PtsPerPA = 0
	if p.PA > 0 {
		p.PtsPerPA = p.Points / float64(p.PA)
	}
}

func (p PlayerTotals) HasLeague(night Night) bool {
	for _, n := range p.Leagues {
		if n == night {
			return true
		}
	}
	return false
}

func (p PlayerTotals) Clone() PlayerTotals {
	out := p
	out.Leagues = append([]Night(nil), p.Leagues...)
	return out
}

func CloneRows(rows []PlayerTotals) []PlayerTotals {
	if rows == nil {
		return nil
	}
	out := make([]PlayerTotals, len(rows))
	for i, row := range rows {
		out[i] = row.Clone()
	}
	return out
}
