package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/outbox"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
)

func TestRenderStandings(t *testing.T) {
	s := league.Empty()
	s.Teams[0].ID, s.Teams[0].Owner = "t1", "Nora"
	s.Teams[1].ID, s.Teams[1].Owner = "t2", "Sam"
	s.History = []score.WeekResult{{Week: 1, Scores: [2]float64{10, 5}}}

	out := &bytes.Buffer{}
	renderStandings(out, s)

	text := out.String()
	for _, want := range []string{"Standings", "History", "Nora", "Sam", "1-0-0", "0-1-0", "10.0", "╭"} {
		if !strings.Contains(text, want) {
			t.Fatalf("standings output missing %q:\n%s", want, text)
		}
	}
}

func TestRenderOutbox(t *testing.T) {
	out := &bytes.Buffer{}
	renderOutbox(out, []outbox.Command{{
		ID:        "c1",
		Kind:      outbox.KindAdvanceWeek,
		SeasonID:  "s1",
		Week:      2,
		Status:    outbox.StatusFailed,
		Attempts:  3,
		LastError: "server said no",
	}})

	text := out.String()
	for _, want := range []string{"Outbox", "failed", "server said no", "attempts"} {
		if !strings.Contains(text, want) {
			t.Fatalf("outbox output missing %q:\n%s", want, text)
		}
	}
}
