package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get season: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation seasons does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique violation code", func(t *testing.T) {
		err := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("boom")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestDraftInsertModels_KeepPickOrder(t *testing.T) {
	rows := draftInsertModels("s1", []draft.Pick{{TeamID: "t1", PlayerID: "a"}, {TeamID: "t2", PlayerID: "b"}})
	if len(rows) != 2 || rows[0].Position != 0 || rows[1].Position != 1 || rows[1].SeasonID != "s1" {
		t.Fatalf("unexpected draft rows: %+v", rows)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
