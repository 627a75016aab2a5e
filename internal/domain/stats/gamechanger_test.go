package stats

import (
	"errors"
	"strings"
	"testing"
)

const gameChangerExport = `,,,Batting,,,,,,,,,,,,Pitching
Number,Last,First,GP,PA,AB,AVG,1B,2B,3B,HR,RBI,R,BB,ROE,TB,IP,HR,BB
7,Lee,Amy,1,4,4,.500,1,1,0,0,2,1,0,0,3,0,0,0
12,Park,Bo,1,3,2,.500,0,0,0,1,1,1,1,1,4,1,3,2
,,,,,,,,,,,,,,,,,,
Totals,,,1,7,6,,1,1,0,1,3,2,1,1,7,1,3,2
`

func TestReadGameChanger(t *testing.T) {
	rows, err := ReadGameChanger(strings.NewReader(gameChangerExport), Friday)
	if err != nil {
		t.Fatalf("ReadGameChanger error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 player rows, got %d", len(rows))
	}

	amy := rows[0]
	if amy.Key != "amy lee" || amy.DisplayName != "Amy Lee" {
		t.Fatalf("unexpected identity: %+v", amy)
	}
	if amy.PA != 4 || amy.AB != 4 || amy.Singles != 1 || amy.Doubles != 1 || amy.RBI != 2 || amy.R != 1 {
		t.Fatalf("unexpected counts: %+v", amy.Counts)
	}
	if len(amy.Leagues) != 1 || amy.Leagues[0] != Friday {
		t.Fatalf("expected row tagged with night, got %v", amy.Leagues)
	}

	bo := rows[1]
	if bo.HR != 1 || bo.BB != 1 || bo.ROE != 1 {
		t.Fatalf("expected batting HR/BB, not pitching columns, got %+v", bo.Counts)
	}
}

func TestParseGameChanger_MissingTB(t *testing.T) {
	records := [][]string{
		{"banner"},
		{"Last", "First", "PA", "AB"},
		{"Lee", "Amy", "3", "3"},
	}

	_, err := ParseGameChanger(records, Monday)
	if !errors.Is(err, ErrMalformedUpload) {
		t.Fatalf("expected malformed upload error, got %v", err)
	}
}

func TestParseGameChanger_MissingRequiredColumn(t *testing.T) {
	records := [][]string{
		{"banner"},
		{"Last", "First", "AB", "1B", "2B", "3B", "HR", "BB", "R", "RBI", "TB"},
		{"Lee", "Amy", "3", "1", "0", "0", "0", "0", "0", "0", "1"},
	}

	rows, err := ParseGameChanger(records, Monday)
	if !errors.Is(err, ErrMalformedUpload) || !strings.Contains(err.Error(), "PA") {
		t.Fatalf("expected malformed upload naming PA, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestParseGameChanger_RejectsImpossibleLine(t *testing.T) {
	records := [][]string{
		{"banner"},
		{"Last", "First", "PA", "AB", "1B", "2B", "3B", "HR", "BB", "R", "RBI", "TB"},
		{"Lee", "Amy", "3", "3", "1", "0", "0", "0", "0", "0", "0", "1"},
		{"Park", "Bo", "4", "3", "0", "0", "0", "4", "0", "0", "0", "16"},
	}

	rows, err := ParseGameChanger(records, Monday)
	if !errors.Is(err, ErrMalformedUpload) {
		t.Fatalf("expected malformed upload error, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no rows on rejected upload, got %d", len(rows))
	}
}

func TestParseGameChanger_LenientNumbers(t *testing.T) {
	records := [][]string{
		{"banner"},
		{"Last", "First", "PA", "AB", "1B", "2B", "3B", "HR", "BB", "R", "RBI", "TB"},
		{"", "Solo", "n/a", "2", "1", "", "", "", "", "", "", "1"},
	}

	rows, err := ParseGameChanger(records, Monday)
	if err != nil {
		t.Fatalf("ParseGameChanger error: %v", err)
	}
	if len(rows) != 1 || rows[0].DisplayName != "Solo" || rows[0].PA != 0 || rows[0].ROE != 0 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestParseGameChanger_TooShort(t *testing.T) {
	rows, err := ParseGameChanger([][]string{{"banner"}, {"TB"}}, Monday)
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected empty result, got rows=%v err=%v", rows, err)
	}
}
