package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("component", "engine")

	logger.WarnContext(context.Background(), "swap rejected", "team_id", "t1", "error", errors.New("night locked"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "engine" || fields["team_id"] != "t1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["error"] != "night locked" {
		t.Fatalf("expected named error field, got %v", fields["error"])
	}
}

func TestLogger_OddArgs(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	logger.Info("dangling", "key")
	logger.Debug("filtered")

	if logs.Len() != 1 {
		t.Fatalf("expected debug entry to be filtered, got %d entries", logs.Len())
	}
	if _, ok := logs.All()[0].ContextMap()["key"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG":   LevelDebug,
		" warn ":  LevelWarn,
		"error":   LevelError,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("Sync on nil logger: %v", err)
	}
}

func TestSetMirror_ReceivesEnabledRecords(t *testing.T) {
	core, _ := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	defer SetMirror(nil)

	logger.InfoContext(context.Background(), "night locked", "night", "MON")
	logger.Debug("filtered")

	if len(got) != 1 || got[0] != "info:night locked" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}
