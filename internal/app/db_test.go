package app

import (
	"strings"
	"testing"
)

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		disable bool
		want    string
	}{
		{
			name:    "adds flag",
			raw:     "postgres://league:pw@localhost:5432/slowpitch?sslmode=disable",
			disable: true,
			want:    "postgres://league:pw@localhost:5432/slowpitch?disable_prepared_binary_result=yes&sslmode=disable",
		},
		{
			name:    "keeps explicit value",
			raw:     "postgres://league:pw@localhost:5432/slowpitch?disable_prepared_binary_result=no",
			disable: true,
			want:    "postgres://league:pw@localhost:5432/slowpitch?disable_prepared_binary_result=no",
		},
		{
			name: "toggle off",
			raw:  "postgres://league:pw@localhost:5432/slowpitch",
			want: "postgres://league:pw@localhost:5432/slowpitch",
		},
		{
			name:    "key value dsn untouched",
			raw:     "host=localhost dbname=slowpitch",
			disable: true,
			want:    "host=localhost dbname=slowpitch",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := postgresDSN(tc.raw, tc.disable); got != tc.want {
				t.Fatalf("postgresDSN(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDatabaseName(t *testing.T) {
	tests := map[string]string{
		"postgres://league@localhost:5432/slowpitch?sslmode=disable": "slowpitch",
		"host=localhost user=league dbname='spring_league'":          "spring_league",
		"postgres://league@localhost:5432":                           defaultDBName,
		"":                                                           defaultDBName,
	}
	for raw, want := range tests {
		if got := databaseName(raw); got != want {
			t.Fatalf("databaseName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestTraceQuery(t *testing.T) {
	got := traceQuery("  SELECT id,\n\t name\n FROM players  ")
	if got != "SELECT id, name FROM players" {
		t.Fatalf("unexpected formatted query %q", got)
	}

	long := "SELECT " + strings.Repeat("x", maxTracedQueryLength)
	got = traceQuery(long)
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got length %d", len(got))
	}
}
