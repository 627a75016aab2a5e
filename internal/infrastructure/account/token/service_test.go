package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/usecase"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()

	svc, err := NewService(Config{Secret: "test-secret", Issuer: "slowpitch-league", CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	in := user.Principal{UserID: "user-nora", Name: "Nora", Role: user.RolePlayer, TeamID: "team-north"}
	raw, expiresAt, err := svc.Issue(context.Background(), in)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if !expiresAt.Equal(now.Add(DefaultTTL)) {
		t.Fatalf("unexpected expiry %s", expiresAt)
	}

	got, err := svc.VerifyAccessToken(context.Background(), raw)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if got != in {
		t.Fatalf("principal mismatch: got %+v want %+v", got, in)
	}
}

func TestService_VerifyRejects(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestService(t, now)
	raw, _, err := issuer.Issue(context.Background(), user.Principal{UserID: "user-sam", Role: user.RoleCommissioner})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	other, err := NewService(Config{Secret: "other-secret", Issuer: "slowpitch-league"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	other.now = func() time.Time { return now }

	later := newTestService(t, now.Add(DefaultTTL+time.Minute))

	tests := []struct {
		name  string
		svc   *Service
		token string
	}{
		{name: "empty", svc: issuer, token: "  "},
		{name: "garbage", svc: issuer, token: "not-a-jwt"},
		{name: "wrong secret", svc: other, token: raw},
		{name: "expired", svc: later, token: raw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.VerifyAccessToken(context.Background(), tt.token)
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestNewService_RequiresSecret(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
