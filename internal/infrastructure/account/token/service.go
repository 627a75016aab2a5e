package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/usecase"
)

const DefaultTTL = 7 * 24 * time.Hour

type Config struct {
	Secret          string
	Issuer          string
	TTL             time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// Service issues and verifies HS256 bearer tokens.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	cache  *principalCache
	now    func() time.Time
}

type claims struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"teamId,omitempty"`
	jwt.RegisteredClaims
}

func NewService(cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CacheMaxEntries <= 0 {
		cfg.CacheMaxEntries = 1024
	}

	return &Service{
		secret: []byte(cfg.Secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    cfg.TTL,
		cache:  newPrincipalCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		now:    time.Now,
	}, nil
}

func (s *Service) Issue(_ context.Context, principal user.Principal) (string, time.Time, error) {
	if strings.TrimSpace(principal.UserID) == "" {
		return "", time.Time{}, fmt.Errorf("principal user id is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:   principal.Name,
		Role:   string(principal.Role),
		TeamID: principal.TeamID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *Service) VerifyAccessToken(_ context.Context, raw string) (user.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	now := s.now()
	key := hashToken(raw)
	if principal, ok := s.cache.Get(key, now); ok {
		return principal, nil
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return user.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		}
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}
	if s.issuer != "" && parsed.Issuer != s.issuer {
		return user.Principal{}, fmt.Errorf("%w: unexpected token issuer", usecase.ErrUnauthorized)
	}

	role := user.Role(parsed.Role)
	if strings.TrimSpace(parsed.Subject) == "" || !role.Valid() {
		return user.Principal{}, fmt.Errorf("%w: invalid token claims", usecase.ErrUnauthorized)
	}

	principal := user.Principal{
		UserID: parsed.Subject,
		Name:   parsed.Name,
		Role:   role,
		TeamID: parsed.TeamID,
	}
	var expiry time.Time
	if parsed.ExpiresAt != nil {
		expiry = parsed.ExpiresAt.Time
	}
	s.cache.Set(key, principal, now, expiry)
	return principal, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
