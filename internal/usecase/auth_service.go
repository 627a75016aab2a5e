package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(ctx context.Context, principal user.Principal) (string, time.Time, error)
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal user.Principal
}

type AuthService struct {
	userRepo user.Repository
	issuer   TokenIssuer
}

func NewAuthService(userRepo user.Repository, issuer TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, issuer: issuer}
}

// Login checks a name (case-insensitive) and PIN and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, name, pin string) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	name = strings.TrimSpace(name)
	pin = strings.TrimSpace(pin)
	if name == "" || pin == "" {
		return LoginResult{}, fmt.Errorf("%w: name and pin are required", ErrInvalidInput)
	}

	u, exists, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return LoginResult{}, fmt.Errorf("get user by name: %w", err)
	}
	if !exists {
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return LoginResult{}, fmt.Errorf("compare pin hash: %w", err)
	}

	principal := PrincipalOf(u)
	token, expiresAt, err := s.issuer.Issue(ctx, principal)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: token, ExpiresAt: expiresAt, Principal: principal}, nil
}

func PrincipalOf(u user.User) user.Principal {
	return user.Principal{
		UserID: u.ID,
		Name:   u.Name,
		Role:   u.Role,
		TeamID: u.TeamID,
	}
}

// HashPin returns the bcrypt hash stored for a PIN.
func HashPin(pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return "", fmt.Errorf("%w: pin is required", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}
