package usecase

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/domain/userstate"
)

const maxStateBytes = 2 << 20

// StateService keeps one opaque client snapshot per user.
type StateService struct {
	stateRepo userstate.Repository
	now       func() time.Time
}

func NewStateService(stateRepo userstate.Repository) *StateService {
	return &StateService{stateRepo: stateRepo, now: time.Now}
}

func (s *StateService) Get(ctx context.Context, principal user.Principal) (userstate.State, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StateService.Get")
	defer span.End()

	if principal.UserID == "" {
		return userstate.State{}, false, fmt.Errorf("%w: principal is required", ErrUnauthorized)
	}
	item, exists, err := s.stateRepo.Get(ctx, principal.UserID)
	if err != nil {
		return userstate.State{}, false, fmt.Errorf("get user state: %w", err)
	}
	return item, exists, nil
}

func (s *StateService) Save(ctx context.Context, principal user.Principal, raw []byte) (userstate.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StateService.Save")
	defer span.End()

	if err := requireWriter(principal); err != nil {
		return userstate.State{}, err
	}
	if len(raw) == 0 {
		return userstate.State{}, fmt.Errorf("%w: state is required", ErrInvalidInput)
	}
	if len(raw) > maxStateBytes {
		return userstate.State{}, fmt.Errorf("%w: state exceeds %d bytes", ErrInvalidInput, maxStateBytes)
	}
	if !sonic.Valid(raw) {
		return userstate.State{}, fmt.Errorf("%w: state must be valid JSON", ErrInvalidInput)
	}

	item := userstate.State{
		UserID:    principal.UserID,
		StateJSON: append([]byte(nil), raw...),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.stateRepo.Upsert(ctx, item); err != nil {
		return userstate.State{}, fmt.Errorf("upsert user state: %w", err)
	}
	return item, nil
}
