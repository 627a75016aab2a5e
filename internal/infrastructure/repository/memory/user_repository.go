package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/domain/userstate"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[string]user.User, len(users))
	for _, u := range users {
		items[u.ID] = u
	}
	return &UserRepository{items: items}
}

func (r *UserRepository) GetByName(_ context.Context, name string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if strings.EqualFold(u.Name, strings.TrimSpace(name)) {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[userID]
	return u, ok, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[u.ID]; exists {
		return fmt.Errorf("user %s already exists", u.ID)
	}
	r.items[u.ID] = u
	return nil
}

type UserStateRepository struct {
	mu    sync.RWMutex
	items map[string]userstate.State
}

func NewUserStateRepository() *UserStateRepository {
	return &UserStateRepository{items: make(map[string]userstate.State)}
}

func (r *UserStateRepository) Get(_ context.Context, userID string) (userstate.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	if !ok {
		return userstate.State{}, false, nil
	}
	item.StateJSON = append([]byte(nil), item.StateJSON...)
	return item, true, nil
}

func (r *UserStateRepository) Upsert(_ context.Context, state userstate.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state.StateJSON = append([]byte(nil), state.StateJSON...)
	r.items[state.UserID] = state
	return nil
}
