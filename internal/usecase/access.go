package usecase

import (
	"fmt"

	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

func requireWriter(p user.Principal) error {
	if p.UserID == "" {
		return fmt.Errorf("%w: principal is required", ErrUnauthorized)
	}
	if !p.CanWrite() {
		return fmt.Errorf("%w: role %s is read-only", ErrForbidden, p.Role)
	}
	return nil
}

func requireCommissioner(p user.Principal) error {
	if err := requireWriter(p); err != nil {
		return err
	}
	if !p.IsCommissioner() {
		return fmt.Errorf("%w: commissioner role required", ErrForbidden)
	}
	return nil
}
