package user

import "time"

// Role controls what a signed-in user may change.
type Role string

const (
	RoleCommissioner Role = "commissioner"
	RolePlayer       Role = "player"
	RoleVisitor      Role = "visitor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCommissioner, RolePlayer, RoleVisitor:
		return true
	}
	return false
}

// User is a league member who can sign in with a name and PIN.
type User struct {
	ID        string
	Name      string
	PinHash   string
	Role      Role
	TeamID    string
	CreatedAt time.Time
}

// Principal is the authenticated caller.
type Principal struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	TeamID string `json:"teamId,omitempty"`
}

func (p Principal) IsCommissioner() bool {
	return p.Role == RoleCommissioner
}

// CanWrite reports whether the caller may mutate league state.
func (p Principal) CanWrite() bool {
	return p.UserID != "" && p.Role != RoleVisitor
}
