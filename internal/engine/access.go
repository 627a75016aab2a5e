package engine

import (
	"github.com/riskibarqy/slowpitch-league/internal/domain/league"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

// BoundTeam returns the index of the team p manages: the team named by the
// principal's binding, else the team p owns. It returns -1 when p runs no team.
func BoundTeam(p user.Principal, teams [2]team.Team) int {
	if p.TeamID != "" {
		for i, t := range teams {
			if t.ID == p.TeamID {
				return i
			}
		}
	}
	if p.UserID != "" {
		for i, t := range teams {
			if t.OwnerUserID == p.UserID {
				return i
			}
		}
	}
	return -1
}

func requireWriter(p user.Principal) error {
	if !p.CanWrite() {
		return lineup.ErrReadOnly
	}
	return nil
}

func requireCommissioner(p user.Principal) error {
	if err := requireWriter(p); err != nil {
		return err
	}
	if !p.IsCommissioner() {
		return lineup.ErrCommissionerOnly
	}
	return nil
}

func requireOwner(p user.Principal, s league.State, idx int) error {
	if err := requireWriter(p); err != nil {
		return err
	}
	if BoundTeam(p, s.Teams) != idx {
		return lineup.ErrNotOwner
	}
	return nil
}

func requireOwnerOrCommissioner(p user.Principal, s league.State, idx int) error {
	if err := requireWriter(p); err != nil {
		return err
	}
	if p.IsCommissioner() {
		return nil
	}
	return requireOwner(p, s, idx)
}
