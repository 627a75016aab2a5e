package lineup

import (
	"errors"
	"fmt"
)

// ErrPreconditionRejected wraps every rejected lineup or roster edit. A rejected
// edit leaves state untouched.
var ErrPreconditionRejected = errors.New("precondition rejected")

var (
	ErrNightLocked    = fmt.Errorf("%w: night already processed, only the captain can move", ErrPreconditionRejected)
	ErrPlayerLocked   = fmt.Errorf("%w: player is locked for this night", ErrPreconditionRejected)
	ErrNoOpenNight    = fmt.Errorf("%w: no open night left this week", ErrPreconditionRejected)
	ErrNotOnRoster    = fmt.Errorf("%w: player is not on this roster", ErrPreconditionRejected)
	ErrNotActive      = fmt.Errorf("%w: player is not active and the lineup is full", ErrPreconditionRejected)
	ErrAddDropCap     = fmt.Errorf("%w: season add/drop limit reached", ErrPreconditionRejected)
	ErrCaptainDrop    = fmt.Errorf("%w: the captain cannot be dropped", ErrPreconditionRejected)
	ErrRosterFrozen   = fmt.Errorf("%w: rosters are frozen once the draft is complete", ErrPreconditionRejected)
	ErrSlotFull       = fmt.Errorf("%w: no open slot", ErrPreconditionRejected)
	ErrPlayerTaken    = fmt.Errorf("%w: player belongs to another team", ErrPreconditionRejected)
	ErrUnknownPlayer  = fmt.Errorf("%w: player is not in the pool", ErrPreconditionRejected)
	ErrUnknownTeam    = fmt.Errorf("%w: unknown team", ErrPreconditionRejected)
	ErrUnknownNight   = fmt.Errorf("%w: unknown night", ErrPreconditionRejected)
	ErrNightProcessed = fmt.Errorf("%w: night already processed", ErrPreconditionRejected)
	ErrSamePlayer     = fmt.Errorf("%w: players must differ", ErrPreconditionRejected)
)

// Permission rejections.
var (
	ErrReadOnly         = fmt.Errorf("%w: visitors are read-only", ErrPreconditionRejected)
	ErrCommissionerOnly = fmt.Errorf("%w: only the commissioner can do this", ErrPreconditionRejected)
	ErrNotOwner         = fmt.Errorf("%w: only the team owner can do this", ErrPreconditionRejected)
)
