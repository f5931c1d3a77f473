package combat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFacing is returned for facing indexes outside 0..5.
	ErrInvalidFacing = errors.New("invalid facing")

	// ErrWrongPhase rejects an action attempted outside its phase.
	ErrWrongPhase = errors.New("action not legal in current phase")

	// ErrNotYourTurn rejects an action by a ship that is not the acting ship.
	ErrNotYourTurn = errors.New("not this ship's activation")

	// ErrNoMovementPoints rejects movement beyond the activation budget.
	ErrNoMovementPoints = errors.New("no movement points remaining")

	// ErrMustMoveFirst rejects a turn before the ship has moved this activation.
	ErrMustMoveFirst = errors.New("must move before turning")

	// ErrBlocked rejects a move into an occupied hex.
	ErrBlocked = errors.New("destination blocked")

	// ErrOutOfArena rejects a move past the arena boundary.
	ErrOutOfArena = errors.New("destination outside arena")

	// ErrShipDisabled rejects offensive actions by a hull-zero ship.
	ErrShipDisabled = errors.New("ship is disabled")

	// ErrUnknownShip is returned for a ship ID not in the roster.
	ErrUnknownShip = errors.New("unknown ship")

	// ErrInvalidTarget rejects targeting a friendly, dead, or out-of-range ship.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrPowerAllocation rejects a reallocation that breaks the power budget.
	ErrPowerAllocation = errors.New("invalid power allocation")

	// ErrUnknownWeapon is returned for a mount name not on the ship.
	ErrUnknownWeapon = errors.New("unknown weapon mount")

	// ErrWeaponNotReady rejects firing a mount that is still cooling down.
	ErrWeaponNotReady = errors.New("weapon not ready")

	// ErrNoAmmo rejects firing a torpedo launcher with empty magazines.
	ErrNoAmmo = errors.New("no ammunition remaining")

	// ErrOutOfArc rejects firing a mount whose arcs do not bear on the target.
	ErrOutOfArc = errors.New("target outside firing arc")

	// ErrOutOfRange rejects firing at a target beyond the weapon's reach.
	ErrOutOfRange = errors.New("target out of range")

	// ErrEncounterOver rejects actions after combat has terminated.
	ErrEncounterOver = errors.New("encounter is over")

	// ErrBadRoster is the encounter-level fatal setup condition.
	ErrBadRoster = errors.New("invalid encounter roster")
)

// ActionError wraps a rejected action with the ship it was rejected for,
// so the transport layer can surface a discardable per-ship message.
type ActionError struct {
	Ship   ShipID
	Reason error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("ship %s: %v", e.Ship, e.Reason)
}

func (e *ActionError) Unwrap() error { return e.Reason }

func reject(id ShipID, reason error) error {
	return &ActionError{Ship: id, Reason: reason}
}
