package match

import "errors"

// Validation failures reported synchronously to the caller. None are
// retried internally; persistence failures are a separate, non-blocking
// concern handled by the controller.
var (
	// ErrInvalidStateTransition: the action is not legal in the match's
	// current phase (e.g. scoring before openers are selected, or any
	// mutation after completion).
	ErrInvalidStateTransition = errors.New("action not allowed in current match state")

	// ErrIllegalDelivery: the outcome itself is malformed (wide and no-ball
	// together, or a run count that cannot be scored off the bat).
	ErrIllegalDelivery = errors.New("illegal delivery")

	// ErrMissingSelection: a delivery was requested while the striker,
	// non-striker or bowler is unset, or a dismissal needs a fielder that
	// was not supplied.
	ErrMissingSelection = errors.New("required selection is missing")

	// ErrDuplicatePlayerReference: striker and non-striker must differ.
	ErrDuplicatePlayerReference = errors.New("striker and non-striker must be different players")

	// ErrIneligiblePlayer: the referenced player is not on the right team,
	// or is already out for this innings.
	ErrIneligiblePlayer = errors.New("player is not eligible for this selection")

	// ErrNoReplacementAvailable is never surfaced by RecordDelivery itself:
	// a wicket with no eligible replacement ends the innings as all out.
	// SelectReplacementBatsman returns it if asked to fill a slot when
	// nobody can come in.
	ErrNoReplacementAvailable = errors.New("no replacement batsman available")
)
