package match

import (
	"fmt"

	"github.com/DhavalSuthar-24/gully/internal/team"
)

// DismissalInput is the raw dismissal request attached to a wicket
// delivery. Kind is always required; FielderID only for the kinds that
// NeedsFielder reports. DismissedPlayerID defaults to the striker.
type DismissalInput struct {
	Kind              DismissalType `json:"kind"`
	FielderID         *uint         `json:"fielder_id,omitempty"`
	DismissedPlayerID *uint         `json:"dismissed_player_id,omitempty"`
}

var dismissalKinds = map[DismissalType]bool{
	DismissalBowled:       true,
	DismissalCaught:       true,
	DismissalLBW:          true,
	DismissalRunOut:       true,
	DismissalStumped:      true,
	DismissalHitWicket:    true,
	DismissalRetiredHurt:  true,
	DismissalObstructing:  true,
	DismissalHitBallTwice: true,
	DismissalTimedOut:     true,
}

// NeedsFielder reports whether the kind requires the second selection step.
func NeedsFielder(kind DismissalType) bool {
	return kind == DismissalCaught || kind == DismissalRunOut || kind == DismissalStumped
}

// CreditsBowler reports whether the dismissal counts in the bowler's
// wickets column. Only a run out leaves the bowler uncredited; retired
// hurt is not a wicket at all.
func (k DismissalType) CreditsBowler() bool {
	return k != DismissalRunOut && k != DismissalRetiredHurt
}

// OffTheBowling reports the kinds that can only occur off the bowler's
// delivery. A free hit protects the batsman from exactly these.
func (k DismissalType) OffTheBowling() bool {
	switch k {
	case DismissalBowled, DismissalCaught, DismissalLBW,
		DismissalStumped, DismissalHitWicket:
		return true
	}
	return false
}

// resolveDismissal validates the two-step protocol (kind, then fielder
// where applicable) and produces the canonical scorecard text.
func resolveDismissal(in DismissalInput, bowler string, fielding *team.Team) (string, error) {
	if !dismissalKinds[in.Kind] {
		return "", fmt.Errorf("%w: unknown dismissal kind %q", ErrIllegalDelivery, in.Kind)
	}

	var fielder string
	if NeedsFielder(in.Kind) {
		if in.FielderID == nil {
			return "", fmt.Errorf("%w: %s requires a fielder", ErrMissingSelection, in.Kind)
		}
		p := fielding.PlayerByID(*in.FielderID)
		if p == nil {
			return "", fmt.Errorf("%w: fielder is not on the fielding team", ErrIneligiblePlayer)
		}
		fielder = p.Name
	} else if in.FielderID != nil {
		return "", fmt.Errorf("%w: %s does not take a fielder", ErrIllegalDelivery, in.Kind)
	}

	return dismissalText(in.Kind, bowler, fielder), nil
}

// dismissalText formats the canonical description shown on the scorecard.
func dismissalText(kind DismissalType, bowler, fielder string) string {
	switch kind {
	case DismissalBowled:
		return "b " + bowler
	case DismissalCaught:
		return fmt.Sprintf("c %s b %s", fielder, bowler)
	case DismissalLBW:
		return "lbw b " + bowler
	case DismissalRunOut:
		return fmt.Sprintf("run out (%s)", fielder)
	case DismissalStumped:
		return fmt.Sprintf("st %s b %s", fielder, bowler)
	case DismissalHitWicket:
		return "hit wicket b " + bowler
	case DismissalRetiredHurt:
		return "retired hurt"
	case DismissalObstructing:
		return "obstructing the field"
	case DismissalHitBallTwice:
		return "hit the ball twice"
	case DismissalTimedOut:
		return "timed out"
	}
	return string(kind)
}
