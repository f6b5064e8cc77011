package match

import "fmt"

// Outcome is the requested result of one delivery, as entered by the
// scorer. Runs means runs off the bat for a normal ball or no-ball, and
// bonus (bye-like) runs for a wide.
type Outcome struct {
	Runs      int             `json:"runs"`
	IsWide    bool            `json:"is_wide"`
	IsNoBall  bool            `json:"is_no_ball"`
	IsWicket  bool            `json:"is_wicket"`
	Dismissal *DismissalInput `json:"dismissal,omitempty"`
}

// processed is the pure output of the delivery processor: the ledger record
// plus the crease state that follows it.
type processed struct {
	delivery       Delivery
	nextStriker    uint
	nextNonStriker uint
	overComplete   bool
}

// validateOutcome rejects outcomes that cannot occur on a cricket field.
func validateOutcome(out Outcome) error {
	if out.IsWide && out.IsNoBall {
		return fmt.Errorf("%w: a delivery cannot be both wide and no-ball", ErrIllegalDelivery)
	}
	if out.IsWicket && (out.IsWide || out.IsNoBall) {
		return fmt.Errorf("%w: wickets are recorded on legal deliveries only", ErrIllegalDelivery)
	}
	if out.IsWicket && out.Dismissal == nil {
		return fmt.Errorf("%w: wicket requires dismissal details", ErrMissingSelection)
	}
	if !out.IsWicket && out.Dismissal != nil {
		return fmt.Errorf("%w: dismissal details without a wicket", ErrIllegalDelivery)
	}
	if out.Runs < 0 {
		return fmt.Errorf("%w: negative runs", ErrIllegalDelivery)
	}
	if out.IsWide {
		if out.Runs > 4 {
			return fmt.Errorf("%w: at most 4 bonus runs on a wide", ErrIllegalDelivery)
		}
		return nil
	}
	switch out.Runs {
	case 0, 1, 2, 3, 4, 6:
		return nil
	}
	return fmt.Errorf("%w: %d is not a valid run count off the bat", ErrIllegalDelivery, out.Runs)
}

// FreeHitPending reports whether the next delivery of the current innings
// is a free hit: the previous ball was a no-ball, or was a wide bowled on a
// free hit (an intervening wide does not consume the free hit).
func (m *Match) FreeHitPending() bool {
	last := m.lastDeliveryOfInnings(m.CurrentInnings)
	if last == nil {
		return false
	}
	if last.IsNoBall {
		return true
	}
	return last.IsFreeHit && last.IsWide
}

// processOutcome maps (current state, outcome) to the new ledger record and
// the striker/non-striker that follow it. It never mutates the match.
//
// Extras semantics: wide = 1 penalty + bonus runs, striker credited 0;
// no-ball = 1 penalty, striker credited runs off the bat; otherwise 0.
// Strike rotates on odd runs (bonus runs for a wide) unless a wicket fell,
// and swaps again when the 6th legal ball closes the over.
func (m *Match) processOutcome(out Outcome, dismissalText string) processed {
	legalBefore := m.legalBallCount(m.CurrentInnings)
	over := legalBefore / 6
	ballsInOver := legalBefore % 6

	extras := 0
	batRuns := out.Runs
	switch {
	case out.IsWide:
		extras = 1 + out.Runs
		batRuns = 0
	case out.IsNoBall:
		extras = 1
	}

	slot := 1
	for _, d := range m.Deliveries {
		if d.Inning == m.CurrentInnings && d.Over == over {
			slot++
		}
	}

	d := Delivery{
		Inning:       m.CurrentInnings,
		Over:         over,
		BallInOver:   slot,
		BowlerID:     *m.CurrentBowlerID,
		StrikerID:    *m.StrikerID,
		NonStrikerID: *m.NonStrikerID,
		Runs:         batRuns,
		Extras:       extras,
		IsWide:       out.IsWide,
		IsNoBall:     out.IsNoBall,
		IsWicket:     out.IsWicket,
		IsFreeHit:    m.FreeHitPending(),
	}
	if out.IsWicket {
		kind := out.Dismissal.Kind
		d.DismissalType = &kind
		d.DismissalText = dismissalText
		d.FielderID = out.Dismissal.FielderID
		dismissed := *m.StrikerID
		if out.Dismissal.DismissedPlayerID != nil {
			dismissed = *out.Dismissal.DismissedPlayerID
		}
		d.DismissedPlayerID = &dismissed
	}

	striker, nonStriker := *m.StrikerID, *m.NonStrikerID
	if !out.IsWicket && out.Runs%2 != 0 {
		striker, nonStriker = nonStriker, striker
	}

	overComplete := d.IsLegal() && ballsInOver == 5
	if overComplete {
		striker, nonStriker = nonStriker, striker
	}

	return processed{
		delivery:       d,
		nextStriker:    striker,
		nextNonStriker: nonStriker,
		overComplete:   overComplete,
	}
}
