package match

import (
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/gully/internal/team"
)

// Engine: the transition functions that drive a match from toss to result.
// Each one validates legality for the current phase, mutates the match
// in place and returns synchronously; the caller owns persistence.

// DeliveryResult tells the host what a recorded delivery caused. When
// NeedsNewBatsman or NeedsNewBowler is set the host must resolve it before
// the next delivery is accepted; batsman selection always comes first.
type DeliveryResult struct {
	Delivery        *Delivery `json:"delivery"`
	NeedsNewBatsman bool      `json:"needs_new_batsman"`
	NeedsNewBowler  bool      `json:"needs_new_bowler"`
	InningsOver     bool      `json:"innings_over"`
	MatchOver       bool      `json:"match_over"`
}

// RecordToss records the toss outcome and opens the first innings.
func RecordToss(m *Match, winnerTeamID uint, choice TossChoice) error {
	if m.Phase() != PhasePreToss {
		return fmt.Errorf("%w: toss already recorded", ErrInvalidStateTransition)
	}
	if m.TeamByID(winnerTeamID) == nil {
		return fmt.Errorf("%w: toss winner must be a participating team", ErrIneligiblePlayer)
	}
	if choice != ChoiceBat && choice != ChoiceBowl {
		return fmt.Errorf("%w: toss choice must be bat or bowl", ErrInvalidStateTransition)
	}

	batFirst := winnerTeamID
	if choice == ChoiceBowl {
		if winnerTeamID == m.Team1ID {
			batFirst = m.Team2ID
		} else {
			batFirst = m.Team1ID
		}
	}

	m.TossWinnerID = &winnerTeamID
	m.BatFirstID = &batFirst
	m.CurrentInnings = 1
	m.Deliveries = m.Deliveries[:0]
	return nil
}

// SelectOpeners sets the opening pair and bowler for the current innings.
func SelectOpeners(m *Match, strikerID, nonStrikerID, bowlerID uint) error {
	if m.Phase() != PhaseOpeningSelection {
		return fmt.Errorf("%w: openers can only be chosen at the start of an innings", ErrInvalidStateTransition)
	}
	if strikerID == nonStrikerID {
		return ErrDuplicatePlayerReference
	}

	bat := m.BattingTeam(m.CurrentInnings)
	bowl := m.BowlingTeam(m.CurrentInnings)
	if !bat.HasPlayer(strikerID) || !bat.HasPlayer(nonStrikerID) {
		return fmt.Errorf("%w: openers must be on the batting side", ErrIneligiblePlayer)
	}
	if !bowl.HasPlayer(bowlerID) {
		return fmt.Errorf("%w: bowler must be on the fielding side", ErrIneligiblePlayer)
	}

	m.StrikerID = &strikerID
	m.NonStrikerID = &nonStrikerID
	m.CurrentBowlerID = &bowlerID
	return nil
}

// RecordDelivery validates, processes and appends one delivery, then runs
// the completion checks. A wicket with no eligible replacement ends the
// innings as all out rather than raising a selection request.
func RecordDelivery(m *Match, out Outcome) (*DeliveryResult, error) {
	if m.Phase() != PhaseLiveScoring {
		return nil, fmt.Errorf("%w: match is not in live scoring", ErrInvalidStateTransition)
	}
	if m.NeedsNewBatsman || m.NeedsNewBowler {
		return nil, fmt.Errorf("%w: resolve the pending selection first", ErrInvalidStateTransition)
	}
	if m.StrikerID == nil || m.NonStrikerID == nil || m.CurrentBowlerID == nil {
		return nil, fmt.Errorf("%w: striker, non-striker and bowler must be set", ErrMissingSelection)
	}
	if err := validateOutcome(out); err != nil {
		return nil, err
	}

	var text string
	if out.IsWicket {
		if m.FreeHitPending() && out.Dismissal.Kind.OffTheBowling() {
			return nil, fmt.Errorf("%w: that dismissal cannot fall on a free hit", ErrIllegalDelivery)
		}
		if id := out.Dismissal.DismissedPlayerID; id != nil &&
			*id != *m.StrikerID && *id != *m.NonStrikerID {
			return nil, fmt.Errorf("%w: dismissed player is not at the crease", ErrIneligiblePlayer)
		}
		bowl := m.BowlingTeam(m.CurrentInnings)
		resolved, err := resolveDismissal(*out.Dismissal, bowl.PlayerName(*m.CurrentBowlerID), bowl)
		if err != nil {
			return nil, err
		}
		text = resolved
	}

	p := m.processOutcome(out, text)
	d := m.appendDelivery(p.delivery)

	striker, nonStriker := p.nextStriker, p.nextNonStriker
	m.StrikerID = &striker
	m.NonStrikerID = &nonStriker

	if out.IsWicket {
		dismissed := *d.DismissedPlayerID
		switch {
		case *m.StrikerID == dismissed:
			m.StrikerID = nil
		case *m.NonStrikerID == dismissed:
			m.NonStrikerID = nil
		}
	}

	inningsOver := m.InningsOver(m.CurrentInnings)
	if out.IsWicket && !inningsOver {
		if len(m.EligibleBatsmen(m.CurrentInnings)) == 0 {
			inningsOver = true
		} else {
			m.NeedsNewBatsman = true
		}
	}
	if p.overComplete && !inningsOver {
		m.NeedsNewBowler = true
	}

	res := &DeliveryResult{Delivery: d}
	if inningsOver {
		m.NeedsNewBatsman = false
		m.NeedsNewBowler = false
		res.InningsOver = true
		if m.CurrentInnings == 1 {
			m.InningsBreak = true
		} else {
			finalize(m)
			res.MatchOver = true
		}
	}
	res.NeedsNewBatsman = m.NeedsNewBatsman
	res.NeedsNewBowler = m.NeedsNewBowler
	return res, nil
}

// SelectReplacementBatsman fills the crease slot vacated by a wicket.
func SelectReplacementBatsman(m *Match, playerID uint) error {
	if !m.NeedsNewBatsman {
		return fmt.Errorf("%w: no replacement batsman is pending", ErrInvalidStateTransition)
	}

	eligible := m.EligibleBatsmen(m.CurrentInnings)
	if len(eligible) == 0 {
		return ErrNoReplacementAvailable
	}
	found := false
	for _, p := range eligible {
		if p.ID == playerID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: player already out, at the crease, or not on the batting side", ErrIneligiblePlayer)
	}

	switch {
	case m.StrikerID == nil:
		m.StrikerID = &playerID
	case m.NonStrikerID == nil:
		m.NonStrikerID = &playerID
	default:
		return fmt.Errorf("%w: both crease slots are occupied", ErrInvalidStateTransition)
	}
	m.NeedsNewBatsman = false
	return nil
}

// SelectNextBowler starts a new over. The outgoing bowler may not bowl
// consecutive overs.
func SelectNextBowler(m *Match, bowlerID uint) error {
	if !m.NeedsNewBowler {
		return fmt.Errorf("%w: no bowler change is pending", ErrInvalidStateTransition)
	}
	if m.NeedsNewBatsman {
		return fmt.Errorf("%w: select the replacement batsman first", ErrInvalidStateTransition)
	}
	if m.CurrentBowlerID != nil && *m.CurrentBowlerID == bowlerID {
		return fmt.Errorf("%w: a bowler cannot bowl consecutive overs", ErrIneligiblePlayer)
	}
	if !m.BowlingTeam(m.CurrentInnings).HasPlayer(bowlerID) {
		return fmt.Errorf("%w: bowler must be on the fielding side", ErrIneligiblePlayer)
	}
	m.CurrentBowlerID = &bowlerID
	m.NeedsNewBowler = false
	return nil
}

// SwapEnds manually exchanges striker and non-striker.
func SwapEnds(m *Match) error {
	if m.Phase() != PhaseLiveScoring {
		return fmt.Errorf("%w: ends can only be swapped during live scoring", ErrInvalidStateTransition)
	}
	if m.StrikerID == nil || m.NonStrikerID == nil {
		return fmt.Errorf("%w: both batsmen must be at the crease", ErrMissingSelection)
	}
	m.StrikerID, m.NonStrikerID = m.NonStrikerID, m.StrikerID
	return nil
}

// UndoLastDelivery pops the ledger head, restores the crease and bowler
// recorded on it, and clears any pending selection sub-state. Legal only
// during live scoring; innings and match transitions are one-way, so the
// head must belong to the innings in progress.
func UndoLastDelivery(m *Match) (*Delivery, error) {
	if m.Phase() != PhaseLiveScoring {
		return nil, fmt.Errorf("%w: undo is only available during live scoring", ErrInvalidStateTransition)
	}
	head := m.LastDelivery()
	if head == nil {
		return nil, nil
	}
	if head.Inning != m.CurrentInnings {
		return nil, fmt.Errorf("%w: the previous innings is closed", ErrInvalidStateTransition)
	}
	popped := m.popDelivery()
	if popped == nil {
		return nil, nil
	}
	m.StrikerID = &popped.StrikerID
	m.NonStrikerID = &popped.NonStrikerID
	m.CurrentBowlerID = &popped.BowlerID
	m.NeedsNewBatsman = false
	m.NeedsNewBowler = false
	return popped, nil
}

// AdvanceToSecondInnings moves from the innings break to the second
// innings' opening selection.
func AdvanceToSecondInnings(m *Match) error {
	if m.Phase() != PhaseInningsBreak {
		return fmt.Errorf("%w: first innings is still in progress", ErrInvalidStateTransition)
	}
	m.CurrentInnings = 2
	m.StrikerID = nil
	m.NonStrikerID = nil
	m.CurrentBowlerID = nil
	m.NeedsNewBatsman = false
	m.NeedsNewBowler = false
	m.InningsBreak = false
	return nil
}

// FinalizeMatch computes and stores the result. It is invoked by
// RecordDelivery when the second innings ends, and exposed for
// host-triggered recovery; finalizing a completed match is a no-op.
func FinalizeMatch(m *Match) error {
	if m.Status == StatusMatchCompleted {
		return nil
	}
	if !m.MatchOver() {
		return fmt.Errorf("%w: match is not over yet", ErrInvalidStateTransition)
	}
	finalize(m)
	return nil
}

func finalize(m *Match) {
	result, winner := m.computeResult()
	now := time.Now()
	m.Result = result
	m.WinnerTeamID = winner
	m.Status = StatusMatchCompleted
	m.CompletedAt = &now
	m.NeedsNewBatsman = false
	m.NeedsNewBowler = false
}

// outBatsmen collects players recorded out (anything but retired hurt) in
// an innings. A retired-hurt batsman may return later in the same innings.
func (m *Match) outBatsmen(inning int) map[uint]bool {
	out := make(map[uint]bool)
	for _, d := range m.Deliveries {
		if d.Inning != inning || !d.IsWicket || d.DismissedPlayerID == nil {
			continue
		}
		if d.DismissalType != nil && *d.DismissalType == DismissalRetiredHurt {
			continue
		}
		out[*d.DismissedPlayerID] = true
	}
	return out
}

// EligibleBatsmen lists batting-side players who can come in next: not
// out (retired hurt may return) and not currently at the crease.
func (m *Match) EligibleBatsmen(inning int) []team.Player {
	bat := m.BattingTeam(inning)
	if bat == nil {
		return nil
	}
	out := m.outBatsmen(inning)

	var eligible []team.Player
	for _, p := range bat.Players {
		if out[p.ID] {
			continue
		}
		if m.StrikerID != nil && *m.StrikerID == p.ID {
			continue
		}
		if m.NonStrikerID != nil && *m.NonStrikerID == p.ID {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}
