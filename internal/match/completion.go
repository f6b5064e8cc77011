package match

import "fmt"

// InningsTotals is the running score of one innings, folded from the
// ledger.
type InningsTotals struct {
	Runs       int
	Wickets    int
	LegalBalls int
}

// Totals folds the ledger slice for one innings. Retired hurt is not a
// fall of wicket: the batsman may return, so it never moves the tally.
func (m *Match) Totals(inning int) InningsTotals {
	var t InningsTotals
	for _, d := range m.Deliveries {
		if d.Inning != inning {
			continue
		}
		t.Runs += d.TotalRuns()
		if d.IsWicket && (d.DismissalType == nil || *d.DismissalType != DismissalRetiredHurt) {
			t.Wickets++
		}
		if d.IsLegal() {
			t.LegalBalls++
		}
	}
	return t
}

// Target is the score the side batting second needs to win, zero before
// the second innings exists.
func (m *Match) Target() int {
	if m.CurrentInnings < 2 {
		return 0
	}
	return m.Totals(1).Runs + 1
}

// InningsOver reports whether an innings has ended: all out, overs
// exhausted, or (second innings) target reached.
func (m *Match) InningsOver(inning int) bool {
	t := m.Totals(inning)
	if t.Wickets >= m.MaxWickets() {
		return true
	}
	if t.LegalBalls >= m.OversPerInnings*6 {
		return true
	}
	if inning == 2 && t.Runs >= m.Totals(1).Runs+1 {
		return true
	}
	return false
}

// MatchOver reports whether the match has ended: exactly when the second
// innings is over.
func (m *Match) MatchOver() bool {
	return m.CurrentInnings == 2 && m.InningsOver(2)
}

// computeResult derives the result text and winner once both innings are
// done. Equal totals tie with no winner.
func (m *Match) computeResult() (string, *uint) {
	first := m.Totals(1)
	second := m.Totals(2)
	batFirst := m.BattingTeam(1)
	batSecond := m.BattingTeam(2)

	switch {
	case first.Runs > second.Runs:
		diff := first.Runs - second.Runs
		return fmt.Sprintf("%s won by %d %s", batFirst.Name, diff, plural(diff, "run")), &batFirst.ID
	case second.Runs > first.Runs:
		remaining := m.MaxWickets() - second.Wickets
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Sprintf("%s won by %d %s", batSecond.Name, remaining, plural(remaining, "wicket")), &batSecond.ID
	}
	return "Match tied", nil
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
