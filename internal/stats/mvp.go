package stats

import (
	"fmt"

	"github.com/DhavalSuthar-24/gully/internal/match"
	"github.com/DhavalSuthar-24/gully/internal/team"
)

// Weights holds the MVP scoring coefficients. They live in data so a host
// can tune them without touching the calculator.
type Weights struct {
	Run              float64 `json:"run"`
	Four             float64 `json:"four"`
	Six              float64 `json:"six"`
	HalfCentury      float64 `json:"half_century"`
	StrikeRateBonus  float64 `json:"strike_rate_bonus"`
	Wicket           float64 `json:"wicket"`
	ThreeWicketBonus float64 `json:"three_wicket_bonus"`
	Maiden           float64 `json:"maiden"`
	DotBall          float64 `json:"dot_ball"`
	EconomyBonus     float64 `json:"economy_bonus"`

	// The bonus gates: an economy spell must be long enough to mean
	// something, and a strike rate only counts once some runs are on the
	// board.
	EconomyCutoff        float64 `json:"economy_cutoff"`
	MinBallsForEconomy   int     `json:"min_balls_for_economy"`
	StrikeRateCutoff     float64 `json:"strike_rate_cutoff"`
	MinRunsForStrikeRate int     `json:"min_runs_for_strike_rate"`
}

// DefaultWeights returns the standard coefficients.
func DefaultWeights() Weights {
	return Weights{
		Run:                  2,
		Four:                 2,
		Six:                  5,
		HalfCentury:          30,
		StrikeRateBonus:      10,
		Wicket:               25,
		ThreeWicketBonus:     30,
		Maiden:               10,
		DotBall:              0.5,
		EconomyBonus:         10,
		EconomyCutoff:        6,
		MinBallsForEconomy:   12,
		StrikeRateCutoff:     120,
		MinRunsForStrikeRate: 10,
	}
}

// Performance is one player's aggregate across both innings with their MVP
// points.
type Performance struct {
	PlayerID uint    `json:"player_id"`
	TeamID   uint    `json:"team_id"`
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
	Summary  string  `json:"summary"`

	Runs       int `json:"runs"`
	Balls      int `json:"balls"`
	Fours      int `json:"fours"`
	Sixes      int `json:"sixes"`
	Wickets    int `json:"wickets"`
	Maidens    int `json:"maidens"`
	Dots       int `json:"dots"`
	Conceded   int `json:"conceded"`
	LegalBalls int `json:"legal_balls"`
}

// score applies the weights to one player's aggregates.
func (p *Performance) score(w Weights) float64 {
	pts := w.Run*float64(p.Runs) +
		w.Four*float64(p.Fours) +
		w.Six*float64(p.Sixes) +
		w.Wicket*float64(p.Wickets) +
		w.Maiden*float64(p.Maidens) +
		w.DotBall*float64(p.Dots)
	if p.Runs >= 50 {
		pts += w.HalfCentury
	}
	if p.Balls > 0 && p.Runs > w.MinRunsForStrikeRate {
		strikeRate := float64(p.Runs) / float64(p.Balls) * 100
		if strikeRate > w.StrikeRateCutoff {
			pts += w.StrikeRateBonus
		}
	}
	if p.Wickets >= 3 {
		pts += w.ThreeWicketBonus
	}
	if p.LegalBalls >= w.MinBallsForEconomy {
		economy := float64(p.Conceded) / float64(p.LegalBalls) * 6
		if economy < w.EconomyCutoff {
			pts += w.EconomyBonus
		}
	}
	return pts
}

// describe renders the familiar "45 (32) & 3/24" performance line.
func (p *Performance) describe() string {
	var batting, bowling string
	if p.Balls > 0 {
		batting = fmt.Sprintf("%d (%d)", p.Runs, p.Balls)
	}
	if p.LegalBalls > 0 {
		bowling = fmt.Sprintf("%d/%d", p.Wickets, p.Conceded)
	}
	switch {
	case batting != "" && bowling != "":
		return batting + " & " + bowling
	case bowling != "":
		return bowling
	default:
		return batting
	}
}

// ManOfTheMatch scores every player on both sides and returns the best.
// Ties keep the first player encountered, walking team1's squad before
// team2's. Nil before any delivery has been recorded.
func ManOfTheMatch(m *match.Match, w Weights) *Performance {
	if len(m.Deliveries) == 0 {
		return nil
	}

	perfs := make(map[uint]*Performance)
	var order []uint
	for _, t := range []*team.Team{&m.Team1, &m.Team2} {
		for _, p := range t.Players {
			perfs[p.ID] = &Performance{PlayerID: p.ID, TeamID: t.ID, Name: p.Name}
			order = append(order, p.ID)
		}
	}

	for inning := 1; inning <= 2; inning++ {
		entries := m.EntriesForInnings(inning)
		for _, d := range entries {
			if striker, ok := perfs[d.StrikerID]; ok && !d.IsWide {
				striker.Runs += d.Runs
				striker.Balls++
				switch d.Runs {
				case 4:
					striker.Fours++
				case 6:
					striker.Sixes++
				}
			}
			if bowler, ok := perfs[d.BowlerID]; ok {
				bowler.Conceded += d.TotalRuns()
				if d.IsLegal() {
					bowler.LegalBalls++
				}
				if d.TotalRuns() == 0 {
					bowler.Dots++
				}
				if d.IsWicket && NeedsBowlerCredit(d.DismissalType) {
					bowler.Wickets++
				}
			}
		}
		countBowlerMaidens(entries, perfs)
	}

	var best *Performance
	for _, id := range order {
		p := perfs[id]
		p.Points = p.score(w)
		p.Summary = p.describe()
		if best == nil || p.Points > best.Points {
			best = p
		}
	}
	return best
}

// countBowlerMaidens adds zero-run overs to the bowler's tally. A terminal
// partial over of dots counts.
func countBowlerMaidens(entries []match.Delivery, perfs map[uint]*Performance) {
	type overAgg struct {
		bowler uint
		legal  int
		runs   int
		mixed  bool
	}
	overs := make(map[int]*overAgg)
	for _, d := range entries {
		agg, ok := overs[d.Over]
		if !ok {
			agg = &overAgg{bowler: d.BowlerID}
			overs[d.Over] = agg
		}
		if agg.bowler != d.BowlerID {
			agg.mixed = true
		}
		if d.IsLegal() {
			agg.legal++
		}
		agg.runs += d.TotalRuns()
	}
	for _, agg := range overs {
		if agg.legal >= 1 && agg.runs == 0 && !agg.mixed {
			if p, ok := perfs[agg.bowler]; ok {
				p.Maidens++
			}
		}
	}
}
