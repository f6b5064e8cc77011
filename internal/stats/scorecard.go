package stats

import (
	"fmt"

	"github.com/DhavalSuthar-24/gully/internal/match"
)

// The aggregator is a pure fold over the delivery ledger. It holds no state
// of its own, so recomputing after an undo is just calling it again.

// BattingLine is one batsman's row on the scorecard.
type BattingLine struct {
	PlayerID  uint   `json:"player_id"`
	Name      string `json:"name"`
	Runs      int    `json:"runs"`
	Balls     int    `json:"balls"`
	Fours     int    `json:"fours"`
	Sixes     int    `json:"sixes"`
	Status    string `json:"status"`
	AtCrease  bool   `json:"at_crease"`
	DidNotBat bool   `json:"did_not_bat"`
}

// StrikeRate is runs per 100 balls, zero before the first ball is faced.
func (b BattingLine) StrikeRate() float64 {
	if b.Balls == 0 {
		return 0
	}
	return float64(b.Runs) / float64(b.Balls) * 100
}

// BowlingLine is one bowler's row on the scorecard.
type BowlingLine struct {
	PlayerID   uint   `json:"player_id"`
	Name       string `json:"name"`
	LegalBalls int    `json:"legal_balls"`
	Overs      string `json:"overs"`
	Runs       int    `json:"runs"`
	Wickets    int    `json:"wickets"`
	Maidens    int    `json:"maidens"`
	Dots       int    `json:"dots"`
}

// Economy is runs conceded per over, zero before the first legal ball.
func (b BowlingLine) Economy() float64 {
	if b.LegalBalls == 0 {
		return 0
	}
	return float64(b.Runs) / float64(b.LegalBalls) * 6
}

// Extras breaks the team's extras down by origin. Wides and NoBalls count
// deliveries; Total is the runs they added.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Total   int `json:"total"`
}

// WicketFall is one entry of the fall-of-wickets list.
type WicketFall struct {
	Wicket    int    `json:"wicket"`
	TeamRuns  int    `json:"team_runs"`
	Over      string `json:"over"`
	PlayerID  uint   `json:"player_id"`
	Name      string `json:"name"`
	Dismissal string `json:"dismissal"`
}

// Partnership is the stand between two batsmen, open until a wicket falls.
type Partnership struct {
	Batsman1ID uint   `json:"batsman1_id"`
	Batsman2ID uint   `json:"batsman2_id"`
	Names      string `json:"names"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Unbroken   bool   `json:"unbroken"`
}

// InningsScore is the headline number for one innings.
type InningsScore struct {
	TeamID  uint   `json:"team_id"`
	Team    string `json:"team"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Overs   string `json:"overs"`
}

// Scorecard is the full derived view of one innings.
type Scorecard struct {
	Innings       int           `json:"innings"`
	Score         InningsScore  `json:"score"`
	Batting       []BattingLine `json:"batting"`
	Bowling       []BowlingLine `json:"bowling"`
	Extras        Extras        `json:"extras"`
	FallOfWickets []WicketFall  `json:"fall_of_wickets"`
	Partnerships  []Partnership `json:"partnerships"`
}

// oversDisplay renders legal balls as the usual "overs.balls" notation.
func oversDisplay(legalBalls int) string {
	return fmt.Sprintf("%d.%d", legalBalls/6, legalBalls%6)
}

// BuildScorecard folds one innings' ledger into the full scorecard view.
// Batting order follows first appearance at the crease; bowling order
// follows first over bowled.
func BuildScorecard(m *match.Match, inning int) Scorecard {
	entries := m.EntriesForInnings(inning)
	bat := m.BattingTeam(inning)
	bowl := m.BowlingTeam(inning)
	card := Scorecard{Innings: inning}
	if bat == nil || bowl == nil {
		return card
	}

	batLines := make(map[uint]*BattingLine)
	batOrder := []uint{}
	noteBatsman := func(id uint) *BattingLine {
		if line, ok := batLines[id]; ok {
			return line
		}
		line := &BattingLine{PlayerID: id, Name: bat.PlayerName(id), Status: "not out"}
		batLines[id] = line
		batOrder = append(batOrder, id)
		return line
	}

	bowlLines := make(map[uint]*BowlingLine)
	bowlOrder := []uint{}
	noteBowler := func(id uint) *BowlingLine {
		if line, ok := bowlLines[id]; ok {
			return line
		}
		line := &BowlingLine{PlayerID: id, Name: bowl.PlayerName(id)}
		bowlLines[id] = line
		bowlOrder = append(bowlOrder, id)
		return line
	}

	var extras Extras
	teamRuns, teamWickets, legalBalls := 0, 0, 0

	type stand struct {
		a, b  uint
		runs  int
		balls int
	}
	var partnerships []Partnership
	var open *stand

	closeStand := func(unbroken bool) {
		if open == nil {
			return
		}
		partnerships = append(partnerships, Partnership{
			Batsman1ID: open.a,
			Batsman2ID: open.b,
			Names:      fmt.Sprintf("%s & %s", bat.PlayerName(open.a), bat.PlayerName(open.b)),
			Runs:       open.runs,
			Balls:      open.balls,
			Unbroken:   unbroken,
		})
		open = nil
	}

	for _, d := range entries {
		striker := noteBatsman(d.StrikerID)
		noteBatsman(d.NonStrikerID)
		bowler := noteBowler(d.BowlerID)

		if open == nil {
			open = &stand{a: d.StrikerID, b: d.NonStrikerID}
		}

		// Striker credit. A wide never reaches the bat; balls faced count
		// legal deliveries and no-balls.
		if !d.IsWide {
			striker.Runs += d.Runs
			striker.Balls++
			switch d.Runs {
			case 4:
				striker.Fours++
			case 6:
				striker.Sixes++
			}
		}

		bowler.Runs += d.TotalRuns()
		if d.IsLegal() {
			bowler.LegalBalls++
			legalBalls++
		}
		if d.TotalRuns() == 0 {
			bowler.Dots++
		}

		switch {
		case d.IsWide:
			extras.Wides++
		case d.IsNoBall:
			extras.NoBalls++
		}
		extras.Total += d.Extras

		teamRuns += d.TotalRuns()
		open.runs += d.TotalRuns()
		if !d.IsWide {
			open.balls++
		}

		if d.IsWicket && d.DismissedPlayerID != nil {
			out := noteBatsman(*d.DismissedPlayerID)
			out.Status = d.DismissalText
			if d.DismissalType == nil || *d.DismissalType != match.DismissalRetiredHurt {
				teamWickets++
				if NeedsBowlerCredit(d.DismissalType) {
					bowler.Wickets++
				}
				card.FallOfWickets = append(card.FallOfWickets, WicketFall{
					Wicket:    teamWickets,
					TeamRuns:  teamRuns,
					Over:      fmt.Sprintf("%d.%d", d.Over, d.BallInOver),
					PlayerID:  *d.DismissedPlayerID,
					Name:      bat.PlayerName(*d.DismissedPlayerID),
					Dismissal: d.DismissalText,
				})
			}
			closeStand(false)
		}
	}
	closeStand(true)

	// Maidens: an over by one bowler conceding nothing. A terminal partial
	// over of dots counts.
	countMaidens(entries, bowlLines)

	// Flag whoever is still at the crease, and surface the current bowler
	// even before their first ball.
	if inning == m.CurrentInnings && m.Phase() == match.PhaseLiveScoring {
		if m.StrikerID != nil {
			noteBatsman(*m.StrikerID).AtCrease = true
		}
		if m.NonStrikerID != nil {
			noteBatsman(*m.NonStrikerID).AtCrease = true
		}
		if m.CurrentBowlerID != nil {
			noteBowler(*m.CurrentBowlerID)
		}
	}

	for _, id := range batOrder {
		card.Batting = append(card.Batting, *batLines[id])
	}
	// Squad members who never reached the crease.
	for _, p := range bat.Players {
		if _, ok := batLines[p.ID]; !ok {
			card.Batting = append(card.Batting, BattingLine{
				PlayerID:  p.ID,
				Name:      p.Name,
				Status:    "did not bat",
				DidNotBat: true,
			})
		}
	}
	for _, id := range bowlOrder {
		line := bowlLines[id]
		line.Overs = oversDisplay(line.LegalBalls)
		card.Bowling = append(card.Bowling, *line)
	}

	card.Extras = extras
	card.Partnerships = partnerships
	card.Score = InningsScore{
		TeamID:  bat.ID,
		Team:    bat.Name,
		Runs:    teamRuns,
		Wickets: teamWickets,
		Overs:   oversDisplay(legalBalls),
	}
	return card
}

// NeedsBowlerCredit reports whether a dismissal counts in the bowler's
// wickets column. Only run outs do not.
func NeedsBowlerCredit(kind *match.DismissalType) bool {
	return kind != nil && kind.CreditsBowler()
}

// countMaidens scans the overs: at least one legal ball, one bowler, zero
// runs conceded including extras.
func countMaidens(entries []match.Delivery, lines map[uint]*BowlingLine) {
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
			if line, ok := lines[agg.bowler]; ok {
				line.Maidens++
			}
		}
	}
}

// Summary is the compact live view pushed to spectators.
type Summary struct {
	MatchID    string          `json:"match_id"`
	Code       string          `json:"code"`
	Phase      match.Phase     `json:"phase"`
	Innings    int             `json:"innings"`
	Scores     []InningsScore  `json:"scores"`
	Target     int             `json:"target,omitempty"`
	Required   int             `json:"required_runs,omitempty"`
	RunRate    float64         `json:"run_rate"`
	ReqRate    float64         `json:"required_run_rate,omitempty"`
	Striker    *BattingLine    `json:"striker,omitempty"`
	NonStriker *BattingLine    `json:"non_striker,omitempty"`
	Bowler     *BowlingLine    `json:"bowler,omitempty"`
	LastBall   *match.Delivery `json:"last_ball,omitempty"`
	FreeHit    bool            `json:"free_hit"`
	Result     string          `json:"result,omitempty"`
}

// BuildSummary folds the ledger into the spectator view.
func BuildSummary(m *match.Match) Summary {
	s := Summary{
		MatchID: m.PublicID,
		Code:    m.Code,
		Phase:   m.Phase(),
		Innings: m.CurrentInnings,
		Result:  m.Result,
	}
	for inning := 1; inning <= m.CurrentInnings; inning++ {
		card := BuildScorecard(m, inning)
		s.Scores = append(s.Scores, card.Score)
		if inning == m.CurrentInnings {
			if m.StrikerID != nil {
				if line := findBatting(card.Batting, *m.StrikerID); line != nil {
					s.Striker = line
				}
			}
			if m.NonStrikerID != nil {
				if line := findBatting(card.Batting, *m.NonStrikerID); line != nil {
					s.NonStriker = line
				}
			}
			if m.CurrentBowlerID != nil {
				for i := range card.Bowling {
					if card.Bowling[i].PlayerID == *m.CurrentBowlerID {
						s.Bowler = &card.Bowling[i]
						break
					}
				}
			}
		}
	}
	if m.CurrentInnings >= 1 {
		t := m.Totals(m.CurrentInnings)
		if t.LegalBalls > 0 {
			s.RunRate = float64(t.Runs) / float64(t.LegalBalls) * 6
		}
		if m.CurrentInnings == 2 {
			s.Target = m.Target()
			if need := s.Target - t.Runs; need > 0 {
				s.Required = need
			}
			if left := m.OversPerInnings*6 - t.LegalBalls; left > 0 && s.Required > 0 {
				s.ReqRate = float64(s.Required) / float64(left) * 6
			}
		}
	}
	s.LastBall = m.LastDelivery()
	s.FreeHit = m.FreeHitPending()
	return s
}

func findBatting(lines []BattingLine, id uint) *BattingLine {
	for i := range lines {
		if lines[i].PlayerID == id {
			return &lines[i]
		}
	}
	return nil
}
