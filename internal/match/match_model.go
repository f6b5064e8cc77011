package match

import (
	"time"

	"github.com/DhavalSuthar-24/gully/internal/team"
	"gorm.io/gorm"
)

type MatchType string

const (
	TypeSingle     MatchType = "single"
	TypeSeries     MatchType = "series"
	TypeTournament MatchType = "tournament"
)

type MatchStatus string

const (
	StatusMatchLive      MatchStatus = "live"
	StatusMatchCompleted MatchStatus = "completed"
)

// TossChoice is what the toss winner elected to do.
type TossChoice string

const (
	ChoiceBat  TossChoice = "bat"
	ChoiceBowl TossChoice = "bowl"
)

// Phase is the observable position of a match in its lifecycle. It is
// derived from the match fields rather than stored, so a persisted snapshot
// can always be re-opened at the right screen.
type Phase string

const (
	PhasePreToss          Phase = "pre_toss"
	PhaseOpeningSelection Phase = "opening_selection"
	PhaseLiveScoring      Phase = "live_scoring"
	PhaseInningsBreak     Phase = "innings_break"
	PhaseMatchComplete    Phase = "match_complete"
)

// DismissalType enumerates how a batsman can be out.
type DismissalType string

const (
	DismissalBowled       DismissalType = "Bowled"
	DismissalCaught       DismissalType = "Caught"
	DismissalLBW          DismissalType = "LBW"
	DismissalRunOut       DismissalType = "Run Out"
	DismissalStumped      DismissalType = "Stumped"
	DismissalHitWicket    DismissalType = "Hit Wicket"
	DismissalRetiredHurt  DismissalType = "Retired Hurt"
	DismissalObstructing  DismissalType = "Obstructing the Field"
	DismissalHitBallTwice DismissalType = "Hit the Ball Twice"
	DismissalTimedOut     DismissalType = "Timed Out"
)

// Delivery is one entry of the append-only ledger. It is immutable once
// appended; every scorecard view is recomputed from these records.
type Delivery struct {
	gorm.Model
	MatchID uint `json:"match_id" gorm:"index;not null"`

	// Seq is the monotonic position within the match ledger (1-based).
	// Ordering is explicit, never implied by storage.
	Seq    int `json:"seq" gorm:"not null"`
	Inning int `json:"inning" gorm:"not null"`

	// Over is 0-based; BallInOver is 1-based and counts illegal deliveries
	// too (a wide occupies a display slot but not a legal ball).
	Over       int `json:"over" gorm:"not null"`
	BallInOver int `json:"ball_in_over" gorm:"not null"`

	BowlerID     uint `json:"bowler_id" gorm:"index;not null"`
	StrikerID    uint `json:"striker_id" gorm:"index;not null"`
	NonStrikerID uint `json:"non_striker_id" gorm:"not null"`

	// Runs are credited to the striker; Extras to the team.
	Runs   int `json:"runs" gorm:"default:0"`
	Extras int `json:"extras" gorm:"default:0"`

	IsWide    bool `json:"is_wide" gorm:"default:false"`
	IsNoBall  bool `json:"is_no_ball" gorm:"default:false"`
	IsWicket  bool `json:"is_wicket" gorm:"default:false"`
	IsFreeHit bool `json:"is_free_hit" gorm:"default:false"`

	DismissalType     *DismissalType `json:"dismissal_type,omitempty"`
	DismissalText     string         `json:"dismissal_text,omitempty"`
	DismissedPlayerID *uint          `json:"dismissed_player_id,omitempty" gorm:"index"`
	FielderID         *uint          `json:"fielder_id,omitempty"`
}

// IsLegal reports whether the delivery counts towards the over.
func (d *Delivery) IsLegal() bool {
	return !d.IsWide && !d.IsNoBall
}

// TotalRuns is what the delivery added to the team score.
func (d *Delivery) TotalRuns() int {
	return d.Runs + d.Extras
}

// Match is the complete, serializable state of one game. It is mutated only
// through the transition functions in engine.go, so a collaborator can
// persist "the latest state" at any point without replaying history.
type Match struct {
	gorm.Model
	PublicID string    `json:"public_id" gorm:"uniqueIndex;size:36"`
	Code     string    `json:"code" gorm:"uniqueIndex;size:6"`
	Type     MatchType `json:"type" gorm:"default:'single'"`

	CreatedByScorerID uint `json:"created_by_scorer_id" gorm:"index"`

	Team1ID uint      `json:"team1_id" gorm:"index;not null"`
	Team1   team.Team `json:"team1" gorm:"foreignKey:Team1ID"`
	Team2ID uint      `json:"team2_id" gorm:"index;not null"`
	Team2   team.Team `json:"team2" gorm:"foreignKey:Team2ID"`

	OversPerInnings int `json:"overs_per_innings" gorm:"not null"`
	TeamSize        int `json:"team_size" gorm:"not null"`

	Status MatchStatus `json:"status" gorm:"index;default:'live'"`

	TossWinnerID *uint `json:"toss_winner_id,omitempty"`
	BatFirstID   *uint `json:"bat_first_id,omitempty"`

	CurrentInnings int `json:"current_innings" gorm:"default:0"`

	StrikerID       *uint `json:"striker_id,omitempty"`
	NonStrikerID    *uint `json:"non_striker_id,omitempty"`
	CurrentBowlerID *uint `json:"current_bowler_id,omitempty"`

	// Pause sub-states within live scoring. One delivery can leave both
	// pending (wicket on the last ball of an over); batsman selection is
	// always resolved first.
	NeedsNewBatsman bool `json:"needs_new_batsman" gorm:"default:false"`
	NeedsNewBowler  bool `json:"needs_new_bowler" gorm:"default:false"`

	// Set once the first innings has ended, cleared when the host starts
	// the second.
	InningsBreak bool `json:"innings_break" gorm:"default:false"`

	Deliveries []Delivery `json:"deliveries,omitempty" gorm:"foreignKey:MatchID"`

	Result       string     `json:"result,omitempty"`
	WinnerTeamID *uint      `json:"winner_team_id,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Phase derives the lifecycle position from the stored fields.
func (m *Match) Phase() Phase {
	switch {
	case m.Status == StatusMatchCompleted:
		return PhaseMatchComplete
	case m.TossWinnerID == nil:
		return PhasePreToss
	case m.InningsBreak:
		return PhaseInningsBreak
	case m.StrikerID == nil && m.NonStrikerID == nil && m.CurrentBowlerID == nil && !m.NeedsNewBatsman:
		return PhaseOpeningSelection
	default:
		return PhaseLiveScoring
	}
}

// MaxWickets is the number of wickets that ends an innings.
func (m *Match) MaxWickets() int {
	return m.TeamSize - 1
}

// BattingTeam returns the team batting in the given innings, nil before the
// toss has been recorded.
func (m *Match) BattingTeam(inning int) *team.Team {
	if m.BatFirstID == nil {
		return nil
	}
	batFirstIsTeam1 := *m.BatFirstID == m.Team1ID
	if (inning == 1) == batFirstIsTeam1 {
		return &m.Team1
	}
	return &m.Team2
}

// BowlingTeam returns the team bowling in the given innings.
func (m *Match) BowlingTeam(inning int) *team.Team {
	bat := m.BattingTeam(inning)
	if bat == nil {
		return nil
	}
	if bat.ID == m.Team1ID {
		return &m.Team2
	}
	return &m.Team1
}

// TeamByID resolves one of the two participating teams.
func (m *Match) TeamByID(id uint) *team.Team {
	switch id {
	case m.Team1ID:
		return &m.Team1
	case m.Team2ID:
		return &m.Team2
	}
	return nil
}
