package stats

import (
	"testing"

	"github.com/DhavalSuthar-24/gully/internal/match"
	"github.com/DhavalSuthar-24/gully/internal/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testRoster(teamID uint, base uint, names []string) []team.Player {
	players := make([]team.Player, 0, len(names))
	for i, name := range names {
		players = append(players, team.Player{
			Model:  gorm.Model{ID: base + uint(i)},
			TeamID: teamID,
			Name:   name,
			Role:   team.RoleBatsman,
		})
	}
	return players
}

// liveMatch builds a match between the Lions (ids 1-6) and Tigers (ids
// 11-16), with the Lions batting first: striker 1, non-striker 2, bowler 11.
func liveMatch(t *testing.T, overs, size int) *match.Match {
	t.Helper()
	m := &match.Match{
		Model:    gorm.Model{ID: 7},
		PublicID: "test-match",
		Code:     "ABC123",
		Team1ID:  1,
		Team1: team.Team{
			Model:   gorm.Model{ID: 1},
			Name:    "Lions",
			Players: testRoster(1, 1, []string{"Arjun", "Bharat", "Chirag", "Dev", "Esha", "Farhan"}),
		},
		Team2ID: 2,
		Team2: team.Team{
			Model:   gorm.Model{ID: 2},
			Name:    "Tigers",
			Players: testRoster(2, 11, []string{"Gopal", "Hari", "Ishan", "Jay", "Kiran", "Lakshya"}),
		},
		OversPerInnings: overs,
		TeamSize:        size,
		Status:          match.StatusMatchLive,
	}
	require.NoError(t, match.RecordToss(m, 1, match.ChoiceBat))
	require.NoError(t, match.SelectOpeners(m, 1, 2, 11))
	return m
}

func score(t *testing.T, m *match.Match, out match.Outcome) *match.DeliveryResult {
	t.Helper()
	res, err := match.RecordDelivery(m, out)
	require.NoError(t, err)
	return res
}

func TestBuildScorecard(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)
	fielder := uint(12)

	score(t, m, match.Outcome{Runs: 4})
	score(t, m, match.Outcome{IsWide: true})
	score(t, m, match.Outcome{Runs: 2, IsNoBall: true})
	score(t, m, match.Outcome{Runs: 6})
	score(t, m, match.Outcome{Runs: 1})
	score(t, m, match.Outcome{Runs: 0})
	score(t, m, match.Outcome{Runs: 0})
	score(t, m, match.Outcome{IsWicket: true, Dismissal: &match.DismissalInput{
		Kind:      match.DismissalCaught,
		FielderID: &fielder,
	}})

	card := BuildScorecard(m, 1)

	assert.Equal(t, "Lions", card.Score.Team)
	assert.Equal(t, 15, card.Score.Runs)
	assert.Equal(t, 1, card.Score.Wickets)
	assert.Equal(t, "1.0", card.Score.Overs)

	// Opener: 4 + 2 (no-ball) + 6 + 1 off four balls faced; the wide is
	// not a ball faced but the no-ball is.
	arjun := card.Batting[0]
	require.Equal(t, uint(1), arjun.PlayerID)
	assert.Equal(t, 13, arjun.Runs)
	assert.Equal(t, 4, arjun.Balls)
	assert.Equal(t, 1, arjun.Fours)
	assert.Equal(t, 1, arjun.Sixes)
	assert.Equal(t, "not out", arjun.Status)
	assert.True(t, arjun.AtCrease)

	bharat := card.Batting[1]
	require.Equal(t, uint(2), bharat.PlayerID)
	assert.Equal(t, "c Hari b Gopal", bharat.Status)
	assert.False(t, bharat.AtCrease)

	// Everyone else never reached the crease.
	var didNotBat int
	for _, line := range card.Batting {
		if line.DidNotBat {
			didNotBat++
			assert.Equal(t, "did not bat", line.Status)
		}
	}
	assert.Equal(t, 4, didNotBat)

	require.Len(t, card.Bowling, 1)
	gopal := card.Bowling[0]
	assert.Equal(t, "1.0", gopal.Overs)
	assert.Equal(t, 6, gopal.LegalBalls)
	assert.Equal(t, 15, gopal.Runs) // extras count against the bowler here
	assert.Equal(t, 1, gopal.Wickets)
	assert.Equal(t, 3, gopal.Dots)
	assert.InDelta(t, 15.0, gopal.Economy(), 0.001)

	assert.Equal(t, 1, card.Extras.Wides)
	assert.Equal(t, 1, card.Extras.NoBalls)
	assert.Equal(t, 2, card.Extras.Total)

	require.Len(t, card.FallOfWickets, 1)
	fall := card.FallOfWickets[0]
	assert.Equal(t, 1, fall.Wicket)
	assert.Equal(t, 15, fall.TeamRuns)
	assert.Equal(t, "Bharat", fall.Name)

	require.Len(t, card.Partnerships, 1)
	stand := card.Partnerships[0]
	assert.Equal(t, 15, stand.Runs)
	assert.Equal(t, 7, stand.Balls)
	assert.False(t, stand.Unbroken)
}

func TestBuildScorecardIsIdempotent(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)
	score(t, m, match.Outcome{Runs: 4})
	score(t, m, match.Outcome{IsWide: true})
	score(t, m, match.Outcome{Runs: 1})

	first := BuildScorecard(m, 1)
	second := BuildScorecard(m, 1)
	assert.Equal(t, first, second)
}

func TestMaidenOver(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)

	for i := 0; i < 6; i++ {
		score(t, m, match.Outcome{Runs: 0})
	}
	require.NoError(t, match.SelectNextBowler(m, 12))
	score(t, m, match.Outcome{Runs: 4})

	card := BuildScorecard(m, 1)
	require.Len(t, card.Bowling, 2)
	assert.Equal(t, 1, card.Bowling[0].Maidens)
	assert.Equal(t, 6, card.Bowling[0].Dots)
	assert.Equal(t, 0, card.Bowling[1].Maidens)
}

func TestPartialFinalOverCountsMaiden(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 3)

	// All out two balls into the over without conceding: still a maiden.
	score(t, m, match.Outcome{IsWicket: true, Dismissal: &match.DismissalInput{Kind: match.DismissalBowled}})
	require.NoError(t, match.SelectReplacementBatsman(m, 3))
	score(t, m, match.Outcome{IsWicket: true, Dismissal: &match.DismissalInput{Kind: match.DismissalBowled}})
	require.True(t, m.InningsBreak)

	card := BuildScorecard(m, 1)
	require.Len(t, card.Bowling, 1)
	assert.Equal(t, 2, card.Bowling[0].LegalBalls)
	assert.Equal(t, 1, card.Bowling[0].Maidens)
}

func TestWideBreaksMaiden(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)

	score(t, m, match.Outcome{IsWide: true})
	for i := 0; i < 6; i++ {
		score(t, m, match.Outcome{Runs: 0})
	}

	card := BuildScorecard(m, 1)
	require.Len(t, card.Bowling, 1)
	assert.Equal(t, 0, card.Bowling[0].Maidens)
}

func TestExtrasCountWideDeliveries(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)

	// One wide with two ran: one wide on the board, three runs in total.
	score(t, m, match.Outcome{Runs: 2, IsWide: true})
	score(t, m, match.Outcome{Runs: 1, IsNoBall: true})

	card := BuildScorecard(m, 1)
	assert.Equal(t, 1, card.Extras.Wides)
	assert.Equal(t, 1, card.Extras.NoBalls)
	assert.Equal(t, 4, card.Extras.Total)
	assert.Equal(t, 5, card.Score.Runs)
}

func TestRunOutNotCreditedToBowler(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)
	fielder := uint(13)

	score(t, m, match.Outcome{IsWicket: true, Dismissal: &match.DismissalInput{
		Kind:      match.DismissalRunOut,
		FielderID: &fielder,
	}})

	card := BuildScorecard(m, 1)
	assert.Equal(t, 1, card.Score.Wickets)
	assert.Equal(t, 0, card.Bowling[0].Wickets)
}

func TestObstructionCreditedToBowler(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)

	score(t, m, match.Outcome{IsWicket: true, Dismissal: &match.DismissalInput{Kind: match.DismissalObstructing}})

	card := BuildScorecard(m, 1)
	assert.Equal(t, 1, card.Score.Wickets)
	assert.Equal(t, 1, card.Bowling[0].Wickets)
}

func TestPartnershipsAcrossWickets(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 2, 6)

	score(t, m, match.Outcome{Runs: 4})
	score(t, m, match.Outcome{IsWicket: true, Dismissal: &match.DismissalInput{Kind: match.DismissalBowled}})
	require.NoError(t, match.SelectReplacementBatsman(m, 3))
	score(t, m, match.Outcome{Runs: 2})

	card := BuildScorecard(m, 1)
	require.Len(t, card.Partnerships, 2)
	assert.Equal(t, 4, card.Partnerships[0].Runs)
	assert.False(t, card.Partnerships[0].Unbroken)
	assert.Equal(t, 2, card.Partnerships[1].Runs)
	assert.True(t, card.Partnerships[1].Unbroken)
}

func TestBuildSummary(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 1, 3)

	score(t, m, match.Outcome{Runs: 4})
	for i := 0; i < 5; i++ {
		score(t, m, match.Outcome{Runs: 0})
	}
	require.NoError(t, match.AdvanceToSecondInnings(m))
	require.NoError(t, match.SelectOpeners(m, 11, 12, 1))
	score(t, m, match.Outcome{Runs: 1, IsNoBall: true})

	s := BuildSummary(m)
	assert.Equal(t, "ABC123", s.Code)
	assert.Equal(t, 2, s.Innings)
	assert.Equal(t, 5, s.Target)
	// 2 down, 3 needed off 6 legal balls still to be bowled.
	assert.Equal(t, 3, s.Required)
	assert.InDelta(t, 3.0, s.ReqRate, 0.001)
	assert.True(t, s.FreeHit)
	require.Len(t, s.Scores, 2)
	assert.Equal(t, 4, s.Scores[0].Runs)
	assert.Equal(t, 2, s.Scores[1].Runs) // 1 off the bat + 1 no-ball penalty

	require.NotNil(t, s.Striker)
	// Odd single off the no-ball rotated strike.
	assert.Equal(t, uint(12), s.Striker.PlayerID)
	require.NotNil(t, s.Bowler)
	assert.Equal(t, uint(1), s.Bowler.PlayerID)
	require.NotNil(t, s.LastBall)
	assert.True(t, s.LastBall.IsNoBall)
}
