package stats

import (
	"testing"

	"github.com/DhavalSuthar-24/gully/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManOfTheMatchScoring(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 1, 3)

	// Lions innings: Arjun smashes 6, 6, 4, 4 and blocks two dots.
	score(t, m, match.Outcome{Runs: 6})
	score(t, m, match.Outcome{Runs: 6})
	score(t, m, match.Outcome{Runs: 4})
	score(t, m, match.Outcome{Runs: 4})
	score(t, m, match.Outcome{Runs: 0})
	score(t, m, match.Outcome{Runs: 0})

	require.NoError(t, match.AdvanceToSecondInnings(m))
	require.NoError(t, match.SelectOpeners(m, 11, 12, 1))

	// Tigers fold for nothing; Arjun bowls a maiden.
	for i := 0; i < 6; i++ {
		score(t, m, match.Outcome{Runs: 0})
	}
	require.Equal(t, match.StatusMatchCompleted, m.Status)

	best := ManOfTheMatch(m, DefaultWeights())
	require.NotNil(t, best)
	assert.Equal(t, uint(1), best.PlayerID)

	// Batting: 2*20 runs + 2*2 fours + 5*2 sixes + 10 for striking above
	// 120 with more than ten runs = 64.
	// Bowling: 6 dots at 0.5 + one maiden at 10 = 13. No economy bonus on
	// a six-ball spell.
	assert.InDelta(t, 77.0, best.Points, 0.001)
	assert.Equal(t, "20 (6) & 0/0", best.Summary)
}

func TestManOfTheMatchNilBeforePlay(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 1, 3)
	assert.Nil(t, ManOfTheMatch(m, DefaultWeights()))
}

func TestManOfTheMatchTieBreak(t *testing.T) {
	t.Parallel()
	m := liveMatch(t, 1, 3)

	// Perfectly symmetric innings: two runs then five dots each way.
	score(t, m, match.Outcome{Runs: 2})
	for i := 0; i < 5; i++ {
		score(t, m, match.Outcome{Runs: 0})
	}
	require.NoError(t, match.AdvanceToSecondInnings(m))
	require.NoError(t, match.SelectOpeners(m, 11, 12, 1))
	score(t, m, match.Outcome{Runs: 2})
	for i := 0; i < 5; i++ {
		score(t, m, match.Outcome{Runs: 0})
	}
	require.Equal(t, "Match tied", m.Result)

	best := ManOfTheMatch(m, DefaultWeights())
	require.NotNil(t, best)
	// Equal points resolve to the first player seen, walking team1 first.
	assert.Equal(t, uint(1), best.PlayerID)
	assert.Equal(t, uint(1), best.TeamID)
}

func TestEconomyBonusNeedsRealSpell(t *testing.T) {
	t.Parallel()
	w := DefaultWeights()

	short := &Performance{Conceded: 0, LegalBalls: 6, Dots: 6, Maidens: 1}
	long := &Performance{Conceded: 0, LegalBalls: 12, Dots: 12, Maidens: 2}
	expensive := &Performance{Conceded: 14, LegalBalls: 12, Dots: 2}

	// 6*0.5 + 10, no bonus under twelve balls.
	assert.InDelta(t, 13.0, short.score(w), 0.001)
	// 12*0.5 + 20 + 10 bonus.
	assert.InDelta(t, 36.0, long.score(w), 0.001)
	// Economy 7.0 misses the cutoff: 2*0.5 only.
	assert.InDelta(t, 1.0, expensive.score(w), 0.001)
}

func TestMilestoneBonuses(t *testing.T) {
	t.Parallel()
	w := DefaultWeights()

	fifty := &Performance{Runs: 50}
	hundred := &Performance{Runs: 100}

	assert.InDelta(t, 130.0, fifty.score(w), 0.001)   // 100 + 30
	assert.InDelta(t, 230.0, hundred.score(w), 0.001) // 200 + 30, once
}

func TestStrikeRateBonus(t *testing.T) {
	t.Parallel()
	w := DefaultWeights()

	quick := &Performance{Runs: 20, Balls: 10}
	slow := &Performance{Runs: 20, Balls: 30}
	tooFew := &Performance{Runs: 10, Balls: 4}

	// 2*20 + 10 for striking at 200.
	assert.InDelta(t, 50.0, quick.score(w), 0.001)
	// Strike rate 66 misses the cutoff.
	assert.InDelta(t, 40.0, slow.score(w), 0.001)
	// Ten runs is not more than ten; rate alone is not enough.
	assert.InDelta(t, 20.0, tooFew.score(w), 0.001)
}

func TestThreeWicketBonus(t *testing.T) {
	t.Parallel()
	w := DefaultWeights()

	haul := &Performance{Wickets: 3, LegalBalls: 12, Conceded: 30}
	pair := &Performance{Wickets: 2, LegalBalls: 12, Conceded: 30}

	// 3*25 + 30 for the haul; economy 15 earns nothing.
	assert.InDelta(t, 105.0, haul.score(w), 0.001)
	assert.InDelta(t, 50.0, pair.score(w), 0.001)
}

func TestPerformanceSummaryShapes(t *testing.T) {
	t.Parallel()

	batOnly := &Performance{Runs: 45, Balls: 32}
	assert.Equal(t, "45 (32)", batOnly.describe())

	bowlOnly := &Performance{Wickets: 3, Conceded: 24, LegalBalls: 24}
	assert.Equal(t, "3/24", bowlOnly.describe())

	allRound := &Performance{Runs: 45, Balls: 32, Wickets: 3, Conceded: 24, LegalBalls: 24}
	assert.Equal(t, "45 (32) & 3/24", allRound.describe())

	idle := &Performance{}
	assert.Equal(t, "", idle.describe())
}
