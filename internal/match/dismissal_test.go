package match

import (
	"testing"

	"github.com/DhavalSuthar-24/gully/internal/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fieldingSide() *team.Team {
	return &team.Team{
		Model: gorm.Model{ID: 2},
		Name:  "Tigers",
		Players: []team.Player{
			{Model: gorm.Model{ID: 11}, Name: "Gopal"},
			{Model: gorm.Model{ID: 12}, Name: "Hari"},
		},
	}
}

func TestDismissalText(t *testing.T) {
	t.Parallel()
	fielding := fieldingSide()
	fielder := uint(12)

	cases := []struct {
		kind    DismissalType
		fielder *uint
		want    string
	}{
		{DismissalBowled, nil, "b Gopal"},
		{DismissalCaught, &fielder, "c Hari b Gopal"},
		{DismissalLBW, nil, "lbw b Gopal"},
		{DismissalRunOut, &fielder, "run out (Hari)"},
		{DismissalStumped, &fielder, "st Hari b Gopal"},
		{DismissalHitWicket, nil, "hit wicket b Gopal"},
		{DismissalRetiredHurt, nil, "retired hurt"},
		{DismissalObstructing, nil, "obstructing the field"},
		{DismissalHitBallTwice, nil, "hit the ball twice"},
		{DismissalTimedOut, nil, "timed out"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			got, err := resolveDismissal(DismissalInput{Kind: tc.kind, FielderID: tc.fielder}, "Gopal", fielding)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDismissalFielderProtocol(t *testing.T) {
	t.Parallel()
	fielding := fieldingSide()
	fielder := uint(12)
	outsider := uint(99)

	t.Run("caught without fielder", func(t *testing.T) {
		_, err := resolveDismissal(DismissalInput{Kind: DismissalCaught}, "Gopal", fielding)
		assert.ErrorIs(t, err, ErrMissingSelection)
	})

	t.Run("bowled with fielder", func(t *testing.T) {
		_, err := resolveDismissal(DismissalInput{Kind: DismissalBowled, FielderID: &fielder}, "Gopal", fielding)
		assert.ErrorIs(t, err, ErrIllegalDelivery)
	})

	t.Run("fielder off the fielding side", func(t *testing.T) {
		_, err := resolveDismissal(DismissalInput{Kind: DismissalCaught, FielderID: &outsider}, "Gopal", fielding)
		assert.ErrorIs(t, err, ErrIneligiblePlayer)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := resolveDismissal(DismissalInput{Kind: "Yorked"}, "Gopal", fielding)
		assert.ErrorIs(t, err, ErrIllegalDelivery)
	})
}

func TestNeedsFielder(t *testing.T) {
	t.Parallel()
	assert.True(t, NeedsFielder(DismissalCaught))
	assert.True(t, NeedsFielder(DismissalRunOut))
	assert.True(t, NeedsFielder(DismissalStumped))
	assert.False(t, NeedsFielder(DismissalBowled))
	assert.False(t, NeedsFielder(DismissalLBW))
	assert.False(t, NeedsFielder(DismissalRetiredHurt))
}

func TestCreditsBowler(t *testing.T) {
	t.Parallel()
	assert.True(t, DismissalBowled.CreditsBowler())
	assert.True(t, DismissalStumped.CreditsBowler())
	assert.True(t, DismissalObstructing.CreditsBowler())
	assert.True(t, DismissalTimedOut.CreditsBowler())
	assert.False(t, DismissalRunOut.CreditsBowler())
	assert.False(t, DismissalRetiredHurt.CreditsBowler())
}

func TestOffTheBowling(t *testing.T) {
	t.Parallel()
	assert.True(t, DismissalBowled.OffTheBowling())
	assert.True(t, DismissalCaught.OffTheBowling())
	assert.True(t, DismissalHitWicket.OffTheBowling())
	assert.False(t, DismissalRunOut.OffTheBowling())
	assert.False(t, DismissalObstructing.OffTheBowling())
	assert.False(t, DismissalRetiredHurt.OffTheBowling())
}
