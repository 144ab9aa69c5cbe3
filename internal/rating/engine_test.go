package rating_test

import (
	"testing"

	"github.com/mvoss/pongbot/internal/rating"
	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	engine := rating.New(0.94)

	assert.InDelta(t, 0.5, engine.ExpectedScore(1200, 1200), 1e-9, "equal ratings should give even odds")
	assert.Greater(t, engine.ExpectedScore(1400, 1200), 0.5, "higher-rated side should be favoured")
	assert.Less(t, engine.ExpectedScore(1200, 1400), 0.5, "lower-rated side should be the underdog")

	// The two expectancies of a match always sum to one.
	sum := engine.ExpectedScore(1337, 1100) + engine.ExpectedScore(1100, 1337)
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSinglesChange(t *testing.T) {
	engine := rating.New(0.94)

	t.Run("no surprise means no change", func(t *testing.T) {
		// Equal ratings, drawn expectancy of 0.5: a "result" matching the
		// expectancy produces a zero delta.
		delta := engine.SinglesChange(1200, 1200, 0, 0.5)
		assert.InDelta(t, 0.0, delta, 1e-9)
	})

	t.Run("win over equal opponent moves baseline K/2", func(t *testing.T) {
		delta := engine.SinglesChange(1200, 1200, 0, 1)
		assert.InDelta(t, 16.0, delta, 1e-9)
	})

	t.Run("win over weaker opponent moves less", func(t *testing.T) {
		vsEqual := engine.SinglesChange(1200, 1200, 0, 1)
		vsWeaker := engine.SinglesChange(1600, 1200, 0, 1)
		assert.Less(t, vsWeaker, vsEqual)
		assert.Greater(t, vsWeaker, 0.0)
	})

	t.Run("loss is negative and symmetric at equal ratings", func(t *testing.T) {
		win := engine.SinglesChange(1200, 1200, 0, 1)
		loss := engine.SinglesChange(1200, 1200, 0, 0)
		assert.InDelta(t, -win, loss, 1e-9)
	})

	t.Run("volatility amplifies the swing", func(t *testing.T) {
		calm := engine.SinglesChange(1200, 1200, 0, 1)
		fresh := engine.SinglesChange(1200, 1200, 1, 1)
		assert.InDelta(t, 2*calm, fresh, 1e-9)
	})
}

func TestDoublesChange(t *testing.T) {
	engine := rating.New(0.94)

	teamA := engine.TeamRating(1300, 1100)
	teamB := engine.TeamRating(1200, 1200)
	assert.InDelta(t, teamA, teamB, 1e-9, "team ratings are plain means")

	delta := engine.DoublesChange(teamA, teamB, 0, 1)
	assert.InDelta(t, 16.0, delta, 1e-9)
}

func TestTeamRating(t *testing.T) {
	engine := rating.New(0.94)

	assert.InDelta(t, 1250.0, engine.TeamRating(1200, 1300), 1e-9)
	assert.InDelta(t, 1200.0, engine.TeamRating(1200), 1e-9)
	assert.InDelta(t, 0.0, engine.TeamRating(), 1e-9)
}

func TestDecayTau(t *testing.T) {
	engine := rating.New(0.94)

	assert.InDelta(t, 0.94, engine.DecayTau(1), 1e-9)
	assert.InDelta(t, 0.0, engine.DecayTau(0), 1e-9)

	// Repeated decay stays positive but shrinks monotonically.
	tau := 1.0
	for i := 0; i < 10; i++ {
		next := engine.DecayTau(tau)
		assert.Less(t, next, tau)
		assert.Greater(t, next, 0.0)
		tau = next
	}
}
