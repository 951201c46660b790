package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"uno/game"
)

func testPolicy(maxDepth int, seed uint64) rolloutPolicy {
	return rolloutPolicy{
		maxDepth: maxDepth,
		playProb: DefaultPlayProb,
		rng:      rand.New(rand.NewSource(seed)),
		metrics:  NewNoMetricsCollector(),
	}
}

func TestAbsorbPenalty(t *testing.T) {
	t.Run("the agent swallows the penalty as sampled cards", func(t *testing.T) {
		state := ownTurnState()
		state.SumPlus = 4

		next := testPolicy(DefaultMaxDepth, 7).absorbPenalty(state)

		require.Len(t, next.Hand, len(state.Hand)+4, "The hand should grow by the penalty")
		require.Zero(t, next.SumPlus, "The counter resets once absorbed")
		require.Equal(t, state.OpponentCounts, next.OpponentCounts,
			"Opponent counts should be untouched")
		require.Equal(t, 0, next.Current, "Absorbing should not end the turn")
	})

	t.Run("an opponent swallows the penalty as a count bump", func(t *testing.T) {
		state := opponentTurnState()
		state.SumPlus = 2
		before := state.OpponentCounts[state.Current-1]

		next := testPolicy(DefaultMaxDepth, 7).absorbPenalty(state)

		require.Equal(t, before+2, next.OpponentCounts[next.Current-1],
			"The opponent about to act swallows the penalty")
		require.Zero(t, next.SumPlus, "The counter resets once absorbed")
		require.Equal(t, state.Hand, next.Hand, "The agent's hand should be untouched")
	})
}

func TestRunUnderPenalty(t *testing.T) {
	// One declared card left and a two-step budget: the rollout wins only
	// when the hand empties on the first step.
	base := game.State{
		Color:          game.Blue,
		Dir:            1,
		Top:            game.MustParseCard("Blue-5"),
		Uno:            true,
		Hand:           []game.Card{game.MustParseCard("Blue-7")},
		OpponentCounts: []int{3},
		Current:        0,
		Players:        2,
	}

	t.Run("winning with no pending penalty", func(t *testing.T) {
		reward := testPolicy(2, 42).run(base.Clone(), testBelief(base, 7))

		require.Equal(t, Win, reward,
			"Playing the last card is the only legal move and ends the game")
	})

	t.Run("losing once a pending penalty refills the hand", func(t *testing.T) {
		state := base.Clone()
		state.SumPlus = 4

		reward := testPolicy(2, 42).run(state, testBelief(state, 7))

		require.Equal(t, Loss, reward,
			"Four forced draws put the hand out of reach of the depth budget")
	})
}
