package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCB1(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCB1(1.4, 0)
		}, "Should panic when the parent has never been visited")
	})
}

func TestUCB1Evaluate(t *testing.T) {
	t.Run("computing the UCB1 value", func(t *testing.T) {
		policy := newUCB1(1.4, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + 1.4*math.Sqrt(math.Log(100)/10)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + c*sqrt(ln(N)/n)")
	})

	t.Run("unvisited children score infinity", func(t *testing.T) {
		policy := newUCB1(1.4, 100)

		require.True(t, math.IsInf(policy.evaluate(0, 0), 1),
			"Zero visits should score +Inf")
		require.Greater(t, policy.evaluate(0, 0), policy.evaluate(1000, 1),
			"An unvisited child should beat any visited child regardless of score")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newUCB1(1.4, 100)
		policy2 := newUCB1(1.4, 1000)

		require.Greater(t, policy2.evaluate(5, 10), policy1.evaluate(5, 10),
			"More parent visits should increase exploration")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCB1(1.4, 100)

		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(5, 20),
			"More child visits should decrease exploration")
	})
}
