package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepPlayCard(t *testing.T) {
	t.Run("playing a color match", func(t *testing.T) {
		state := exampleState()

		next, err := Step(state, Play(MustParseCard("Blue-7")))

		require.NoError(t, err)
		require.Equal(t, MustParseCard("Blue-7"), next.Top, "Top card should update")
		require.Equal(t, Blue, next.Color, "Active color should follow the card")
		require.Equal(t, hand("Red-5", "Wild-Wild", "Green-Skip"), next.Hand,
			"Exactly one instance should leave the hand")
		require.Equal(t, 1, next.Current, "Turn should advance by one")
		require.Equal(t, exampleState(), state, "Input state should not be mutated")
	})

	t.Run("removing exactly one duplicate", func(t *testing.T) {
		state := exampleState()
		state.Hand = hand("Blue-7", "Blue-7")

		next, err := Step(state, Play(MustParseCard("Blue-7")))

		require.NoError(t, err)
		require.Equal(t, hand("Blue-7"), next.Hand, "Only one copy should be removed")
	})

	t.Run("skip advances past one player", func(t *testing.T) {
		state := exampleState()
		state.Hand = hand("Red-Skip", "Blue-7")
		state.Top = MustParseCard("Red-5")
		state.Color = Red
		state.Current = 1

		next, err := Step(state, Play(MustParseCard("Red-Skip")))

		require.NoError(t, err)
		require.Equal(t, 3, next.Current, "Skip from player 1 clockwise should land on player 3")
		require.Equal(t, 1, next.Dir, "Direction should be unchanged")
		require.True(t, next.Skip, "Skip flag should record the effect")
	})

	t.Run("clearing a stale skip flag", func(t *testing.T) {
		state := exampleState()
		state.Skip = true
		state.Hand = hand("Blue-Reverse", "Blue-Draw Two", "Red-5")

		next, err := Step(state, Play(MustParseCard("Blue-Reverse")))
		require.NoError(t, err)
		require.False(t, next.Skip, "A reverse should not inherit the previous play's skip")

		next, err = Step(state, Play(MustParseCard("Blue-Draw Two")))
		require.NoError(t, err)
		require.False(t, next.Skip, "A draw card should not inherit the previous play's skip")
	})

	t.Run("reverse flips direction", func(t *testing.T) {
		state := exampleState()
		state.Hand = hand("Blue-Reverse", "Red-5")

		next, err := Step(state, Play(MustParseCard("Blue-Reverse")))

		require.NoError(t, err)
		require.Equal(t, -1, next.Dir, "Direction should flip")
		require.Equal(t, 3, next.Current, "Turn should advance along the new direction")
	})

	t.Run("reverse acts as skip with two players", func(t *testing.T) {
		state := exampleState()
		state.Hand = hand("Blue-Reverse", "Red-5")
		state.OpponentCounts = []int{7}
		state.Players = 2

		next, err := Step(state, Play(MustParseCard("Blue-Reverse")))

		require.NoError(t, err)
		require.Equal(t, -1, next.Dir, "Direction should still flip")
		require.Equal(t, 0, next.Current, "Two-player reverse should return the turn to the player")
	})

	t.Run("draw cards accumulate the forced-draw counter", func(t *testing.T) {
		state := exampleState()
		state.Hand = hand("Blue-Draw Two", "Wild-Draw Four")

		next, err := Step(state, Play(MustParseCard("Blue-Draw Two")))
		require.NoError(t, err)
		require.Equal(t, 2, next.SumPlus, "Draw Two should add 2")

		next.Color = Green // no Green in hand, so the Draw Four is legal
		next.Current = 0
		next, err = Step(next, Play(MustParseCard("Wild-Draw Four")))
		require.NoError(t, err)
		require.Equal(t, 6, next.SumPlus, "Draw Four should stack another 4")
	})

	t.Run("wild leaves the color pending", func(t *testing.T) {
		state := exampleState()

		next, err := Step(state, Play(MustParseCard("Wild-Wild")))

		require.NoError(t, err)
		require.Equal(t, ColorNone, next.Color, "Color should stay unset until chosen")
		require.Equal(t, 1, next.Current, "Turn should still advance")
	})

	t.Run("rejecting plays that do not match the hand", func(t *testing.T) {
		state := exampleState()

		_, err := Step(state, Play(MustParseCard("Yellow-9")))
		require.ErrorIs(t, err, ErrInvalidAction, "Absent card should be rejected")

		_, err = Step(state, Play(Unknown))
		require.ErrorIs(t, err, ErrInvalidAction, "Unknown card should be rejected")
	})
}

func TestStepOtherActions(t *testing.T) {
	t.Run("choosing a color", func(t *testing.T) {
		state := exampleState()

		next, err := Step(state, PickColor(Green))

		require.NoError(t, err)
		require.Equal(t, Green, next.Color, "Active color should be set")
		require.Equal(t, 0, next.Current, "Color choice should not advance the turn")

		_, err = Step(state, PickColor(Wild))
		require.ErrorIs(t, err, ErrInvalidAction, "Wild is not a choosable color")
	})

	t.Run("adding a standalone draw penalty", func(t *testing.T) {
		state := exampleState()

		next, err := Step(state, Action{Kind: AddDraw, Plus: 4})
		require.NoError(t, err)
		require.Equal(t, 4, next.SumPlus, "Plus value should accumulate")

		_, err = Step(state, Action{Kind: AddDraw, Plus: 3})
		require.ErrorIs(t, err, ErrInvalidAction, "Only +2 and +4 are legal")
	})

	t.Run("standalone skip and reverse mirror the embedded effects", func(t *testing.T) {
		state := exampleState()
		state.Current = 1

		next, err := Step(state, Action{Kind: SkipTurn})
		require.NoError(t, err)
		require.Equal(t, 3, next.Current, "Standalone skip should advance twice")

		next, err = Step(state, Action{Kind: ReverseTurn})
		require.NoError(t, err)
		require.Equal(t, -1, next.Dir, "Standalone reverse should flip direction")
		require.Equal(t, 0, next.Current, "Turn should advance along the new direction")
	})

	t.Run("drawing a bound card", func(t *testing.T) {
		state := exampleState()

		next, err := Step(state, DrawAction(MustParseCard("Yellow-9")))

		require.NoError(t, err)
		require.Equal(t, append(exampleState().Hand, MustParseCard("Yellow-9")), next.Hand,
			"Drawn card should append to the hand")
		require.Equal(t, 1, next.Current, "Drawing should end the turn")

		_, err = Step(state, DrawAction(Unknown))
		require.ErrorIs(t, err, ErrInvalidAction,
			"The unknown placeholder must be bound before stepping")
	})

	t.Run("declaring uno", func(t *testing.T) {
		state := exampleState()
		state.Hand = hand("Blue-7")

		next, err := Step(state, Action{Kind: DeclareUno})

		require.NoError(t, err)
		require.True(t, next.Uno, "Declaration flag should be set")
		require.Equal(t, state.Hand, next.Hand, "Nothing else should change")
		require.Equal(t, 0, next.Current, "Declaration should not advance the turn")
	})
}

func TestStepTotality(t *testing.T) {
	t.Run("every legal action steps successfully", func(t *testing.T) {
		states := []State{
			exampleState(),
			func() State {
				s := exampleState()
				s.Hand = hand("Red-2", "Green-1") // draw-only
				return s
			}(),
			func() State {
				s := exampleState()
				s.Hand = hand("Blue-7") // play + declare
				return s
			}(),
		}

		for _, state := range states {
			for _, action := range LegalActions(state) {
				if action.Kind == Draw && action.Card.IsUnknown() {
					action.Card = MustParseCard("Yellow-3")
				}

				next, err := Step(state, action)

				require.NoError(t, err, "Legal action %s should step", action)
				require.Contains(t, []int{1, -1}, next.Dir, "Direction invariant should hold")
				require.Len(t, next.OpponentCounts, next.Players-1,
					"Opponent count vector should match player count")
				switch action.Kind {
				case PlayCard:
					require.Len(t, next.Hand, len(state.Hand)-1, "Play should shrink the hand by one")
				case Draw:
					require.Len(t, next.Hand, len(state.Hand)+1, "Draw should grow the hand by one")
				default:
					require.Len(t, next.Hand, len(state.Hand), "Hand size should be unchanged")
				}
			}
		}
	})
}

func TestNextPlayer(t *testing.T) {
	t.Run("rotating with wraparound in both directions", func(t *testing.T) {
		require.Equal(t, 0, NextPlayer(3, 1, 4), "Clockwise should wrap to 0")
		require.Equal(t, 3, NextPlayer(0, -1, 4), "Counterclockwise should wrap to the last player")
		require.Equal(t, 2, NextPlayer(1, 1, 4), "Ordinary step should add the direction")
	})
}
