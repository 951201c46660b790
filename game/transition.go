package game

import (
	"errors"
	"fmt"
)

// ErrInvalidAction wraps every rejection by Step: malformed payloads,
// cards not in hand, illegal plus values. Callers match it with
// errors.Is.
var ErrInvalidAction = errors.New("invalid action")

// Step applies action to state and returns the successor state. It is
// total over the actions LegalActions produces (once unknown draws are
// bound to concrete cards) and rejects everything else with
// ErrInvalidAction. Forced-draw absorption by the next player is the
// calling loop's job; Step only accumulates SumPlus.
func Step(state State, action Action) (State, error) {
	next := state.Clone()

	switch action.Kind {
	case PlayCard:
		if action.Card.IsUnknown() {
			return State{}, fmt.Errorf("%w: play requires a concrete card", ErrInvalidAction)
		}
		if !removeCard(&next.Hand, action.Card) {
			return State{}, fmt.Errorf("%w: card %s not in hand", ErrInvalidAction, action.Card)
		}
		next.Top = action.Card
		if action.Card.Color != Wild {
			next.Color = action.Card.Color
		} else {
			// Color stays unset until a ChooseColor follows.
			next.Color = ColorNone
		}
		applyCardEffect(&next, action.Card.Type)
		advance(&next, action.Card.Type)

	case ChooseColor:
		if action.Color == ColorNone || action.Color == Wild {
			return State{}, fmt.Errorf("%w: %s is not a choosable color", ErrInvalidAction, action.Color)
		}
		next.Color = action.Color

	case AddDraw:
		if action.Plus != 2 && action.Plus != 4 {
			return State{}, fmt.Errorf("%w: illegal plus value %d", ErrInvalidAction, action.Plus)
		}
		next.SumPlus += action.Plus

	case SkipTurn:
		applyCardEffect(&next, Skip)
		advance(&next, Skip)

	case ReverseTurn:
		applyCardEffect(&next, Reverse)
		advance(&next, Reverse)

	case Draw:
		if action.Card.IsUnknown() {
			return State{}, fmt.Errorf("%w: draw requires a concrete card; bind the unknown placeholder first", ErrInvalidAction)
		}
		next.Hand = append(next.Hand, action.Card)
		// Drawing ends the turn in this variant.
		next.Current = NextPlayer(next.Current, next.Dir, next.Players)

	case DeclareUno:
		next.Uno = true

	default:
		return State{}, fmt.Errorf("%w: unknown action kind %d", ErrInvalidAction, action.Kind)
	}

	return next, nil
}

// applyCardEffect mutates next with the intrinsic effect of a played
// card type, before the turn advances. The skip flag describes only the
// card just played, so it always resets first.
func applyCardEffect(next *State, typ CardType) {
	next.Skip = false
	switch typ {
	case Skip:
		next.Skip = true
	case Reverse:
		next.Dir = -next.Dir
	case DrawTwo:
		next.SumPlus += 2
	case DrawFour:
		next.SumPlus += 4
	}
}

// advance moves the current-player index past the play: one step
// normally, two for a skip or a two-player reverse (which behaves as a
// skip).
func advance(next *State, typ CardType) {
	steps := 1
	if typ == Skip || (typ == Reverse && next.Players == 2) {
		steps = 2
	}
	for i := 0; i < steps; i++ {
		next.Current = NextPlayer(next.Current, next.Dir, next.Players)
	}
}

// removeCard deletes exactly one instance of card from hand, reporting
// whether it was present.
func removeCard(hand *[]Card, card Card) bool {
	for i, c := range *hand {
		if c == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}
