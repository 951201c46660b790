package game

import "fmt"

// ActionKind tags the Action variant.
type ActionKind uint8

const (
	PlayCard ActionKind = iota
	ChooseColor
	AddDraw
	SkipTurn
	ReverseTurn
	Draw
	DeclareUno
)

func (k ActionKind) String() string {
	switch k {
	case PlayCard:
		return "play"
	case ChooseColor:
		return "choose-color"
	case AddDraw:
		return "add-draw"
	case SkipTurn:
		return "skip"
	case ReverseTurn:
		return "reverse"
	case Draw:
		return "draw"
	case DeclareUno:
		return "uno"
	default:
		return "unknown"
	}
}

// Action is a tagged union over everything a player (or a card effect)
// can do. Only the fields relevant to Kind are meaningful: Card for
// PlayCard and Draw, Color for ChooseColor, Plus for AddDraw.
type Action struct {
	Kind  ActionKind
	Card  Card
	Color Color
	Plus  int
}

func (a Action) String() string {
	switch a.Kind {
	case PlayCard, Draw:
		return fmt.Sprintf("%s %s", a.Kind, a.Card)
	case ChooseColor:
		return fmt.Sprintf("%s %s", a.Kind, a.Color)
	case AddDraw:
		return fmt.Sprintf("%s +%d", a.Kind, a.Plus)
	default:
		return a.Kind.String()
	}
}

// Play builds a PlayCard action.
func Play(card Card) Action {
	return Action{Kind: PlayCard, Card: card}
}

// DrawAction builds a Draw action; pass Unknown when the deck's contents
// are not observable and the caller will bind the card later.
func DrawAction(card Card) Action {
	return Action{Kind: Draw, Card: card}
}

// PickColor builds a ChooseColor action.
func PickColor(color Color) Action {
	return Action{Kind: ChooseColor, Color: color}
}

// IsPlayable reports whether the owner of state may legally play card. A
// card is playable when it matches the active color, matches the top
// card's type, or is wild; a Wild Draw Four additionally requires that no
// hand card matches the active color.
func IsPlayable(card Card, state State) bool {
	if state.Top == (Card{}) {
		return false
	}

	if card.Color == Wild {
		if card.Type != DrawFour {
			return true
		}
		for _, c := range state.Hand {
			if c.Color == state.Color {
				return false
			}
		}
		return true
	}

	return card.Color == state.Color || card.Type == state.Top.Type
}

// LegalActions enumerates the legal actions for the state's owner, in a
// stable order: one PlayCard per playable hand card in hand order, a
// Draw with an unknown card when nothing is playable, and a DeclareUno
// once the hand is down to one undeclared card. An empty result marks a
// terminal state.
func LegalActions(state State) []Action {
	if state.Terminal() {
		return nil
	}

	var actions []Action
	for _, card := range state.Hand {
		if IsPlayable(card, state) {
			actions = append(actions, Play(card))
		}
	}

	if len(actions) == 0 {
		actions = append(actions, DrawAction(Unknown))
	}

	if len(state.Hand) == 1 && !state.Uno {
		actions = append(actions, Action{Kind: DeclareUno})
	}

	return actions
}
