package game

import (
	"fmt"
	"strings"
)

// Color is a card's suit color. Wild is the color of the two wild card
// types; ColorNone marks an unset active color (right after a wild is
// played, before its color is chosen) and the unknown-card placeholder.
type Color uint8

const (
	ColorNone Color = iota
	Blue
	Green
	Red
	Yellow
	Wild
)

// Colors lists the four choosable suit colors.
var Colors = [4]Color{Blue, Green, Red, Yellow}

func (c Color) String() string {
	switch c {
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Wild:
		return "Wild"
	default:
		return "None"
	}
}

// CardType is a card's face value or command.
type CardType uint8

const (
	TypeNone CardType = iota
	Zero
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Skip
	DrawTwo
	Reverse
	WildCard
	DrawFour
)

func (t CardType) String() string {
	switch {
	case t >= Zero && t <= Nine:
		return fmt.Sprintf("%d", t-Zero)
	case t == Skip:
		return "Skip"
	case t == DrawTwo:
		return "Draw Two"
	case t == Reverse:
		return "Reverse"
	case t == WildCard:
		return "Wild"
	case t == DrawFour:
		return "Draw Four"
	default:
		return "None"
	}
}

// Card is one face of the UNO deck.
type Card struct {
	Color Color
	Type  CardType
}

// Unknown is the placeholder for a card whose identity is not observable,
// e.g. a pending draw from the face-down deck.
var Unknown = Card{}

// IsUnknown reports whether c is the unknown-card placeholder.
func (c Card) IsUnknown() bool {
	return c == Unknown
}

// IsWild reports whether c requires a color choice after being played.
func (c Card) IsWild() bool {
	return c.Color == Wild
}

// String renders the card in "Color-Type" format, e.g. "Blue-5" or
// "Wild-Draw Four".
func (c Card) String() string {
	if c.IsUnknown() {
		return "Unknown"
	}
	return c.Color.String() + "-" + c.Type.String()
}

// ParseCard parses the "Color-Type" format back into a Card.
func ParseCard(s string) (Card, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Card{}, fmt.Errorf("invalid card format: %q", s)
	}

	var color Color
	switch parts[0] {
	case "Blue":
		color = Blue
	case "Green":
		color = Green
	case "Red":
		color = Red
	case "Yellow":
		color = Yellow
	case "Wild":
		color = Wild
	default:
		return Card{}, fmt.Errorf("invalid card color: %q", s)
	}

	var typ CardType
	switch parts[1] {
	case "Skip":
		typ = Skip
	case "Draw Two":
		typ = DrawTwo
	case "Reverse":
		typ = Reverse
	case "Wild":
		typ = WildCard
	case "Draw Four":
		typ = DrawFour
	default:
		if len(parts[1]) != 1 || parts[1][0] < '0' || parts[1][0] > '9' {
			return Card{}, fmt.Errorf("invalid card type: %q", s)
		}
		typ = Zero + CardType(parts[1][0]-'0')
	}

	return Card{Color: color, Type: typ}, nil
}

// MustParseCard is ParseCard for literals; it panics on malformed input.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Deck returns the unshuffled 108-card UNO deck: per color one 0, two
// each of 1-9, Skip, Draw Two and Reverse, plus four Wild and four Wild
// Draw Four.
func Deck() []Card {
	deck := make([]Card, 0, 108)
	for _, color := range Colors {
		deck = append(deck, Card{color, Zero})
		for t := One; t <= Reverse; t++ {
			deck = append(deck, Card{color, t}, Card{color, t})
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{Wild, WildCard}, Card{Wild, DrawFour})
	}
	return deck
}

// Score is the card's point value when left in a losing hand: 50 for
// Draw Four, 20 for the other command cards, face value otherwise.
func (c Card) Score() int {
	switch {
	case c.Type == DrawFour:
		return 50
	case c.Type == Skip || c.Type == DrawTwo || c.Type == Reverse || c.Type == WildCard:
		return 20
	case c.Type >= Zero && c.Type <= Nine:
		return int(c.Type - Zero)
	default:
		return 0
	}
}

// HandScore sums the point values of all cards in a hand.
func HandScore(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.Score()
	}
	return total
}

// PreferredColor is the color most represented in the hand, used to
// resolve wild-card color choices without branching on them. Ties break
// toward the later color in Colors order; a hand with no colored cards
// gets Yellow by that rule.
func PreferredColor(hand []Card) Color {
	counts := map[Color]int{}
	for _, c := range hand {
		if c.Color != Wild {
			counts[c.Color]++
		}
	}

	best := Blue
	bestCount := -1
	for _, color := range Colors {
		if counts[color] >= bestCount {
			best = color
			bestCount = counts[color]
		}
	}
	return best
}
