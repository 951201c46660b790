package planner

import (
	"fmt"

	"uno/game"
)

// Snapshot is the authoritative external view of the table from the
// planning seat's perspective, with cards in the external "Color-Type"
// string format ("Blue-5", "Wild-Draw Four").
type Snapshot struct {
	Hand           []string
	OpponentCounts []int
	TopCard        string
	ActiveColor    string
	Clockwise      bool
	SkipPending    bool
	ForcedDraws    int
	UnoDeclared    bool
	CurrentPlayer  int
	Players        int
}

// toState converts the snapshot into the internal immutable state.
func (s Snapshot) toState() (game.State, error) {
	hand := make([]game.Card, 0, len(s.Hand))
	for _, c := range s.Hand {
		card, err := game.ParseCard(c)
		if err != nil {
			return game.State{}, fmt.Errorf("snapshot hand: %w", err)
		}
		hand = append(hand, card)
	}

	var top game.Card
	if s.TopCard != "" {
		card, err := game.ParseCard(s.TopCard)
		if err != nil {
			return game.State{}, fmt.Errorf("snapshot top card: %w", err)
		}
		top = card
	}

	color := game.ColorNone
	if s.ActiveColor != "" {
		// Reuse the card parser's color table via a throwaway card.
		card, err := game.ParseCard(s.ActiveColor + "-0")
		if err != nil {
			return game.State{}, fmt.Errorf("snapshot active color: %w", err)
		}
		color = card.Color
	}

	dir := 1
	if !s.Clockwise {
		dir = -1
	}

	players := s.Players
	if players == 0 {
		players = len(s.OpponentCounts) + 1
	}
	if players != len(s.OpponentCounts)+1 {
		return game.State{}, fmt.Errorf("snapshot: %d players but %d opponent counts",
			players, len(s.OpponentCounts))
	}

	return game.State{
		Color:          color,
		Dir:            dir,
		Top:            top,
		Skip:           s.SkipPending,
		SumPlus:        s.ForcedDraws,
		Uno:            s.UnoDeclared,
		Hand:           hand,
		OpponentCounts: append([]int(nil), s.OpponentCounts...),
		Current:        s.CurrentPlayer,
		Players:        players,
	}, nil
}

// HandIndex maps a chosen action back to the external representation: the
// index of the card to play in the snapshot's hand order. It reports
// false for actions that are not card plays (draw, declare), which the
// caller handles directly.
func HandIndex(snap Snapshot, action game.Action) (int, bool) {
	if action.Kind != game.PlayCard {
		return 0, false
	}
	want := action.Card.String()
	for i, c := range snap.Hand {
		if c == want {
			return i, true
		}
	}
	return 0, false
}

// WildColor picks the color to declare after playing a wild from the
// given remaining hand, using the same heuristic the search uses.
func WildColor(remaining []string) (string, error) {
	hand := make([]game.Card, 0, len(remaining))
	for _, c := range remaining {
		card, err := game.ParseCard(c)
		if err != nil {
			return "", fmt.Errorf("wild color: %w", err)
		}
		hand = append(hand, card)
	}
	return game.PreferredColor(hand).String(), nil
}
