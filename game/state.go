package game

// State is one player's view of the game at a point in play. It carries
// the public table fields plus the owner's own hand; opponents appear
// only as hand sizes. States are immutable values: Step and every other
// operation return fresh copies and never mutate their input.
type State struct {
	Color   Color // active color; ColorNone while a wild's choice is pending
	Dir     int   // play direction, +1 or -1
	Top     Card  // top of the discard pile
	Skip    bool  // last applied effect skipped a player
	SumPlus int   // accumulated forced-draw penalty for the next player to absorb
	Uno     bool  // owner has declared UNO this hand

	Hand           []Card // owner's hand, in draw order
	OpponentCounts []int  // opponent hand sizes, indexed clockwise from the owner
	Current        int    // index of the player to act; the owner is player 0
	Players        int
}

// Clone returns a deep copy. The slices are the only shared structure,
// so copying them is enough.
func (s State) Clone() State {
	next := s
	next.Hand = append([]Card(nil), s.Hand...)
	next.OpponentCounts = append([]int(nil), s.OpponentCounts...)
	return next
}

// Terminal reports whether the hand is over: someone has emptied their
// hand. LegalActions returns nothing from a terminal state.
func (s State) Terminal() bool {
	if len(s.Hand) == 0 {
		return true
	}
	for _, n := range s.OpponentCounts {
		if n == 0 {
			return true
		}
	}
	return false
}

// OwnerWon reports whether the state is terminal with the owner's hand
// empty.
func (s State) OwnerWon() bool {
	return len(s.Hand) == 0
}

// NextPlayer rotates the current-player index by direction, wrapping by
// player count.
func NextPlayer(current, dir, players int) int {
	return ((current+dir)%players + players) % players
}
