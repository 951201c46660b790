package game

// NoDrawer marks an observation where nobody drew.
const NoDrawer = -1

// Observation is what the state's owner actually witnesses about one
// step: the resulting public fields, their own hand, who acted and how,
// the running list of discards they have seen, and who drew (never what
// was drawn).
type Observation struct {
	Hand           []Card
	OpponentCounts []int
	Top            Card
	Color          Color
	Dir            int
	Skip           bool
	SumPlus        int
	Uno            bool

	Action       Action
	Actor        int
	SeenDiscards []Card
	Drawer       int
}

// Observe derives the owner's observation of a single step. seen is the
// running accumulator of discards the owner has witnessed so far; the
// just-played card is appended for PlayCard actions and the accumulator
// itself is never mutated. drawer is NoDrawer unless some player drew.
func Observe(prev State, action Action, next State, actor int, seen []Card, drawer int) Observation {
	discards := seen
	if action.Kind == PlayCard {
		discards = make([]Card, 0, len(seen)+1)
		discards = append(discards, seen...)
		discards = append(discards, action.Card)
	}

	return Observation{
		Hand:           append([]Card(nil), next.Hand...),
		OpponentCounts: append([]int(nil), next.OpponentCounts...),
		Top:            next.Top,
		Color:          next.Color,
		Dir:            next.Dir,
		Skip:           next.Skip,
		SumPlus:        next.SumPlus,
		Uno:            next.Uno,
		Action:         action,
		Actor:          actor,
		SeenDiscards:   discards,
		Drawer:         drawer,
	}
}
