package engine

import (
	"golang.org/x/exp/rand"

	"uno/game"
)

// Bot is the decision policy for a non-planning seat: given the seat's
// real hand and the table state, return the index of the card to play,
// or -1 to draw.
type Bot interface {
	PickCard(hand []game.Card, table game.State) int
}

// RandomBot plays a uniformly random playable card and draws when it has
// none.
type RandomBot struct {
	Rng *rand.Rand
}

func (b RandomBot) PickCard(hand []game.Card, table game.State) int {
	view := table.Clone()
	view.Hand = hand

	var playable []int
	for i, c := range hand {
		if game.IsPlayable(c, view) {
			playable = append(playable, i)
		}
	}
	if len(playable) == 0 {
		return -1
	}
	return playable[b.Rng.Intn(len(playable))]
}

// GreedyBot plays the highest-scoring playable card, shedding command
// cards early the way the reference bots prefer them.
type GreedyBot struct{}

func (b GreedyBot) PickCard(hand []game.Card, table game.State) int {
	view := table.Clone()
	view.Hand = hand

	best := -1
	bestScore := -1
	for i, c := range hand {
		if game.IsPlayable(c, view) && c.Score() > bestScore {
			best = i
			bestScore = c.Score()
		}
	}
	return best
}
