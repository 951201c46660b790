package searcher

import (
	"golang.org/x/exp/rand"

	"uno/belief"
	"uno/game"
)

// Rollout rewards.
const (
	Win  = 1.0
	Loss = 0.0
)

// rolloutPolicy holds the fixed random-playout parameters: the depth
// cutoff and the opponent model's probability of playing a card (versus
// drawing) when its sampled hand allows it. Neither is ground truth,
// only a cheap simulation policy.
type rolloutPolicy struct {
	maxDepth int
	playProb float64
	rng      *rand.Rand
	metrics  MetricsCollector
}

// run plays out state to a game end or the depth cutoff and returns the
// reward from the searching agent's perspective: Win if the agent's hand
// empties, Loss if an opponent's does or the cutoff hits first. The
// belief is cloned by the caller per simulation; run mutates it freely.
func (r rolloutPolicy) run(state game.State, bel *belief.Belief) float64 {
	for depth := 0; depth < r.maxDepth; depth++ {
		if state.Terminal() {
			r.metrics.AddFullPlayout()
			if state.OwnerWon() {
				return Win
			}
			return Loss
		}

		if state.SumPlus > 0 {
			state = r.absorbPenalty(state)
		}

		var next game.State
		var ok bool
		if state.Current == 0 {
			next, ok = r.ownStep(state, bel)
		} else {
			next, ok = r.opponentStep(state, bel)
		}
		if !ok { // No legal continuation; end the playout early
			return Loss
		}
		state = next
	}
	return Loss
}

// ownStep plays one uniformly random legal action for the searching
// agent, binding unknown draws and resolving wild colors by the
// preferred-color heuristic, then feeds the observation back into the
// belief.
func (r rolloutPolicy) ownStep(state game.State, bel *belief.Belief) (game.State, bool) {
	actions := game.LegalActions(state)
	if len(actions) == 0 {
		return game.State{}, false
	}

	action := actions[r.rng.Intn(len(actions))]
	drawer := game.NoDrawer
	if action.Kind == game.Draw {
		drawer = 0
		if action.Card.IsUnknown() {
			action.Card = r.sampleUnknown()
		}
	}

	next, err := game.Step(state, action)
	if err != nil {
		return game.State{}, false
	}
	next = r.resolveWildColor(next, action)

	obs := game.Observe(state, action, next, 0, nil, drawer)
	bel.Update(obs, next.Hand, next.OpponentCounts)
	return next, true
}

// opponentStep simulates one opponent turn against a hand sampled from
// the belief. With probability playProb the opponent plays a uniformly
// random playable card from the sampled hand; otherwise (or when nothing
// is playable) it draws. The sampled hypothesis is substituted into the
// state only for the transition; the agent's own hand fields are
// restored afterwards so the hypothesis never leaks into the true state.
func (r rolloutPolicy) opponentStep(state game.State, bel *belief.Belief) (game.State, bool) {
	opponent := state.Current - 1
	hand := bel.SampleHand(opponent)

	var card game.Card
	plays := false
	if r.rng.Float64() < r.playProb {
		substituted := state.Clone()
		substituted.Hand = hand
		var playable []game.Card
		for _, c := range hand {
			if game.IsPlayable(c, substituted) {
				playable = append(playable, c)
			}
		}
		if len(playable) > 0 {
			card = playable[r.rng.Intn(len(playable))]
			plays = true
		}
	}

	var next game.State
	var action game.Action
	drawer := game.NoDrawer
	if plays {
		substituted := state.Clone()
		substituted.Hand = hand
		action = game.Play(card)
		played, err := game.Step(substituted, action)
		if err != nil {
			return game.State{}, false
		}

		// Restore the true own-hand view. One card leaves the opponent's
		// true count; the sampled hypothesis can lag behind absorbed
		// penalties, so the count decrements instead of tracking it.
		next = played
		next.Hand = append([]game.Card(nil), state.Hand...)
		next.OpponentCounts[opponent] = state.OpponentCounts[opponent] - 1

		if card.IsWild() && !next.Terminal() {
			chosen, err := game.Step(next, game.PickColor(game.PreferredColor(played.Hand)))
			if err == nil {
				next = chosen
			}
		}
	} else {
		action = game.DrawAction(game.Unknown)
		drawer = state.Current
		next = state.Clone()
		next.OpponentCounts[opponent]++
		next.Current = game.NextPlayer(next.Current, next.Dir, next.Players)
	}

	obs := game.Observe(state, action, next, state.Current, nil, drawer)
	bel.Update(obs, next.Hand, next.OpponentCounts)
	return next, true
}

// absorbPenalty makes the player about to act swallow the pending Draw
// Two / Draw Four penalty, the same way the authoritative game loop
// does: the agent's hand grows by sampled cards, an opponent's count
// grows by the penalty. The absorbing player still takes their turn.
func (r rolloutPolicy) absorbPenalty(state game.State) game.State {
	next := state.Clone()
	if next.Current == 0 {
		for i := 0; i < next.SumPlus; i++ {
			next.Hand = append(next.Hand, r.sampleUnknown())
		}
	} else {
		next.OpponentCounts[next.Current-1] += next.SumPlus
	}
	next.SumPlus = 0
	return next
}

// resolveWildColor immediately fixes the active color after the agent
// plays a wild, using the most-represented color left in hand. Color
// choice is a rollout policy, not a searched branch.
func (r rolloutPolicy) resolveWildColor(state game.State, action game.Action) game.State {
	if action.Kind != game.PlayCard || !action.Card.IsWild() || state.Terminal() {
		return state
	}
	next, err := game.Step(state, game.PickColor(game.PreferredColor(state.Hand)))
	if err != nil {
		return state
	}
	return next
}

// sampleUnknown binds an unknown draw to a uniformly random vocabulary
// card. This samples the deck composition, not the true remaining deck;
// the approximation matches the belief filter's.
func (r rolloutPolicy) sampleUnknown() game.Card {
	deck := game.Deck()
	return deck[r.rng.Intn(len(deck))]
}
