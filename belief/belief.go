// Package belief maintains a particle-filter approximation of the
// posterior over opponents' hidden hands. Each particle is one concrete
// assignment of hands to every opponent, consistent with the observer's
// own cards, the discards they have seen, and the known hand sizes.
// Particles carry no weights; survival and resampling are uniform.
package belief

import (
	"golang.org/x/exp/rand"

	"uno/game"
)

// Particle is one hypothesis: a concrete hand per opponent, indexed the
// same way as State.OpponentCounts.
type Particle [][]game.Card

// Clone deep-copies the particle so one simulation's hypothesis edits
// never leak into another's.
func (p Particle) Clone() Particle {
	out := make(Particle, len(p))
	for i, hand := range p {
		out[i] = append([]game.Card(nil), hand...)
	}
	return out
}

// resampleFloor is the surviving fraction below which Update resamples
// back to the configured particle count.
const resampleFloor = 0.3

// Belief is a bounded, unweighted particle set.
type Belief struct {
	particles []Particle
	size      int
	rng       *rand.Rand
}

// New builds a belief of size particles. Each particle deals the card
// vocabulary minus the observer's hand and seen discards into hands of
// the required sizes. When duplicates over-count and the pool runs dry,
// the deal is padded with uniformly drawn vocabulary cards; the result
// is an approximation, not an exact multiset deal.
func New(ownHand []game.Card, opponentSizes []int, seen []game.Card, size int, rng *rand.Rand) *Belief {
	b := &Belief{
		particles: make([]Particle, 0, size),
		size:      size,
		rng:       rng,
	}

	pool := unseenPool(ownHand, seen)
	for i := 0; i < size; i++ {
		b.particles = append(b.particles, b.deal(pool, opponentSizes))
	}
	return b
}

// unseenPool removes one instance of every known card (own hand plus
// witnessed discards) from the full deck.
func unseenPool(ownHand, seen []game.Card) []game.Card {
	pool := game.Deck()
	for _, known := range append(append([]game.Card(nil), ownHand...), seen...) {
		for i, c := range pool {
			if c == known {
				pool[i] = pool[len(pool)-1]
				pool = pool[:len(pool)-1]
				break
			}
		}
	}
	return pool
}

func (b *Belief) deal(pool []game.Card, opponentSizes []int) Particle {
	shuffled := append([]game.Card(nil), pool...)
	b.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	deck := game.Deck()
	particle := make(Particle, len(opponentSizes))
	for i, want := range opponentSizes {
		hand := make([]game.Card, 0, want)
		for len(hand) < want {
			if len(shuffled) == 0 {
				// Pool underflow: pad with an arbitrary vocabulary card.
				hand = append(hand, deck[b.rng.Intn(len(deck))])
				continue
			}
			hand = append(hand, shuffled[len(shuffled)-1])
			shuffled = shuffled[:len(shuffled)-1]
		}
		particle[i] = hand
	}
	return particle
}

// Len is the current particle count.
func (b *Belief) Len() int {
	return len(b.particles)
}

// Size is the configured (original) particle count.
func (b *Belief) Size() int {
	return b.size
}

// Clone deep-copies the belief, sharing the RNG.
func (b *Belief) Clone() *Belief {
	particles := make([]Particle, len(b.particles))
	for i, p := range b.particles {
		particles[i] = p.Clone()
	}
	return &Belief{particles: particles, size: b.size, rng: b.rng}
}

// Update filters the particle set against one observation: particles
// whose size vectors no longer match are dropped; an opponent's observed
// card play drops particles that could not have made it and removes the
// card from the hypotheses that could. If fewer than 30% of the
// configured count survive, the set is resampled with replacement back
// to full size, or rebuilt from scratch when nothing survives. The
// filter is strategy-agnostic: it never reasons about which cards an
// opponent would prefer to play.
func (b *Belief) Update(obs game.Observation, ownHand []game.Card, opponentSizes []int) {
	survivors := b.particles[:0]
	for _, p := range b.particles {
		if obs.Action.Kind == game.PlayCard && obs.Actor > 0 {
			idx := obs.Actor - 1
			if !removeHypothesisCard(p, idx, obs.Action.Card) {
				continue
			}
		}
		// Size check runs after the hypothesis edit so a consistent
		// particle matches the post-action sizes. Opponent draws grow a
		// hand no particle can account for; everything dies and the
		// reinitialization below takes over.
		if !sizesMatch(p, opponentSizes) {
			continue
		}
		survivors = append(survivors, p)
	}
	b.particles = survivors

	if len(b.particles) == 0 {
		rebuilt := New(ownHand, opponentSizes, obs.SeenDiscards, b.size, b.rng)
		b.particles = rebuilt.particles
		return
	}

	if float64(len(b.particles)) < resampleFloor*float64(b.size) {
		b.resample()
	}
}

// sizesMatch reports whether the particle's hand sizes are consistent
// with the observed opponent sizes after the hypothesis edit below.
func sizesMatch(p Particle, opponentSizes []int) bool {
	if len(p) != len(opponentSizes) {
		return false
	}
	for i, hand := range p {
		if len(hand) != opponentSizes[i] {
			return false
		}
	}
	return true
}

// removeHypothesisCard deletes one instance of card from the particle's
// hand for opponent idx, reporting whether the hypothesis held the card
// at all.
func removeHypothesisCard(p Particle, idx int, card game.Card) bool {
	if idx < 0 || idx >= len(p) {
		return false
	}
	for i, c := range p[idx] {
		if c == card {
			p[idx] = append(p[idx][:i], p[idx][i+1:]...)
			return true
		}
	}
	return false
}

// resample draws with replacement from the survivors until the set is
// back at its configured size.
func (b *Belief) resample() {
	restored := make([]Particle, 0, b.size)
	restored = append(restored, b.particles...)
	for len(restored) < b.size {
		restored = append(restored, b.particles[b.rng.Intn(len(b.particles))].Clone())
	}
	b.particles = restored
}

// SampleHand returns a copy of one uniformly chosen particle's hand for
// the given opponent. An empty belief yields an empty hand rather than
// an error: unknown opponents are a legitimate degenerate state.
func (b *Belief) SampleHand(opponent int) []game.Card {
	if len(b.particles) == 0 {
		return nil
	}
	p := b.particles[b.rng.Intn(len(b.particles))]
	if opponent < 0 || opponent >= len(p) {
		return nil
	}
	return append([]game.Card(nil), p[opponent]...)
}

// Particles exposes the raw particle set for tests.
func (b *Belief) Particles() []Particle {
	return b.particles
}
