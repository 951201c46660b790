// Package planner is the per-decision facade over the belief filter and
// the searcher. One Planner serves one seat in one game round: it keeps
// the belief and the seen-discard history alive across turns, converts
// the caller's snapshot into the internal state, and maps chosen actions
// back to hand indices.
package planner

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"

	"uno/belief"
	"uno/game"
	"uno/searcher"
)

// Config is the numeric surface a caller supplies per planner instance.
type Config struct {
	Gamma       float64 // backpropagation discount, in (0, 1]
	Exploration float64 // UCB1 c constant, > 0
	MaxDepth    int     // rollout depth cap, > 0
	Particles   int     // belief particle count, > 0
	Simulations int     // simulations per decision, > 0
	PlayProb    float64 // opponent rollout play probability, in [0, 1]
	Seed        uint64  // RNG seed; fixed seeds reproduce decisions
}

// DefaultConfig mirrors the reference hyperparameters.
func DefaultConfig() Config {
	return Config{
		Gamma:       searcher.DefaultGamma,
		Exploration: searcher.DefaultExploration,
		MaxDepth:    searcher.DefaultMaxDepth,
		Particles:   100,
		Simulations: searcher.DefaultSimulations,
		PlayProb:    searcher.DefaultPlayProb,
		Seed:        1,
	}
}

func (c Config) validate() error {
	switch {
	case c.Gamma <= 0 || c.Gamma > 1:
		return fmt.Errorf("gamma must be in (0, 1], got %v", c.Gamma)
	case c.Exploration <= 0:
		return fmt.Errorf("exploration constant must be positive, got %v", c.Exploration)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	case c.Particles <= 0:
		return fmt.Errorf("particle count must be positive, got %d", c.Particles)
	case c.Simulations <= 0:
		return fmt.Errorf("simulation budget must be positive, got %d", c.Simulations)
	case c.PlayProb < 0 || c.PlayProb > 1:
		return fmt.Errorf("play probability must be in [0, 1], got %v", c.PlayProb)
	}
	return nil
}

// Planner persists belief across the decisions of one game round.
type Planner struct {
	cfg    Config
	mcts   *searcher.MCTS
	rng    *rand.Rand
	belief *belief.Belief
	seen   []game.Card
}

func New(cfg Config, options ...searcher.Option) (*Planner, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid planner config: %w", err)
	}

	opts := append([]searcher.Option{
		searcher.WithGamma(cfg.Gamma),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithMaxDepth(cfg.MaxDepth),
		searcher.WithSimulations(cfg.Simulations),
		searcher.WithRolloutPlayProb(cfg.PlayProb),
		searcher.WithSeed(cfg.Seed),
		searcher.WithMetrics(),
	}, options...)

	return &Planner{
		cfg:  cfg,
		mcts: searcher.NewMCTS(opts...),
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Decide converts the snapshot, refreshes the belief against the current
// sizes, and runs the search, returning the chosen action together with
// the search's metrics. It reports ok=false when the search has no
// recommendation (terminal state or exhausted budget); the caller must
// fall back to its own policy, typically a draw.
func (p *Planner) Decide(ctx context.Context, snap Snapshot) (game.Action, bool, searcher.SearchMetrics, error) {
	state, err := snap.toState()
	if err != nil {
		return game.Action{}, false, searcher.SearchMetrics{}, err
	}

	if p.belief == nil {
		p.belief = belief.New(state.Hand, state.OpponentCounts, p.seen, p.cfg.Particles, p.rng)
	}

	action, ok, metrics := p.mcts.Search(ctx, state, p.belief)
	return action, ok, metrics, nil
}

// Observe feeds one applied step back into the planner: snapBefore is
// the authoritative view before the step, snapAfter the view after it,
// action what happened, actor who did it, and drawer the drawing player
// if any (game.NoDrawer otherwise). The planner accumulates the
// witnessed discards and filters its belief.
func (p *Planner) Observe(snapBefore, snapAfter Snapshot, action game.Action, actor, drawer int) error {
	prev, err := snapBefore.toState()
	if err != nil {
		return err
	}
	next, err := snapAfter.toState()
	if err != nil {
		return err
	}

	obs := game.Observe(prev, action, next, actor, p.seen, drawer)
	p.seen = obs.SeenDiscards

	if p.belief == nil {
		p.belief = belief.New(next.Hand, next.OpponentCounts, p.seen, p.cfg.Particles, p.rng)
		return nil
	}
	p.belief.Update(obs, next.Hand, next.OpponentCounts)
	return nil
}

// Reset drops belief and history for a new round.
func (p *Planner) Reset() {
	p.belief = nil
	p.seen = nil
}

// Belief exposes the current belief, for tests and diagnostics.
func (p *Planner) Belief() *belief.Belief {
	return p.belief
}
