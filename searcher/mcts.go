// Package searcher implements Monte-Carlo Tree Search over the UNO
// planning state space. One search call owns one node arena; simulations
// interleave UCB1 tree descent with belief-conditioned random playouts
// for the turns of opponents whose hands are hidden.
package searcher

import (
	"context"

	"golang.org/x/exp/rand"

	"uno/belief"
	"uno/game"
)

// Default hyperparameters.
const (
	DefaultGamma       = 0.99
	DefaultExploration = 1.4
	DefaultMaxDepth    = 20
	DefaultSimulations = 500
	DefaultPlayProb    = 0.8
)

type Option func(m *MCTS)

// MCTS runs a fixed budget of simulations per decision. Searches are
// sequential: with a fixed seed, identical inputs pick identical
// actions.
type MCTS struct {
	gamma       float64
	cParam      float64
	maxDepth    int
	simulations int
	playProb    float64
	rng         *rand.Rand
	metrics     MetricsCollector
}

// WithGamma sets the per-step backpropagation discount, in (0, 1].
func WithGamma(gamma float64) Option {
	return func(m *MCTS) {
		if gamma > 0 && gamma <= 1 {
			m.gamma = gamma
		}
	}
}

// WithExploration sets the UCB1 exploration constant c.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.cParam = c
		}
	}
}

// WithMaxDepth caps rollout length in steps.
func WithMaxDepth(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

// WithSimulations sets the per-decision simulation budget.
func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

// WithRolloutPlayProb sets the opponent model's probability of playing
// (versus drawing) when its sampled hand has a playable card.
func WithRolloutPlayProb(p float64) Option {
	return func(m *MCTS) {
		if p >= 0 && p <= 1 {
			m.playProb = p
		}
	}
}

// WithSeed fixes the search RNG for reproducible decisions.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMetrics attaches a real metrics collector.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		gamma:       DefaultGamma,
		cParam:      DefaultExploration,
		maxDepth:    DefaultMaxDepth,
		simulations: DefaultSimulations,
		playProb:    DefaultPlayProb,
		rng:         rand.New(rand.NewSource(1)),
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search runs the simulation budget from a fresh root built on state and
// bel, then returns the root action with the most visits. It reports
// false when the root never grew a child (terminal root or zero budget).
// The context deadline is checked between simulations; the tree is
// discarded when the call returns. bel is cloned per simulation and
// never mutated.
func (m *MCTS) Search(ctx context.Context, state game.State, bel *belief.Belief) (game.Action, bool, SearchMetrics) {
	m.metrics.Start()

	t := &tree{nodes: make([]node, 0, m.simulations+1)}
	root := t.add(noParent, game.Action{}, state.Clone(), bel)

	for i := 0; i < m.simulations; i++ {
		if ctx.Err() != nil {
			break
		}
		m.simulate(t, root)
		m.metrics.AddSimulation()
	}

	action, ok := t.bestAction(root)
	return action, ok, m.metrics.Complete()
}

// simulate runs one selection-expansion-rollout-backpropagation cycle.
func (m *MCTS) simulate(t *tree, root int) {
	idx := m.selectNode(t, root)
	idx = m.expand(t, idx)

	node := &t.nodes[idx]
	bel := node.belief
	if bel == nil {
		bel = t.nodes[root].belief
	}

	policy := rolloutPolicy{
		maxDepth: m.maxDepth,
		playProb: m.playProb,
		rng:      m.rng,
		metrics:  m.metrics,
	}
	reward := policy.run(node.state.Clone(), bel.Clone())

	t.backup(idx, reward, m.gamma)
}

// selectNode descends from the root while nodes are fully expanded and
// have children. Terminal nodes and opponent-turn nodes (fully expanded
// by construction, childless by design) both stop the descent.
func (m *MCTS) selectNode(t *tree, root int) int {
	idx := root
	for {
		n := t.nodes[idx]
		if len(n.untried) > 0 || len(n.children) == 0 {
			return idx
		}
		idx = t.bestChild(idx, m.cParam)
	}
}

// expand pops the last untried action off the selected node, binds
// unknown draws to a sampled card, resolves wild colors immediately, and
// adds one child for the resulting state. Nodes with no untried actions
// pass through unchanged.
func (m *MCTS) expand(t *tree, idx int) int {
	n := &t.nodes[idx]
	if len(n.untried) == 0 {
		return idx
	}

	action := n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	bound := action
	if bound.Kind == game.Draw && bound.Card.IsUnknown() {
		policy := rolloutPolicy{rng: m.rng}
		bound.Card = policy.sampleUnknown()
	}

	childState, err := game.Step(n.state, bound)
	if err != nil {
		panic("expanding a legal action failed: " + err.Error())
	}
	if bound.Kind == game.PlayCard && bound.Card.IsWild() && !childState.Terminal() {
		chosen, err := game.Step(childState, game.PickColor(game.PreferredColor(childState.Hand)))
		if err == nil {
			childState = chosen
		}
	}

	var childBelief *belief.Belief
	if childState.Current == 0 {
		childBelief = n.belief
	}
	// The edge keeps the unbound action so the caller sees the same
	// action the generator produced.
	return t.add(idx, action, childState, childBelief)
}
