package searcher

import (
	"uno/belief"
	"uno/game"
)

// noParent marks the root's parent index.
const noParent = -1

// node is one tree node in the arena. Parent and children are arena
// indices, not pointers, so backpropagation walks O(1) links without
// reference cycles. Opponent-turn nodes keep untried empty and are never
// branched: the searcher does not speculate on opponent choices, so
// selection terminates there and a rollout takes over.
type node struct {
	parent   int
	action   game.Action // edge action that produced this node; zero at the root
	state    game.State
	children []int
	untried  []game.Action
	visits   int
	score    float64
	belief   *belief.Belief // snapshot at own-decision nodes, nil elsewhere
}

// tree is an index-addressed node arena owned by one search call.
type tree struct {
	nodes []node
}

// add appends a node for state reached from parent via action and
// returns its index. Untried actions are enumerated only at the
// searching agent's own decision points.
func (t *tree) add(parent int, action game.Action, state game.State, bel *belief.Belief) int {
	var untried []game.Action
	if state.Current == 0 {
		untried = game.LegalActions(state)
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		parent:  parent,
		action:  action,
		state:   state,
		untried: untried,
		belief:  bel,
	})
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, idx)
	}
	return idx
}

// bestChild picks the child maximizing UCB1. Ties break toward the
// first-encountered child; an unvisited child scores +Inf and therefore
// always wins against any visited one.
func (t *tree) bestChild(parent int, cParam float64) int {
	n := t.nodes[parent]
	if len(n.children) == 0 {
		panic("bestChild on a node with no children")
	}

	policy := newUCB1(cParam, n.visits)
	best := n.children[0]
	bestScore := policy.evaluate(t.nodes[best].score, t.nodes[best].visits)
	for _, child := range n.children[1:] {
		if score := policy.evaluate(t.nodes[child].score, t.nodes[child].visits); score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// bestAction is the edge action of the root child with the most visits,
// ties broken toward the first-encountered child. It reports false when
// the root has no children.
func (t *tree) bestAction(root int) (game.Action, bool) {
	children := t.nodes[root].children
	if len(children) == 0 {
		return game.Action{}, false
	}

	best := children[0]
	for _, child := range children[1:] {
		if t.nodes[child].visits > t.nodes[best].visits {
			best = child
		}
	}
	return t.nodes[best].action, true
}

// backup walks from idx to the root, counting the visit at every node
// and adding the reward discounted by gamma per step travelled.
func (t *tree) backup(idx int, reward, gamma float64) {
	discount := 1.0
	for i := idx; i != noParent; i = t.nodes[i].parent {
		t.nodes[i].visits++
		t.nodes[i].score += reward * discount
		discount *= gamma
	}
}
