package searcher

import (
	"othello/game"

	"golang.org/x/exp/rand"
)

// noParent marks the root's parent index.
const noParent = -1

// node is one entry in the tree arena. It wraps the position reached by one
// play from its parent. Parent and child links are arena indices, never
// pointers, so the arena alone owns every node.
type node struct {
	parent   int
	children []int

	// unexpanded holds the legal plays without a child yet, pre-shuffled so
	// expansion pops them in random order.
	unexpanded []game.Play

	wins   float64
	visits int

	state game.Game
}

func newNode(state game.Game, parent int, rng *rand.Rand) node {
	plays := state.GeneratePlays()
	rng.Shuffle(len(plays), func(i, j int) {
		plays[i], plays[j] = plays[j], plays[i]
	})

	return node{
		parent:     parent,
		unexpanded: plays,
		state:      state,
	}
}

func (n *node) terminal() bool {
	return n.state.Outcome() != game.InProgress
}

func (n *node) fullyExpanded() bool {
	return len(n.unexpanded) == 0
}
