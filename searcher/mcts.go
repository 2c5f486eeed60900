package searcher

import (
	"math"
	"time"

	"othello/experiments/metrics"
	"othello/game"

	"golang.org/x/exp/rand"
)

// CParam is the exploration constant of the selection score.
const CParam = math.Sqrt2

type Option func(m *MCTS)

// MCTS owns one search tree for one invocation. All nodes live in the arena
// slice and are discarded together when the search is dropped; nothing
// outside the tree may hold onto them. The search is single-threaded: one
// select/expand/simulate/backpropagate cycle at a time, with the budget
// checked only between cycles.
type MCTS struct {
	arena      []node
	root       int
	rng        *rand.Rand
	duration   time.Duration
	iterations int
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithSeed fixes the random source, making the whole search reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMCTS roots a search tree at a copy of the given position. Panics unless
// a duration or iteration budget is configured.
func NewMCTS(state game.Game, options ...Option) *MCTS {
	m := &MCTS{
		root:    0,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	m.arena = append(m.arena, newNode(state, noParent, m.rng))
	return m
}

// Search runs four-phase cycles until the budget is exhausted and reports
// the completed iteration count. An in-flight cycle is never interrupted, so
// a duration budget can overshoot by up to one cycle's cost.
func (m *MCTS) Search() metrics.SearchMetric {
	m.metrics.Start()
	start := time.Now()

	for iterations := 0; ; {
		index := m.selectNode()
		if n := &m.arena[index]; !n.fullyExpanded() && !n.terminal() {
			index = m.expand(index)
		}
		winner := m.simulate(index)
		m.backpropagate(index, winner)

		iterations++
		m.metrics.AddIteration()

		if m.iterations > 0 && iterations >= m.iterations {
			break
		}
		if m.duration > 0 && time.Since(start) >= m.duration {
			break
		}
	}

	return m.metrics.Complete()
}

// selectNode descends from the root along best-scored children, stopping at
// the first node that still has unexpanded plays, is terminal, or has no
// selectable child.
func (m *MCTS) selectNode() int {
	index := m.root
	for m.arena[index].fullyExpanded() && !m.arena[index].terminal() {
		best := m.bestChild(index)
		if best == noParent {
			break
		}
		index = best
	}
	return index
}

// bestChild returns the child maximizing the selection score, or noParent
// when there is none. The score is wins/visits + C*sqrt(log(wins))/visits,
// with the child's own win count inside the logarithm (not the parent's
// visit count of textbook UCT); a winless child scores NaN and is never
// picked.
func (m *MCTS) bestChild(index int) int {
	bestIndex := noParent
	bestScore := math.Inf(-1)

	for _, childIndex := range m.arena[index].children {
		child := &m.arena[childIndex]
		visits := float64(child.visits)
		score := child.wins/visits + CParam*math.Sqrt(math.Log(child.wins))/visits

		if score > bestScore {
			bestScore = score
			bestIndex = childIndex
		}
	}
	return bestIndex
}

// expand pops the last pre-shuffled play, applies it to a copy of the node's
// position, and links the resulting child into the arena. Panics when
// called on a fully expanded node.
func (m *MCTS) expand(index int) int {
	n := &m.arena[index]
	if len(n.unexpanded) == 0 {
		panic("No more moves left to expand")
	}

	play := n.unexpanded[len(n.unexpanded)-1]
	n.unexpanded = n.unexpanded[:len(n.unexpanded)-1]

	state := n.state
	state.MakePlay(play)

	childIndex := len(m.arena)
	m.arena = append(m.arena, newNode(state, index, m.rng))
	// re-index: the append may have moved the arena
	m.arena[index].children = append(m.arena[index].children, childIndex)

	return childIndex
}

// simulate plays uniformly random moves from a copy of the node's position
// until the game resolves. A skip answered by another forced skip means both
// sides are blocked on a non-full board, which Outcome alone never detects;
// the rollout settles it by disk count instead of spinning.
func (m *MCTS) simulate(index int) game.Outcome {
	state := m.arena[index].state

	for state.Outcome() == game.InProgress {
		plays := state.GeneratePlays()
		play := plays[m.rng.Intn(len(plays))]
		state.MakePlay(play)

		if play == game.Skip {
			if next := state.GeneratePlays(); next[0] == game.Skip {
				m.metrics.AddEarlyCutoff()
				return game.CountWinner(state.BlackPieces, state.WhitePieces)
			}
		}
	}

	m.metrics.AddFullPlayout()
	return state.Outcome()
}

// backpropagate walks parent links up to the root, counting the visit at
// every node. A node's stored mover is whoever moves next, so the side that
// actually played into the node is the other one: the node is credited
// whenever the winner is not its stored mover, which also credits ties to
// the whole path.
func (m *MCTS) backpropagate(index int, winner game.Outcome) {
	for i := index; i != noParent; i = m.arena[i].parent {
		n := &m.arena[i]
		n.visits++
		if n.state.PlayerToMove.Won() != winner {
			n.wins++
		}
	}
}

// BestPlay returns the play of the most-visited root child, first-seen order
// breaking ties. Visit count, not win rate, is the criterion: it reflects
// how reliable the estimate is. Calling before the root is fully expanded is
// a usage error and panics.
func (m *MCTS) BestPlay() game.Play {
	root := &m.arena[m.root]
	if !root.fullyExpanded() {
		panic("Root is not fully expanded")
	}

	var bestPlay game.Play
	bestVisits := 0
	for _, childIndex := range root.children {
		if child := &m.arena[childIndex]; child.visits > bestVisits {
			bestVisits = child.visits
			bestPlay = child.state.PreviousMove
		}
	}
	return bestPlay
}

// Size returns the number of nodes owned by the arena.
func (m *MCTS) Size() int {
	return len(m.arena)
}
