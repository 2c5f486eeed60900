package searcher

import (
	"testing"
	"time"

	"othello/game"

	"github.com/stretchr/testify/require"
)

var openingPlays = []game.Play{
	game.NewPlay(2, 4),
	game.NewPlay(3, 5),
	game.NewPlay(4, 2),
	game.NewPlay(5, 3),
}

func TestNewMCTS(t *testing.T) {
	t.Run("panics without a budget", func(t *testing.T) {
		require.Panics(t, func() {
			NewMCTS(game.NewGame())
		}, "Should panic when neither duration nor iterations is set")
	})

	t.Run("roots the arena at index zero", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))

		require.Equal(t, 1, m.Size())
		require.Equal(t, 0, m.root)
		require.Equal(t, noParent, m.arena[0].parent)
		require.ElementsMatch(t, openingPlays, m.arena[0].unexpanded)
	})
}

func TestExpand(t *testing.T) {
	m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))

	popped := m.arena[0].unexpanded[len(m.arena[0].unexpanded)-1]
	childIndex := m.expand(0)

	require.Equal(t, 1, childIndex)
	require.Equal(t, 2, m.Size())
	require.Equal(t, []int{1}, m.arena[0].children, "Child should link into the parent")
	require.Len(t, m.arena[0].unexpanded, 3, "Expansion should consume one play")

	child := &m.arena[childIndex]
	require.Equal(t, 0, child.parent)
	require.Equal(t, popped, child.state.PreviousMove, "Child wraps the popped play's position")
	require.Equal(t, game.White, child.state.PlayerToMove, "Mover should flip in the child state")

	root := game.NewGame()
	require.Equal(t, root.BlackPieces|root.WhitePieces, m.arena[0].state.BlackPieces|m.arena[0].state.WhitePieces,
		"Expansion must not disturb the parent's stored position")
}

func TestSelectNode(t *testing.T) {
	t.Run("stops at the root while plays remain unexpanded", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))
		require.Equal(t, 0, m.selectNode())
	})

	t.Run("never descends into winless children", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))
		for range openingPlays {
			childIndex := m.expand(0)
			m.arena[childIndex].visits = 1 // winless: selection score is NaN
		}
		require.True(t, m.arena[0].fullyExpanded())

		require.Equal(t, noParent, m.bestChild(0), "Every child scores NaN")
		require.Equal(t, 0, m.selectNode(), "Descent should stop at the root")
	})

	t.Run("prefers the higher-scored child", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))
		var children []int
		for range openingPlays {
			children = append(children, m.expand(0))
		}
		for _, childIndex := range children {
			m.arena[childIndex].visits = 10
			m.arena[childIndex].wins = 2
		}
		best := children[2]
		m.arena[best].wins = 9
		m.arena[0].visits = 40

		require.Equal(t, best, m.bestChild(0))
	})
}

func TestSimulate(t *testing.T) {
	t.Run("terminal position returns its outcome untouched", func(t *testing.T) {
		state := game.Game{BlackPieces: ^uint64(0) &^ 1, WhitePieces: 1}
		m := NewMCTS(state, WithIterations(1), WithSeed(42))

		require.Equal(t, game.BlackWon, m.simulate(0))
	})

	t.Run("double-skip stall decides by disk count", func(t *testing.T) {
		// Black holds three corners, white one; no captures are possible in
		// any direction, so both sides are forced to skip forever.
		state := game.Game{
			BlackPieces:  1 | 1<<7 | 1<<56,
			WhitePieces:  1 << 63,
			PlayerToMove: game.Black,
		}
		require.Equal(t, []game.Play{game.Skip}, state.GeneratePlays())

		m := NewMCTS(state, WithIterations(1), WithSeed(42))
		require.Equal(t, game.BlackWon, m.simulate(0), "Stalled rollout should settle by disk count")
	})

	t.Run("start position resolves to a finished game", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))
		winner := m.simulate(0)
		require.Contains(t, []game.Outcome{game.BlackWon, game.WhiteWon, game.Tie}, winner)
	})
}

func TestBackpropagate(t *testing.T) {
	m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))
	childIndex := m.expand(0) // root mover black, child mover white

	t.Run("credits nodes whose mover is not the winner", func(t *testing.T) {
		m.backpropagate(childIndex, game.BlackWon)

		require.Equal(t, 1, m.arena[childIndex].visits)
		require.Equal(t, 1.0, m.arena[childIndex].wins, "Black made the play into this node")
		require.Equal(t, 1, m.arena[0].visits)
		require.Equal(t, 0.0, m.arena[0].wins, "Black is the root's stored mover")
	})

	t.Run("a tie credits the whole path", func(t *testing.T) {
		m.backpropagate(childIndex, game.Tie)

		require.Equal(t, 2, m.arena[childIndex].visits)
		require.Equal(t, 2.0, m.arena[childIndex].wins)
		require.Equal(t, 2, m.arena[0].visits)
		require.Equal(t, 1.0, m.arena[0].wins)
	})
}

func TestSearch(t *testing.T) {
	t.Run("iteration budget from the start position", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(50), WithSeed(42), WithMetrics())
		metric := m.Search()

		require.Equal(t, 50, metric.Iterations)

		root := &m.arena[0]
		require.True(t, root.fullyExpanded())
		require.Len(t, root.children, 4, "Start position has exactly four opening plays")
		require.Equal(t, 50, root.visits, "Every cycle backpropagates through the root")

		childVisits := 0
		for _, childIndex := range root.children {
			child := &m.arena[childIndex]
			require.GreaterOrEqual(t, child.visits, 1)
			require.LessOrEqual(t, child.wins, float64(child.visits))
			childVisits += child.visits
		}
		require.LessOrEqual(t, childVisits, 50)
		require.GreaterOrEqual(t, childVisits, 4)

		require.Contains(t, openingPlays, m.BestPlay())
	})

	t.Run("duration budget completes at least one cycle", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithDuration(5*time.Millisecond), WithMetrics())
		metric := m.Search()

		require.GreaterOrEqual(t, metric.Iterations, 1)
		require.GreaterOrEqual(t, metric.Duration, 5*time.Millisecond,
			"Budget is only checked between cycles")
	})

	t.Run("fixed seeds reproduce the search bit for bit", func(t *testing.T) {
		m1 := NewMCTS(game.NewGame(), WithIterations(200), WithSeed(7))
		m2 := NewMCTS(game.NewGame(), WithIterations(200), WithSeed(7))

		metric1 := m1.Search()
		metric2 := m2.Search()

		require.Equal(t, metric1.Iterations, metric2.Iterations)
		require.Equal(t, m1.Size(), m2.Size())
		for i := range m1.arena {
			require.Equal(t, m1.arena[i].visits, m2.arena[i].visits, "node %d visits", i)
			require.Equal(t, m1.arena[i].wins, m2.arena[i].wins, "node %d wins", i)
			require.Equal(t, m1.arena[i].state, m2.arena[i].state, "node %d state", i)
		}
		require.Equal(t, m1.BestPlay(), m2.BestPlay())
	})

	t.Run("visits never undercount wins anywhere in the arena", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(300), WithSeed(11))
		m.Search()

		for i := range m.arena {
			n := &m.arena[i]
			require.GreaterOrEqual(t, n.visits, 1, "Every created node gets backpropagated")
			require.LessOrEqual(t, n.wins, float64(n.visits))
		}
	})
}

func TestBestPlay(t *testing.T) {
	t.Run("panics before the root is fully expanded", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))
		require.Panics(t, func() { m.BestPlay() }, "Fresh tree has not explored any play")

		m.Search() // one iteration expands a single child
		require.Panics(t, func() { m.BestPlay() })
	})

	t.Run("picks the most visited child in first-seen order", func(t *testing.T) {
		m := NewMCTS(game.NewGame(), WithIterations(1), WithSeed(42))
		var children []int
		for range openingPlays {
			children = append(children, m.expand(0))
		}

		m.arena[children[0]].visits = 5
		m.arena[children[1]].visits = 9
		m.arena[children[2]].visits = 9 // tie: first seen wins
		m.arena[children[3]].visits = 2

		require.Equal(t, m.arena[children[1]].state.PreviousMove, m.BestPlay())
	})
}
