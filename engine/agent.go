package engine

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"

	"golang.org/x/exp/rand"
)

// Agent picks a play for the side to move in the given position.
type Agent interface {
	FindMove(state game.Game) (game.Play, metrics.SearchMetric)
}

// SearchAgent answers every move with a fresh MCTS over a copy of the live
// position. Pass searcher.WithRand to share one random stream across moves.
type SearchAgent struct {
	options []searcher.Option
}

func NewSearchAgent(options ...searcher.Option) *SearchAgent {
	return &SearchAgent{options: options}
}

func (a *SearchAgent) FindMove(state game.Game) (game.Play, metrics.SearchMetric) {
	tree := searcher.NewMCTS(state, a.options...)
	metric := tree.Search()
	return tree.BestPlay(), metric
}

// RandomAgent plays a uniformly random legal play, the baseline opponent.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	if rng == nil {
		panic("random agent needs a random source")
	}
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) FindMove(state game.Game) (game.Play, metrics.SearchMetric) {
	plays := state.GeneratePlays()
	return plays[a.rng.Intn(len(plays))], metrics.SearchMetric{}
}
