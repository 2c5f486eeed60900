package engine

import (
	"time"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
)

// MaxMoves caps a runaway game. A full game is 60 placements plus the
// occasional forced skip, so the cap only triggers on a logic error.
const MaxMoves = 200

// Engine alternates two agents on one live board until the game resolves.
type Engine struct {
	State  game.Game
	agents [2]Agent // indexed by game.Player
	onMove func(game.Game)
}

// LocalEngine wires two agents to a fresh board.
func LocalEngine(black, white Agent) *Engine {
	if black == nil || white == nil {
		panic("both sides need an agent")
	}
	return &Engine{
		State:  game.NewGame(),
		agents: [2]Agent{game.Black: black, game.White: white},
	}
}

// OnMove registers a callback invoked after every applied play, for
// rendering.
func (e *Engine) OnMove(f func(game.Game)) {
	e.onMove = f
}

// Run executes the game loop until the board fills, both sides skip back to
// back (a stall Outcome alone never reports), or the move cap hits. Stalled
// and capped games are settled by disk count.
func (e *Engine) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	start := time.Now()

	log.Info().Msgf("%s is starting", e.State.PlayerToMove)

	var moveMetrics []metrics.MoveMetric
	moves := 0
	skips := 0
	for e.State.Outcome() == game.InProgress && skips < 2 && moves < MaxMoves {
		mover := e.State.PlayerToMove
		play, searchMetric := e.agents[mover].FindMove(e.State)

		e.State.MakePlay(play)
		moves++
		if play == game.Skip {
			skips++
		} else {
			skips = 0
		}

		log.Info().Msgf("move %d: %s plays %s (%d iterations in %s)",
			moves, mover, play, searchMetric.Iterations, searchMetric.Duration)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         moves,
			Player:       mover.String(),
			Play:         play.String(),
			SearchMetric: searchMetric,
		})

		if e.onMove != nil {
			e.onMove(e.State)
		}
	}

	outcome := e.State.Outcome()
	if outcome == game.InProgress {
		outcome = game.CountWinner(e.State.BlackPieces, e.State.WhitePieces)
		log.Info().Msgf("game stalled after %d moves, settled by disk count", moves)
	}

	log.Info().Msgf("game over after %d moves: %s", moves, outcome)

	gameMetric := metrics.GameMetric{
		Winner:     outcome.String(),
		StartTime:  start,
		Duration:   time.Since(start),
		TotalMoves: moves,
	}
	return outcome, gameMetric, moveMetrics
}
