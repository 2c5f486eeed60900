package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"othello/engine"
	"othello/experiments"
	"othello/game"
	"othello/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	budget := flag.Duration("budget", 100*time.Millisecond, "Search time budget per move")
	iterations := flag.Int("iterations", 0, "Fixed iteration budget per move (overrides -budget)")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	games := flag.Int("games", 1, "Number of games to play")
	experiment := flag.Bool("experiment", false, "Run the budget experiment instead of playing")
	quiet := flag.Bool("quiet", false, "Skip board rendering")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *experiment {
		experiments.RunBudgetExperiment()
		return
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Info().Msgf("playing %d game(s) with seed %d", *games, *seed)
	rng := rand.New(rand.NewSource(*seed))

	options := []searcher.Option{searcher.WithRand(rng), searcher.WithMetrics()}
	if *iterations > 0 {
		options = append(options, searcher.WithIterations(*iterations))
	} else {
		options = append(options, searcher.WithDuration(*budget))
	}

	output := termenv.NewOutput(os.Stdout)
	for i := 0; i < *games; i++ {
		// The search side plays black, the random baseline plays white.
		e := engine.LocalEngine(engine.NewSearchAgent(options...), engine.NewRandomAgent(rng))
		if !*quiet {
			renderBoard(output, e.State)
			e.OnMove(func(g game.Game) { renderBoard(output, g) })
		}

		outcome, gameMetric, _ := e.Run()
		fmt.Printf("%s (%d moves in %s)\n", outcome, gameMetric.TotalMoves, gameMetric.Duration)
	}
}

func renderBoard(output *termenv.Output, g game.Game) {
	fmt.Fprintln(output, "  a b c d e f g h")
	for row := uint8(0); row < 8; row++ {
		fmt.Fprintf(output, "%d ", row+1)
		for col := uint8(0); col < 8; col++ {
			switch g.CellState(row, col) {
			case game.CellBlack:
				fmt.Fprint(output, output.String("● ").Foreground(termenv.ANSIBrightCyan))
			case game.CellWhite:
				fmt.Fprint(output, output.String("● ").Foreground(termenv.ANSIBrightYellow))
			default:
				fmt.Fprint(output, output.String("· ").Faint())
			}
		}
		fmt.Fprintln(output)
	}
	fmt.Fprintln(output)
}
