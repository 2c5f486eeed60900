package experiments

import (
	"fmt"
	"time"

	"othello/engine"
	"othello/experiments/metrics"
	"othello/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const NumGames = 20 // Per match up

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "mcts", Duration: 10 * time.Millisecond},
	{ID: 2, Kind: "mcts", Duration: 25 * time.Millisecond},
	{ID: 3, Kind: "mcts", Duration: 50 * time.Millisecond},
	{ID: 4, Kind: "mcts", Duration: 100 * time.Millisecond},
}

// RunBudgetExperiment plays each search budget as black against the random
// baseline as white and stores game and move records as CSV.
func RunBudgetExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Kind: "random"}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}

	writer, err := metrics.NewWriter("budget")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteAgentConfigs(append(budgetConfigs, baseline))
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}

	log.Info().Msg("starting budget experiment...")

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for _, matchup := range matchUps {
		black := matchup[0]
		white := matchup[1]

		log.Info().Msgf("starting matchup between black=%+v and white=%+v...", black, white)

		for i := 0; i < NumGames; i++ {
			count++

			gameMetric, moveMetrics := runGame(black, white, uint64(count))
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, NumGames, gameMetric.Winner)
		}
		log.Info().Msg("completed matchup")
	}

	log.Info().Msg("completed budget experiment")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}
	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}
	log.Info().Msg("stored experiment records")
}

// runGame plays one game between the configured agents. The seed makes the
// game reproducible from the records alone.
func runGame(black, white metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric) {
	rng := rand.New(rand.NewSource(seed))
	e := engine.LocalEngine(buildAgent(black, rng), buildAgent(white, rng))
	_, gameMetric, moveMetrics := e.Run()
	return gameMetric, moveMetrics
}

func buildAgent(config metrics.AgentConfig, rng *rand.Rand) engine.Agent {
	switch config.Kind {
	case "mcts":
		options := []searcher.Option{searcher.WithRand(rng), searcher.WithMetrics()}
		if config.Duration > 0 {
			options = append(options, searcher.WithDuration(config.Duration))
		}
		if config.Iterations > 0 {
			options = append(options, searcher.WithIterations(config.Iterations))
		}
		return engine.NewSearchAgent(options...)
	case "random":
		return engine.NewRandomAgent(rng)
	default:
		panic(fmt.Sprintf("unknown agent kind %q", config.Kind))
	}
}
