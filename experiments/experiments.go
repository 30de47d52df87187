// Package experiments runs batches of episodes between configured policies
// and collects per-episode payoff records. Episodes are independent pure
// computations, so the runner spreads them across a worker pool.
package experiments

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"twocars/agent"
	"twocars/config"
	"twocars/engine"
	"twocars/experiments/metrics"
	"twocars/game"
	"twocars/gp"
	"twocars/searcher"
)

// BuildAgent constructs the policy a config section describes.
func BuildAgent(cfg config.PolicyConfig) (agent.Agent, error) {
	switch cfg.Kind {
	case "tree":
		tree, err := gp.Parse(cfg.Expression)
		if err != nil {
			return nil, fmt.Errorf("policy %q: %w", cfg.Name, err)
		}
		treeAgent, err := agent.NewTreeAgent(tree)
		if err != nil {
			return nil, fmt.Errorf("policy %q: %w", cfg.Name, err)
		}
		return treeAgent, nil
	case "fixed":
		return agent.NewFixedAgent(cfg.Action), nil
	case "random":
		return agent.NewRandomAgent(cfg.Seed), nil
	case "rollout":
		options := []searcher.Option{
			searcher.WithHorizon(cfg.Horizon),
			searcher.WithPlayouts(cfg.Playouts),
		}
		if cfg.Seed != 0 {
			options = append(options, searcher.WithPlayout(searcher.RandomPlayout(cfg.Seed)))
		}
		return searcher.NewRollout(options...), nil
	default:
		return nil, fmt.Errorf("unknown policy kind %q", cfg.Kind)
	}
}

// Run plays the configured number of episodes between the two policies and
// returns one record per episode plus run totals.
func Run(cfg *config.Config) ([]metrics.EpisodeRecord, metrics.RunMetric, error) {
	// Each worker gets its own agents so stateful policies (seeded random
	// sources) are never shared across goroutines. Construction happens
	// before any worker starts so a broken policy fails the whole run.
	workerAgents := make([][]engine.Agent[game.GameState], cfg.Experiment.Goroutines)
	for i := range workerAgents {
		pursuer, err := BuildAgent(cfg.Pursuer)
		if err != nil {
			return nil, metrics.RunMetric{}, err
		}
		evader, err := BuildAgent(cfg.Evader)
		if err != nil {
			return nil, metrics.RunMetric{}, err
		}
		workerAgents[i] = []engine.Agent[game.GameState]{pursuer, evader}
	}

	initial := cfg.Game.InitialState()
	collector := metrics.NewCollector()
	collector.Start()

	log.Info().
		Str("pursuer", cfg.Pursuer.Name).
		Str("evader", cfg.Evader.Name).
		Int("episodes", cfg.Experiment.Episodes).
		Int("goroutines", cfg.Experiment.Goroutines).
		Msg("starting experiment")

	jobs := make(chan int)
	results := make(chan metrics.EpisodeRecord)

	var wg sync.WaitGroup
	for _, agents := range workerAgents {
		wg.Add(1)
		go func(agents []engine.Agent[game.GameState]) {
			defer wg.Done()
			for range jobs {
				results <- runEpisode(initial, agents, cfg, collector)
			}
		}(agents)
	}

	go func() {
		for i := 0; i < cfg.Experiment.Episodes; i++ {
			jobs <- i
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]metrics.EpisodeRecord, 0, cfg.Experiment.Episodes)
	for record := range results {
		records = append(records, record)
	}

	run := collector.Complete()
	log.Info().
		Int("episodes", run.Episodes).
		Int("captures", run.Captures).
		Dur("duration", run.Duration).
		Msg("experiment finished")
	return records, run, nil
}

func runEpisode(initial game.GameState, agents []engine.Agent[game.GameState], cfg *config.Config, collector metrics.Collector) metrics.EpisodeRecord {
	start := time.Now()
	results, exhibition := engine.TwoCars(initial).Evaluate(agents, true)
	final := exhibition.States[len(exhibition.States)-1]

	evaderPayoff := results[game.Evader].Metrics[engine.PayoffMetric]
	captured := evaderPayoff < 0
	collector.AddEpisode()
	if captured {
		collector.AddCapture()
	}

	return metrics.EpisodeRecord{
		ID:      uuid.NewString(),
		Pursuer: cfg.Pursuer.Name,
		Evader:  cfg.Evader.Name,
		EpisodeMetric: metrics.EpisodeMetric{
			StartTime:     start,
			Duration:      time.Since(start),
			MainSteps:     initial.TotalTurns - final.TurnsRemaining,
			Captured:      captured,
			PursuerPayoff: results[game.Pursuer].Metrics[engine.PayoffMetric],
			EvaderPayoff:  evaderPayoff,
		},
	}
}
