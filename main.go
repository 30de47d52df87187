// Command twocars plays pursuit-evasion episodes between configured
// policies: single exhibition runs with trajectory export for external
// renderers, and batch experiments with CSV payoff records.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"twocars/config"
	"twocars/engine"
	"twocars/experiments"
	"twocars/experiments/metrics"
	"twocars/game"
	"twocars/gp"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "twocars",
		Short: "Pursuit-evasion episodes between expression-tree policies",
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newExperimentCmd(),
		newPrimitivesCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play one episode and report payoffs",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			tracePath, _ := cmd.Flags().GetString("trace")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			pursuer, err := experiments.BuildAgent(cfg.Pursuer)
			if err != nil {
				return err
			}
			evader, err := experiments.BuildAgent(cfg.Evader)
			if err != nil {
				return err
			}

			initial := cfg.Game.InitialState()
			agents := []engine.Agent[game.GameState]{pursuer, evader}
			results, exhibition := engine.TwoCars(initial).Evaluate(agents, true)

			final := exhibition.States[len(exhibition.States)-1]
			evaderPayoff := results[game.Evader].Metrics[engine.PayoffMetric]
			outcome := "timeout"
			if evaderPayoff < 0 {
				outcome = "capture"
			}
			fmt.Printf("outcome: %s after %d main steps\n", outcome, initial.TotalTurns-final.TurnsRemaining)
			fmt.Printf("payoff %s (%s): %g\n", cfg.Pursuer.Name, "pursuer", results[game.Pursuer].Metrics[engine.PayoffMetric])
			fmt.Printf("payoff %s (%s): %g\n", cfg.Evader.Name, "evader", evaderPayoff)

			if tracePath != "" {
				if err := writeTrace(tracePath, cfg, results, exhibition); err != nil {
					return err
				}
				fmt.Printf("trace written to %s\n", tracePath)
			}
			return nil
		},
	}
	cmd.Flags().String("config", "", "Path to the YAML configuration")
	cmd.Flags().String("trace", "", "Write the visited-state trajectory to this JSON file")
	cmd.MarkFlagRequired("config")
	return cmd
}

func newExperimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run a batch of episodes and write CSV records",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outDir, _ := cmd.Flags().GetString("out")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			records, run, err := experiments.Run(cfg)
			if err != nil {
				return err
			}

			var writer *metrics.Writer
			if outDir != "" {
				writer, err = metrics.NewWriterAt(outDir)
			} else {
				writer, err = metrics.NewWriter(cfg.Experiment.Name)
			}
			if err != nil {
				return err
			}
			if err := writer.WriteEpisodeRecords(records); err != nil {
				return err
			}

			fmt.Printf("%d episodes (%d captures) in %s\n", run.Episodes, run.Captures, run.Duration)
			fmt.Printf("records written to %s\n", writer.BaseDir())
			return nil
		},
	}
	cmd.Flags().String("config", "", "Path to the YAML configuration")
	cmd.Flags().String("out", "", "Output directory (default results/<name>/<timestamp>)")
	cmd.MarkFlagRequired("config")
	return cmd
}

func newPrimitivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "primitives",
		Short: "List the expression-tree primitive catalog",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range gp.Primitives() {
				fmt.Println(p.Signature())
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("twocars version %s\n", version)
		},
	}
}

type carPose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

type tracePoint struct {
	Pursuer        carPose `json:"pursuer"`
	Evader         carPose `json:"evader"`
	TurnsRemaining int     `json:"turns_remaining"`
}

type traceFile struct {
	TotalTurns    int          `json:"total_turns"`
	CaptureRadius float64      `json:"capture_radius"`
	PursuerPayoff float64      `json:"pursuer_payoff"`
	EvaderPayoff  float64      `json:"evader_payoff"`
	States        []tracePoint `json:"states"`
}

// writeTrace serializes the visited-state sequence for an external renderer.
func writeTrace(path string, cfg *config.Config, results []engine.Result, exhibition *engine.Exhibition[game.GameState]) error {
	trace := traceFile{
		TotalTurns:    cfg.Game.TotalTurns,
		CaptureRadius: cfg.Game.CaptureRadius,
		PursuerPayoff: results[game.Pursuer].Metrics[engine.PayoffMetric],
		EvaderPayoff:  results[game.Evader].Metrics[engine.PayoffMetric],
		States:        make([]tracePoint, 0, len(exhibition.States)),
	}
	for _, state := range exhibition.States {
		trace.States = append(trace.States, tracePoint{
			Pursuer:        carPose{X: state.Pursuer.X, Y: state.Pursuer.Y, Heading: state.Pursuer.Heading},
			Evader:         carPose{X: state.Evader.X, Y: state.Evader.Y, Heading: state.Evader.Heading},
			TurnsRemaining: state.TurnsRemaining,
		})
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}
