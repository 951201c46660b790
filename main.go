package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"uno/experiments"
	"uno/planner"
)

func main() {
	games := flag.Int("games", 10, "Number of self-play games")
	opponents := flag.Int("opponents", 3, "Number of bot opponents")
	simulations := flag.Int("simulations", 500, "Simulations per decision")
	particles := flag.Int("particles", 100, "Belief particle count")
	depth := flag.Int("depth", 20, "Rollout depth cutoff")
	gamma := flag.Float64("gamma", 0.99, "Backpropagation discount")
	exploration := flag.Float64("c", 1.4, "UCB1 exploration constant")
	seed := flag.Uint64("seed", 1, "RNG seed")
	timeout := flag.Duration("timeout", 0, "Per-batch deadline (0 = none)")
	out := flag.String("out", "results", "Output directory for CSV records")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	cfg := planner.DefaultConfig()
	cfg.Simulations = *simulations
	cfg.Particles = *particles
	cfg.MaxDepth = *depth
	cfg.Gamma = *gamma
	cfg.Exploration = *exploration

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	records, decisions, err := experiments.RunSelfPlay(ctx, experiments.BatchConfig{
		Games:     *games,
		Opponents: *opponents,
		Planner:   cfg,
		Seed:      *seed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("self-play batch failed")
	}

	writer, err := experiments.NewWriter(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create results writer")
	}
	if err := writer.WriteGameRecords(records); err != nil {
		log.Fatal().Err(err).Msg("failed to write game records")
	}
	if err := writer.WriteDecisionRecords(decisions); err != nil {
		log.Fatal().Err(err).Msg("failed to write decision records")
	}

	fmt.Printf("Played %d games, win rate %.2f\n", len(records), experiments.WinRate(records))
}
