// Package experiments runs self-play batches of the planner against bot
// opponents and records per-game results as CSV for offline analysis.
package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"uno/engine"
	"uno/planner"
)

// GameRecord is one self-play game's outcome.
type GameRecord struct {
	ID         uuid.UUID
	Opponents  int
	Winner     int
	Turns      int
	FinalScore int
	Duration   time.Duration
}

// DecisionRecord is one planning-seat decision within a game, keyed back
// to its GameRecord by Game.
type DecisionRecord struct {
	Game         uuid.UUID
	Turn         int
	Simulations  int64
	FullPlayouts int64
	Duration     time.Duration
}

// BatchConfig controls one self-play batch.
type BatchConfig struct {
	Games     int
	Opponents int
	Planner   planner.Config
	Seed      uint64
}

// RunSelfPlay plays cfg.Games games of the planner (seat 0) against
// random bots and returns one record per game plus one per planning-seat
// decision. Each game gets a fresh planner so belief never leaks across
// rounds.
func RunSelfPlay(ctx context.Context, cfg BatchConfig) ([]GameRecord, []DecisionRecord, error) {
	if cfg.Games <= 0 {
		return nil, nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Opponents <= 0 {
		return nil, nil, fmt.Errorf("opponents must be positive, got %d", cfg.Opponents)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	records := make([]GameRecord, 0, cfg.Games)
	var decisions []DecisionRecord

	for i := 0; i < cfg.Games; i++ {
		pcfg := cfg.Planner
		pcfg.Seed = cfg.Seed + uint64(i)
		p, err := planner.New(pcfg)
		if err != nil {
			return nil, nil, err
		}

		bots := make([]engine.Bot, cfg.Opponents)
		for j := range bots {
			bots[j] = engine.RandomBot{Rng: rng}
		}

		e, err := engine.NewLocal(p, bots, rng)
		if err != nil {
			return nil, nil, err
		}

		start := time.Now()
		result, err := e.Run(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("game %d: %w", i+1, err)
		}

		record := GameRecord{
			ID:         uuid.New(),
			Opponents:  cfg.Opponents,
			Winner:     result.Winner,
			Turns:      result.Turns,
			FinalScore: result.FinalScore,
			Duration:   time.Since(start),
		}
		records = append(records, record)
		for _, d := range result.Decisions {
			decisions = append(decisions, DecisionRecord{
				Game:         record.ID,
				Turn:         d.Turn,
				Simulations:  d.Metrics.Simulations,
				FullPlayouts: d.Metrics.FullPlayouts,
				Duration:     d.Metrics.Duration,
			})
		}
		log.Info().Stringer("game", record.ID).Int("winner", record.Winner).
			Int("turns", record.Turns).Msgf("finished game %d/%d", i+1, cfg.Games)
	}

	return records, decisions, nil
}

// WinRate is the planner seat's share of decided games.
func WinRate(records []GameRecord) float64 {
	decided, won := 0, 0
	for _, r := range records {
		if r.Winner >= 0 {
			decided++
		}
		if r.Winner == 0 {
			won++
		}
	}
	if decided == 0 {
		return 0
	}
	return float64(won) / float64(decided)
}
