package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"uno/planner"
)

func TestRunSelfPlay(t *testing.T) {
	t.Run("playing a small batch end to end", func(t *testing.T) {
		cfg := planner.DefaultConfig()
		cfg.Simulations = 10
		cfg.Particles = 10
		cfg.MaxDepth = 6

		records, decisions, err := RunSelfPlay(context.Background(), BatchConfig{
			Games:     2,
			Opponents: 2,
			Planner:   cfg,
			Seed:      7,
		})

		require.NoError(t, err)
		require.Len(t, records, 2, "One record per game")
		for _, r := range records {
			require.NotEqual(t, uuid.Nil, r.ID, "Every game gets an id")
			require.GreaterOrEqual(t, r.Winner, -1)
			require.Less(t, r.Winner, 3)
			require.Greater(t, r.Turns, 0)
		}

		require.NotEmpty(t, decisions, "Every game produces decision rows")
		ids := map[uuid.UUID]bool{records[0].ID: true, records[1].ID: true}
		for _, d := range decisions {
			require.True(t, ids[d.Game], "Decisions must key back to a game record")
			require.Equal(t, int64(10), d.Simulations)
		}
	})

	t.Run("rejecting empty batches", func(t *testing.T) {
		_, _, err := RunSelfPlay(context.Background(), BatchConfig{Games: 0, Opponents: 2})
		require.Error(t, err, "Zero games is a caller mistake")

		_, _, err = RunSelfPlay(context.Background(), BatchConfig{Games: 1, Opponents: 0})
		require.Error(t, err, "Zero opponents is a caller mistake")
	})
}

func TestWinRate(t *testing.T) {
	t.Run("counting only decided games", func(t *testing.T) {
		records := []GameRecord{
			{Winner: 0},
			{Winner: 1},
			{Winner: -1}, // turn cap, undecided
			{Winner: 0},
		}

		require.InDelta(t, 2.0/3.0, WinRate(records), 0.0001,
			"Undecided games should not dilute the rate")
		require.Zero(t, WinRate(nil), "No games means no rate")
	})
}

func TestWriter(t *testing.T) {
	t.Run("writing game records as CSV", func(t *testing.T) {
		w, err := NewWriter(t.TempDir())
		require.NoError(t, err)

		records := []GameRecord{
			{ID: uuid.New(), Opponents: 3, Winner: 0, Turns: 42, FinalScore: 87},
		}
		require.NoError(t, w.WriteGameRecords(records))

		f, err := os.Open(filepath.Join(w.baseDir, "games.csv"))
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2, "Header plus one record")
		require.Equal(t, []string{"id", "opponents", "winner", "turns", "final_score", "duration_ms"}, rows[0])
		require.Equal(t, records[0].ID.String(), rows[1][0])
		require.Equal(t, "42", rows[1][3])
	})

	t.Run("writing decision records as CSV", func(t *testing.T) {
		w, err := NewWriter(t.TempDir())
		require.NoError(t, err)

		game := uuid.New()
		decisions := []DecisionRecord{
			{Game: game, Turn: 1, Simulations: 10, FullPlayouts: 4},
			{Game: game, Turn: 4, Simulations: 10, FullPlayouts: 7},
		}
		require.NoError(t, w.WriteDecisionRecords(decisions))

		f, err := os.Open(filepath.Join(w.baseDir, "decisions.csv"))
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3, "Header plus two records")
		require.Equal(t, []string{"game", "turn", "simulations", "full_playouts", "duration_ms"}, rows[0])
		require.Equal(t, game.String(), rows[1][0])
		require.Equal(t, "7", rows[2][3])
	})
}
