package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists batch results under a timestamped directory.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

// WriteGameRecords writes one CSV row per game.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{"id", "opponents", "winner", "turns", "final_score", "duration_ms"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID.String(),
			strconv.Itoa(r.Opponents),
			strconv.Itoa(r.Winner),
			strconv.Itoa(r.Turns),
			strconv.Itoa(r.FinalScore),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return cw.Error()
}

// WriteDecisionRecords writes one CSV row per planning-seat decision.
func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	path := filepath.Join(w.baseDir, "decisions.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create decisions file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{"game", "turn", "simulations", "full_playouts", "duration_ms"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Game.String(),
			strconv.Itoa(r.Turn),
			strconv.FormatInt(r.Simulations, 10),
			strconv.FormatInt(r.FullPlayouts, 10),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return cw.Error()
}
