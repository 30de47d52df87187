package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory under results/<name>.
func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	return NewWriterAt(filepath.Join("results", name, timestamp))
}

// NewWriterAt writes into the given directory, creating it if needed.
func NewWriterAt(baseDir string) (*Writer, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// BaseDir is the directory records are written into.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

// WriteEpisodeRecords writes one CSV row per episode to episodes.csv.
func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, "episodes.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episode records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "pursuer", "evader", "pursuer_payoff", "evader_payoff", "main_steps", "captured", "start_time", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write episode records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			record.Pursuer,
			record.Evader,
			strconv.FormatFloat(record.PursuerPayoff, 'g', -1, 64),
			strconv.FormatFloat(record.EvaderPayoff, 'g', -1, 64),
			strconv.Itoa(record.MainSteps),
			strconv.FormatBool(record.Captured),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write episode record row: %w", err)
		}
	}

	return nil
}
