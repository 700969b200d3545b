package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"othello/config"
)

type GameRecord struct {
	ID     int
	Agent1 string // config.Agent.Name playing the first player
	Agent2 string // config.Agent.Name playing the second player
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a folder under dir named by experiment and the current
// timestamp.
func NewWriter(dir, experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, experiment, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []config.Agent) error {
	header := []string{"name", "kind", "goroutines", "duration", "episodes", "cutoff", "evaluation", "temperature"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			c.Name,
			c.Kind,
			strconv.Itoa(c.Goroutines),
			c.Duration.String(),
			strconv.Itoa(c.Episodes),
			strconv.Itoa(c.Cutoff),
			c.Evaluation,
			strconv.FormatFloat(c.Temperature, 'f', -1, 64),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "scores", "total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Agent1,
			record.Agent2,
			record.StartingPlayer,
			record.Winner,
			formatScores(record.Scores),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "captured", "hash", "goroutines", "duration", "episodes", "cutoff", "full_playouts"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.Itoa(record.Captured),
			strconv.FormatUint(record.Hash, 16),
			strconv.Itoa(record.Goroutines),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Cutoff),
			strconv.Itoa(record.FullPlayouts),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err = writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err = writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}

// formatScores renders scores as "black=24;white=40".
func formatScores(scores map[string]int) string {
	players := make([]string, 0, len(scores))
	for p := range scores {
		players = append(players, p)
	}
	sort.Strings(players)

	parts := make([]string, 0, len(players))
	for _, p := range players {
		parts = append(parts, fmt.Sprintf("%s=%d", p, scores[p]))
	}
	return strings.Join(parts, ";")
}
