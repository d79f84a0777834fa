// Package trace persists scenario runs: metadata as JSON, per-frame
// records as CSV, one directory per run under a data dir.
package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nkotova/spatialui/internal/scenario"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	DT        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Knobs     []string           `json:"knobs"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(result *scenario.Result, knobs []string) (string, error) {
	runID := fmt.Sprintf("%s_%s", result.Scenario, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  result.Scenario,
		Timestamp: time.Now(),
		DT:        result.DT,
		Frames:    result.Frames,
		Knobs:     knobs,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(Header(knobs)); err != nil {
		return "", err
	}

	for _, rec := range result.Records {
		row := []string{
			strconv.FormatFloat(rec.T, 'f', 6, 64),
			strconv.FormatFloat(rec.WindowPos.X, 'f', 6, 64),
			strconv.FormatFloat(rec.WindowPos.Y, 'f', 6, 64),
			strconv.FormatFloat(rec.WindowPos.Z, 'f', 6, 64),
			rec.State.String(),
			strconv.FormatFloat(rec.IdleFor, 'f', 6, 64),
			strconv.FormatFloat(rec.TargetDist, 'f', 6, 64),
		}
		for i := range rec.Values {
			row = append(row,
				strconv.FormatFloat(rec.Values[i], 'f', 6, 64),
				strconv.FormatFloat(rec.Angles[i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Header is the frames.csv column layout: fixed window columns, then a
// value/angle pair per knob.
func Header(knobs []string) []string {
	h := []string{"time", "win_x", "win_y", "win_z", "state", "idle", "target_dist"}
	for _, name := range knobs {
		h = append(h, name+"_value", name+"_angle")
	}
	return h
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back as a header plus raw string rows.
// Numeric parsing is left to the consumer, which knows which columns it
// wants.
func (s *Store) LoadFrames(runID string) ([]string, [][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("run %s: empty frames file", runID)
	}
	return rows[0], rows[1:], nil
}

// Column extracts one numeric column by header name.
func Column(header []string, rows [][]string, name string) ([]float64, error) {
	idx := -1
	for i, h := range header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown column: %s", name)
	}

	out := make([]float64, 0, len(rows))
	for i, row := range rows {
		if idx >= len(row) {
			return nil, fmt.Errorf("row %d: missing column %s", i, name)
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
