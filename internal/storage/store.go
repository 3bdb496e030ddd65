package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Dims       int                `json:"dims"`
	Frame      float64            `json:"frame"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Segments   int                `json:"segments"`
	Metrics    map[string]float64 `json:"metrics"`
	Events     []dynamo.Event     `json:"events"`
}

// Save writes cfg and result under a fresh run directory and returns its id.
func (s *Store) Save(cfg *config.Config, result *dynamo.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Name, now.UnixMilli())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   cfg.Name,
		Timestamp:  now,
		Dims:       cfg.Dims,
		Frame:      cfg.Frame,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Segments:   len(cfg.Segments),
		Metrics:    result.Metrics,
		Events:     result.Events,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := WriteCSV(filepath.Join(runDir, framesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteCSV writes one row per frame: time, then value and velocity columns.
func WriteCSV(path string, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(result.Values) > 0 {
		dims := len(result.Values[0])
		header := []string{"time"}
		for i := 0; i < dims; i++ {
			header = append(header, fmt.Sprintf("x%d", i))
		}
		for i := 0; i < dims; i++ {
			header = append(header, fmt.Sprintf("v%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}

		for i := range result.Values {
			row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
			for _, val := range result.Values[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
			for j := 0; j < dims; j++ {
				val := 0.0
				if i < len(result.Velocities) && j < len(result.Velocities[i]) {
					val = result.Velocities[i][j]
				}
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResult rebuilds the recorded trajectory of a run.
func (s *Store) LoadResult(runID string) (*dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := dynamo.NewResult(len(records))
	result.Events = meta.Events
	for k, v := range meta.Metrics {
		result.Metrics[k] = v
	}
	if len(records) < 2 {
		return result, nil
	}

	dims := (len(records[0]) - 1) / 2
	for _, record := range records[1:] {
		if len(record) != 1+2*dims {
			continue
		}
		row := make([]float64, len(record))
		ok := true
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			row[j] = val
		}
		if !ok {
			continue
		}
		result.Record(row[0], row[1:1+dims], row[1+dims:])
	}
	return result, nil
}
