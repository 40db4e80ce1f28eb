package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/drysim/internal/radial"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	profilesFile = "profiles.csv"
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

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Radius      float64            `json:"radius"`
	Diffusivity float64            `json:"diffusivity"`
	Initial     float64            `json:"initial"`
	Nodes       int                `json:"nodes"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Workers     int                `json:"workers"`
	Steps       int                `json:"steps"`
	Hours       []int              `json:"hours"`
	Stability   float64            `json:"stability_number"`
	WallSeconds float64            `json:"wall_seconds"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Params rebuilds the solver parameters the run was made with.
func (m *RunMetadata) Params() radial.Params {
	return radial.Params{
		Radius:      m.Radius,
		Diffusivity: m.Diffusivity,
		Initial:     m.Initial,
		Nodes:       m.Nodes,
		Dt:          m.Dt,
		Duration:    m.Duration,
		Checkpoints: append([]int(nil), m.Hours...),
		Workers:     m.Workers,
	}
}

// Save writes metadata.json and profiles.csv for res under a new run
// directory and returns the run ID. Non-finite metrics are dropped since
// JSON cannot carry them.
func (s *Store) Save(name string, res *radial.Result, metrics map[string]float64) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(name, now)
	if err != nil {
		return "", err
	}

	p := res.Params
	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Radius:      p.Radius,
		Diffusivity: p.Diffusivity,
		Initial:     p.Initial,
		Nodes:       p.Nodes,
		Dt:          p.Dt,
		Duration:    p.Duration,
		Workers:     p.Workers,
		Steps:       res.Steps,
		Hours:       res.Snapshots.Hours(),
		Stability:   radial.StabilityNumber(p),
		WallSeconds: res.Wall.Seconds(),
		Metrics:     make(map[string]float64, len(metrics)),
	}
	for k, v := range metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[k] = v
		}
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	prof := &Profiles{
		Radius: res.Grid,
		Hours:  meta.Hours,
		Final:  res.Final,
	}
	for _, h := range meta.Hours {
		prof.Columns = append(prof.Columns, res.Snapshots[h])
	}
	if err := writeProfiles(filepath.Join(runDir, profilesFile), prof); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", name, now.Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every stored run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	path, err := s.runFile(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) runFile(runID, name string) (string, error) {
	if runID == "" || runID != filepath.Base(runID) || strings.HasPrefix(runID, ".") {
		return "", fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID, name), nil
}
