package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/scene"
	"github.com/Jungo-Phi/Slidep/internal/solver"
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
	Scene      string             `json:"scene"`
	Timestamp  time.Time          `json:"timestamp"`
	Grab       string             `json:"grab"`
	Target     geom.Point         `json:"target"`
	Animate    bool               `json:"animate"`
	Solver     solver.Config      `json:"solver"`
	Iterations int                `json:"iterations"`
	Error      float64            `json:"error"`
	Converged  bool               `json:"converged"`
	Valid      bool               `json:"valid"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is everything persisted for one solve.
type Run struct {
	Scene   string
	Grab    solver.Grab
	Target  geom.Point
	Animate bool
	Solver  solver.Config
	Result  *solver.Result
	Final   *kin.Mechanism
}

// Save writes metadata.json, the per-sweep error trace in trace.csv and the
// solved mechanism in final.yaml under a fresh run directory.
func (s *Store) Save(run Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runName(run.Scene), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scene:      run.Scene,
		Timestamp:  now,
		Grab:       run.Grab.String(),
		Target:     run.Target,
		Animate:    run.Animate,
		Solver:     run.Solver,
		Iterations: run.Result.Iterations,
		Error:      run.Result.Error,
		Converged:  run.Result.Converged,
		Valid:      run.Result.Valid,
		Metrics:    run.Result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeTrace(filepath.Join(runDir, "trace.csv"), run.Result.Trace); err != nil {
		return "", err
	}

	if run.Final != nil {
		final := scene.FromMechanism(runName(run.Scene), run.Final)
		if err := scene.Save(filepath.Join(runDir, "final.yaml"), final); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeTrace(path string, trace []float64) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"sweep", "error"}); err != nil {
		return err
	}
	for i, e := range trace {
		row := []string{strconv.Itoa(i + 1), strconv.FormatFloat(e, 'g', -1, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// runName turns a preset name or scene path into a directory-safe name.
func runName(sceneName string) string {
	name := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "scene"
	}
	return name
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads back the per-sweep error trace of a run.
func (s *Store) LoadTrace(runID string) ([]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
	file, err := os.Open(csvPath)
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

	if len(records) < 2 {
		return []float64{}, nil
	}

	trace := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		trace = append(trace, e)
	}

	return trace, nil
}

// LoadScene reads back the solved mechanism of a run.
func (s *Store) LoadScene(runID string) (*scene.Scene, error) {
	return scene.Load(filepath.Join(s.baseDir, runID, "final.yaml"))
}
