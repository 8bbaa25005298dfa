package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/solver"
	"github.com/Jungo-Phi/Slidep/internal/storage"
)

type RodData struct {
	ID      int        `json:"id"`
	A       geom.Point `json:"a"`
	B       geom.Point `json:"b"`
	Length  float64    `json:"length"`
	GroundA bool       `json:"ground_a"`
	GroundB bool       `json:"ground_b"`
}

type JointData struct {
	ID       int        `json:"id"`
	Kind     string     `json:"kind"`
	Pos      geom.Point `json:"pos"`
	Dir      geom.Point `json:"dir"`
	Ground   bool       `json:"ground"`
	SlideRod int        `json:"slide_rod"`
	Error    float64    `json:"error"`
}

type ExportData struct {
	Scene      string             `json:"scene"`
	Grab       string             `json:"grab"`
	Target     geom.Point         `json:"target"`
	Animate    bool               `json:"animate"`
	Solver     solver.Config      `json:"solver"`
	Iterations int                `json:"iterations"`
	Error      float64            `json:"error"`
	Converged  bool               `json:"converged"`
	Valid      bool               `json:"valid"`
	Trace      []float64          `json:"trace"`
	Metrics    map[string]float64 `json:"metrics"`
	Rods       []RodData          `json:"rods"`
	Joints     []JointData        `json:"joints"`
}

// NewExportData flattens a run into its JSON form. The per-joint errors are
// measured on the final mechanism.
func NewExportData(run storage.Run) ExportData {
	data := ExportData{
		Scene:   run.Scene,
		Grab:    run.Grab.String(),
		Target:  run.Target,
		Animate: run.Animate,
		Solver:  run.Solver,
	}
	if r := run.Result; r != nil {
		data.Iterations = r.Iterations
		data.Error = r.Error
		data.Converged = r.Converged
		data.Valid = r.Valid
		data.Trace = r.Trace
		data.Metrics = r.Metrics
	}
	if run.Final != nil {
		data.addMechanism(run.Final)
	}
	return data
}

// LoadExportData rebuilds the JSON form of a stored run.
func LoadExportData(st *storage.Store, runID string) (ExportData, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return ExportData{}, err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return ExportData{}, err
	}
	data := ExportData{
		Scene:      meta.Scene,
		Grab:       meta.Grab,
		Target:     meta.Target,
		Animate:    meta.Animate,
		Solver:     meta.Solver,
		Iterations: meta.Iterations,
		Error:      meta.Error,
		Converged:  meta.Converged,
		Valid:      meta.Valid,
		Trace:      trace,
		Metrics:    meta.Metrics,
	}
	sc, err := st.LoadScene(runID)
	if err != nil {
		return ExportData{}, err
	}
	m, err := sc.Build()
	if err != nil {
		return ExportData{}, err
	}
	data.addMechanism(m)
	return data, nil
}

func (data *ExportData) addMechanism(m *kin.Mechanism) {
	data.Rods = make([]RodData, len(m.Rods))
	for i := range m.Rods {
		r := &m.Rods[i]
		data.Rods[i] = RodData{ID: i, A: r.A, B: r.B, Length: r.Len(), GroundA: r.GroundA, GroundB: r.GroundB}
	}
	data.Joints = make([]JointData, len(m.Joints))
	for i := range m.Joints {
		j := &m.Joints[i]
		data.Joints[i] = JointData{
			ID:       i,
			Kind:     j.Kind.String(),
			Pos:      j.Pos,
			Dir:      j.Dir,
			Ground:   j.Ground,
			SlideRod: int(j.SlideRod),
			Error:    solver.JointError(m, kin.JointID(i)),
		}
	}
}

// Encode writes data as indented JSON.
func (data *ExportData) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteJSON encodes a run as indented JSON.
func WriteJSON(w io.Writer, run storage.Run) error {
	data := NewExportData(run)
	return data.Encode(w)
}

func ExportJSON(path string, run storage.Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, run)
}
