package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/sim"
	"gonum.org/v1/gonum/mat"
)

var ErrNoRows = errors.New("storage: run has no rows")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator,omitempty"`
	Dt         float64            `json:"dt"`
	Iterations int                `json:"iterations"`
	Steps      int                `json:"steps"`
	Bodies     int                `json:"bodies,omitempty"`
	Nodes      int                `json:"nodes,omitempty"`
	Width      float64            `json:"width,omitempty"`
	Height     float64            `json:"height,omitempty"`
	Halted     bool               `json:"halted,omitempty"`
	HaltReason string             `json:"halt_reason,omitempty"`
	Colors     []string           `json:"colors,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// SaveTrajectory writes a body trajectory. Columns are x, y, z, vx, vy, vz
// for each body in order.
func (s *Store) SaveTrajectory(meta RunMetadata, tr sim.Trajectory) (string, error) {
	if len(tr.States) == 0 {
		return "", ErrNoRows
	}
	n := tr.States[0].Len()
	meta.Bodies = n
	meta.Steps = len(tr.States) - 1

	header := make([]string, 0, 6*n)
	for i := 1; i <= n; i++ {
		for _, c := range []string{"x", "y", "z", "vx", "vy", "vz"} {
			header = append(header, fmt.Sprintf("%s%d", c, i))
		}
	}
	rows := make([][]float64, len(tr.States))
	for i, st := range tr.States {
		rows[i] = st.Flatten()
	}
	return s.save(meta, header, tr.Times, rows)
}

// SaveHeat writes one row per frame, the grid flattened row by row.
func (s *Store) SaveHeat(meta RunMetadata, h *sim.HeatTrajectory) (string, error) {
	if len(h.Frames) == 0 {
		return "", ErrNoRows
	}
	rows, cols := h.Frames[0].Dims()
	meta.Nodes = rows
	meta.Steps = len(h.Frames) - 1
	if meta.Dt == 0 {
		meta.Dt = h.Dt
	}

	header := make([]string, 0, rows*cols)
	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			header = append(header, fmt.Sprintf("t_%d_%d", x, y))
		}
	}
	data := make([][]float64, len(h.Frames))
	for i, f := range h.Frames {
		data[i] = append([]float64(nil), f.RawMatrix().Data...)
	}
	return s.save(meta, header, h.Times, data)
}

// save writes both files of a run. A run that fails part way is removed so
// that List never sees a half-written directory.
func (s *Store) save(meta RunMetadata, header []string, times []float64, rows [][]float64) (id string, err error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	meta.Timestamp = s.now()
	meta.Metrics = finiteMetrics(meta.Metrics)
	runID, runDir, err := s.newRunDir(meta.Model, meta.Timestamp)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()
	meta.ID = runID

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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(append([]string{"time"}, header...)); err != nil {
		return "", err
	}
	for i, row := range rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(times[i], 'g', -1, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// finiteMetrics drops NaN and Inf values, which JSON cannot encode.
func finiteMetrics(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

// newRunDir creates <model>_<unix>, adding a counter when a run was already
// saved in the same second.
func (s *Store) newRunDir(model string, ts time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", model, ts.Unix())
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadRows returns the column names without time, the time column and the
// remaining values of every row.
func (s *Store) LoadRows(runID string) ([]string, []float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil, ErrNoRows
	}
	if err != nil {
		return nil, nil, nil, err
	}

	var times []float64
	var rows [][]float64
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, err
		}
		vals := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("%s line %d: %w", runID, line, err)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		rows = append(rows, vals[1:])
	}
	return header[1:], times, rows, nil
}

func (s *Store) LoadTrajectory(runID string) (*sim.Trajectory, error) {
	_, times, rows, err := s.LoadRows(runID)
	if err != nil {
		return nil, err
	}
	tr := &sim.Trajectory{Times: times, States: make([]dynamo.State, len(rows))}
	for i, row := range rows {
		st, err := dynamo.Unflatten(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", runID, i+1, err)
		}
		tr.States[i] = st
	}
	return tr, nil
}

func (s *Store) LoadHeat(runID string) (*sim.HeatTrajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	_, times, rows, err := s.LoadRows(runID)
	if err != nil {
		return nil, err
	}
	n := meta.Nodes
	h := &sim.HeatTrajectory{Times: times, Dt: meta.Dt, Frames: make([]*mat.Dense, len(rows))}
	for i, row := range rows {
		if len(row) != n*n {
			return nil, fmt.Errorf("%s row %d: %d values for %d nodes: %w", runID, i+1, len(row), n, dynamo.ErrDimensionMismatch)
		}
		h.Frames[i] = mat.NewDense(n, n, row)
	}
	return h, nil
}
