package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/projshift/internal/logging"
	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	tmpPrefix    = ".tmp-"
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
	ID          string             `json:"id"`
	Label       string             `json:"label,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	StartMode   string             `json:"start_mode"`
	FinalMode   string             `json:"final_mode"`
	Curve       string             `json:"curve"`
	Duration    float64            `json:"duration"`
	Dt          float64            `json:"dt"`
	Jitter      float64            `json:"jitter,omitempty"`
	Seed        int64              `json:"seed,omitempty"`
	FramesTaken int                `json:"frames_taken"`
	Camera      projection.Params  `json:"camera"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewMetadata fills the fields derivable from a result.
func NewMetadata(label, curve string, params projection.Params, cfg sim.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Label:       label,
		StartMode:   result.StartMode.String(),
		FinalMode:   result.FinalMode.String(),
		Curve:       curve,
		Duration:    cfg.Duration,
		Dt:          cfg.Dt,
		Jitter:      cfg.Jitter,
		Seed:        cfg.Seed,
		FramesTaken: result.FramesTaken,
		Camera:      params,
		Metrics:     result.Metrics,
	}
}

// Save writes a run directory containing metadata.json and frames.csv and
// returns the generated run id. The directory is assembled under a hidden
// temporary name and renamed into place, so a failed save leaves no run.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.StartMode, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	tmpDir, err := os.MkdirTemp(s.baseDir, tmpPrefix+runID+"-")
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	err = writeRun(tmpDir, meta, result.Frames)
	if err == nil {
		err = os.Chmod(tmpDir, 0755)
	}
	if err == nil {
		err = os.Rename(tmpDir, runDir)
	}
	if err != nil {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			logging.Logger().Warn("cleanup failed", "dir", tmpDir, "err", rmErr)
		}
		return "", fmt.Errorf("storage: save %s: %w", runID, err)
	}

	logging.Logger().Debug("run saved", "id", runID, "frames", len(result.Frames))
	return runID, nil
}

func writeRun(dir string, meta RunMetadata, frames []sim.Frame) error {
	err := writeFile(filepath.Join(dir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, framesFile), func(w io.Writer) error {
		return WriteFramesCSV(w, frames)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteFramesCSV writes one row per frame with the matrix in row-major order.
func WriteFramesCSV(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)

	header := []string{"index", "time", "fraction", "eased", "final"}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			header = append(header, fmt.Sprintf("m%d%d", i, j))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Index),
			strconv.FormatFloat(f.Time, 'g', -1, 64),
			strconv.FormatFloat(f.Fraction, 'g', -1, 64),
			strconv.FormatFloat(f.Eased, 'g', -1, 64),
			strconv.FormatBool(f.Final),
		}
		rows := projection.Rows(f.Matrix)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				row = append(row, strconv.FormatFloat(rows[i][j], 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
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
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			logging.Logger().Warn("skipping unreadable run", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

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

// LoadFrames reads back the frames of a run. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
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

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		f, err := parseFrame(record)
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func parseFrame(record []string) (sim.Frame, error) {
	var f sim.Frame
	if len(record) != 5+16 {
		return f, fmt.Errorf("storage: expected 21 columns, got %d", len(record))
	}

	idx, err := strconv.Atoi(record[0])
	if err != nil {
		return f, err
	}
	vals := make([]float64, 3)
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(record[1+i], 64); err != nil {
			return f, err
		}
	}
	final, err := strconv.ParseBool(record[4])
	if err != nil {
		return f, err
	}

	var rows [4][4]float64
	for k := 0; k < 16; k++ {
		v, err := strconv.ParseFloat(record[5+k], 64)
		if err != nil {
			return f, err
		}
		rows[k/4][k%4] = v
	}

	f.Index = idx
	f.Time, f.Fraction, f.Eased = vals[0], vals[1], vals[2]
	f.Final = final
	f.Matrix = projection.FromRows(rows)
	return f, nil
}
