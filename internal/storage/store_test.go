package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/transition"
)

func sampleRun(t *testing.T) (sim.Config, *sim.Result) {
	t.Helper()
	cam := projection.NewCamera(projection.DefaultParams(), projection.Orthographic)
	s := sim.New(transition.New(cam))
	cfg := sim.Config{Dt: 0.25, Duration: 1.0, MaxFrames: 10}
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	result.Metrics["frames"] = 3
	return cfg, result
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result := sampleRun(t)
	meta := NewMetadata("demo", "asymmetric", projection.DefaultParams(), cfg, result)

	runID, err := st.Save(meta, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != runID || loaded.Label != "demo" {
		t.Errorf("unexpected metadata: %+v", loaded)
	}
	if loaded.StartMode != "orthographic" || loaded.FinalMode != "perspective" {
		t.Errorf("unexpected modes %s -> %s", loaded.StartMode, loaded.FinalMode)
	}
	if loaded.Metrics["frames"] != 3 {
		t.Errorf("expected frames metric 3, got %f", loaded.Metrics["frames"])
	}
	if loaded.Camera != projection.DefaultParams() {
		t.Errorf("camera params lost: %+v", loaded.Camera)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != len(result.Frames) {
		t.Fatalf("expected %d frames, got %d", len(result.Frames), len(frames))
	}
	last := frames[len(frames)-1]
	if !last.Final {
		t.Error("last frame should be final")
	}
	if last.Matrix != result.FinalMatrix {
		t.Error("matrix should survive the CSV round trip exactly")
	}
	if frames[1].Eased != result.Frames[1].Eased {
		t.Errorf("eased %g != %g", frames[1].Eased, result.Frames[1].Eased)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on empty dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	cfg, result := sampleRun(t)
	meta := NewMetadata("", "linear", projection.DefaultParams(), cfg, result)
	for i := 0; i < 2; i++ {
		if _, err := st.Save(meta, result); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestLoadFramesSkipsMalformedRows(t *testing.T) {
	tmpDir := t.TempDir()
	runDir := filepath.Join(tmpDir, "run")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "index,time\n1,2\nx,y\n"
	if err := os.WriteFile(filepath.Join(runDir, framesFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	frames, err := New(tmpDir).LoadFrames("run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("expected malformed rows to be skipped, got %d", len(frames))
	}
}

func TestExportJSON(t *testing.T) {
	cfg, result := sampleRun(t)
	meta := NewMetadata("export", "asymmetric", projection.DefaultParams(), cfg, result)

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, result.Frames); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Label != "export" || len(decoded.Frames) != len(result.Frames) {
		t.Errorf("unexpected export: label=%q frames=%d", decoded.Label, len(decoded.Frames))
	}
	if decoded.Frames[len(decoded.Frames)-1].Matrix != projection.Rows(result.FinalMatrix) {
		t.Error("final matrix mismatch")
	}
}

func TestFramesCSVRoundTripIsExact(t *testing.T) {
	frames := []sim.Frame{
		{Index: 0, Time: 1.0 / 3, Fraction: 0.1 + 0.2, Eased: (0.1 + 0.2) * (0.1 + 0.2)},
		{Index: 1, Time: 1e-7, Fraction: 2.0 / 3, Eased: math.Sqrt(2.0 / 3)},
		{Index: 2, Time: 12345.678901234567, Fraction: math.Nextafter(1, 0), Eased: 5e-324},
	}

	st := New(t.TempDir())
	_, result := sampleRun(t)
	result.Frames = frames
	runID, err := st.Save(NewMetadata("", "linear", projection.DefaultParams(), sim.Config{}, result), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(loaded) != len(frames) {
		t.Fatalf("expected %d frames, got %d", len(frames), len(loaded))
	}
	for i, want := range frames {
		got := loaded[i]
		if got.Time != want.Time || got.Fraction != want.Fraction || got.Eased != want.Eased {
			t.Errorf("frame %d: got (%v, %v, %v), want (%v, %v, %v)",
				i, got.Time, got.Fraction, got.Eased, want.Time, want.Fraction, want.Eased)
		}
	}
}

func TestSaveFailureLeavesNoRunDir(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	cfg, result := sampleRun(t)
	meta := NewMetadata("", "linear", projection.DefaultParams(), cfg, result)
	meta.Metrics = map[string]float64{"bad": math.NaN()}

	if _, err := st.Save(meta, result); err == nil {
		t.Fatal("expected encoding a NaN metric to fail")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("failed save left entries behind: %v", names)
	}

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected no listed runs, got %v, %v", runs, err)
	}
}

func TestListSkipsHiddenDirs(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	hidden := filepath.Join(tmpDir, tmpPrefix+"partial")
	if err := os.MkdirAll(hidden, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(hidden, metadataFile), []byte(`{"id":"partial"}`), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("hidden dir listed as run: %+v", runs)
	}
}
