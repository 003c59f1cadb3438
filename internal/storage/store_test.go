package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/system"
)

func runSingle(t *testing.T) (*system.System, *system.Result) {
	t.Helper()
	sys, err := config.GetPreset("single").Build(nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	res, err := sys.Run(context.Background(), system.RunConfig{Dt: 1, Duration: 20, Every: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return sys, res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	sys, res := runSingle(t)
	runID, err := st.Save(RunMetadata{Name: "single", Seed: 42, Dt: 1, Duration: 20, K: 0.2, Bodies: Describe(sys)}, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "single" || meta.Seed != 42 || meta.Steps != 20 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Bodies) != 5 || meta.Bodies[0].Kind != "star" || meta.Bodies[1].Color != "#0000ff" {
		t.Errorf("unexpected bodies %+v", meta.Bodies)
	}

	tracks, err := st.LoadTrack(runID)
	if err != nil {
		t.Fatalf("load track failed: %v", err)
	}
	if len(tracks) != 4 {
		t.Fatalf("expected 4 tracks, got %d", len(tracks))
	}
	blue := tracks[0]
	if blue.Name != "Blue" || blue.ID != 1 {
		t.Errorf("unexpected first track %s/%d", blue.Name, blue.ID)
	}
	if len(blue.Distances) != len(res.Frames) {
		t.Errorf("expected %d samples, got %d", len(res.Frames), len(blue.Distances))
	}
	last := res.Frames[len(res.Frames)-1].Bodies[1]
	if math.Abs(blue.Distances[len(blue.Distances)-1]-last.Distance) > 1e-5 {
		t.Errorf("distance round trip: got %f want %f", blue.Distances[len(blue.Distances)-1], last.Distance)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	_, res := runSingle(t)
	for i := 0; i < 2; i++ {
		if _, err := st.Save(RunMetadata{Name: "single"}, res); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("run ids collided")
	}
}

func TestStoreMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error loading a missing run")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	_, res := runSingle(t)
	runID, err := st.Save(RunMetadata{Name: "single"}, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, positionsFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}
