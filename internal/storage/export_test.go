package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	sys, res := runSingle(t)
	runID, err := st.Save(RunMetadata{Name: "single", Seed: 42, Bodies: Describe(sys)}, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != runID || data.Seed != 42 {
		t.Errorf("metadata not embedded: %+v", data.RunMetadata)
	}
	if len(data.Tracks) != 4 || data.Tracks[3].Name != "Purple" {
		t.Fatalf("unexpected tracks %d", len(data.Tracks))
	}
	if len(data.Tracks[0].Positions) != len(res.Frames) {
		t.Errorf("expected %d positions, got %d", len(res.Frames), len(data.Tracks[0].Positions))
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	_, res := runSingle(t)
	runID, err := st.Save(RunMetadata{Name: "single"}, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "time,step,body,x,y,z,phase,distance" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 1+4*len(res.Frames) {
		t.Errorf("expected %d lines, got %d", 1+4*len(res.Frames), len(lines))
	}

	if err := st.ExportCSV("missing", &buf); err == nil {
		t.Error("expected error for missing run")
	}
}
