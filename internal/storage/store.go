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

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/system"
)

const (
	metadataFile  = "metadata.json"
	positionsFile = "positions.csv"
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

type BodyInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type RunMetadata struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Timestamp time.Time  `json:"timestamp"`
	Seed      int64      `json:"seed"`
	Dt        float64    `json:"dt"`
	Duration  float64    `json:"duration"`
	K         float64    `json:"k"`
	Steps     int        `json:"steps"`
	Clamped   int        `json:"clamped"`
	Bodies    []BodyInfo `json:"bodies"`
}

// Describe lists the bodies of a system for run metadata.
func Describe(sys *system.System) []BodyInfo {
	bodies := sys.Bodies()
	out := make([]BodyInfo, len(bodies))
	for i, b := range bodies {
		out[i] = BodyInfo{ID: int(b.ID), Name: b.Name, Kind: b.Kind.String(), Color: b.Tint.String()}
	}
	return out
}

// Save writes a run directory holding metadata.json and positions.csv
// (one row per planet per recorded frame) and returns the run id.
func (s *Store) Save(meta RunMetadata, result *system.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Clamped = result.Clamped

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

	csvFile, err := os.Create(filepath.Join(runDir, positionsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"time", "step", "body", "x", "y", "z", "phase", "distance"}); err != nil {
		return "", err
	}

	for _, frame := range result.Frames {
		for _, b := range frame.Bodies {
			if b.Kind != system.KindPlanet {
				continue
			}
			row := []string{
				strconv.FormatFloat(frame.Time, 'f', 6, 64),
				strconv.Itoa(frame.Tick),
				strconv.Itoa(int(b.ID)),
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Z, 'f', 6, 64),
				strconv.FormatFloat(b.Phase, 'f', 6, 64),
				strconv.FormatFloat(b.Distance, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// Track is the recorded history of one planet.
type Track struct {
	ID        int
	Name      string
	Steps     []int
	Times     []float64
	Positions []r3.Vec
	Phases    []float64
	Distances []float64
}

// LoadTrack reads positions.csv back into per-planet series ordered by
// body id. Malformed rows are skipped.
func (s *Store) LoadTrack(runID string) ([]Track, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, positionsFile))
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

	names := make(map[int]string, len(meta.Bodies))
	for _, b := range meta.Bodies {
		names[b.ID] = b.Name
	}

	byID := make(map[int]*Track)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 8 {
			continue
		}
		step, err1 := strconv.Atoi(rec[1])
		id, err2 := strconv.Atoi(rec[2])
		vals, err3 := parseFloats(rec[0], rec[3], rec[4], rec[5], rec[6], rec[7])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}

		tr, ok := byID[id]
		if !ok {
			tr = &Track{ID: id, Name: names[id]}
			byID[id] = tr
		}
		tr.Steps = append(tr.Steps, step)
		tr.Times = append(tr.Times, vals[0])
		tr.Positions = append(tr.Positions, r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]})
		tr.Phases = append(tr.Phases, vals[4])
		tr.Distances = append(tr.Distances, vals[5])
	}

	tracks := make([]Track, 0, len(byID))
	for _, tr := range byID {
		tracks = append(tracks, *tr)
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].ID < tracks[j].ID })
	return tracks, nil
}

func parseFloats(fields ...string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
