package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type TrackData struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Steps     []int        `json:"steps"`
	Times     []float64    `json:"times"`
	Positions [][3]float64 `json:"positions"`
	Phases    []float64    `json:"phases"`
	Distances []float64    `json:"distances"`
}

type ExportData struct {
	RunMetadata
	Tracks []TrackData `json:"tracks"`
}

// ExportJSON writes a run's metadata and every planet track to w as one
// indented JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tracks, err := s.LoadTrack(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: *meta, Tracks: make([]TrackData, len(tracks))}
	for i, tr := range tracks {
		td := TrackData{
			ID:        tr.ID,
			Name:      tr.Name,
			Steps:     tr.Steps,
			Times:     tr.Times,
			Positions: make([][3]float64, len(tr.Positions)),
			Phases:    tr.Phases,
			Distances: tr.Distances,
		}
		for j, p := range tr.Positions {
			td.Positions[j] = [3]float64{p.X, p.Y, p.Z}
		}
		data.Tracks[i] = td
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies a run's positions.csv to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, positionsFile))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
