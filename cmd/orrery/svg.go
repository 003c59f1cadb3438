package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
)

func renderSVG(cmd *cobra.Command, args []string) error {
	var doc string
	if fromRun != "" {
		st := storage.New(dataDir)
		meta, err := st.Load(fromRun)
		if err != nil {
			return err
		}
		tracks, err := st.LoadTrack(fromRun)
		if err != nil {
			return err
		}
		colors := make(map[int]string, len(meta.Bodies))
		for _, b := range meta.Bodies {
			colors[b.ID] = b.Color
		}
		doc = export.TrackSVG(tracks, colors, export.DefaultOptions())
	} else {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		sys, err := cfg.Build(logger)
		if err != nil {
			return err
		}
		for i := 0; i < steps; i++ {
			sys.Step(cfg.Dt)
		}

		if braille {
			doc = export.CanvasToSVG(viz.NewModel(sys, cfg.Name, float64(cfg.FPS)).Canvas(), 4)
		} else {
			doc = export.PathsSVG(sys.Paths(), sys.Bodies(), export.DefaultOptions())
		}
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := io.WriteString(w, doc); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "wrote %s\n", output)
	}
	return nil
}
