package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/analysis"
	"github.com/san-kum/orrery/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tSTEPS\tDT\tSEED\tCLAMPED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Seed,
			run.Clamped,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tracks, err := st.LoadTrack(runID)
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(tracks[0].Distances))

	for _, tr := range tracks {
		if len(tr.Distances) < 2 {
			continue
		}
		graph := asciigraph.Plot(tr.Distances,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (#%d) distance to focus", tr.Name, tr.ID)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(args[0], os.Stdout)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tracks, err := st.LoadTrack(runID)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	fmt.Printf("run: %s (%s, k=%.3f)\n\n", meta.ID, meta.Name, meta.K)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLANET\tRP\tRA\tECC\tRATE\tPERIOD\tSPECTRAL")
	for _, tr := range tracks {
		if len(tr.Distances) == 0 {
			continue
		}
		rp, ra := tr.Distances[0], tr.Distances[0]
		for _, d := range tr.Distances {
			rp, ra = min(rp, d), max(ra, d)
		}

		period := "-"
		if p, ok := analysis.Period(tr.Times, tr.Phases); ok {
			period = fmt.Sprintf("%.1f", p)
		}
		spectral := "-"
		// The final recorded step may fall off the sampling grid.
		if n, dt := analysis.UniformPrefix(tr.Times); n > 1 {
			if p, err := analysis.DominantPeriod(tr.Distances[:n], dt); err == nil {
				spectral = fmt.Sprintf("%.1f", p)
			}
		}

		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.3f\t%.5f\t%s\t%s\n",
			tr.Name, rp, ra, analysis.Eccentricity(rp, ra), analysis.MeanRate(tr.Times, tr.Phases), period, spectral)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	tr := tracks[0]
	if body >= 0 {
		found := false
		for _, t := range tracks {
			if t.ID == body {
				tr, found = t, true
				break
			}
		}
		if !found {
			return fmt.Errorf("run %s has no planet #%d", runID, body)
		}
	}
	fmt.Printf("\n%s: distance vs phase\n", tr.Name)
	fmt.Print(analysis.Portrait(analysis.Wrap(tr.Phases), tr.Distances, 72, 16))
	return nil
}
