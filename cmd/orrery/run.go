package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/system"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("k") {
		cfg.K = k
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	sys, err := cfg.Build(logger)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := sys.Run(cmd.Context(), system.RunConfig{Dt: cfg.Dt, Duration: cfg.Duration, Every: every})
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		level.Warn(logger).Log("msg", "run interrupted", "steps", result.StepsTaken, "err", err)
	}
	elapsed := time.Since(start)

	apsides := metrics.NewApsides()
	for _, frame := range result.Frames {
		apsides.Observe(frame)
	}

	fmt.Printf("system: %s (%d stars, %d planets)\n", cfg.Name, sys.NumStars(), sys.NumPlanets())
	fmt.Printf("steps: %d  dt: %.3f  frames: %d  elapsed: %s\n", result.StepsTaken, cfg.Dt, len(result.Frames), elapsed.Round(time.Millisecond))
	if result.Clamped > 0 {
		fmt.Printf("clamped: %d\n", result.Clamped)
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println()

	final := result.Frames[len(result.Frames)-1]
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLANET\tMIN\tMAX\tMEAN\tPHASE")
	for _, r := range apsides.Ranges() {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.3f\n", r.Name, r.Min, r.Max, r.Mean, final.Bodies[r.ID].Phase)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Name:     cfg.Name,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		K:        sys.Velocity().K,
		Bodies:   storage.Describe(sys),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}
