package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string

	dt       float64
	duration float64
	every    int
	seed     int64
	k        float64
	workers  int
	noSave   bool

	output  string
	steps   int
	braille bool
	fromRun string

	body int

	fps   float64
	theme string
	addr  string

	logger log.Logger = log.NewNopLogger()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orrery",
		Short:         "multi-star orbital kinematics engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(os.Stderr, logFormat, logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "system file (yaml); overrides the preset argument")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, error or none")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "logfmt", "logfmt or json")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate headless and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frames per step")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "frames to simulate")
	runCmd.Flags().IntVar(&every, "every", 10, "record one snapshot every n steps")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "initial phase seed (default from the system)")
	runCmd.Flags().Float64Var(&k, "k", 0, "velocity constant (default from the system)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "planets advanced in parallel chunks when > 1")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print the summary without storing the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot each planet's focus distance",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate apsides, eccentricity and period per planet",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&body, "body", -1, "planet id for the phase portrait (default first)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's positions as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run's metadata and tracks as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [preset]",
		Short: "render orbit paths (or a stored run) as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&steps, "steps", 0, "advance the system before drawing")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal canvas instead of vector paths")
	svgCmd.Flags().StringVar(&fromRun, "run", "", "draw the recorded tracks of a stored run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch the system in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frames per second")
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "theme: "+strings.Join(viz.ThemeNames(), ", "))

	serveCmd := &cobra.Command{
		Use:   "serve [preset]",
		Short: "stream frames over websocket with metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frames per second")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in systems",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "check a system file",
		Args:  cobra.ExactArgs(1),
		RunE:  validateFile,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, svgCmd, liveCmd, serveCmd, presetsCmd, validateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		level.Error(logger).Log("msg", "command failed", "err", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the system to simulate: --config wins, then the
// preset argument, then the default preset.
func loadConfig(args []string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	name := config.DefaultPreset
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(config.ListPresets(), ", "))
	}
	return cfg, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		stars := make([]string, len(cfg.Stars))
		for i, s := range cfg.Stars {
			stars[i] = s.Name
		}
		sort.Strings(stars)
		fmt.Printf("%-10s %d stars (%s), %d planets\n", name, len(cfg.Stars), strings.Join(stars, ", "), len(cfg.Planets))
	}
	return nil
}

func validateFile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	sys, err := cfg.Build(logger)
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok (%d stars, %d planets)\n", args[0], sys.NumStars(), sys.NumPlanets())
	return nil
}
