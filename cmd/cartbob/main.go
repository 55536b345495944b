package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/experiment"
	"github.com/san-kum/cartbob/internal/gui"
	"github.com/san-kum/cartbob/internal/logger"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	logFile    string

	dt         float64
	duration   float64
	driver     string
	kp         float64
	ki         float64
	kd         float64
	target     float64
	width      int
	height     int
	fps        int
	withAudio  bool
	live       bool
	frameRate  int
	output     string
	svgWidth   int
	svgHeight  int
	svgStyle   string
	canvasCols int
	canvasRows int
	aspects    []float64
	lyapunov   bool
	metric     string
	grid       []string
	points     int
	save       bool
	theme      string
)

// main registers the commands and opens the window host when no subcommand
// is given. Errors are logged and exit with status 1.
func main() {
	rootCmd := &cobra.Command{
		Use:           "cartbob",
		Short:         "cart and bob pendulum sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{Level: logLevel, Format: logFormat, File: logFile})
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cartbob", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "console", "log format (console, text, json)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	addWindowFlags(rootCmd)
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the swing")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the window host",
		RunE:  runGUI,
	}
	addWindowFlags(guiCmd)
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the swing")
	addDriverFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal host (preset menu unless --preset or --config is given)",
		RunE:  runTUI,
	}
	addDriverFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", viz.CurrentTheme.Name, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	addDriverFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "draw the run in the terminal while it records")
	runCmd.Flags().IntVar(&frameRate, "frame-rate", 4, "draw every n-th frame with --live")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the cart and bob paths as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 450, "image height")
	exportSVGCmd.Flags().StringVar(&svgStyle, "style", "paths", "paths, canvas (braille frame as in the terminal) or phase (angle vs angular velocity)")
	exportSVGCmd.Flags().IntVar(&canvasCols, "cols", 100, "canvas cells across with --style canvas")
	exportSVGCmd.Flags().IntVar(&canvasRows, "rows", 40, "canvas cells down with --style canvas")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "swing frequency and wraparound analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "also estimate the largest Lyapunov exponent of the run's setup")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same scenario across window aspects in parallel",
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	addDriverFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&aspects, "aspects", []float64{1, 4.0 / 3.0, 16.0 / 9.0, 21.0 / 9.0}, "width/height ratios")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search tunable params for the lowest metric",
		RunE:  runTune,
	}
	addRunFlags(tuneCmd)
	addDriverFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&metric, "metric", "cart_travel", "metric to minimize")
	tuneCmd.Flags().StringSliceVar(&grid, "grid", []string{"kp=0:8", "kd=0:4"}, "name=min:max per param")
	tuneCmd.Flags().IntVar(&points, "points", 5, "grid points per param")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a scenario file in order",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", false, "store every step as a run")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, presetsCmd, sweepCmd, tuneCmd, scenarioCmd)

	err := rootCmd.Execute()
	if err != nil {
		logger.L().Error("command failed", "err", err)
	}
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate cap")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width the run is sized for")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height the run is sized for")
}

func addDriverFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&driver, "driver", "none", "input driver ("+strings.Join(experiment.NewRegistry().ListDrivers(), ", ")+")")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	cmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "pid target x")
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fps") {
		cfg.Window.FPS = fps
	}
	if flags.Changed("driver") {
		cfg.Run.Driver = driver
	}
	if flags.Changed("kp") {
		cfg.Run.ControllerParams.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.Run.ControllerParams.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.Run.ControllerParams.Kd = kd
	}
	if flags.Changed("target") {
		cfg.Run.ControllerParams.Target = target
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// hostDriver returns nil for drivers a host replaces with its own keyboard.
func hostDriver(registry *experiment.Registry, cfg *config.Config) (sim.Driver, error) {
	switch cfg.Run.Driver {
	case "none", "keyboard":
		return nil, nil
	}
	return registry.GetDriver(cfg)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := hostDriver(experiment.NewRegistry(), cfg)
	if err != nil {
		return err
	}
	logger.L().Info("opening window", "width", cfg.Window.Width, "height", cfg.Window.Height, "fps", cfg.Window.FPS)
	return gui.Run(cfg, cfg.NewSimulation(), d, gui.Options{Audio: withAudio})
}

// useTheme switches the terminal host to a theme by name.
func useTheme(name string) error {
	if !slices.Contains(viz.ThemeNames(), name) {
		return fmt.Errorf("unknown theme: %s (available: %v)", name, viz.ThemeNames())
	}
	viz.SetTheme(name)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := useTheme(theme); err != nil {
		return err
	}
	if preset == "" && configFile == "" {
		return viz.RunInteractive()
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := hostDriver(experiment.NewRegistry(), cfg)
	if err != nil {
		return err
	}
	title := preset
	if title == "" {
		title = "cartbob"
	}
	return viz.Run(cfg.NewSimulation(), d, cfg.Run.Dt, title)
}
