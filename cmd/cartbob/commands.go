package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/cartbob/internal/analysis"
	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/experiment"
	"github.com/san-kum/cartbob/internal/export"
	"github.com/san-kum/cartbob/internal/logger"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/storage"
	"github.com/san-kum/cartbob/internal/tui"
	"github.com/san-kum/cartbob/internal/vec"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	if live {
		r := tui.NewLiveRenderer(os.Stdout, preset, frameRate)
		exp.GetRecorder().AddObserver(r)
		r.Start()
		defer r.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.L().Info("running simulation", "preset", preset, "driver", cfg.Run.Driver, "dt", cfg.Run.Dt, "duration", cfg.Run.Duration)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:     preset,
		Dt:         cfg.Run.Dt,
		Duration:   cfg.Run.Duration,
		Driver:     cfg.Run.Driver,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		RestLength: cfg.Physics.RestLength,
		Damping:    cfg.Physics.Damping,
	}, result)
	if err != nil {
		return err
	}
	logger.L().Info("run saved", "id", runID, "dir", st.Dir(), "elapsed", elapsed)

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	printMetrics(os.Stdout, result.Metrics)
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tDRIVER\tWINDOW\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%dx%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Driver,
			run.Width, run.Height,
			run.Steps,
		)
	}
	return w.Flush()
}

func loadRun(id string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadResult(id)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Snapshots) == 0 {
		return nil, nil, fmt.Errorf("run %s has no data", id)
	}
	return meta, result, nil
}

// plotWidth fits the chart to the terminal, leaving room for the axis
// labels.
func plotWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 40 {
		return 80
	}
	return w - 12
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s  driver: %s\n", meta.Preset, meta.Driver)
	fmt.Printf("samples: %d\n\n", len(result.Snapshots))

	series := []struct {
		caption string
		value   func(i int) float64
	}{
		{"bob angle (rad)", func(i int) float64 { return result.Snapshots[i].Angle }},
		{"angular velocity (rad/s)", func(i int) float64 { return result.Snapshots[i].AngularVelocity }},
		{"cart x", func(i int) float64 { return result.Snapshots[i].CartPosition.X }},
		{"bob y", func(i int) float64 { return result.Snapshots[i].BobPosition.Y }},
	}

	w := plotWidth()
	for _, s := range series {
		data := make([]float64, len(result.Snapshots))
		for i := range data {
			data[i] = s.value(i)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(w),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

// outputWriter opens the -o file, or stdout when none was given.
func outputWriter() (io.Writer, func() error, error) {
	if output == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := outputWriter()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := outputWriter()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	doc, err := renderSVG(meta, result)
	if err != nil {
		return err
	}
	w, closeFn, err := outputWriter()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, doc); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func renderSVG(meta *storage.RunMetadata, result *sim.Result) (string, error) {
	switch svgStyle {
	case "paths":
		return export.RunToSVG(result.Snapshots, svgWidth, svgHeight), nil
	case "canvas":
		cfg, err := runConfig(meta)
		if err != nil {
			return "", err
		}
		dims := vec.New(cfg.Host.CartWidthPx/float64(cfg.Window.Width), cfg.Host.CartHeightPx/float64(cfg.Window.Height))
		return export.RunToCanvasSVG(result.Snapshots, dims, canvasCols, canvasRows, 4), nil
	case "phase":
		return export.TrajectoryToSVG(analysis.PhasePortrait(result.Snapshots), svgWidth, svgHeight, "#00ccff"), nil
	}
	return "", fmt.Errorf("unknown svg style: %s", svgStyle)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	angles := result.Angles()
	freq := analysis.DominantFrequency(angles, meta.Dt)
	lo, hi := analysis.Bounds(analysis.PhasePortrait(result.Snapshots))

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n", len(angles))
	fmt.Printf("dominant frequency: %.4f Hz\n", freq)
	if freq > 0 {
		fmt.Printf("swing period: %.4f s\n", 1/freq)
	}
	fmt.Printf("angle wraps: %d\n", analysis.WrapCount(angles))
	fmt.Printf("angle range: [%.4f, %.4f] rad\n", lo.X, hi.X)
	fmt.Printf("angular velocity range: [%.4f, %.4f] rad/s\n", lo.Y, hi.Y)

	if !lyapunov {
		return nil
	}

	cfg, err := runConfig(meta)
	if err != nil {
		return err
	}
	lambda, err := analysis.LyapunovExponent(cfg.NewSimulation, meta.Dt, meta.Duration, 1e-8)
	if err != nil {
		return err
	}
	fmt.Printf("lyapunov exponent: %.6f\n", lambda)
	return nil
}

// runConfig rebuilds the configuration a stored run was recorded with, as
// far as the metadata describes it.
func runConfig(meta *storage.RunMetadata) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if meta.Preset != "" {
		if p := config.GetPreset(meta.Preset); p != nil {
			cfg = p
		}
	}
	cfg.Run.Dt = meta.Dt
	cfg.Run.Duration = meta.Duration
	cfg.Window.Width = meta.Width
	cfg.Window.Height = meta.Height
	cfg.Physics.RestLength = meta.RestLength
	cfg.Physics.Damping = meta.Damping
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(aspects) == 0 {
		return fmt.Errorf("no aspects to sweep")
	}

	registry := experiment.NewRegistry()
	scenarios := make([]sim.Scenario, len(aspects))
	sizes := make([][2]int, len(aspects))
	for i, a := range aspects {
		if a <= 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("invalid aspect %g", a)
		}
		cfg := base.Clone()
		cfg.Window.Width = int(math.Round(float64(cfg.Window.Height) * a))
		sizes[i] = [2]int{cfg.Window.Width, cfg.Window.Height}

		sc, err := experiment.New(cfg).Scenario(registry)
		if err != nil {
			return err
		}
		scenarios[i] = sc
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.L().Info("sweeping", "aspects", len(aspects), "duration", base.Run.Duration)
	results, err := sim.Sweep(ctx, scenarios, base.SimConfig())
	if err != nil {
		return err
	}

	names := make([]string, 0)
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "ASPECT\tWINDOW\tSTEPS")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for i, r := range results {
		fmt.Fprintf(w, "%.3f\t%dx%d\t%d", aspects[i], sizes[i][0], sizes[i][1], r.Steps)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.5f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
