package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/cartbob/internal/automation"
	"github.com/san-kum/cartbob/internal/experiment"
	"github.com/san-kum/cartbob/internal/logger"
	"github.com/san-kum/cartbob/internal/optim"
	"github.com/san-kum/cartbob/internal/storage"
)

// parseGrid turns "kp=0:8" entries into parameter names and value ranges.
func parseGrid(entries []string, n int) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		name, bounds, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, nil, fmt.Errorf("grid %q: want name=min:max", entry)
		}
		loStr, hiStr, ok := strings.Cut(bounds, ":")
		if !ok {
			return nil, nil, fmt.Errorf("grid %q: want name=min:max", entry)
		}
		lo, err := strconv.ParseFloat(loStr, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("grid %q: %w", entry, err)
		}
		hi, err := strconv.ParseFloat(hiStr, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("grid %q: %w", entry, err)
		}
		names = append(names, name)
		ranges = append(ranges, optim.Linspace(lo, hi, n))
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid, points)
	if err != nil {
		return err
	}
	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.L().Info("tuning", "driver", cfg.Run.Driver, "metric", metric, "runs", g.Size())
	best, val, err := g.Search(ctx, cfg, experiment.NewRegistry(), metric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", metric, val)
	for _, name := range names {
		fmt.Printf("  %s = %.4f\n", name, best[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry())
	if err != nil {
		return err
	}

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	for _, r := range results {
		fmt.Printf("%s: %d steps\n", r.Name, r.Result.Steps)
		printMetrics(os.Stdout, r.Result.Metrics)
		if st == nil {
			continue
		}
		id, err := st.Save(storage.RunMetadata{
			Preset:     r.Name,
			Dt:         r.Config.Run.Dt,
			Duration:   r.Config.Run.Duration,
			Driver:     r.Config.Run.Driver,
			Width:      r.Config.Window.Width,
			Height:     r.Config.Window.Height,
			RestLength: r.Config.Physics.RestLength,
			Damping:    r.Config.Physics.Damping,
		}, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("  saved as %s\n", id)
	}
	return nil
}
