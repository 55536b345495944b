package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Scenario builds one independent run. Each call must return fresh values:
// runs execute concurrently and share nothing.
type Scenario func() (*Simulation, Driver, []Metric)

// Sweep runs every scenario with the same config, at most NumCPU at a time.
// Results are in scenario order; the first error cancels the rest.
func Sweep(ctx context.Context, scenarios []Scenario, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, build := range scenarios {
		i, build := i, build
		g.Go(func() error {
			s, driver, metrics := build()
			rec := NewRecorder(s, driver)
			for _, m := range metrics {
				rec.AddMetric(m)
			}
			res, err := rec.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
