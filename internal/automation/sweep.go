// Package automation replays a scenario many times with different law
// parameters.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/experiment"
	"golang.org/x/sync/errgroup"
)

// Point assigns law parameters for one run.
type Point map[string]float64

// Run is the outcome of playing the scenario at one point.
type Run struct {
	Point   Point
	Final   []float64
	Metrics map[string]float64
}

// Runner plays cfg once per point, Workers at a time. Params are applied to
// the law of segment Segment on top of the ones the scenario already sets.
type Runner struct {
	Segment int
	Workers int
	Logger  *slog.Logger
}

func (r *Runner) RunPoints(ctx context.Context, cfg *config.Config, points []Point) ([]Run, error) {
	if r.Segment < 0 || r.Segment >= len(cfg.Segments) {
		return nil, fmt.Errorf("segment %d out of range (scenario has %d)", r.Segment, len(cfg.Segments))
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	runs := make([]Run, len(points))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pt := range points {
		g.Go(func() error {
			c := cfg.Clone()
			seg := &c.Segments[r.Segment]
			if seg.Params == nil {
				seg.Params = make(map[string]float64, len(pt))
			}
			for k, v := range pt {
				seg.Params[k] = v
			}

			res, err := experiment.Run(ctx, c, nil)
			if err != nil {
				return fmt.Errorf("point %v: %w", pt, err)
			}
			logger.Debug("sweep point done", "point", pt, "settle_time", res.Metrics["settle_time"])
			runs[i] = Run{Point: pt, Final: res.Final(), Metrics: res.Metrics}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Sweep plays cfg once per value of a single parameter.
func (r *Runner) Sweep(ctx context.Context, cfg *config.Config, param string, values []float64) ([]Run, error) {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{param: v}
	}
	return r.RunPoints(ctx, cfg, points)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
