// Package optim tunes law parameters against an objective.
package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/motion/internal/automation"
	"github.com/san-kum/motion/internal/config"
)

var ErrNoCandidate = errors.New("no grid point satisfies the objective")

// Objective scores a run; lower is better. +Inf rejects the run.
type Objective func(run automation.Run) float64

// FastestSettle prefers runs that settle soonest while overshooting by no more
// than maxOvershoot.
func FastestSettle(maxOvershoot float64) Objective {
	return func(run automation.Run) float64 {
		settle := run.Metrics["settle_time"]
		if settle < 0 || run.Metrics["overshoot"] > maxOvershoot {
			return math.Inf(1)
		}
		return settle
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Points enumerates the full cartesian grid.
func (g *GridSearch) Points() []automation.Point {
	var out []automation.Point
	g.collect(0, automation.Point{}, &out)
	return out
}

func (g *GridSearch) collect(depth int, current automation.Point, out *[]automation.Point) {
	if depth == len(g.paramNames) {
		pt := make(automation.Point, len(current))
		for k, v := range current {
			pt[k] = v
		}
		*out = append(*out, pt)
		return
	}
	for _, val := range g.ranges[depth] {
		current[g.paramNames[depth]] = val
		g.collect(depth+1, current, out)
	}
	delete(current, g.paramNames[depth])
}

// Search runs every grid point and returns the best scoring one.
func (g *GridSearch) Search(ctx context.Context, runner *automation.Runner, cfg *config.Config, objective Objective) (automation.Run, float64, error) {
	runs, err := runner.RunPoints(ctx, cfg, g.Points())
	if err != nil {
		return automation.Run{}, 0, err
	}

	best := math.Inf(1)
	var bestRun automation.Run
	for _, run := range runs {
		if score := objective(run); score < best {
			best, bestRun = score, run
		}
	}
	if math.IsInf(best, 1) {
		return automation.Run{}, best, ErrNoCandidate
	}
	return bestRun, best, nil
}
