package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motion/internal/dynamo"
)

// Plot charts one value component of a recorded run.
func Plot(result *dynamo.Result, component int, caption string) (string, error) {
	series := result.Component(component)
	if len(series) < 2 {
		return "", fmt.Errorf("component %d: not enough frames to plot", component)
	}
	return asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	), nil
}

// PlotMany overlays the same component of several runs.
func PlotMany(results []*dynamo.Result, component int, caption string) (string, error) {
	series := make([][]float64, 0, len(results))
	for i, r := range results {
		s := r.Component(component)
		if len(s) < 2 {
			return "", fmt.Errorf("run %d: not enough frames to plot", i)
		}
		series = append(series, s)
	}
	colors := []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Red, asciigraph.Blue, asciigraph.Yellow}
	opts := []asciigraph.Option{
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	}
	if len(series) <= len(colors) {
		opts = append(opts, asciigraph.SeriesColors(colors[:len(series)]...))
	}
	return asciigraph.PlotMany(series, opts...), nil
}
