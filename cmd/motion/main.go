package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motion/internal/analysis"
	"github.com/san-kum/motion/internal/automation"
	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/experiment"
	"github.com/san-kum/motion/internal/export"
	"github.com/san-kum/motion/internal/integrators"
	"github.com/san-kum/motion/internal/logging"
	"github.com/san-kum/motion/internal/optim"
	"github.com/san-kum/motion/internal/storage"
	"github.com/san-kum/motion/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	integrator string
	frame      float64
	duration   float64
	noSave     bool
	realtime   bool
	jsonOut    string
	csvOut     string
	component  int
	plotAxis   int
	phase      bool
	svgWidth   int
	svgHeight  int

	sweepParam   string
	sweepFrom    float64
	sweepTo      float64
	sweepSteps   int
	sweepMetric  string
	segment      int
	workers      int
	grid         []string
	maxOvershoot float64

	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "motion",
		Short:         "spring, decay and eased-curve animation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.Setup(logLevel)
			return err
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".motion", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to $"+logging.EnvLevel)

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "play a scenario headlessly and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames against the wall clock")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write the trajectory as JSON to a file, or - for stdout")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write the trajectory as CSV to a file")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "play a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotAxis, "component", -1, "component to plot (default all)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure ringing of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&component, "component", 0, "component to analyze")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id] [output]",
		Short: "render a stored run as svg",
		Args:  cobra.ExactArgs(2),
		RunE:  svgRun,
	}
	svgCmd.Flags().IntVar(&component, "component", 0, "component to draw")
	svgCmd.Flags().BoolVar(&phase, "phase", false, "draw velocity against value instead of value against time")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "replay a scenario across a range of one law parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepParameter,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 2, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 40, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "settle_time", "metric to chart")
	sweepCmd.Flags().IntVar(&segment, "segment", 0, "segment whose law is tuned")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (default GOMAXPROCS)")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario]",
		Short: "grid search law parameters for the fastest settle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneParameters,
	}
	scenarioFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", []string{"tension=50:400:8", "damping=2:40:20"}, "parameter range as name=min:max:steps (repeatable)")
	tuneCmd.Flags().Float64Var(&maxOvershoot, "max-overshoot", 0.5, "largest acceptable overshoot")
	tuneCmd.Flags().IntVar(&segment, "segment", 0, "segment whose law is tuned")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (default GOMAXPROCS)")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrator...]",
		Short: "play a scenario once per integrator",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	scenarioFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIMS\tSEGMENTS")
			for _, name := range names {
				cfg := config.Presets[name]
				kinds := make([]string, len(cfg.Segments))
				for i, seg := range cfg.Segments {
					kinds[i] = seg.Kind
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, cfg.Dims, strings.Join(kinds, " > "))
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a scenario file to start from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scenario.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, analyzeCmd, svgCmd, sweepCmd, tuneCmd, compareCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	cmd.Flags().Float64Var(&frame, "frame", config.DefaultFrame, "frame interval in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "maximum playback time in seconds")
}

// loadScenario resolves the scenario from --config or a preset name, then
// applies any flags the user set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	default:
		name := "spring"
		if len(args) > 0 {
			name = args[0]
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown scenario: %s (available: %s)", name, strings.Join(names, ", "))
		}
	}

	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("frame") {
		cfg.Frame = frame
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running scenario", "scenario", cfg.Name, "dims", cfg.Dims, "integrator", cfg.Integrator)
	start := time.Now()
	play := experiment.Run
	if realtime {
		play = experiment.Play
	}
	result, err := play(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("scenario finished", "elapsed", time.Since(start), "frames", len(result.Times))

	if jsonOut != "" {
		if jsonOut == "-" {
			return storage.WriteJSON(os.Stdout, cfg, result)
		}
		if err := storage.ExportJSON(jsonOut, cfg, result); err != nil {
			return err
		}
	}
	if csvOut != "" {
		if err := storage.WriteCSV(csvOut, result); err != nil {
			return err
		}
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("frames: %d\n", len(result.Times))
	fmt.Printf("final: %s\n", formatVec(result.Final()))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, logger)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDIMS\tFRAME\tINTEG\tSETTLE")
	for _, run := range runs {
		settle := "-"
		if s, ok := run.Metrics["settle_time"]; ok && s >= 0 {
			settle = fmt.Sprintf("%.3fs", s)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dims,
			run.Frame,
			run.Integrator,
			settle,
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
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	if len(result.Values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(result.Values))

	dims := len(result.Values[0])
	first, last := 0, dims-1
	if plotAxis >= 0 {
		if plotAxis >= dims {
			return fmt.Errorf("component %d: %w", plotAxis, dynamo.ErrInvalidDimension)
		}
		first, last = plotAxis, plotAxis
	}
	for i := first; i <= last; i++ {
		graph, err := viz.Plot(result, i, fmt.Sprintf("x%d vs frame", i))
		if err != nil {
			return err
		}
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	cfg := &config.Config{
		Name:       meta.Scenario,
		Dims:       meta.Dims,
		Integrator: meta.Integrator,
		Frame:      meta.Frame,
		Duration:   meta.Duration,
	}
	return storage.WriteJSON(os.Stdout, cfg, result)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args[:1])
	if err != nil {
		return err
	}
	names := args[1:]
	if len(names) == 0 {
		names = integrators.Names()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runs, err := experiment.Compare(ctx, cfg, names, logger)
	if err != nil {
		return err
	}
	logger.Debug("comparison finished", "elapsed", time.Since(start))

	fmt.Printf("comparing integrators for %s (frame=%.4f, duration=%.1fs)\n\n", cfg.Name, cfg.Frame, cfg.Duration)
	fmt.Printf("%-10s  %-12s  %-12s  %-12s\n", "integrator", "final_x0", "overshoot", "settle_time")
	fmt.Println(strings.Repeat("-", 52))
	results := make([]*dynamo.Result, 0, len(runs))
	for _, run := range runs {
		fmt.Printf("%-10s  %12.6f  %12.6f  %12.4f\n",
			run.Integrator, run.Result.Final()[0], run.Result.Metrics["overshoot"], run.Result.Metrics["settle_time"])
		results = append(results, run.Result)
	}

	graph, err := viz.PlotMany(results, 0, "x0 per integrator: "+strings.Join(names, ", "))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.Values) == 0 {
		return fmt.Errorf("no data to analyze")
	}
	if component < 0 || component >= len(result.Values[0]) {
		return fmt.Errorf("component %d: %w", component, dynamo.ErrInvalidDimension)
	}

	series := result.Component(component)
	rest := series[len(series)-1]
	fmt.Printf("component: x%d (rest %.4f)\n", component, rest)
	if len(result.Times) > 1 {
		dt := result.Times[1] - result.Times[0]
		fmt.Printf("dominant frequency: %.4f Hz\n", analysis.DominantFrequency(series, dt))
	}

	osc, err := analysis.Analyze(result.Times, series, rest)
	if errors.Is(err, analysis.ErrNoOscillation) {
		fmt.Println("no oscillation around rest")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("swings: %d\n", len(osc.Peaks))
	fmt.Printf("period: %.4fs (%.4f Hz)\n", osc.Period, osc.Frequency)
	fmt.Printf("damping ratio: %.4f\n", osc.DampingRatio)
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	x, y := export.Axis{Time: true}, export.Axis{Component: component}
	if phase {
		x, y = export.Axis{Component: component}, export.Axis{Component: component, Velocity: true}
	}
	svg, err := export.TrajectorySVG(result, x, y, svgWidth, svgHeight, "#00ffff")
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg written", "path", args[1], "frames", len(result.Times))
	return nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	values := automation.Linspace(sweepFrom, sweepTo, sweepSteps)
	runner := &automation.Runner{Segment: segment, Workers: workers, Logger: logger}
	runs, err := runner.Sweep(ctx, cfg, sweepParam, values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSETTLE\tOVERSHOOT\tPEAK_SPEED\n", strings.ToUpper(sweepParam))
	series := make([]float64, 0, len(runs))
	for _, run := range runs {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\n",
			run.Point[sweepParam], run.Metrics["settle_time"], run.Metrics["overshoot"], run.Metrics["peak_speed"])
		series = append(series, run.Metrics[sweepMetric])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs %s (%.2f..%.2f)", sweepMetric, sweepParam, sweepFrom, sweepTo)),
		))
	}
	return nil
}

func tuneParameters(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(grid))
	ranges := make([][]float64, 0, len(grid))
	for _, expr := range grid {
		name, values, err := parseRange(expr)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	search := optim.NewGridSearch(names, ranges)
	runner := &automation.Runner{Segment: segment, Workers: workers, Logger: logger}
	logger.Info("tuning", "scenario", cfg.Name, "points", len(search.Points()))
	best, score, err := search.Search(ctx, runner, cfg, optim.FastestSettle(maxOvershoot))
	if err != nil {
		return err
	}

	fmt.Printf("best settle time: %.4fs\n", score)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, best.Point[name])
	}
	printMetrics(best.Metrics)
	return nil
}

// parseRange reads name=min:max:steps.
func parseRange(expr string) (string, []float64, error) {
	name, rng, ok := strings.Cut(expr, "=")
	parts := strings.Split(rng, ":")
	if !ok || name == "" || len(parts) != 3 {
		return "", nil, fmt.Errorf("bad range %q: want name=min:max:steps", expr)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad range %q: %w", expr, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad range %q: %w", expr, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("bad range %q: steps must be a positive integer", expr)
	}
	return name, automation.Linspace(lo, hi, n), nil
}
