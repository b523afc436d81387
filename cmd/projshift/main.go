package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/projshift/internal/automation"
	"github.com/san-kum/projshift/internal/config"
	"github.com/san-kum/projshift/internal/export"
	"github.com/san-kum/projshift/internal/gui"
	"github.com/san-kum/projshift/internal/logging"
	"github.com/san-kum/projshift/internal/metrics"
	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/storage"
	"github.com/san-kum/projshift/internal/transition"
	"github.com/san-kum/projshift/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	configFile string
	preset     string

	duration  float64
	dt        float64
	curveName string
	frameRate int
	jitter    float64
	seed      int64
	maxFrames int

	startMode string
	fov       float64
	orthoSize float64
	aspect    float64
	near      float64
	far       float64

	label  string
	noSave bool

	// export-svg
	outFile  string
	frameIdx int
	svgScale float64
	svgW     int
	svgH     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "projshift",
		Short: "orthographic/perspective camera transition lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".projshift", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a transition headless and record it",
		Args:  cobra.NoArgs,
		RunE:  runTransition,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "", "label stored with the run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

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

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the easing curve, or one frame's wireframe, to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "render the wireframe seen through this frame's matrix")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 0, "render the frame as braille dots at this scale")
	exportSVGCmd.Flags().IntVar(&svgW, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgH, "height", 450, "image height")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal viewer with a transition button",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal preset menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "raylib window viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, name)
		},
	}
	addConfigFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	curveCmd := &cobra.Command{
		Use:   "curve [name]",
		Short: "plot an easing curve in both directions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotCurve,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [curve1] [curve2] ...",
		Short: "compare easing curves on the same camera",
		RunE:  compareCurves,
	}
	addConfigFlags(compareCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of transitions",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the steps")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		liveCmd, tuiCmd, guiCmd, presetsCmd, curveCmd, compareCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	lvl, on, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	if !on {
		logging.SetLogger(nil)
		return nil
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func addConfigFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&duration, "time", d.Duration, "transition duration in seconds (<= 0 switches instantly)")
	f.Float64Var(&dt, "dt", d.Dt, "frame time for headless runs")
	f.StringVar(&curveName, "curve", d.Curve, "easing curve")
	f.IntVar(&frameRate, "fps", d.FPS, "frame rate for viewers")
	f.Float64Var(&jitter, "jitter", 0, "relative frame time jitter in [0, 1)")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "jitter seed")
	f.IntVar(&maxFrames, "max-frames", d.MaxFrames, "frame budget for headless runs")
	f.StringVar(&startMode, "mode", "ortho", "starting projection (ortho, persp)")
	f.Float64Var(&fov, "fov", d.Camera.FieldOfView, "vertical field of view in degrees")
	f.Float64Var(&orthoSize, "size", d.Camera.OrthographicSize, "orthographic half height")
	f.Float64Var(&aspect, "aspect", d.Camera.Aspect, "aspect ratio")
	f.Float64Var(&near, "near", d.Camera.Near, "near clip plane")
	f.Float64Var(&far, "far", d.Camera.Far, "far clip plane")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
// It returns the config and a display name for it.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "default"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg, name = fileCfg, configFile
	}

	flags := cmd.Flags()
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("curve") {
		cfg.Curve = curveName
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("jitter") {
		cfg.Jitter = jitter
	}
	if flags.Changed("seed") || (cfg.Jitter > 0 && cfg.Seed == 0) {
		cfg.Seed = seed
	}
	if flags.Changed("max-frames") {
		cfg.MaxFrames = maxFrames
	}
	if flags.Changed("mode") {
		m, err := projection.ParseMode(startMode)
		if err != nil {
			return nil, "", err
		}
		cfg.Camera.Orthographic = m == projection.Orthographic
	}
	if flags.Changed("fov") {
		cfg.Camera.FieldOfView = fov
	}
	if flags.Changed("size") {
		cfg.Camera.OrthographicSize = orthoSize
	}
	if flags.Changed("aspect") {
		cfg.Camera.Aspect = aspect
	}
	if flags.Changed("near") {
		cfg.Camera.Near = near
	}
	if flags.Changed("far") {
		cfg.Camera.Far = far
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	tr, _, err := cfg.NewTransitioner()
	if err != nil {
		return nil, err
	}
	s := sim.New(tr)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runTransition(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	simCfg := cfg.SimConfig()
	result, err := s.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("config: %s\n", name)
	fmt.Printf("%s -> %s\n", result.StartMode, result.FinalMode)
	fmt.Printf("frames: %d\n", result.FramesTaken)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if label == "" {
			label = name
		}
		meta := storage.NewMetadata(label, cfg.Curve, cfg.Params(), simCfg, result)
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printMetrics(os.Stdout, result.Metrics)
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
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
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tDIRECTION\tDURATION\tDT\tCURVE\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s->%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.StartMode,
			run.FinalMode,
			run.Duration,
			run.Dt,
			run.Curve,
			run.FramesTaken,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("not enough frames to plot (%d)", len(frames))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("direction: %s -> %s (%s)\n", meta.StartMode, meta.FinalMode, meta.Curve)
	fmt.Printf("frames: %d\n\n", len(frames))

	rec := &sim.Result{Frames: frames}
	fractions := make([]float64, len(frames))
	for i, f := range frames {
		fractions[i] = f.Fraction
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"eased factor", rec.Eased()},
		{"time fraction", fractions},
		{"m[3][2] (w from z)", rec.Element(3, 2)},
		{"m[0][0] (x scale)", rec.Element(0, 0)},
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
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

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.WriteFramesCSV(os.Stdout, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	switch {
	case frameIdx < 0:
		svg = export.CurveToSVG(frames, svgW, svgH, "#00ff88")
		if svg == "" {
			return fmt.Errorf("not enough frames for a curve (%d)", len(frames))
		}
	case frameIdx >= len(frames):
		return fmt.Errorf("frame %d out of range (run has %d)", frameIdx, len(frames))
	case svgScale > 0:
		c := viz.NewCanvas(svgW/8, svgH/16)
		viz.Render(c, viz.NewDemoScene(), viz.DefaultView(), frames[frameIdx].Matrix)
		svg = export.CanvasToSVG(c, svgScale)
	default:
		segs := viz.ProjectScene(viz.NewDemoScene(), viz.DefaultView(), frames[frameIdx].Matrix, float64(svgW), float64(svgH))
		svg = export.SegmentsToSVG(segs, svgW, svgH, "#00ffff")
	}

	if outFile == "" {
		_, err := fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, name)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTART\tDURATION\tCURVE\tFOV\tSIZE\tJITTER")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%s\t%.0f\t%.1f\t%.2f\n",
			name, p.StartMode(), p.Duration, p.Curve, p.Camera.FieldOfView, p.Camera.OrthographicSize, p.Jitter)
	}
	return w.Flush()
}

func plotCurve(cmd *cobra.Command, args []string) error {
	name := transition.DefaultCurveName
	if len(args) > 0 {
		name = args[0]
	}
	curve, err := transition.LookupCurve(name)
	if err != nil {
		return err
	}

	const samples = 60
	for _, start := range []projection.Mode{projection.Orthographic, projection.Perspective} {
		data := make([]float64, samples+1)
		for i := range data {
			data[i] = curve.Factor(start, float64(i)/samples)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption(fmt.Sprintf("%s: %s", name, viz.ButtonLabel(start))),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	fmt.Printf("curves: %s\n", strings.Join(transition.CurveNames(), ", "))
	return nil
}

func compareCurves(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = transition.CurveNames()
	}

	variants := make([]sim.Variant, len(names))
	for i, name := range names {
		if _, err := transition.LookupCurve(name); err != nil {
			return err
		}
		c := *cfg
		c.Curve = name
		variants[i] = sim.Variant{
			Name:   name,
			Build:  func() (*sim.Simulator, error) { return newSimulator(&c) },
			Config: c.SimConfig(),
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, errs := sim.RunVariants(ctx, variants)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURVE\tFRAMES\tMAX_STEP\tENDPOINT_SNAP\tMONOTONICITY\tJITTER\tFINAL")
	failed := 0
	for i, r := range results {
		if errs[i] != nil {
			failed++
			if r == nil {
				fmt.Fprintf(w, "%s\terror: %v\n", variants[i].Name, errs[i])
				continue
			}
		}
		final := r.FinalMode.String()
		if errs[i] != nil {
			final = fmt.Sprintf("error: %v", errs[i])
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.3e\t%.3f\t%.3f\t%s\n",
			variants[i].Name,
			r.FramesTaken,
			r.Metrics["max_step"],
			r.Metrics["endpoint_snap"],
			r.Metrics["monotonicity"],
			r.Metrics["jitter_energy"],
			final,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d variants failed: %w", failed, len(variants), sim.FirstError(errs))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	steps, runErr := automation.RunScenario(ctx, scenario)

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	base := config.DefaultConfig()
	if scenario.Preset != "" {
		if p := config.GetPreset(scenario.Preset); p != nil {
			base = p
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tDIRECTION\tCURVE\tDURATION\tFRAMES\tRUN")
	for i, step := range steps {
		runID := "-"
		if st != nil {
			meta := storage.NewMetadata(step.Label, step.Curve, base.Params(), step.Config, step.Result)
			if runID, err = st.Save(meta, step.Result); err != nil {
				return err
			}
		}
		stepLabel := step.Label
		if stepLabel == "" {
			stepLabel = fmt.Sprintf("#%d", i+1)
		}
		fmt.Fprintf(w, "%s\t%s->%s\t%s\t%.2fs\t%d\t%s\n",
			stepLabel,
			step.Result.StartMode,
			step.Result.FinalMode,
			step.Curve,
			step.Config.Duration,
			step.Result.FramesTaken,
			runID,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}
