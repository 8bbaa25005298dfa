package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Jungo-Phi/Slidep/internal/automation"
	"github.com/Jungo-Phi/Slidep/internal/config"
	"github.com/Jungo-Phi/Slidep/internal/export"
	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/metrics"
	"github.com/Jungo-Phi/Slidep/internal/optim"
	"github.com/Jungo-Phi/Slidep/internal/scene"
	"github.com/Jungo-Phi/Slidep/internal/solver"
	"github.com/Jungo-Phi/Slidep/internal/storage"
	"github.com/Jungo-Phi/Slidep/internal/viz"
)

var (
	dataDir string
	verbose bool
	// grab and target
	jointID  int
	rodID    int
	rodK     float64
	targetX  float64
	targetY  float64
	animate  bool
	maxIter  int
	tol      float64
	steps    int
	maxStep  float64
	noSave   bool
	plot     bool
	outPath  string
	svgPath  string
	jsonPath string
	// Config file
	configFile string
	// Preset name
	preset string
	// sweep
	centerX float64
	centerY float64
	radius  float64
	sweepN  int
	// reach grid
	xMin       float64
	xMax       float64
	yMin       float64
	yMax       float64
	gridN      int
	reachTol   float64
	metricName string
	// monte carlo
	perturb float64
	trials  int
	seed    int64
	// drawing size
	svgWidth  int
	svgHeight int
	cols      int
	rows      int
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00cccc"))

// main registers the commands and runs the scene menu when no subcommand is
// given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "slidep",
		Short: "planar linkage constraint relaxation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(newSolver(solver.DefaultConfig()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".slidep", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver diagnostics to stderr")

	solveCmd := &cobra.Command{
		Use:   "solve [scene]",
		Short: "drag a grab point to a target and relax the mechanism",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addGrabFlags(solveCmd)
	addSolverFlags(solveCmd)
	solveCmd.Flags().Float64Var(&targetX, "x", config.DefaultTargetX, "target x")
	solveCmd.Flags().Float64Var(&targetY, "y", config.DefaultTargetY, "target y")
	solveCmd.Flags().BoolVar(&animate, "animate", false, "approach the target in small steps")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	solveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	solveCmd.Flags().BoolVar(&plot, "plot", false, "plot the error trace")
	solveCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the solved scene to this yaml file")
	solveCmd.Flags().StringVar(&svgPath, "svg", "", "write the solved mechanism to this svg file")
	solveCmd.Flags().StringVar(&jsonPath, "json", "", "write the run to this json file")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "drag a mechanism interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addGrabFlags(liveCmd)
	addSolverFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a scripted sequence of drags",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	addSolverFlags(scriptCmd)
	scriptCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the final scene to this yaml file")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "turn a grab point around a circle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addGrabFlags(sweepCmd)
	addSolverFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&centerX, "cx", 0, "circle center x")
	sweepCmd.Flags().Float64Var(&centerY, "cy", 0, "circle center y")
	sweepCmd.Flags().Float64Var(&radius, "radius", 5, "circle radius")
	sweepCmd.Flags().IntVar(&sweepN, "steps", 36, "positions per turn")
	sweepCmd.Flags().BoolVar(&animate, "animate", false, "approach every position in small steps")
	sweepCmd.Flags().BoolVar(&plot, "plot", false, "plot the error per position")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scene]",
		Short: "drag toward randomly perturbed targets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addGrabFlags(monteCarloCmd)
	addSolverFlags(monteCarloCmd)
	monteCarloCmd.Flags().Float64Var(&targetX, "x", config.DefaultTargetX, "base target x")
	monteCarloCmd.Flags().Float64Var(&targetY, "y", config.DefaultTargetY, "base target y")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 1, "maximum offset per axis")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time)")

	reachCmd := &cobra.Command{
		Use:   "reach [scene]",
		Short: "map which targets of a grid a grab point can reach",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReach,
	}
	addGrabFlags(reachCmd)
	addSolverFlags(reachCmd)
	reachCmd.Flags().Float64Var(&xMin, "xmin", -10, "grid left edge")
	reachCmd.Flags().Float64Var(&xMax, "xmax", 10, "grid right edge")
	reachCmd.Flags().Float64Var(&yMin, "ymin", -10, "grid bottom edge")
	reachCmd.Flags().Float64Var(&yMax, "ymax", 10, "grid top edge")
	reachCmd.Flags().IntVar(&gridN, "n", 21, "targets per axis")
	reachCmd.Flags().Float64Var(&reachTol, "reach-tol", 0.1, "distance under which a target counts as reached")
	reachCmd.Flags().StringVar(&metricName, "metric", "", "score cells by this metric instead of the distance left")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes and their presets",
		RunE:  listScenes,
	}

	showCmd := &cobra.Command{
		Use:   "show [scene]",
		Short: "print a scene and draw it",
		Args:  cobra.ExactArgs(1),
		RunE:  showScene,
	}
	showCmd.Flags().StringVar(&svgPath, "svg", "", "also write the scene to this svg file")
	showCmd.Flags().IntVar(&cols, "cols", 60, "drawing width in characters")
	showCmd.Flags().IntVar(&rows, "rows", 20, "drawing height in characters")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the error trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the solved mechanism and error trace of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output directory (default current)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "picture width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "picture height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(solveCmd, liveCmd, scriptCmd, sweepCmd, reachCmd, monteCarloCmd, scenesCmd, showCmd,
		listCmd, plotCmd, exportCmd, exportSVGCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGrabFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&jointID, "joint", config.DefaultJoint, "grabbed joint index")
	cmd.Flags().IntVar(&rodID, "rod", -1, "grabbed rod index (overrides --joint)")
	cmd.Flags().Float64Var(&rodK, "k", 1, "grabbed position along the rod, 0 = end A, 1 = end B")
}

func addSolverFlags(cmd *cobra.Command) {
	def := solver.DefaultConfig()
	cmd.Flags().IntVar(&maxIter, "max-iter", def.MaxIterations, "maximum sweeps per propagation")
	cmd.Flags().Float64Var(&tol, "tol", def.Tolerance, "convergence tolerance on the total error")
	cmd.Flags().IntVar(&steps, "animate-steps", def.AnimateSteps, "rounds per animated drag")
	cmd.Flags().Float64Var(&maxStep, "animate-max-step", def.AnimateMaxStep, "largest move of an animated round")
}

// resolveConfig layers defaults, a preset, a config file and explicit flags,
// in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	sceneName := cfg.Scene
	if len(args) > 0 {
		sceneName = args[0]
	}

	if preset != "" {
		p := config.GetPreset(sceneName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sceneName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Scene = args[0]
	}
	if flags.Changed("rod") && rodID >= 0 {
		cfg.SetRod(rodID, rodK)
	} else if flags.Changed("joint") {
		cfg.SetJoint(jointID)
	} else if flags.Changed("k") && cfg.Grab.Rod != nil {
		cfg.Grab.K = rodK
	}
	if flags.Changed("x") {
		cfg.Target.X = targetX
	}
	if flags.Changed("y") {
		cfg.Target.Y = targetY
	}
	if flags.Changed("animate") {
		cfg.Animate = animate
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIterations = maxIter
	}
	if flags.Changed("tol") {
		cfg.Solver.Tolerance = tol
	}
	if flags.Changed("animate-steps") {
		cfg.Solver.AnimateSteps = steps
	}
	if flags.Changed("animate-max-step") {
		cfg.Solver.AnimateMaxStep = maxStep
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSolver(cfg solver.Config) *solver.Solver {
	s := solver.New(cfg)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	if verbose {
		s.SetLogger(log.New(os.Stderr, "slidep: ", log.Ltime))
	}
	return s
}

func loadMechanism(name string) (*kin.Mechanism, error) {
	sc, err := scene.Resolve(name)
	if err != nil {
		return nil, err
	}
	m, err := sc.Build()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return m, nil
}

func loadGrabbed(cfg *config.Config) (*kin.Mechanism, solver.Grab, error) {
	m, err := loadMechanism(cfg.Scene)
	if err != nil {
		return nil, solver.Grab{}, err
	}
	g, err := cfg.GrabElement()
	if err != nil {
		return nil, solver.Grab{}, err
	}
	if !g.Valid(m) {
		return nil, solver.Grab{}, fmt.Errorf("%s is not in scene %s (%d rods, %d joints)", g, cfg.Scene, len(m.Rods), len(m.Joints))
	}
	return m, g, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, err := loadGrabbed(cfg)
	if err != nil {
		return err
	}

	s := newSolver(cfg.Solver)
	fmt.Printf("dragging %s of %s to %s...\n", g, cfg.Scene, cfg.Target)
	start := time.Now()

	var res *solver.Result
	if cfg.Animate {
		res = s.Animate(m, g, cfg.Target)
	} else {
		res = s.Drag(m, g, cfg.Target)
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	printResult(os.Stdout, res)
	fmt.Printf("grab now at: %s\n", g.Position(m))
	fmt.Println()
	printJoints(os.Stdout, m)

	if plot && len(res.Trace) > 1 {
		fmt.Println()
		fmt.Println(plotTrace(res.Trace, "log10 error per sweep"))
	}

	run := storage.Run{
		Scene:   cfg.Scene,
		Grab:    g,
		Target:  cfg.Target,
		Animate: cfg.Animate,
		Solver:  cfg.Solver,
		Result:  res,
		Final:   m,
	}
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(run)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	if outPath != "" {
		if err := scene.Save(outPath, scene.FromMechanism(cfg.Scene, m)); err != nil {
			return err
		}
	}
	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.MechanismSVG(m, 800, 600)), 0644); err != nil {
			return err
		}
	}
	if jsonPath != "" {
		if err := export.ExportJSON(jsonPath, run); err != nil {
			return err
		}
	}
	return nil
}

func printResult(w io.Writer, res *solver.Result) {
	status := "converged"
	switch {
	case !res.Valid:
		status = "invalid geometry"
	case !res.Converged:
		status = "not converged"
	}
	fmt.Fprintf(w, "status: %s\n", status)
	fmt.Fprintf(w, "sweeps: %d\n", res.Iterations)
	fmt.Fprintf(w, "error: %.6g\n", res.Error)
	fmt.Fprintf(w, "elements: %d (%d actions)\n", len(res.Elements), len(res.Actions))
	if len(res.Metrics) == 0 {
		return
	}
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6g\n", name, res.Metrics[name])
	}
}

func printJoints(w io.Writer, m *kin.Mechanism) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOINT\tKIND\tPOS\tDIR\tGROUND\tERROR")
	for i := range m.Joints {
		j := &m.Joints[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f°\t%v\t%.3g\n",
			i, j.Kind, j.Pos, j.Dir.AngleDeg(), j.Ground, solver.JointError(m, j.ID))
	}
	tw.Flush()
}

func plotTrace(trace []float64, caption string) string {
	logs := make([]float64, len(trace))
	for i, v := range trace {
		logs[i] = math.Log10(math.Max(v, 1e-12))
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, err := loadGrabbed(cfg)
	if err != nil {
		return err
	}
	return viz.Run(cfg.Scene, m, newSolver(cfg.Solver), &g)
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, []string{script.Scene})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	name := script.Name
	if name == "" {
		name = filepath.Base(args[0])
	}
	fmt.Println(titleStyle.Render(name))
	if script.Description != "" {
		fmt.Println(script.Description)
	}
	fmt.Println()

	results, m, err := automation.RunScript(ctx, script, newSolver(cfg.Solver), os.Stdout)
	if err != nil {
		return err
	}

	converged := 0
	for _, r := range results {
		if r.Result.Converged {
			converged++
		}
	}
	fmt.Printf("\n%d/%d steps converged\n\n", converged, len(results))
	printJoints(os.Stdout, m)

	if outPath != "" {
		return scene.Save(outPath, scene.FromMechanism(script.Scene, m))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, err := loadGrabbed(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.Sweep{
		Grab:    g,
		Center:  geom.Pt(centerX, centerY),
		Radius:  radius,
		Steps:   sweepN,
		Animate: cfg.Animate,
	}
	fmt.Printf("sweeping %s of %s around %s, radius %g, %d steps\n\n", g, cfg.Scene, sweep.Center, radius, sweepN)
	results, err := automation.RunSweep(ctx, m, sweep, newSolver(cfg.Solver), os.Stdout)
	if err != nil {
		return err
	}

	conv, unconv, worst := automation.SweepStats(results)
	fmt.Printf("\nconverged: %d\nnot converged: %d\nworst error: %.6g\n", conv, unconv, worst)

	if plot && len(results) > 1 {
		errs := make([]float64, len(results))
		for i, r := range results {
			errs[i] = r.Error
		}
		fmt.Println()
		fmt.Println(plotTrace(errs, "log10 error per position"))
	}
	return nil
}

func runReach(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, err := loadGrabbed(cfg)
	if err != nil {
		return err
	}
	if gridN < 2 {
		return fmt.Errorf("need at least 2 targets per axis, got %d", gridN)
	}
	if metricName != "" {
		if err := metrics.Check(metricName); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	gs := optim.NewGridSearch(optim.Linspace(xMin, xMax, gridN), optim.Linspace(yMin, yMax, gridN))
	rm, err := gs.Search(ctx, m, g, func() *solver.Solver { return newSolver(cfg.Solver) }, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("reach of %s in %s, %dx%d targets\n\n", g, cfg.Scene, gridN, gridN)
	for iy := len(rm.Ys) - 1; iy >= 0; iy-- {
		var sb strings.Builder
		for _, c := range rm.Cells[iy] {
			switch {
			case c.Within(reachTol):
				sb.WriteRune('█')
			case c.Valid && c.Converged:
				sb.WriteRune('▒')
			default:
				sb.WriteRune('·')
			}
		}
		fmt.Printf("%8.2f %s\n", rm.Ys[iy], sb.String())
	}
	fmt.Printf("\ncoverage: %.1f%%\n", 100*rm.Coverage(reachTol))
	fmt.Printf("best target: %s (score %.6g, %d sweeps)\n", rm.Best.Target, rm.Best.Score, rm.Best.Iterations)
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, err := loadGrabbed(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	mc := &automation.MonteCarloConfig{
		Grab:         g,
		Base:         cfg.Target,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
		Solver:       cfg.Solver,
	}
	fmt.Printf("running %d trials of %s around %s (±%g)...\n", trials, g, cfg.Target, perturb)
	start := time.Now()
	results, err := automation.RunMonteCarlo(ctx, m, mc)
	if err != nil {
		return err
	}
	conv, unconv := automation.MonteCarloStats(results)

	var sweeps, worst float64
	invalid := 0
	for _, r := range results {
		sweeps += float64(r.Iterations)
		worst = math.Max(worst, r.Error)
		if !r.Valid {
			invalid++
		}
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("converged: %d\nnot converged: %d\ninvalid: %d\n", conv, unconv, invalid)
	if len(results) > 0 {
		fmt.Printf("mean sweeps: %.1f\nworst error: %.6g\n", sweeps/float64(len(results)), worst)
	}
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("built-in scenes"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tRODS\tJOINTS\tPRESETS\tDESCRIPTION")
	for _, name := range scene.ListPresets() {
		sc := scene.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			name, len(sc.Rods), len(sc.Joints), strings.Join(config.ListPresets(name), ","), sc.Description)
	}
	return w.Flush()
}

func showScene(cmd *cobra.Command, args []string) error {
	sc, err := scene.Resolve(args[0])
	if err != nil {
		return err
	}
	m, err := sc.Build()
	if err != nil {
		return err
	}

	data, err := sc.Marshal()
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	c := viz.NewCanvas(cols, rows)
	lo, hi := m.Bounds()
	viz.DrawMechanism(c, viz.FitViewport(lo, hi, c.PixelWidth(), c.PixelHeight(), 6), m)
	fmt.Print(c.String())
	fmt.Printf("\nerror: %.6g\n", solver.TotalError(m))

	if svgPath != "" {
		return os.WriteFile(svgPath, []byte(export.MechanismSVG(m, 800, 600)), 0644)
	}
	return nil
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tGRAB\tTARGET\tSWEEPS\tERROR\tCONVERGED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.3g\t%v\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Grab,
			run.Target,
			run.Iterations,
			run.Error,
			run.Converged,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("sweeps: %d\n\n", len(trace))
	fmt.Println(plotTrace(trace, "log10 error per sweep"))
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

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	sc, err := st.LoadScene(runID)
	if err != nil {
		return err
	}
	m, err := sc.Build()
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	dir := outPath
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	mechPath := filepath.Join(dir, runID+"_mechanism.svg")
	if err := os.WriteFile(mechPath, []byte(export.MechanismSVG(m, svgWidth, svgHeight)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", mechPath)

	if len(trace) > 1 {
		tracePath := filepath.Join(dir, runID+"_trace.svg")
		if err := os.WriteFile(tracePath, []byte(export.TraceSVG(trace, svgWidth, svgHeight/2, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", tracePath)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := export.LoadExportData(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return data.Encode(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return data.Encode(f)
}
