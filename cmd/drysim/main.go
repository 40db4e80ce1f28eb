package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/profile"
	"github.com/san-kum/drysim/internal/config"
	"github.com/san-kum/drysim/internal/experiment"
	"github.com/san-kum/drysim/internal/export"
	"github.com/san-kum/drysim/internal/radial"
	"github.com/san-kum/drysim/internal/render"
	"github.com/san-kum/drysim/internal/storage"
	"github.com/san-kum/drysim/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	log      = logrus.New()

	// Run configuration
	configFile     string
	preset         string
	radius         float64
	diffusivity    float64
	initial        float64
	nodes          int
	dt             float64
	duration       float64
	checkpoints    []int
	diagnosticHour int
	workers        int
	strict         bool

	// Outputs
	outDir     string
	dpi        int
	profilePNG string
	diskPNG    string
	profileSVG string
	movie      string

	cpuProfile string
	watch      bool
	frameRate  int
	noSave     bool

	// Sweep
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	sweepJobs   int

	// Plot
	plotWidth  int
	plotHeight int
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "drysim",
		Short:         "radial moisture diffusion in drying spheres",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".drysim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its profiles",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSolverFlags(runCmd)
	addOutputFlags(runCmd)
	runCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this directory")
	runCmd.Flags().BoolVar(&watch, "watch", false, "redraw the profile while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 10, "redraw rate for --watch")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the profiles of a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width in columns")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height in rows")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [path]",
		Short: "copy the profiles of a run to a CSV file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and profiles as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "step a simulation interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSolverFlags(liveCmd)
	liveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the session on quit")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render figures from a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	addOutputFlags(renderCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one parameter over a range of values",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSolverFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dt", "parameter to sweep ("+strings.Join(experiment.SweepParams(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 5, "number of values")
	sweepCmd.Flags().IntVar(&sweepJobs, "jobs", 1, "points to run concurrently")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every entry of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "check a configuration against the explicit stability limit",
		Args:  cobra.NoArgs,
		RunE:  checkStability,
	}
	addSolverFlags(stabilityCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd, renderCmd, sweepCmd, scenarioCmd, stabilityCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorStyle().Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func setupLogging() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return nil
}

func addSolverFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&preset, "preset", "", "start from a preset")
	fs.Float64Var(&radius, "radius", config.DefaultRadius, "sphere radius (m)")
	fs.Float64Var(&diffusivity, "diffusivity", config.DefaultDiffusivity, "diffusivity (m²/s)")
	fs.Float64Var(&initial, "initial", config.DefaultInitial, "initial normalized concentration")
	fs.IntVar(&nodes, "nodes", config.DefaultNodes, "radial intervals")
	fs.Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
	fs.Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	fs.IntSliceVar(&checkpoints, "hours", append([]int(nil), config.DefaultCheckpoints...), "hours to capture")
	fs.IntVar(&diagnosticHour, "diagnostic-hour", config.DefaultDiagnosticHour, "hour to print node values at (0 disables)")
	fs.IntVar(&workers, "workers", config.DefaultWorkers, "goroutines per step")
	fs.BoolVar(&strict, "strict", false, "refuse to run beyond the stability limit")
}

func addOutputFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&outDir, "out", "", "directory for output files")
	fs.IntVar(&dpi, "dpi", config.DefaultDPI, "PNG resolution")
	fs.StringVar(&profilePNG, "profile-png", "", "write the radial profile figure")
	fs.StringVar(&diskPNG, "disk-png", "", "write the cross-section figure")
	fs.StringVar(&profileSVG, "profile-svg", "", "write the radial profile as SVG")
	fs.StringVar(&movie, "movie", "", "write an MJPEG movie of the cross-section")
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("radius") {
		cfg.Radius = radius
	}
	if fs.Changed("diffusivity") {
		cfg.Diffusivity = diffusivity
	}
	if fs.Changed("initial") {
		cfg.Initial = initial
	}
	if fs.Changed("nodes") {
		cfg.Nodes = nodes
	}
	if fs.Changed("dt") {
		cfg.Dt = dt
	}
	if fs.Changed("time") {
		cfg.Duration = duration
	}
	if fs.Changed("hours") {
		cfg.Checkpoints = append([]int(nil), checkpoints...)
	}
	if fs.Changed("diagnostic-hour") {
		cfg.DiagnosticHour = diagnosticHour
	}
	if fs.Changed("workers") {
		cfg.Workers = workers
	}
	if fs.Changed("strict") {
		cfg.StrictStability = strict
	}
	applyOutputFlags(cmd, &cfg.Output)

	return cfg, nil
}

func applyOutputFlags(cmd *cobra.Command, o *config.OutputConfig) {
	fs := cmd.Flags()
	if fs.Lookup("out") == nil {
		return
	}
	if fs.Changed("out") {
		o.Dir = outDir
	}
	if fs.Changed("dpi") {
		o.DPI = dpi
	}
	if fs.Changed("profile-png") {
		o.ProfilePNG = profilePNG
	}
	if fs.Changed("disk-png") {
		o.DiskPNG = diskPNG
	}
	if fs.Changed("profile-svg") {
		o.ProfileSVG = profileSVG
	}
	if fs.Changed("movie") {
		o.Movie = movie
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cpuProfile), profile.NoShutdownHook).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := cfg.Params()
	var observers []radial.Observer
	if cfg.DiagnosticHour > 0 {
		observers = append(observers, radial.NewReadout(os.Stdout, radial.NewGrid(p.Radius, p.Nodes), cfg.DiagnosticHour))
	}
	if watch {
		w := viz.NewWatcher(os.Stdout, cfg.Name, p.Steps(), frameRate)
		w.Start()
		defer w.Stop()
		observers = append(observers, w)
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(observers...); err != nil {
		return err
	}

	fmt.Printf("running %s (%d nodes, %d steps)...\n", cfg.Name, cfg.Nodes, p.Steps())
	out, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	res := out.Result

	fmt.Println()
	fmt.Println(viz.KeyValue("completed in", res.Wall.Round(time.Millisecond).String()))
	fmt.Println(viz.KeyValue("steps", fmt.Sprintf("%d", res.Steps)))
	fmt.Println(viz.KeyValue("hours captured", fmt.Sprintf("%v", res.Snapshots.Hours())))
	fmt.Println(viz.KeyValue("center", fmt.Sprintf("%.2f%%", res.Final[0]*100)))

	if !noSave {
		runID, err := saveOutcome(out)
		if err != nil {
			return err
		}
		fmt.Println(viz.KeyValue("run id", runID))
	}

	fmt.Println("\nmetrics:")
	printMetrics(out.Metrics)

	return writeOutputs(cfg.Output, res)
}

func saveOutcome(out *experiment.Outcome) (string, error) {
	st := storage.New(dataDir)
	runID, err := st.Save(out.Name, out.Result, out.Metrics)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	log.WithFields(logrus.Fields{
		"run_id": runID,
		"dir":    st.Dir(),
	}).Debug("run saved")
	return runID, nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

// writeOutputs renders every artifact named in o. Relative paths are
// resolved against o.Dir.
func writeOutputs(o config.OutputConfig, res *radial.Result) error {
	if o.ProfilePNG == "" && o.DiskPNG == "" && o.ProfileSVG == "" && o.Movie == "" {
		return nil
	}
	if o.Dir != "" {
		if err := os.MkdirAll(o.Dir, 0755); err != nil {
			return err
		}
	}
	path := func(name string) string {
		if o.Dir == "" || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(o.Dir, name)
	}

	if o.ProfilePNG != "" {
		fig, err := render.Profile(res.Grid, res.Snapshots)
		if err != nil {
			return err
		}
		if err := render.SavePNG(path(o.ProfilePNG), fig, render.ProfileWidth, render.ProfileHeight, o.DPI); err != nil {
			return err
		}
		log.WithField("file", path(o.ProfilePNG)).Info("wrote profile figure")
	}

	if o.DiskPNG != "" {
		disk, err := radial.NewDisk(res.Grid, res.Final, 2*res.Params.Nodes+1)
		if err != nil {
			return err
		}
		fig, err := render.Disk(disk)
		if err != nil {
			return err
		}
		if err := render.SavePNG(path(o.DiskPNG), fig, render.DiskWidth, render.DiskHeight, o.DPI); err != nil {
			return err
		}
		log.WithField("file", path(o.DiskPNG)).Info("wrote cross-section figure")
	}

	if o.ProfileSVG != "" {
		f, err := os.Create(path(o.ProfileSVG))
		if err != nil {
			return err
		}
		if err := export.ProfileSVG(f, res.Grid, res.Snapshots, export.DefaultWidth, export.DefaultHeight); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.WithField("file", path(o.ProfileSVG)).Info("wrote profile chart")
	}

	if o.Movie != "" {
		if err := render.Movie(path(o.Movie), res.Grid, res.Snapshots, render.DefaultMovieOptions(res.Params.Nodes)); err != nil {
			return err
		}
		log.WithField("file", path(o.Movie)).Info("wrote movie")
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tRADIUS\tNODES\tDT\tDURATION\tLAMBDA\tHOURS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fmm\t%d\t%gs\t%gh\t%.3f\t%v\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Radius*1000,
			run.Nodes,
			run.Dt,
			run.Duration/radial.SecondsPerHour,
			run.Stability,
			run.Hours,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Profiles, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	prof, err := st.LoadProfiles(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, prof, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, prof, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(prof.Hours) == 0 {
		return fmt.Errorf("no profiles to plot")
	}

	fmt.Println(viz.TitleStyle().Render(meta.ID))
	fmt.Println(viz.KeyValue("radius", fmt.Sprintf("%.1f mm", meta.Radius*1000)))
	fmt.Println(viz.KeyValue("nodes", fmt.Sprintf("%d", meta.Nodes)))
	fmt.Println(viz.KeyValue("dt", fmt.Sprintf("%gs", meta.Dt)))
	fmt.Println()

	opts := viz.DefaultProfileOptions()
	opts.Width = plotWidth
	opts.Height = plotHeight
	fmt.Println(viz.ProfilePlot(prof.Radius, prof.Snapshots(), opts))
	fmt.Println()

	last := prof.Hours[len(prof.Hours)-1]
	fmt.Println(viz.ReadoutTable(prof.Radius, prof.Columns[len(prof.Columns)-1], last))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := runID + ".csv"
	if len(args) > 1 {
		path = args[1]
	}

	st := storage.New(dataDir)
	if err := st.ExportCSV(runID, path); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, prof, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.ExportJSON(os.Stdout, meta, prof)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(f, meta, prof); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRADIUS\tDIFFUSIVITY\tNODES\tDT\tDURATION\tLAMBDA\tHOURS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		p := cfg.Params()
		lambda := fmt.Sprintf("%.3f", radial.StabilityNumber(p))
		if radial.CheckStability(p) != nil {
			lambda += " (unstable)"
		}
		fmt.Fprintf(w, "%s\t%.1fmm\t%.2g\t%d\t%gs\t%gh\t%s\t%v\n",
			name,
			cfg.Radius*1000,
			cfg.Diffusivity,
			cfg.Nodes,
			cfg.Dt,
			cfg.Duration/radial.SecondsPerHour,
			lambda,
			cfg.Checkpoints,
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && preset == "" && configFile == "" {
		picker := viz.NewPicker(config.ListPresets(), func(name string) (radial.Params, error) {
			cfg := config.GetPreset(name)
			if cfg == nil {
				return radial.Params{}, fmt.Errorf("unknown preset: %s", name)
			}
			return cfg.Params(), cfg.Validate()
		})
		start := time.Now()
		final, err := tea.NewProgram(picker, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		if p, ok := final.(viz.Picker); ok {
			if live, started := p.Live(); started {
				return saveLive(live, time.Since(start))
			}
		}
		return nil
	}

	if len(args) == 1 {
		preset = args[0]
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	m, err := viz.NewLiveModel(cfg.Name, cfg.Params())
	if err != nil {
		return err
	}
	start := time.Now()
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if live, ok := final.(viz.LiveModel); ok {
		return saveLive(live, time.Since(start))
	}
	return nil
}

// saveLive stores whatever a live session reached before it was closed.
func saveLive(live viz.LiveModel, wall time.Duration) error {
	s := live.Solver()
	if noSave || s == nil || s.Completed() == 0 {
		return nil
	}
	out := &experiment.Outcome{
		Name:    live.Name(),
		Result:  s.Result(wall),
		Metrics: live.Metrics(),
	}
	runID, err := saveOutcome(out)
	if err != nil {
		return err
	}
	fmt.Printf("saved %d of %d steps as %s\n", s.Completed(), s.TotalSteps(), runID)
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, prof, err := loadRun(runID)
	if err != nil {
		return err
	}

	o := config.OutputConfig{DPI: config.DefaultDPI}
	applyOutputFlags(cmd, &o)
	if o.ProfilePNG == "" && o.DiskPNG == "" && o.ProfileSVG == "" && o.Movie == "" {
		o.ProfilePNG = runID + "_profile.png"
		o.DiskPNG = runID + "_disk.png"
	}

	res := &radial.Result{
		Params:    meta.Params(),
		Grid:      prof.Radius,
		Final:     prof.Final,
		Snapshots: prof.Snapshots(),
		Steps:     meta.Steps,
	}
	return writeOutputs(o, res)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := &experiment.Sweep{
		Base:    cfg,
		Param:   sweepParam,
		Min:     sweepMin,
		Max:     sweepMax,
		Points:  sweepPoints,
		Workers: sweepJobs,
	}
	points, sweepErr := experiment.RunSweep(ctx, s, log)
	if sweepErr != nil && len(points) == 0 {
		return sweepErr
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLAMBDA\tSTEPS\tCENTER\tREMAINING\tIN BOUNDS\tMIN\tMAX\tRUN ID\n", strings.ToUpper(sweepParam))
	for _, pt := range points {
		runID := "-"
		if !noSave {
			if runID, err = saveOutcome(pt.Outcome); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%g\t%.3f\t%d\t%.2f%%\t%.4f\t%.1f%%\t%.4g\t%.4g\t%s\n",
			pt.Value, pt.Stability, pt.Steps, pt.Center*100, pt.Remaining,
			pt.Bounds*100, pt.FinalMin, pt.FinalMax, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return sweepErr
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := experiment.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Description != "" {
		fmt.Println(viz.HelpStyle().Render(sc.Description))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, runErr := experiment.RunScenario(ctx, sc, log)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tHOURS\tCENTER\tREMAINING\tRUN ID")
	for _, out := range outcomes {
		runID := "-"
		if !noSave {
			if runID, err = saveOutcome(out); err != nil {
				return err
			}
		}
		if err := writeOutputs(out.Config.Output, out.Result); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.2f%%\t%.4f\t%s\n",
			out.Name, out.Result.Steps, out.Result.Snapshots.Hours(),
			out.Result.Final[0]*100, out.Metrics["moisture_remaining"], runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func checkStability(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()
	if err := p.Validate(); err != nil {
		return err
	}

	lambda := radial.StabilityNumber(p)
	state := viz.ValueStyle().Render("stable")
	if radial.CheckStability(p) != nil {
		state = viz.ErrorStyle().Render("UNSTABLE")
	}

	fmt.Println(viz.TitleStyle().Render(cfg.Name))
	fmt.Println(viz.KeyValue("dr", fmt.Sprintf("%.4g mm", p.Spacing()*1000)))
	fmt.Println(viz.KeyValue("D·dt/dr²", fmt.Sprintf("%.4f (limit %.2f)", lambda, radial.StabilityLimit)))
	fmt.Println(viz.KeyValue("max stable dt", fmt.Sprintf("%.4gs", radial.MaxStableDt(p))))
	fmt.Println(viz.KeyValue("steps", fmt.Sprintf("%d", p.Steps())))
	fmt.Println(viz.KeyValue("state", state))

	if missed := radial.MissedCheckpoints(p); len(missed) > 0 {
		fmt.Println(viz.WarningStyle().Render(fmt.Sprintf("hours %v will not be captured", missed)))
	}
	return nil
}
