package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/nkotova/spatialui/internal/config"
	"github.com/nkotova/spatialui/internal/export"
	"github.com/nkotova/spatialui/internal/gui"
	"github.com/nkotova/spatialui/internal/logging"
	"github.com/nkotova/spatialui/internal/mathx"
	"github.com/nkotova/spatialui/internal/metrics"
	"github.com/nkotova/spatialui/internal/scenario"
	"github.com/nkotova/spatialui/internal/trace"
	"github.com/nkotova/spatialui/internal/tui"
	"github.com/nkotova/spatialui/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logJSON    bool
	// sim
	watch  bool
	rate   int
	noSave bool
	// plot
	column string
	// export
	format  string
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spatialui",
		Short: "spatial control-panel widget lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive 3D demo.
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")

	simCmd := &cobra.Command{
		Use:   "sim [scenario]",
		Short: "run a scripted scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	simCmd.Flags().BoolVar(&watch, "watch", false, "animate the run in the terminal")
	simCmd.Flags().IntVar(&rate, "rate", 30, "watch frame rate")
	simCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the trace")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scripted scenarios",
		RunE:  listScenarios,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list config presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run column",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "column to plot (default: first knob value)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run (json, csv, svg)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "output format")
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "replay a scenario in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  liveScenario,
	}

	rootCmd.AddCommand(simCmd, scenariosCmd, presetsCmd, listCmd, plotCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (try `spatialui presets`)", preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func knobNames(cfg *config.Config) []string {
	names := make([]string, len(cfg.Knobs))
	for i, k := range cfg.Knobs {
		names[i] = k.Name
	}
	return names
}

func simulate(cfg *config.Config, name string, observers ...scenario.Observer) (*scenario.Result, error) {
	p, err := cfg.BuildPanel()
	if err != nil {
		return nil, err
	}

	sc, err := scenario.NewRegistry().Get(name, cfg.Layout())
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logLevel, logJSON)
	if err != nil {
		return nil, err
	}
	defer log.Sync()

	runner := scenario.NewRunner(p, log)
	for _, m := range metrics.Defaults(len(p.Mounts())) {
		runner.AddMetric(m)
	}
	for _, o := range observers {
		runner.AddObserver(o)
	}

	return runner.Run(context.Background(), sc)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var observers []scenario.Observer
	var renderer *tui.LiveRenderer
	if watch {
		renderer = tui.NewLiveRenderer(knobNames(cfg), rate)
		observers = append(observers, renderer)
	}

	result, err := simulate(cfg, args[0], observers...)
	if renderer != nil {
		renderer.Done()
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "scenario\t%s\n", result.Scenario)
	fmt.Fprintf(w, "frames\t%d\n", result.Frames)
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
	}
	w.Flush()

	if noSave {
		return nil
	}

	store := trace.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	id, err := store.Save(result, knobNames(cfg))
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", id)
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg := scenario.NewRegistry()
	lay := cfg.Layout()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range reg.List() {
		sc, err := reg.Get(name, lay)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d frames\t%s\n", sc.Name, len(sc.Frames), sc.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runs, err := trace.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tFRAMES\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			run.ID, run.Scenario, run.Frames, run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := trace.New(cfg.DataDir)

	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	header, rows, err := store.LoadFrames(args[0])
	if err != nil {
		return err
	}

	col := column
	if col == "" {
		if len(meta.Knobs) > 0 {
			col = meta.Knobs[0] + "_value"
		} else {
			col = "win_x"
		}
	}

	data, err := trace.Column(header, rows, col)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s · %s", args[0], col))))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := trace.New(cfg.DataDir)

	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case "json":
		out, err = json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
	case "csv":
		out, err = os.ReadFile(filepath.Join(cfg.DataDir, args[0], "frames.csv"))
		if err != nil {
			return err
		}
	case "svg":
		result, err := rebuildResult(store, meta, args[0])
		if err != nil {
			return err
		}
		out = []byte(export.RunToSVG(result, meta.Knobs))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if outFile == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outFile, out, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

// rebuildResult reloads just enough of a stored run to redraw it.
func rebuildResult(store *trace.Store, meta *trace.RunMetadata, runID string) (*scenario.Result, error) {
	header, rows, err := store.LoadFrames(runID)
	if err != nil {
		return nil, err
	}

	cols := map[string][]float64{}
	names := []string{"time", "win_x", "win_y", "win_z"}
	for _, k := range meta.Knobs {
		names = append(names, k+"_value")
	}
	for _, name := range names {
		c, err := trace.Column(header, rows, name)
		if err != nil {
			return nil, err
		}
		cols[name] = c
	}

	result := &scenario.Result{
		Scenario: meta.Scenario,
		DT:       meta.DT,
		Frames:   len(rows),
	}
	for i := range rows {
		rec := scenario.Record{
			Frame: i,
			T:     cols["time"][i],
			WindowPos: mathx.Vec3{
				X: cols["win_x"][i],
				Y: cols["win_y"][i],
				Z: cols["win_z"][i],
			},
		}
		for _, k := range meta.Knobs {
			rec.Values = append(rec.Values, cols[k+"_value"][i])
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func liveScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := simulate(cfg, args[0])
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(viz.NewModel(result, knobNames(cfg))).Run()
	return err
}
