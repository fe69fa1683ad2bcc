package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/circuitlab/internal/api"
	"github.com/san-kum/circuitlab/internal/catalog"
	"github.com/san-kum/circuitlab/internal/circuit"
	"github.com/san-kum/circuitlab/internal/config"
	"github.com/san-kum/circuitlab/internal/export"
	"github.com/san-kum/circuitlab/internal/scenario"
	"github.com/san-kum/circuitlab/internal/storage"
	"github.com/san-kum/circuitlab/internal/workspace"
)

var (
	configFile  string
	dataDir     string
	policy      string
	catalogFile string
	theme       string
	listen      string
	noTimestamp bool
	// add
	icon string
	posX float64
	posY float64
	// plot
	quantity string
	// export-json, export-svg
	outFile   string
	svgWidth  int
	svgHeight int
)

// main registers the circuitlab commands and runs the root command, which
// opens the terminal workspace when no subcommand is given.
func main() {
	log.SetPrefix("circuitlab: ")
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:          "circuitlab",
		Short:        "visual circuit builder",
		SilenceUsage: true,
		RunE:         runWorkspace,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default "+config.DefaultDataDir+")")
	rootCmd.PersistentFlags().StringVar(&policy, "policy", "", "voltage policy (full, battery_only)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog file (json or yaml)")
	rootCmd.PersistentFlags().BoolVar(&noTimestamp, "no-timestamp", false, "do not record the save time")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "open the terminal workspace",
		RunE:  runWorkspace,
	}
	themeHelp := "color theme (" + strings.Join(workspace.ThemeNames(), ", ") + ")"
	tuiCmd.Flags().StringVar(&theme, "theme", "", themeHelp)
	rootCmd.Flags().StringVar(&theme, "theme", "", themeHelp)

	addCmd := &cobra.Command{
		Use:   "add [kind] [magnitude]",
		Short: "place a component",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  addComponent,
	}
	addCmd.Flags().StringVar(&icon, "icon", "", "icon reference (default from catalog)")
	addCmd.Flags().Float64Var(&posX, "x", 0, "horizontal position")
	addCmd.Flags().Float64Var(&posY, "y", 0, "vertical position")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list placed components",
		RunE:  listComponents,
	}

	totalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "total resistance, voltage and current",
		RunE:  showTotals,
	}

	moveCmd := &cobra.Command{
		Use:   "move [index] [x] [y]",
		Short: "move a placed component",
		Args:  cobra.ExactArgs(3),
		RunE:  moveComponent,
	}

	removeCmd := &cobra.Command{
		Use:   "remove [index]",
		Short: "remove a placed component",
		Args:  cobra.ExactArgs(1),
		RunE:  removeComponent,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "remove every component",
		RunE:  clearComponents,
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "list component types",
		RunE:  listCatalog,
	}

	applyCmd := &cobra.Command{
		Use:   "apply [scenario.yaml]",
		Short: "place components from a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  applyScenario,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export the circuit to JSON",
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [file]",
		Short: "draw the board as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "board width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "board height")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot running totals in placement order",
		RunE:  plotTotals,
	}
	plotCmd.Flags().StringVar(&quantity, "quantity", "current", "resistance, voltage or current")

	policiesCmd := &cobra.Command{
		Use:   "policies",
		Short: "list voltage policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRESISTANCE\tVOLTAGE")
			for _, name := range config.ListPolicies() {
				p, _ := config.GetPolicy(name)
				fmt.Fprintf(w, "%s\t%v\t%v\n", name, p.ResistanceKinds, p.VoltageKinds)
			}
			return w.Flush()
		},
	}

	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "list the keys in the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			return listKeys(os.Stdout, st)
		},
	}

	forgetCmd := &cobra.Command{
		Use:   "forget",
		Short: "delete every saved key, backups included",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			n, err := forgetAll(st)
			if err != nil {
				return err
			}
			fmt.Printf("deleted %d keys from %s\n", n, st.Dir())
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the circuit over HTTP for a browser workspace",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&listen, "listen", "", "listen address (default "+config.DefaultListen+")")

	rootCmd.AddCommand(tuiCmd, addCmd, listCmd, totalsCmd, moveCmd, removeCmd, clearCmd, catalogCmd, applyCmd, exportJSONCmd, exportSVGCmd, plotCmd, policiesCmd, dataCmd, forgetCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file when given and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if policy != "" {
		cfg.Policy = policy
	}
	if catalogFile != "" {
		cfg.Catalog = catalogFile
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if listen != "" {
		cfg.Listen = listen
	}
	if noTimestamp {
		cfg.RecordTimestamp = false
	}
	if _, ok := workspace.GetTheme(cfg.Theme); !ok {
		return nil, fmt.Errorf("unknown theme: %s (available: %s)", cfg.Theme, strings.Join(workspace.ThemeNames(), ", "))
	}
	return cfg, nil
}

func openStore() (*storage.File, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st := storage.New(cfg.DataDir)
	return st, st.Init()
}

// listKeys prints each stored key with the size of its value.
func listKeys(w io.Writer, kv storage.KV) error {
	keys, err := kv.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "no saved data")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tBYTES")
	for _, k := range keys {
		v, _, err := kv.Get(k)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\n", k, len(v))
	}
	return tw.Flush()
}

// forgetAll deletes every key and reports how many were removed.
func forgetAll(kv storage.KV) (int, error) {
	keys, err := kv.Keys()
	if err != nil {
		return 0, err
	}
	for i, k := range keys {
		if err := kv.Delete(k); err != nil {
			return i, fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return len(keys), nil
}

// openCircuit restores the saved circuit. A corrupt snapshot is logged and
// the session starts empty.
func openCircuit(cfg *config.Config) (*circuit.Circuit, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	opts, err := cfg.CircuitOptions()
	if err != nil {
		return nil, err
	}
	c, err := circuit.Open(st, opts...)
	if errors.Is(err, circuit.ErrCorruptSnapshot) {
		log.Printf("ignoring saved circuit: %v", err)
		return c, nil
	}
	return c, err
}

func openCatalog(cfg *config.Config) *catalog.Catalog {
	cat, err := catalog.LoadOrDefault(cfg.Catalog)
	if err != nil {
		log.Printf("using built-in catalog: %v", err)
	}
	return cat
}

func setup() (*config.Config, *circuit.Circuit, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	c, err := openCircuit(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}

func runWorkspace(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup()
	if err != nil {
		return err
	}
	t, _ := workspace.GetTheme(cfg.Theme)
	return workspace.Run(c, openCatalog(cfg), t, log.Default())
}

func addComponent(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup()
	if err != nil {
		return err
	}
	cat := openCatalog(cfg)

	kind := circuit.ParseKind(args[0])
	entry, known := cat.Lookup(kind)

	var magnitude float64
	switch {
	case len(args) == 2:
		magnitude, err = circuit.ParseMagnitude(args[1])
		if err != nil {
			return err
		}
	case known:
		magnitude = entry.Magnitude
	default:
		return fmt.Errorf("magnitude required for %q (not in catalog)", args[0])
	}
	if icon == "" {
		icon = entry.Icon
	}

	comp, err := circuit.NewComponent(kind, magnitude, icon, circuit.Position{X: posX, Y: posY})
	if err != nil {
		return err
	}
	if err := c.Add(comp); err != nil {
		return err
	}
	fmt.Printf("placed %s at (%g, %g) as #%d\n", comp.Label(), posX, posY, c.Len()-1)
	return nil
}

func listComponents(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}

	comps := c.Components()
	if len(comps) == 0 {
		fmt.Println("no components placed")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tKIND\tVALUE\tX\tY\tICON")
	for i, comp := range comps {
		fmt.Fprintf(w, "%d\t%s\t%g %s\t%g\t%g\t%s\n", i, comp.Kind, comp.Magnitude, comp.Kind.Unit(), comp.Position.X, comp.Position.Y, comp.Icon)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if t := c.SavedAt(); !t.IsZero() {
		fmt.Printf("\nsaved %s\n", t.Local().Format(time.DateTime))
	}
	return nil
}

func showTotals(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}
	t := c.Totals()
	fmt.Printf("resistance: %g Ω\n", t.Resistance)
	fmt.Printf("voltage:    %g V\n", t.Voltage)
	fmt.Printf("current:    %g A\n", t.Current)
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

func moveComponent(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid x %q", args[1])
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid y %q", args[2])
	}
	return c.Move(i, circuit.Position{X: x, Y: y})
}

func removeComponent(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return c.Remove(i)
}

func clearComponents(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}
	if err := c.Clear(); err != nil {
		return err
	}
	fmt.Println("workspace reset")
	return nil
}

func listCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat := openCatalog(cfg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tVALUE\tICON")
	for _, e := range cat.Entries() {
		fmt.Fprintf(w, "%s\t%g %s\t%s\n", e.Kind, e.Magnitude, e.Kind.Unit(), e.Icon)
	}
	return w.Flush()
}

func applyScenario(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup()
	if err != nil {
		return err
	}
	s, err := scenario.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if s.Name != "" {
		fmt.Printf("scenario: %s\n", s.Name)
	}
	if err := scenario.Apply(s, c, openCatalog(cfg), os.Stdout); err != nil {
		return err
	}
	t := c.Totals()
	fmt.Printf("R=%g Ω  V=%g V  I=%g A\n", t.Resistance, t.Voltage, t.Current)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}
	if outFile == "" {
		return export.JSONStdout(c)
	}
	if err := export.JSON(outFile, c); err != nil {
		return err
	}
	fmt.Printf("exported %d components to %s\n", c.Len(), outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}
	if err := export.SVG(args[0], c, svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Printf("exported board to %s\n", args[0])
	return nil
}

// plotTotals replays the placements into a scratch circuit and charts the
// chosen total after each one.
func plotTotals(cmd *cobra.Command, args []string) error {
	_, c, err := setup()
	if err != nil {
		return err
	}

	var pick func(circuit.Totals) float64
	var unit string
	switch quantity {
	case "resistance":
		pick, unit = func(t circuit.Totals) float64 { return t.Resistance }, "Ω"
	case "voltage":
		pick, unit = func(t circuit.Totals) float64 { return t.Voltage }, "V"
	case "current":
		pick, unit = func(t circuit.Totals) float64 { return t.Current }, "A"
	default:
		return fmt.Errorf("unknown quantity: %s", quantity)
	}

	comps := c.Components()
	if len(comps) == 0 {
		fmt.Println("no components placed")
		return nil
	}

	scratch := circuit.New(storage.NewMemory(), circuit.WithPolicy(c.Policy()))
	data := make([]float64, 0, len(comps))
	for _, comp := range comps {
		_ = scratch.Add(comp)
		data = append(data, pick(scratch.Totals()))
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("total %s (%s) by placement", quantity, unit)),
	)
	fmt.Println(graph)
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.NewServer(c, openCatalog(cfg), log.Default()).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server starting on %s", cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
