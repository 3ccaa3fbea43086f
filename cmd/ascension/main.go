package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/ascension/internal/config"
	"github.com/napolitain/ascension/internal/game"
	"github.com/napolitain/ascension/internal/i18n"
	"github.com/napolitain/ascension/internal/ledger"
	"github.com/napolitain/ascension/internal/loader"
	"github.com/napolitain/ascension/internal/models"
	"github.com/napolitain/ascension/internal/narration"
	"github.com/napolitain/ascension/internal/scheduler"
	"github.com/napolitain/ascension/internal/solver"
	"github.com/napolitain/ascension/internal/tui"
)

var (
	catalogPath string
	locale      string
	quiet       bool

	targetEra string
	maxTicks  uint64
	nextOnly  bool

	schemaOnly bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ascension",
		Short: "Industrial Ascension idle game",
		Long: `An idle progression game: gather resources, raise buildings and
research your way from the Stone era towards Transcendence.`,
	}

	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "d", "", "Path to a catalog YAML file (default: embedded)")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "", "Locale for messages (pt-BR, en-US)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE:  runPlay,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play headlessly with the greedy ROI strategy",
		Run:   runSimulate,
	}
	simulateCmd.Flags().StringVarP(&targetEra, "era", "e", string(models.IronAge), "Era to reach")
	simulateCmd.Flags().Uint64Var(&maxTicks, "max-ticks", solver.DefaultMaxTicks, "Tick limit")
	simulateCmd.Flags().BoolVarP(&nextOnly, "next", "n", false, "Show only the next action")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the buildings and technologies of the catalog",
		Run:   runCatalog,
	}
	catalogCmd.Flags().BoolVar(&schemaOnly, "schema", false, "Print the catalog JSON Schema instead")

	rootCmd.AddCommand(playCmd, simulateCmd, catalogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCatalog() *models.Catalog {
	catalog, err := loader.LoadCatalog(catalogPath)
	if err != nil {
		color.Red("Error loading catalog: %v", err)
		os.Exit(1)
	}
	return catalog
}

func resolveLocale(cfg config.Config) string {
	if locale != "" {
		return locale
	}
	return cfg.Locale
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	catalog := loadCatalog()
	loc := resolveLocale(cfg)

	narrator := narration.New(narration.Config{
		APIKey:  cfg.Narration.Key(),
		Model:   cfg.Narration.Model,
		BaseURL: cfg.Narration.BaseURL,
		Locale:  loc,
		Timeout: cfg.Narration.Timeout,
	})
	session := game.New(catalog, game.Options{
		Narrator:         narrator,
		Locale:           loc,
		NarrationTimeout: cfg.Narration.Timeout,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go scheduler.New(session, cfg.TickInterval, nil).Run(ctx)

	if err := tui.Run(session, loc); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	cancel()
	session.Wait()
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)
	errorColor := color.New(color.FgRed, color.Bold)

	era := models.Era(strings.ToLower(targetEra))
	if !era.Valid() {
		color.Red("Unknown era %q", targetEra)
		os.Exit(1)
	}

	if !quiet && !nextOnly {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Industrial Ascension     │")
		titleColor.Println("│  Greedy Simulator         │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
	}

	catalog := loadCatalog()
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	session := game.New(catalog, game.Options{Locale: locale, Logger: log.New(os.Stderr, "", 0)})

	if nextOnly {
		printNextAction(session.Snapshot())
		return
	}

	if !quiet {
		infoColor.Printf("📦 Loaded %d buildings, %d technologies\n", len(catalog.Buildings), len(catalog.Technologies))
		infoColor.Printf("🎯 Target era: %s\n\n", era)
	}

	greedy := solver.NewGreedySolver(session, era)
	greedy.MaxTicks = maxTicks
	solution := greedy.Solve()

	if !quiet {
		printActions(catalog, solution)
	}
	printSummary(solution, era)
	if era.Reached(solution.FinalEra) {
		successColor.Printf("\n✓ Reached %s in %s\n", solution.Final.EraName, formatTime(solution.Seconds()))
	} else {
		errorColor.Printf("\n✗ Stopped in %s after %s\n", solution.Final.EraName, formatTime(solution.Seconds()))
		os.Exit(2)
	}
}

func printActions(catalog *models.Catalog, solution *solver.Solution) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Time", "Action", "Target", "Costs", "ROI", "Era"}),
	)
	for i, a := range solution.Actions {
		roi := "-"
		if a.Kind != solver.ActionResearch {
			roi = fmt.Sprintf("%.4f", a.ROI)
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			formatTime(float64(a.Tick) / ledger.TicksPerSecond),
			string(a.Kind),
			a.Name,
			formatCosts(catalog, a.Costs),
			roi,
			string(a.Era),
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func printSummary(solution *solver.Solution, era models.Era) {
	infoColor := color.New(color.FgCyan)

	infoColor.Println("\n📊 Summary:")
	fmt.Printf("   • Game time: %s (%d ticks)\n", formatTime(solution.Seconds()), solution.Ticks)
	fmt.Printf("   • Actions: %d, manual collections: %d\n", len(solution.Actions), solution.Clicks)
	fmt.Printf("   • Final era: %s (target %s)\n", solution.FinalEra, era)

	fmt.Println("\n🏗️  Buildings:")
	for _, b := range solution.Final.Buildings {
		if b.Count == 0 {
			continue
		}
		fmt.Printf("   • %s: %d owned, level %d\n", b.Name, b.Count, b.Level)
	}

	fmt.Println("\n📦 Resources:")
	for _, r := range solution.Final.Resources {
		if r.Amount < 1 && r.PerSecond == 0 {
			continue
		}
		fmt.Printf("   • %-12s %10.0f  (+%.1f/s)\n", r.Type, r.Amount, r.PerSecond)
	}
}

func printNextAction(snap game.Snapshot) {
	action, ok := solver.Advise(snap)
	if !ok {
		fmt.Println("none")
		return
	}
	fmt.Printf("%s:%s\n", action.Kind, action.TargetID)
}

func runCatalog(cmd *cobra.Command, args []string) {
	if schemaOnly {
		data, err := loader.CatalogSchemaJSON()
		if err != nil {
			color.Red("Error building schema: %v", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	catalog := loadCatalog()
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	p := i18n.Printer(locale)
	titleColor := color.New(color.FgCyan, color.Bold)

	titleColor.Println("🏗️  Buildings")
	buildings := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Name", "Era", "Base cost", "Production/s", "First upgrade"}),
	)
	for _, b := range catalog.Buildings {
		_ = buildings.Append([]string{
			b.ID,
			b.Icon + " " + i18n.BuildingName(p, b),
			i18n.EraName(p, b.EraRequired),
			formatCosts(catalog, b.BaseCost),
			formatRates(catalog, b.BaseProduction),
			formatCosts(catalog, economyUpgradeCost(b)),
		})
	}
	_ = buildings.Render()

	fmt.Println()
	titleColor.Println("🔬 Technologies")
	techs := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Name", "Era", "Cost", "Unlocks"}),
	)
	for _, t := range catalog.Technologies {
		unlocks := "-"
		if t.UnlocksEra != "" {
			unlocks = i18n.EraName(p, t.UnlocksEra)
		}
		_ = techs.Append([]string{
			t.ID,
			i18n.TechnologyName(p, t),
			i18n.EraName(p, t.EraRequired),
			formatCosts(catalog, t.Cost),
			unlocks,
		})
	}
	_ = techs.Render()
}
