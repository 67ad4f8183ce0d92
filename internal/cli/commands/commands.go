package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ttp/internal/cases"
	"ttp/internal/cli"
	"ttp/internal/config"
	"ttp/internal/diagnostic"
	"ttp/internal/execution"
	"ttp/internal/log"
	"ttp/internal/migration"
	"ttp/internal/storage"
	"ttp/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Faills  *FaillsCommand
	Match   *MatchCommand
	Install *InstallCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := cases.NewScanner(cfg.PathsToIgnore)
	filter := cases.NewFilter()
	scheduler := execution.NewRoundRobinScheduler()
	extractor := diagnostic.NewResultExtractor()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, nil)
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewSchemaMigrator(cfg, dbManager)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, filter, scheduler, extractor, jsonStorage, dbManager, formatter, errorViewer),
		List:    NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Migrate: NewMigrateCommand(cfg, migrator),
		Faills:  NewFaillsCommand(cfg, jsonStorage, errorViewer),
		Match:   NewMatchCommand(cfg, formatter),
		Install: NewInstallCommand(),
	}
}

// prepare copies parsed flags into cfg, validates it and installs the logger
func prepare(cfg *config.Config, flags *cli.Flags) error {
	cfg.ApplyFlags(flags.ToConfigFlags())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", cases.ErrConfiguration, err)
	}
	logger, err := log.New(cfg.LogEncoding, cfg.Verbosity)
	if err != nil {
		return fmt.Errorf("%w: %v", cases.ErrConfiguration, err)
	}
	log.SetLogger(logger)
	return nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	preRun := func(cmd *cobra.Command, args []string) error {
		return prepare(cfg, flags)
	}
	rootCmd.PersistentFlags().CountVarP(&flags.Verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run translation cases against the live translator",
		Long:    "Load translation cases, drive the translator page for each one in order and judge the output",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: preRun,
	}
	runCmd.Flags().StringVarP(&flags.Source, "source", "s", "", "Case source: builtin, a YAML fixture, an .xlsx workbook or a directory of fixtures")
	runCmd.Flags().StringVar(&flags.Sheet, "sheet", "", "Workbook sheet holding the cases")
	runCmd.Flags().StringSliceVar(&flags.Only, "only", nil, "Run only these case IDs (repeatable or comma separated; 'builtin' expands to the embedded suite)")
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter cases by ID or name pattern (supports wildcards, e.g., 'Pos_Fun_*' or '*greeting*')")
	runCmd.Flags().StringVarP(&flags.Driver, "driver", "d", "", "Browser driver: playwright or chromedp")
	runCmd.Flags().BoolVar(&flags.Headed, "headed", false, "Show the browser window")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failed case")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only cases that failed in the last run (from the results file)")
	runCmd.Flags().StringVar(&flags.Shard, "shard", "", "Run one shard of the cases, e.g. 2/3")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List translation cases",
		Long:    "Load and list translation cases without executing them",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: preRun,
	}
	listCmd.Flags().StringVarP(&flags.Source, "source", "s", "", "Case source: builtin, a YAML fixture, an .xlsx workbook or a directory of fixtures")
	listCmd.Flags().StringVar(&flags.Sheet, "sheet", "", "Workbook sheet holding the cases")
	listCmd.Flags().StringSliceVar(&flags.Only, "only", nil, "List only these case IDs")
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter cases by ID or name pattern (supports wildcards)")
	listCmd.Flags().BoolVar(&flags.Sources, "sources", false, "List fixture files instead of cases")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the MySQL results database and tables",
		Long:    "Create the results database named in TTP_DATABASE_DSN and apply pending schema migrations",
		Args:    cobra.NoArgs,
		RunE:    c.Migrate.Execute,
		PreRunE: preRun,
	}
	migrateCmd.Flags().BoolVar(&c.Migrate.fresh, "fresh", false, "Drop the results tables before migrating")
	rootCmd.AddCommand(migrateCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:     "faills",
		Short:   "View failed cases interactively",
		Long:    "Display failed and inconclusive cases from the last run in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.Faills.Execute,
		PreRunE: preRun,
	}
	rootCmd.AddCommand(faillsCmd)

	// Match command
	matchCmd := &cobra.Command{
		Use:     "match [--case ID] OBSERVED REFERENCE",
		Short:   "Check translator output against a reference offline",
		Long:    "Apply the fuzzy match rule (and the override registered for --case) without a browser",
		Args:    cobra.ExactArgs(2),
		RunE:    c.Match.Execute,
		PreRunE: preRun,
	}
	matchCmd.Flags().StringVar(&flags.CaseID, "case", "", "Case ID whose override should apply")
	rootCmd.AddCommand(matchCmd)

	// Install command
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the Playwright browser",
		Args:  cobra.NoArgs,
		RunE:  c.Install.Execute,
	}
	rootCmd.AddCommand(installCmd)
}
