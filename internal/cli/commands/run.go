package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ttp/internal/browser"
	"ttp/internal/cases"
	"ttp/internal/config"
	"ttp/internal/diagnostic"
	"ttp/internal/domain"
	"ttp/internal/execution"
	"ttp/internal/interaction"
	"ttp/internal/log"
	"ttp/internal/migration"
	"ttp/internal/oracle"
	"ttp/internal/storage"
	"ttp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *cases.Filter
	scheduler *execution.RoundRobinScheduler
	extractor diagnostic.Extractor
	storage   storage.Storage
	dbManager *migration.DatabaseManager
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *cases.Filter,
	scheduler *execution.RoundRobinScheduler,
	extractor diagnostic.Extractor,
	st storage.Storage,
	dbManager *migration.DatabaseManager,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		scheduler: scheduler,
		extractor: extractor,
		storage:   st,
		dbManager: dbManager,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := log.DefaultLogger

	// Load cases
	all, err := cases.Load(rc.config, logger)
	if err != nil {
		return err
	}
	list, err := rc.selectCases(all)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}

	// Pick result sinks before spending time in the browser
	sink, closeSink, err := rc.sink(ctx)
	if err != nil {
		return err
	}
	defer closeSink()

	// Launch browser
	driver, err := browser.Launch(ctx, rc.config.Driver, browser.Options{
		Headless:          rc.config.Headless,
		Width:             rc.config.Width,
		Height:            rc.config.Height,
		ActionTimeout:     rc.config.ActionTimeout,
		NavigationTimeout: rc.config.NavigationTimeout,
	})
	if err != nil {
		return fmt.Errorf("launch %s: %w", rc.config.Driver, err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			logger.Error(err, "close browser")
		}
	}()
	logger.V(1).Info("browser launched", "driver", rc.config.Driver, "headless", rc.config.Headless)

	orc := oracle.New()
	orc.PrefixLength = rc.config.PrefixLength
	opener := interaction.NewOpener(driver, interaction.OptionsFromConfig(rc.config), logger)
	runner := execution.NewRunner(opener, orc, logger)
	executor := execution.NewSerialExecutor(runner, rc.config.Flags.FailFast, logger)

	// Create and set progress bar
	executor.SetProgress(ui.NewProgressBar(len(list)))

	// Execute cases
	results, duration, runErr := executor.Execute(ctx, list)
	if len(results) == 0 {
		return runErr
	}

	failures := rc.extractor.ExtractAll(results)
	output, err := storage.BuildOutput(results, failures, duration, storage.RunInfo{
		Source: rc.config.Source,
		Driver: rc.config.Driver,
	})
	if err != nil {
		return fmt.Errorf("failed to build results: %w", err)
	}

	// Save results
	if err := sink.Save(output); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	// Print stats
	rc.formatter.PrintMetaStats(output)

	if rc.config.Flags.OpenFaills && len(output.Details) > 0 {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}
	return execution.Summarize(results).Err()
}

// selectCases narrows loaded cases by --failed, --filter and --shard, in that order
func (rc *RunCommand) selectCases(list []domain.TestCase) ([]domain.TestCase, error) {
	if rc.config.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				color.Yellow("No previous run found")
				return nil, nil
			}
			return nil, err
		}
		ids := storage.FailedIDs(last)
		if len(ids) == 0 {
			color.Green("✓ No failed cases in the last run")
			return nil, nil
		}
		list, _ = cases.Select(list, ids)
	}

	list = rc.filter.FilterByPattern(list, rc.config.Flags.Filter)

	if rc.config.Flags.Shard != "" {
		index, total, err := execution.ParseShard(rc.config.Flags.Shard)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cases.ErrConfiguration, err)
		}
		list, err = rc.scheduler.Shard(list, index, total)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cases.ErrConfiguration, err)
		}
	}
	return list, nil
}

// sink returns the JSON storage, fanned out to MySQL when a DSN is configured
func (rc *RunCommand) sink(ctx context.Context) (storage.Storage, func(), error) {
	if rc.dbManager == nil || !rc.dbManager.Enabled() {
		return rc.storage, func() {}, nil
	}
	db, err := rc.dbManager.Open(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open results database: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.DefaultLogger.Error(err, "close results database")
		}
	}
	return storage.Multi{rc.storage, storage.NewMySQLStorage(db)}, closeDB, nil
}
