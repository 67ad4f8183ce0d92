package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ttp/internal/cases"
	"ttp/internal/config"
	"ttp/internal/log"
	"ttp/internal/storage"
	"ttp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *cases.Scanner
	filter    *cases.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *cases.Scanner,
	filter *cases.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	if lc.config.Flags.Sources {
		files, err := lc.scanner.Scan(lc.config.ProjectPath)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			color.Yellow("No fixture files found")
			return nil
		}
		lc.formatter.PrintSources(files)
		return nil
	}

	list, err := cases.Load(lc.config, log.DefaultLogger)
	if err != nil {
		return err
	}
	list = lc.filter.FilterByPattern(list, lc.config.Flags.Filter)

	if len(list) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	lc.formatter.PrintCaseList(list, lc.lastFailed())
	return nil
}

// lastFailed returns the IDs that failed in the last run; none when there is no run
func (lc *ListCommand) lastFailed() map[string]struct{} {
	failed := make(map[string]struct{})
	last, err := lc.storage.Load()
	if err != nil {
		return failed
	}
	for _, id := range storage.FailedIDs(last) {
		failed[id] = struct{}{}
	}
	return failed
}
