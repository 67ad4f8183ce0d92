package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"ttp/internal/config"
	"ttp/internal/oracle"
	"ttp/internal/textnorm"
	"ttp/internal/ui"
)

// ErrNoMatch is returned by match when the output is not acceptable
var ErrNoMatch = errors.New("no acceptable match")

// MatchCommand handles the match command
type MatchCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewMatchCommand creates a new MatchCommand
func NewMatchCommand(cfg *config.Config, formatter *ui.Formatter) *MatchCommand {
	return &MatchCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (mc *MatchCommand) Execute(cmd *cobra.Command, args []string) error {
	orc := oracle.New()
	orc.PrefixLength = mc.config.PrefixLength

	caseID := mc.config.Flags.CaseID
	verdict := orc.Match(caseID, textnorm.Normalize(args[0]), args[1])
	mc.formatter.PrintVerdict(caseID, verdict)
	if !verdict.Matched {
		return ErrNoMatch
	}
	return nil
}
