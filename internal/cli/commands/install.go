package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ttp/internal/browser"
)

// InstallCommand handles the install command
type InstallCommand struct{}

// NewInstallCommand creates a new InstallCommand
func NewInstallCommand() *InstallCommand {
	return &InstallCommand{}
}

// Execute runs the command
func (ic *InstallCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := browser.Install(); err != nil {
		return fmt.Errorf("install browser: %w", err)
	}
	color.Green("✓ Browser installed")
	return nil
}
