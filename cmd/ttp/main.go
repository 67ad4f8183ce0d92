package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ttp/internal/cases"
	"ttp/internal/cli"
	"ttp/internal/cli/commands"
	"ttp/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "ttp",
		Short:         "Translator test processor",
		Long:          `End-to-end test runner for a live Singlish to Sinhala web translator. Drives the page in a real browser and judges noisy output with a fuzzy match oracle.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create config from defaults, .env and TTP_* variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Cancellation stops the run between cases
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cases.ErrConfiguration) {
			return 2
		}
		return 1
	}
	return 0
}
