package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/anuvad/internal/cli"
	"codeberg.org/snonux/anuvad/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create processor
	proc, err := processor.NewProcessor(ctx, flags)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Handle --list-models flag
	if flags.ListModels {
		return proc.ListModels(ctx)
	}

	if len(args) > 0 {
		// Translate the argument
		return proc.TranslateText(ctx, args[0])
	}

	// No input provided - launch GUI mode by default
	return proc.RunGUIMode()
}
