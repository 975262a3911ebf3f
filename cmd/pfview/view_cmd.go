package main

import (
	"fmt"
	"time"

	"github.com/pennos/pfview/internal/config"
	"github.com/pennos/pfview/internal/pennfat"
	"github.com/pennos/pfview/internal/utils/logger"
	"github.com/spf13/cobra"
)

var refreshInterval time.Duration

// createViewCommand creates the view subcommand
func createViewCommand() *cobra.Command {
	viewCmd := &cobra.Command{
		Use:   "view [flags] IMAGE_FILE",
		Short: "interactive FAT table and block viewer",
		Long: `View opens a live terminal UI on the image: the occupied FAT
		entries on the left, the selected block on the right (raw bytes
		or decoded directory records), geometry in the overview bar.
		The image is polled for changes and the screen redrawn, so a
		filesystem being mutated by another process can be watched
		live.`,
		Args: cobra.ExactArgs(1),
		RunE: executeView,
	}

	viewCmd.Flags().DurationVar(&refreshInterval, "refresh", config.DefaultRefreshInterval,
		"How often to poll the image for changes")

	return viewCmd
}

// executeView handles the view command execution logic
func executeView(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultViewer()
	cfg.RefreshInterval = refreshInterval
	cfg.LogFile = logFile
	cfg.Verbose = verbose
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal; without a log file there is nowhere
	// safe to write.
	if cfg.LogFile == "" {
		logger.Discard()
	}

	session, err := pennfat.Load(args[0])
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	return newViewer(session, cfg).Run()
}
