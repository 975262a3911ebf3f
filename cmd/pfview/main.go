package main

import (
	"fmt"
	"os"

	"github.com/pennos/pfview/internal/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Persistent logging flags
var (
	logFile string
	verbose bool
)

// addLoggingFlags registers the flags shared by every subcommand.
func addLoggingFlags(fs *pflag.FlagSet) {
	fs.StringVar(&logFile, "log-file", "",
		"Write logs to this file instead of stderr")
	fs.BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pfview",
		Short: "TUI PennFat viewer",
		Long: `pfview decodes PennFat filesystem images: the two-byte header,
the FAT region of 16-bit link entries, and the fixed-size data blocks
holding raw file bytes or packed directory records. The view command
opens a live terminal UI that polls the image for changes; inspect
dumps a one-shot summary.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Configure(logFile, verbose)
		},
		SilenceUsage: true,
	}

	addLoggingFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(createViewCommand())
	rootCmd.AddCommand(createInspectCommand())

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
