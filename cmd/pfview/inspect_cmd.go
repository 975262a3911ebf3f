package main

import (
	"encoding/json"
	"fmt"

	"github.com/pennos/pfview/internal/inspect"
	"github.com/pennos/pfview/internal/utils/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cmd needs only this one method.
type inspector interface {
	Inspect(imagePath string) (*inspect.ImageSummary, error)
}

// Allow tests to inject a fake inspector.
var newInspector = func(hash bool) inspector {
	return inspect.NewInspector(hash)
}

// Output format command flags
var (
	outputFormat string = "text" // Output format for the inspection results
	prettyJSON   bool   = false  // Pretty-print JSON output
	hashImage    bool   = false  // Include SHA-256 of the image file
)

// createInspectCommand creates the inspect subcommand
func createInspectCommand() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect [flags] IMAGE_FILE",
		Short: "prints a one-shot summary of a PennFat image",
		Long: `Inspect decodes the image header, derives the filesystem
		geometry, and dumps the occupied FAT entries without starting
		the interactive viewer. Gzip, zstd, and xz compressed images
		are unwrapped transparently.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "text", "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported --format %q (supported: text, json, yaml)", outputFormat)
			}
		},
		RunE: executeInspect,
	}

	// Add flags
	inspectCmd.Flags().StringVar(&outputFormat, "format", "text",
		"Specify the output format for the inspection results")

	inspectCmd.Flags().BoolVar(&prettyJSON, "pretty", false,
		"Pretty-print JSON output (only for --format json)")

	inspectCmd.Flags().BoolVar(&hashImage, "hash", false,
		"Include the SHA-256 of the image file in the summary")

	return inspectCmd
}

// executeInspect handles the inspect command execution logic
func executeInspect(cmd *cobra.Command, args []string) error {
	log := logger.Logger()
	imageFile := args[0]
	log.Infof("Inspecting image file: %s", imageFile)

	summary, err := newInspector(hashImage).Inspect(imageFile)
	if err != nil {
		return fmt.Errorf("image inspection failed: %w", err)
	}

	return writeInspectionResult(cmd, summary, outputFormat, prettyJSON)
}

func writeInspectionResult(cmd *cobra.Command, summary *inspect.ImageSummary, format string, pretty bool) error {
	out := cmd.OutOrStdout()

	switch format {
	case "text":
		inspect.PrintSummary(out, summary)
		return nil

	case "json":
		var (
			b   []byte
			err error
		)
		if pretty {
			b, err = json.MarshalIndent(summary, "", "  ")
		} else {
			b, err = json.Marshal(summary)
		}
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil

	case "yaml":
		b, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
