package inspect

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pennos/pfview/internal/utils/logger"
)

// PrintSummary prints a human-readable summary of the image to the
// given writer.
func PrintSummary(w io.Writer, summary *ImageSummary) {
	if summary == nil {
		logger.Logger().Errorf("PrintSummary: summary is nil")
		return
	}

	// Header
	fmt.Fprintln(w, "PennFat Image Summary")
	fmt.Fprintln(w, "=====================")
	fmt.Fprintf(w, "Image:\t%s\n", summary.File)
	fmt.Fprintf(w, "Size:\t%s (%d bytes)\n", humanBytes(summary.SizeBytes), summary.SizeBytes)
	if summary.Format != "" && summary.Format != "raw" {
		fmt.Fprintf(w, "Compression:\t%s\n", summary.Format)
	}
	if summary.SHA256 != "" {
		fmt.Fprintf(w, "SHA256:\t%s\n", summary.SHA256)
	}
	if summary.LastModified != "" {
		fmt.Fprintf(w, "Last modified:\t%s\n", summary.LastModified)
	}

	// Geometry section
	g := summary.Geometry
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Geometry")
	fmt.Fprintln(w, "--------")
	fmt.Fprintf(w, "Block size:\t%d bytes\n", g.BlockSize)
	fmt.Fprintf(w, "FAT blocks:\t%d\n", g.NumFATBlocks)
	fmt.Fprintf(w, "FAT size:\t%s (%d entries)\n", humanBytes(int64(g.FATSizeBytes)), g.NumFATEntries)
	fmt.Fprintf(w, "Data blocks:\t%d\n", g.DataBlockCount)
	fmt.Fprintf(w, "Data size:\t%s\n", humanBytes(g.DataSizeBytes))

	// FAT table
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FAT Table")
	fmt.Fprintln(w, "---------")
	fmt.Fprintf(w, "Occupied:\t%d\tFree:\t%d\tChains:\t%d\n", summary.FAT.Occupied, summary.FAT.Free, summary.FAT.Chains)

	if len(summary.Entries) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BLOCK\tNEXT\tSTATE")
	for _, e := range summary.Entries {
		state := "link"
		switch {
		case e.Block == 0:
			state = "header"
		case e.EndOfChain:
			state = "end-of-chain"
		}
		fmt.Fprintf(tw, "%04x\t%04x\t%s\n", e.Block, e.Next, state)
	}
	_ = tw.Flush()
}

func humanBytes(n int64) string {
	if n < 0 {
		return fmt.Sprintf("%d B", n)
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
