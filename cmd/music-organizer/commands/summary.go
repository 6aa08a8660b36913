package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"music-organizer/internal/shared"
)

// NewSummaryCommand creates the library summary command
func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [path]",
		Short: "Show artists, albums, tracks and sizes of a library.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummaryCommand,
	}
}

func runSummaryCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}
	root := cfg.DefaultScanPath
	if len(args) == 1 {
		root = args[0]
	}

	summary, err := container.Library.Summarize(root)
	if err != nil {
		return err
	}
	if summary.TotalTracks == 0 {
		container.Logger.Warning("No audio files in %s.", root)
		return nil
	}

	shared.ColorInfo.Printf("📚 Library %s\n", root)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Artist", "Albums", "Tracks", "Size"})
	table.SetRowLine(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range summary.Artists {
		table.Append([]string{
			shared.TruncateString(row.Artist, 40),
			strconv.Itoa(row.Albums),
			strconv.Itoa(row.Tracks),
			shared.FormatBytes(row.Bytes),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d artists", len(summary.Artists)),
		strconv.Itoa(summary.TotalAlbums),
		strconv.Itoa(summary.TotalTracks),
		shared.FormatBytes(summary.TotalBytes),
	})
	table.Render()
	return nil
}
