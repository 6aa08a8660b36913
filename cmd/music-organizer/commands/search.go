package commands

import (
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"music-organizer/internal/shared"
)

// NewSearchCommand creates the local library search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query> [path]",
		Short: "Find songs in the library by file, artist or album name.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSearchCommand,
	}

	cmd.Flags().Bool("fuzzy", false, "Also match names that are close to the query (typos)")

	return cmd
}

func runSearchCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}
	query := args[0]
	root := cfg.DefaultScanPath
	if len(args) == 2 {
		root = args[1]
	}
	fuzzy, _ := cmd.Flags().GetBool("fuzzy")

	hits, err := container.Library.Search(root, query, fuzzy)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		container.Logger.Warning("No results for %q in %s.", query, root)
		return nil
	}

	shared.ColorInfo.Printf("🔍 %s for %q\n", shared.Pluralize(len(hits), "result"), query)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Artist", "Album", "File", "Size"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, rec := range hits {
		table.Append([]string{
			shared.TruncateString(rec.Artist, 30),
			shared.TruncateString(rec.Album, 30),
			shared.TruncateString(filepath.Base(rec.Filename), 50),
			shared.FormatBytes(rec.Size),
		})
	}
	table.Render()
	return nil
}
