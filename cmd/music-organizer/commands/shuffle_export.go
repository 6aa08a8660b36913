package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"music-organizer/internal/shared"
)

// NewShuffleExportCommand creates the shuffle-export command
func NewShuffleExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shuffle-export",
		Short: "Gather a whole library into one flat folder in random order.",
		Long: `Copies every audio file under --source into --dest as
"NNN. Artist - Title.ext" in a random order, for car stereos and other players
that cannot shuffle by themselves. With --move the files are moved instead.`,
		Args: cobra.NoArgs,
		RunE: runShuffleExportCommand,
	}

	cmd.Flags().String("source", "", "Library to export (default from config default_scan_path)")
	cmd.Flags().String("dest", "", "Flat output folder (default from config default_export_path)")
	cmd.Flags().Bool("move", false, "Move files instead of copying them")
	cmd.Flags().Int64("seed", 0, "Random seed, for a reproducible order (0 picks one)")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func runShuffleExportCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}

	source := stringFlagOr(cmd, "source", cfg.DefaultScanPath)
	dest, err := requirePath(stringFlagOr(cmd, "dest", cfg.DefaultExportPath), "Output folder")
	if err != nil {
		return err
	}
	move, _ := cmd.Flags().GetBool("move")
	seed, _ := cmd.Flags().GetInt64("seed")

	preview, err := container.Library.Summarize(source)
	if err != nil {
		return err
	}
	verb := "Copy"
	if move {
		verb = "Move"
	}
	prompt := fmt.Sprintf("%s %s (%s) into %s in random order?", verb, shared.Pluralize(preview.TotalTracks, "song"), shared.FormatBytes(preview.TotalBytes), dest)
	if !confirm(cmd, prompt) {
		return handleCancelled(container, shared.ErrOperationCancelled)
	}

	ctx, stop := signalContext()
	defer stop()

	result, err := container.Shuffle.Export(ctx, source, dest, shared.ShuffleOptions{Seed: seed, Move: move})
	if result != nil {
		printShuffleSummary("Shuffle Export", result)
		reportFileErrors(cfg, container, shared.CopyFailureWarning, result.Errors)
	}
	if err != nil {
		return handleCancelled(container, err)
	}
	printWarnings(cfg, container)
	return nil
}
