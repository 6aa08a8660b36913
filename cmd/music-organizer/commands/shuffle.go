package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"music-organizer/internal/shared"
)

// NewShuffleCommand creates the in-place shuffle command
func NewShuffleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shuffle <folder>",
		Short: "Rename the songs of a flat folder to a random numbered order.",
		Long: `Renames every audio file directly inside <folder> to "NN. name.ext" in a
random order, so players that sort by name play them shuffled. Existing track
numbers are dropped from the names. Only renames are done, nothing is copied.
Subfolders are ignored; use shuffle-export for a nested library.`,
		Args: cobra.ExactArgs(1),
		RunE: runShuffleCommand,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().Int64("seed", 0, "Random seed, for a reproducible order (0 picks one)")

	return cmd
}

func runShuffleCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}
	folder := args[0]
	seed, _ := cmd.Flags().GetInt64("seed")

	if !shared.DirExists(folder) {
		return fmt.Errorf("%w: %s", shared.ErrSourceNotFound, folder)
	}
	if !confirm(cmd, fmt.Sprintf("Shuffle the songs in %s? Files will be renamed.", folder)) {
		return handleCancelled(container, shared.ErrOperationCancelled)
	}

	ctx, stop := signalContext()
	defer stop()

	result, err := container.Shuffle.InPlace(ctx, folder, shared.ShuffleOptions{Seed: seed})
	if errors.Is(err, shared.ErrNotFlatFolder) {
		container.Logger.Warning("%s has no songs at the top level, only inside subfolders.", folder)
		container.Logger.Info("💡 Use 'music-organizer shuffle-export --source %s --dest <folder>' to gather them into one shuffled folder.", folder)
		return nil
	}
	if err != nil && result == nil {
		return handleCancelled(container, err)
	}

	printShuffleSummary("Shuffle", result)
	reportFileErrors(cfg, container, shared.RollbackWarning, result.Errors)
	if err != nil {
		return handleCancelled(container, err)
	}
	printWarnings(cfg, container)
	return nil
}

func printShuffleSummary(title string, result *shared.ShuffleResult) {
	fmt.Printf("\n")
	shared.ColorInfo.Printf("📊 %s Summary:\n", title)
	if result.OK == 0 && len(result.Errors) == 0 {
		shared.ColorWarning.Println("No audio files found.")
		return
	}
	for i, pair := range result.Renamed {
		if i == 5 {
			shared.ColorMuted.Printf("   ... +%d more\n", len(result.Renamed)-5)
			break
		}
		shared.ColorMuted.Printf("   %s ← %s\n", pair.To, filepath.Base(pair.From))
	}
	shared.ColorSuccess.Printf("✅ Done: %d\n", result.OK)
	if result.RolledBack > 0 {
		shared.ColorWarning.Printf("↩️  Restored after a failed rename: %d\n", result.RolledBack)
	}
	if len(result.Errors) > 0 {
		shared.ColorError.Printf("❌ Failed: %d\n", len(result.Errors))
	}
}
