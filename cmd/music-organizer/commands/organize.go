package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"music-organizer/internal/config"
	"music-organizer/internal/shared"
)

// NewOrganizeCommand creates the organize command
func NewOrganizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Move a music folder into Artist/Album layout, removing duplicate files.",
		Long: `Scans the source folder, removes byte-identical duplicates and moves every
remaining audio file to <dest>/<Artist>/<Album>/<file>. The artist and album
come from the folder structure, not from tags. Files that already exist at the
destination with the same content are merged; different files with the same
name get a " (N)" suffix.`,
		Args: cobra.NoArgs,
		RunE: runOrganizeCommand,
	}

	cmd.Flags().String("source", "", "Folder to organize (default from config source_dir)")
	cmd.Flags().String("dest", "", "Destination library (default from config destination_dir)")
	cmd.Flags().Bool("dry-run", false, "Show what would happen without touching any file")
	cmd.Flags().Int("workers", config.DefaultHashWorkers, "Number of files hashed in parallel")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().Bool("navidrome-scan", false, "Ask Navidrome to rescan the library afterwards")

	return cmd
}

func runOrganizeCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}

	source := stringFlagOr(cmd, "source", cfg.SourceDir)
	dest := stringFlagOr(cmd, "dest", cfg.DestinationDir)
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	preview, err := container.Library.Summarize(source)
	if err != nil {
		return err
	}
	container.Logger.Info("🎵 Found %s (%s) in %s", shared.Pluralize(preview.TotalTracks, "audio file"), shared.FormatBytes(preview.TotalBytes), source)
	if preview.TotalTracks == 0 {
		container.Logger.Warning("Nothing to organize.")
		return nil
	}

	if dryRun {
		container.Logger.Info("🔍 Dry run: nothing will be moved or deleted.")
	} else if !confirm(cmd, fmt.Sprintf("Organize into %s? Duplicates will be deleted.", dest)) {
		return handleCancelled(container, shared.ErrOperationCancelled)
	}

	ctx, stop := signalContext()
	defer stop()

	result, err := container.Organizer.Organize(ctx, source, dest, dryRun)
	if result != nil {
		printOrganizeSummary("Organize", result)
		reportFileErrors(cfg, container, shared.MoveFailureWarning, result.Errors)
	}
	if err != nil {
		return handleCancelled(container, err)
	}

	if !dryRun && result.Moved > 0 {
		rescanLibraryServer(ctx, cmd, cfg, container)
	}
	printWarnings(cfg, container)
	return nil
}

func printOrganizeSummary(title string, result *shared.OrganizeResult) {
	fmt.Printf("\n")
	if result.DryRun {
		shared.ColorInfo.Printf("📊 %s Summary (dry run):\n", title)
	} else {
		shared.ColorInfo.Printf("📊 %s Summary:\n", title)
	}
	shared.ColorInfo.Printf("🎵 Audio files found: %d\n", result.Total)
	if result.Moved > 0 {
		shared.ColorSuccess.Printf("✅ Placed in library: %d (%s)\n", result.Moved, shared.FormatBytes(result.BytesMoved))
	}
	if result.AlreadyMerged > 0 {
		shared.ColorSuccess.Printf("🔗 Already present, source removed: %d\n", result.AlreadyMerged)
	}
	if result.DuplicatesRemoved > 0 {
		shared.ColorWarning.Printf("🗑️  Duplicates removed: %d\n", result.DuplicatesRemoved)
	}
	if len(result.Errors) > 0 {
		shared.ColorError.Printf("❌ Failed: %d\n", len(result.Errors))
		shared.PrintErrorList(result.Errors, maxListedErrors)
	}

	switch result.Outcome() {
	case shared.OutcomeCompleteSuccess:
		shared.ColorSuccess.Printf("Result: %s\n", result.Outcome())
	case shared.OutcomePartial:
		shared.ColorWarning.Printf("Result: %s\n", result.Outcome())
	default:
		shared.ColorError.Printf("Result: %s\n", result.Outcome())
	}
	fmt.Printf("Run ID: %s\n", result.RunID)
}
