package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"music-organizer/internal/shared"
)

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the library onto another folder or device.",
		Long: `Compares --source and --dest by relative path and shows what is missing on
each side. With --apply, missing files are copied to --dest and files that only
exist in --dest are deleted (unless --keep-extra). The source is never changed.`,
		Args: cobra.NoArgs,
		RunE: runSyncCommand,
	}

	cmd.Flags().String("source", "", "Library to mirror (default from config destination_dir)")
	cmd.Flags().String("dest", "", "Target folder or device (default from config default_export_path)")
	cmd.Flags().Bool("apply", false, "Copy and delete files; without it only the plan is shown")
	cmd.Flags().Bool("keep-extra", false, "Do not delete files that only exist in the destination")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().Bool("navidrome-scan", false, "Ask Navidrome to rescan the library afterwards")

	return cmd
}

func runSyncCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}

	source := stringFlagOr(cmd, "source", cfg.DestinationDir)
	dest, err := requirePath(stringFlagOr(cmd, "dest", cfg.DefaultExportPath), "Destination folder")
	if err != nil {
		return err
	}
	apply, _ := cmd.Flags().GetBool("apply")
	keepExtra, _ := cmd.Flags().GetBool("keep-extra")

	plan, err := container.Sync.Plan(source, dest)
	if err != nil {
		return err
	}
	printSyncPlan(plan, keepExtra)
	if plan.IsEmpty() {
		container.Logger.Success("Already in sync.")
		return nil
	}
	if !apply {
		container.Logger.Info("💡 Run again with --apply to make these changes.")
		return nil
	}

	prompt := fmt.Sprintf("Copy %d files to %s", len(plan.Added), plan.DestRoot)
	if !keepExtra && len(plan.Removed) > 0 {
		prompt += fmt.Sprintf(" and delete %d", len(plan.Removed))
	}
	if !confirm(cmd, prompt+"?") {
		return handleCancelled(container, shared.ErrOperationCancelled)
	}

	ctx, stop := signalContext()
	defer stop()

	result, err := container.Sync.Apply(ctx, plan, keepExtra)
	if result != nil {
		fmt.Printf("\n")
		shared.ColorInfo.Println("📊 Sync Summary:")
		shared.ColorSuccess.Printf("✅ Copied: %d\n", result.Copied)
		if result.Deleted > 0 {
			shared.ColorWarning.Printf("🗑️  Deleted: %d\n", result.Deleted)
		}
		if len(result.Errors) > 0 {
			shared.ColorError.Printf("❌ Failed: %d\n", len(result.Errors))
			shared.PrintErrorList(result.Errors, maxListedErrors)
		}
		reportFileErrors(cfg, container, shared.CopyFailureWarning, result.Errors)
	}
	if err != nil {
		return handleCancelled(container, err)
	}

	if result.Copied > 0 || result.Deleted > 0 {
		rescanLibraryServer(ctx, cmd, cfg, container)
	}
	printWarnings(cfg, container)
	return nil
}

func printSyncPlan(plan *shared.SyncPlan, keepExtra bool) {
	fmt.Printf("\n")
	shared.ColorInfo.Printf("📋 Sync plan %s → %s\n", plan.SourceRoot, plan.DestRoot)
	shared.ColorSuccess.Printf("   + %d to copy (%s)\n", len(plan.Added), shared.FormatBytes(plan.AddedBytes))
	if keepExtra {
		shared.ColorMuted.Printf("   = %d only in destination, kept (%s)\n", len(plan.Removed), shared.FormatBytes(plan.RemovedBytes))
	} else {
		shared.ColorWarning.Printf("   - %d to delete (%s)\n", len(plan.Removed), shared.FormatBytes(plan.RemovedBytes))
	}
	shared.ColorMuted.Printf("   = %d already present\n", len(plan.Common))
}
