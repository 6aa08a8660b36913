package commands

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"music-organizer/internal/shared"
)

// NewExportCommand creates the artist export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Move selected artists out of the library into another folder.",
		Long: `Moves every file of the chosen artists from --source to
<dest>/<Artist>/<Album>/<file>, with the same duplicate and collision handling
as organize. Artists are given with --artist (repeatable), with --select as numbers
of the alphabetical artist list ("1-3,5" or "all"), or picked from a list.`,
		Args: cobra.NoArgs,
		RunE: runExportCommand,
	}

	cmd.Flags().String("source", "", "Library to export from (default from config default_scan_path)")
	cmd.Flags().String("dest", "", "Destination folder (default from config default_export_path)")
	cmd.Flags().StringSlice("artist", nil, "Artist to export, may be repeated (interactive selection when omitted)")
	cmd.Flags().String("select", "", `Artist numbers from the alphabetical list, e.g. "1-3,5" or "all"`)
	cmd.Flags().Bool("dry-run", false, "Show what would happen without touching any file")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func runExportCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}

	source := stringFlagOr(cmd, "source", cfg.DefaultScanPath)
	dest, err := requirePath(stringFlagOr(cmd, "dest", cfg.DefaultExportPath), "Export folder")
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	artists, _ := cmd.Flags().GetStringSlice("artist")
	selection, _ := cmd.Flags().GetString("select")
	if len(artists) == 0 {
		available, err := container.Library.Artists(source)
		if err != nil {
			return err
		}
		if len(available) == 0 {
			container.Logger.Warning("No audio files in %s.", source)
			return nil
		}
		if selection != "" {
			artists, err = pickArtists(available, selection)
		} else {
			artists, err = selectArtists(available)
		}
		if err != nil {
			return handleCancelled(container, err)
		}
	}
	if len(artists) == 0 {
		container.Logger.Warning("%v", shared.ErrNoArtistsSelected)
		return nil
	}

	if !dryRun && !confirm(cmd, fmt.Sprintf("Move %s to %s?", strings.Join(artists, ", "), dest)) {
		return handleCancelled(container, shared.ErrOperationCancelled)
	}

	ctx, stop := signalContext()
	defer stop()

	result, err := container.Organizer.Export(ctx, source, dest, artists, dryRun)
	if result != nil {
		printOrganizeSummary("Export", result)
		reportFileErrors(cfg, container, shared.MoveFailureWarning, result.Errors)
	}
	if err != nil {
		return handleCancelled(container, err)
	}
	printWarnings(cfg, container)
	return nil
}

// selectArtists shows a multi-select list of the library's artists. Without a
// terminal it falls back to a numbered list read from stdin.
func selectArtists(available []string) ([]string, error) {
	if !shared.IsTTY() {
		for i, artist := range available {
			fmt.Printf("%3d. %s\n", i+1, artist)
		}
		return pickArtists(available, shared.GetUserInput("Artists to export (e.g. 1-3,5 or all)", ""))
	}
	var selected []string
	prompt := &survey.MultiSelect{
		Message:  "Select artists to export:",
		Options:  available,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		// This can happen if the user presses Ctrl+C
		return nil, shared.ErrOperationCancelled
	}
	return selected, nil
}

// pickArtists resolves a selection such as "1-3, 5" or "all" against the numbered list.
func pickArtists(available []string, selection string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(selection)) {
	case "":
		return nil, nil
	case "all", "todas", "todos":
		return available, nil
	}
	numbers, err := shared.ParseSelectionInput(selection, len(available))
	if err != nil {
		return nil, err
	}
	picked := make([]string, 0, len(numbers))
	for _, n := range numbers {
		picked = append(picked, available[n-1])
	}
	return picked, nil
}
