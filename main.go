package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"music-organizer/cmd/music-organizer/commands"
	"music-organizer/internal/config"
)

const toolVersion = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "music-organizer",
	Version: toolVersion,
	Short:   "Organize, deduplicate, shuffle and sync a local music library.",
	Long: fmt.Sprintf(`Music Organizer (v%s)

Keeps a folder-based music library tidy. It allows you to:
- Move loose downloads into Artist/Album folders, deleting byte-identical duplicates.
- Shuffle a folder by renaming its songs to a random numbered order.
- Export a whole library, or selected artists, to another folder or device.
- Mirror the library onto a pendrive and trigger a Navidrome rescan.

Artist and album come from the folder structure; tags are never read or written.`, toolVersion),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(commands.NewOrganizeCommand())
	rootCmd.AddCommand(commands.NewShuffleCommand())
	rootCmd.AddCommand(commands.NewShuffleExportCommand())
	rootCmd.AddCommand(commands.NewSyncCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewVerifyCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
