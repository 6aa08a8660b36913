package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"music-organizer/internal/services"
	"music-organizer/internal/shared"
)

// NewConfigCommand creates the config command with its subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file.",
	}
	cmd.AddCommand(newConfigShowCommand(), newConfigInitCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file, environment and defaults).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := initConfigAndServices(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(redacted(cfg), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")
			noColor, _ := cmd.Flags().GetBool("no-color")
			shared.InitializeColors(noColor)

			configService := services.NewConfigService()
			if shared.FileExists(configFile) && !force {
				shared.ColorWarning.Printf("⚠️ %s already exists, use --force to overwrite it.\n", configFile)
				return nil
			}
			if err := configService.SaveConfig(configFile, configService.GetDefaultConfig()); err != nil {
				return err
			}
			shared.ColorSuccess.Println("✅ Configuration saved to", configFile)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
