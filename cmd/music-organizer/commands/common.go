package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"music-organizer/internal/config"
	"music-organizer/internal/services"
	"music-organizer/internal/shared"
)

const maxListedErrors = 10

// initConfigAndServices loads the configuration (defaults, file, environment, then the
// command's own flags) and wires the service container.
func initConfigAndServices(cmd *cobra.Command) (*config.Config, *services.ServiceContainer, error) {
	configFile, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")
	shared.InitializeColors(noColor)

	configService := services.NewConfigService()
	if !shared.FileExists(configFile) {
		if err := firstRunSetup(configService, configFile); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := configService.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config from %s: %w", configFile, err)
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, nil, err
	}
	if err := configService.ValidateConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	container := services.NewServiceContainer(cfg, &http.Client{Timeout: 30 * time.Second})
	container.Logger.SetDebugMode(debug || shared.IsDebugMode())
	container.Logger.Debug("config: %+v", redacted(cfg))
	return cfg, container, nil
}

func firstRunSetup(configService *services.ConfigService, configFile string) error {
	cfg := configService.GetDefaultConfig()
	if shared.IsTTY() {
		shared.ColorInfo.Println("✨ Welcome to Music Organizer! Let's set up your configuration.")
		cfg.SourceDir = shared.GetUserInput("Folder with the music to organize", cfg.SourceDir)
		cfg.DestinationDir = shared.GetUserInput("Folder for the organized library", cfg.DestinationDir)
		cfg.DefaultScanPath = cfg.DestinationDir
	}
	if err := configService.SaveConfig(configFile, cfg); err != nil {
		return fmt.Errorf("failed to save initial config: %w", err)
	}
	shared.ColorSuccess.Println("✅ Configuration saved to", configFile)
	return nil
}

// applyFlagOverrides copies the command's explicitly set flags onto cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if changed(cmd, "workers") {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return err
		}
		cfg.HashWorkers = workers
	}
	return nil
}

func changed(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name)
}

// stringFlagOr returns the flag value when it was set, fallback otherwise.
func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if changed(cmd, name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

// requirePath asks for a path that has no configured default.
func requirePath(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !shared.IsTTY() {
		return "", fmt.Errorf("%s is required", strings.ToLower(prompt))
	}
	value = shared.GetUserInput(prompt, "")
	if value == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(prompt))
	}
	return value, nil
}

// confirm returns true without asking when --yes was given.
func confirm(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	return shared.GetYesNoInput(prompt, "n")
}

// signalContext is cancelled on Ctrl+C so a batch stops between files.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// reportFileErrors feeds per-file errors to the warning collector and, in immediate
// mode, prints them right away.
func reportFileErrors(cfg *config.Config, container *services.ServiceContainer, warningType shared.WarningType, errs []shared.FileError) {
	if len(errs) == 0 {
		return
	}
	container.WarningCollector.AddFileErrors(warningType, errs)
	if cfg.WarningBehavior == "immediate" {
		shared.PrintErrorList(errs, maxListedErrors)
	}
}

func printWarnings(cfg *config.Config, container *services.ServiceContainer) {
	if cfg.WarningBehavior == "summary" && container.WarningCollector.HasWarnings() {
		container.WarningCollector.PrintSummary()
	}
}

// handleCancelled turns a declined prompt or an interrupt into a friendly message.
func handleCancelled(container *services.ServiceContainer, err error) error {
	if errors.Is(err, shared.ErrOperationCancelled) || errors.Is(err, context.Canceled) {
		container.Logger.Warning("Operation cancelled.")
		return nil
	}
	return err
}

// rescanLibraryServer asks Navidrome to index the library. Failures only warn.
func rescanLibraryServer(ctx context.Context, cmd *cobra.Command, cfg *config.Config, container *services.ServiceContainer) {
	requested, _ := cmd.Flags().GetBool("navidrome-scan")
	if !requested && !cfg.NavidromeScanAfterOrganize {
		return
	}
	server := container.LibraryServer
	if !server.Enabled() {
		container.Logger.Warning("Navidrome rescan requested but navidrome_url, navidrome_username or navidrome_password is missing.")
		return
	}

	container.Logger.Info("🔄 Asking Navidrome to rescan %s...", cfg.NavidromeURL)
	if err := server.TriggerScan(ctx); err != nil {
		container.WarningCollector.AddLibraryServerWarning(cfg.NavidromeURL, err.Error())
		container.Logger.Warning("Navidrome rescan failed: %v", err)
		return
	}
	count, err := server.WaitForScan(ctx)
	if err != nil {
		container.WarningCollector.AddLibraryServerWarning(cfg.NavidromeURL, err.Error())
		container.Logger.Warning("Navidrome scan did not finish: %v", err)
		return
	}
	container.Logger.Success("Navidrome scan finished, %d files indexed.", count)
}

func redacted(cfg *config.Config) config.Config {
	c := *cfg
	if c.NavidromePassword != "" {
		c.NavidromePassword = "********"
	}
	return c
}
