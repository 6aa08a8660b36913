package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultConfigFile  = "config.json"
	DefaultHashWorkers = 4
	ScanPollInterval   = time.Second
	ScanWaitTimeout    = 5 * time.Minute
)

// Configuration structure
type Config struct {
	SourceDir         string `json:"source_dir" envconfig:"SOURCE_DIR"`
	DestinationDir    string `json:"destination_dir" envconfig:"DESTINATION_DIR"`
	DefaultScanPath   string `json:"default_scan_path" envconfig:"DEFAULT_SCAN_PATH"`
	DefaultExportPath string `json:"default_export_path" envconfig:"DEFAULT_EXPORT_PATH"`
	HashWorkers       int    `json:"hash_workers" envconfig:"HASH_WORKERS"`
	WarningBehavior   string `json:"warning_behavior" envconfig:"WARNING_BEHAVIOR"` // "immediate", "summary", or "silent"

	NavidromeURL               string `json:"navidrome_url" envconfig:"NAVIDROME_URL"`
	NavidromeUsername          string `json:"navidrome_username" envconfig:"NAVIDROME_USERNAME"`
	NavidromePassword          string `json:"navidrome_password" envconfig:"NAVIDROME_PASSWORD"`
	NavidromeScanAfterOrganize bool   `json:"navidrome_scan_after_organize" envconfig:"NAVIDROME_SCAN_AFTER_ORGANIZE"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		SourceDir:       "./musicas",
		DestinationDir:  "./final",
		DefaultScanPath: "./final",
		HashWorkers:     DefaultHashWorkers,
		WarningBehavior: "summary",
	}
}

// ApplyDefaults fills empty fields from Default
func (cfg *Config) ApplyDefaults() {
	defaults := Default()

	if cfg.SourceDir == "" {
		cfg.SourceDir = defaults.SourceDir
	}
	if cfg.DestinationDir == "" {
		cfg.DestinationDir = defaults.DestinationDir
	}
	if cfg.DefaultScanPath == "" {
		cfg.DefaultScanPath = defaults.DefaultScanPath
	}
	if cfg.HashWorkers <= 0 {
		cfg.HashWorkers = defaults.HashWorkers
	}
	if cfg.WarningBehavior == "" {
		cfg.WarningBehavior = defaults.WarningBehavior
	}
}

// NavidromeConfigured reports whether all three server settings are present
func (cfg *Config) NavidromeConfigured() bool {
	return cfg.NavidromeURL != "" && cfg.NavidromeUsername != "" && cfg.NavidromePassword != ""
}

// CreateDirIfNotExists creates a directory if it does not exist
func CreateDirIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(filePath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := CreateDirIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
