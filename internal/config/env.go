package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the environment overrides, e.g. MUSIC_SOURCE_DIR.
const EnvPrefix = "MUSIC"

// ApplyEnv loads dotenvFile when it exists (variables already set win) and then
// overlays every MUSIC_* variable onto cfg. Unset variables leave cfg untouched.
func ApplyEnv(cfg *Config, dotenvFile string) error {
	if dotenvFile != "" {
		if _, err := os.Stat(dotenvFile); err == nil {
			if err := godotenv.Load(dotenvFile); err != nil {
				return fmt.Errorf("failed to load %s: %w", dotenvFile, err)
			}
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to read %s_* environment: %w", EnvPrefix, err)
	}
	return nil
}
