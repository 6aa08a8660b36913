package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{DestinationDir: "/srv/music", HashWorkers: -1}
	cfg.ApplyDefaults()

	if cfg.SourceDir != "./musicas" {
		t.Errorf("SourceDir = %q", cfg.SourceDir)
	}
	if cfg.DestinationDir != "/srv/music" {
		t.Errorf("explicit DestinationDir was overwritten: %q", cfg.DestinationDir)
	}
	if cfg.HashWorkers != DefaultHashWorkers {
		t.Errorf("HashWorkers = %d", cfg.HashWorkers)
	}
	if cfg.WarningBehavior != "summary" {
		t.Errorf("WarningBehavior = %q", cfg.WarningBehavior)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := Default()
	want.NavidromeURL = "http://localhost:4533"

	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got := &Config{}
	if err := LoadConfig(path, got); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if err := LoadConfig(filepath.Join(dir, "missing.json"), &Config{}); err == nil {
		t.Error("expected an error for a missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadConfig(bad, &Config{}); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MUSIC_SOURCE_DIR", "/from/env")
	t.Setenv("MUSIC_HASH_WORKERS", "9")

	dotenv := filepath.Join(t.TempDir(), ".env")
	content := "MUSIC_SOURCE_DIR=/from/dotenv\nMUSIC_NAVIDROME_URL=http://nd:4533\n"
	if err := os.WriteFile(dotenv, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MUSIC_NAVIDROME_URL") })

	cfg := &Config{SourceDir: "/from/file", DestinationDir: "/dest/from/file"}
	if err := ApplyEnv(cfg, dotenv); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.SourceDir != "/from/env" {
		t.Errorf("process environment should win over .env, got %q", cfg.SourceDir)
	}
	if cfg.HashWorkers != 9 {
		t.Errorf("HashWorkers = %d", cfg.HashWorkers)
	}
	if cfg.NavidromeURL != "http://nd:4533" {
		t.Errorf(".env value not applied: %q", cfg.NavidromeURL)
	}
	if cfg.DestinationDir != "/dest/from/file" {
		t.Errorf("unset variable must not clear the file value, got %q", cfg.DestinationDir)
	}
}

func TestApplyEnvMissingDotenv(t *testing.T) {
	cfg := Default()
	if err := ApplyEnv(cfg, filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("a missing .env is not an error: %v", err)
	}
}
