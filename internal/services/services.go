package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"music-organizer/internal/api/navidrome"
	"music-organizer/internal/config"
	"music-organizer/internal/core/organizer"
	"music-organizer/internal/core/shuffle"
	"music-organizer/internal/core/syncer"
	"music-organizer/internal/interfaces"
	"music-organizer/internal/library"
	"music-organizer/internal/shared"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Config           interfaces.ConfigService
	Organizer        interfaces.OrganizerService
	Shuffle          interfaces.ShuffleService
	Sync             interfaces.SyncService
	Library          interfaces.LibraryService
	LibraryServer    interfaces.LibraryServerService
	Logger           interfaces.LoggerService
	WarningCollector interfaces.WarningCollectorService
}

// NewServiceContainer creates a new service container with all services initialized
func NewServiceContainer(cfg *config.Config, httpClient *http.Client) *ServiceContainer {
	// Create logger first as other services may need it
	logger := NewConsoleLogger()

	warningCollector := shared.NewWarningCollector(cfg.WarningBehavior != "silent")

	organizerService := organizer.New(logger, organizer.Options{
		HashWorkers: cfg.HashWorkers,
		Progress:    true,
	})

	navidromeClient := navidrome.NewNavidromeClient(cfg.NavidromeURL, cfg.NavidromeUsername, cfg.NavidromePassword, httpClient)

	return &ServiceContainer{
		Config:           NewConfigService(),
		Organizer:        organizerService,
		Shuffle:          NewShuffleService(shuffle.New(logger, true)),
		Sync:             NewSyncService(syncer.New(logger)),
		Library:          NewLibraryService(),
		LibraryServer:    NewNavidromeServiceWrapper(navidromeClient),
		Logger:           logger,
		WarningCollector: warningCollector,
	}
}

// ConfigService implementation
type ConfigService struct {
	// DotenvFile is read before the MUSIC_* overlay when it exists
	DotenvFile string
}

func NewConfigService() *ConfigService {
	return &ConfigService{DotenvFile: ".env"}
}

// LoadConfig reads configFile, overlays the environment and fills remaining defaults
func (cs *ConfigService) LoadConfig(configFile string) (*config.Config, error) {
	cfg := &config.Config{}
	if err := config.LoadConfig(configFile, cfg); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, cs.DotenvFile); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func (cs *ConfigService) SaveConfig(configFile string, cfg *config.Config) error {
	return config.SaveConfig(configFile, cfg)
}

func (cs *ConfigService) ValidateConfig(cfg *config.Config) error {
	if cfg.SourceDir == "" {
		return fmt.Errorf("source directory is required")
	}
	if cfg.DestinationDir == "" {
		return fmt.Errorf("destination directory is required")
	}
	if cfg.HashWorkers < 1 {
		return fmt.Errorf("hash_workers must be at least 1, got %d", cfg.HashWorkers)
	}
	switch cfg.WarningBehavior {
	case "immediate", "summary", "silent":
	default:
		return fmt.Errorf("warning_behavior must be immediate, summary or silent, got %q", cfg.WarningBehavior)
	}

	anyNavidrome := cfg.NavidromeURL != "" || cfg.NavidromeUsername != "" || cfg.NavidromePassword != ""
	if anyNavidrome || cfg.NavidromeScanAfterOrganize {
		client := navidrome.NewNavidromeClient(cfg.NavidromeURL, cfg.NavidromeUsername, cfg.NavidromePassword, nil)
		if err := client.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (cs *ConfigService) GetDefaultConfig() *config.Config {
	return config.Default()
}

func (cs *ConfigService) EnsureConfigExists(configFile string) error {
	if !shared.FileExists(configFile) {
		defaultConfig := cs.GetDefaultConfig()
		return cs.SaveConfig(configFile, defaultConfig)
	}
	return nil
}

// ShuffleService adapts shuffle.Shuffler to seeded options
type ShuffleService struct {
	shuffler *shuffle.Shuffler
}

func NewShuffleService(s *shuffle.Shuffler) *ShuffleService {
	return &ShuffleService{shuffler: s}
}

func (ss *ShuffleService) InPlace(ctx context.Context, folder string, opts shared.ShuffleOptions) (*shared.ShuffleResult, error) {
	return ss.shuffler.InPlace(ctx, folder, shuffle.NewRand(opts.Seed))
}

func (ss *ShuffleService) Export(ctx context.Context, source, dest string, opts shared.ShuffleOptions) (*shared.ShuffleResult, error) {
	return ss.shuffler.Export(ctx, source, dest, shuffle.NewRand(opts.Seed), opts.Move)
}

// SyncService adapts syncer.Syncer
type SyncService struct {
	syncer *syncer.Syncer
}

func NewSyncService(s *syncer.Syncer) *SyncService {
	return &SyncService{syncer: s}
}

func (ss *SyncService) Plan(source, dest string) (*shared.SyncPlan, error) {
	return ss.syncer.Diff(source, dest)
}

func (ss *SyncService) Apply(ctx context.Context, plan *shared.SyncPlan, keepExtra bool) (*shared.SyncResult, error) {
	return ss.syncer.Apply(ctx, plan, syncer.Options{KeepExtra: keepExtra, Progress: true})
}

// LibraryService implementation
type LibraryService struct{}

func NewLibraryService() *LibraryService {
	return &LibraryService{}
}

func (ls *LibraryService) Scan(root string) ([]shared.AudioFileRecord, error) {
	if !shared.DirExists(root) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, root)
	}
	return library.Scan(root)
}

func (ls *LibraryService) Summarize(root string) (*shared.LibrarySummary, error) {
	records, err := ls.Scan(root)
	if err != nil {
		return nil, err
	}
	summary := library.Summarize(records)
	return &summary, nil
}

func (ls *LibraryService) Artists(root string) ([]string, error) {
	records, err := ls.Scan(root)
	if err != nil {
		return nil, err
	}
	return library.Artists(records), nil
}

func (ls *LibraryService) Search(root, query string, fuzzy bool) ([]shared.AudioFileRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	records, err := ls.Scan(root)
	if err != nil {
		return nil, err
	}
	return library.Search(records, query, fuzzy), nil
}

func (ls *LibraryService) VerifyFLAC(root string) ([]shared.FLACCheck, error) {
	records, err := ls.Scan(root)
	if err != nil {
		return nil, err
	}
	return library.VerifyFLAC(records), nil
}

// NavidromeServiceWrapper paces scan polling and bounds how long we wait
type NavidromeServiceWrapper struct {
	client       *navidrome.NavidromeClient
	pollInterval rate.Limit
}

func NewNavidromeServiceWrapper(client *navidrome.NavidromeClient) *NavidromeServiceWrapper {
	return &NavidromeServiceWrapper{client: client, pollInterval: rate.Every(config.ScanPollInterval)}
}

func (nsw *NavidromeServiceWrapper) Enabled() bool {
	return nsw.client.Enabled()
}

func (nsw *NavidromeServiceWrapper) TriggerScan(ctx context.Context) error {
	return nsw.client.TriggerScan(ctx)
}

func (nsw *NavidromeServiceWrapper) WaitForScan(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.ScanWaitTimeout)
	defer cancel()
	return nsw.client.WaitForScan(ctx, rate.NewLimiter(nsw.pollInterval, 1))
}

// ConsoleLogger implementation
type ConsoleLogger struct {
	debugMode bool
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{debugMode: shared.IsDebugMode()}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	shared.ColorInfo.Printf(message+"\n", args...)
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	shared.ColorWarning.Printf("⚠️ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	shared.ColorError.Printf("❌ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	if !cl.debugMode {
		return
	}
	shared.ColorMuted.Printf("🐛 DEBUG: "+message+"\n", args...)
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	shared.ColorSuccess.Printf("✅ "+message+"\n", args...)
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.debugMode = enabled
}
