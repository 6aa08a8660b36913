package interfaces

import (
	"context"

	"music-organizer/internal/config"
	"music-organizer/internal/shared"
)

// ConfigService defines the interface for configuration management
type ConfigService interface {
	// LoadConfig loads configuration from file, then applies defaults and environment overrides
	LoadConfig(configFile string) (*config.Config, error)

	// SaveConfig saves configuration to file
	SaveConfig(configFile string, config *config.Config) error

	// ValidateConfig validates configuration settings
	ValidateConfig(config *config.Config) error

	// GetDefaultConfig returns a default configuration
	GetDefaultConfig() *config.Config

	// EnsureConfigExists creates a default config file if it doesn't exist
	EnsureConfigExists(configFile string) error
}

// LoggerService defines the interface for logging operations
type LoggerService interface {
	// Info logs an informational message
	Info(message string, args ...interface{})

	// Warning logs a warning message
	Warning(message string, args ...interface{})

	// Error logs an error message
	Error(message string, args ...interface{})

	// Debug logs a debug message
	Debug(message string, args ...interface{})

	// Success logs a success message
	Success(message string, args ...interface{})

	// SetDebugMode enables or disables debug logging
	SetDebugMode(enabled bool)
}

// WarningCollectorService defines the interface for warning collection
type WarningCollectorService interface {
	// AddWarning adds a warning to the collection
	AddWarning(warningType shared.WarningType, context, message, details string)

	// AddFileErrors adds one warning per failed file
	AddFileErrors(warningType shared.WarningType, errs []shared.FileError)

	// AddRollbackWarning records a shuffle rename that was undone
	AddRollbackWarning(path, details string)

	// AddFLACIntegrityWarning records a FLAC file that failed verification
	AddFLACIntegrityWarning(path, details string)

	// AddLibraryServerWarning records a failed call to the media server
	AddLibraryServerWarning(server, details string)

	// HasWarnings returns true if there are any warnings
	HasWarnings() bool

	// GetWarningCount returns the total number of warnings
	GetWarningCount() int

	// PrintSummary prints a formatted summary of all warnings
	PrintSummary()
}

// OrganizerService moves a library into Artist/Album layout without duplicates
type OrganizerService interface {
	// Organize deduplicates source and moves every remaining file under dest
	Organize(ctx context.Context, source, dest string, dryRun bool) (*shared.OrganizeResult, error)

	// Export does the same for the selected artists only
	Export(ctx context.Context, source, dest string, artists []string, dryRun bool) (*shared.OrganizeResult, error)
}

// ShuffleService randomizes playback order through file names
type ShuffleService interface {
	// InPlace renames the top-level audio files of folder to "NN. name.ext" in random order
	InPlace(ctx context.Context, folder string, opts shared.ShuffleOptions) (*shared.ShuffleResult, error)

	// Export copies (or moves) a whole library into one flat folder in random order
	Export(ctx context.Context, source, dest string, opts shared.ShuffleOptions) (*shared.ShuffleResult, error)
}

// SyncService mirrors a library onto another root
type SyncService interface {
	// Plan diffs source and dest by relative path
	Plan(source, dest string) (*shared.SyncPlan, error)

	// Apply copies additions and, unless keepExtra is set, deletes removals
	Apply(ctx context.Context, plan *shared.SyncPlan, keepExtra bool) (*shared.SyncResult, error)
}

// LibraryService answers read-only questions about a library folder
type LibraryService interface {
	// Scan lists the audio files under root
	Scan(root string) ([]shared.AudioFileRecord, error)

	// Summarize aggregates root per artist
	Summarize(root string) (*shared.LibrarySummary, error)

	// Artists lists the artist folders under root
	Artists(root string) ([]string, error)

	// Search matches query against file, artist and album names
	Search(root, query string, fuzzy bool) ([]shared.AudioFileRecord, error)

	// VerifyFLAC checks the container of every FLAC file under root
	VerifyFLAC(root string) ([]shared.FLACCheck, error)
}

// LibraryServerService talks to the media server that indexes the organized library
type LibraryServerService interface {
	// Enabled reports whether a server is configured
	Enabled() bool

	// TriggerScan asks the server to rescan its library
	TriggerScan(ctx context.Context) error

	// WaitForScan blocks until the server reports the scan finished and returns the indexed file count
	WaitForScan(ctx context.Context) (int64, error)
}
