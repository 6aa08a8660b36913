package shared

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// WarningType represents different types of warnings
type WarningType int

// The zero value is left unused so a FileError without a Kind can be told apart.
const (
	HashFailureWarning WarningType = iota + 1
	MoveFailureWarning
	DeleteFailureWarning
	RollbackWarning
	CopyFailureWarning
	FLACIntegrityWarning
	LibraryServerWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string // file or folder the warning is about
	Details string
}

// WarningCollector collects non-fatal events during a batch so they can be printed once at the end
type WarningCollector struct {
	mu       sync.Mutex
	warnings []Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
		enabled:  enabled,
	}
}

// AddWarning adds a warning to the collector
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if !wc.enabled {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, Warning{
		Type:    warningType,
		Message: message,
		Context: context,
		Details: details,
	})
}

// AddFileErrors files every per-file error of a batch under its own Kind, or under
// warningType when the error carries none
func (wc *WarningCollector) AddFileErrors(warningType WarningType, errs []FileError) {
	for _, fe := range errs {
		kind := fe.Kind
		if kind == 0 {
			kind = warningType
		}
		wc.AddWarning(kind, fe.Path, "Operation failed", fmt.Sprint(fe.Err))
	}
}

// AddRollbackWarning records a shuffle rename that had to be undone
func (wc *WarningCollector) AddRollbackWarning(path, details string) {
	wc.AddWarning(RollbackWarning, path, "Rename rolled back to original name", details)
}

// AddFLACIntegrityWarning records a FLAC file whose stream header did not parse
func (wc *WarningCollector) AddFLACIntegrityWarning(path, details string) {
	wc.AddWarning(FLACIntegrityWarning, path, "FLAC stream header is invalid", details)
}

// AddLibraryServerWarning records a media server call that failed
func (wc *WarningCollector) AddLibraryServerWarning(server, details string) {
	wc.AddWarning(LibraryServerWarning, server, "Media server request failed", details)
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return len(wc.warnings) > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return len(wc.warnings)
}

// GetWarningsByType returns warnings grouped by type
func (wc *WarningCollector) GetWarningsByType() map[WarningType][]Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	grouped := make(map[WarningType][]Warning)
	for _, warning := range wc.warnings {
		grouped[warning.Type] = append(grouped[warning.Type], warning)
	}
	return grouped
}

// Reset drops every collected warning
func (wc *WarningCollector) Reset() {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = wc.warnings[:0]
}

// PrintSummary prints a formatted summary of all warnings
func (wc *WarningCollector) PrintSummary() {
	if !wc.HasWarnings() {
		return
	}

	ColorWarning.Printf("\n⚠️  Warning Summary (%d warnings):\n", wc.GetWarningCount())
	ColorWarning.Println(strings.Repeat("─", 50))

	grouped := wc.GetWarningsByType()

	var types []WarningType
	for warningType := range grouped {
		types = append(types, warningType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, warningType := range types {
		wc.printWarningTypeSection(warningType, grouped[warningType])
	}
}

func (wc *WarningCollector) printWarningTypeSection(warningType WarningType, warnings []Warning) {
	if len(warnings) == 0 {
		return
	}

	ColorWarning.Printf("\n%s (%d):\n", getWarningTypeTitle(warningType), len(warnings))

	contextCounts := make(map[string]int)
	details := make(map[string]string)
	for _, warning := range warnings {
		contextCounts[warning.Context]++
		if warning.Details != "" {
			details[warning.Context] = warning.Details
		}
	}

	var contexts []string
	for context := range contextCounts {
		contexts = append(contexts, context)
	}
	sort.Strings(contexts)

	for _, context := range contexts {
		line := "  • " + context
		if count := contextCounts[context]; count > 1 {
			line += fmt.Sprintf(" (×%d)", count)
		}
		if d := details[context]; d != "" {
			line += ": " + d
		}
		ColorWarning.Println(line)
	}
}

func getWarningTypeTitle(warningType WarningType) string {
	switch warningType {
	case HashFailureWarning:
		return "Unreadable Files (hash failed)"
	case MoveFailureWarning:
		return "Move Failures"
	case DeleteFailureWarning:
		return "Delete Failures"
	case RollbackWarning:
		return "Shuffle Renames Rolled Back"
	case CopyFailureWarning:
		return "Copy Failures"
	case FLACIntegrityWarning:
		return "Damaged FLAC Files"
	case LibraryServerWarning:
		return "Media Server Notifications"
	default:
		return "Other Warnings"
	}
}
