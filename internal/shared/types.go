package shared

import (
	"fmt"
)

// Classification sentinels used when the folder layout carries no artist or album
const (
	UnknownArtist = "Desconhecido"
	SinglesAlbum  = "Singles"
)

// Outcome labels printed at the end of a batch
const (
	OutcomeCompleteSuccess = "complete success"
	OutcomePartial         = "partial"
	OutcomeTotalFailure    = "total failure"
)

// AudioFileRecord is one audio file found during a scan
type AudioFileRecord struct {
	AbsPath  string `json:"absPath"`
	RelPath  string `json:"relPath"` // relative to the root passed to the scan
	Filename string `json:"filename"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Size     int64  `json:"size"`
	Hash     string `json:"hash,omitempty"` // filled lazily
}

// HasHash reports whether the content hash was already computed
func (r AudioFileRecord) HasHash() bool {
	return r.Hash != ""
}

// DuplicateRecord is a record whose content matches an earlier record in scan order
type DuplicateRecord struct {
	Record        AudioFileRecord
	CanonicalPath string
}

// FileError holds a per-file failure that did not stop the batch
type FileError struct {
	Path string
	Err  error
	Kind WarningType // zero: whatever the batch reports its failures as
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// OrganizeResult summarizes an organize or export run
type OrganizeResult struct {
	RunID             string
	Total             int
	Moved             int
	AlreadyMerged     int // subset of Moved: identical copy already at destination
	DuplicatesRemoved int
	BytesMoved        int64
	Errors            []FileError
	DryRun            bool
}

// Outcome classifies the run into one of the three summary labels
func (r *OrganizeResult) Outcome() string {
	return ClassifyOutcome(r.Moved, len(r.Errors))
}

// AddError records a per-file failure
func (r *OrganizeResult) AddError(path string, err error) {
	r.Errors = append(r.Errors, FileError{Path: path, Err: err})
}

// AddErrorKind records a per-file failure of a specific kind, such as a file that
// could not be hashed or deleted
func (r *OrganizeResult) AddErrorKind(kind WarningType, path string, err error) {
	r.Errors = append(r.Errors, FileError{Path: path, Err: err, Kind: kind})
}

// ClassifyOutcome maps moved/error counts to a summary label
func ClassifyOutcome(moved, errors int) string {
	switch {
	case moved == 0:
		return OutcomeTotalFailure
	case errors > 0:
		return OutcomePartial
	default:
		return OutcomeCompleteSuccess
	}
}

// RenamePair is one completed shuffle rename
type RenamePair struct {
	From string
	To   string
}

// ShuffleResult summarizes an in-place shuffle or a shuffle export
type ShuffleResult struct {
	OK         int
	RolledBack int
	Renamed    []RenamePair
	Errors     []FileError
}

// AddError records a per-file failure
func (r *ShuffleResult) AddError(path string, err error) {
	r.Errors = append(r.Errors, FileError{Path: path, Err: err})
}

// ShuffleOptions controls a shuffle run. A zero Seed picks one from the clock.
type ShuffleOptions struct {
	Seed int64
	Move bool // shuffle export only: move instead of copy
}

// SyncPlan is the relative-path diff between a source library and a destination
type SyncPlan struct {
	SourceRoot   string
	DestRoot     string
	Added        []string // in source, missing from destination
	Removed      []string // in destination, missing from source
	Common       []string
	AddedBytes   int64
	RemovedBytes int64
}

// IsEmpty reports whether there is nothing to copy or delete
func (p *SyncPlan) IsEmpty() bool {
	return len(p.Added) == 0 && len(p.Removed) == 0
}

// SyncResult summarizes an applied sync plan
type SyncResult struct {
	Copied  int
	Deleted int
	Errors  []FileError
}

// AddError records a per-file failure
func (r *SyncResult) AddError(path string, err error) {
	r.Errors = append(r.Errors, FileError{Path: path, Err: err})
}

// ArtistSummary is one row of the library summary
type ArtistSummary struct {
	Artist string
	Albums int
	Tracks int
	Bytes  int64
}

// LibrarySummary aggregates a scanned library per artist
type LibrarySummary struct {
	Artists     []ArtistSummary
	TotalTracks int
	TotalAlbums int
	TotalBytes  int64
}

// FLACCheck is the integrity result for one FLAC file
type FLACCheck struct {
	Record     AudioFileRecord
	SampleRate int
	BitDepth   int
	Channels   int
	Err        error
}

// ErrSourceNotFound is returned when the root of an operation does not exist.
var ErrSourceNotFound = fmt.Errorf("source directory not found")

// ErrDestinationUnavailable is returned when the destination root cannot be created.
var ErrDestinationUnavailable = fmt.Errorf("destination directory unavailable")

// ErrNotFlatFolder is returned when shuffle targets a folder whose audio lives only in subfolders.
var ErrNotFlatFolder = fmt.Errorf("folder has no top-level audio files")

// ErrOperationCancelled is returned when the user declines a confirmation prompt.
var ErrOperationCancelled = fmt.Errorf("operation cancelled by user")

// ErrNoArtistsSelected is returned when an export selection is empty.
var ErrNoArtistsSelected = fmt.Errorf("no artists selected for export")
