// Package organizer moves a scanned library into destination/Artist/Album/file,
// dropping byte-identical duplicates along the way.
package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"

	"music-organizer/internal/fsx"
	"music-organizer/internal/interfaces"
	"music-organizer/internal/library"
	"music-organizer/internal/shared"
)

// Options tunes an Organizer.
type Options struct {
	HashWorkers int
	Progress    bool // draw progress bars when stdout is a terminal
}

// Organizer runs organize and export batches.
type Organizer struct {
	logger interfaces.LoggerService
	opts   Options
}

// New creates an Organizer that reports through logger.
func New(logger interfaces.LoggerService, opts Options) *Organizer {
	return &Organizer{logger: logger, opts: opts}
}

// Organize scans source, removes duplicate content and moves every remaining audio file
// to dest/Artist/Album/filename. Per-file failures are collected in the result; only a
// missing source or an unusable destination is returned as an error. With dryRun the
// whole plan is computed, hashes included, but nothing on disk changes.
func (o *Organizer) Organize(ctx context.Context, source, dest string, dryRun bool) (*shared.OrganizeResult, error) {
	if err := checkSource(source); err != nil {
		return nil, err
	}
	records, err := library.Scan(source)
	if err != nil {
		return nil, err
	}
	return o.run(ctx, source, dest, records, dryRun)
}

// Export moves the files of the selected artists (matched ignoring case) from source to
// dest with the same layout, duplicate and collision rules as Organize.
func (o *Organizer) Export(ctx context.Context, source, dest string, artists []string, dryRun bool) (*shared.OrganizeResult, error) {
	if len(artists) == 0 {
		return nil, shared.ErrNoArtistsSelected
	}
	if err := checkSource(source); err != nil {
		return nil, err
	}
	records, err := library.Scan(source)
	if err != nil {
		return nil, err
	}
	selected := library.FilterByArtists(records, artists)
	o.logger.Debug("export selected %d of %d files for %s", len(selected), len(records), strings.Join(artists, ", "))
	return o.run(ctx, source, dest, selected, dryRun)
}

func (o *Organizer) run(ctx context.Context, source, dest string, records []shared.AudioFileRecord, dryRun bool) (*shared.OrganizeResult, error) {
	result := &shared.OrganizeResult{RunID: uuid.NewString(), DryRun: dryRun}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDestinationUnavailable, err)
	}
	if absSource, err := filepath.Abs(source); err == nil && absSource != absDest {
		records = excludeUnder(records, absDest)
	}
	result.Total = len(records)
	if len(records) == 0 {
		return result, nil
	}

	if err := ensureDest(absDest, dryRun); err != nil {
		return nil, err
	}

	hashBar := o.newBar(len(records), "Hashing")
	dedup, err := library.ResolveDuplicates(ctx, records, library.DedupOptions{
		Workers:  o.opts.HashWorkers,
		Progress: hashBar,
	})
	finishBar(hashBar)
	if err != nil {
		return result, fmt.Errorf("failed to hash library: %w", err)
	}
	result.Errors = append(result.Errors, dedup.Errors...)

	p := &placement{
		dest:       absDest,
		dryRun:     dryRun,
		planned:    make(map[string]string),
		duplicates: make(map[string]bool, len(dedup.Duplicates)),
		spared:     make(map[string]bool),
		result:     result,
		logger:     o.logger,
	}
	for _, dup := range dedup.Duplicates {
		p.duplicates[dup.Record.AbsPath] = true
	}

	moveBar := o.newBar(len(dedup.Unique), "Moving")
	for _, rec := range dedup.Unique {
		if err := ctx.Err(); err != nil {
			finishBar(moveBar)
			return result, err
		}
		p.place(rec)
		if moveBar != nil {
			moveBar.Increment()
		}
	}
	finishBar(moveBar)

	for _, dup := range dedup.Duplicates {
		if !dryRun && !p.spared[dup.Record.AbsPath] {
			if err := fsx.Remove(dup.Record.AbsPath); err != nil {
				result.AddErrorKind(shared.DeleteFailureWarning, dup.Record.AbsPath, fmt.Errorf("failed to remove duplicate: %w", err))
				continue
			}
		}
		o.logger.Debug("duplicate %s (same content as %s)", dup.Record.RelPath, dup.CanonicalPath)
		result.DuplicatesRemoved++
	}

	if !dryRun {
		if n := fsx.RemoveEmptyDirs(source); n > 0 {
			o.logger.Debug("removed %d empty directories under %s", n, source)
		}
	}
	return result, nil
}

// placement carries the state of one batch of moves.
type placement struct {
	dest    string
	dryRun  bool
	planned map[string]string // destination path -> content hash claimed during this run
	result  *shared.OrganizeResult
	logger  interfaces.LoggerService

	// When organizing in place a duplicate can already sit at the canonical copy's
	// target. That file is kept and the canonical source is removed instead.
	duplicates map[string]bool
	spared     map[string]bool
}

func (p *placement) place(rec shared.AudioFileRecord) {
	target := TargetPath(p.dest, rec)

	if samePath(rec.AbsPath, target) {
		p.result.Moved++
		return
	}

	candidate := target
	for n := 1; p.exists(candidate); n++ {
		existing, err := p.hashAt(candidate)
		if err != nil {
			p.result.AddErrorKind(shared.HashFailureWarning, rec.AbsPath, fmt.Errorf("failed to compare with %s: %w", candidate, err))
			return
		}
		if existing == rec.Hash {
			p.merge(rec, candidate)
			return
		}
		candidate = library.SuffixedPath(target, n)
	}

	if !p.dryRun {
		if err := os.MkdirAll(filepath.Dir(candidate), 0755); err != nil {
			p.result.AddError(rec.AbsPath, fmt.Errorf("failed to create %s: %w", filepath.Dir(candidate), err))
			return
		}
		if err := fsx.Move(rec.AbsPath, candidate); err != nil {
			p.result.AddError(rec.AbsPath, err)
			return
		}
	}
	p.planned[candidate] = rec.Hash
	p.result.Moved++
	p.result.BytesMoved += rec.Size
	p.logger.Debug("%s -> %s", rec.RelPath, candidate)
}

// merge handles a source whose content already sits at the destination.
func (p *placement) merge(rec shared.AudioFileRecord, at string) {
	if !p.dryRun {
		if err := fsx.Remove(rec.AbsPath); err != nil {
			p.result.AddErrorKind(shared.DeleteFailureWarning, rec.AbsPath, fmt.Errorf("already at %s but failed to remove source: %w", at, err))
			return
		}
	}
	if p.duplicates[at] {
		p.spared[at] = true
	}
	p.result.Moved++
	p.result.AlreadyMerged++
	p.logger.Debug("%s already present at %s", rec.RelPath, at)
}

func (p *placement) exists(path string) bool {
	if _, ok := p.planned[path]; ok {
		return true
	}
	return shared.PathExists(path)
}

func (p *placement) hashAt(path string) (string, error) {
	if h, ok := p.planned[path]; ok {
		return h, nil
	}
	return library.HashFile(path)
}

// TargetPath is dest/Artist/Album/filename with both folder names sanitized.
func TargetPath(dest string, rec shared.AudioFileRecord) string {
	artist := library.Sanitize(rec.Artist)
	if artist == "" {
		artist = shared.UnknownArtist
	}
	album := library.Sanitize(rec.Album)
	if album == "" {
		album = shared.SinglesAlbum
	}
	return filepath.Join(dest, artist, album, rec.Filename)
}

func checkSource(source string) error {
	if !shared.DirExists(source) {
		return fmt.Errorf("%w: %s", shared.ErrSourceNotFound, source)
	}
	return nil
}

func ensureDest(dest string, dryRun bool) error {
	if info, err := os.Stat(dest); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", shared.ErrDestinationUnavailable, dest)
		}
		return nil
	}
	if dryRun {
		return nil
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDestinationUnavailable, err)
	}
	return nil
}

// excludeUnder drops records that already live below dest, which happens when the
// destination is nested inside a different source tree.
func excludeUnder(records []shared.AudioFileRecord, dest string) []shared.AudioFileRecord {
	prefix := dest + string(filepath.Separator)
	out := records[:0:0]
	for _, rec := range records {
		if strings.HasPrefix(rec.AbsPath, prefix) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

func (o *Organizer) newBar(total int, prefix string) *pb.ProgressBar {
	if !o.opts.Progress || total == 0 || !shared.IsTTY() {
		return nil
	}
	bar := pb.New(total)
	bar.SetWriter(os.Stdout)
	bar.SetTemplateString(`{{ string . "prefix" }} {{ bar . }} {{ counters . }} | ETA {{ rtime . "%s" }}`)
	bar.Set("prefix", fmt.Sprintf("%-8s", prefix))
	bar.Start()
	return bar
}

func finishBar(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}
