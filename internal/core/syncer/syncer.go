// Package syncer mirrors an organized library onto another root, such as a pendrive,
// by relative path.
package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"music-organizer/internal/fsx"
	"music-organizer/internal/interfaces"
	"music-organizer/internal/library"
	"music-organizer/internal/shared"
)

// Options tunes Apply.
type Options struct {
	KeepExtra bool // never delete files that only exist in the destination
	Progress  bool
}

// Syncer computes and applies sync plans.
type Syncer struct {
	logger interfaces.LoggerService
}

// New creates a Syncer.
func New(logger interfaces.LoggerService) *Syncer {
	return &Syncer{logger: logger}
}

// Diff scans both roots and compares their audio files by relative path. Content is not
// compared, so a file present on both sides counts as Common even if it changed. A missing
// destination is treated as empty. Nothing is written.
func (s *Syncer) Diff(source, dest string) (*shared.SyncPlan, error) {
	if !shared.DirExists(source) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, source)
	}
	absSource, err := filepath.Abs(source)
	if err != nil {
		return nil, err
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDestinationUnavailable, err)
	}

	srcRecords, err := library.Scan(absSource)
	if err != nil {
		return nil, err
	}
	dstRecords, err := library.Scan(absDest)
	if err != nil {
		return nil, err
	}
	if absDest != absSource {
		// A destination nested in the source must not be mirrored into itself.
		prefix := absDest + string(filepath.Separator)
		kept := srcRecords[:0]
		for _, rec := range srcRecords {
			if !strings.HasPrefix(rec.AbsPath, prefix) {
				kept = append(kept, rec)
			}
		}
		srcRecords = kept
	}
	srcByRel := index(srcRecords)
	dstByRel := index(dstRecords)

	plan := &shared.SyncPlan{SourceRoot: absSource, DestRoot: absDest}
	for rel, rec := range srcByRel {
		if _, ok := dstByRel[rel]; ok {
			plan.Common = append(plan.Common, rel)
			continue
		}
		plan.Added = append(plan.Added, rel)
		plan.AddedBytes += rec.Size
	}
	for rel, rec := range dstByRel {
		if _, ok := srcByRel[rel]; !ok {
			plan.Removed = append(plan.Removed, rel)
			plan.RemovedBytes += rec.Size
		}
	}
	sort.Strings(plan.Added)
	sort.Strings(plan.Removed)
	sort.Strings(plan.Common)

	s.logger.Debug("sync plan %s -> %s: +%d -%d =%d", absSource, absDest, len(plan.Added), len(plan.Removed), len(plan.Common))
	return plan, nil
}

func index(records []shared.AudioFileRecord) map[string]shared.AudioFileRecord {
	out := make(map[string]shared.AudioFileRecord, len(records))
	for _, rec := range records {
		out[filepath.ToSlash(rec.RelPath)] = rec
	}
	return out
}

// Apply copies every added file into the destination and, unless KeepExtra is set,
// deletes every removed one. Copies are written under a temporary name and renamed into
// place, so an interrupted run never leaves a half-written track. Empty folders left in
// the destination are pruned afterwards.
func (s *Syncer) Apply(ctx context.Context, plan *shared.SyncPlan, opts Options) (*shared.SyncResult, error) {
	result := &shared.SyncResult{}
	if plan == nil || plan.IsEmpty() {
		return result, nil
	}
	if err := os.MkdirAll(plan.DestRoot, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDestinationUnavailable, err)
	}

	bar := newBar(opts.Progress, len(plan.Added), "Copying")
	for _, rel := range plan.Added {
		if err := ctx.Err(); err != nil {
			finishBar(bar)
			return result, err
		}
		src := filepath.Join(plan.SourceRoot, filepath.FromSlash(rel))
		dst := filepath.Join(plan.DestRoot, filepath.FromSlash(rel))
		if err := copyInto(src, dst); err != nil {
			result.AddError(src, err)
		} else {
			result.Copied++
		}
		if bar != nil {
			bar.Increment()
		}
	}
	finishBar(bar)

	if !opts.KeepExtra {
		for _, rel := range plan.Removed {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			path := filepath.Join(plan.DestRoot, filepath.FromSlash(rel))
			if err := fsx.Remove(path); err != nil && !os.IsNotExist(err) {
				result.AddError(path, fmt.Errorf("failed to delete: %w", err))
				continue
			}
			result.Deleted++
		}
	}

	if n := fsx.RemoveEmptyDirs(plan.DestRoot); n > 0 {
		s.logger.Debug("pruned %d empty directories under %s", n, plan.DestRoot)
	}
	return result, nil
}

func copyInto(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	return fsx.CopyFile(src, dst)
}

func newBar(enabled bool, total int, prefix string) *pb.ProgressBar {
	if !enabled || total == 0 || !shared.IsTTY() {
		return nil
	}
	bar := pb.New(total)
	bar.SetWriter(os.Stdout)
	bar.SetTemplateString(`{{ string . "prefix" }} {{ bar . }} {{ counters . }} | ETA {{ rtime . "%s" }}`)
	bar.Set("prefix", prefix)
	bar.Start()
	return bar
}

func finishBar(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}
