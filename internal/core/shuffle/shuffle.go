// Package shuffle fixes a random playback order in file names, for players that only
// sort alphabetically.
package shuffle

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"

	"music-organizer/internal/fsx"
	"music-organizer/internal/interfaces"
	"music-organizer/internal/library"
	"music-organizer/internal/shared"
)

const fallbackName = "track"

// Shuffler renames or exports audio files in a random order.
type Shuffler struct {
	logger   interfaces.LoggerService
	progress bool
	rename   func(src, dst string) error
}

// New creates a Shuffler. With progress set, bars are drawn when stdout is a terminal.
func New(logger interfaces.LoggerService, progress bool) *Shuffler {
	return &Shuffler{logger: logger, progress: progress, rename: fsx.Rename}
}

// NewRand returns a generator for seed, or a clock-seeded one when seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type pending struct {
	rec  shared.AudioFileRecord
	temp string
}

// InPlace gives the top-level audio files of folder the names "NN. name.ext" in a random
// order, where name is the old stem without its track number. Files are first moved to
// temporary names so that no final name can clash with a file still waiting its turn.
// A file whose final rename fails is put back under its original name. Only renames are
// used, so no audio data is copied.
func (s *Shuffler) InPlace(ctx context.Context, folder string, rng *rand.Rand) (*shared.ShuffleResult, error) {
	if !shared.DirExists(folder) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, folder)
	}
	records, err := library.ScanFlat(folder)
	if err != nil {
		return nil, err
	}
	result := &shared.ShuffleResult{}
	if len(records) == 0 {
		if library.HasNestedAudio(folder) {
			return nil, fmt.Errorf("%w: %s", shared.ErrNotFlatFolder, folder)
		}
		return result, nil
	}

	rng.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })

	// Phase 1: temporary names.
	bar := newBar(s.progress, len(records)*2, "Shuffling")
	var staged []pending
	next := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			s.restore(staged, result)
			finishBar(bar)
			return result, err
		}
		temp := freeTempPath(folder, &next, filepath.Ext(rec.Filename))
		if err := s.rename(rec.AbsPath, temp); err != nil {
			result.AddError(rec.AbsPath, fmt.Errorf("failed to stage: %w", err))
		} else {
			staged = append(staged, pending{rec: rec, temp: temp})
		}
		increment(bar)
	}

	// Phase 2: numbered names.
	width := len(strconv.Itoa(len(records)))
	for i, p := range staged {
		name := numberedName(i+1, width, cleanStem(p.rec.Filename), filepath.Ext(p.rec.Filename))
		final := library.UniquePath(filepath.Join(folder, name), shared.PathExists)
		if err := s.rename(p.temp, final); err != nil {
			result.AddError(p.rec.AbsPath, fmt.Errorf("failed to rename to %s: %w", filepath.Base(final), err))
			s.rollback(p, result)
			increment(bar)
			continue
		}
		result.OK++
		result.Renamed = append(result.Renamed, shared.RenamePair{From: p.rec.Filename, To: filepath.Base(final)})
		s.logger.Debug("%s -> %s", p.rec.Filename, filepath.Base(final))
		increment(bar)
	}
	finishBar(bar)
	return result, nil
}

// rollback puts a staged file back. If a numbered file has meanwhile taken its old
// name, a suffixed sibling is used.
func (s *Shuffler) rollback(p pending, result *shared.ShuffleResult) {
	back := library.UniquePath(p.rec.AbsPath, shared.PathExists)
	if err := s.rename(p.temp, back); err != nil {
		s.logger.Warning("could not restore %s, it is left as %s: %v", p.rec.Filename, filepath.Base(p.temp), err)
		return
	}
	result.RolledBack++
}

// restore undoes phase 1 when the run is cancelled before any final name was given.
func (s *Shuffler) restore(staged []pending, result *shared.ShuffleResult) {
	for _, p := range staged {
		s.rollback(p, result)
	}
}

// Export places every audio file under source into the flat folder dest as
// "NNN. Artist - Title.ext" in a random order. Files are copied unless move is set.
// Existing names in dest are never overwritten.
func (s *Shuffler) Export(ctx context.Context, source, dest string, rng *rand.Rand, move bool) (*shared.ShuffleResult, error) {
	if !shared.DirExists(source) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, source)
	}
	records, err := library.Scan(source)
	if err != nil {
		return nil, err
	}
	if absDest, err := filepath.Abs(dest); err == nil {
		records = skipUnder(records, absDest)
	}
	result := &shared.ShuffleResult{}
	if len(records) == 0 {
		return result, nil
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDestinationUnavailable, err)
	}

	rng.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })

	width := len(strconv.Itoa(len(records)))
	if width < 3 {
		width = 3
	}
	label := "Copying"
	if move {
		label = "Moving"
	}
	bar := newBar(s.progress, len(records), label)
	defer finishBar(bar)

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		artist := library.Sanitize(rec.Artist)
		if artist == "" {
			artist = shared.UnknownArtist
		}
		title := fmt.Sprintf("%s - %s", artist, cleanStem(rec.Filename))
		target := library.UniquePath(filepath.Join(dest, numberedName(i+1, width, title, filepath.Ext(rec.Filename))), shared.PathExists)

		var err error
		if move {
			err = fsx.Move(rec.AbsPath, target)
		} else {
			err = fsx.CopyFile(rec.AbsPath, target)
		}
		increment(bar)
		if err != nil {
			result.AddError(rec.AbsPath, err)
			continue
		}
		result.OK++
		result.Renamed = append(result.Renamed, shared.RenamePair{From: rec.RelPath, To: filepath.Base(target)})
	}

	if move {
		fsx.RemoveEmptyDirs(source)
	}
	return result, nil
}

// skipUnder drops records inside dir, so an export folder nested in the library is not
// exported into itself.
func skipUnder(records []shared.AudioFileRecord, dir string) []shared.AudioFileRecord {
	prefix := dir + string(filepath.Separator)
	var out []shared.AudioFileRecord
	for _, rec := range records {
		if !strings.HasPrefix(rec.AbsPath, prefix) {
			out = append(out, rec)
		}
	}
	return out
}

// freeTempPath returns the first "__shuffle_temp_<n>__<ext>" in folder that is not taken,
// starting at *next. A leftover from an interrupted run is never renamed over.
func freeTempPath(folder string, next *int, ext string) string {
	for {
		path := filepath.Join(folder, fmt.Sprintf("__shuffle_temp_%d__%s", *next, ext))
		*next++
		if !shared.PathExists(path) {
			return path
		}
	}
}

// cleanStem is the file stem without track number or illegal characters.
func cleanStem(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	name := library.Sanitize(library.StripTrackPrefix(stem))
	if name == "" {
		return fallbackName
	}
	return name
}

func numberedName(n, width int, name, ext string) string {
	return fmt.Sprintf("%0*d. %s%s", width, n, name, ext)
}

func newBar(enabled bool, total int, prefix string) *pb.ProgressBar {
	if !enabled || total == 0 || !shared.IsTTY() {
		return nil
	}
	bar := pb.New(total)
	bar.SetWriter(os.Stdout)
	bar.SetTemplateString(`{{ string . "prefix" }} {{ bar . }} {{ counters . }}`)
	bar.Set("prefix", prefix)
	bar.Start()
	return bar
}

func increment(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Increment()
	}
}

func finishBar(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}
