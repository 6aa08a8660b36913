// Package library holds the read-side of the organizer: scanning a tree for audio files,
// classifying them by folder layout, hashing, duplicate detection and the reports built
// on top of a scan (summary, search, FLAC integrity).
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"music-organizer/internal/shared"
)

// AudioExtensions is the fixed set of recognised audio file extensions (lowercase).
var AudioExtensions = []string{".mp3", ".flac", ".ogg", ".opus", ".m4a", ".wav", ".aac", ".wma"}

// IsAudioFile reports whether name carries one of the audio extensions, ignoring case.
func IsAudioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AudioExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// Scan walks root at every depth and returns one record per audio file, sorted by
// relative path so the order is stable between runs. A missing root yields an empty
// slice. Unreadable entries below root are skipped.
func Scan(root string) ([]shared.AudioFileRecord, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []shared.AudioFileRecord{}, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []shared.AudioFileRecord{}, nil
	}

	records := make([]shared.AudioFileRecord, 0, 128)
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || !IsAudioFile(d.Name()) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}

		records = append(records, newRecord(path, rel, fi.Size()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sortRecords(records)
	return records, nil
}

// ScanFlat lists the audio files directly inside folder, without descending.
func ScanFlat(folder string) ([]shared.AudioFileRecord, error) {
	absFolder, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", folder, err)
	}
	entries, err := os.ReadDir(absFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}

	records := make([]shared.AudioFileRecord, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsAudioFile(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		records = append(records, newRecord(filepath.Join(absFolder, e.Name()), e.Name(), fi.Size()))
	}
	sortRecords(records)
	return records, nil
}

// HasNestedAudio reports whether any subfolder of folder contains audio files.
func HasNestedAudio(folder string) bool {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		recs, err := Scan(filepath.Join(folder, e.Name()))
		if err == nil && len(recs) > 0 {
			return true
		}
	}
	return false
}

func newRecord(absPath, relPath string, size int64) shared.AudioFileRecord {
	artist, album := Classify(relPath)
	return shared.AudioFileRecord{
		AbsPath:  absPath,
		RelPath:  relPath,
		Filename: filepath.Base(absPath),
		Artist:   artist,
		Album:    album,
		Size:     size,
	}
}

func sortRecords(records []shared.AudioFileRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return filepath.ToSlash(records[i].RelPath) < filepath.ToSlash(records[j].RelPath)
	})
}
