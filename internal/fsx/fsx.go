// Package fsx wraps the filesystem mutations used by the organizer, shuffle and sync:
// rename with cross-device detection, atomic copies, moves with a copy fallback and
// bottom-up removal of empty directories.
package fsx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Replaceable in tests to simulate EXDEV and permission failures.
var (
	renameFunc = os.Rename
	removeFunc = os.Remove
)

const copyBufferSize = 1024 * 1024

// CrossDeviceError marks a rename that failed because src and dst live on different filesystems.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cross-device rename %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is a CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// Rename wraps os.Rename and tags EXDEV failures as CrossDeviceError.
func Rename(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// Remove deletes a single file.
func Remove(path string) error {
	return removeFunc(path)
}

// Move renames src to dst, falling back to copy then remove when the rename crosses devices.
// The parent of dst must already exist.
func Move(src, dst string) error {
	err := Rename(src, dst)
	if err == nil {
		return nil
	}
	if !IsCrossDevice(err) {
		return fmt.Errorf("failed to move %s: %w", src, err)
	}
	if err := CopyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy across devices: %w", err)
	}
	if err := removeFunc(src); err != nil {
		return fmt.Errorf("copied but failed to remove source %s: %w", src, err)
	}
	return nil
}

// CopyFile copies src to dst through a hidden temp file in dst's directory, so a
// partially written copy never appears under the final name.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	tmpName := filepath.Join(dir, "."+filepath.Base(dst)+"."+uuid.NewString()+".part")
	out, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmpName)
		}
	}()

	buf := make([]byte, copyBufferSize)
	if _, err = io.CopyBuffer(out, in, buf); err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	_ = os.Chtimes(tmpName, info.ModTime(), info.ModTime())
	return Rename(tmpName, dst)
}

// RemoveEmptyDirs deletes every empty directory below root, deepest first, and
// returns how many were removed. root itself is kept. Failures are ignored.
func RemoveEmptyDirs(root string) int {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})

	sort.Slice(dirs, func(i, j int) bool {
		di := strings.Count(dirs[i], string(filepath.Separator))
		dj := strings.Count(dirs[j], string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return dirs[i] > dirs[j]
	})

	removed := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err == nil {
			removed++
		}
	}
	return removed
}
