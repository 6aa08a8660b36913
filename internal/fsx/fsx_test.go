package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func assertNoPartFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".part") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestMoveSameDevice(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.mp3")
	dst := filepath.Join(dir, "b.mp3")
	writeFile(t, src, "abc")

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should not exist after move")
	}
	if readFile(t, dst) != "abc" {
		t.Error("destination content mismatch")
	}
}

func TestMoveWrapsOtherErrors(t *testing.T) {
	boom := errors.New("disk full")
	old := renameFunc
	renameFunc = func(string, string) error { return boom }
	defer func() { renameFunc = old }()

	err := Move("/nowhere/a", "/nowhere/b")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if IsCrossDevice(err) {
		t.Error("plain failure must not be reported as cross-device")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.ogg")
	dst := filepath.Join(dir, "dst.ogg")
	writeFile(t, src, strings.Repeat("x", 3*copyBufferSize+17))

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if readFile(t, dst) != readFile(t, src) {
		t.Error("copy differs from source")
	}
	if !strings.HasPrefix(readFile(t, src), "xxx") {
		t.Error("source should be untouched")
	}
	assertNoPartFiles(t, dir)
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "out")); err == nil {
		t.Fatal("expected an error for a missing source")
	}
	assertNoPartFiles(t, dir)
}

func TestRemoveEmptyDirs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"A/B/C", "A/D", "E"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(root, "E", "keep.mp3"), "x")

	removed := RemoveEmptyDirs(root)
	if removed != 4 {
		t.Errorf("expected 4 removed directories (A/B/C, A/B, A/D, A), got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "A")); !os.IsNotExist(err) {
		t.Error("A should have been removed bottom-up")
	}
	if _, err := os.Stat(filepath.Join(root, "E", "keep.mp3")); err != nil {
		t.Error("non-empty directory must be kept")
	}
	if _, err := os.Stat(root); err != nil {
		t.Error("root must never be removed")
	}
}

func TestRemoveEmptyDirsMissingRoot(t *testing.T) {
	if n := RemoveEmptyDirs(filepath.Join(t.TempDir(), "nope")); n != 0 {
		t.Errorf("expected 0 for a missing root, got %d", n)
	}
}
