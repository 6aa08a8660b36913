package library

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"music-organizer/internal/shared"
)

func touch(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func relPaths(records []shared.AudioFileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = filepath.ToSlash(r.RelPath)
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		rel    string
		artist string
		album  string
	}{
		{"A/B/C/song.mp3", "A", "B"},
		{"A/B/song.mp3", "A", "B"},
		{"A/song.mp3", "A", "Singles"},
		{"song.mp3", "Desconhecido", "Singles"},
		{"Artist/Album/Disc 1/Extra/deep.flac", "Artist", "Album"},
	}
	for _, tt := range tests {
		artist, album := Classify(filepath.FromSlash(tt.rel))
		if artist != tt.artist || album != tt.album {
			t.Errorf("Classify(%q) = (%q, %q), want (%q, %q)", tt.rel, artist, album, tt.artist, tt.album)
		}
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize("AC/DC: Best? *Hits*")
	if strings.ContainsAny(got, invalidNameChars) {
		t.Errorf("sanitized name still has forbidden characters: %q", got)
	}
	if got != strings.TrimSpace(got) {
		t.Errorf("sanitized name has surrounding whitespace: %q", got)
	}
	if got != "ACDC Best Hits" {
		t.Errorf("Sanitize = %q", got)
	}

	if got := Sanitize(`  <a>"b"|c\d  `); got != "abcd" {
		t.Errorf("Sanitize = %q", got)
	}
	long := strings.Repeat("x", 400)
	if Sanitize(long) != long {
		t.Error("Sanitize must not truncate")
	}
}

func TestStripTrackPrefix(t *testing.T) {
	tests := map[string]string{
		"01. Intro":    "Intro",
		"3 - Song":     "Song",
		"12 Name":      "Name",
		"007-Bond":     "Bond",
		"1999":         "1999",
		"Track 01":     "Track 01",
		"2. 3. Nested": "3. Nested",
	}
	for in, want := range tests {
		if got := StripTrackPrefix(in); got != want {
			t.Errorf("StripTrackPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniquePath(t *testing.T) {
	taken := map[string]bool{
		filepath.Join("d", "song.mp3"):     true,
		filepath.Join("d", "song (1).mp3"): true,
	}
	exists := func(p string) bool { return taken[p] }

	if got := UniquePath(filepath.Join("d", "free.mp3"), exists); got != filepath.Join("d", "free.mp3") {
		t.Errorf("free path should be returned unchanged, got %q", got)
	}
	if got := UniquePath(filepath.Join("d", "song.mp3"), exists); got != filepath.Join("d", "song (2).mp3") {
		t.Errorf("UniquePath = %q", got)
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("abcdefgh", 3000) // spans several chunks
	path := touch(t, dir, "a.flac", content)

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	sum := sha256.Sum256([]byte(content))
	if want := hex.EncodeToString(sum[:]); got != want {
		t.Errorf("HashFile = %s, want %s", got, want)
	}

	if _, err := HashFile(filepath.Join(dir, "missing.flac")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "B/Album/02.mp3", "1")
	touch(t, root, "A/single.FLAC", "22")
	touch(t, root, "loose.ogg", "333")
	touch(t, root, "A/cover.jpg", "img")
	touch(t, root, "A/notes.txt", "txt")

	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"A/single.FLAC", "B/Album/02.mp3", "loose.ogg"}
	got := relPaths(records)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Scan order = %v, want %v", got, want)
	}

	r := records[0]
	if r.Artist != "A" || r.Album != shared.SinglesAlbum || r.Size != 2 || r.Filename != "single.FLAC" {
		t.Errorf("unexpected record: %+v", r)
	}
	if !filepath.IsAbs(r.AbsPath) {
		t.Errorf("AbsPath should be absolute: %s", r.AbsPath)
	}
	if r.HasHash() {
		t.Error("Scan must not hash")
	}
	if records[2].Artist != shared.UnknownArtist {
		t.Errorf("loose file should classify as unknown artist, got %q", records[2].Artist)
	}
}

func TestScanRelativeToGivenRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "lib/Artist/Album/x.mp3", "x")

	records, err := Scan(filepath.Join(root, "lib", "Artist"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(records) != 1 || filepath.ToSlash(records[0].RelPath) != "Album/x.mp3" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[0].Artist != "Album" || records[0].Album != shared.SinglesAlbum {
		t.Errorf("classification must follow the scan root, got %+v", records[0])
	}
}

func TestScanMissingRoot(t *testing.T) {
	records, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing root should not be an error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected an empty, non-nil slice, got %#v", records)
	}
}

func TestScanFlatAndNested(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "top.mp3", "a")
	touch(t, root, "sub/inner.mp3", "b")

	flat, err := ScanFlat(root)
	if err != nil {
		t.Fatalf("ScanFlat: %v", err)
	}
	if len(flat) != 1 || flat[0].Filename != "top.mp3" {
		t.Errorf("ScanFlat should only see top-level files, got %v", relPaths(flat))
	}
	if !HasNestedAudio(root) {
		t.Error("HasNestedAudio should find sub/inner.mp3")
	}
	if HasNestedAudio(filepath.Join(root, "sub")) {
		t.Error("sub has no subfolders")
	}
}

func TestResolveDuplicates(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "A/Album/one.mp3", "same")
	touch(t, root, "B/two.mp3", "same")
	touch(t, root, "C/three.mp3", "different encode")
	touch(t, root, "D/four.mp3", "same")

	for _, workers := range []int{1, 4} {
		records, err := Scan(root)
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		res, err := ResolveDuplicates(context.Background(), records, DedupOptions{Workers: workers})
		if err != nil {
			t.Fatalf("ResolveDuplicates: %v", err)
		}
		if got := relPaths(res.Unique); strings.Join(got, ",") != "A/Album/one.mp3,C/three.mp3" {
			t.Errorf("workers=%d: unique = %v", workers, got)
		}
		if len(res.Duplicates) != 2 {
			t.Fatalf("workers=%d: expected 2 duplicates, got %d", workers, len(res.Duplicates))
		}
		for _, d := range res.Duplicates {
			if d.CanonicalPath != res.Unique[0].AbsPath {
				t.Errorf("workers=%d: duplicate %s points at %s", workers, d.Record.RelPath, d.CanonicalPath)
			}
		}
		if len(res.Errors) != 0 {
			t.Errorf("workers=%d: unexpected errors %v", workers, res.Errors)
		}
	}
}

func TestResolveDuplicatesIsolatesHashFailures(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "A/ok.mp3", "ok")
	gone := touch(t, root, "B/gone.mp3", "gone")

	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	res, err := ResolveDuplicates(context.Background(), records, DedupOptions{})
	if err != nil {
		t.Fatalf("a single unreadable file must not fail the batch: %v", err)
	}
	if len(res.Unique) != 1 || len(res.Errors) != 1 || res.Errors[0].Path != gone {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Errors[0].Kind != shared.HashFailureWarning {
		t.Errorf("hash failures should be tagged as such, got kind %d", res.Errors[0].Kind)
	}
}

func TestHashRecordsCancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.mp3", "a")
	records, _ := Scan(root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := HashRecords(ctx, records, 1, nil); err == nil {
		t.Error("expected the context error")
	}
}

func TestSummarize(t *testing.T) {
	records := []shared.AudioFileRecord{
		{Artist: "Zeca", Album: "A1", Size: 10},
		{Artist: "Zeca", Album: "A2", Size: 10},
		{Artist: "Zeca", Album: "A2", Size: 10},
		{Artist: "abba", Album: "Singles", Size: 5},
		{Artist: "Beto", Album: "Singles", Size: 5},
	}
	s := Summarize(records)
	if s.TotalTracks != 5 || s.TotalBytes != 40 || s.TotalAlbums != 4 {
		t.Errorf("unexpected totals: %+v", s)
	}
	if s.Artists[0].Artist != "Zeca" || s.Artists[0].Albums != 2 || s.Artists[0].Tracks != 3 {
		t.Errorf("largest artist should come first: %+v", s.Artists[0])
	}
	if s.Artists[1].Artist != "abba" || s.Artists[2].Artist != "Beto" {
		t.Errorf("ties should sort by name ignoring case: %+v", s.Artists)
	}

	if got := Artists(records); strings.Join(got, ",") != "abba,Beto,Zeca" {
		t.Errorf("Artists = %v", got)
	}
	if got := FilterByArtists(records, []string{"ZECA "}); len(got) != 3 {
		t.Errorf("FilterByArtists should match ignoring case, got %d", len(got))
	}
}

func TestSearch(t *testing.T) {
	records := []shared.AudioFileRecord{
		{Filename: "01. Hey Jude.mp3", Artist: "The Beatles", Album: "Past Masters"},
		{Filename: "Bohemian Rhapsody.flac", Artist: "Queen", Album: "A Night at the Opera"},
		{Filename: "song.ogg", Artist: "Desconhecido", Album: "Singles"},
	}

	if got := Search(records, "JUDE", false); len(got) != 1 || got[0].Artist != "The Beatles" {
		t.Errorf("filename search failed: %+v", got)
	}
	if got := Search(records, "opera", false); len(got) != 1 || got[0].Artist != "Queen" {
		t.Errorf("album search failed: %+v", got)
	}
	if got := Search(records, "beatels", false); len(got) != 0 {
		t.Errorf("typo should not match without fuzzy: %+v", got)
	}
	if got := Search(records, "beatels", true); len(got) != 1 || got[0].Artist != "The Beatles" {
		t.Errorf("fuzzy search should tolerate typos: %+v", got)
	}
	if got := Search(records, "   ", true); got != nil {
		t.Errorf("blank query should match nothing: %+v", got)
	}
}
